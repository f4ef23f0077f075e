package usecases

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
	"go.uber.org/zap"

	"localtrade.backend/internal/domain/entities"
	domainerrors "localtrade.backend/internal/domain/errors"
	"localtrade.backend/internal/domain/repositories"
	"localtrade.backend/pkg/logger"
	"localtrade.backend/pkg/wallet"
)

const (
	dealNotFoundMessage = "Deal not found"
	dealChangedMessage  = "Deal was changed by the other participant, reload and retry"
)

// DealUsecase handles deal business logic
type DealUsecase struct {
	dealRepo  repositories.DealRepository
	offerRepo repositories.OfferRepository
	uow       repositories.UnitOfWork
	now       func() time.Time
}

// NewDealUsecase creates a new deal usecase
func NewDealUsecase(
	dealRepo repositories.DealRepository,
	offerRepo repositories.OfferRepository,
	uow repositories.UnitOfWork,
) *DealUsecase {
	return &DealUsecase{
		dealRepo:  dealRepo,
		offerRepo: offerRepo,
		uow:       uow,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// List lists deals where userID is the buyer or the seller
func (u *DealUsecase) List(ctx context.Context, userID uuid.UUID, status *entities.DealStatus) ([]*entities.Deal, error) {
	if status != nil && !status.Valid() {
		return nil, domainerrors.BadRequest("Invalid deal status")
	}
	return u.dealRepo.ListByParticipant(ctx, userID, status)
}

// Get returns a deal visible to userID
func (u *DealUsecase) Get(ctx context.Context, id, userID uuid.UUID) (*entities.Deal, error) {
	deal, err := u.dealRepo.GetByID(ctx, id)
	if errors.Is(err, domainerrors.ErrNotFound) {
		return nil, domainerrors.NotFound(dealNotFoundMessage)
	}
	if err != nil {
		return nil, err
	}
	if !deal.IsParticipant(userID) {
		return nil, domainerrors.Forbidden("Unauthorized")
	}
	return deal, nil
}

// Create opens a deal between callerID and the offer's owner. The caller
// takes the side opposite the offer: buyer on a sell offer, seller on a buy offer.
func (u *DealUsecase) Create(ctx context.Context, callerID uuid.UUID, input *entities.CreateDealInput) (*entities.Deal, error) {
	offerID, err := uuid.Parse(input.OfferID)
	if err != nil {
		return nil, domainerrors.BadRequest("Invalid offer id")
	}
	if input.Amount == nil || !input.Amount.IsPositive() {
		return nil, domainerrors.BadRequest("Amount must be positive")
	}
	if input.BaseChainTxHash != nil && !wallet.IsValidTxHash(*input.BaseChainTxHash) {
		return nil, domainerrors.BadRequest("Invalid transaction hash")
	}

	deal := &entities.Deal{
		OfferID:         offerID,
		Amount:          *input.Amount,
		Status:          entities.DealStatusActive,
		Notes:           null.StringFromPtr(input.Notes),
		BaseChainTxHash: null.StringFromPtr(input.BaseChainTxHash),
	}

	err = u.uow.Do(ctx, func(txCtx context.Context) error {
		offer, err := u.offerRepo.GetByID(txCtx, offerID)
		if errors.Is(err, domainerrors.ErrNotFound) {
			return domainerrors.NotFound("Offer not found")
		}
		if err != nil {
			return err
		}
		if !offer.IsActive {
			return domainerrors.BadRequest("Offer is not active")
		}
		if offer.UserID == callerID {
			return domainerrors.BadRequest("Cannot create a deal on your own offer")
		}
		if !offer.InLimits(deal.Amount) {
			return domainerrors.BadRequest(fmt.Sprintf("Amount must be between %s and %s", offer.MinLimit, offer.MaxLimit))
		}

		if offer.Type == entities.OfferTypeSell {
			deal.SellerID, deal.BuyerID = offer.UserID, callerID
		} else {
			deal.BuyerID, deal.SellerID = offer.UserID, callerID
		}
		deal.CreatedAt = u.now()
		return u.dealRepo.Create(txCtx, deal)
	})
	if err != nil {
		return nil, err
	}

	logger.Info(ctx, "Deal created",
		zap.String("deal_id", deal.ID.String()),
		zap.String("offer_id", offerID.String()),
		zap.String("amount", deal.Amount.String()),
	)
	return u.dealRepo.GetByID(ctx, deal.ID)
}

// Update changes a deal's status, notes or tx hash on behalf of a participant.
// Non-participants get not found. Terminal deals accept no status change.
func (u *DealUsecase) Update(ctx context.Context, id, callerID uuid.UUID, input *entities.UpdateDealInput) (*entities.Deal, error) {
	if input.BaseChainTxHash != nil && !wallet.IsValidTxHash(*input.BaseChainTxHash) {
		return nil, domainerrors.BadRequest("Invalid transaction hash")
	}

	err := u.uow.Do(ctx, func(txCtx context.Context) error {
		deal, err := u.dealRepo.GetByID(txCtx, id)
		if errors.Is(err, domainerrors.ErrNotFound) {
			return domainerrors.NotFound(dealNotFoundMessage)
		}
		if err != nil {
			return err
		}
		if !deal.IsParticipant(callerID) {
			return domainerrors.NotFound(dealNotFoundMessage)
		}

		from := deal.Status
		if input.Status != nil {
			if err := deal.Transition(*input.Status, u.now()); err != nil {
				return domainerrors.BadRequest(err.Error())
			}
		}
		if input.Notes != nil {
			deal.Notes = null.StringFrom(*input.Notes)
		}
		if input.BaseChainTxHash != nil {
			deal.BaseChainTxHash = null.StringFrom(*input.BaseChainTxHash)
		}

		err = u.dealRepo.Update(txCtx, deal, callerID, from)
		if errors.Is(err, domainerrors.ErrNotFound) {
			return domainerrors.NotFound(dealNotFoundMessage)
		}
		if errors.Is(err, domainerrors.ErrInvalidTransition) {
			return domainerrors.InvalidTransition(dealChangedMessage)
		}
		return err
	})
	if err != nil {
		return nil, err
	}
	return u.dealRepo.GetByID(ctx, id)
}
