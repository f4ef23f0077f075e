package usecases

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"localtrade.backend/internal/domain/entities"
	domainerrors "localtrade.backend/internal/domain/errors"
	"localtrade.backend/internal/domain/repositories"
)

const offerNotOwnedMessage = "Offer not found or unauthorized"

// OfferUsecase handles offer business logic
type OfferUsecase struct {
	offerRepo repositories.OfferRepository
}

// NewOfferUsecase creates a new offer usecase
func NewOfferUsecase(offerRepo repositories.OfferRepository) *OfferUsecase {
	return &OfferUsecase{offerRepo: offerRepo}
}

// List lists offers matching filter, newest first
func (u *OfferUsecase) List(ctx context.Context, filter entities.OfferFilter) ([]*entities.Offer, error) {
	return u.offerRepo.List(ctx, filter)
}

// Get returns a single offer with its owner
func (u *OfferUsecase) Get(ctx context.Context, id uuid.UUID) (*entities.Offer, error) {
	offer, err := u.offerRepo.GetByID(ctx, id)
	if errors.Is(err, domainerrors.ErrNotFound) {
		return nil, domainerrors.NotFound("Offer not found")
	}
	return offer, err
}

// Create posts an offer owned by userID
func (u *OfferUsecase) Create(ctx context.Context, userID uuid.UUID, input *entities.CreateOfferInput) (*entities.Offer, error) {
	offer := input.ToOffer(userID)
	if err := offer.Validate(); err != nil {
		return nil, domainerrors.BadRequest(err.Error())
	}

	if err := u.offerRepo.Create(ctx, offer); err != nil {
		return nil, err
	}
	return u.Get(ctx, offer.ID)
}

// Update applies a partial update to an offer owned by userID. Offers owned
// by someone else are reported as not found.
func (u *OfferUsecase) Update(ctx context.Context, id, userID uuid.UUID, input *entities.UpdateOfferInput) (*entities.Offer, error) {
	offer, err := u.offerRepo.GetByID(ctx, id)
	if errors.Is(err, domainerrors.ErrNotFound) {
		return nil, domainerrors.NotFound(offerNotOwnedMessage)
	}
	if err != nil {
		return nil, err
	}
	if offer.UserID != userID {
		return nil, domainerrors.NotFound(offerNotOwnedMessage)
	}

	offer.Apply(input)
	if err := offer.Validate(); err != nil {
		return nil, domainerrors.BadRequest(err.Error())
	}

	if err := u.offerRepo.Update(ctx, offer); err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return nil, domainerrors.NotFound(offerNotOwnedMessage)
		}
		return nil, err
	}
	return u.Get(ctx, id)
}

// Delete removes an offer owned by userID
func (u *OfferUsecase) Delete(ctx context.Context, id, userID uuid.UUID) error {
	err := u.offerRepo.Delete(ctx, id, userID)
	if errors.Is(err, domainerrors.ErrNotFound) {
		return domainerrors.NotFound(offerNotOwnedMessage)
	}
	return err
}
