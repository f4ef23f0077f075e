package repositories

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"localtrade.backend/internal/domain/entities"
	domainerrors "localtrade.backend/internal/domain/errors"
	"localtrade.backend/internal/infrastructure/models"
	"localtrade.backend/pkg/utils"
)

// DealRepository implements deal data operations
type DealRepository struct {
	db *gorm.DB
}

// NewDealRepository creates a new deal repository
func NewDealRepository(db *gorm.DB) *DealRepository {
	return &DealRepository{db: db}
}

// GetByID gets a deal with its offer and both counterparties resolved
func (r *DealRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.Deal, error) {
	var m models.Deal
	err := GetDB(ctx, r.db).
		Joins("Offer").
		Joins("Buyer").
		Joins("Seller").
		Where("deals.id = ?", id).
		First(&m).Error
	if err != nil {
		return nil, translateError(err)
	}
	return dealToEntity(&m), nil
}

// List lists deals with their offers, newest first. Filters are AND-combined.
func (r *DealRepository) List(ctx context.Context, filter entities.DealFilter) ([]*entities.Deal, error) {
	query := GetDB(ctx, r.db).Joins("Offer")
	if filter.BuyerID != nil {
		query = query.Where("deals.buyer_id = ?", *filter.BuyerID)
	}
	if filter.SellerID != nil {
		query = query.Where("deals.seller_id = ?", *filter.SellerID)
	}
	if filter.Status != nil {
		query = query.Where("deals.status = ?", string(*filter.Status))
	}
	return r.find(query)
}

// ListByParticipant lists deals where userID is the buyer or the seller
func (r *DealRepository) ListByParticipant(ctx context.Context, userID uuid.UUID, status *entities.DealStatus) ([]*entities.Deal, error) {
	query := GetDB(ctx, r.db).
		Joins("Offer").
		Where("(deals.buyer_id = ? OR deals.seller_id = ?)", userID, userID)
	if status != nil {
		query = query.Where("deals.status = ?", string(*status))
	}
	return r.find(query)
}

func (r *DealRepository) find(query *gorm.DB) ([]*entities.Deal, error) {
	var dealModels []models.Deal
	if err := query.Order("deals.created_at DESC").Find(&dealModels).Error; err != nil {
		return nil, err
	}
	deals := make([]*entities.Deal, 0, len(dealModels))
	for i := range dealModels {
		deals = append(deals, dealToEntity(&dealModels[i]))
	}
	return deals, nil
}

// Create inserts a deal in the active state
func (r *DealRepository) Create(ctx context.Context, deal *entities.Deal) error {
	if deal.ID == uuid.Nil {
		deal.ID = utils.GenerateUUIDv7()
	}
	if deal.CreatedAt.IsZero() {
		deal.CreatedAt = time.Now().UTC()
	}
	if deal.Status == "" {
		deal.Status = entities.DealStatusActive
	}

	m := &models.Deal{
		ID:              deal.ID,
		OfferID:         deal.OfferID,
		BuyerID:         deal.BuyerID,
		SellerID:        deal.SellerID,
		Amount:          deal.Amount,
		Status:          string(deal.Status),
		BaseChainTxHash: deal.BaseChainTxHash.Ptr(),
		Notes:           deal.Notes.Ptr(),
		CreatedAt:       deal.CreatedAt,
		CompletedAt:     deal.CompletedAt.Ptr(),
		CancelledAt:     deal.CancelledAt.Ptr(),
	}
	return translateError(GetDB(ctx, r.db).Omit(clause.Associations).Create(m).Error)
}

// Update persists status, timestamps, notes and tx hash. Only the buyer or the
// seller may update; anyone else gets ErrNotFound. The write is conditional on
// the stored status still being from, so a stale read cannot overwrite a
// transition made in the meantime.
func (r *DealRepository) Update(ctx context.Context, deal *entities.Deal, userID uuid.UUID, from entities.DealStatus) error {
	updates := map[string]interface{}{
		"status":             string(deal.Status),
		"completed_at":       deal.CompletedAt.Ptr(),
		"cancelled_at":       deal.CancelledAt.Ptr(),
		"notes":              deal.Notes.Ptr(),
		"base_chain_tx_hash": deal.BaseChainTxHash.Ptr(),
	}

	db := GetDB(ctx, r.db)
	result := db.Model(&models.Deal{}).
		Where("id = ? AND (buyer_id = ? OR seller_id = ?) AND status = ?", deal.ID, userID, userID, string(from)).
		Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		var count int64
		if err := db.Model(&models.Deal{}).
			Where("id = ? AND (buyer_id = ? OR seller_id = ?)", deal.ID, userID, userID).
			Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return domainerrors.ErrNotFound
		}
		return domainerrors.ErrInvalidTransition
	}
	return nil
}
