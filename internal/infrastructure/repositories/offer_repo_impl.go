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

// OfferRepository implements offer data operations
type OfferRepository struct {
	db *gorm.DB
}

// NewOfferRepository creates a new offer repository
func NewOfferRepository(db *gorm.DB) *OfferRepository {
	return &OfferRepository{db: db}
}

// GetByID gets an offer joined with its owner
func (r *OfferRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.Offer, error) {
	var m models.Offer
	err := GetDB(ctx, r.db).
		Joins("User").
		Where("offers.id = ?", id).
		First(&m).Error
	if err != nil {
		return nil, translateError(err)
	}
	return offerToEntity(&m), nil
}

// List lists offers joined with owners, newest first
func (r *OfferRepository) List(ctx context.Context, filter entities.OfferFilter) ([]*entities.Offer, error) {
	query := GetDB(ctx, r.db).Joins("User")
	if filter.Type != nil {
		query = query.Where("offers.type = ?", string(*filter.Type))
	}
	if filter.IsActive != nil {
		query = query.Where("offers.is_active = ?", *filter.IsActive)
	}
	if filter.UserID != nil {
		query = query.Where("offers.user_id = ?", *filter.UserID)
	}

	var offerModels []models.Offer
	if err := query.Order("offers.created_at DESC").Find(&offerModels).Error; err != nil {
		return nil, err
	}

	offers := make([]*entities.Offer, 0, len(offerModels))
	for i := range offerModels {
		offers = append(offers, offerToEntity(&offerModels[i]))
	}
	return offers, nil
}

// Create inserts an offer owned by offer.UserID
func (r *OfferRepository) Create(ctx context.Context, offer *entities.Offer) error {
	now := time.Now().UTC()
	if offer.ID == uuid.Nil {
		offer.ID = utils.GenerateUUIDv7()
	}
	if offer.CreatedAt.IsZero() {
		offer.CreatedAt = now
	}
	offer.UpdatedAt = offer.CreatedAt

	m := &models.Offer{
		ID:              offer.ID,
		UserID:          offer.UserID,
		Type:            string(offer.Type),
		Amount:          offer.Amount,
		MinLimit:        offer.MinLimit,
		MaxLimit:        offer.MaxLimit,
		ExchangeRate:    offer.ExchangeRate,
		Location:        offer.Location,
		Latitude:        offer.Latitude.Ptr(),
		Longitude:       offer.Longitude.Ptr(),
		Description:     offer.Description.Ptr(),
		PaymentMethods:  models.StringArray(offer.PaymentMethods),
		IsActive:        offer.IsActive,
		BaseChainTxHash: offer.BaseChainTxHash.Ptr(),
		CreatedAt:       offer.CreatedAt,
		UpdatedAt:       offer.UpdatedAt,
	}
	return translateError(GetDB(ctx, r.db).Omit(clause.Associations).Create(m).Error)
}

// Update persists the mutable fields of offer, scoped to its owner
func (r *OfferRepository) Update(ctx context.Context, offer *entities.Offer) error {
	offer.UpdatedAt = time.Now().UTC()
	updates := map[string]interface{}{
		"type":               string(offer.Type),
		"amount":             offer.Amount,
		"min_limit":          offer.MinLimit,
		"max_limit":          offer.MaxLimit,
		"exchange_rate":      offer.ExchangeRate,
		"location":           offer.Location,
		"latitude":           offer.Latitude.Ptr(),
		"longitude":          offer.Longitude.Ptr(),
		"description":        offer.Description.Ptr(),
		"payment_methods":    models.StringArray(offer.PaymentMethods),
		"is_active":          offer.IsActive,
		"base_chain_tx_hash": offer.BaseChainTxHash.Ptr(),
		"updated_at":         offer.UpdatedAt,
	}

	result := GetDB(ctx, r.db).
		Model(&models.Offer{}).
		Where("id = ? AND user_id = ?", offer.ID, offer.UserID).
		Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

// Delete removes an offer, scoped to its owner
func (r *OfferRepository) Delete(ctx context.Context, id, userID uuid.UUID) error {
	result := GetDB(ctx, r.db).
		Where("id = ? AND user_id = ?", id, userID).
		Delete(&models.Offer{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}
