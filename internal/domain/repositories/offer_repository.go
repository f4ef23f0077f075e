package repositories

import (
	"context"

	"github.com/google/uuid"
	"localtrade.backend/internal/domain/entities"
)

// OfferRepository defines offer data operations.
// Update and Delete are scoped to the owner; a miss returns ErrNotFound
// whether the offer is absent or owned by someone else.
type OfferRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*entities.Offer, error)
	List(ctx context.Context, filter entities.OfferFilter) ([]*entities.Offer, error)
	Create(ctx context.Context, offer *entities.Offer) error
	Update(ctx context.Context, offer *entities.Offer) error
	Delete(ctx context.Context, id, userID uuid.UUID) error
}
