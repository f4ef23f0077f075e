package repositories

import (
	"context"

	"github.com/google/uuid"
	"localtrade.backend/internal/domain/entities"
)

// DealRepository defines deal data operations
type DealRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*entities.Deal, error)
	List(ctx context.Context, filter entities.DealFilter) ([]*entities.Deal, error)
	ListByParticipant(ctx context.Context, userID uuid.UUID, status *entities.DealStatus) ([]*entities.Deal, error)
	Create(ctx context.Context, deal *entities.Deal) error
	// Update persists status, timestamps, notes and tx hash, scoped to the deal's participants.
	// The row is written only while its stored status is still from; otherwise
	// ErrInvalidTransition is returned.
	Update(ctx context.Context, deal *entities.Deal, userID uuid.UUID, from entities.DealStatus) error
}
