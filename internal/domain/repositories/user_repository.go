package repositories

import (
	"context"

	"github.com/google/uuid"
	"localtrade.backend/internal/domain/entities"
)

// UserRepository defines user data operations
type UserRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*entities.User, error)
	GetByWalletAddress(ctx context.Context, walletAddress string) (*entities.User, error)
	Create(ctx context.Context, user *entities.User) error
	Update(ctx context.Context, id uuid.UUID, update entities.UserUpdate) (*entities.User, error)
	List(ctx context.Context, search string) ([]*entities.User, error)
}
