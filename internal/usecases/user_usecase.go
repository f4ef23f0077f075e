package usecases

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"localtrade.backend/internal/domain/entities"
	domainerrors "localtrade.backend/internal/domain/errors"
	"localtrade.backend/internal/domain/repositories"
)

// UserUsecase handles profile reads and self-service updates
type UserUsecase struct {
	userRepo repositories.UserRepository
}

// NewUserUsecase creates a new user usecase
func NewUserUsecase(userRepo repositories.UserRepository) *UserUsecase {
	return &UserUsecase{userRepo: userRepo}
}

// UpdateProfile applies the caller's own profile changes. Moderation flags
// are not part of the input and cannot change here.
func (u *UserUsecase) UpdateProfile(ctx context.Context, userID uuid.UUID, input *entities.UpdateProfileInput) (*entities.User, error) {
	update := input.ToUpdate()
	if update.IsEmpty() {
		return u.get(ctx, userID)
	}

	user, err := u.userRepo.Update(ctx, userID, update)
	if errors.Is(err, domainerrors.ErrNotFound) {
		return nil, domainerrors.NotFound("User not found")
	}
	return user, err
}

// PublicProfile returns a user as other users see it
func (u *UserUsecase) PublicProfile(ctx context.Context, userID uuid.UUID) (*entities.User, error) {
	user, err := u.get(ctx, userID)
	if err != nil {
		return nil, err
	}
	return user.PublicProfile(), nil
}

func (u *UserUsecase) get(ctx context.Context, userID uuid.UUID) (*entities.User, error) {
	user, err := u.userRepo.GetByID(ctx, userID)
	if errors.Is(err, domainerrors.ErrNotFound) {
		return nil, domainerrors.NotFound("User not found")
	}
	return user, err
}
