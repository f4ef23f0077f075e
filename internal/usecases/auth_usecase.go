package usecases

import (
	"context"
	"errors"

	"github.com/volatiletech/null/v8"
	"go.uber.org/zap"

	"localtrade.backend/internal/domain/entities"
	domainerrors "localtrade.backend/internal/domain/errors"
	"localtrade.backend/internal/domain/repositories"
	"localtrade.backend/pkg/logger"
	"localtrade.backend/pkg/wallet"
)

const anonymousDisplayName = "Anonymous User"

// AuthUsecase resolves wallet identities to users
type AuthUsecase struct {
	userRepo repositories.UserRepository
}

// NewAuthUsecase creates a new auth usecase
func NewAuthUsecase(userRepo repositories.UserRepository) *AuthUsecase {
	return &AuthUsecase{userRepo: userRepo}
}

// Connect returns the user for walletAddress, creating it on first connect
func (u *AuthUsecase) Connect(ctx context.Context, walletAddress string) (*entities.User, error) {
	if !wallet.IsValidAddress(walletAddress) {
		return nil, domainerrors.BadRequest("Invalid wallet address")
	}
	return u.getOrCreate(ctx, &entities.User{
		WalletAddress:        walletAddress,
		ShowWalletAddress:    true,
		NotificationsEnabled: true,
	})
}

// ResolveCaller returns the user behind a request's wallet header. Unseen
// wallets are provisioned as anonymous users with their address hidden.
func (u *AuthUsecase) ResolveCaller(ctx context.Context, walletAddress string) (*entities.User, error) {
	if !wallet.IsValidAddress(walletAddress) {
		return nil, domainerrors.Unauthorized("Invalid wallet address")
	}
	return u.getOrCreate(ctx, &entities.User{
		WalletAddress:        walletAddress,
		DisplayName:          null.StringFrom(anonymousDisplayName),
		NotificationsEnabled: true,
	})
}

func (u *AuthUsecase) getOrCreate(ctx context.Context, template *entities.User) (*entities.User, error) {
	user, err := u.userRepo.GetByWalletAddress(ctx, template.WalletAddress)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, domainerrors.ErrNotFound) {
		return nil, err
	}

	if err := u.userRepo.Create(ctx, template); err != nil {
		// A concurrent request created the same wallet first.
		if errors.Is(err, domainerrors.ErrAlreadyExists) {
			return u.userRepo.GetByWalletAddress(ctx, template.WalletAddress)
		}
		return nil, err
	}

	logger.Info(ctx, "Provisioned user for wallet", zap.String("wallet", wallet.Truncate(template.WalletAddress)))
	return template, nil
}
