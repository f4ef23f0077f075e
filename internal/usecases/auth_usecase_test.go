package usecases_test

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"localtrade.backend/internal/domain/entities"
	domainerrors "localtrade.backend/internal/domain/errors"
	"localtrade.backend/internal/usecases"
)

func TestAuthUsecase_Connect_InvalidAddress(t *testing.T) {
	uc := usecases.NewAuthUsecase(new(MockUserRepository))

	for _, addr := range []string{"", "0x123", "1234567890123456789012345678901234567890ab", "0xzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzz"} {
		_, err := uc.Connect(context.Background(), addr)
		requireAppError(t, err, http.StatusBadRequest, "Invalid wallet address")
	}
}

func TestAuthUsecase_Connect_Existing(t *testing.T) {
	repo := new(MockUserRepository)
	uc := usecases.NewAuthUsecase(repo)
	existing := &entities.User{ID: uuid.New(), WalletAddress: walletA}

	repo.On("GetByWalletAddress", mock.Anything, walletA).Return(existing, nil).Once()

	user, err := uc.Connect(context.Background(), walletA)
	require.NoError(t, err)
	assert.Equal(t, existing.ID, user.ID)
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestAuthUsecase_Connect_CreatesVisibleUser(t *testing.T) {
	repo := new(MockUserRepository)
	uc := usecases.NewAuthUsecase(repo)

	repo.On("GetByWalletAddress", mock.Anything, walletA).Return(nil, domainerrors.ErrNotFound).Once()
	repo.On("Create", mock.Anything, mock.MatchedBy(func(u *entities.User) bool {
		return u.WalletAddress == walletA && u.ShowWalletAddress && u.NotificationsEnabled && !u.DisplayName.Valid
	})).Return(nil).Once()

	user, err := uc.Connect(context.Background(), walletA)
	require.NoError(t, err)
	assert.False(t, user.IsVerified)
	assert.False(t, user.IsSuspended)
	repo.AssertExpectations(t)
}

func TestAuthUsecase_Connect_ConcurrentCreateRereads(t *testing.T) {
	repo := new(MockUserRepository)
	uc := usecases.NewAuthUsecase(repo)
	winner := &entities.User{ID: uuid.New(), WalletAddress: walletA}

	repo.On("GetByWalletAddress", mock.Anything, walletA).Return(nil, domainerrors.ErrNotFound).Once()
	repo.On("Create", mock.Anything, mock.Anything).Return(domainerrors.ErrAlreadyExists).Once()
	repo.On("GetByWalletAddress", mock.Anything, walletA).Return(winner, nil).Once()

	user, err := uc.Connect(context.Background(), walletA)
	require.NoError(t, err)
	assert.Equal(t, winner.ID, user.ID)
}

func TestAuthUsecase_Connect_StorageError(t *testing.T) {
	repo := new(MockUserRepository)
	uc := usecases.NewAuthUsecase(repo)
	boom := errors.New("db down")

	repo.On("GetByWalletAddress", mock.Anything, walletA).Return(nil, boom).Once()

	_, err := uc.Connect(context.Background(), walletA)
	assert.ErrorIs(t, err, boom)
}

func TestAuthUsecase_ResolveCaller_ProvisionsAnonymous(t *testing.T) {
	repo := new(MockUserRepository)
	uc := usecases.NewAuthUsecase(repo)

	repo.On("GetByWalletAddress", mock.Anything, walletB).Return(nil, domainerrors.ErrNotFound).Once()
	repo.On("Create", mock.Anything, mock.MatchedBy(func(u *entities.User) bool {
		return u.DisplayName.String == "Anonymous User" && !u.ShowWalletAddress && u.NotificationsEnabled
	})).Return(nil).Once()

	user, err := uc.ResolveCaller(context.Background(), walletB)
	require.NoError(t, err)
	assert.Equal(t, "Anonymous User", user.DisplayName.String)
	repo.AssertExpectations(t)
}

func TestAuthUsecase_ResolveCaller_InvalidAddress(t *testing.T) {
	uc := usecases.NewAuthUsecase(new(MockUserRepository))

	_, err := uc.ResolveCaller(context.Background(), "not-a-wallet")
	requireAppError(t, err, http.StatusUnauthorized, "Invalid wallet address")
}
