package repositories

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"localtrade.backend/internal/domain/entities"
	domainerrors "localtrade.backend/internal/domain/errors"
	"localtrade.backend/internal/infrastructure/models"
	"localtrade.backend/pkg/utils"
	"localtrade.backend/pkg/wallet"
)

// UserRepository implements user data operations
type UserRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

// GetByID gets a user by ID
func (r *UserRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.User, error) {
	var m models.User
	if err := GetDB(ctx, r.db).Where("id = ?", id).First(&m).Error; err != nil {
		return nil, translateError(err)
	}
	return userToEntity(&m), nil
}

// GetByWalletAddress gets a user by wallet address, case-insensitively
func (r *UserRepository) GetByWalletAddress(ctx context.Context, walletAddress string) (*entities.User, error) {
	var m models.User
	err := GetDB(ctx, r.db).
		Where("wallet_address = ?", wallet.Normalize(walletAddress)).
		First(&m).Error
	if err != nil {
		return nil, translateError(err)
	}
	return userToEntity(&m), nil
}

// Create inserts a user with a normalized wallet address. A duplicate address
// surfaces as ErrAlreadyExists.
func (r *UserRepository) Create(ctx context.Context, user *entities.User) error {
	now := time.Now().UTC()
	if user.ID == uuid.Nil {
		user.ID = utils.GenerateUUIDv7()
	}
	user.WalletAddress = wallet.Normalize(user.WalletAddress)
	if user.CreatedAt.IsZero() {
		user.CreatedAt = now
	}
	user.UpdatedAt = user.CreatedAt
	if !user.OnChainSince.Valid {
		user.OnChainSince.SetValid(user.CreatedAt)
	}

	m := &models.User{
		ID:                   user.ID,
		WalletAddress:        user.WalletAddress,
		DisplayName:          user.DisplayName.Ptr(),
		Bio:                  user.Bio.Ptr(),
		AvatarURL:            user.AvatarURL.Ptr(),
		Location:             user.Location.Ptr(),
		PhoneNumber:          user.PhoneNumber.Ptr(),
		IsVerified:           user.IsVerified,
		IsSuspended:          user.IsSuspended,
		ShowWalletAddress:    user.ShowWalletAddress,
		NotificationsEnabled: user.NotificationsEnabled,
		OnChainSince:         user.OnChainSince.Ptr(),
		CreatedAt:            user.CreatedAt,
		UpdatedAt:            user.UpdatedAt,
	}
	return translateError(GetDB(ctx, r.db).Create(m).Error)
}

// Update applies a partial update and always stamps updated_at
func (r *UserRepository) Update(ctx context.Context, id uuid.UUID, update entities.UserUpdate) (*entities.User, error) {
	updates := map[string]interface{}{
		"updated_at": time.Now().UTC(),
	}
	if update.DisplayName != nil {
		updates["display_name"] = *update.DisplayName
	}
	if update.Bio != nil {
		updates["bio"] = *update.Bio
	}
	if update.AvatarURL != nil {
		updates["avatar_url"] = *update.AvatarURL
	}
	if update.Location != nil {
		updates["location"] = *update.Location
	}
	if update.PhoneNumber != nil {
		updates["phone_number"] = *update.PhoneNumber
	}
	if update.ShowWalletAddress != nil {
		updates["show_wallet_address"] = *update.ShowWalletAddress
	}
	if update.NotificationsEnabled != nil {
		updates["notifications_enabled"] = *update.NotificationsEnabled
	}
	if update.IsVerified != nil {
		updates["is_verified"] = *update.IsVerified
	}
	if update.IsSuspended != nil {
		updates["is_suspended"] = *update.IsSuspended
	}

	result := GetDB(ctx, r.db).Model(&models.User{}).Where("id = ?", id).Updates(updates)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, domainerrors.ErrNotFound
	}
	return r.GetByID(ctx, id)
}

// List lists users newest first, optionally filtered by address or display name
func (r *UserRepository) List(ctx context.Context, search string) ([]*entities.User, error) {
	var userModels []models.User
	query := GetDB(ctx, r.db).Order("created_at DESC")

	if search = strings.TrimSpace(search); search != "" {
		term := "%" + strings.ToLower(search) + "%"
		query = query.Where("wallet_address LIKE ? OR LOWER(display_name) LIKE ?", term, term)
	}

	if err := query.Find(&userModels).Error; err != nil {
		return nil, err
	}

	users := make([]*entities.User, 0, len(userModels))
	for i := range userModels {
		users = append(users, userToEntity(&userModels[i]))
	}
	return users, nil
}
