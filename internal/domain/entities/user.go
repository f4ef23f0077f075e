package entities

import (
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
)

// User represents a marketplace participant keyed by wallet address
type User struct {
	ID                   uuid.UUID   `json:"id"`
	WalletAddress        string      `json:"walletAddress"`
	DisplayName          null.String `json:"displayName"`
	Bio                  null.String `json:"bio"`
	AvatarURL            null.String `json:"avatarUrl"`
	Location             null.String `json:"location"`
	PhoneNumber          null.String `json:"phoneNumber"`
	IsVerified           bool        `json:"isVerified"`
	IsSuspended          bool        `json:"isSuspended"`
	ShowWalletAddress    bool        `json:"showWalletAddress"`
	NotificationsEnabled bool        `json:"notificationsEnabled"`
	OnChainSince         null.Time   `json:"onChainSince"`
	CreatedAt            time.Time   `json:"createdAt"`
	UpdatedAt            time.Time   `json:"updatedAt"`
}

// UserSummary is the shallow user shape embedded in deals and reports
type UserSummary struct {
	ID            uuid.UUID   `json:"id"`
	WalletAddress string      `json:"walletAddress"`
	DisplayName   null.String `json:"displayName"`
	AvatarURL     null.String `json:"avatarUrl"`
	IsVerified    bool        `json:"isVerified"`
}

// Summary returns the shallow form of the user
func (u *User) Summary() *UserSummary {
	if u == nil {
		return nil
	}
	return &UserSummary{
		ID:            u.ID,
		WalletAddress: u.WalletAddress,
		DisplayName:   u.DisplayName,
		AvatarURL:     u.AvatarURL,
		IsVerified:    u.IsVerified,
	}
}

// PublicProfile returns a copy safe to show to other users. Contact details are
// dropped and the wallet address is hidden when the owner opted out.
func (u *User) PublicProfile() *User {
	p := *u
	p.PhoneNumber = null.String{}
	if !u.ShowWalletAddress {
		p.WalletAddress = ""
	}
	return &p
}

// UserUpdate is a partial update; nil fields are left untouched
type UserUpdate struct {
	DisplayName          *string
	Bio                  *string
	AvatarURL            *string
	Location             *string
	PhoneNumber          *string
	ShowWalletAddress    *bool
	NotificationsEnabled *bool
	IsVerified           *bool
	IsSuspended          *bool
}

// IsEmpty reports whether the update carries no fields
func (u UserUpdate) IsEmpty() bool {
	return u == UserUpdate{}
}

// ConnectWalletInput represents input for connecting a wallet
type ConnectWalletInput struct {
	WalletAddress string `json:"walletAddress" binding:"required"`
}

// UpdateProfileInput represents the self-service profile update.
// Moderation flags and the wallet address are deliberately absent.
type UpdateProfileInput struct {
	DisplayName          *string `json:"displayName" binding:"omitempty,max=100"`
	Bio                  *string `json:"bio" binding:"omitempty,max=500"`
	AvatarURL            *string `json:"avatarUrl" binding:"omitempty,url"`
	Location             *string `json:"location" binding:"omitempty,max=200"`
	PhoneNumber          *string `json:"phoneNumber" binding:"omitempty,max=32"`
	ShowWalletAddress    *bool   `json:"showWalletAddress"`
	NotificationsEnabled *bool   `json:"notificationsEnabled"`
}

// ToUpdate converts the profile input to a storage update
func (in *UpdateProfileInput) ToUpdate() UserUpdate {
	return UserUpdate{
		DisplayName:          in.DisplayName,
		Bio:                  in.Bio,
		AvatarURL:            in.AvatarURL,
		Location:             in.Location,
		PhoneNumber:          in.PhoneNumber,
		ShowWalletAddress:    in.ShowWalletAddress,
		NotificationsEnabled: in.NotificationsEnabled,
	}
}
