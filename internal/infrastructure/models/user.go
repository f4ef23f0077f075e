package models

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID                   uuid.UUID `gorm:"type:uuid;primaryKey"`
	WalletAddress        string    `gorm:"type:text;uniqueIndex;not null"`
	DisplayName          *string   `gorm:"type:text"`
	Bio                  *string   `gorm:"type:text"`
	AvatarURL            *string   `gorm:"column:avatar_url;type:text"`
	Location             *string   `gorm:"type:text"`
	PhoneNumber          *string   `gorm:"type:text"`
	IsVerified           bool      `gorm:"not null"`
	IsSuspended          bool      `gorm:"not null"`
	ShowWalletAddress    bool      `gorm:"not null"`
	NotificationsEnabled bool      `gorm:"not null"`
	OnChainSince         *time.Time
	CreatedAt            time.Time `gorm:"not null"`
	UpdatedAt            time.Time `gorm:"not null"`
}

type AdminUser struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserID    uuid.UUID `gorm:"type:uuid;uniqueIndex;not null"`
	Role      string    `gorm:"type:text;not null"`
	CreatedAt time.Time `gorm:"not null"`

	User *User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
}

type AuditLog struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	AdminID    uuid.UUID `gorm:"type:uuid;index;not null"`
	Action     string    `gorm:"type:text;not null"`
	TargetType *string   `gorm:"type:text"`
	TargetID   *string   `gorm:"type:text"`
	Details    *string   `gorm:"type:text"`
	CreatedAt  time.Time `gorm:"index;not null"`

	Admin *User `gorm:"foreignKey:AdminID"`
}
