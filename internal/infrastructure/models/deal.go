package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Deal struct {
	ID              uuid.UUID       `gorm:"type:uuid;primaryKey"`
	OfferID         uuid.UUID       `gorm:"type:uuid;index;not null"`
	BuyerID         uuid.UUID       `gorm:"type:uuid;index;not null"`
	SellerID        uuid.UUID       `gorm:"type:uuid;index;not null"`
	Amount          decimal.Decimal `gorm:"type:numeric(18,6);not null"`
	Status          string          `gorm:"type:varchar(16);index;not null"`
	BaseChainTxHash *string         `gorm:"type:text"`
	Notes           *string         `gorm:"type:text"`
	CreatedAt       time.Time       `gorm:"index;not null"`
	CompletedAt     *time.Time
	CancelledAt     *time.Time

	Offer  *Offer `gorm:"foreignKey:OfferID;constraint:OnDelete:CASCADE"`
	Buyer  *User  `gorm:"foreignKey:BuyerID;constraint:OnDelete:CASCADE"`
	Seller *User  `gorm:"foreignKey:SellerID;constraint:OnDelete:CASCADE"`
}
