package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Offer maps the offers table. Bool columns carry no gorm default so an
// explicit false is never replaced by the column default on insert.
type Offer struct {
	ID              uuid.UUID           `gorm:"type:uuid;primaryKey"`
	UserID          uuid.UUID           `gorm:"type:uuid;index;not null"`
	Type            string              `gorm:"type:varchar(8);index;not null"`
	Amount          decimal.Decimal     `gorm:"type:numeric(18,6);not null"`
	MinLimit        decimal.Decimal     `gorm:"type:numeric(18,6);not null"`
	MaxLimit        decimal.Decimal     `gorm:"type:numeric(18,6);not null"`
	ExchangeRate    decimal.NullDecimal `gorm:"type:numeric(18,6)"`
	Location        string              `gorm:"type:text;not null"`
	Latitude        *float64            `gorm:"type:numeric(10,8)"`
	Longitude       *float64            `gorm:"type:numeric(11,8)"`
	Description     *string             `gorm:"type:text"`
	PaymentMethods  StringArray         `gorm:"not null"`
	IsActive        bool                `gorm:"index;not null"`
	BaseChainTxHash *string             `gorm:"type:text"`
	CreatedAt       time.Time           `gorm:"index;not null"`
	UpdatedAt       time.Time           `gorm:"not null"`

	User *User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
}
