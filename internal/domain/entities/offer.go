package entities

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/volatiletech/null/v8"

	"localtrade.backend/pkg/wallet"
)

// OfferType is the trade direction of an offer
type OfferType string

const (
	OfferTypeBuy  OfferType = "buy"
	OfferTypeSell OfferType = "sell"
)

// Valid reports whether t is a known offer type
func (t OfferType) Valid() bool {
	return t == OfferTypeBuy || t == OfferTypeSell
}

// Offer represents a posted intent to buy or sell the stablecoin
type Offer struct {
	ID              uuid.UUID           `json:"id"`
	UserID          uuid.UUID           `json:"userId"`
	Type            OfferType           `json:"type"`
	Amount          decimal.Decimal     `json:"amount"`
	MinLimit        decimal.Decimal     `json:"minLimit"`
	MaxLimit        decimal.Decimal     `json:"maxLimit"`
	ExchangeRate    decimal.NullDecimal `json:"exchangeRate"`
	Location        string              `json:"location"`
	Latitude        null.Float64        `json:"latitude"`
	Longitude       null.Float64        `json:"longitude"`
	Description     null.String         `json:"description"`
	PaymentMethods  []string            `json:"paymentMethods"`
	IsActive        bool                `json:"isActive"`
	BaseChainTxHash null.String         `json:"baseChainTxHash"`
	CreatedAt       time.Time           `json:"createdAt"`
	UpdatedAt       time.Time           `json:"updatedAt"`

	User *User `json:"user,omitempty"`
}

// Validate checks the offer's field invariants
func (o *Offer) Validate() error {
	if !o.Type.Valid() {
		return fmt.Errorf("type must be one of buy, sell")
	}
	if !o.Amount.IsPositive() {
		return fmt.Errorf("amount must be positive")
	}
	if !o.MinLimit.IsPositive() || !o.MaxLimit.IsPositive() {
		return fmt.Errorf("limits must be positive")
	}
	if o.MinLimit.GreaterThan(o.MaxLimit) {
		return fmt.Errorf("minLimit must not exceed maxLimit")
	}
	if o.ExchangeRate.Valid && !o.ExchangeRate.Decimal.IsPositive() {
		return fmt.Errorf("exchangeRate must be positive")
	}
	if strings.TrimSpace(o.Location) == "" {
		return fmt.Errorf("location is required")
	}
	if o.Latitude.Valid && (o.Latitude.Float64 < -90 || o.Latitude.Float64 > 90) {
		return fmt.Errorf("latitude out of range")
	}
	if o.Longitude.Valid && (o.Longitude.Float64 < -180 || o.Longitude.Float64 > 180) {
		return fmt.Errorf("longitude out of range")
	}
	if len(o.PaymentMethods) == 0 {
		return fmt.Errorf("at least one payment method required")
	}
	for _, m := range o.PaymentMethods {
		if strings.TrimSpace(m) == "" {
			return fmt.Errorf("payment methods must not be blank")
		}
	}
	if o.BaseChainTxHash.Valid && !wallet.IsValidTxHash(o.BaseChainTxHash.String) {
		return fmt.Errorf("baseChainTxHash must be a 0x-prefixed 32-byte hash")
	}
	return nil
}

// InLimits reports whether amount falls within the offer's transaction limits
func (o *Offer) InLimits(amount decimal.Decimal) bool {
	return !amount.LessThan(o.MinLimit) && !amount.GreaterThan(o.MaxLimit)
}

// OfferFilter narrows offer listings; nil fields are ignored and the rest AND-combined
type OfferFilter struct {
	Type     *OfferType
	IsActive *bool
	UserID   *uuid.UUID
}

// CreateOfferInput represents input for posting an offer.
// There is no userId field: the owner is always the authenticated caller.
type CreateOfferInput struct {
	Type            OfferType        `json:"type" binding:"required,oneof=buy sell"`
	Amount          *decimal.Decimal `json:"amount" binding:"required"`
	MinLimit        *decimal.Decimal `json:"minLimit" binding:"required"`
	MaxLimit        *decimal.Decimal `json:"maxLimit" binding:"required"`
	ExchangeRate    *decimal.Decimal `json:"exchangeRate"`
	Location        string           `json:"location" binding:"required,max=200"`
	Latitude        *float64         `json:"latitude"`
	Longitude       *float64         `json:"longitude"`
	Description     *string          `json:"description" binding:"omitempty,max=2000"`
	PaymentMethods  []string         `json:"paymentMethods" binding:"required,min=1,dive,max=50"`
	IsActive        *bool            `json:"isActive"`
	BaseChainTxHash *string          `json:"baseChainTxHash"`
}

// ToOffer builds an offer owned by userID
func (in *CreateOfferInput) ToOffer(userID uuid.UUID) *Offer {
	o := &Offer{
		UserID:          userID,
		Type:            in.Type,
		Location:        strings.TrimSpace(in.Location),
		Latitude:        null.Float64FromPtr(in.Latitude),
		Longitude:       null.Float64FromPtr(in.Longitude),
		Description:     null.StringFromPtr(in.Description),
		PaymentMethods:  in.PaymentMethods,
		IsActive:        true,
		BaseChainTxHash: null.StringFromPtr(in.BaseChainTxHash),
	}
	if in.Amount != nil {
		o.Amount = *in.Amount
	}
	if in.MinLimit != nil {
		o.MinLimit = *in.MinLimit
	}
	if in.MaxLimit != nil {
		o.MaxLimit = *in.MaxLimit
	}
	if in.ExchangeRate != nil {
		o.ExchangeRate = decimal.NewNullDecimal(*in.ExchangeRate)
	}
	if in.IsActive != nil {
		o.IsActive = *in.IsActive
	}
	return o
}

// UpdateOfferInput represents a partial offer update
type UpdateOfferInput struct {
	Type            *OfferType       `json:"type" binding:"omitempty,oneof=buy sell"`
	Amount          *decimal.Decimal `json:"amount"`
	MinLimit        *decimal.Decimal `json:"minLimit"`
	MaxLimit        *decimal.Decimal `json:"maxLimit"`
	ExchangeRate    *decimal.Decimal `json:"exchangeRate"`
	Location        *string          `json:"location" binding:"omitempty,max=200"`
	Latitude        *float64         `json:"latitude"`
	Longitude       *float64         `json:"longitude"`
	Description     *string          `json:"description" binding:"omitempty,max=2000"`
	PaymentMethods  []string         `json:"paymentMethods" binding:"omitempty,min=1,dive,max=50"`
	IsActive        *bool            `json:"isActive"`
	BaseChainTxHash *string          `json:"baseChainTxHash"`
}

// Apply copies the non-nil fields of in onto o
func (o *Offer) Apply(in *UpdateOfferInput) {
	if in.Type != nil {
		o.Type = *in.Type
	}
	if in.Amount != nil {
		o.Amount = *in.Amount
	}
	if in.MinLimit != nil {
		o.MinLimit = *in.MinLimit
	}
	if in.MaxLimit != nil {
		o.MaxLimit = *in.MaxLimit
	}
	if in.ExchangeRate != nil {
		o.ExchangeRate = decimal.NewNullDecimal(*in.ExchangeRate)
	}
	if in.Location != nil {
		o.Location = strings.TrimSpace(*in.Location)
	}
	if in.Latitude != nil {
		o.Latitude = null.Float64From(*in.Latitude)
	}
	if in.Longitude != nil {
		o.Longitude = null.Float64From(*in.Longitude)
	}
	if in.Description != nil {
		o.Description = null.StringFrom(*in.Description)
	}
	if in.PaymentMethods != nil {
		o.PaymentMethods = in.PaymentMethods
	}
	if in.IsActive != nil {
		o.IsActive = *in.IsActive
	}
	if in.BaseChainTxHash != nil {
		o.BaseChainTxHash = null.StringFrom(*in.BaseChainTxHash)
	}
}
