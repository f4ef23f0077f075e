package entities

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/volatiletech/null/v8"
)

// DealStatus represents the lifecycle state of a deal
type DealStatus string

const (
	DealStatusActive    DealStatus = "active"
	DealStatusCompleted DealStatus = "completed"
	DealStatusCancelled DealStatus = "cancelled"
)

// Valid reports whether s is a known deal status
func (s DealStatus) Valid() bool {
	switch s {
	case DealStatusActive, DealStatusCompleted, DealStatusCancelled:
		return true
	}
	return false
}

// IsTerminal reports whether no further status change is allowed
func (s DealStatus) IsTerminal() bool {
	return s == DealStatusCompleted || s == DealStatusCancelled
}

// Deal represents an in-person trade arrangement against one offer
type Deal struct {
	ID              uuid.UUID       `json:"id"`
	OfferID         uuid.UUID       `json:"offerId"`
	BuyerID         uuid.UUID       `json:"buyerId"`
	SellerID        uuid.UUID       `json:"sellerId"`
	Amount          decimal.Decimal `json:"amount"`
	Status          DealStatus      `json:"status"`
	BaseChainTxHash null.String     `json:"baseChainTxHash"`
	Notes           null.String     `json:"notes"`
	CreatedAt       time.Time       `json:"createdAt"`
	CompletedAt     null.Time       `json:"completedAt"`
	CancelledAt     null.Time       `json:"cancelledAt"`

	Offer  *Offer       `json:"offer,omitempty"`
	Buyer  *UserSummary `json:"buyer,omitempty"`
	Seller *UserSummary `json:"seller,omitempty"`
}

// IsParticipant reports whether userID is the buyer or the seller
func (d *Deal) IsParticipant(userID uuid.UUID) bool {
	return d.BuyerID == userID || d.SellerID == userID
}

// Transition moves the deal to next, stamping the terminal timestamp.
// Terminal deals reject every status change.
func (d *Deal) Transition(next DealStatus, at time.Time) error {
	if !next.Valid() {
		return fmt.Errorf("unknown deal status %q", next)
	}
	if d.Status.IsTerminal() {
		if next == d.Status {
			return fmt.Errorf("deal is already %s", d.Status)
		}
		return fmt.Errorf("deal is already %s and cannot become %s", d.Status, next)
	}
	switch next {
	case DealStatusCompleted:
		d.CompletedAt = null.TimeFrom(at)
	case DealStatusCancelled:
		d.CancelledAt = null.TimeFrom(at)
	}
	d.Status = next
	return nil
}

// DealFilter narrows deal listings; nil fields are ignored and the rest AND-combined
type DealFilter struct {
	BuyerID  *uuid.UUID
	SellerID *uuid.UUID
	Status   *DealStatus
}

// CreateDealInput represents input for initiating a deal.
// Buyer and seller are derived from the offer and the caller.
type CreateDealInput struct {
	OfferID         string           `json:"offerId" binding:"required,uuid"`
	Amount          *decimal.Decimal `json:"amount" binding:"required"`
	Notes           *string          `json:"notes" binding:"omitempty,max=1000"`
	BaseChainTxHash *string          `json:"baseChainTxHash"`
}

// UpdateDealInput represents a partial deal update by a participant
type UpdateDealInput struct {
	Status          *DealStatus `json:"status" binding:"omitempty,oneof=active completed cancelled"`
	BaseChainTxHash *string     `json:"baseChainTxHash"`
	Notes           *string     `json:"notes" binding:"omitempty,max=1000"`
}
