package entities

import (
	"github.com/shopspring/decimal"
)

// MarkerTypeMixed is the marker type when grouped offers disagree on type
const MarkerTypeMixed = "mixed"

// OfferMarker is one map pin covering every offer at a rounded position
type OfferMarker struct {
	Latitude  float64        `json:"latitude"`
	Longitude float64        `json:"longitude"`
	Count     int            `json:"count"`
	Type      string         `json:"type"`
	Offers    []*Offer       `json:"offers"`
	Summary   *MarkerSummary `json:"summary"`
}

// MarkerSummary describes a marker's offers. The single-offer fields are
// only set when the marker holds exactly one offer.
type MarkerSummary struct {
	Count       int             `json:"count"`
	BuyCount    int             `json:"buyCount"`
	SellCount   int             `json:"sellCount"`
	TotalAmount decimal.Decimal `json:"totalAmount"`

	Type     OfferType        `json:"type,omitempty"`
	Amount   *decimal.Decimal `json:"amount,omitempty"`
	MinLimit *decimal.Decimal `json:"minLimit,omitempty"`
	MaxLimit *decimal.Decimal `json:"maxLimit,omitempty"`
	Location string           `json:"location,omitempty"`
}

// NewOfferMarker builds a marker at the given position. offers must be non-empty.
func NewOfferMarker(latitude, longitude float64, offers []*Offer) *OfferMarker {
	summary := &MarkerSummary{Count: len(offers), TotalAmount: decimal.Zero}
	for _, o := range offers {
		switch o.Type {
		case OfferTypeBuy:
			summary.BuyCount++
		case OfferTypeSell:
			summary.SellCount++
		}
		summary.TotalAmount = summary.TotalAmount.Add(o.Amount)
	}

	markerType := string(offers[0].Type)
	if summary.BuyCount > 0 && summary.SellCount > 0 {
		markerType = MarkerTypeMixed
	}

	if len(offers) == 1 {
		o := offers[0]
		summary.Type = o.Type
		summary.Amount = &o.Amount
		summary.MinLimit = &o.MinLimit
		summary.MaxLimit = &o.MaxLimit
		summary.Location = o.Location
	}

	return &OfferMarker{
		Latitude:  latitude,
		Longitude: longitude,
		Count:     len(offers),
		Type:      markerType,
		Offers:    offers,
		Summary:   summary,
	}
}
