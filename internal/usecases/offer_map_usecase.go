package usecases

import (
	"context"

	"localtrade.backend/internal/domain/entities"
	"localtrade.backend/internal/domain/repositories"
	"localtrade.backend/pkg/geo"
)

// OfferMapUsecase groups offers into map markers
type OfferMapUsecase struct {
	offerRepo repositories.OfferRepository
	locator   geo.Locator
}

// NewOfferMapUsecase creates a new offer map usecase
func NewOfferMapUsecase(offerRepo repositories.OfferRepository, locator geo.Locator) *OfferMapUsecase {
	return &OfferMapUsecase{offerRepo: offerRepo, locator: locator}
}

// Markers lists offers matching filter and groups them by position. Explicit
// coordinates win over the locator; offers the locator cannot place are skipped.
func (u *OfferMapUsecase) Markers(ctx context.Context, filter entities.OfferFilter) ([]*entities.OfferMarker, error) {
	offers, err := u.offerRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	points := make([]geo.Point[*entities.Offer], 0, len(offers))
	for _, o := range offers {
		coords, ok := u.position(o)
		if !ok {
			continue
		}
		points = append(points, geo.Point[*entities.Offer]{Coordinates: coords, Item: o})
	}

	clusters := geo.Group(points)
	markers := make([]*entities.OfferMarker, 0, len(clusters))
	for _, c := range clusters {
		markers = append(markers, entities.NewOfferMarker(c.Latitude, c.Longitude, c.Items))
	}
	return markers, nil
}

func (u *OfferMapUsecase) position(o *entities.Offer) (geo.Coordinates, bool) {
	if o.Latitude.Valid && o.Longitude.Valid {
		return geo.Coordinates{Latitude: o.Latitude.Float64, Longitude: o.Longitude.Float64}, true
	}
	if u.locator == nil {
		return geo.Coordinates{}, false
	}
	return u.locator.Locate(o.Location)
}
