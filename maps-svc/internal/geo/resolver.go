package geo

import (
	"context"
	"fmt"
	"strings"

	"github.com/ternarybob/arbor"

	"restaurant-lookup/maps-svc/internal/domain"
)

// Geocoder is the upstream geocoding capability.
type Geocoder interface {
	Geocode(ctx context.Context, address string) (domain.Coordinates, error)
	ReverseGeocode(ctx context.Context, lat, lon float64) (string, error)
}

// Resolver turns free-text locations into coordinates and back. It does not
// cache; caching happens at the restaurant search level.
type Resolver struct {
	geocoder Geocoder
	logger   arbor.ILogger
}

func NewResolver(geocoder Geocoder, logger arbor.ILogger) *Resolver {
	return &Resolver{geocoder: geocoder, logger: logger}
}

func (r *Resolver) Resolve(ctx context.Context, address string) (domain.Coordinates, error) {
	address = strings.TrimSpace(address)
	if address == "" {
		return domain.Coordinates{}, fmt.Errorf("%w: location is required", domain.ErrValidation)
	}

	coords, err := r.geocoder.Geocode(ctx, address)
	if err != nil {
		r.logger.Warn().Str("location", address).Err(err).Msg("Failed to resolve location")
		return domain.Coordinates{}, err
	}
	if err := coords.Validate(); err != nil {
		return domain.Coordinates{}, fmt.Errorf("%w: geocoder returned %v", domain.ErrUpstream, err)
	}

	r.logger.Debug().
		Str("location", address).
		Float64("latitude", coords.Latitude).
		Float64("longitude", coords.Longitude).
		Msg("Resolved location")
	return coords, nil
}

func (r *Resolver) ReverseResolve(ctx context.Context, coords domain.Coordinates) (string, error) {
	if err := coords.Validate(); err != nil {
		return "", err
	}

	address, err := r.geocoder.ReverseGeocode(ctx, coords.Latitude, coords.Longitude)
	if err != nil {
		r.logger.Warn().
			Float64("latitude", coords.Latitude).
			Float64("longitude", coords.Longitude).
			Err(err).
			Msg("Failed to reverse geocode")
		return "", err
	}
	if strings.TrimSpace(address) == "" {
		return "", fmt.Errorf("%w: no address for %v,%v", domain.ErrNotFound, coords.Latitude, coords.Longitude)
	}
	return address, nil
}
