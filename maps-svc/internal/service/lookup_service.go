package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/ternarybob/arbor"

	"restaurant-lookup/maps-svc/internal/domain"
	"restaurant-lookup/maps-svc/internal/index"
)

const (
	DefaultProbeTimeout = 2 * time.Second
	DefaultWriteTimeout = 5 * time.Second
)

type LookupSettings struct {
	Restaurants  string
	Details      string
	ProbeTimeout time.Duration
	WriteTimeout time.Duration
}

// TermFields lists the fields each index is searched by.
func TermFields(settings LookupSettings, activity ActivityIndices) []index.Option {
	return []index.Option{
		index.WithTermFields(settings.Restaurants, "keyword", "latitude", "longitude"),
		index.WithTermFields(settings.Details, "place_id"),
		index.WithTermFields(activity.Interactions, "restaurant_id", "keyword"),
		index.WithTermFields(activity.UserReviews, "user_id", "restaurant_id"),
		index.WithTermFields(activity.UserFavorites, "user_id", "restaurant_id"),
	}
}

// LookupService answers restaurant queries from the index when it can and
// from the provider when it cannot, writing provider results back.
type LookupService struct {
	resolver     LocationResolver
	provider     PlacesProvider
	cache        index.Index
	writer       CacheWriter
	interactions InteractionLogger
	qr           QRGenerator
	settings     LookupSettings
	logger       arbor.ILogger
	now          func() time.Time
}

func NewLookupService(
	resolver LocationResolver,
	provider PlacesProvider,
	cache index.Index,
	writer CacheWriter,
	interactions InteractionLogger,
	qr QRGenerator,
	settings LookupSettings,
	logger arbor.ILogger,
) *LookupService {
	if settings.ProbeTimeout <= 0 {
		settings.ProbeTimeout = DefaultProbeTimeout
	}
	if settings.WriteTimeout <= 0 {
		settings.WriteTimeout = DefaultWriteTimeout
	}
	return &LookupService{
		resolver:     resolver,
		provider:     provider,
		cache:        cache,
		writer:       writer,
		interactions: interactions,
		qr:           qr,
		settings:     settings,
		logger:       logger,
		now:          time.Now,
	}
}

// FindNearby returns restaurants around the query location, best rated first.
// Provider failures yield an empty list rather than an error.
func (s *LookupService) FindNearby(ctx context.Context, query domain.LocationQuery) ([]domain.RestaurantRecord, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	coords, err := s.coordinatesFor(ctx, query)
	if err != nil {
		return nil, err
	}

	if cached, ok := s.probeNearby(ctx, coords, query); ok {
		s.logger.Info().
			Str("location", query.Location).
			Int("radius", query.Radius).
			Str("keyword", query.Keyword).
			Int("results_count", len(cached)).
			Msg("Nearby restaurants served from cache")
		return RankByRating(cached), nil
	}

	places, err := s.provider.NearbySearch(ctx, coords, query.Radius, query.Keyword)
	if err != nil {
		s.logger.Warn().
			Err(err).
			Float64("latitude", coords.Latitude).
			Float64("longitude", coords.Longitude).
			Msg("Nearby search failed upstream, returning no restaurants")
		return []domain.RestaurantRecord{}, nil
	}

	records := make([]domain.RestaurantRecord, 0, len(places))
	for _, place := range places {
		records = append(records, domain.RestaurantRecord{
			ID:           place.ID,
			Name:         place.Name,
			Address:      place.Address,
			Rating:       place.Rating,
			Latitude:     coords.Latitude,
			Longitude:    coords.Longitude,
			Location:     coords.Point(),
			SearchRadius: query.Radius,
			Keyword:      query.Keyword,
		})
	}
	records = RankByRating(records)

	s.writeBack(ctx, coords, query.Keyword, records)
	return records, nil
}

func (s *LookupService) coordinatesFor(ctx context.Context, query domain.LocationQuery) (domain.Coordinates, error) {
	if query.Coordinates != nil {
		return *query.Coordinates, nil
	}
	return s.resolver.Resolve(ctx, query.Location)
}

// probeNearby reports a hit only when at least one cached record decodes and
// came from a search at least as wide as the query. Probe failures count as
// misses.
func (s *LookupService) probeNearby(ctx context.Context, coords domain.Coordinates, query domain.LocationQuery) ([]domain.RestaurantRecord, bool) {
	probeCtx, cancel := context.WithTimeout(ctx, s.settings.ProbeTimeout)
	defer cancel()

	hits, err := s.cache.Search(probeCtx, s.settings.Restaurants,
		index.NearbyQuery(coords.Latitude, coords.Longitude, query.Radius, query.Keyword))
	if err != nil {
		s.logger.Warn().Err(err).Str("index", s.settings.Restaurants).Msg("Cache probe failed, treating as miss")
		return nil, false
	}

	// Overlapping searches store the same place more than once; hits come
	// nearest first, so the first copy wins.
	seen := make(map[string]struct{}, len(hits))
	records := make([]domain.RestaurantRecord, 0, len(hits))
	for _, hit := range hits {
		var record domain.RestaurantRecord
		if err := json.Unmarshal(hit.Source, &record); err != nil {
			s.logger.Warn().Err(err).Str("id", hit.ID).Msg("Skipping undecodable cached record")
			continue
		}
		if record.SearchRadius < query.Radius {
			continue
		}
		if _, dup := seen[record.ID]; dup {
			continue
		}
		seen[record.ID] = struct{}{}
		records = append(records, record)
	}
	return records, len(records) > 0
}

// writeBack persists records and their interaction history. It runs after
// the caller's request may have been cancelled and never fails the search.
func (s *LookupService) writeBack(ctx context.Context, coords domain.Coordinates, keyword string, records []domain.RestaurantRecord) {
	if len(records) == 0 {
		return
	}

	writeCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.settings.WriteTimeout)
	defer cancel()

	result := s.writer.BulkIndexRecords(writeCtx, records)
	if result.Failed > 0 {
		s.logger.Warn().
			Int("succeeded", result.Succeeded).
			Int("failed", result.Failed).
			Msg("Write-back partially failed")
	}

	timestamp := s.now().UTC()
	interactions := make([]domain.InteractionRecord, 0, len(records))
	for _, record := range records {
		interactions = append(interactions, domain.InteractionRecord{
			RestaurantID:     record.ID,
			Name:             record.Name,
			SearchedLocation: coords.Point(),
			Keyword:          keyword,
			Timestamp:        timestamp,
		})
	}
	s.interactions.LogInteractions(writeCtx, interactions)
}

func (s *LookupService) ResolveLocation(ctx context.Context, location string) (domain.Coordinates, error) {
	return s.resolver.Resolve(ctx, location)
}

func (s *LookupService) ReverseGeocode(ctx context.Context, coords domain.Coordinates) (string, error) {
	return s.resolver.ReverseResolve(ctx, coords)
}

// GetDetails serves the place from the index, or fetches and stores it.
// Provider failures propagate and nothing is stored.
func (s *LookupService) GetDetails(ctx context.Context, placeID string) (*domain.RestaurantDetail, error) {
	placeID = strings.TrimSpace(placeID)
	if placeID == "" {
		return nil, fmt.Errorf("%w: restaurant id is required", domain.ErrValidation)
	}

	if detail, ok := s.cachedDetail(ctx, placeID); ok {
		s.logger.Debug().Str("place_id", placeID).Msg("Details served from cache")
		return detail, nil
	}

	detail, err := s.provider.PlaceDetails(ctx, placeID)
	if err != nil {
		return nil, err
	}

	s.persist(ctx, placeID, func(writeCtx context.Context) error {
		return s.writer.StoreDetail(writeCtx, detail)
	})
	return detail, nil
}

// GetReviews returns the cached reviews of a place when present. Otherwise it
// fetches the live details and merges any reviews into the cached document.
func (s *LookupService) GetReviews(ctx context.Context, placeID string) (*domain.ReviewsResult, error) {
	placeID = strings.TrimSpace(placeID)
	if placeID == "" {
		return nil, fmt.Errorf("%w: restaurant id is required", domain.ErrValidation)
	}

	cached, ok := s.cachedDetail(ctx, placeID)
	if ok && len(cached.Reviews) > 0 {
		return reviewsOf(cached), nil
	}

	live, err := s.provider.PlaceDetails(ctx, placeID)
	if err != nil {
		return nil, err
	}

	if len(live.Reviews) == 0 {
		if !ok {
			s.persist(ctx, placeID, func(writeCtx context.Context) error {
				return s.writer.StoreDetail(writeCtx, live)
			})
		}
		return &domain.ReviewsResult{Reviews: []domain.Review{}, Total: 0}, nil
	}

	s.persist(ctx, placeID, func(writeCtx context.Context) error {
		return s.writer.UpsertDetail(writeCtx, live)
	})
	return reviewsOf(live), nil
}

func (s *LookupService) ShareCode(_ context.Context, placeID string) ([]byte, error) {
	placeID = strings.TrimSpace(placeID)
	if placeID == "" {
		return nil, fmt.Errorf("%w: restaurant id is required", domain.ErrValidation)
	}
	png, err := s.qr.Generate(placeID)
	if err != nil {
		return nil, fmt.Errorf("failed to generate share code: %w", err)
	}
	return png, nil
}

func (s *LookupService) cachedDetail(ctx context.Context, placeID string) (*domain.RestaurantDetail, bool) {
	probeCtx, cancel := context.WithTimeout(ctx, s.settings.ProbeTimeout)
	defer cancel()

	query := index.ByIdentifierQuery("place_id", placeID)
	query.Size = 1
	hits, err := s.cache.Search(probeCtx, s.settings.Details, query)
	if err != nil {
		s.logger.Warn().Err(err).Str("place_id", placeID).Msg("Details probe failed, treating as miss")
		return nil, false
	}
	if len(hits) == 0 {
		return nil, false
	}

	var detail domain.RestaurantDetail
	if err := json.Unmarshal(hits[0].Source, &detail); err != nil {
		s.logger.Warn().Err(err).Str("place_id", placeID).Msg("Skipping undecodable cached details")
		return nil, false
	}
	return &detail, true
}

func (s *LookupService) persist(ctx context.Context, placeID string, write func(context.Context) error) {
	writeCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.settings.WriteTimeout)
	defer cancel()

	if err := write(writeCtx); err != nil {
		s.logger.Warn().Err(err).Str("place_id", placeID).Msg("Failed to cache details")
	}
}

func reviewsOf(detail *domain.RestaurantDetail) *domain.ReviewsResult {
	total := detail.UserRatingsTotal
	if total == 0 {
		total = len(detail.Reviews)
	}
	return &domain.ReviewsResult{Reviews: detail.Reviews, Total: total}
}
