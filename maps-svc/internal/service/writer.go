package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/ternarybob/arbor"

	"restaurant-lookup/maps-svc/internal/domain"
	"restaurant-lookup/maps-svc/internal/index"
)

// IndexWriter persists provider results into the document index.
type IndexWriter struct {
	index       index.Index
	restaurants string
	details     string
	logger      arbor.ILogger
}

func NewIndexWriter(idx index.Index, restaurants, details string, logger arbor.ILogger) *IndexWriter {
	return &IndexWriter{
		index:       idx,
		restaurants: restaurants,
		details:     details,
		logger:      logger,
	}
}

// BulkIndexRecords writes one document per record. Failures are counted, not
// returned.
func (w *IndexWriter) BulkIndexRecords(ctx context.Context, records []domain.RestaurantRecord) index.BulkResult {
	items := make([]index.BulkItem, 0, len(records))
	for _, record := range records {
		items = append(items, index.BulkItem{ID: record.CacheKey(), Doc: record})
	}

	result := w.index.Bulk(ctx, w.restaurants, items)
	for _, err := range result.Errors {
		w.logger.Warn().Err(err).Str("index", w.restaurants).Msg("Failed to index restaurant record")
	}
	w.logger.Info().
		Str("index", w.restaurants).
		Int("succeeded", result.Succeeded).
		Int("failed", result.Failed).
		Msg("Bulk indexed restaurant records")
	return result
}

func (w *IndexWriter) StoreDetail(ctx context.Context, detail *domain.RestaurantDetail) error {
	if _, err := w.index.Index(ctx, w.details, detail.PlaceID, detail); err != nil {
		return fmt.Errorf("%w: failed to store details for %s: %v", domain.ErrCache, detail.PlaceID, err)
	}
	return nil
}

// UpsertDetail merges the reviews of detail into the stored document, or
// stores the whole detail when none exists yet.
func (w *IndexWriter) UpsertDetail(ctx context.Context, detail *domain.RestaurantDetail) error {
	_, err := w.index.Get(ctx, w.details, detail.PlaceID)
	switch {
	case errors.Is(err, index.ErrDocumentNotFound):
		return w.StoreDetail(ctx, detail)
	case err != nil:
		return fmt.Errorf("%w: failed to read details for %s: %v", domain.ErrCache, detail.PlaceID, err)
	}

	patch := map[string]any{
		"reviews":            detail.Reviews,
		"user_ratings_total": detail.UserRatingsTotal,
	}
	if err := w.index.Update(ctx, w.details, detail.PlaceID, patch); err != nil {
		return fmt.Errorf("%w: failed to update reviews for %s: %v", domain.ErrCache, detail.PlaceID, err)
	}
	return nil
}
