package service

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"sort"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/ternarybob/arbor"

	"restaurant-lookup/maps-svc/internal/domain"
	"restaurant-lookup/maps-svc/internal/index"
)

type ActivityIndices struct {
	Interactions  string
	UserReviews   string
	UserFavorites string
}

// ActivityService stores interaction history, user reviews and favorites.
// It is a pass-through to the index with no ranking or merging.
type ActivityService struct {
	index    index.Index
	indices  ActivityIndices
	validate *validator.Validate
	logger   arbor.ILogger
	now      func() time.Time
}

func NewActivityService(idx index.Index, indices ActivityIndices, logger arbor.ILogger) *ActivityService {
	return &ActivityService{
		index:    idx,
		indices:  indices,
		validate: validator.New(),
		logger:   logger,
		now:      time.Now,
	}
}

func (s *ActivityService) LogInteractions(ctx context.Context, records []domain.InteractionRecord) {
	if len(records) == 0 {
		return
	}

	items := make([]index.BulkItem, 0, len(records))
	for _, record := range records {
		if record.Timestamp.IsZero() {
			record.Timestamp = s.now().UTC()
		}
		items = append(items, index.BulkItem{Doc: record})
	}

	result := s.index.Bulk(ctx, s.indices.Interactions, items)
	if result.Failed > 0 {
		s.logger.Warn().
			Int("failed", result.Failed).
			Int("succeeded", result.Succeeded).
			Msg("Failed to log some search interactions")
	}
}

// AddUserReview stores the review, replacing any earlier review the same
// user left for the same restaurant.
func (s *ActivityService) AddUserReview(ctx context.Context, review *domain.UserReview) error {
	review.UserID = strings.TrimSpace(review.UserID)
	review.RestaurantID = strings.TrimSpace(review.RestaurantID)
	if err := s.validate.Struct(review); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}
	if review.CreatedAt.IsZero() {
		review.CreatedAt = s.now().UTC()
	}

	id := pairID(review.UserID, review.RestaurantID)
	if _, err := s.index.Index(ctx, s.indices.UserReviews, id, review); err != nil {
		return fmt.Errorf("%w: failed to store user review: %v", domain.ErrCache, err)
	}

	s.logger.Info().
		Str("user_id", review.UserID).
		Str("restaurant_id", review.RestaurantID).
		Int("rating", review.Rating).
		Msg("User review stored")
	return nil
}

func (s *ActivityService) ReviewsByRestaurant(ctx context.Context, restaurantID string) ([]domain.UserReview, error) {
	return s.userReviews(ctx, "restaurant_id", restaurantID)
}

func (s *ActivityService) ReviewsByUser(ctx context.Context, userID string) ([]domain.UserReview, error) {
	return s.userReviews(ctx, "user_id", userID)
}

func (s *ActivityService) userReviews(ctx context.Context, field, value string) ([]domain.UserReview, error) {
	reviews, err := search[domain.UserReview](ctx, s.index, s.indices.UserReviews, field, value)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(reviews, func(i, j int) bool {
		return reviews[i].CreatedAt.After(reviews[j].CreatedAt)
	})
	return reviews, nil
}

func (s *ActivityService) AddFavorite(ctx context.Context, favorite *domain.Favorite) error {
	favorite.UserID = strings.TrimSpace(favorite.UserID)
	favorite.RestaurantID = strings.TrimSpace(favorite.RestaurantID)
	if err := s.validate.Struct(favorite); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}
	if favorite.CreatedAt.IsZero() {
		favorite.CreatedAt = s.now().UTC()
	}

	id := pairID(favorite.UserID, favorite.RestaurantID)
	if _, err := s.index.Index(ctx, s.indices.UserFavorites, id, favorite); err != nil {
		return fmt.Errorf("%w: failed to store favorite: %v", domain.ErrCache, err)
	}
	return nil
}

func (s *ActivityService) FavoritesByUser(ctx context.Context, userID string) ([]domain.Favorite, error) {
	favorites, err := search[domain.Favorite](ctx, s.index, s.indices.UserFavorites, "user_id", userID)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(favorites, func(i, j int) bool {
		return favorites[i].CreatedAt.After(favorites[j].CreatedAt)
	})
	return favorites, nil
}

// pairID keys a (user, restaurant) document. Both parts are escaped so the
// separator cannot occur inside either.
func pairID(userID, restaurantID string) string {
	return url.QueryEscape(userID) + ":" + url.QueryEscape(restaurantID)
}

// search lists every document of name whose field equals value.
func search[T any](ctx context.Context, idx index.Index, name, field, value string) ([]T, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil, fmt.Errorf("%w: %s is required", domain.ErrValidation, field)
	}

	hits, err := idx.Search(ctx, name, index.ByIdentifierQuery(field, value))
	if err != nil {
		return nil, fmt.Errorf("%w: failed to search %s: %v", domain.ErrCache, name, err)
	}

	docs := make([]T, 0, len(hits))
	for _, hit := range hits {
		var doc T
		if err := json.Unmarshal(hit.Source, &doc); err != nil {
			return nil, fmt.Errorf("%w: corrupt document %s in %s: %v", domain.ErrCache, hit.ID, name, err)
		}
		docs = append(docs, doc)
	}
	return docs, nil
}
