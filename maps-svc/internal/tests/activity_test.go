package tests

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/ternarybob/arbor"

	"restaurant-lookup/maps-svc/internal/domain"
	"restaurant-lookup/maps-svc/internal/index"
	"restaurant-lookup/maps-svc/internal/mocks"
	"restaurant-lookup/maps-svc/internal/service"
)

var activityIndices = service.ActivityIndices{
	Interactions:  "interaction_history",
	UserReviews:   "user_reviews",
	UserFavorites: "user_favorites",
}

func TestActivityService_UserReviews(t *testing.T) {
	docs, _ := setupRedisIndex(t)
	svc := service.NewActivityService(docs, activityIndices, arbor.NewLogger())
	ctx := context.Background()

	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	reviews := []*domain.UserReview{
		{UserID: "u1", RestaurantID: "r1", Rating: 4, Text: "ok", CreatedAt: base},
		{UserID: "u2", RestaurantID: "r1", Rating: 5, Text: "great", CreatedAt: base.Add(time.Hour)},
		{UserID: "u1", RestaurantID: "r2", Rating: 2, Text: "meh", CreatedAt: base.Add(2 * time.Hour)},
	}
	for _, review := range reviews {
		require.NoError(t, svc.AddUserReview(ctx, review))
	}

	byRestaurant, err := svc.ReviewsByRestaurant(ctx, "r1")
	require.NoError(t, err)
	require.Len(t, byRestaurant, 2)
	assert.Equal(t, "u2", byRestaurant[0].UserID)
	assert.Equal(t, "u1", byRestaurant[1].UserID)

	byUser, err := svc.ReviewsByUser(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, byUser, 2)
	assert.Equal(t, "r2", byUser[0].RestaurantID)

	// same user and restaurant replaces the earlier review
	require.NoError(t, svc.AddUserReview(ctx, &domain.UserReview{UserID: "u1", RestaurantID: "r1", Rating: 1, CreatedAt: base.Add(3 * time.Hour)}))
	byRestaurant, err = svc.ReviewsByRestaurant(ctx, "r1")
	require.NoError(t, err)
	require.Len(t, byRestaurant, 2)
	assert.Equal(t, 1, byRestaurant[0].Rating)

	none, err := svc.ReviewsByRestaurant(ctx, "r404")
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestActivityService_AddUserReviewValidation(t *testing.T) {
	docs := mocks.NewIndex(t)
	svc := service.NewActivityService(docs, activityIndices, arbor.NewLogger())

	tests := []struct {
		name   string
		review domain.UserReview
	}{
		{name: "missing_user", review: domain.UserReview{RestaurantID: "r1", Rating: 3}},
		{name: "blank_restaurant", review: domain.UserReview{UserID: "u1", RestaurantID: "  ", Rating: 3}},
		{name: "rating_too_high", review: domain.UserReview{UserID: "u1", RestaurantID: "r1", Rating: 6}},
		{name: "rating_zero", review: domain.UserReview{UserID: "u1", RestaurantID: "r1"}},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			err := svc.AddUserReview(context.Background(), &testCase.review)
			assert.ErrorIs(t, err, domain.ErrValidation)
		})
	}
}

func TestActivityService_SeparatorInIdentifiers(t *testing.T) {
	docs, _ := setupRedisIndex(t)
	svc := service.NewActivityService(docs, activityIndices, arbor.NewLogger())
	ctx := context.Background()

	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	require.NoError(t, svc.AddUserReview(ctx, &domain.UserReview{UserID: "a:b", RestaurantID: "c", Rating: 4, CreatedAt: base}))
	require.NoError(t, svc.AddUserReview(ctx, &domain.UserReview{UserID: "a", RestaurantID: "b:c", Rating: 2, CreatedAt: base.Add(time.Hour)}))

	first, err := svc.ReviewsByUser(ctx, "a:b")
	require.NoError(t, err)
	require.Len(t, first, 1)
	assert.Equal(t, 4, first[0].Rating)

	second, err := svc.ReviewsByUser(ctx, "a")
	require.NoError(t, err)
	require.Len(t, second, 1)
	assert.Equal(t, "b:c", second[0].RestaurantID)

	byRestaurant, err := svc.ReviewsByRestaurant(ctx, "c")
	require.NoError(t, err)
	assert.Len(t, byRestaurant, 1)

	require.NoError(t, svc.AddFavorite(ctx, &domain.Favorite{UserID: "a:b", RestaurantID: "c"}))
	require.NoError(t, svc.AddFavorite(ctx, &domain.Favorite{UserID: "a", RestaurantID: "b:c"}))

	favorites, err := svc.FavoritesByUser(ctx, "a:b")
	require.NoError(t, err)
	assert.Len(t, favorites, 1)
	favorites, err = svc.FavoritesByUser(ctx, "a")
	require.NoError(t, err)
	assert.Len(t, favorites, 1)
}

func TestActivityService_Favorites(t *testing.T) {
	docs, _ := setupRedisIndex(t)
	svc := service.NewActivityService(docs, activityIndices, arbor.NewLogger())
	ctx := context.Background()

	favorite := &domain.Favorite{UserID: "u1", RestaurantID: "r1", Name: "Umi"}
	require.NoError(t, svc.AddFavorite(ctx, favorite))
	assert.False(t, favorite.CreatedAt.IsZero())

	require.NoError(t, svc.AddFavorite(ctx, &domain.Favorite{UserID: "u2", RestaurantID: "r1"}))

	favorites, err := svc.FavoritesByUser(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, favorites, 1)
	assert.Equal(t, "Umi", favorites[0].Name)

	err = svc.AddFavorite(ctx, &domain.Favorite{UserID: "u1"})
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = svc.FavoritesByUser(ctx, "")
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestActivityService_IndexUnavailable(t *testing.T) {
	docs, mr := setupRedisIndex(t)
	svc := service.NewActivityService(docs, activityIndices, arbor.NewLogger())
	mr.Close()

	err := svc.AddFavorite(context.Background(), &domain.Favorite{UserID: "u1", RestaurantID: "r1"})
	assert.ErrorIs(t, err, domain.ErrCache)

	_, err = svc.ReviewsByUser(context.Background(), "u1")
	assert.ErrorIs(t, err, domain.ErrCache)
}

func TestActivityService_LogInteractions(t *testing.T) {
	docs := mocks.NewIndex(t)
	svc := service.NewActivityService(docs, activityIndices, arbor.NewLogger())

	records := []domain.InteractionRecord{
		{RestaurantID: "p1", Name: "Umi", SearchedLocation: domain.GeoPoint{Lat: 47.6, Lon: -122.3}, Keyword: "sushi"},
		{RestaurantID: "p2", Name: "Kura", SearchedLocation: domain.GeoPoint{Lat: 47.6, Lon: -122.3}, Keyword: "sushi"},
	}

	docs.On("Bulk", mock.Anything, "interaction_history", mock.MatchedBy(func(items []index.BulkItem) bool {
		if len(items) != 2 {
			return false
		}
		for _, item := range items {
			record, ok := item.Doc.(domain.InteractionRecord)
			if !ok || item.ID != "" || record.Timestamp.IsZero() {
				return false
			}
		}
		return true
	})).Return(index.BulkResult{Succeeded: 1, Failed: 1}).Once()

	svc.LogInteractions(context.Background(), records)

	svc.LogInteractions(context.Background(), nil)
}
