package service

import (
	"context"

	"restaurant-lookup/maps-svc/internal/domain"
	"restaurant-lookup/maps-svc/internal/index"
)

type LookupServiceInterface interface {
	FindNearby(ctx context.Context, query domain.LocationQuery) ([]domain.RestaurantRecord, error)
	ResolveLocation(ctx context.Context, location string) (domain.Coordinates, error)
	GetDetails(ctx context.Context, placeID string) (*domain.RestaurantDetail, error)
	ReverseGeocode(ctx context.Context, coords domain.Coordinates) (string, error)
	GetReviews(ctx context.Context, placeID string) (*domain.ReviewsResult, error)
	ShareCode(ctx context.Context, placeID string) ([]byte, error)
}

type ActivityServiceInterface interface {
	InteractionLogger
	AddUserReview(ctx context.Context, review *domain.UserReview) error
	ReviewsByRestaurant(ctx context.Context, restaurantID string) ([]domain.UserReview, error)
	ReviewsByUser(ctx context.Context, userID string) ([]domain.UserReview, error)
	AddFavorite(ctx context.Context, favorite *domain.Favorite) error
	FavoritesByUser(ctx context.Context, userID string) ([]domain.Favorite, error)
}

type LocationResolver interface {
	Resolve(ctx context.Context, address string) (domain.Coordinates, error)
	ReverseResolve(ctx context.Context, coords domain.Coordinates) (string, error)
}

type PlacesProvider interface {
	NearbySearch(ctx context.Context, coords domain.Coordinates, radius int, keyword string) ([]domain.Place, error)
	PlaceDetails(ctx context.Context, placeID string) (*domain.RestaurantDetail, error)
}

type CacheWriter interface {
	BulkIndexRecords(ctx context.Context, records []domain.RestaurantRecord) index.BulkResult
	StoreDetail(ctx context.Context, detail *domain.RestaurantDetail) error
	UpsertDetail(ctx context.Context, detail *domain.RestaurantDetail) error
}

// InteractionLogger records search interactions. Implementations log their
// own failures; callers never see them.
type InteractionLogger interface {
	LogInteractions(ctx context.Context, records []domain.InteractionRecord)
}

type QRGenerator interface {
	Generate(placeID string) ([]byte, error)
}

var (
	_ LookupServiceInterface   = (*LookupService)(nil)
	_ ActivityServiceInterface = (*ActivityService)(nil)
	_ CacheWriter              = (*IndexWriter)(nil)
	_ QRGenerator              = DefaultQRGenerator{}
)
