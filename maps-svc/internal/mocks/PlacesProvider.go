package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"restaurant-lookup/maps-svc/internal/domain"
)

type PlacesProvider struct {
	mock.Mock
}

func (_m *PlacesProvider) NearbySearch(ctx context.Context, coords domain.Coordinates, radius int, keyword string) ([]domain.Place, error) {
	ret := _m.Called(ctx, coords, radius, keyword)

	if len(ret) == 0 {
		panic("no return value specified for NearbySearch")
	}

	var r0 []domain.Place
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]domain.Place)
	}
	return r0, ret.Error(1)
}

func (_m *PlacesProvider) PlaceDetails(ctx context.Context, placeID string) (*domain.RestaurantDetail, error) {
	ret := _m.Called(ctx, placeID)

	if len(ret) == 0 {
		panic("no return value specified for PlaceDetails")
	}

	var r0 *domain.RestaurantDetail
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*domain.RestaurantDetail)
	}
	return r0, ret.Error(1)
}

func NewPlacesProvider(t testingT) *PlacesProvider {
	mock := &PlacesProvider{}
	mock.Mock.Test(t)

	t.Cleanup(func() { mock.AssertExpectations(t) })

	return mock
}
