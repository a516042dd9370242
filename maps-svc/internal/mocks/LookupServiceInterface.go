package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"restaurant-lookup/maps-svc/internal/domain"
)

type LookupServiceInterface struct {
	mock.Mock
}

func (_m *LookupServiceInterface) FindNearby(ctx context.Context, query domain.LocationQuery) ([]domain.RestaurantRecord, error) {
	ret := _m.Called(ctx, query)

	if len(ret) == 0 {
		panic("no return value specified for FindNearby")
	}

	var r0 []domain.RestaurantRecord
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]domain.RestaurantRecord)
	}
	return r0, ret.Error(1)
}

func (_m *LookupServiceInterface) ResolveLocation(ctx context.Context, location string) (domain.Coordinates, error) {
	ret := _m.Called(ctx, location)

	if len(ret) == 0 {
		panic("no return value specified for ResolveLocation")
	}

	return ret.Get(0).(domain.Coordinates), ret.Error(1)
}

func (_m *LookupServiceInterface) GetDetails(ctx context.Context, placeID string) (*domain.RestaurantDetail, error) {
	ret := _m.Called(ctx, placeID)

	if len(ret) == 0 {
		panic("no return value specified for GetDetails")
	}

	var r0 *domain.RestaurantDetail
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*domain.RestaurantDetail)
	}
	return r0, ret.Error(1)
}

func (_m *LookupServiceInterface) ReverseGeocode(ctx context.Context, coords domain.Coordinates) (string, error) {
	ret := _m.Called(ctx, coords)

	if len(ret) == 0 {
		panic("no return value specified for ReverseGeocode")
	}

	return ret.String(0), ret.Error(1)
}

func (_m *LookupServiceInterface) GetReviews(ctx context.Context, placeID string) (*domain.ReviewsResult, error) {
	ret := _m.Called(ctx, placeID)

	if len(ret) == 0 {
		panic("no return value specified for GetReviews")
	}

	var r0 *domain.ReviewsResult
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*domain.ReviewsResult)
	}
	return r0, ret.Error(1)
}

func (_m *LookupServiceInterface) ShareCode(ctx context.Context, placeID string) ([]byte, error) {
	ret := _m.Called(ctx, placeID)

	if len(ret) == 0 {
		panic("no return value specified for ShareCode")
	}

	var r0 []byte
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]byte)
	}
	return r0, ret.Error(1)
}

func NewLookupServiceInterface(t testingT) *LookupServiceInterface {
	mock := &LookupServiceInterface{}
	mock.Mock.Test(t)

	t.Cleanup(func() { mock.AssertExpectations(t) })

	return mock
}
