package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"restaurant-lookup/maps-svc/internal/domain"
)

type ActivityServiceInterface struct {
	mock.Mock
}

func (_m *ActivityServiceInterface) LogInteractions(ctx context.Context, records []domain.InteractionRecord) {
	_m.Called(ctx, records)
}

func (_m *ActivityServiceInterface) AddUserReview(ctx context.Context, review *domain.UserReview) error {
	ret := _m.Called(ctx, review)

	if len(ret) == 0 {
		panic("no return value specified for AddUserReview")
	}

	return ret.Error(0)
}

func (_m *ActivityServiceInterface) ReviewsByRestaurant(ctx context.Context, restaurantID string) ([]domain.UserReview, error) {
	ret := _m.Called(ctx, restaurantID)

	if len(ret) == 0 {
		panic("no return value specified for ReviewsByRestaurant")
	}

	var r0 []domain.UserReview
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]domain.UserReview)
	}
	return r0, ret.Error(1)
}

func (_m *ActivityServiceInterface) ReviewsByUser(ctx context.Context, userID string) ([]domain.UserReview, error) {
	ret := _m.Called(ctx, userID)

	if len(ret) == 0 {
		panic("no return value specified for ReviewsByUser")
	}

	var r0 []domain.UserReview
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]domain.UserReview)
	}
	return r0, ret.Error(1)
}

func (_m *ActivityServiceInterface) AddFavorite(ctx context.Context, favorite *domain.Favorite) error {
	ret := _m.Called(ctx, favorite)

	if len(ret) == 0 {
		panic("no return value specified for AddFavorite")
	}

	return ret.Error(0)
}

func (_m *ActivityServiceInterface) FavoritesByUser(ctx context.Context, userID string) ([]domain.Favorite, error) {
	ret := _m.Called(ctx, userID)

	if len(ret) == 0 {
		panic("no return value specified for FavoritesByUser")
	}

	var r0 []domain.Favorite
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]domain.Favorite)
	}
	return r0, ret.Error(1)
}

func NewActivityServiceInterface(t testingT) *ActivityServiceInterface {
	mock := &ActivityServiceInterface{}
	mock.Mock.Test(t)

	t.Cleanup(func() { mock.AssertExpectations(t) })

	return mock
}
