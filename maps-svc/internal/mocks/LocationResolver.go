package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"restaurant-lookup/maps-svc/internal/domain"
)

type LocationResolver struct {
	mock.Mock
}

func (_m *LocationResolver) Resolve(ctx context.Context, address string) (domain.Coordinates, error) {
	ret := _m.Called(ctx, address)

	if len(ret) == 0 {
		panic("no return value specified for Resolve")
	}

	return ret.Get(0).(domain.Coordinates), ret.Error(1)
}

func (_m *LocationResolver) ReverseResolve(ctx context.Context, coords domain.Coordinates) (string, error) {
	ret := _m.Called(ctx, coords)

	if len(ret) == 0 {
		panic("no return value specified for ReverseResolve")
	}

	return ret.String(0), ret.Error(1)
}

func NewLocationResolver(t testingT) *LocationResolver {
	mock := &LocationResolver{}
	mock.Mock.Test(t)

	t.Cleanup(func() { mock.AssertExpectations(t) })

	return mock
}
