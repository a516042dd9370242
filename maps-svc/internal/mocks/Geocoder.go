package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"restaurant-lookup/maps-svc/internal/domain"
)

type Geocoder struct {
	mock.Mock
}

func (_m *Geocoder) Geocode(ctx context.Context, address string) (domain.Coordinates, error) {
	ret := _m.Called(ctx, address)

	if len(ret) == 0 {
		panic("no return value specified for Geocode")
	}

	return ret.Get(0).(domain.Coordinates), ret.Error(1)
}

func (_m *Geocoder) ReverseGeocode(ctx context.Context, lat float64, lon float64) (string, error) {
	ret := _m.Called(ctx, lat, lon)

	if len(ret) == 0 {
		panic("no return value specified for ReverseGeocode")
	}

	return ret.String(0), ret.Error(1)
}

func NewGeocoder(t testingT) *Geocoder {
	mock := &Geocoder{}
	mock.Mock.Test(t)

	t.Cleanup(func() { mock.AssertExpectations(t) })

	return mock
}
