package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"restaurant-lookup/maps-svc/internal/domain"
	"restaurant-lookup/maps-svc/internal/index"
)

type CacheWriter struct {
	mock.Mock
}

func (_m *CacheWriter) BulkIndexRecords(ctx context.Context, records []domain.RestaurantRecord) index.BulkResult {
	ret := _m.Called(ctx, records)

	if len(ret) == 0 {
		panic("no return value specified for BulkIndexRecords")
	}

	return ret.Get(0).(index.BulkResult)
}

func (_m *CacheWriter) StoreDetail(ctx context.Context, detail *domain.RestaurantDetail) error {
	ret := _m.Called(ctx, detail)

	if len(ret) == 0 {
		panic("no return value specified for StoreDetail")
	}

	return ret.Error(0)
}

func (_m *CacheWriter) UpsertDetail(ctx context.Context, detail *domain.RestaurantDetail) error {
	ret := _m.Called(ctx, detail)

	if len(ret) == 0 {
		panic("no return value specified for UpsertDetail")
	}

	return ret.Error(0)
}

func NewCacheWriter(t testingT) *CacheWriter {
	mock := &CacheWriter{}
	mock.Mock.Test(t)

	t.Cleanup(func() { mock.AssertExpectations(t) })

	return mock
}
