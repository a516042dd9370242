package mocks

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"restaurant-lookup/notify-svc/internal/domain"
)

type StoreInterface struct {
	mock.Mock
}

func (_m *StoreInterface) RecordNotification(ctx context.Context, notification domain.Notification) error {
	ret := _m.Called(ctx, notification)

	if len(ret) == 0 {
		panic("no return value specified for RecordNotification")
	}

	return ret.Error(0)
}

func (_m *StoreInterface) IncrementSignups(ctx context.Context, day time.Time) (int64, error) {
	ret := _m.Called(ctx, day)

	if len(ret) == 0 {
		panic("no return value specified for IncrementSignups")
	}

	var r0 int64
	if rf, ok := ret.Get(0).(func(context.Context, time.Time) int64); ok {
		r0 = rf(ctx, day)
	} else {
		r0 = ret.Get(0).(int64)
	}
	return r0, ret.Error(1)
}

func NewStoreInterface(t testingT) *StoreInterface {
	mock := &StoreInterface{}
	mock.Mock.Test(t)

	t.Cleanup(func() { mock.AssertExpectations(t) })

	return mock
}
