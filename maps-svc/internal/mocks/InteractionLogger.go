package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"restaurant-lookup/maps-svc/internal/domain"
)

type InteractionLogger struct {
	mock.Mock
}

func (_m *InteractionLogger) LogInteractions(ctx context.Context, records []domain.InteractionRecord) {
	_m.Called(ctx, records)
}

func NewInteractionLogger(t testingT) *InteractionLogger {
	mock := &InteractionLogger{}
	mock.Mock.Test(t)

	t.Cleanup(func() { mock.AssertExpectations(t) })

	return mock
}
