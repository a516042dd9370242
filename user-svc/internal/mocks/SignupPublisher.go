package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"restaurant-lookup/user-svc/internal/domain"
)

type SignupPublisher struct {
	mock.Mock
}

func (_m *SignupPublisher) PublishSignup(ctx context.Context, event domain.SignupEvent) error {
	ret := _m.Called(ctx, event)

	if len(ret) == 0 {
		panic("no return value specified for PublishSignup")
	}

	return ret.Error(0)
}

func NewSignupPublisher(t testingT) *SignupPublisher {
	mock := &SignupPublisher{}
	mock.Mock.Test(t)

	t.Cleanup(func() { mock.AssertExpectations(t) })

	return mock
}
