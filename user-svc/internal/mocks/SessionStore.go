package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"restaurant-lookup/user-svc/internal/domain"
)

type SessionStore struct {
	mock.Mock
}

func (_m *SessionStore) Save(ctx context.Context, session domain.Session) error {
	ret := _m.Called(ctx, session)

	if len(ret) == 0 {
		panic("no return value specified for Save")
	}

	return ret.Error(0)
}

func (_m *SessionStore) Email(ctx context.Context, token string) (string, error) {
	ret := _m.Called(ctx, token)

	if len(ret) == 0 {
		panic("no return value specified for Email")
	}

	return ret.String(0), ret.Error(1)
}

func (_m *SessionStore) RevokeAll(ctx context.Context, email string) error {
	ret := _m.Called(ctx, email)

	if len(ret) == 0 {
		panic("no return value specified for RevokeAll")
	}

	return ret.Error(0)
}

func NewSessionStore(t testingT) *SessionStore {
	mock := &SessionStore{}
	mock.Mock.Test(t)

	t.Cleanup(func() { mock.AssertExpectations(t) })

	return mock
}
