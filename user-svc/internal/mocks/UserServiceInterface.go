package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"restaurant-lookup/user-svc/internal/domain"
)

type UserServiceInterface struct {
	mock.Mock
}

func (_m *UserServiceInterface) Signup(ctx context.Context, req domain.SignupRequest) (*domain.User, error) {
	ret := _m.Called(ctx, req)

	if len(ret) == 0 {
		panic("no return value specified for Signup")
	}

	var r0 *domain.User
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*domain.User)
	}
	return r0, ret.Error(1)
}

func (_m *UserServiceInterface) Login(ctx context.Context, req domain.LoginRequest) (*domain.Session, error) {
	ret := _m.Called(ctx, req)

	if len(ret) == 0 {
		panic("no return value specified for Login")
	}

	var r0 *domain.Session
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*domain.Session)
	}
	return r0, ret.Error(1)
}

func (_m *UserServiceInterface) Update(ctx context.Context, req domain.UpdateRequest) (*domain.User, error) {
	ret := _m.Called(ctx, req)

	if len(ret) == 0 {
		panic("no return value specified for Update")
	}

	var r0 *domain.User
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*domain.User)
	}
	return r0, ret.Error(1)
}

func (_m *UserServiceInterface) Delete(ctx context.Context, email string) error {
	ret := _m.Called(ctx, email)

	if len(ret) == 0 {
		panic("no return value specified for Delete")
	}

	return ret.Error(0)
}

func (_m *UserServiceInterface) Me(ctx context.Context, token string) (*domain.User, error) {
	ret := _m.Called(ctx, token)

	if len(ret) == 0 {
		panic("no return value specified for Me")
	}

	var r0 *domain.User
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*domain.User)
	}
	return r0, ret.Error(1)
}

func NewUserServiceInterface(t testingT) *UserServiceInterface {
	mock := &UserServiceInterface{}
	mock.Mock.Test(t)

	t.Cleanup(func() { mock.AssertExpectations(t) })

	return mock
}
