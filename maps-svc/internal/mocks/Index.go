package mocks

import (
	"context"
	"encoding/json"

	"github.com/stretchr/testify/mock"

	"restaurant-lookup/maps-svc/internal/index"
)

type Index struct {
	mock.Mock
}

func (_m *Index) Search(ctx context.Context, name string, query index.Query) ([]index.Hit, error) {
	ret := _m.Called(ctx, name, query)

	if len(ret) == 0 {
		panic("no return value specified for Search")
	}

	var r0 []index.Hit
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]index.Hit)
	}
	return r0, ret.Error(1)
}

func (_m *Index) Index(ctx context.Context, name string, id string, doc any) (string, error) {
	ret := _m.Called(ctx, name, id, doc)

	if len(ret) == 0 {
		panic("no return value specified for Index")
	}

	return ret.String(0), ret.Error(1)
}

func (_m *Index) Update(ctx context.Context, name string, id string, partial any) error {
	ret := _m.Called(ctx, name, id, partial)

	if len(ret) == 0 {
		panic("no return value specified for Update")
	}

	return ret.Error(0)
}

func (_m *Index) Get(ctx context.Context, name string, id string) (json.RawMessage, error) {
	ret := _m.Called(ctx, name, id)

	if len(ret) == 0 {
		panic("no return value specified for Get")
	}

	var r0 json.RawMessage
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(json.RawMessage)
	}
	return r0, ret.Error(1)
}

func (_m *Index) Bulk(ctx context.Context, name string, items []index.BulkItem) index.BulkResult {
	ret := _m.Called(ctx, name, items)

	if len(ret) == 0 {
		panic("no return value specified for Bulk")
	}

	return ret.Get(0).(index.BulkResult)
}

func NewIndex(t testingT) *Index {
	mock := &Index{}
	mock.Mock.Test(t)

	t.Cleanup(func() { mock.AssertExpectations(t) })

	return mock
}
