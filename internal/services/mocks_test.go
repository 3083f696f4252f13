package services

import (
	"context"
	"net/url"

	"github.com/pennywise/client/internal/models"
	"github.com/stretchr/testify/mock"
)

type MockTransactionAPI struct {
	mock.Mock
}

func (m *MockTransactionAPI) ListFiltered(ctx context.Context, filters models.TransactionFilters, page, size int, sort string) (models.Page[models.Transaction], error) {
	args := m.Called(ctx, filters, page, size, sort)
	return args.Get(0).(models.Page[models.Transaction]), args.Error(1)
}

func (m *MockTransactionAPI) Get(ctx context.Context, id string) (models.Transaction, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(models.Transaction), args.Error(1)
}

func (m *MockTransactionAPI) Create(ctx context.Context, payload models.TransactionPayload) (models.Transaction, error) {
	args := m.Called(ctx, payload)
	return args.Get(0).(models.Transaction), args.Error(1)
}

func (m *MockTransactionAPI) Update(ctx context.Context, id string, payload models.TransactionPayload) (models.Transaction, error) {
	args := m.Called(ctx, id, payload)
	return args.Get(0).(models.Transaction), args.Error(1)
}

func (m *MockTransactionAPI) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockLister[T any] struct {
	mock.Mock
}

func (m *MockLister[T]) List(ctx context.Context, query url.Values, page, size int, sort string) (models.Page[T], error) {
	args := m.Called(ctx, query, page, size, sort)
	return args.Get(0).(models.Page[T]), args.Error(1)
}

type MockSession struct {
	mock.Mock
}

func (m *MockSession) HandleUnauthorized(ctx context.Context) {
	m.Called(ctx)
}
