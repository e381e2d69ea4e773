package testutil

import (
	"context"
	"testing"

	"github.com/stretchr/testify/mock"

	"s2x/internal/app/model"
)

// MockHistoryStore is a testify mock of repository.HistoryStore.
type MockHistoryStore struct {
	mock.Mock
}

func NewMockHistoryStore(t *testing.T) *MockHistoryStore {
	m := &MockHistoryStore{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockHistoryStore) Insert(ctx context.Context, entry model.HistoryEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockHistoryStore) List(ctx context.Context) ([]model.HistoryEntry, error) {
	args := m.Called(ctx)
	if v := args.Get(0); v != nil {
		return v.([]model.HistoryEntry), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockHistoryStore) Clear(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockHistoryStore) Close() error {
	args := m.Called()
	return args.Error(0)
}
