package services

import (
	"context"

	"s2x/internal/api/v1/dto"
	"s2x/internal/app/repository"
)

// HistoryServiceImpl implements HistoryService
type HistoryServiceImpl struct {
	store repository.HistoryStore
}

// NewHistoryService creates a new history service
func NewHistoryService(store repository.HistoryStore) HistoryService {
	return &HistoryServiceImpl{store: store}
}

func (s *HistoryServiceImpl) ListHistory(ctx context.Context) (*dto.HistoryResponse, error) {
	entries, err := s.store.List(ctx)
	if err != nil {
		return nil, err
	}
	return &dto.HistoryResponse{Entries: entries, Total: len(entries)}, nil
}

func (s *HistoryServiceImpl) ClearHistory(ctx context.Context) error {
	return s.store.Clear(ctx)
}
