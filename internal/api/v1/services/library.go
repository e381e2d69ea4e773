package services

import (
	"context"

	"s2x/internal/api/v1/dto"
	"s2x/internal/app/library"
	"s2x/internal/app/model"
)

// LibraryLoader loads the manifest. *library.Resolver implements it.
type LibraryLoader interface {
	Load(ctx context.Context) library.Result
}

// HealthChecker queries the remote service. *remote.Client implements it.
type HealthChecker interface {
	Health(ctx context.Context) (*model.HealthStatus, error)
}

// LibraryServiceImpl implements LibraryService
type LibraryServiceImpl struct {
	loader LibraryLoader
}

// NewLibraryService creates a new library service
func NewLibraryService(loader LibraryLoader) LibraryService {
	return &LibraryServiceImpl{loader: loader}
}

// ListLibrary never fails; an unavailable manifest yields the fallback set.
func (s *LibraryServiceImpl) ListLibrary(ctx context.Context) (*dto.LibraryResponse, error) {
	result := s.loader.Load(ctx)
	return &dto.LibraryResponse{Result: result, Fallback: result.Fallback()}, nil
}

// HealthServiceImpl implements HealthService
type HealthServiceImpl struct {
	checker HealthChecker
}

// NewHealthService creates a new health service
func NewHealthService(checker HealthChecker) HealthService {
	return &HealthServiceImpl{checker: checker}
}

// CheckHealth reports degraded when the service is unreachable or unhealthy.
func (s *HealthServiceImpl) CheckHealth(ctx context.Context) (*dto.HealthResponse, error) {
	status, err := s.checker.Health(ctx)
	if err != nil {
		return &dto.HealthResponse{Status: "degraded", Error: err.Error()}, nil
	}
	resp := &dto.HealthResponse{Status: "ok", Remote: status}
	if !status.OK() {
		resp.Status = "degraded"
	}
	return resp, nil
}
