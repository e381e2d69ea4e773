package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"s2x/internal/api/middleware"
	"s2x/internal/api/v1/dto"
	"s2x/internal/app/api/remote"
	apperrors "s2x/internal/app/errors"
	"s2x/internal/app/jobs"
	"s2x/internal/app/model"
)

type mockTranscriptionService struct {
	mock.Mock
}

func (m *mockTranscriptionService) CreateTranscription(ctx context.Context, req *dto.CreateTranscriptionRequest) (*dto.TranscriptionResponse, error) {
	args := m.Called(ctx, req)
	if resp := args.Get(0); resp != nil {
		return resp.(*dto.TranscriptionResponse), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockTranscriptionService) CurrentTranscription(ctx context.Context) (*dto.TranscriptionResponse, error) {
	args := m.Called(ctx)
	if resp := args.Get(0); resp != nil {
		return resp.(*dto.TranscriptionResponse), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockTranscriptionService) CancelTranscription(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *mockTranscriptionService) CreateShare(ctx context.Context) (*dto.ShareResponse, error) {
	args := m.Called(ctx)
	if resp := args.Get(0); resp != nil {
		return resp.(*dto.ShareResponse), args.Error(1)
	}
	return nil, args.Error(1)
}

type mockHistoryService struct {
	mock.Mock
}

func (m *mockHistoryService) ListHistory(ctx context.Context) (*dto.HistoryResponse, error) {
	args := m.Called(ctx)
	if resp := args.Get(0); resp != nil {
		return resp.(*dto.HistoryResponse), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockHistoryService) ClearHistory(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func setupTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(middleware.RequestID())
	return router
}

func perform(router *gin.Engine, method, path string, body []byte) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestTranscriptionHandler_Create(t *testing.T) {
	tests := []struct {
		name           string
		body           string
		setupMocks     func(*mockTranscriptionService)
		expectedStatus int
		validateBody   func(*testing.T, map[string]any)
	}{
		{
			name: "successful submission",
			body: `{"audio_url":"http://files/audio/test_3.mp3","language_hint":"es"}`,
			setupMocks: func(ms *mockTranscriptionService) {
				ms.On("CreateTranscription", mock.Anything, mock.MatchedBy(func(req *dto.CreateTranscriptionRequest) bool {
					return req.AudioURL == "http://files/audio/test_3.mp3" && req.LanguageHint == "es"
				})).Return(&dto.TranscriptionResponse{Snapshot: jobs.Snapshot{
					SessionID: 1,
					Phase:     jobs.PhasePolling,
					Job:       &model.TranscriptionJob{ID: "job-2", Status: model.JobStatusCreated},
				}}, nil)
			},
			expectedStatus: http.StatusAccepted,
			validateBody: func(t *testing.T, body map[string]any) {
				assert.Equal(t, "polling", body["phase"])
				job := body["job"].(map[string]any)
				assert.Equal(t, "job-2", job["id"])
			},
		},
		{
			name:           "validation error - missing audio url",
			body:           `{"language_hint":"es"}`,
			setupMocks:     func(*mockTranscriptionService) {},
			expectedStatus: http.StatusUnprocessableEntity,
			validateBody: func(t *testing.T, body map[string]any) {
				assert.Equal(t, "validation", body["kind"])
				assert.NotEmpty(t, body["request_id"])
			},
		},
		{
			name: "project not bootstrapped",
			body: `{"audio_url":"http://files/audio/test_3.mp3"}`,
			setupMocks: func(ms *mockTranscriptionService) {
				ms.On("CreateTranscription", mock.Anything, mock.Anything).
					Return(nil, apperrors.Wrap(apperrors.ErrNotReady, "submit"))
			},
			expectedStatus: http.StatusConflict,
			validateBody: func(t *testing.T, body map[string]any) {
				assert.Equal(t, "conflict", body["kind"])
			},
		},
		{
			name: "remote rejected",
			body: `{"audio_url":"http://files/audio/test_3.mp3"}`,
			setupMocks: func(ms *mockTranscriptionService) {
				ms.On("CreateTranscription", mock.Anything, mock.Anything).
					Return(nil, fmt.Errorf("create audio: %w", &remote.RemoteError{Method: "POST", Status: 500, Path: "/audio"}))
			},
			expectedStatus: http.StatusBadGateway,
			validateBody: func(t *testing.T, body map[string]any) {
				assert.Equal(t, "bad_gateway", body["kind"])
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service := &mockTranscriptionService{}
			tt.setupMocks(service)

			router := setupTestRouter()
			router.POST("/api/v1/transcriptions", NewTranscriptionHandler(service).Create)

			rec := perform(router, http.MethodPost, "/api/v1/transcriptions", []byte(tt.body))
			assert.Equal(t, tt.expectedStatus, rec.Code)

			var body map[string]any
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			tt.validateBody(t, body)
			service.AssertExpectations(t)
		})
	}
}

func TestTranscriptionHandler_CurrentAndCancel(t *testing.T) {
	service := &mockTranscriptionService{}
	service.On("CurrentTranscription", mock.Anything).Return(nil, apperrors.ErrNoActiveJob).Once()
	service.On("CancelTranscription", mock.Anything).Return(nil).Once()

	router := setupTestRouter()
	h := NewTranscriptionHandler(service)
	router.GET("/current", h.Current)
	router.DELETE("/current", h.Cancel)

	assert.Equal(t, http.StatusNotFound, perform(router, http.MethodGet, "/current", nil).Code)
	assert.Equal(t, http.StatusNoContent, perform(router, http.MethodDelete, "/current", nil).Code)
	service.AssertExpectations(t)
}

func TestTranscriptionHandler_Share(t *testing.T) {
	service := &mockTranscriptionService{}
	service.On("CreateShare", mock.Anything).Return(&dto.ShareResponse{
		Share: &model.Share{Token: "tok", Kind: "public"},
		Link:  "http://ui/#/share/tok",
	}, nil)

	router := setupTestRouter()
	router.POST("/shares", NewTranscriptionHandler(service).Share)

	rec := perform(router, http.MethodPost, "/shares", nil)
	require.Equal(t, http.StatusCreated, rec.Code)
	var resp dto.ShareResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "http://ui/#/share/tok", resp.Link)
}

func TestHistoryHandler(t *testing.T) {
	service := &mockHistoryService{}
	service.On("ListHistory", mock.Anything).Return(&dto.HistoryResponse{
		Entries: []model.HistoryEntry{{ID: "job-1", AudioURL: "http://a"}},
		Total:   1,
	}, nil)
	service.On("ClearHistory", mock.Anything).Return(fmt.Errorf("disk full"))

	router := setupTestRouter()
	h := NewHistoryHandler(service)
	router.GET("/history", h.List)
	router.DELETE("/history", h.Clear)

	rec := perform(router, http.MethodGet, "/history", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var resp dto.HistoryResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 1, resp.Total)

	rec = perform(router, http.MethodDelete, "/history", nil)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.NotContains(t, rec.Body.String(), "disk full")
}
