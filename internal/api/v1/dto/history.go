package dto

import (
	"s2x/internal/app/library"
	"s2x/internal/app/model"
)

// HistoryResponse lists ledger entries, most recent first.
type HistoryResponse struct {
	Entries []model.HistoryEntry `json:"entries"`
	Total   int                  `json:"total"`
}

// LibraryResponse lists the selectable audio samples.
type LibraryResponse struct {
	library.Result
	Fallback bool `json:"fallback"`
}

// HealthResponse reports the local server and the remote service it fronts.
type HealthResponse struct {
	Status string              `json:"status"`
	Remote *model.HealthStatus `json:"remote,omitempty"`
	Error  string              `json:"error,omitempty"`
}
