package dto

import "s2x/internal/app/model"

// ShareResponse is a created share and its public link.
type ShareResponse struct {
	Share *model.Share `json:"share"`
	Link  string       `json:"link"`
}
