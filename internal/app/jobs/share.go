package jobs

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"strings"

	"s2x/internal/app/model"
)

const shareTokenBytes = 32

// NewShareToken returns 32 random bytes from crypto/rand, base64url encoded.
func NewShareToken() (string, error) {
	b := make([]byte, shareTokenBytes)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("generate share token: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}

// NewShareRequest builds a public, read-only, non-expiring share of jobID.
// createdBy may be empty.
func NewShareRequest(jobID, createdBy string) (model.ShareCreate, error) {
	token, err := NewShareToken()
	if err != nil {
		return model.ShareCreate{}, err
	}
	req := model.ShareCreate{
		TranscriptionID: jobID,
		Token:           token,
		Kind:            "public",
		CanEdit:         false,
	}
	if createdBy != "" {
		req.CreatedBy = &createdBy
	}
	return req, nil
}

// ShareLink is the address a share token is opened at.
func ShareLink(origin, token string) string {
	return strings.TrimRight(origin, "/") + "/#/share/" + token
}
