package remote

import (
	"context"
	"fmt"
	"net/url"

	"s2x/internal/app/model"
)

// Health fetches the service's liveness payload.
func (c *Client) Health(ctx context.Context) (*model.HealthStatus, error) {
	var h model.HealthStatus
	if err := c.FetchJSON(ctx, "/health", &h); err != nil {
		return nil, err
	}
	return &h, nil
}

// CreateUser registers an owning identity.
func (c *Client) CreateUser(ctx context.Context, req model.UserCreate) (*model.User, error) {
	var u model.User
	if err := c.SendJSON(ctx, "/users", req, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

// CreateProject registers a container for audio files.
func (c *Client) CreateProject(ctx context.Context, req model.ProjectCreate) (*model.Project, error) {
	var p model.Project
	if err := c.SendJSON(ctx, "/projects", req, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// CreateAudio registers a remote audio reference.
func (c *Client) CreateAudio(ctx context.Context, req model.AudioCreate) (*model.Audio, error) {
	var a model.Audio
	if err := c.SendJSON(ctx, "/audio", req, &a); err != nil {
		return nil, err
	}
	return &a, nil
}

// CreateTranscription creates a job and returns its initial record.
func (c *Client) CreateTranscription(ctx context.Context, req model.TranscriptionCreate) (*model.TranscriptionJob, error) {
	var j model.TranscriptionJob
	if err := c.SendJSON(ctx, "/transcriptions", req, &j); err != nil {
		return nil, err
	}
	return &j, nil
}

// GetTranscription returns the current snapshot of a job.
func (c *Client) GetTranscription(ctx context.Context, id string) (*model.TranscriptionJob, error) {
	var j model.TranscriptionJob
	if err := c.FetchJSON(ctx, "/transcriptions/"+url.PathEscape(id), &j); err != nil {
		return nil, err
	}
	return &j, nil
}

// ListSegments returns one page of a job's segments in service order.
func (c *Client) ListSegments(ctx context.Context, id string, limit, offset int) ([]model.Segment, error) {
	var segs []model.Segment
	path := fmt.Sprintf("/segments/%s?limit=%d&offset=%d", url.PathEscape(id), limit, offset)
	if err := c.FetchJSON(ctx, path, &segs); err != nil {
		return nil, err
	}
	if segs == nil {
		segs = []model.Segment{}
	}
	return segs, nil
}

// CreateShare registers a share link for a completed job.
func (c *Client) CreateShare(ctx context.Context, req model.ShareCreate) (*model.Share, error) {
	var s model.Share
	if err := c.SendJSON(ctx, "/shares", req, &s); err != nil {
		return nil, err
	}
	if s.Token == "" {
		s.Token = req.Token
	}
	if s.TranscriptionID == "" {
		s.TranscriptionID = req.TranscriptionID
	}
	return &s, nil
}

// ResolveShare looks a share up by its token.
func (c *Client) ResolveShare(ctx context.Context, token string) (*model.Share, error) {
	var s model.Share
	if err := c.FetchJSON(ctx, "/shares/resolve/"+url.PathEscape(token), &s); err != nil {
		return nil, err
	}
	return &s, nil
}
