package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	apperrors "s2x/internal/app/errors"
	"s2x/internal/app/logging"
)

// Client is a typed boundary around the transcription service's HTTP surface.
// It never retries; retry policy belongs to the caller.
type Client struct {
	config     Config
	httpClient *http.Client
	logger     *zap.Logger
}

// Config represents configuration for the remote service
type Config struct {
	BaseURL       string            // e.g. "http://localhost:8000"
	Timeout       time.Duration     // per-request timeout
	CustomHeaders map[string]string // added to every request
}

// RemoteError is returned for any response outside the 2xx range.
type RemoteError struct {
	Method string
	Status int
	Path   string
	Body   string
}

func (e *RemoteError) Error() string {
	if e.Body != "" {
		return fmt.Sprintf("%s %s %d: %s", e.Method, e.Path, e.Status, e.Body)
	}
	return fmt.Sprintf("%s %s %d", e.Method, e.Path, e.Status)
}

// Temporary reports whether retrying the same request could succeed.
func (e *RemoteError) Temporary() bool {
	return e.Status >= 500 || e.Status == http.StatusTooManyRequests
}

// NewClient creates a new remote service client
func NewClient(config Config, logger *zap.Logger) *Client {
	config.BaseURL = strings.TrimRight(config.BaseURL, "/")
	if config.Timeout == 0 {
		config.Timeout = 30 * time.Second
	}
	if config.CustomHeaders == nil {
		config.CustomHeaders = make(map[string]string)
	}

	return &Client{
		config:     config,
		httpClient: &http.Client{Timeout: config.Timeout},
		logger:     logging.OrNop(logger),
	}
}

// BaseURL returns the service address requests are resolved against.
func (c *Client) BaseURL() string {
	return c.config.BaseURL
}

// FetchJSON issues a GET for path and decodes the JSON response into out.
func (c *Client) FetchJSON(ctx context.Context, path string, out any) error {
	data, err := c.do(ctx, http.MethodGet, path, nil, false)
	if err != nil {
		return err
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return apperrors.Wrapf(apperrors.ErrResponseInvalid, "GET %s returned an empty body", path)
	}
	if err := json.Unmarshal(data, out); err != nil {
		return apperrors.Wrapf(apperrors.ErrResponseInvalid, "decode GET %s: %v", path, err)
	}
	return nil
}

// SendJSON POSTs body as JSON to path and decodes the response into out.
// An empty successful response leaves out untouched.
func (c *Client) SendJSON(ctx context.Context, path string, body, out any) error {
	if body == nil {
		body = struct{}{}
	}
	data, err := c.do(ctx, http.MethodPost, path, body, true)
	if err != nil {
		return err
	}
	if len(bytes.TrimSpace(data)) == 0 || out == nil {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return apperrors.Wrapf(apperrors.ErrResponseInvalid, "decode POST %s: %v", path, err)
	}
	return nil
}

// Download streams the resource at target into w. target is either an
// absolute URL (artifact links) or a path on the service.
func (c *Client) Download(ctx context.Context, target string, w io.Writer) (int64, error) {
	req, err := c.newRequest(ctx, http.MethodGet, target, nil)
	if err != nil {
		return 0, err
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, fmt.Errorf("GET %s failed: %w", target, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return 0, &RemoteError{Method: http.MethodGet, Status: resp.StatusCode, Path: target}
	}
	return io.Copy(w, resp.Body)
}

func (c *Client) do(ctx context.Context, method, path string, body any, keepBody bool) ([]byte, error) {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to encode %s %s body: %w", method, path, err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := c.newRequest(ctx, method, path, reader)
	if err != nil {
		return nil, err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s %s failed: %w", method, path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s %s response: %w", method, path, err)
	}

	c.logger.Debug("remote call",
		zap.String("method", method),
		zap.String("path", path),
		zap.Int("status", resp.StatusCode),
		zap.Duration("latency", time.Since(start)),
	)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		rerr := &RemoteError{Method: method, Status: resp.StatusCode, Path: path}
		if keepBody {
			rerr.Body = strings.TrimSpace(string(data))
		}
		return nil, rerr
	}
	return data, nil
}

func (c *Client) newRequest(ctx context.Context, method, path string, body io.Reader) (*http.Request, error) {
	target := path
	if !strings.HasPrefix(path, "http://") && !strings.HasPrefix(path, "https://") {
		target = c.config.BaseURL + path
	}
	req, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create %s %s request: %w", method, path, err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", uuid.NewString())
	for key, value := range c.config.CustomHeaders {
		req.Header.Set(key, value)
	}
	return req, nil
}
