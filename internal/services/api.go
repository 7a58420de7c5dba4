// HTTP client for the conversion backend
package services

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/desertthunder/trackx/internal/models"
	"github.com/desertthunder/trackx/internal/shared"
	jsoniter "github.com/json-iterator/go"
	"golang.org/x/time/rate"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

const defaultBaseURL = "http://localhost:5555"

// APIService talks to the conversion backend over HTTP.
//
// No timeout is imposed beyond the one carried by the supplied [http.Client].
type APIService struct {
	baseURL    string
	httpClient *http.Client
	limiter    *rate.Limiter
}

// APIOption configures an [APIService].
type APIOption func(*APIService)

// WithRateLimit installs a token bucket holding n tokens that refills one token every window/n.
// This is looser than a fixed window of n per window, so the backend may still answer 429.
// Requests over the limit fail with [shared.ErrRateLimited] without touching the network.
// n <= 0 disables the limiter.
func WithRateLimit(n int, window time.Duration) APIOption {
	return func(a *APIService) {
		if n <= 0 || window <= 0 {
			a.limiter = nil
			return
		}
		a.limiter = rate.NewLimiter(rate.Every(window/time.Duration(n)), n)
	}
}

// NewAPIService creates a new API service instance for the conversion backend.
func NewAPIService(baseURL string, client *http.Client, opts ...APIOption) *APIService {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	if client == nil {
		client = http.DefaultClient
	}

	a := &APIService{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: client,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// BaseURL returns the backend root all paths are resolved against.
func (a *APIService) BaseURL() string {
	return a.baseURL
}

// APIResponse represents a raw API response with status and body.
type APIResponse struct {
	StatusCode int
	Headers    http.Header
	Body       []byte
	IsJSON     bool
	JSONData   any
}

// OK reports whether the response carries a 2xx status.
func (r *APIResponse) OK() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}

// Get performs a GET request to the specified path and returns the raw response.
func (a *APIService) Get(ctx context.Context, path string) (*APIResponse, error) {
	return a.do(ctx, http.MethodGet, path, nil)
}

// Post performs a POST request with the given JSON data and returns the raw response.
func (a *APIService) Post(ctx context.Context, path string, data []byte) (*APIResponse, error) {
	return a.do(ctx, http.MethodPost, path, data)
}

func (a *APIService) do(ctx context.Context, method, path string, data []byte) (*APIResponse, error) {
	var body io.Reader
	if data != nil {
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, a.baseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	if data != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := a.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	apiResp := &APIResponse{
		StatusCode: resp.StatusCode,
		Headers:    resp.Header,
		Body:       respBody,
	}

	var jsonData any
	if err := json.Unmarshal(respBody, &jsonData); err == nil {
		apiResp.IsJSON = true
		apiResp.JSONData = jsonData
	}

	return apiResp, nil
}

// convertResponse covers both directions; only the key matching the request is read.
type convertResponse struct {
	YouTubeMusicURL string            `json:"youtube_music_url"`
	SpotifyURL      string            `json:"spotify_url"`
	MatchConfidence float64           `json:"match_confidence"`
	TrackInfo       *models.TrackInfo `json:"track_info"`
}

// Convert posts req to its direction's endpoint and decodes the converted URL.
//
// Errors:
//   - [shared.ErrRateLimited] when the client-side limiter refuses; nothing is sent
//   - [shared.ErrNetwork] on transport failure or a malformed 2xx body
//   - [*BackendError] (unwraps to [shared.ErrBackend]) on a non-2xx status
//   - [shared.ErrEmptyConversionResult] when a 2xx body lacks the expected key
func (a *APIService) Convert(ctx context.Context, req models.ConversionRequest) (*models.ConversionResult, error) {
	if !req.Direction.Valid() {
		return nil, fmt.Errorf("%w: direction %q", shared.ErrInvalidArgument, req.Direction)
	}

	if a.limiter != nil && !a.limiter.Allow() {
		return nil, shared.ErrRateLimited
	}

	payload, err := json.Marshal(map[string]string{req.Direction.RequestKey(): req.SourceURL})
	if err != nil {
		return nil, fmt.Errorf("failed to encode request: %w", err)
	}

	resp, err := a.Post(ctx, req.Direction.Endpoint(), payload)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", shared.ErrNetwork, err)
	}

	if !resp.OK() {
		return nil, NewBackendError(resp)
	}

	var body convertResponse
	if err := json.Unmarshal(resp.Body, &body); err != nil {
		return nil, fmt.Errorf("%w: malformed response: %w", shared.ErrNetwork, err)
	}

	converted := body.YouTubeMusicURL
	if req.Direction == models.YouTubeToSpotify {
		converted = body.SpotifyURL
	}
	if converted == "" {
		return nil, fmt.Errorf("%w: response has no %s", shared.ErrEmptyConversionResult, req.Direction.ResultKey())
	}

	result := models.NewConversionSuccess(req.Direction, converted)
	result.Confidence = body.MatchConfidence
	result.Track = body.TrackInfo
	return result, nil
}

// Health calls GET /health and returns the reported status.
func (a *APIService) Health(ctx context.Context) (string, error) {
	resp, err := a.Get(ctx, "/health")
	if err != nil {
		return "", fmt.Errorf("%w: %w", shared.ErrNetwork, err)
	}
	if !resp.OK() {
		return "", NewBackendError(resp)
	}

	if obj, ok := resp.JSONData.(map[string]any); ok {
		if status, ok := obj["status"].(string); ok && status != "" {
			return status, nil
		}
	}
	return "unknown", nil
}

// BackendError is a non-2xx reply from the conversion backend.
type BackendError struct {
	StatusCode int
	Detail     string
}

// NewBackendError builds a [BackendError] from resp, reading the body's detail field when present.
func NewBackendError(resp *APIResponse) *BackendError {
	return &BackendError{StatusCode: resp.StatusCode, Detail: extractDetail(resp.JSONData)}
}

func (e *BackendError) Error() string {
	return fmt.Sprintf("%v: %s", shared.ErrBackend, e.Message())
}

func (e *BackendError) Unwrap() error {
	return shared.ErrBackend
}

// Message is the human-readable text shown to the user: the backend's detail, or one synthesized from the status.
func (e *BackendError) Message() string {
	if e.Detail != "" {
		return e.Detail
	}
	if text := http.StatusText(e.StatusCode); text != "" {
		return fmt.Sprintf("Conversion failed: %d %s", e.StatusCode, text)
	}
	return fmt.Sprintf("Conversion failed: status %d", e.StatusCode)
}

// extractDetail reads FastAPI-style error bodies: {"detail": "..."} or {"detail": [{"msg": "..."}]}.
func extractDetail(data any) string {
	obj, ok := data.(map[string]any)
	if !ok {
		return ""
	}

	switch d := obj["detail"].(type) {
	case string:
		return d
	case []any:
		for _, item := range d {
			if entry, ok := item.(map[string]any); ok {
				if msg, ok := entry["msg"].(string); ok && msg != "" {
					return msg
				}
			}
		}
	}
	return ""
}
