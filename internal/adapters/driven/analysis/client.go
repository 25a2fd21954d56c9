// Package analysis provides the HTTP client for the thematic-analysis
// server. The coding and clustering models live server-side; this adapter
// only moves payloads and normalizes results.
package analysis

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"time"

	"golang.org/x/time/rate"

	"github.com/meridian-labs/themata/internal/core/domain"
	"github.com/meridian-labs/themata/internal/core/ports/driven"
	"github.com/meridian-labs/themata/internal/logger"
)

// Ensure Client implements both outbound ports.
var (
	_ driven.CodingService   = (*Client)(nil)
	_ driven.AnalysisService = (*Client)(nil)
)

// Default configuration values.
const (
	DefaultBaseURL           = "http://localhost:5000"
	DefaultTimeout           = 60 * time.Second
	DefaultRequestsPerSecond = 5.0
	DefaultBurst             = 5
)

// Config holds configuration for the analysis server client.
type Config struct {
	// BaseURL is the analysis server base URL (default: http://localhost:5000).
	BaseURL string

	// Timeout bounds every request. The server never cancels a stalled
	// call on its own, so the client must (default: 60s).
	Timeout time.Duration

	// RequestsPerSecond is the sustained client-side rate limit.
	RequestsPerSecond float64

	// Burst is the rate limiter burst size.
	Burst int
}

// Client speaks JSON over HTTP to the analysis server.
type Client struct {
	client  *http.Client
	baseURL string
	limiter *rate.Limiter
}

// NewClient creates a new analysis server client.
func NewClient(cfg Config) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.RequestsPerSecond == 0 {
		cfg.RequestsPerSecond = DefaultRequestsPerSecond
	}
	if cfg.Burst == 0 {
		cfg.Burst = DefaultBurst
	}

	return &Client{
		client:  &http.Client{Timeout: cfg.Timeout},
		baseURL: cfg.BaseURL,
		limiter: rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), cfg.Burst),
	}
}

// generateRequest is the /generate request format.
type generateRequest struct {
	Feedback []string `json:"feedback"`
	Context  string   `json:"context,omitempty"`
}

// generateResponse is the /generate response format.
type generateResponse struct {
	SubmissionID string `json:"submission_id"`
	Results      []struct {
		FeedbackID string   `json:"feedback_id"`
		Text       string   `json:"text"`
		Codewords  []string `json:"codewords"`
	} `json:"results"`
}

// Generate produces codewords for a batch of feedback texts.
func (c *Client) Generate(ctx context.Context, feedback []string, contextNote string) (string, []driven.GeneratedEntry, error) {
	var resp generateResponse
	err := c.post(ctx, "/generate", generateRequest{Feedback: feedback, Context: contextNote}, &resp)
	if err != nil {
		return "", nil, err
	}
	if resp.SubmissionID == "" {
		return "", nil, errors.New("generate: response missing submission_id")
	}

	entries := make([]driven.GeneratedEntry, len(resp.Results))
	for i, r := range resp.Results {
		entries[i] = driven.GeneratedEntry{
			FeedbackID: r.FeedbackID,
			Text:       r.Text,
			Codewords:  r.Codewords,
		}
	}
	return resp.SubmissionID, entries, nil
}

// RegenerateOne produces a fresh codeword list for a single feedback text.
func (c *Client) RegenerateOne(ctx context.Context, text string) ([]string, error) {
	var resp struct {
		Codewords []string `json:"codewords"`
	}
	if err := c.post(ctx, "/regenerate_one", map[string]string{"text": text}, &resp); err != nil {
		return nil, err
	}
	return resp.Codewords, nil
}

// SuggestSeeds proposes seed words for a theme label.
func (c *Client) SuggestSeeds(ctx context.Context, theme string) ([]string, error) {
	var resp struct {
		Seeds []string `json:"seeds"`
	}
	if err := c.post(ctx, "/api/suggest_seeds", map[string]string{"theme": theme}, &resp); err != nil {
		return nil, err
	}
	return resp.Seeds, nil
}

// approveRequest is the /approve_codewords request format.
type approveRequest struct {
	SubmissionID string                 `json:"submission_id"`
	Approved     []driven.ApprovedEntry `json:"approved"`
}

// ApproveCodewords commits the approved entries for a submission.
func (c *Client) ApproveCodewords(ctx context.Context, submissionID string, approved []driven.ApprovedEntry) error {
	return c.post(ctx, "/approve_codewords", approveRequest{
		SubmissionID: submissionID,
		Approved:     approved,
	}, nil)
}

// clusterRequest merges the indexed theme/seed maps with either nothing
// (submission path) or the manual code list. The two sources are never
// combined: the submission path carries codes server-side.
type clusterRequest struct {
	Codes  []string          `json:"codes,omitempty"`
	Themes map[string]string `json:"themes"`
	Seeds  map[string]string `json:"seeds"`
}

// Cluster runs clustering for a submission.
func (c *Client) Cluster(ctx context.Context, submissionID string, payload domain.ThemePayload) (*domain.ClusterOutcome, error) {
	var raw json.RawMessage
	path := "/api/submission/" + url.PathEscape(submissionID) + "/cluster"
	if err := c.post(ctx, path, clusterRequest{Themes: payload.Themes, Seeds: payload.Seeds}, &raw); err != nil {
		return nil, err
	}

	outcome, err := NormalizeResult(raw)
	if err != nil {
		return nil, err
	}
	outcome.SubmissionID = submissionID
	return outcome, nil
}

// ClusterManual runs clustering over a manually entered code list.
func (c *Client) ClusterManual(ctx context.Context, codes []string, payload domain.ThemePayload) (*domain.ClusterOutcome, error) {
	var raw json.RawMessage
	err := c.post(ctx, "/api/cluster_manual_codes", clusterRequest{
		Codes:  codes,
		Themes: payload.Themes,
		Seeds:  payload.Seeds,
	}, &raw)
	if err != nil {
		return nil, err
	}
	return NormalizeResult(raw)
}

// FetchResults re-reads the clustering outcome for a submission.
func (c *Client) FetchResults(ctx context.Context, submissionID string) (*domain.ClusterOutcome, error) {
	var raw json.RawMessage
	path := "/api/submission/" + url.PathEscape(submissionID) + "/results"
	if err := c.get(ctx, path, &raw); err != nil {
		return nil, err
	}

	outcome, err := NormalizeResult(raw)
	if err != nil {
		return nil, err
	}
	outcome.SubmissionID = submissionID
	return outcome, nil
}

// FetchCodewords returns the flat approved codeword list for a submission.
func (c *Client) FetchCodewords(ctx context.Context, submissionID string) ([]string, error) {
	var resp struct {
		Codewords []string `json:"codewords"`
	}
	path := "/api/submission/" + url.PathEscape(submissionID) + "/codewords"
	if err := c.get(ctx, path, &resp); err != nil {
		return nil, err
	}
	return resp.Codewords, nil
}

// Ping validates the server is reachable without running any model.
func (c *Client) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/health", http.NoBody)
	if err != nil {
		return fmt.Errorf("create ping request: %w", err)
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return mapTransportErr("ping", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("analysis server returned status %d", resp.StatusCode)
	}
	return nil
}

// post sends a JSON body and decodes the response into out (out may be nil
// when only the status matters).
func (c *Client) post(ctx context.Context, path string, body, out any) error {
	jsonBody, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("marshal request: %w", err)
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limit wait: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(jsonBody))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	return c.do(req, out)
}

// get fetches a JSON resource.
func (c *Client) get(ctx context.Context, path string, out any) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limit wait: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, http.NoBody)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}

	return c.do(req, out)
}

func (c *Client) do(req *http.Request, out any) error {
	logger.Debug("%s %s", req.Method, req.URL.Path)

	resp, err := c.client.Do(req)
	if err != nil {
		return mapTransportErr(req.URL.Path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, readErr := io.ReadAll(io.LimitReader(resp.Body, 4096))
		if readErr != nil {
			return fmt.Errorf("analysis server error (status %d): failed to read response", resp.StatusCode)
		}
		return fmt.Errorf("analysis server error (status %d): %s", resp.StatusCode, string(body))
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// mapTransportErr maps stalled-call timeouts onto the workflow taxonomy so
// callers can reset the slot and offer a retry.
func mapTransportErr(op string, err error) error {
	var ne net.Error
	if errors.As(err, &ne) && ne.Timeout() {
		return fmt.Errorf("%w: %s", domain.ErrTimedOut, op)
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: %s", domain.ErrTimedOut, op)
	}
	return fmt.Errorf("send request: %w", err)
}
