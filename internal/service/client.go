package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/sohamshetty07/oraculum-core/internal/model"
)

// Client talks to the simulation API: submit, status poll, analyze. It wraps
// transport failures onto the pipeline's sentinel errors so callers can
// discriminate with errors.Is.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a simulation API client for the given base URL.
func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: NewHTTPClient(timeout),
	}
}

// Submit posts a new simulation job and returns its handle.
func (c *Client) Submit(ctx context.Context, req model.SubmitRequest) (model.JobHandle, error) {
	var resp model.SubmitResponse
	if err := c.postJSON(ctx, "/api/simulate", req, &resp); err != nil {
		return "", fmt.Errorf("%w: %v", model.ErrSubmission, err)
	}
	if resp.JobID == "" {
		return "", fmt.Errorf("%w: response carried no jobId", model.ErrSubmission)
	}
	return model.JobHandle(resp.JobID), nil
}

// Status fetches one status snapshot for the given job.
func (c *Client) Status(ctx context.Context, handle model.JobHandle) (*model.StatusSnapshot, error) {
	endpoint := c.baseURL + "/api/status/" + url.PathEscape(string(handle))

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", model.ErrPoll, err)
	}

	var snapshot model.StatusSnapshot
	if err := c.do(httpReq, &snapshot); err != nil {
		return nil, fmt.Errorf("%w: %v", model.ErrPoll, err)
	}
	return &snapshot, nil
}

// Analyze requests a narrative report for a completed job.
func (c *Client) Analyze(ctx context.Context, handle model.JobHandle) (string, error) {
	req := model.AnalyzeRequest{JobID: string(handle)}
	var resp model.AnalyzeResponse
	if err := c.postJSON(ctx, "/api/analyze", req, &resp); err != nil {
		return "", fmt.Errorf("%w: %v", model.ErrAnalysis, err)
	}
	return resp.Report, nil
}

func (c *Client) postJSON(ctx context.Context, path string, body any, out any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("encode request: %v", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	httpReq.Header.Set("Content-Type", "application/json")

	return c.do(httpReq, out)
}

func (c *Client) do(req *http.Request, out any) error {
	start := time.Now()

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 10<<20))
	if err != nil {
		return fmt.Errorf("read response: %v", err)
	}

	slog.Debug("Simulation API call completed",
		"method", req.Method,
		"path", req.URL.Path,
		"status_code", resp.StatusCode,
		"duration_ms", time.Since(start).Milliseconds(),
	)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("unexpected status %d: %s", resp.StatusCode, truncate(string(body), 200))
	}

	if out != nil {
		if err := json.Unmarshal(body, out); err != nil {
			return fmt.Errorf("decode response: %v", err)
		}
	}
	return nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
