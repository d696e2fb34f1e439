// Package analysis is the client for the remote document-analysis service.
// It submits a stored document for asynchronous layout/table analysis, polls
// the job until it settles, and aggregates the paginated block results into
// the single flat collection the layout reconstructor consumes.
package analysis

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/dgallion1/layoutchunk/internal/layout"
)

// Job statuses reported by the analysis service.
const (
	StatusInProgress = "IN_PROGRESS"
	StatusSucceeded  = "SUCCEEDED"
	StatusFailed     = "FAILED"
)

// DefaultPollInterval is how often Wait checks job status unless overridden.
const DefaultPollInterval = 5 * time.Second

// fetchPageSize is the max_results value used when paginating job blocks.
const fetchPageSize = 1000

// RetryableError marks a transient failure (throttling, 5xx) that the caller
// may retry with backoff.
type RetryableError struct {
	Err error
}

func (e *RetryableError) Error() string { return e.Err.Error() }

func (e *RetryableError) Unwrap() error { return e.Err }

// Client communicates with the analysis service HTTP API.
type Client struct {
	baseURL      string
	apiKey       string
	httpClient   *http.Client
	pollInterval time.Duration
}

func NewClient(baseURL, apiKey string) *Client {
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		pollInterval: DefaultPollInterval,
	}
}

// WithPollInterval overrides the status polling interval.
func (c *Client) WithPollInterval(d time.Duration) *Client {
	if d > 0 {
		c.pollInterval = d
	}
	return c
}

// DocumentLocation identifies a document in the object store the analysis
// service reads from.
type DocumentLocation struct {
	Bucket string `json:"bucket"`
	Key    string `json:"key"`
}

// StartAnalysis submits a document for table and layout analysis and returns
// the job id.
func (c *Client) StartAnalysis(ctx context.Context, loc DocumentLocation) (string, error) {
	body, err := json.Marshal(map[string]any{
		"document": loc,
		"features": []string{"TABLES", "LAYOUT"},
	})
	if err != nil {
		return "", fmt.Errorf("marshal analysis request: %w", err)
	}
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/analyses", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return "", &RetryableError{Err: fmt.Errorf("start analysis: %w", err)}
	}
	defer resp.Body.Close()
	if err := checkStatus(resp, "start analysis"); err != nil {
		return "", err
	}

	var result struct {
		JobID string `json:"job_id"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", fmt.Errorf("decode analysis response: %w", err)
	}
	if result.JobID == "" {
		return "", fmt.Errorf("start analysis: empty job id")
	}
	return result.JobID, nil
}

// JobStatus returns the current status of a job.
func (c *Client) JobStatus(ctx context.Context, jobID string) (string, error) {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/v1/analyses/"+url.PathEscape(jobID), nil)
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return "", &RetryableError{Err: fmt.Errorf("job status: %w", err)}
	}
	defer resp.Body.Close()
	if err := checkStatus(resp, "job status"); err != nil {
		return "", err
	}

	var result struct {
		Status string `json:"status"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", fmt.Errorf("decode status response: %w", err)
	}
	return result.Status, nil
}

// Wait polls the job until it succeeds, fails, or the context is done. A
// FAILED terminal status is an error.
func (c *Client) Wait(ctx context.Context, jobID string) error {
	ticker := time.NewTicker(c.pollInterval)
	defer ticker.Stop()

	for {
		status, err := c.JobStatus(ctx, jobID)
		if err != nil {
			return err
		}
		switch status {
		case StatusSucceeded:
			return nil
		case StatusFailed:
			return fmt.Errorf("analysis job %s failed", jobID)
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}

// FetchBlocks pages through the completed job's results and returns all
// blocks as one flat collection, in service order.
func (c *Client) FetchBlocks(ctx context.Context, jobID string) ([]layout.Block, error) {
	var blocks []layout.Block
	nextToken := ""

	for {
		u := c.baseURL + "/v1/analyses/" + url.PathEscape(jobID) + "/blocks?max_results=" + strconv.Itoa(fetchPageSize)
		if nextToken != "" {
			u += "&next_token=" + url.QueryEscape(nextToken)
		}
		httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
		if err != nil {
			return nil, fmt.Errorf("create request: %w", err)
		}
		httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)

		resp, err := c.httpClient.Do(httpReq)
		if err != nil {
			return nil, &RetryableError{Err: fmt.Errorf("fetch blocks: %w", err)}
		}

		var page struct {
			Blocks    []layout.Block `json:"Blocks"`
			NextToken string         `json:"NextToken"`
		}
		if err := checkStatus(resp, "fetch blocks"); err != nil {
			resp.Body.Close()
			return nil, err
		}
		if err := json.NewDecoder(resp.Body).Decode(&page); err != nil {
			resp.Body.Close()
			return nil, fmt.Errorf("decode blocks page: %w", err)
		}
		resp.Body.Close()

		blocks = append(blocks, page.Blocks...)
		if page.NextToken == "" {
			return blocks, nil
		}
		nextToken = page.NextToken
	}
}

// Run starts an analysis, waits for completion, and fetches all blocks.
func (c *Client) Run(ctx context.Context, loc DocumentLocation) ([]layout.Block, error) {
	jobID, err := c.StartAnalysis(ctx, loc)
	if err != nil {
		return nil, err
	}
	if err := c.Wait(ctx, jobID); err != nil {
		return nil, err
	}
	return c.FetchBlocks(ctx, jobID)
}

// Close releases any resources (currently a no-op).
func (c *Client) Close() {
	c.httpClient.CloseIdleConnections()
}

// checkStatus turns a non-2xx response into an error, marking throttling and
// server-side failures retryable.
func checkStatus(resp *http.Response, op string) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}
	respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
	err := fmt.Errorf("%s: status %d: %s", op, resp.StatusCode, string(respBody))
	if resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500 {
		return &RetryableError{Err: err}
	}
	return err
}
