package driftguard

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/sethvargo/go-retry"
)

// Client talks to the DriftGuard REST API. Reads are retried with a short
// constant backoff; the analysis trigger is not, since it is not idempotent.
// This is the only layer with retry policy; the tool executor above it
// treats every returned error as a plain tool failure.
type Client struct {
	http *resty.Client
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		http: resty.New().
			SetBaseURL(baseURL).
			SetTimeout(timeout).
			SetHeader("Accept", "application/json"),
	}
}

const (
	getRetries      = 2
	getRetryBackoff = 500 * time.Millisecond
)

func getJSON[T any](ctx context.Context, c *Client, path string) (*T, error) {
	var out T
	backoff := retry.WithMaxRetries(getRetries, retry.NewConstant(getRetryBackoff))

	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		resp, err := c.http.R().
			SetContext(ctx).
			SetResult(&out).
			Get(path)
		if err != nil {
			return retry.RetryableError(err)
		}
		if resp.IsError() {
			return retry.RetryableError(fmt.Errorf("driftguard: GET %s: status %d", path, resp.StatusCode()))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// GetHealth returns the service's health status.
func (c *Client) GetHealth(ctx context.Context) (*Health, error) {
	return getJSON[Health](ctx, c, "/health")
}

// GetStatistics returns aggregate drift statistics.
func (c *Client) GetStatistics(ctx context.Context) (*Statistics, error) {
	env, err := getJSON[StatisticsEnvelope](ctx, c, "/api/v1/statistics")
	if err != nil {
		return nil, err
	}
	return &env.Statistics, nil
}

// GetDriftRecords returns every drift record DriftGuard knows about.
func (c *Client) GetDriftRecords(ctx context.Context) (*RecordList, error) {
	return getJSON[RecordList](ctx, c, "/api/v1/drift-records")
}

// GetActiveDrift returns records that are currently drifted.
func (c *Client) GetActiveDrift(ctx context.Context) (*RecordList, error) {
	return getJSON[RecordList](ctx, c, "/api/v1/drift-records/active")
}

// GetResolvedDrift returns records whose drift has been resolved.
func (c *Client) GetResolvedDrift(ctx context.Context) (*RecordList, error) {
	return getJSON[RecordList](ctx, c, "/api/v1/drift-records/resolved")
}

// TriggerAnalysis asks DriftGuard to run a manual drift analysis.
func (c *Client) TriggerAnalysis(ctx context.Context) (*AnalysisAck, error) {
	var out AnalysisAck
	resp, err := c.http.R().
		SetContext(ctx).
		SetResult(&out).
		Post("/api/v1/analyze")
	if err != nil {
		return nil, err
	}
	if resp.IsError() {
		return nil, fmt.Errorf("driftguard: POST /api/v1/analyze: status %d", resp.StatusCode())
	}
	return &out, nil
}
