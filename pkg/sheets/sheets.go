package sheets

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/affhub/meetup-backend/pkg/circuitbreaker"
	"github.com/affhub/meetup-backend/pkg/retry"
)

type Logger interface {
	Warn(msg string, args ...any)
}

// Client appends rows to a spreadsheet bridge over HTTP. The bridge owns the
// Google credentials; this side only posts a range and the row values.
//
// Append failures never propagate to registration: callers log and move on.
type Client struct {
	webhookURL string
	sheetRange string
	httpClient *http.Client
	breaker    circuitbreaker.CircuitBreaker
	retry      retry.RetryPolicy
	logger     Logger
}

type Config struct {
	WebhookURL string
	SheetRange string
	Timeout    time.Duration
	Logger     Logger
}

type appendRequest struct {
	Range  string     `json:"range"`
	Values [][]string `json:"values"`
}

func NewClient(cfg *Config) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}

	return &Client{
		webhookURL: cfg.WebhookURL,
		sheetRange: cfg.SheetRange,
		httpClient: &http.Client{Timeout: timeout},
		breaker:    circuitbreaker.NewCircuitBreaker(nil),
		retry: retry.NewExponentialBackoff(&retry.Config{
			MaxAttempts: 2,
			BaseDelay:   200 * time.Millisecond,
			MaxDelay:    2 * time.Second,
			Multiplier:  2.0,
		}),
		logger: cfg.Logger,
	}
}

// AppendRow posts one row to the configured sheet range.
func (c *Client) AppendRow(ctx context.Context, row []string) error {
	body, err := json.Marshal(appendRequest{
		Range:  c.sheetRange,
		Values: [][]string{row},
	})
	if err != nil {
		return fmt.Errorf("sheets: encode row: %w", err)
	}

	return c.breaker.Call(func() error {
		return c.retry.Execute(func() error {
			return c.post(ctx, body)
		})
	})
}

func (c *Client) post(ctx context.Context, body []byte) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.webhookURL, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("sheets: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("sheets: append: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		if c.logger != nil {
			c.logger.Warn("Sheet append rejected", "status", resp.StatusCode)
		}
		return fmt.Errorf("sheets: append returned status %d", resp.StatusCode)
	}

	return nil
}
