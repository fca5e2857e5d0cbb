// Package advice is a client for the completion endpoint that produces
// personal finance tips.
package advice

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const (
	DefaultTimeout = 15 * time.Second

	maxResponseBytes = 1 << 20
)

var (
	ErrTimeout         = errors.New("advice: request timed out")
	ErrUnavailable     = errors.New("advice: service unavailable")
	ErrEmptyCompletion = errors.New("advice: empty completion")
)

type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type completionRequest struct {
	Messages []Message `json:"messages"`
}

type completionResponse struct {
	Completion string `json:"completion"`
}

// Client posts chat messages and returns a single completion. Requests are
// not retried.
type Client struct {
	url        string
	apiKey     string
	timeout    time.Duration
	httpClient *http.Client
}

func NewClient(url, apiKey string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		url:        url,
		apiKey:     apiKey,
		timeout:    timeout,
		httpClient: &http.Client{},
	}
}

func (c *Client) Complete(ctx context.Context, messages []Message) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	body, err := json.Marshal(completionRequest{Messages: messages})
	if err != nil {
		return "", fmt.Errorf("advice: encoding request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("advice: building request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return "", ErrTimeout
		}
		return "", fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return "", fmt.Errorf("%w: status %d: %s", ErrUnavailable, resp.StatusCode, strings.TrimSpace(string(msg)))
	}

	var out completionResponse
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxResponseBytes)).Decode(&out); err != nil {
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return "", ErrTimeout
		}
		return "", fmt.Errorf("%w: decoding response: %w", ErrUnavailable, err)
	}

	text := strings.TrimSpace(out.Completion)
	if text == "" {
		return "", ErrEmptyCompletion
	}
	return text, nil
}
