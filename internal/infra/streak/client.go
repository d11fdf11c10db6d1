package streak

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"
)

// Client fetches the user's current writing streak from the stats service.
// Failures are expected here; callers degrade to a streak of zero.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

type streakResponse struct {
	CurrentStreak int `json:"current_streak"`
}

func (c *Client) CurrentStreak(ctx context.Context) (int, error) {
	u, err := url.Parse(c.baseURL)
	if err != nil {
		return 0, fmt.Errorf("failed to parse base URL: %w", err)
	}
	u.Path = "/api/v1/streak"

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return 0, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		slog.Warn("failed to fetch streak",
			slog.String("url", u.String()),
			slog.String("error", err.Error()),
		)
		return 0, fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		slog.Warn("unexpected status code from streak service",
			slog.String("url", u.String()),
			slog.Int("status_code", resp.StatusCode),
		)
		return 0, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, fmt.Errorf("failed to read response body: %w", err)
	}

	var sr streakResponse
	if err := json.Unmarshal(body, &sr); err != nil {
		return 0, fmt.Errorf("failed to decode response: %w", err)
	}

	return sr.CurrentStreak, nil
}
