package presenter

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"math"
	"net/http"
	"time"

	"github.com/KasumiMercury/inkwell-reminder-engine/internal/domain"
)

// PushClient renders notifications through the device push gateway. A failed
// Show is the caller's signal that the user saw nothing.
type PushClient struct {
	baseURL    string
	httpClient *http.Client
	maxRetries int
}

func NewPushClient(baseURL string, maxRetries int) *PushClient {
	if maxRetries <= 0 {
		maxRetries = 3
	}
	return &PushClient{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		maxRetries: maxRetries,
	}
}

func (c *PushClient) Show(ctx context.Context, n *domain.Notification) error {
	reqBody, err := json.Marshal(n)
	if err != nil {
		return fmt.Errorf("failed to marshal notification: %w", err)
	}

	url := fmt.Sprintf("%s/notifications", c.baseURL)

	var lastErr error
	for attempt := 0; attempt < c.maxRetries; attempt++ {
		if attempt > 0 {
			backoff := time.Duration(math.Pow(2, float64(attempt-1))) * 100 * time.Millisecond
			slog.Debug("retrying notification delivery",
				slog.Int("notification_id", n.ID),
				slog.String("channel", string(n.Channel)),
				slog.Int("attempt", attempt+1),
				slog.Duration("backoff", backoff),
			)
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(backoff):
			}
		}

		if err := c.doRequest(ctx, url, reqBody, n); err != nil {
			lastErr = err
			continue
		}
		return nil
	}

	slog.Error("all retries exhausted for notification delivery",
		slog.Int("notification_id", n.ID),
		slog.String("channel", string(n.Channel)),
		slog.Int("max_retries", c.maxRetries),
		slog.String("error", lastErr.Error()),
	)
	return fmt.Errorf("failed to deliver notification after %d retries: %w", c.maxRetries, lastErr)
}

func (c *PushClient) doRequest(ctx context.Context, url string, reqBody []byte, n *domain.Notification) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(reqBody))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		slog.Warn("failed to send notification to push gateway",
			slog.Int("notification_id", n.ID),
			slog.String("error", err.Error()),
		)
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusAccepted {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		slog.Warn("unexpected status code from push gateway",
			slog.Int("notification_id", n.ID),
			slog.Int("status_code", resp.StatusCode),
			slog.String("body", string(body)),
		)
		return fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	return nil
}
