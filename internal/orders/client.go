// Package orders holds the client for the order-creation collaborator. The
// checkout flow treats it as a black box: a draft-shaped payload goes in, an
// opaque order identifier comes back.
package orders

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

	"go.uber.org/zap"

	domain "github.com/attarhouse/storefront/internal/domain"
)

const (
	defaultSubmitTimeout = 15 * time.Second
	maxResponseBody      = 64 * 1024
)

// ClientDeps configures the order submission client.
type ClientDeps struct {
	Endpoint   string
	HTTPClient *http.Client
	Logger     *zap.Logger
}

// Client submits order drafts over HTTP.
type Client struct {
	endpoint string
	http     *http.Client
	logger   *zap.Logger
}

// NewClient validates the endpoint and returns a client.
func NewClient(deps ClientDeps) (*Client, error) {
	endpoint := strings.TrimSpace(deps.Endpoint)
	if endpoint == "" {
		return nil, errors.New("orders client: endpoint is required")
	}
	httpClient := deps.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: defaultSubmitTimeout}
	}
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{endpoint: endpoint, http: httpClient, logger: logger}, nil
}

type submitResponse struct {
	OrderID string `json:"orderId"`
}

// SubmitOrder posts the draft and returns the acknowledged order identifier.
func (c *Client) SubmitOrder(ctx context.Context, draft domain.OrderDraft) (string, error) {
	payload, err := json.Marshal(draft)
	if err != nil {
		return "", fmt.Errorf("orders client: encode draft: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("orders client: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("orders client: submit: %w", err)
	}
	defer func() {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxResponseBody))
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		c.logger.Warn("order submission rejected by collaborator",
			zap.String("draft_id", draft.ID),
			zap.Int("status", resp.StatusCode),
		)
		return "", fmt.Errorf("orders client: unexpected status %d", resp.StatusCode)
	}

	var ack submitResponse
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxResponseBody)).Decode(&ack); err != nil {
		return "", fmt.Errorf("orders client: decode response: %w", err)
	}
	if strings.TrimSpace(ack.OrderID) == "" {
		return "", errors.New("orders client: response missing order id")
	}
	return ack.OrderID, nil
}
