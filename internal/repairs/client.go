package repairs

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/bccsims/asset-inventory/internal"
)

// ErrUnavailable collapses every failure mode of the repairs system into one
// sentinel. Callers degrade gracefully rather than branch on the cause.
var ErrUnavailable = errors.New("repair status unavailable")

// Status is the subset of the repairs system response we surface.
type Status struct {
	SerialNumber string `json:"serialNumber"`
	Status       string `json:"status"`
	TicketRef    string `json:"ticketRef,omitempty"`
	UpdatedAt    string `json:"updatedAt,omitempty"`
}

// Client calls the external repairs tracker. Every request is bounded by the
// configured timeout so a slow partner cannot stall our handlers.
type Client struct {
	baseURL    string
	timeout    time.Duration
	httpClient *http.Client
	logger     *slog.Logger
}

func NewClient(baseURL string, timeout time.Duration, logger *slog.Logger) *Client {
	return &Client{
		baseURL:    baseURL,
		timeout:    timeout,
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger,
	}
}

// FetchRepairStatus asks the repairs tracker about a serial number. Any
// failure, from transport errors to malformed bodies, returns ErrUnavailable.
func (c *Client) FetchRepairStatus(ctx context.Context, serial string) (*Status, error) {
	if c.baseURL == "" {
		return nil, ErrUnavailable
	}

	ctx, cancel := internal.WithTimeout(ctx, c.timeout)
	defer cancel()

	endpoint := fmt.Sprintf("%s/api/external/repair-status/%s", c.baseURL, url.PathEscape(serial))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		c.logger.Warn("repairs request build failed", "error", err)
		return nil, ErrUnavailable
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Warn("repairs system unreachable", "error", err)
		return nil, ErrUnavailable
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		c.logger.Warn("repairs system returned non-200", "status", resp.StatusCode)
		return nil, ErrUnavailable
	}

	var status Status
	if err := json.NewDecoder(resp.Body).Decode(&status); err != nil {
		c.logger.Warn("repairs response malformed", "error", err)
		return nil, ErrUnavailable
	}
	status.SerialNumber = serial
	return &status, nil
}
