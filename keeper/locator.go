package keeper

import (
	"context"
	"net/http"

	"github.com/pkg/errors"
)

// Locator probes for the wallet's announcement once. It returns an API
// handle only when the wallet is installed, running and unlocked; the
// provider retries the probe on a fixed schedule.
type Locator interface {
	Locate(ctx context.Context) (API, error)
}

// HTTPLocator discovers the wallet through its local HTTP bridge.
type HTTPLocator struct {
	baseURL string
	client  *Client
}

// NewHTTPLocator creates a locator for the given bridge base URL. An empty
// URL falls back to DefaultBridgeURL.
func NewHTTPLocator(baseURL string, httpClient *http.Client) *HTTPLocator {
	if baseURL == "" {
		baseURL = DefaultBridgeURL
	}
	return &HTTPLocator{
		baseURL: baseURL,
		client:  NewClient(baseURL, httpClient),
	}
}

func (l *HTTPLocator) Locate(ctx context.Context) (API, error) {
	status, err := l.client.Status(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "keeper bridge is not reachable")
	}
	if !status.Ready || status.Locked {
		return nil, errors.New("keeper bridge is not ready")
	}
	return l.client, nil
}
