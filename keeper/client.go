package keeper

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

// DefaultBridgeURL is where an installed Keeper Wallet announces its local
// signing bridge.
const DefaultBridgeURL = "http://127.0.0.1:14420"

const requestIDHeader = "X-Request-Id"

// RequestError is an error the wallet itself produced: the user rejected
// the request, the wallet is locked, and so on. It is passed through to the
// caller verbatim, never reinterpreted.
type RequestError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func (e *RequestError) Error() string {
	return fmt.Sprintf("keeper rejected request (code %d): %s", e.Code, e.Message)
}

// Client talks to the wallet bridge over its local HTTP endpoint.
type Client struct {
	base string
	http *http.Client
}

// NewClient creates a bridge client for the given base URL.
func NewClient(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 5 * time.Minute}
	}
	return &Client{
		base: strings.TrimRight(baseURL, "/"),
		http: httpClient,
	}
}

// Status is the wallet's readiness announcement.
type Status struct {
	Ready  bool `json:"ready"`
	Locked bool `json:"locked"`
}

// Status reads the wallet's announcement endpoint.
func (c *Client) Status(ctx context.Context) (*Status, error) {
	var status Status
	if err := c.call(ctx, http.MethodGet, "/api/v1/status", nil, &status); err != nil {
		return nil, err
	}
	return &status, nil
}

func (c *Client) PublicState(ctx context.Context) (*PublicState, error) {
	var state PublicState
	if err := c.call(ctx, http.MethodGet, "/api/v1/state", nil, &state); err != nil {
		return nil, err
	}
	return &state, nil
}

func (c *Client) Auth(ctx context.Context, data AuthData) (*Account, error) {
	var account Account
	if err := c.call(ctx, http.MethodPost, "/api/v1/auth", data, &account); err != nil {
		return nil, err
	}
	return &account, nil
}

func (c *Client) SignTransaction(ctx context.Context, tx *SignTx) (string, error) {
	var resp struct {
		Transaction string `json:"transaction"`
	}
	if err := c.call(ctx, http.MethodPost, "/api/v1/transactions/sign", tx, &resp); err != nil {
		return "", err
	}
	return resp.Transaction, nil
}

func (c *Client) SignTransactionPackage(ctx context.Context, txs []*SignTx) ([]string, error) {
	req := struct {
		Transactions []*SignTx `json:"transactions"`
	}{Transactions: txs}

	var resp struct {
		Transactions []string `json:"transactions"`
	}
	if err := c.call(ctx, http.MethodPost, "/api/v1/transactions/sign-package", req, &resp); err != nil {
		return nil, err
	}
	return resp.Transactions, nil
}

func (c *Client) SignCustomData(ctx context.Context, data CustomData) (*CustomDataSignature, error) {
	var resp CustomDataSignature
	if err := c.call(ctx, http.MethodPost, "/api/v1/custom-data/sign", data, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) call(ctx context.Context, method, path string, payload, out any) error {
	var body io.Reader
	if payload != nil {
		encoded, err := json.Marshal(payload)
		if err != nil {
			return errors.Wrap(err, "failed to encode request body")
		}
		body = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.base+path, body)
	if err != nil {
		return errors.Wrap(err, "failed to create bridge request")
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(requestIDHeader, uuid.NewString())

	resp, err := c.http.Do(req)
	if err != nil {
		return errors.Wrapf(err, "bridge request %s failed", path)
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return decodeRequestError(resp)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return errors.Wrapf(err, "failed to decode bridge response for %s", path)
	}
	return nil
}

func decodeRequestError(resp *http.Response) error {
	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<16))
	if err != nil {
		return errors.Wrapf(err, "bridge returned status %d", resp.StatusCode)
	}

	var reqErr RequestError
	if err := json.Unmarshal(raw, &reqErr); err == nil && reqErr.Message != "" {
		return &reqErr
	}

	log.Warn().
		Int("status", resp.StatusCode).
		Str("body", string(raw)).
		Msg("Bridge returned an unstructured error")

	return errors.Errorf("bridge returned status %d", resp.StatusCode)
}

var _ API = (*Client)(nil)
