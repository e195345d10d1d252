// Package nodeapi talks to a Waves node's REST API. The provider only uses
// it for fee pre-estimation; estimation failures are recoverable and the
// caller falls back to signing without a prefilled fee.
package nodeapi

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/pkg/errors"

	"github.com/Keeper-Wallet/provider-keeper/signer"
)

// FeeEstimate is the node's answer to a calculateFee request.
type FeeEstimate struct {
	FeeAmount  signer.Long `json:"feeAmount"`
	FeeAssetID *string     `json:"feeAssetId"`
}

// Estimator resolves the minimal fee for a transaction against a node.
type Estimator interface {
	CalculateFee(ctx context.Context, nodeURL string, tx signer.Tx) (*FeeEstimate, error)
}

// Client is an HTTP Estimator.
type Client struct {
	http *http.Client
}

func NewClient(httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}
	return &Client{http: httpClient}
}

// CalculateFee posts the transaction to /transactions/calculateFee.
func (c *Client) CalculateFee(ctx context.Context, nodeURL string, tx signer.Tx) (*FeeEstimate, error) {
	payload, err := marshalWithType(tx)
	if err != nil {
		return nil, err
	}

	url := strings.TrimRight(nodeURL, "/") + "/transactions/calculateFee"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return nil, errors.Wrap(err, "failed to create calculateFee request")
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, errors.Wrap(err, "calculateFee request failed")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<14))
		return nil, errors.Errorf("node returned status %d: %s", resp.StatusCode, string(body))
	}

	var estimate FeeEstimate
	if err := json.NewDecoder(resp.Body).Decode(&estimate); err != nil {
		return nil, errors.Wrap(err, "failed to decode calculateFee response")
	}
	return &estimate, nil
}

// marshalWithType flattens a signer transaction and injects the type tag
// the node expects at the top level.
func marshalWithType(tx signer.Tx) ([]byte, error) {
	encoded, err := json.Marshal(tx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to encode transaction")
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(encoded, &fields); err != nil {
		return nil, errors.Wrap(err, "failed to flatten transaction")
	}

	typeTag, err := json.Marshal(tx.TxType())
	if err != nil {
		return nil, errors.Wrap(err, "failed to encode transaction type")
	}
	fields["type"] = typeTag

	out, err := json.Marshal(fields)
	if err != nil {
		return nil, errors.Wrap(err, "failed to encode calculateFee payload")
	}
	return out, nil
}

var _ Estimator = (*Client)(nil)
