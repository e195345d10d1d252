// Package keeper models the request/response contract of the Keeper Wallet
// signing bridge. The provider only consumes this boundary: it never signs,
// hashes or broadcasts anything itself.
package keeper

import (
	"context"
	"encoding/json"
	"strconv"

	"github.com/Keeper-Wallet/provider-keeper/signer"
)

// WavesAssetID denotes the native asset in Money values.
const WavesAssetID = "WAVES"

// Money is the canonical amount/asset pair the wallet expects for every
// value the signer side may leave bare or with an implicit native default.
type Money struct {
	Amount  signer.Long `json:"amount"`
	AssetID string      `json:"assetId"`
}

// Bytes is a raw byte sequence serialized as a JSON array of numbers, the
// shape the wallet uses for binary attachments.
type Bytes []byte

func (b Bytes) MarshalJSON() ([]byte, error) {
	out := make([]byte, 0, len(b)*4+2)
	out = append(out, '[')
	for i, v := range b {
		if i > 0 {
			out = append(out, ',')
		}
		out = strconv.AppendUint(out, uint64(v), 10)
	}
	return append(out, ']'), nil
}

func (b *Bytes) UnmarshalJSON(data []byte) error {
	var nums []uint16
	if err := json.Unmarshal(data, &nums); err != nil {
		return err
	}
	raw := make([]byte, len(nums))
	for i, n := range nums {
		raw[i] = byte(n)
	}
	*b = raw
	return nil
}

// SignTx is the {type, data} envelope of a single signing request. Data is
// one of the per-kind *Data structs below.
type SignTx struct {
	Type signer.TxType `json:"type"`
	Data any           `json:"data"`
}

// TxDefaults carries the optional fields shared by every kind. A nil Fee
// omits the key entirely; its absence tells the wallet to estimate the fee,
// so it must never be serialized as null or zero.
type TxDefaults struct {
	Fee             *Money `json:"fee,omitempty"`
	SenderPublicKey string `json:"senderPublicKey,omitempty"`
	Timestamp       int64  `json:"timestamp,omitempty"`
}

type IssueData struct {
	TxDefaults
	Name        string      `json:"name"`
	Description string      `json:"description"`
	Quantity    signer.Long `json:"quantity"`
	Precision   int         `json:"precision"`
	Reissuable  bool        `json:"reissuable"`
	Script      string      `json:"script,omitempty"`
}

type TransferData struct {
	TxDefaults
	Amount     Money  `json:"amount"`
	Recipient  string `json:"recipient"`
	Attachment Bytes  `json:"attachment,omitempty"`
}

type ReissueData struct {
	TxDefaults
	AssetID    string      `json:"assetId"`
	Quantity   signer.Long `json:"quantity"`
	Reissuable bool        `json:"reissuable"`
}

type BurnData struct {
	TxDefaults
	AssetID string      `json:"assetId"`
	Amount  signer.Long `json:"amount"`
}

type LeaseData struct {
	TxDefaults
	Recipient string      `json:"recipient"`
	Amount    signer.Long `json:"amount"`
}

type LeaseCancelData struct {
	TxDefaults
	LeaseID string `json:"leaseId"`
}

type CreateAliasData struct {
	TxDefaults
	Alias string `json:"alias"`
}

// Transfer is a recipient/amount pair inside a mass transfer.
type Transfer struct {
	Recipient string      `json:"recipient"`
	Amount    signer.Long `json:"amount"`
}

type MassTransferData struct {
	TxDefaults
	// TotalAmount is a fixed placeholder carrying only the asset id; the
	// wallet recomputes the sum itself. Amount is always 0.
	TotalAmount Money      `json:"totalAmount"`
	Transfers   []Transfer `json:"transfers"`
	Attachment  Bytes      `json:"attachment,omitempty"`
}

type DataTxData struct {
	TxDefaults
	Data []signer.DataEntry `json:"data"`
}

type SetScriptData struct {
	TxDefaults
	Script string `json:"script"`
}

type SponsorshipData struct {
	TxDefaults
	MinSponsoredAssetFee Money `json:"minSponsoredAssetFee"`
}

type SetAssetScriptData struct {
	TxDefaults
	AssetID string `json:"assetId"`
	Script  string `json:"script"`
}

type InvokeScriptData struct {
	TxDefaults
	DApp    string           `json:"dApp"`
	Call    *signer.Call     `json:"call,omitempty"`
	Payment []signer.Payment `json:"payment"`
}

// Network is the wallet's live network identity.
type Network struct {
	Code   string `json:"code"`
	Server string `json:"server"`
}

// Account is the wallet's active account, if one is selected and shared.
type Account struct {
	Address   string `json:"address"`
	PublicKey string `json:"publicKey"`
}

// PublicState is the wallet's publicly visible state.
type PublicState struct {
	Network Network  `json:"network"`
	Account *Account `json:"account,omitempty"`
}

// AuthData is the nonce payload of an auth handshake.
type AuthData struct {
	Data string `json:"data"`
}

// CustomData is a version-1 (binary) or version-2 (typed entries) custom
// signing request.
type CustomData struct {
	Version int                `json:"version"`
	Binary  string             `json:"binary,omitempty"`
	Data    []signer.TypedData `json:"data,omitempty"`
}

// CustomDataSignature is the wallet's answer to a custom-data request.
type CustomDataSignature struct {
	Signature string `json:"signature"`
}

// API is the documented operation surface of the wallet bridge. Signed
// transactions come back as JSON strings exactly as the wallet produced
// them; parsing them precision-safely is the adapter's job.
type API interface {
	PublicState(ctx context.Context) (*PublicState, error)
	Auth(ctx context.Context, data AuthData) (*Account, error)
	SignTransaction(ctx context.Context, tx *SignTx) (string, error)
	SignTransactionPackage(ctx context.Context, txs []*SignTx) ([]string, error)
	SignCustomData(ctx context.Context, data CustomData) (*CustomDataSignature, error)
}
