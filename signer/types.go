package signer

import "context"

// TxType identifies a transaction kind on the wire.
type TxType int

const (
	TxIssue          TxType = 3
	TxTransfer       TxType = 4
	TxReissue        TxType = 5
	TxBurn           TxType = 6
	TxLease          TxType = 8
	TxCancelLease    TxType = 9
	TxAlias          TxType = 10
	TxMassTransfer   TxType = 11
	TxData           TxType = 12
	TxSetScript      TxType = 13
	TxSponsorship    TxType = 14
	TxSetAssetScript TxType = 15
	TxInvokeScript   TxType = 16
)

// Tx is the tagged union of signer-side transactions. Each member is one of
// the *Tx structs in this package; the discriminant is TxType.
type Tx interface {
	TxType() TxType
}

// Common holds the optional fields every transaction kind may carry.
// A zero Fee means "no explicit fee": the wallet estimates it on its own.
type Common struct {
	Fee             Long   `json:"fee,omitempty"`
	SenderPublicKey string `json:"senderPublicKey,omitempty"`
	Timestamp       int64  `json:"timestamp,omitempty"`
}

// IssueTx creates a new asset.
type IssueTx struct {
	Common
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Quantity    Long   `json:"quantity"`
	Decimals    int    `json:"decimals"`
	Reissuable  bool   `json:"reissuable,omitempty"`
	Script      string `json:"script,omitempty"`
}

func (*IssueTx) TxType() TxType { return TxIssue }

// TransferTx moves an asset amount to a single recipient.
type TransferTx struct {
	Common
	FeeAssetID string `json:"feeAssetId,omitempty"`
	Recipient  string `json:"recipient"`
	Amount     Long   `json:"amount"`
	AssetID    string `json:"assetId,omitempty"`
	Attachment string `json:"attachment,omitempty"`
}

func (*TransferTx) TxType() TxType { return TxTransfer }

type ReissueTx struct {
	Common
	AssetID    string `json:"assetId"`
	Quantity   Long   `json:"quantity"`
	Reissuable bool   `json:"reissuable"`
}

func (*ReissueTx) TxType() TxType { return TxReissue }

type BurnTx struct {
	Common
	AssetID string `json:"assetId"`
	Amount  Long   `json:"amount"`
}

func (*BurnTx) TxType() TxType { return TxBurn }

type LeaseTx struct {
	Common
	Recipient string `json:"recipient"`
	Amount    Long   `json:"amount"`
}

func (*LeaseTx) TxType() TxType { return TxLease }

type CancelLeaseTx struct {
	Common
	LeaseID string `json:"leaseId"`
}

func (*CancelLeaseTx) TxType() TxType { return TxCancelLease }

type AliasTx struct {
	Common
	Alias string `json:"alias"`
}

func (*AliasTx) TxType() TxType { return TxAlias }

// MassTransferItem is a single recipient/amount pair of a mass transfer.
type MassTransferItem struct {
	Recipient string `json:"recipient"`
	Amount    Long   `json:"amount"`
}

type MassTransferTx struct {
	Common
	AssetID    string             `json:"assetId,omitempty"`
	Transfers  []MassTransferItem `json:"transfers"`
	Attachment string             `json:"attachment,omitempty"`
}

func (*MassTransferTx) TxType() TxType { return TxMassTransfer }

type DataTx struct {
	Common
	Data []DataEntry `json:"data"`
}

func (*DataTx) TxType() TxType { return TxData }

type SetScriptTx struct {
	Common
	Script string `json:"script"`
}

func (*SetScriptTx) TxType() TxType { return TxSetScript }

type SponsorshipTx struct {
	Common
	AssetID              string `json:"assetId"`
	MinSponsoredAssetFee Long   `json:"minSponsoredAssetFee"`
}

func (*SponsorshipTx) TxType() TxType { return TxSponsorship }

type SetAssetScriptTx struct {
	Common
	AssetID string `json:"assetId"`
	Script  string `json:"script"`
}

func (*SetAssetScriptTx) TxType() TxType { return TxSetAssetScript }

type InvokeScriptTx struct {
	Common
	FeeAssetID string    `json:"feeAssetId,omitempty"`
	DApp       string    `json:"dApp"`
	Call       *Call     `json:"call,omitempty"`
	Payment    []Payment `json:"payment,omitempty"`
}

func (*InvokeScriptTx) TxType() TxType { return TxInvokeScript }

// Call describes the dApp function invocation of an InvokeScript transaction.
type Call struct {
	Function string    `json:"function"`
	Args     []CallArg `json:"args"`
}

// Payment is an asset/amount pair attached to an InvokeScript transaction.
// A nil AssetID denotes the native asset.
type Payment struct {
	Amount  Long    `json:"amount"`
	AssetID *string `json:"assetId"`
}

// UserData identifies the wallet account a session is bound to.
type UserData struct {
	Address   string `json:"address"`
	PublicKey string `json:"publicKey"`
}

// ConnectOptions is the caller's expected network identity. It is compared
// against the wallet's live network on every gated provider operation.
type ConnectOptions struct {
	NetworkByte byte   `json:"networkByte"`
	NodeURL     string `json:"nodeUrl"`
}

// AuthEvent names a provider lifecycle event.
type AuthEvent string

const (
	EventLogin  AuthEvent = "login"
	EventLogout AuthEvent = "logout"
)

// Handler receives lifecycle event payloads. The payload is nil for logout.
type Handler func(user *UserData)

// Subscription cancels an event subscription when invoked.
type Subscription func()

// TypedData is a typed key/value entry signed via the version-2 custom data
// protocol. It shares the data-transaction entry shape.
type TypedData = DataEntry

// Provider is the capability contract a wallet provider exposes to the
// signer library.
type Provider interface {
	Connect(ctx context.Context, options ConnectOptions) error
	Login(ctx context.Context) (*UserData, error)
	Logout(ctx context.Context) error
	On(event AuthEvent, handler Handler) Subscription
	Once(event AuthEvent, handler Handler) Subscription
	Off(sub Subscription)
	SignMessage(ctx context.Context, message string) (string, error)
	SignTypedData(ctx context.Context, data []TypedData) (string, error)
	Sign(ctx context.Context, txs []Tx) ([]*SignedTx, error)
}
