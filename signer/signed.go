package signer

// SignedTx is a fully-populated, network-committed transaction as returned
// by the wallet. Fields that do not apply to the transaction kind stay at
// their zero values. Every 64-bit quantity is normalized to Long regardless
// of how the wallet serialized it.
type SignedTx struct {
	ID              string   `json:"id"`
	Type            TxType   `json:"type"`
	Version         int      `json:"version"`
	SenderPublicKey string   `json:"senderPublicKey"`
	Proofs          []string `json:"proofs"`
	ChainID         byte     `json:"chainId"`
	Timestamp       int64    `json:"timestamp"`
	Fee             Long     `json:"fee,omitempty"`
	FeeAssetID      *string  `json:"feeAssetId,omitempty"`

	// Issue / Reissue
	Name        string `json:"name,omitempty"`
	Description string `json:"description,omitempty"`
	Quantity    Long   `json:"quantity,omitempty"`
	Decimals    int    `json:"decimals,omitempty"`
	Reissuable  bool   `json:"reissuable,omitempty"`

	// Transfer / Burn / Lease / MassTransfer
	AssetID    *string            `json:"assetId,omitempty"`
	Recipient  string             `json:"recipient,omitempty"`
	Amount     Long               `json:"amount,omitempty"`
	Attachment string             `json:"attachment,omitempty"`
	Transfers  []MassTransferItem `json:"transfers,omitempty"`

	// CancelLease / Alias / Data / scripts / Sponsorship
	LeaseID              string      `json:"leaseId,omitempty"`
	Alias                string      `json:"alias,omitempty"`
	Data                 []DataEntry `json:"data,omitempty"`
	Script               *string     `json:"script,omitempty"`
	MinSponsoredAssetFee Long        `json:"minSponsoredAssetFee,omitempty"`

	// InvokeScript
	DApp    string    `json:"dApp,omitempty"`
	Call    *Call     `json:"call,omitempty"`
	Payment []Payment `json:"payment,omitempty"`
}
