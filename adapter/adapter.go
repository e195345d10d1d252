// Package adapter converts transactions between the signer-side
// representation and the {type, data} envelope the Keeper Wallet signs.
// Both directions are pure: malformed input propagates immediately.
package adapter

import (
	"strings"

	"github.com/btcsuite/btcd/btcutil/base58"
	"github.com/pkg/errors"

	"github.com/Keeper-Wallet/provider-keeper/keeper"
	"github.com/Keeper-Wallet/provider-keeper/signer"
)

// ErrUnsupportedType reports a transaction type outside the known set. This
// is a programmer error and is never retried.
var ErrUnsupportedType = errors.New("unsupported transaction type")

// ToKeeperTx maps a signer transaction onto the wallet's envelope.
func ToKeeperTx(tx signer.Tx) (*keeper.SignTx, error) {
	switch t := tx.(type) {
	case *signer.IssueTx:
		return issueTx(t), nil
	case *signer.TransferTx:
		return transferTx(t), nil
	case *signer.ReissueTx:
		return reissueTx(t), nil
	case *signer.BurnTx:
		return burnTx(t), nil
	case *signer.LeaseTx:
		return leaseTx(t), nil
	case *signer.CancelLeaseTx:
		return cancelLeaseTx(t), nil
	case *signer.AliasTx:
		return aliasTx(t), nil
	case *signer.MassTransferTx:
		return massTransferTx(t), nil
	case *signer.DataTx:
		return dataTx(t), nil
	case *signer.SetScriptTx:
		return setScriptTx(t), nil
	case *signer.SponsorshipTx:
		return sponsorshipTx(t), nil
	case *signer.SetAssetScriptTx:
		return setAssetScriptTx(t), nil
	case *signer.InvokeScriptTx:
		return invokeScriptTx(t), nil
	default:
		return nil, errors.Wrapf(ErrUnsupportedType, "%T", tx)
	}
}

// money wraps a bare amount into the wallet's canonical shape, defaulting
// the asset to the native one.
func money(amount signer.Long, assetID string) keeper.Money {
	if assetID == "" {
		assetID = keeper.WavesAssetID
	}
	return keeper.Money{Amount: amount, AssetID: assetID}
}

// txDefaults builds the shared optional fields. The fee key is withheld
// entirely for a zero fee: its absence is what tells the wallet to
// estimate the fee itself.
func txDefaults(c signer.Common, feeAssetID string) keeper.TxDefaults {
	defaults := keeper.TxDefaults{
		SenderPublicKey: c.SenderPublicKey,
		Timestamp:       c.Timestamp,
	}
	if !c.Fee.IsZero() {
		fee := money(c.Fee, feeAssetID)
		defaults.Fee = &fee
	}
	return defaults
}

// recipientName reduces the alias wire form "alias:<chainId>:<name>" to the
// bare name; canonical addresses pass through untouched.
func recipientName(recipient string) string {
	if !strings.HasPrefix(recipient, "alias:") {
		return recipient
	}
	parts := strings.SplitN(recipient, ":", 3)
	if len(parts) != 3 {
		return recipient
	}
	return parts[2]
}

// attachmentBytes decodes the base58 wire form of an attachment into the
// raw byte sequence the wallet expects.
func attachmentBytes(attachment string) keeper.Bytes {
	if attachment == "" {
		return nil
	}
	return keeper.Bytes(base58.Decode(attachment))
}

func issueTx(tx *signer.IssueTx) *keeper.SignTx {
	return &keeper.SignTx{
		Type: signer.TxIssue,
		Data: &keeper.IssueData{
			TxDefaults:  txDefaults(tx.Common, ""),
			Name:        tx.Name,
			Description: tx.Description,
			Quantity:    tx.Quantity,
			Precision:   tx.Decimals,
			Reissuable:  tx.Reissuable,
			Script:      tx.Script,
		},
	}
}

func transferTx(tx *signer.TransferTx) *keeper.SignTx {
	return &keeper.SignTx{
		Type: signer.TxTransfer,
		Data: &keeper.TransferData{
			TxDefaults: txDefaults(tx.Common, tx.FeeAssetID),
			Amount:     money(tx.Amount, tx.AssetID),
			Recipient:  recipientName(tx.Recipient),
			Attachment: attachmentBytes(tx.Attachment),
		},
	}
}

func reissueTx(tx *signer.ReissueTx) *keeper.SignTx {
	return &keeper.SignTx{
		Type: signer.TxReissue,
		Data: &keeper.ReissueData{
			TxDefaults: txDefaults(tx.Common, ""),
			AssetID:    tx.AssetID,
			Quantity:   tx.Quantity,
			Reissuable: tx.Reissuable,
		},
	}
}

func burnTx(tx *signer.BurnTx) *keeper.SignTx {
	return &keeper.SignTx{
		Type: signer.TxBurn,
		Data: &keeper.BurnData{
			TxDefaults: txDefaults(tx.Common, ""),
			AssetID:    tx.AssetID,
			Amount:     tx.Amount,
		},
	}
}

func leaseTx(tx *signer.LeaseTx) *keeper.SignTx {
	return &keeper.SignTx{
		Type: signer.TxLease,
		Data: &keeper.LeaseData{
			TxDefaults: txDefaults(tx.Common, ""),
			Recipient:  recipientName(tx.Recipient),
			Amount:     tx.Amount,
		},
	}
}

func cancelLeaseTx(tx *signer.CancelLeaseTx) *keeper.SignTx {
	return &keeper.SignTx{
		Type: signer.TxCancelLease,
		Data: &keeper.LeaseCancelData{
			TxDefaults: txDefaults(tx.Common, ""),
			LeaseID:    tx.LeaseID,
		},
	}
}

func aliasTx(tx *signer.AliasTx) *keeper.SignTx {
	return &keeper.SignTx{
		Type: signer.TxAlias,
		Data: &keeper.CreateAliasData{
			TxDefaults: txDefaults(tx.Common, ""),
			Alias:      tx.Alias,
		},
	}
}

func massTransferTx(tx *signer.MassTransferTx) *keeper.SignTx {
	transfers := make([]keeper.Transfer, len(tx.Transfers))
	for i, item := range tx.Transfers {
		transfers[i] = keeper.Transfer{
			Recipient: recipientName(item.Recipient),
			Amount:    item.Amount,
		}
	}
	return &keeper.SignTx{
		Type: signer.TxMassTransfer,
		Data: &keeper.MassTransferData{
			TxDefaults:  txDefaults(tx.Common, ""),
			TotalAmount: money("0", tx.AssetID),
			Transfers:   transfers,
			Attachment:  attachmentBytes(tx.Attachment),
		},
	}
}

func dataTx(tx *signer.DataTx) *keeper.SignTx {
	return &keeper.SignTx{
		Type: signer.TxData,
		Data: &keeper.DataTxData{
			TxDefaults: txDefaults(tx.Common, ""),
			Data:       tx.Data,
		},
	}
}

func setScriptTx(tx *signer.SetScriptTx) *keeper.SignTx {
	return &keeper.SignTx{
		Type: signer.TxSetScript,
		Data: &keeper.SetScriptData{
			TxDefaults: txDefaults(tx.Common, ""),
			Script:     tx.Script,
		},
	}
}

func sponsorshipTx(tx *signer.SponsorshipTx) *keeper.SignTx {
	return &keeper.SignTx{
		Type: signer.TxSponsorship,
		Data: &keeper.SponsorshipData{
			TxDefaults:           txDefaults(tx.Common, ""),
			MinSponsoredAssetFee: money(tx.MinSponsoredAssetFee, tx.AssetID),
		},
	}
}

func setAssetScriptTx(tx *signer.SetAssetScriptTx) *keeper.SignTx {
	return &keeper.SignTx{
		Type: signer.TxSetAssetScript,
		Data: &keeper.SetAssetScriptData{
			TxDefaults: txDefaults(tx.Common, ""),
			AssetID:    tx.AssetID,
			Script:     tx.Script,
		},
	}
}

func invokeScriptTx(tx *signer.InvokeScriptTx) *keeper.SignTx {
	payment := tx.Payment
	if payment == nil {
		payment = []signer.Payment{}
	}
	return &keeper.SignTx{
		Type: signer.TxInvokeScript,
		Data: &keeper.InvokeScriptData{
			TxDefaults: txDefaults(tx.Common, tx.FeeAssetID),
			DApp:       recipientName(tx.DApp),
			Call:       tx.Call,
			Payment:    payment,
		},
	}
}
