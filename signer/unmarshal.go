package signer

import (
	"encoding/json"

	"github.com/pkg/errors"
)

// UnmarshalTx decodes a JSON-encoded transaction into the union member
// selected by its "type" tag. Used wherever transactions arrive over the
// wire rather than as Go values.
func UnmarshalTx(data []byte) (Tx, error) {
	var probe struct {
		Type TxType `json:"type"`
	}
	if err := json.Unmarshal(data, &probe); err != nil {
		return nil, errors.Wrap(err, "failed to read transaction type")
	}

	tx, err := newTx(probe.Type)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(data, tx); err != nil {
		return nil, errors.Wrapf(err, "failed to unmarshal type %d transaction", probe.Type)
	}
	return tx, nil
}

func newTx(t TxType) (Tx, error) {
	switch t {
	case TxIssue:
		return &IssueTx{}, nil
	case TxTransfer:
		return &TransferTx{}, nil
	case TxReissue:
		return &ReissueTx{}, nil
	case TxBurn:
		return &BurnTx{}, nil
	case TxLease:
		return &LeaseTx{}, nil
	case TxCancelLease:
		return &CancelLeaseTx{}, nil
	case TxAlias:
		return &AliasTx{}, nil
	case TxMassTransfer:
		return &MassTransferTx{}, nil
	case TxData:
		return &DataTx{}, nil
	case TxSetScript:
		return &SetScriptTx{}, nil
	case TxSponsorship:
		return &SponsorshipTx{}, nil
	case TxSetAssetScript:
		return &SetAssetScriptTx{}, nil
	case TxInvokeScript:
		return &InvokeScriptTx{}, nil
	default:
		return nil, errors.Errorf("unknown transaction type %d", t)
	}
}
