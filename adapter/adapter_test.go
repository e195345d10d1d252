package adapter_test

import (
	"encoding/json"
	"testing"

	"github.com/btcsuite/btcd/btcutil/base58"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Keeper-Wallet/provider-keeper/adapter"
	"github.com/Keeper-Wallet/provider-keeper/keeper"
	"github.com/Keeper-Wallet/provider-keeper/signer"
)

const (
	assetID    = "7sP5abE9nGRwZxkgaEXgkQDZ3ERBcm9PLHixaUE5SYoT"
	leaseID    = "3N5HNJz5otiUavvoPrxMBrXBVv5HhYLdhiD"
	recipient  = "3N5HNJz5otiUavvoPrxMBrXBVv5HhYLdhiD"
	dApp       = "3My2kBJaGfeM2koiZroaYdd3y8rAgfV2EAx"
	script     = "base64:BQbtKNoM"
	attachment = "Bk24FrtZ"
	longMax    = signer.Long("9223372036854775807")
)

// minimalTxs returns one minimal valid transaction per kind, none carrying
// a fee.
func minimalTxs() map[string]signer.Tx {
	return map[string]signer.Tx{
		"issue":            &signer.IssueTx{Name: "ScriptToken", Quantity: longMax, Decimals: 8},
		"transfer":         &signer.TransferTx{Recipient: recipient, Amount: "123456790"},
		"reissue":          &signer.ReissueTx{AssetID: assetID, Quantity: "100", Reissuable: true},
		"burn":             &signer.BurnTx{AssetID: assetID, Amount: "100"},
		"lease":            &signer.LeaseTx{Recipient: recipient, Amount: "100"},
		"cancel lease":     &signer.CancelLeaseTx{LeaseID: leaseID},
		"alias":            &signer.AliasTx{Alias: "merry"},
		"mass transfer":    &signer.MassTransferTx{Transfers: []signer.MassTransferItem{{Recipient: "testy", Amount: "1"}}},
		"data":             &signer.DataTx{Data: []signer.DataEntry{{Key: "k", Type: signer.EntryString, Value: "v"}}},
		"set script":       &signer.SetScriptTx{Script: script},
		"sponsorship":      &signer.SponsorshipTx{AssetID: assetID, MinSponsoredAssetFee: "100"},
		"set asset script": &signer.SetAssetScriptTx{AssetID: assetID, Script: script},
		"invoke script":    &signer.InvokeScriptTx{DApp: dApp},
	}
}

func setFee(tx signer.Tx, fee signer.Long) {
	switch t := tx.(type) {
	case *signer.IssueTx:
		t.Fee = fee
	case *signer.TransferTx:
		t.Fee = fee
	case *signer.ReissueTx:
		t.Fee = fee
	case *signer.BurnTx:
		t.Fee = fee
	case *signer.LeaseTx:
		t.Fee = fee
	case *signer.CancelLeaseTx:
		t.Fee = fee
	case *signer.AliasTx:
		t.Fee = fee
	case *signer.MassTransferTx:
		t.Fee = fee
	case *signer.DataTx:
		t.Fee = fee
	case *signer.SetScriptTx:
		t.Fee = fee
	case *signer.SponsorshipTx:
		t.Fee = fee
	case *signer.SetAssetScriptTx:
		t.Fee = fee
	case *signer.InvokeScriptTx:
		t.Fee = fee
	}
}

// dataJSON marshals the envelope's data member to a generic map so tests
// can assert key presence and absence.
func dataJSON(t *testing.T, tx *keeper.SignTx) map[string]any {
	t.Helper()
	raw, err := json.Marshal(tx.Data)
	require.NoError(t, err)
	var m map[string]any
	require.NoError(t, json.Unmarshal(raw, &m))
	return m
}

func TestToKeeperTxFeeOmittedWhenAbsent(t *testing.T) {
	for name, tx := range minimalTxs() {
		t.Run(name, func(t *testing.T) {
			mapped, err := adapter.ToKeeperTx(tx)
			require.NoError(t, err)
			assert.NotContains(t, dataJSON(t, mapped), "fee")
		})
	}
}

func TestToKeeperTxFeeIsMoney(t *testing.T) {
	for name, tx := range minimalTxs() {
		t.Run(name, func(t *testing.T) {
			setFee(tx, "123456790")

			mapped, err := adapter.ToKeeperTx(tx)
			require.NoError(t, err)
			assert.Equal(t, map[string]any{
				"amount":  "123456790",
				"assetId": "WAVES",
			}, dataJSON(t, mapped)["fee"])
		})
	}
}

func TestToKeeperTxFeeAssetID(t *testing.T) {
	t.Run("transfer", func(t *testing.T) {
		tx := &signer.TransferTx{Recipient: recipient, Amount: "1"}
		tx.Fee = "100000"
		tx.FeeAssetID = assetID

		mapped, err := adapter.ToKeeperTx(tx)
		require.NoError(t, err)
		assert.Equal(t, assetID, mapped.Data.(*keeper.TransferData).Fee.AssetID)
	})

	t.Run("invoke script", func(t *testing.T) {
		tx := &signer.InvokeScriptTx{DApp: dApp}
		tx.Fee = "500000"
		tx.FeeAssetID = assetID

		mapped, err := adapter.ToKeeperTx(tx)
		require.NoError(t, err)
		assert.Equal(t, assetID, mapped.Data.(*keeper.InvokeScriptData).Fee.AssetID)
	})
}

func TestToKeeperTxIssue(t *testing.T) {
	tx := &signer.IssueTx{
		Name:        "ScriptToken",
		Description: "ScriptToken",
		Quantity:    longMax,
		Decimals:    8,
		Reissuable:  true,
		Script:      script,
	}

	mapped, err := adapter.ToKeeperTx(tx)
	require.NoError(t, err)
	assert.Equal(t, signer.TxIssue, mapped.Type)

	data, ok := mapped.Data.(*keeper.IssueData)
	require.True(t, ok)
	assert.Equal(t, "ScriptToken", data.Name)
	assert.Equal(t, longMax, data.Quantity)
	assert.Equal(t, 8, data.Precision)
	assert.True(t, data.Reissuable)
	assert.Equal(t, script, data.Script)
}

func TestToKeeperTxIssueOptionalDefaults(t *testing.T) {
	tx := &signer.IssueTx{Name: "Token", Quantity: "100", Decimals: 0}

	mapped, err := adapter.ToKeeperTx(tx)
	require.NoError(t, err)

	data := mapped.Data.(*keeper.IssueData)
	assert.Equal(t, "", data.Description)
	assert.False(t, data.Reissuable)

	// script must be missing entirely, not null
	assert.NotContains(t, dataJSON(t, mapped), "script")
}

func TestToKeeperTxTransfer(t *testing.T) {
	tx := &signer.TransferTx{
		Recipient:  recipient,
		Amount:     "123456790",
		Attachment: attachment,
	}

	mapped, err := adapter.ToKeeperTx(tx)
	require.NoError(t, err)

	data := mapped.Data.(*keeper.TransferData)
	assert.Equal(t, recipient, data.Recipient)
	assert.Equal(t, keeper.Money{Amount: "123456790", AssetID: "WAVES"}, data.Amount)
	assert.Equal(t, keeper.Bytes(base58.Decode(attachment)), data.Attachment)
}

func TestToKeeperTxTransferAmountInAsset(t *testing.T) {
	tx := &signer.TransferTx{Recipient: recipient, Amount: "1", AssetID: assetID}

	mapped, err := adapter.ToKeeperTx(tx)
	require.NoError(t, err)
	assert.Equal(t, assetID, mapped.Data.(*keeper.TransferData).Amount.AssetID)
}

func TestToKeeperTxTransferAttachmentAbsent(t *testing.T) {
	tx := &signer.TransferTx{Recipient: recipient, Amount: "1"}

	mapped, err := adapter.ToKeeperTx(tx)
	require.NoError(t, err)
	assert.NotContains(t, dataJSON(t, mapped), "attachment")
}

func TestToKeeperTxTransferAliasRecipient(t *testing.T) {
	tx := &signer.TransferTx{Recipient: "alias:T:merry", Amount: "1"}

	mapped, err := adapter.ToKeeperTx(tx)
	require.NoError(t, err)
	assert.Equal(t, "merry", mapped.Data.(*keeper.TransferData).Recipient)
}

func TestToKeeperTxReissue(t *testing.T) {
	tx := &signer.ReissueTx{AssetID: assetID, Quantity: "123456790", Reissuable: true}

	mapped, err := adapter.ToKeeperTx(tx)
	require.NoError(t, err)
	assert.Equal(t, &keeper.ReissueData{
		AssetID:    assetID,
		Quantity:   "123456790",
		Reissuable: true,
	}, mapped.Data)
}

func TestToKeeperTxBurn(t *testing.T) {
	tx := &signer.BurnTx{AssetID: assetID, Amount: "123456790"}

	mapped, err := adapter.ToKeeperTx(tx)
	require.NoError(t, err)
	assert.Equal(t, &keeper.BurnData{AssetID: assetID, Amount: "123456790"}, mapped.Data)
}

func TestToKeeperTxLease(t *testing.T) {
	tx := &signer.LeaseTx{Recipient: recipient, Amount: "123456790"}

	mapped, err := adapter.ToKeeperTx(tx)
	require.NoError(t, err)
	assert.Equal(t, &keeper.LeaseData{Recipient: recipient, Amount: "123456790"}, mapped.Data)
}

func TestToKeeperTxCancelLease(t *testing.T) {
	tx := &signer.CancelLeaseTx{LeaseID: leaseID}

	mapped, err := adapter.ToKeeperTx(tx)
	require.NoError(t, err)
	assert.Equal(t, &keeper.LeaseCancelData{LeaseID: leaseID}, mapped.Data)
}

func TestToKeeperTxAlias(t *testing.T) {
	tx := &signer.AliasTx{Alias: "merry"}

	mapped, err := adapter.ToKeeperTx(tx)
	require.NoError(t, err)
	assert.Equal(t, &keeper.CreateAliasData{Alias: "merry"}, mapped.Data)
}

func TestToKeeperTxMassTransfer(t *testing.T) {
	tx := &signer.MassTransferTx{
		AssetID: assetID,
		Transfers: []signer.MassTransferItem{
			{Recipient: "alias:T:testy", Amount: "1"},
			{Recipient: "alias:T:merry", Amount: "1"},
		},
		Attachment: attachment,
	}

	mapped, err := adapter.ToKeeperTx(tx)
	require.NoError(t, err)

	data := mapped.Data.(*keeper.MassTransferData)
	// totalAmount is a placeholder, never the sum of transfers
	assert.Equal(t, keeper.Money{Amount: "0", AssetID: assetID}, data.TotalAmount)
	assert.Equal(t, []keeper.Transfer{
		{Recipient: "testy", Amount: "1"},
		{Recipient: "merry", Amount: "1"},
	}, data.Transfers)
	assert.Equal(t, keeper.Bytes(base58.Decode(attachment)), data.Attachment)
}

func TestToKeeperTxMassTransferNoAttachment(t *testing.T) {
	tx := &signer.MassTransferTx{Transfers: []signer.MassTransferItem{{Recipient: "testy", Amount: "1"}}}

	mapped, err := adapter.ToKeeperTx(tx)
	require.NoError(t, err)
	assert.NotContains(t, dataJSON(t, mapped), "attachment")
	assert.Equal(t, "WAVES", mapped.Data.(*keeper.MassTransferData).TotalAmount.AssetID)
}

func TestToKeeperTxData(t *testing.T) {
	entries := []signer.DataEntry{
		{Key: "stringValue", Type: signer.EntryString, Value: "Lorem ipsum dolor sit amet"},
		{Key: "longMaxValue", Type: signer.EntryInteger, Value: longMax},
		{Key: "flagValue", Type: signer.EntryBoolean, Value: true},
	}
	tx := &signer.DataTx{Data: entries}

	mapped, err := adapter.ToKeeperTx(tx)
	require.NoError(t, err)
	assert.Equal(t, entries, mapped.Data.(*keeper.DataTxData).Data)
}

func TestToKeeperTxSetScript(t *testing.T) {
	tx := &signer.SetScriptTx{Script: script}

	mapped, err := adapter.ToKeeperTx(tx)
	require.NoError(t, err)
	assert.Equal(t, &keeper.SetScriptData{Script: script}, mapped.Data)
}

func TestToKeeperTxSponsorship(t *testing.T) {
	tx := &signer.SponsorshipTx{AssetID: assetID, MinSponsoredAssetFee: "123456790"}

	mapped, err := adapter.ToKeeperTx(tx)
	require.NoError(t, err)
	assert.Equal(t, &keeper.SponsorshipData{
		MinSponsoredAssetFee: keeper.Money{Amount: "123456790", AssetID: assetID},
	}, mapped.Data)
}

func TestToKeeperTxSetAssetScript(t *testing.T) {
	tx := &signer.SetAssetScriptTx{AssetID: assetID, Script: script}

	mapped, err := adapter.ToKeeperTx(tx)
	require.NoError(t, err)
	assert.Equal(t, &keeper.SetAssetScriptData{AssetID: assetID, Script: script}, mapped.Data)
}

func TestToKeeperTxInvokeScript(t *testing.T) {
	nativeAsset := (*string)(nil)
	asset := assetID
	tx := &signer.InvokeScriptTx{
		DApp: dApp,
		Call: &signer.Call{
			Function: "someFunctionToCall",
			Args: []signer.CallArg{
				{Type: signer.EntryBinary, Value: script},
				{Type: signer.EntryBoolean, Value: true},
				{Type: signer.EntryInteger, Value: longMax},
				{Type: signer.EntryString, Value: "Lorem ipsum dolor sit amet"},
			},
		},
		Payment: []signer.Payment{
			{Amount: "1", AssetID: nativeAsset},
			{Amount: "1", AssetID: &asset},
		},
	}

	mapped, err := adapter.ToKeeperTx(tx)
	require.NoError(t, err)

	data := mapped.Data.(*keeper.InvokeScriptData)
	assert.Equal(t, dApp, data.DApp)
	assert.Equal(t, tx.Call, data.Call)
	assert.Equal(t, tx.Payment, data.Payment)
}

func TestToKeeperTxInvokeScriptPaymentDefaultsToEmpty(t *testing.T) {
	tx := &signer.InvokeScriptTx{DApp: dApp}

	mapped, err := adapter.ToKeeperTx(tx)
	require.NoError(t, err)

	data := mapped.Data.(*keeper.InvokeScriptData)
	require.NotNil(t, data.Payment)
	assert.Empty(t, data.Payment)

	// the key is present as [] on the wire
	raw, err := json.Marshal(data)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"payment":[]`)
}

func TestToKeeperTxUnsupportedType(t *testing.T) {
	_, err := adapter.ToKeeperTx(nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, adapter.ErrUnsupportedType))
}
