package adapter

import (
	"encoding/json"

	"github.com/pkg/errors"

	"github.com/Keeper-Wallet/provider-keeper/signer"
)

// ParseSignedTx maps a wallet signing result back onto the signer
// convention. The wallet serializes 64-bit quantities either as plain JSON
// numbers (possibly past 2^53) or as a big-number object; signer.Long
// decodes both from the raw tokens, so no value is ever rounded through a
// float on the way in.
func ParseSignedTx(signed string) (*signer.SignedTx, error) {
	var tx signer.SignedTx
	if err := json.Unmarshal([]byte(signed), &tx); err != nil {
		return nil, errors.Wrap(err, "failed to parse signed transaction")
	}
	if tx.Type == 0 {
		return nil, errors.New("signed transaction has no type")
	}
	return &tx, nil
}
