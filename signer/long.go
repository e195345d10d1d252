package signer

import (
	"bytes"
	"encoding/json"
	"math/big"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
)

// Long is a 64-bit quantity carried as an exact decimal string. JSON input
// may encode it as a bare number (possibly beyond 2^53), a quoted decimal
// string, or the big-number object form {"bn":{"s":..,"e":..,"c":[..]}};
// all three decode without precision loss.
type Long string

// IsZero reports whether the value is absent or zero. Absent and zero fees
// mean the same thing to the wallet: estimate the fee automatically.
func (l Long) IsZero() bool {
	return l == "" || l == "0"
}

func (l Long) String() string {
	if l == "" {
		return "0"
	}
	return string(l)
}

// Int64 converts the value, failing on anything outside the int64 range.
func (l Long) Int64() (int64, error) {
	n, err := strconv.ParseInt(l.String(), 10, 64)
	if err != nil {
		return 0, errors.Wrapf(err, "long %q is not a valid int64", string(l))
	}
	return n, nil
}

func (l Long) MarshalJSON() ([]byte, error) {
	return json.Marshal(l.String())
}

func (l *Long) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return errors.New("empty long value")
	}

	switch data[0] {
	case '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return errors.Wrap(err, "failed to unmarshal long string")
		}
		if !isDecimalString(s) {
			return errors.Errorf("invalid long value %q", s)
		}
		*l = Long(s)
		return nil
	case '{':
		s, err := parseBigNumberObject(data)
		if err != nil {
			return err
		}
		*l = Long(s)
		return nil
	default:
		// A bare number token. The raw bytes are the exact decimal text, so
		// values past 2^53 survive as long as we never round-trip through a
		// float. Scientific or fractional notation goes through an exact
		// decimal conversion instead.
		token := string(data)
		if isDecimalString(token) {
			*l = Long(token)
			return nil
		}
		d, err := decimal.NewFromString(token)
		if err != nil {
			return errors.Wrapf(err, "invalid long value %q", token)
		}
		*l = Long(d.String())
		return nil
	}
}

func isDecimalString(s string) bool {
	if strings.HasPrefix(s, "-") {
		s = s[1:]
	}
	if s == "" {
		return false
	}
	for _, c := range s {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}

// bnObject mirrors the serialized internals of a JS BigNumber: sign,
// exponent and base-1e14 coefficient chunks.
type bnObject struct {
	BN struct {
		S int     `json:"s"`
		E int     `json:"e"`
		C []int64 `json:"c"`
	} `json:"bn"`
}

func parseBigNumberObject(data []byte) (string, error) {
	var obj bnObject
	if err := json.Unmarshal(data, &obj); err != nil {
		return "", errors.Wrap(err, "failed to unmarshal big-number object")
	}
	if len(obj.BN.C) == 0 {
		return "", errors.New("big-number object has no coefficient")
	}

	// The first chunk keeps its natural width, every following chunk is a
	// zero-padded group of 14 digits. The exponent counts integer digits
	// minus one.
	var digits strings.Builder
	digits.WriteString(strconv.FormatInt(obj.BN.C[0], 10))
	for _, chunk := range obj.BN.C[1:] {
		if chunk < 0 {
			return "", errors.Errorf("negative coefficient chunk %d", chunk)
		}
		digits.WriteString(padChunk(chunk))
	}

	coefficient, ok := new(big.Int).SetString(digits.String(), 10)
	if !ok {
		return "", errors.Errorf("invalid coefficient digits %q", digits.String())
	}

	exp := int32(obj.BN.E + 1 - digits.Len())
	value := decimal.NewFromBigInt(coefficient, exp)
	if obj.BN.S < 0 {
		value = value.Neg()
	}
	return value.String(), nil
}

func padChunk(chunk int64) string {
	const chunkDigits = 14
	s := strconv.FormatInt(chunk, 10)
	if len(s) >= chunkDigits {
		return s
	}
	return strings.Repeat("0", chunkDigits-len(s)) + s
}
