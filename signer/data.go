package signer

import (
	"encoding/json"

	"github.com/pkg/errors"
)

// Data entry and invocation argument value kinds.
const (
	EntryInteger = "integer"
	EntryBoolean = "boolean"
	EntryString  = "string"
	EntryBinary  = "binary"
)

// DataEntry is a single {key, type, value} record of a data transaction.
// Integer values decode as Long so they survive past 2^53.
type DataEntry struct {
	Key   string `json:"key"`
	Type  string `json:"type"`
	Value any    `json:"value"`
}

func (e *DataEntry) UnmarshalJSON(data []byte) error {
	var raw struct {
		Key   string          `json:"key"`
		Type  string          `json:"type"`
		Value json.RawMessage `json:"value"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return errors.Wrap(err, "failed to unmarshal data entry")
	}

	value, err := decodeTypedValue(raw.Type, raw.Value)
	if err != nil {
		return errors.Wrapf(err, "data entry %q", raw.Key)
	}

	e.Key = raw.Key
	e.Type = raw.Type
	e.Value = value
	return nil
}

// CallArg is a positional argument of a dApp function invocation.
type CallArg struct {
	Type  string `json:"type"`
	Value any    `json:"value"`
}

func (a *CallArg) UnmarshalJSON(data []byte) error {
	var raw struct {
		Type  string          `json:"type"`
		Value json.RawMessage `json:"value"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return errors.Wrap(err, "failed to unmarshal call argument")
	}

	value, err := decodeTypedValue(raw.Type, raw.Value)
	if err != nil {
		return err
	}

	a.Type = raw.Type
	a.Value = value
	return nil
}

func decodeTypedValue(kind string, raw json.RawMessage) (any, error) {
	if len(raw) == 0 {
		return nil, nil
	}

	if kind == EntryInteger {
		var l Long
		if err := l.UnmarshalJSON(raw); err != nil {
			return nil, err
		}
		return l, nil
	}

	var value any
	if err := json.Unmarshal(raw, &value); err != nil {
		return nil, errors.Wrap(err, "failed to unmarshal value")
	}
	return value, nil
}
