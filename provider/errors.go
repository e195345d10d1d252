package provider

import (
	"fmt"

	"github.com/pkg/errors"
)

// ErrorCode is a stable, machine-checkable classification of a provider
// failure. Wallet rejections are not reclassified; they surface as
// *keeper.RequestError exactly as the wallet produced them.
type ErrorCode string

const (
	// ErrCodeNotInstalled: the wallet never announced itself within the
	// retry budget. The provider instance stays degraded; every later call
	// fails with this code without re-polling.
	ErrCodeNotInstalled ErrorCode = "PROVIDER_NOT_INSTALLED"

	// ErrCodeNotConnected: a gated operation ran before Connect released
	// the gate.
	ErrCodeNotConnected ErrorCode = "PROVIDER_NOT_CONNECTED"

	// ErrCodeNetworkMismatch: the wallet's live network differs from the
	// configured ConnectOptions. Per-call; the caller may reconnect with
	// corrected options and retry.
	ErrCodeNetworkMismatch ErrorCode = "NETWORK_MISMATCH"
)

// Error is a classified provider failure.
type Error struct {
	Code    ErrorCode
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func newError(code ErrorCode, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// IsCode reports whether err carries the given provider error code.
func IsCode(err error, code ErrorCode) bool {
	var perr *Error
	return errors.As(err, &perr) && perr.Code == code
}
