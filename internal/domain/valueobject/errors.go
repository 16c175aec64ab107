package valueobject

import (
	"errors"
	"fmt"
)

// Failure kinds reported by the engine. All of them are recoverable at the
// caller boundary; only ErrConcurrentModification asks the caller to retry.
var (
	ErrValidation             = errors.New("validation error")
	ErrUnknownModel           = errors.New("unknown risk model")
	ErrUnauthorized           = errors.New("unauthorized")
	ErrInvalidTransition      = errors.New("invalid status transition")
	ErrTerminalState          = fmt.Errorf("%w: submission is in a terminal state", ErrInvalidTransition)
	ErrAttemptsExhausted      = errors.New("submission attempts exhausted")
	ErrConcurrentModification = errors.New("concurrent modification")
	ErrSourceUnavailable      = errors.New("score factor source unavailable")
	ErrNotFound               = errors.New("not found")
)

// Stable identifiers for each failure kind, used in structured error results.
const (
	KindValidation             = "VALIDATION_ERROR"
	KindUnknownModel           = "UNKNOWN_MODEL"
	KindUnauthorized           = "UNAUTHORIZED"
	KindTerminalState          = "TERMINAL_STATE"
	KindInvalidTransition      = "INVALID_TRANSITION"
	KindAttemptsExhausted      = "ATTEMPTS_EXHAUSTED"
	KindConcurrentModification = "CONCURRENT_MODIFICATION"
	KindSourceUnavailable      = "SOURCE_UNAVAILABLE"
	KindNotFound               = "NOT_FOUND"
	KindInternal               = "INTERNAL"
)

var kindOrder = []struct {
	target error
	kind   string
}{
	// ErrTerminalState wraps ErrInvalidTransition and must be matched first.
	{ErrTerminalState, KindTerminalState},
	{ErrInvalidTransition, KindInvalidTransition},
	{ErrAttemptsExhausted, KindAttemptsExhausted},
	{ErrConcurrentModification, KindConcurrentModification},
	{ErrUnauthorized, KindUnauthorized},
	{ErrUnknownModel, KindUnknownModel},
	{ErrValidation, KindValidation},
	{ErrSourceUnavailable, KindSourceUnavailable},
	{ErrNotFound, KindNotFound},
}

// ErrorKind classifies err into one of the Kind* identifiers.
func ErrorKind(err error) string {
	for _, k := range kindOrder {
		if errors.Is(err, k.target) {
			return k.kind
		}
	}
	return KindInternal
}

// Validationf builds an ErrValidation carrying a formatted message.
func Validationf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}
