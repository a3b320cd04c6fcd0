package provider

import (
	"errors"
	"fmt"
)

// ErrorKind distinguishes provider failure modes. All of them are
// recoverable by falling back to the next provider; rate limits
// additionally tell the chain to skip remaining retries for the
// offending provider.
type ErrorKind int

const (
	KindNetwork ErrorKind = iota
	KindParse
	KindRateLimit
	KindNoData
)

func (k ErrorKind) String() string {
	switch k {
	case KindNetwork:
		return "network"
	case KindParse:
		return "parse"
	case KindRateLimit:
		return "rate-limit"
	case KindNoData:
		return "no-data"
	default:
		return "unknown"
	}
}

// Error is the failure type returned by provider clients.
type Error struct {
	Provider string
	Kind     ErrorKind
	Err      error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Provider, e.Kind, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Provider, e.Kind)
}

func (e *Error) Unwrap() error { return e.Err }

// IsRateLimit reports whether err carries a rate-limit condition.
func IsRateLimit(err error) bool {
	var pe *Error
	return errors.As(err, &pe) && pe.Kind == KindRateLimit
}
