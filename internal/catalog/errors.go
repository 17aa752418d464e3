package catalog

import (
	"errors"
	"fmt"
)

// Error taxonomy. Every failure returned by Service matches exactly one of these.
var (
	ErrBadRequest       = errors.New("bad request")
	ErrNotFound         = errors.New("not found")
	ErrUnprocessable    = errors.New("unprocessable")
	ErrStoreUnavailable = errors.New("store unavailable")
)

// Kind names a taxonomy member for the boundary layer.
type Kind string

const (
	KindNone             Kind = ""
	KindBadRequest       Kind = "bad_request"
	KindNotFound         Kind = "not_found"
	KindUnprocessable    Kind = "unprocessable"
	KindStoreUnavailable Kind = "store_unavailable"
)

// KindOf classifies err. Unknown errors are reported as store faults.
func KindOf(err error) Kind {
	switch {
	case err == nil:
		return KindNone
	case errors.Is(err, ErrBadRequest):
		return KindBadRequest
	case errors.Is(err, ErrNotFound):
		return KindNotFound
	case errors.Is(err, ErrUnprocessable):
		return KindUnprocessable
	default:
		return KindStoreUnavailable
	}
}

// ValidationError reports a missing or malformed question field.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// Unwrap lets errors.Is(err, ErrBadRequest) match validation failures.
func (e *ValidationError) Unwrap() error {
	return ErrBadRequest
}

// storeFault turns a store error into a facade error: unavailability passes
// through, anything else becomes ErrUnprocessable. The cause is flattened so
// the result carries a single taxonomy member.
func storeFault(op string, err error) error {
	if errors.Is(err, ErrStoreUnavailable) {
		return fmt.Errorf("%s: %w", op, err)
	}
	return fmt.Errorf("%s: %w: %v", op, ErrUnprocessable, err)
}
