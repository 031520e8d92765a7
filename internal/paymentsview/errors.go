package paymentsview

import (
	"errors"
	"fmt"
)

var (
	// ErrLoadInProgress is returned when Load is called while a fetch is still running.
	ErrLoadInProgress = errors.New("payments are already loading")
	// ErrClosed is returned by Load after Close.
	ErrClosed = errors.New("payments view closed")
	// ErrUnknownSortField is returned by ToggleSort for columns that are not sortable.
	ErrUnknownSortField = errors.New("unknown sort field")
)

// NetworkError reports a failed request to the admin endpoint: transport failure or non-2xx status.
type NetworkError struct {
	URL        string
	StatusCode int
	Err        error
}

func (e *NetworkError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("fetch payments from %s: unexpected status %d", e.URL, e.StatusCode)
	}
	return fmt.Sprintf("fetch payments from %s: %v", e.URL, e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }

// MalformedResponseError reports a payload that does not match the payment record schema.
// Index is the offending record position, or -1 when the document itself is malformed.
type MalformedResponseError struct {
	Index int
	Field string
	Err   error
}

func (e *MalformedResponseError) Error() string {
	switch {
	case e.Index < 0:
		return fmt.Sprintf("malformed payments response: %v", e.Err)
	case e.Field != "":
		return fmt.Sprintf("malformed payment record %d: field %s: %v", e.Index, e.Field, e.Err)
	default:
		return fmt.Sprintf("malformed payment record %d: %v", e.Index, e.Err)
	}
}

func (e *MalformedResponseError) Unwrap() error { return e.Err }
