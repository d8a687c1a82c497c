package error

import "net/http"

// InvalidStateError means an operation was invoked while the draft is in a
// state that does not permit it, e.g. submitting an empty draft.
type InvalidStateError string

func (err InvalidStateError) Error() string {
	return string(err)
}

func (err InvalidStateError) ErrCode() string {
	return "INVALID_STATE_ERROR"
}

func (err InvalidStateError) StatusCode() int {
	return http.StatusConflict
}

// ConcurrentOperationError means an operation was requested while another
// one is still in flight. Recoverable by waiting or resetting the draft.
type ConcurrentOperationError string

func (err ConcurrentOperationError) Error() string {
	return string(err)
}

func (err ConcurrentOperationError) ErrCode() string {
	return "CONCURRENT_OPERATION_ERROR"
}

func (err ConcurrentOperationError) StatusCode() int {
	return http.StatusConflict
}
