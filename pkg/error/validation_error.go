package error

import "net/http"

// ValidationError means the request carried malformed or missing input.
// The message names the offending field so callers can point at it.
type ValidationError string

func (err ValidationError) Error() string {
	return string(err)
}

func (err ValidationError) ErrCode() string {
	return "VALIDATION_ERROR"
}

func (err ValidationError) StatusCode() int {
	return http.StatusBadRequest
}
