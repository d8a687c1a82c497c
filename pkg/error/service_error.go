package error

import "net/http"

// ServiceError wraps a failure from an external collaborator (non-2xx
// response, malformed JSON or an explicit success:false payload). It
// carries the backend's message when one was provided.
type ServiceError string

func (err ServiceError) Error() string {
	return string(err)
}

func (err ServiceError) ErrCode() string {
	return "SERVICE_ERROR"
}

func (err ServiceError) StatusCode() int {
	return http.StatusBadGateway
}
