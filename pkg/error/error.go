package error

// GenericError is implemented by every typed error in this package so the
// REST recovery middleware can translate a recovered panic into the right
// HTTP status and error code.
type GenericError interface {
	Error() string
	ErrCode() string
	StatusCode() int
}
