package status

import "github.com/cockroachdb/errors"

// HTTPError is an error carrying the status code it must be answered with.
type HTTPError struct {
	Message string
	Code    Code
}

func NewError(code Code, message string) error {
	return HTTPError{
		Code:    code,
		Message: message,
	}
}

func (h HTTPError) Error() string {
	return h.Message
}

// CodeOf returns the code of the HTTPError if err is or wraps one, and InternalServerError
// otherwise.
func CodeOf(err error) Code {
	var httpErr HTTPError
	if errors.As(err, &httpErr) {
		return httpErr.Code
	}

	return InternalServerError
}

var (
	ErrBadRequestLine       = NewError(BadRequest, "malformed request line")
	ErrBadHeader            = NewError(BadRequest, "malformed header line")
	ErrTooLongRequestLine   = NewError(BadRequest, "request line is too long")
	ErrHeaderFieldsTooLarge = NewError(BadRequest, "too large header line")
	ErrTooManyHeaders       = NewError(BadRequest, "too many headers")
	ErrBadContentLength     = NewError(BadRequest, "malformed Content-Length value")
	ErrUnsupportedProtocol  = NewError(BadRequest, "unsupported protocol")
	ErrBodyTooLarge         = NewError(BadRequest, "request body is too large")
	ErrMethodNotImplemented = NewError(UnsupportedMethod, "request method is not supported")
)
