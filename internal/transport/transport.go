package transport

type Parser interface {
	Parse(b []byte) (state RequestState, extra []byte, err error)
}

// RequestState represents the state of the request's parsing
type RequestState uint8

const (
	Pending RequestState = iota + 1
	HeadersCompleted
	Error
)
