package http

import "io"

type OnBodyCallback func(b []byte) error

// Body is the request's message body, framed by its Content-Length. It is read lazily:
// nothing is consumed from the connection until one of the methods is called.
type Body interface {
	// Retrieve returns the next piece of the body. The last piece is returned along
	// with io.EOF.
	Retrieve() ([]byte, error)
	// Bytes reads the body to the end and returns it as a whole.
	Bytes() ([]byte, error)
	// Callback calls cb for every piece of the body until it ends.
	Callback(cb OnBodyCallback) error
	// Discard reads the rest of the body, throwing it away.
	Discard() error
	// Done tells whether all the declared bytes were consumed.
	Done() bool
	// OnEnd registers an observer, called exactly once as soon as the body ends. If it
	// already has, cb is called immediately.
	OnEnd(cb func())
}

var _ Body = new(BytesBody)

// BytesBody is a Body over a slice which is already in memory.
type BytesBody struct {
	data     []byte
	consumed bool
	onEnd    []func()
}

func NewBytesBody(data []byte) *BytesBody {
	return &BytesBody{data: data}
}

func (b *BytesBody) Retrieve() ([]byte, error) {
	if b.consumed {
		return nil, io.EOF
	}

	b.consumed = true
	for _, cb := range b.onEnd {
		cb()
	}

	b.onEnd = nil

	return b.data, io.EOF
}

func (b *BytesBody) Bytes() ([]byte, error) {
	_, _ = b.Retrieve()
	return b.data, nil
}

func (b *BytesBody) Callback(cb OnBodyCallback) error {
	if b.consumed {
		return nil
	}

	data, _ := b.Retrieve()
	return cb(data)
}

func (b *BytesBody) Discard() error {
	_, _ = b.Retrieve()
	return nil
}

func (b *BytesBody) Done() bool {
	return b.consumed
}

func (b *BytesBody) OnEnd(cb func()) {
	if b.consumed {
		cb()
		return
	}

	b.onEnd = append(b.onEnd, cb)
}
