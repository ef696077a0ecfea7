package http1

import (
	"io"

	"github.com/indigo-web/miniexpress/http"
	"github.com/indigo-web/miniexpress/transport"
)

var _ http.Body = new(Body)

// Body reads exactly Content-Length bytes from the client. Whatever comes after them
// belongs to the next request, so it's pushed back into the client.
type Body struct {
	client       transport.Client
	bytesLeft    int
	fullBodyBuff []byte
	eof          bool
	onEnd        []func()
}

func NewBody(client transport.Client) *Body {
	return &Body{
		client: client,
	}
}

// Init prepares the body for the request. A request without Content-Length has no body,
// so it's considered complete immediately.
func (b *Body) Init(request *http.Request) {
	b.bytesLeft = request.ContentLength
	b.fullBodyBuff = b.fullBodyBuff[:0]
	b.onEnd = b.onEnd[:0]
	b.eof = b.bytesLeft == 0
}

func (b *Body) Bytes() ([]byte, error) {
	if b.eof {
		return b.fullBodyBuff, nil
	}

	if cap(b.fullBodyBuff) < b.bytesLeft {
		b.fullBodyBuff = make([]byte, 0, b.bytesLeft)
	}

	for {
		data, err := b.Retrieve()
		b.fullBodyBuff = append(b.fullBodyBuff, data...)
		switch err {
		case nil:
		case io.EOF:
			return b.fullBodyBuff, nil
		default:
			return nil, err
		}
	}
}

func (b *Body) Callback(cb http.OnBodyCallback) error {
	for {
		data, err := b.Retrieve()
		switch err {
		case nil:
		case io.EOF:
			if len(data) == 0 {
				return nil
			}

			return cb(data)
		default:
			return err
		}

		if err = cb(data); err != nil {
			return err
		}
	}
}

func (b *Body) Retrieve() (body []byte, err error) {
	if b.eof {
		return nil, io.EOF
	}

	data, err := b.client.Read()
	if err != nil {
		if err == io.EOF {
			// the connection is over, but the body isn't
			err = io.ErrUnexpectedEOF
		}

		return nil, err
	}

	if len(data) < b.bytesLeft {
		b.bytesLeft -= len(data)
		return data, nil
	}

	body, data = data[:b.bytesLeft], data[b.bytesLeft:]
	if len(data) > 0 {
		b.client.Pushback(data)
	}

	b.bytesLeft = 0
	b.finish()

	return body, io.EOF
}

func (b *Body) Discard() (err error) {
	for !b.eof {
		if _, err = b.Retrieve(); err != nil {
			break
		}
	}

	if err == io.EOF {
		err = nil
	}

	return err
}

func (b *Body) Done() bool {
	return b.eof
}

func (b *Body) OnEnd(cb func()) {
	if b.eof {
		cb()
		return
	}

	b.onEnd = append(b.onEnd, cb)
}

func (b *Body) finish() {
	b.eof = true
	for _, cb := range b.onEnd {
		cb()
	}

	b.onEnd = b.onEnd[:0]
}
