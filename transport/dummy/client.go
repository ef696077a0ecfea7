package dummy

import (
	"io"
	"net"

	"github.com/indigo-web/miniexpress/transport"
)

var _ transport.Client = new(Client)

// Client returns the data it was initialised with piece by piece, returning io.EOF when
// the pieces are over, unless set to be circular. It also tracks all the written data,
// making it thereby a universal mock suitable for most of the tests.
type Client struct {
	closed   bool
	circular bool
	pointer  int
	tmp      []byte
	written  []byte
	data     [][]byte
}

func NewClient(data ...[]byte) *Client {
	return &Client{
		data: data,
	}
}

// NewStringClient is a shorthand for tests operating on strings.
func NewStringClient(data ...string) *Client {
	pieces := make([][]byte, len(data))
	for i, piece := range data {
		pieces[i] = []byte(piece)
	}

	return NewClient(pieces...)
}

func (c *Client) Read() (data []byte, err error) {
	if c.closed {
		return nil, io.EOF
	}

	if len(c.tmp) > 0 {
		data, c.tmp = c.tmp, nil

		return data, nil
	}

	if c.pointer >= len(c.data) {
		if !c.circular || len(c.data) == 0 {
			return nil, io.EOF
		}

		c.pointer = 0
	}

	piece := c.data[c.pointer]
	c.pointer++

	return piece, nil
}

func (c *Client) Pushback(takeback []byte) {
	c.tmp = takeback
}

func (c *Client) Write(p []byte) (int, error) {
	if c.closed {
		return 0, net.ErrClosed
	}

	c.written = append(c.written, p...)
	return len(p), nil
}

func (c *Client) Conn() net.Conn {
	return new(Conn).Nop()
}

func (*Client) Remote() net.Addr {
	return nil
}

func (c *Client) Close() error {
	c.closed = true
	return nil
}

// Circular makes the client to start over once the data is over.
func (c *Client) Circular() *Client {
	c.circular = true
	return c
}

// Written returns everything written into the client so far.
func (c *Client) Written() string {
	return string(c.written)
}

// Closed tells whether the client was closed.
func (c *Client) Closed() bool {
	return c.closed
}

// Pending returns data preserved via Pushback.
func (c *Client) Pending() []byte {
	return c.tmp
}

// Reset forgets everything written so far.
func (c *Client) Reset() {
	c.written = c.written[:0]
}
