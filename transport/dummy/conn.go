package dummy

import (
	"io"
	"net"
	"time"
)

// Conn is a net.Conn which keeps everything written into it. Reads return Incoming at
// once, paired with ReadErr, and io.EOF afterward.
type Conn struct {
	Data     []byte
	Incoming []byte
	ReadErr  error
	Closed   bool
	nop      bool
}

func (c *Conn) Read(b []byte) (n int, err error) {
	if len(c.Incoming) == 0 {
		return 0, io.EOF
	}

	n = copy(b, c.Incoming)
	c.Incoming = c.Incoming[n:]
	if len(c.Incoming) == 0 {
		err = c.ReadErr
	}

	return n, err
}

func (c *Conn) Write(b []byte) (n int, err error) {
	if !c.nop {
		c.Data = append(c.Data, b...)
	}

	return len(b), nil
}

func (c *Conn) Close() error {
	c.Closed = true
	return nil
}

func (c *Conn) LocalAddr() net.Addr {
	return nil
}

func (c *Conn) RemoteAddr() net.Addr {
	return nil
}

func (c *Conn) SetDeadline(time.Time) error {
	return nil
}

func (c *Conn) SetReadDeadline(time.Time) error {
	return nil
}

func (c *Conn) SetWriteDeadline(time.Time) error {
	return nil
}

func (c *Conn) Nop() *Conn {
	c.nop = true
	return c
}
