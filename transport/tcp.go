package transport

import (
	"net"
	"os"
	"sync"
	"sync/atomic"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/indigo-web/miniexpress/config"
	"github.com/indigo-web/miniexpress/internal/timer"
	"go.uber.org/zap"
)

var _ Transport = new(TCP)

type listener interface {
	net.Listener
	SetDeadline(t time.Time) error
}

// TCP accepts connections and serves each of them in a separate goroutine. Connections
// being served are tracked, so Close is able to drop them immediately.
type TCP struct {
	l      listener
	wg     *sync.WaitGroup
	stop   *atomic.Bool
	mu     sync.Mutex
	conns  map[net.Conn]struct{}
	logger *zap.Logger
}

func NewTCP(logger *zap.Logger) *TCP {
	return &TCP{
		wg:     new(sync.WaitGroup),
		stop:   new(atomic.Bool),
		conns:  make(map[net.Conn]struct{}),
		logger: logger,
	}
}

func (t *TCP) Bind(addr string) error {
	tcpaddr, err := net.ResolveTCPAddr("tcp", addr)
	if err != nil {
		return errors.Wrapf(err, "resolve %s", addr)
	}

	l, err := net.ListenTCP("tcp", tcpaddr)
	if err != nil {
		return errors.Wrapf(err, "listen %s", addr)
	}

	t.l = l
	return nil
}

// Addr returns the address the transport is bound to.
func (t *TCP) Addr() net.Addr {
	return t.l.Addr()
}

// Listen runs the accept loop until the transport is stopped. The loop is interrupted every
// AcceptLoopInterruptPeriod in order to check whether it's time to stop.
func (t *TCP) Listen(cfg config.NET, cb func(conn net.Conn)) error {
	for !t.stop.Load() {
		err := t.l.SetDeadline(timer.Now().Add(cfg.AcceptLoopInterruptPeriod))
		if err != nil {
			if t.stop.Load() {
				return nil
			}

			return errors.Wrap(err, "set accept deadline")
		}

		conn, err := t.l.Accept()
		if err != nil {
			switch {
			case errors.Is(err, os.ErrDeadlineExceeded):
				continue
			case t.stop.Load():
				return nil
			}

			return errors.Wrap(err, "accept")
		}

		t.logger.Debug("accepted connection", zap.Stringer("remote", conn.RemoteAddr()))
		t.track(conn)
		t.wg.Add(1)

		go func(conn net.Conn) {
			defer t.wg.Done()
			cb(conn)
			_ = conn.Close()
			t.untrack(conn)
			t.logger.Debug("closed connection", zap.Stringer("remote", conn.RemoteAddr()))
		}(conn)
	}

	return nil
}

// Stop makes the accept loop exit, letting the connections being served to finish.
func (t *TCP) Stop() {
	t.stop.Store(true)
}

// Close stops accepting new connections and closes all the connections being served.
func (t *TCP) Close() error {
	t.Stop()
	err := t.l.Close()

	t.mu.Lock()
	for conn := range t.conns {
		_ = conn.Close()
	}
	t.mu.Unlock()

	return err
}

// Wait blocks until all the connections are done.
func (t *TCP) Wait() {
	t.wg.Wait()
}

func (t *TCP) track(conn net.Conn) {
	t.mu.Lock()
	t.conns[conn] = struct{}{}
	t.mu.Unlock()
}

func (t *TCP) untrack(conn net.Conn) {
	t.mu.Lock()
	delete(t.conns, conn)
	t.mu.Unlock()
}
