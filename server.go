package miniexpress

import (
	"net"
	"sync"

	"github.com/indigo-web/miniexpress/config"
	"github.com/indigo-web/miniexpress/transport"
	"go.uber.org/zap"
)

// Server is a handle of a running listener.
type Server struct {
	transport transport.Transport
	logger    *zap.Logger
	closed    chan struct{}
	mu        sync.Mutex
	done      bool
	onClose   []func()
	err       error
}

func newServer(t transport.Transport, logger *zap.Logger) *Server {
	return &Server{
		transport: t,
		logger:    logger,
		closed:    make(chan struct{}),
	}
}

// Addr returns the address the server listens on. Useful when listening on port 0.
func (s *Server) Addr() net.Addr {
	return s.transport.Addr()
}

// Closed returns a channel, which is closed as soon as the server is shut down and all the
// connections are gone.
func (s *Server) Closed() <-chan struct{} {
	return s.closed
}

// OnClose registers a callback called once the server is shut down. If it already is, the
// callback is called immediately.
func (s *Server) OnClose(cb func()) *Server {
	s.mu.Lock()
	if s.done {
		s.mu.Unlock()
		cb()
		return s
	}

	s.onClose = append(s.onClose, cb)
	s.mu.Unlock()

	return s
}

// Close stops accepting new connections, drops the existing ones and waits until the server
// is shut down. The error the accept loop failed with, if any, is returned.
func (s *Server) Close() error {
	if err := s.transport.Close(); err != nil {
		s.logger.Debug("closing the listener", zap.Error(err))
	}

	return s.Wait()
}

// Wait blocks until the server is shut down.
func (s *Server) Wait() error {
	<-s.closed
	return s.err
}

func (s *Server) run(cfg config.NET, cb func(conn net.Conn)) {
	err := s.transport.Listen(cfg, cb)
	if err != nil {
		s.logger.Error("accept loop failed", zap.Error(err))
		_ = s.transport.Close()
	}

	s.transport.Wait()
	s.logger.Info("closed", zap.Stringer("addr", s.Addr()))

	s.mu.Lock()
	s.err = err
	s.done = true
	callbacks := s.onClose
	s.onClose = nil
	s.mu.Unlock()

	close(s.closed)

	for _, callback := range callbacks {
		callback()
	}
}
