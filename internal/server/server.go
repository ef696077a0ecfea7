package server

import (
	"fmt"
	"net"

	"github.com/indigo-web/miniexpress/config"
	"github.com/indigo-web/miniexpress/http"
	"github.com/indigo-web/miniexpress/http/status"
	"github.com/indigo-web/miniexpress/internal/transport"
	"github.com/indigo-web/miniexpress/internal/transport/http1"
	"github.com/indigo-web/miniexpress/router"
	clienttransport "github.com/indigo-web/miniexpress/transport"
	"go.uber.org/zap"
)

// Server runs the request-response loop of a single connection at a time. It holds no
// per-connection state, so a single instance serves all the connections simultaneously.
type Server struct {
	cfg    *config.Config
	router router.Router
	logger *zap.Logger
}

func New(cfg *config.Config, r router.Router, logger *zap.Logger) *Server {
	return &Server{
		cfg:    cfg,
		router: r,
		logger: logger,
	}
}

// Serve is the connection callback of the transport.
func (s *Server) Serve(conn net.Conn) {
	s.Run(clienttransport.NewClient(
		conn, s.cfg.NET.ReadTimeout, make([]byte, s.cfg.NET.ReadBufferSize),
	))
}

// Run serves requests from the client until the connection must be closed. The request,
// response and the protocol machinery are allocated once per connection and reused.
func (s *Server) Run(client clienttransport.Client) {
	serializer := http1.NewSerializer(
		client, make([]byte, 0, s.cfg.NET.WriteBufferSize), s.cfg.Headers.Default,
	)
	request := http.NewRequest(s.cfg, http.NewResponse(serializer), client.Remote())
	body := http1.NewBody(client)
	request.Body = body
	parser := http1.NewParser(request, s.cfg)

	for s.HandleRequest(client, request, parser, body) {
	}

	_ = client.Close()
}

// HandleRequest reads from the client once and feeds the data into the parser. It returns
// false as soon as the connection must be closed.
func (s *Server) HandleRequest(
	client clienttransport.Client, request *http.Request, parser transport.Parser, body *http1.Body,
) bool {
	data, err := client.Read()
	if err != nil {
		// either an idle timeout or the peer is gone. Partial request, if any, is dropped
		// without invoking the router
		s.logger.Debug("connection read failed", zap.Stringer("remote", remote{client}), zap.Error(err))
		return false
	}

	state, extra, err := parser.Parse(data)
	switch state {
	case transport.Pending:
	case transport.HeadersCompleted:
		// bytes after the headers are either the body or the next request. Both are
		// left untouched until the current response is ended
		client.Pushback(extra)
		body.Init(request)

		if !s.dispatch(request) {
			return false
		}

		if err = body.Discard(); err != nil {
			return false
		}

		keepAlive := http1.KeepAlive(request)
		request.Reset()

		return keepAlive
	case transport.Error:
		s.logger.Debug(
			"malformed request",
			zap.Stringer("remote", remote{client}),
			zap.Error(err),
			zap.Uint16("code", uint16(status.CodeOf(err))),
		)
		request.Connection = "close"
		s.router.OnError(request, request.Response(), err)
		return false
	default:
		panic(fmt.Sprintf("BUG: got unexpected parser state: %d", state))
	}

	return true
}

// dispatch passes the request to the router. Panics are recovered here, so a single failing
// handler can't take the whole listener down. Returns false if the connection must be closed.
func (s *Server) dispatch(request *http.Request) (ok bool) {
	response := request.Response()

	defer func() {
		if v := recover(); v != nil {
			s.logger.Error(
				"recovered from panic while handling request",
				zap.Any("panic", v),
				zap.Stringer("method", request.Method),
				zap.String("path", request.Path),
				zap.Stack("stack"),
			)

			if !response.HeadWritten() {
				request.Connection = "close"
				_ = response.Error(status.InternalServerError, "")
			}

			ok = false
		}
	}()

	s.router.OnRequest(request, response)

	if !response.Ended() {
		s.logger.Warn(
			"request abandoned: the chain returned without ending the response, closing connection",
			zap.Stringer("method", request.Method),
			zap.String("path", request.Path),
		)

		return false
	}

	if err := response.Err(); err != nil {
		s.logger.Debug("failed to write the response", zap.Error(err))
		return false
	}

	return true
}

// remote lazily renders the remote address, as it's nil for some clients.
type remote struct {
	client clienttransport.Client
}

func (r remote) String() string {
	if addr := r.client.Remote(); addr != nil {
		return addr.String()
	}

	return "<unknown>"
}
