// Package miniexpress is a minimal HTTP/1.x server built directly on top of TCP sockets,
// paired with an Express-like router:
//
//	app := miniexpress.New()
//	app.Use(middleware.BodyParser())
//	app.Get("/", func(request *http.Request, response *http.Response) {
//		_ = response.Send("Welcome to MiniExpress.")
//	})
//
//	srv, err := app.Listen(3005)
//	if err != nil {
//		...
//	}
//
//	<-srv.Closed()
package miniexpress

import (
	"net"
	"strconv"

	"github.com/indigo-web/miniexpress/config"
	"github.com/indigo-web/miniexpress/internal/server"
	"github.com/indigo-web/miniexpress/router/inbuilt"
	"github.com/indigo-web/miniexpress/transport"
	"go.uber.org/zap"
)

// App is an application: the router holding all the middlewares and handlers, and the
// settings the servers are started with. Each App owns its registry, so independent apps
// never affect each other.
type App struct {
	*inbuilt.Router
	cfg    *config.Config
	logger *zap.Logger
}

// New returns a new App instance with the default config and no logging.
func New() *App {
	return &App{
		Router: inbuilt.New(),
		cfg:    config.Default(),
		logger: zap.NewNop(),
	}
}

// Tune replaces the default config.
func (a *App) Tune(cfg *config.Config) *App {
	a.cfg = cfg
	return a
}

// Logger sets the logger of the app and all its components.
func (a *App) Logger(logger *zap.Logger) *App {
	a.logger = logger
	a.Router.Logger(logger)
	return a
}

// Listen starts serving on the port of all the interfaces. See ListenAddr.
func (a *App) Listen(port uint16) (*Server, error) {
	return a.ListenAddr(net.JoinHostPort("", strconv.Itoa(int(port))))
}

// ListenAddr binds the address and starts serving in the background. The router is frozen
// at this point, so no more entries can be registered.
func (a *App) ListenAddr(addr string) (*Server, error) {
	if err := a.Router.OnStart(); err != nil {
		return nil, err
	}

	tcp := transport.NewTCP(a.logger.Named("transport"))
	if err := tcp.Bind(addr); err != nil {
		return nil, err
	}

	srv := newServer(tcp, a.logger)
	a.logger.Info("listening", zap.Stringer("addr", srv.Addr()))
	go srv.run(a.cfg.NET, server.New(a.cfg, a.Router, a.logger.Named("server")).Serve)

	return srv, nil
}
