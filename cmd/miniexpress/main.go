package main

import (
	"context"

	"github.com/cockroachdb/errors"
	"github.com/indigo-web/miniexpress"
	"github.com/indigo-web/miniexpress/config"
	"github.com/indigo-web/miniexpress/http"
	"github.com/indigo-web/miniexpress/router/inbuilt/middleware"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func main() {
	fx.New(
		fx.NopLogger,
		fx.Provide(config.FromEnv, NewLogger, NewApp),
		fx.Invoke(Serve),
	).Run()
}

// NewLogger builds the production logger with the level taken from the environment.
func NewLogger(env config.Environment) (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(env.LogLevel)
	if err != nil {
		return nil, errors.Wrapf(err, "bad log level %q", env.LogLevel)
	}

	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(level)
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	return cfg.Build()
}

// NewApp registers the demo routes.
func NewApp(cfg *config.Config, env config.Environment, logger *zap.Logger) *miniexpress.App {
	app := miniexpress.New().Tune(cfg).Logger(logger)

	app.Use(
		middleware.Recover(logger),
		middleware.LogRequests(logger.Named("access")),
		middleware.ServerHeader(),
		middleware.CookieParser(),
		middleware.BodyParser(),
		middleware.Redirect("/post-sent", "/static/post.html"),
	)
	app.UseAt("/static", middleware.Static(
		env.StaticDir,
		middleware.WithDefaultFile(cfg.Static.DefaultFile),
		middleware.WithMaxFileSize(cfg.Static.MaxFileSize),
		middleware.WithStaticLogger(logger),
	))

	app.Get("/", func(_ *http.Request, response *http.Response) {
		_ = response.Send("Welcome to MiniExpress.")
	})
	app.Post("/post-sent", func(request *http.Request, response *http.Response) {
		_ = response.Send("Hello " + request.Param("first") + " " + request.Param("last"))
	})

	return app
}

// Serve binds the app to the lifecycle: it starts listening on start and shuts the
// listener down on stop. A listener dying on its own shuts the whole application down.
func Serve(lc fx.Lifecycle, sd fx.Shutdowner, app *miniexpress.App, env config.Environment, logger *zap.Logger) {
	var srv *miniexpress.Server

	lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			for _, route := range app.Routes() {
				logger.Info("route", zap.Stringer("entry", route))
			}

			var err error
			if srv, err = app.Listen(env.Port); err != nil {
				return errors.Wrap(err, "failed to listen")
			}

			go func() {
				if err := srv.Wait(); err != nil {
					logger.Error("listener died", zap.Error(err))
					_ = sd.Shutdown(fx.ExitCode(1))
				}
			}()

			return nil
		},
		OnStop: func(context.Context) error {
			return srv.Close()
		},
	})
}
