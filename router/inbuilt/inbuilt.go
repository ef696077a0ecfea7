package inbuilt

import (
	"fmt"

	"github.com/indigo-web/miniexpress/http"
	"github.com/indigo-web/miniexpress/http/method"
	"github.com/indigo-web/miniexpress/http/status"
	"github.com/indigo-web/miniexpress/router"
	"github.com/indigo-web/miniexpress/router/inbuilt/pattern"
	"go.uber.org/zap"
)

var _ router.Router = new(Router)

type (
	// Next continues the chain with the next matching entry. If no entries are left and
	// the response isn't ended yet, 404 Not Found is sent.
	Next func()
	// Middleware is applied to all the requests whose path starts with the prefix it was
	// registered at, regardless of the method. It must either end the response or call next.
	Middleware func(request *http.Request, response *http.Response, next Next)
	// Handler is a terminal chain entry. It's expected to end the response.
	Handler func(request *http.Request, response *http.Response)
)

type entry struct {
	pattern    pattern.Pattern
	method     method.Method
	middleware Middleware
	handler    Handler
}

// Router is a built-in implementation of router.Router interface. Every request is passed
// through the chain consisting of all the matching middlewares followed by all the matching
// handlers of the request method, each group in the registration order. HEAD requests fall
// back to GET handlers.
//
// All the entries must be registered before the server starts. After that, the router is
// frozen and read-only, so it's safe to be used by many connections simultaneously.
type Router struct {
	middlewares []entry
	routes      [method.Count + 1][]entry
	frozen      bool
	logger      *zap.Logger
}

// New constructs a new instance of inbuilt router
func New() *Router {
	return &Router{
		logger: zap.NewNop(),
	}
}

// Logger sets the logger used by the router.
func (r *Router) Logger(logger *zap.Logger) *Router {
	r.logger = logger.Named("router")
	return r
}

// Use registers the middleware for all the requests.
func (r *Router) Use(middlewares ...Middleware) *Router {
	return r.UseAt("/", middlewares...)
}

// UseAt registers the middleware for requests whose path starts with the prefix. The
// prefix may contain captures, just like routes do.
func (r *Router) UseAt(prefix string, middlewares ...Middleware) *Router {
	r.mustNotBeFrozen()
	p := pattern.MustPrefix(prefix)

	for _, mw := range middlewares {
		r.middlewares = append(r.middlewares, entry{
			pattern:    p,
			middleware: mw,
		})
	}

	return r
}

// Route registers the handler for requests of the method whose path matches the template
// entirely. Path templates may contain captures, e.g. /items/:itemId, available via
// request.Params.
func (r *Router) Route(m method.Method, template string, handler Handler) *Router {
	r.mustNotBeFrozen()
	if m == method.Unknown || int(m) >= len(r.routes) {
		panic(fmt.Sprintf("cannot register a route for unknown method: %d", m))
	}

	r.routes[m] = append(r.routes[m], entry{
		pattern: pattern.MustCompile(template),
		method:  m,
		handler: handler,
	})

	return r
}

// OnStart freezes the router. Registering anything afterward results in panic.
func (r *Router) OnStart() error {
	r.frozen = true

	for _, route := range r.Routes() {
		r.logger.Debug(
			"registered",
			zap.String("method", route.Method),
			zap.String("path", route.Path),
			zap.Bool("prefix", route.Prefix),
			zap.Strings("params", route.Params),
		)
	}

	return nil
}

// OnRequest runs the chain for the request.
func (r *Router) OnRequest(request *http.Request, response *http.Response) {
	c := chain{
		router:   r,
		request:  request,
		response: response,
		handlers: r.routes[request.Method],
	}

	if request.Method == method.HEAD {
		c.fallback = r.routes[method.GET]
	}

	c.Next()
}

// OnError answers the malformed request with the status code the error carries.
func (r *Router) OnError(_ *http.Request, response *http.Response, err error) {
	_ = response.Error(status.CodeOf(err), err.Error())
}

func (r *Router) mustNotBeFrozen() {
	if r.frozen {
		panic("router is frozen: entries must be registered before the server starts")
	}
}
