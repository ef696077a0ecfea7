package router

import (
	"github.com/indigo-web/miniexpress/http"
)

// Router processes the requests parsed by the server.
type Router interface {
	// OnStart is called once before the server starts accepting connections. Routers are
	// expected to stay read-only after this point, as they are used by many connections
	// simultaneously.
	OnStart() error
	// OnRequest must answer the request by ending the response. A request whose response
	// hasn't been ended after OnRequest returns is considered abandoned.
	OnRequest(request *http.Request, response *http.Response)
	// OnError answers a request which failed to be parsed. The connection is closed
	// afterward anyway.
	OnError(request *http.Request, response *http.Response, err error)
}
