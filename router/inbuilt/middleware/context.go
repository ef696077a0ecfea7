package middleware

import (
	"context"

	"github.com/indigo-web/miniexpress/http"
	"github.com/indigo-web/miniexpress/router/inbuilt"
)

// CustomContext replaces the context of all the requests. It's the way to pass
// application-wide dependencies down to the handlers.
func CustomContext(ctx context.Context) inbuilt.Middleware {
	return func(request *http.Request, _ *http.Response, next inbuilt.Next) {
		request.Ctx = ctx
		next()
	}
}
