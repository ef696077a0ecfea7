package inbuilt

import (
	"github.com/indigo-web/miniexpress/http"
)

// Compose merges the middlewares into a single one, running them in the given order. Each
// of them may still short-circuit the chain by ending the response instead of calling next.
func Compose(middlewares ...Middleware) Middleware {
	return func(request *http.Request, response *http.Response, next Next) {
		var step func(i int)
		step = func(i int) {
			if i == len(middlewares) {
				next()
				return
			}

			middlewares[i](request, response, func() {
				step(i + 1)
			})
		}

		step(0)
	}
}
