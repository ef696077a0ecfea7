package middleware

import (
	"github.com/indigo-web/miniexpress/http"
	"github.com/indigo-web/miniexpress/http/method"
	"github.com/indigo-web/miniexpress/http/status"
	"github.com/indigo-web/miniexpress/router/inbuilt"
)

// Redirect answers GET and HEAD requests to the path with 301 Moved Permanently, pointing
// to the new location.
func Redirect(from, to string) inbuilt.Middleware {
	return func(request *http.Request, response *http.Response, next inbuilt.Next) {
		if request.Path != from || (request.Method != method.GET && request.Method != method.HEAD) {
			next()
			return
		}

		_ = response.
			Status(status.MovedPermanently).
			Set("Location", to).
			Send(nil)
	}
}
