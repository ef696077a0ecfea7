package middleware

import (
	"github.com/indigo-web/miniexpress/http"
	"github.com/indigo-web/miniexpress/http/cookie"
	"github.com/indigo-web/miniexpress/router/inbuilt"
)

// CookieParser fills request.Cookies from the Cookie headers. Requests whose cookies are
// already populated are left untouched. Malformed pairs are skipped, the well-formed ones
// preceding them are kept.
func CookieParser() inbuilt.Middleware {
	return func(request *http.Request, _ *http.Response, next inbuilt.Next) {
		if request.Cookies.Empty() {
			for _, value := range request.Headers.Values("Cookie") {
				_ = cookie.Parse(request.Cookies, value)
			}
		}

		next()
	}
}
