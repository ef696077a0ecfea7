package middleware

import (
	"strings"

	"github.com/indigo-web/miniexpress/http"
	"github.com/indigo-web/miniexpress/router/inbuilt"
)

const DefaultServerHeader = "miniexpress"

// ServerHeader sets the Server header of all the responses. Handlers may still override it.
func ServerHeader(customHeaders ...string) inbuilt.Middleware {
	value := strings.Join(customHeaders, " ")
	if len(value) == 0 {
		value = DefaultServerHeader
	}

	return func(_ *http.Request, response *http.Response, next inbuilt.Next) {
		response.Set("Server", value)
		next()
	}
}
