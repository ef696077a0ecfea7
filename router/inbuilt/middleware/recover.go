package middleware

import (
	"github.com/indigo-web/miniexpress/http"
	"github.com/indigo-web/miniexpress/http/status"
	"github.com/indigo-web/miniexpress/router/inbuilt"
	"go.uber.org/zap"
)

// Recover catches panics of the rest of the chain and answers with 500 Internal Server Error
// instead, unless the response was already sent. Headers set before the panic are discarded,
// avoiding half-cooked response being sent. Unlike the server's own safety net, the
// connection stays open.
func Recover(logger *zap.Logger) inbuilt.Middleware {
	return func(request *http.Request, response *http.Response, next inbuilt.Next) {
		defer func() {
			if v := recover(); v != nil {
				logger.Error(
					"recovered from panic",
					zap.Any("panic", v),
					zap.String("path", request.Path),
					zap.Stack("stack"),
				)

				if !response.HeadWritten() {
					response.Headers().Clear()
					_ = response.Error(status.InternalServerError, "")
				}
			}
		}()

		next()
	}
}
