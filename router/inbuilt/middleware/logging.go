package middleware

import (
	"time"

	"github.com/indigo-web/miniexpress/http"
	"github.com/indigo-web/miniexpress/router/inbuilt"
	"go.uber.org/zap"
)

// LogRequests writes an access log entry after the rest of the chain is done.
func LogRequests(logger *zap.Logger) inbuilt.Middleware {
	return func(request *http.Request, response *http.Response, next inbuilt.Next) {
		start := time.Now()
		next()

		fields := []zap.Field{
			zap.Stringer("method", request.Method),
			zap.String("path", request.Path),
			zap.Uint16("code", uint16(response.Code())),
			zap.Int("size", len(response.Body())),
			zap.Duration("took", time.Since(start)),
		}

		if remote := request.Remote; remote != nil {
			fields = append(fields, zap.Stringer("remote", remote))
		}

		if !response.Ended() {
			logger.Warn("request left unanswered", fields...)
			return
		}

		logger.Info("request", fields...)
	}
}
