package middleware

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/indigo-web/miniexpress/http"
	"github.com/indigo-web/miniexpress/http/method"
	"github.com/indigo-web/miniexpress/http/mime"
	"github.com/indigo-web/miniexpress/http/status"
	"github.com/indigo-web/miniexpress/router/inbuilt"
	"go.uber.org/zap"
)

// DefaultFile is served when a directory is requested.
const DefaultFile = "index.html"

// DefaultMaxFileSize limits files being served, as they are buffered entirely in order to
// know their Content-Length.
const DefaultMaxFileSize = 32 << 20

type staticOptions struct {
	defaultFile string
	maxFileSize int64
	logger      *zap.Logger
}

type StaticOption func(o *staticOptions)

// WithDefaultFile overrides the file served when a directory is requested.
func WithDefaultFile(name string) StaticOption {
	return func(o *staticOptions) {
		o.defaultFile = name
	}
}

// WithMaxFileSize overrides the maximal size of a file being served. Larger files are
// answered with 500 Internal Server Error.
func WithMaxFileSize(size int64) StaticOption {
	return func(o *staticOptions) {
		o.maxFileSize = size
	}
}

// WithStaticLogger sets the logger reporting the files being served.
func WithStaticLogger(logger *zap.Logger) StaticOption {
	return func(o *staticOptions) {
		o.logger = logger.Named("static")
	}
}

// Static serves files from the root directory. The path is resolved from the request's
// resource, so when registered via UseAt("/static", Static("./www")), the request to
// /static/css/main.css is served with ./www/css/main.css. Only GET and HEAD requests are
// served, others are passed further.
func Static(root string, options ...StaticOption) inbuilt.Middleware {
	opts := staticOptions{
		defaultFile: DefaultFile,
		maxFileSize: DefaultMaxFileSize,
		logger:      zap.NewNop(),
	}

	for _, option := range options {
		option(&opts)
	}

	return func(request *http.Request, response *http.Response, next inbuilt.Next) {
		if request.Method != method.GET && request.Method != method.HEAD {
			next()
			return
		}

		resource := request.Resource
		if len(resource) == 0 {
			resource = "/"
		}

		if !isSafe(resource) {
			_ = response.Error(status.NotFound, "file not found: "+resource)
			return
		}

		path := filepath.Join(root, filepath.FromSlash(resource))
		stat, err := os.Stat(path)
		if err == nil && stat.IsDir() {
			path = filepath.Join(path, opts.defaultFile)
			stat, err = os.Stat(path)
		}

		if err != nil || stat.IsDir() {
			opts.logger.Debug("file not found", zap.String("resource", resource), zap.Error(err))
			_ = response.Error(status.NotFound, "file not found: "+resource)
			return
		}

		if stat.Size() > opts.maxFileSize {
			opts.logger.Warn(
				"file is too large to be served",
				zap.String("file", path),
				zap.Int64("size", stat.Size()),
				zap.Int64("limit", opts.maxFileSize),
			)
			_ = response.Error(status.InternalServerError, "file is too large: "+resource)
			return
		}

		content, err := os.ReadFile(path)
		if err != nil {
			opts.logger.Debug("file not found", zap.String("resource", resource), zap.Error(err))
			_ = response.Error(status.NotFound, "file not found: "+resource)
			return
		}

		opts.logger.Debug("serving", zap.String("resource", resource), zap.String("file", path))
		response.Set("Content-Type", mime.ByFilename(path))
		_ = response.Send(content)
	}
}

// isSafe checks for path traversal, which is any of segments being a double dot
func isSafe(path string) bool {
	for _, segment := range strings.FieldsFunc(path, isSeparator) {
		if segment == ".." {
			return false
		}
	}

	return true
}

func isSeparator(c rune) bool {
	return c == '/' || c == '\\'
}
