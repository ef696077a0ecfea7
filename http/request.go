package http

import (
	"context"
	"fmt"
	"net"
	"strings"

	"github.com/indigo-web/miniexpress/config"
	"github.com/indigo-web/miniexpress/http/cookie"
	"github.com/indigo-web/miniexpress/http/method"
	"github.com/indigo-web/miniexpress/http/proto"
	"github.com/indigo-web/miniexpress/internal/strutil"
	"github.com/indigo-web/miniexpress/kv"
	"github.com/indigo-web/utils/strcomp"
	"github.com/tidwall/gjson"
)

var zeroContext = context.Background()

type (
	Headers = *kv.Storage
	Params  = *kv.Storage
)

// Request represents HTTP request
type Request struct {
	// Method is an enum representing the request method.
	Method method.Method
	// Target is the request target exactly as it was received.
	Target string
	// Path is the target without the query. It is never empty.
	Path string
	// Query holds query parameters. They are NOT percent-decoded. The last occurrence of a
	// key wins.
	Query Params
	// Proto is the protocol version used for the request.
	Proto proto.Proto
	// Headers holds header pairs, lookup is case-insensitive.
	Headers Headers
	commonHeaders
	// Cookies is populated by the cookie parser middleware.
	Cookies Params
	// Params are named captures of the currently executed chain entry.
	Params Params
	// Resource is the part of the path, which wasn't matched by the currently executed
	// chain entry. For example, the resource of /static/css/main.css served by middleware
	// registered at /static is /css/main.css
	Resource string
	// Body is a dedicated entity providing access to the message body.
	Body Body
	// RawBody is the whole message body. It is populated only after the body is buffered,
	// e.g. by ReadBody or the body parsing middlewares.
	RawBody []byte
	// Form holds x-www-form-urlencoded body pairs, populated by the body parser.
	Form Params
	// JSON holds the decoded JSON body, populated by the body parser.
	JSON any
	// Remote holds the remote address.
	Remote net.Addr
	// Ctx is user-managed context which lives as long as the request does.
	Ctx      context.Context
	bodyRead bool
	response *Response
}

type commonHeaders struct {
	// ContentLength obtains the value from Content-Length header. It holds the value of 0
	// if isn't presented.
	ContentLength int
	// ContentType obtains Content-Type header value
	ContentType string
	// Connection holds the Connection header value. It isn't normalized, so can be anything
	// and in any case. So in order to compare it, highly recommended to do it case-insensibly
	Connection string
}

// NewRequest returns a new request paired with the response, so that the response is able
// to mirror the protocol of the request.
func NewRequest(cfg *config.Config, response *Response, remote net.Addr) *Request {
	request := &Request{
		Method:   method.Unknown,
		Proto:    proto.HTTP11,
		Query:    kv.NewCaseSensitive(),
		Headers:  kv.NewPrealloc(cfg.Headers.Number.Default),
		Cookies:  cookie.NewJar(),
		Params:   kv.NewCaseSensitive(),
		Form:     kv.NewCaseSensitive(),
		Body:     NewBytesBody(nil),
		Remote:   remote,
		Ctx:      zeroContext,
		response: response,
	}
	response.request = request

	return request
}

// Response returns the response paired with the request.
func (r *Request) Response() *Response {
	return r.response
}

// Get returns the header value. Lookup is case-insensitive.
func (r *Request) Get(key string) string {
	return r.Headers.Value(key)
}

// Param looks the key up in route parameters, then in the parsed body, then in the query.
func (r *Request) Param(key string) string {
	if value, found := r.Params.Get(key); found {
		return value
	}

	if value, found := r.Form.Get(key); found {
		return value
	}

	if fields, ok := r.JSON.(map[string]any); ok {
		if value, found := fields[key]; found {
			return fmt.Sprint(value)
		}
	}

	return r.Query.Value(key)
}

// Is compares the request's Content-Type against the type, which may be a full MIME
// (application/json), a subtype only (json) or a wildcard (application/*).
func (r *Request) Is(typ string) bool {
	contentType, _ := strutil.CutHeader(r.ContentType)
	if len(contentType) == 0 {
		return false
	}

	major, minor, _ := strings.Cut(contentType, "/")

	return strcomp.EqualFold(typ, contentType) ||
		strcomp.EqualFold(typ, minor) ||
		strcomp.EqualFold(typ, major+"/*")
}

// ReadBody buffers the whole body into RawBody. Consecutive calls return the same value.
func (r *Request) ReadBody() ([]byte, error) {
	if r.bodyRead {
		return r.RawBody, nil
	}

	body, err := r.Body.Bytes()
	if err != nil {
		return nil, err
	}

	r.RawBody = body
	r.bodyRead = true

	return body, nil
}

// BodyRead tells whether RawBody is populated.
func (r *Request) BodyRead() bool {
	return r.bodyRead
}

// BodyValue looks the gjson path up in the JSON body. The body must be already buffered.
func (r *Request) BodyValue(path string) gjson.Result {
	return gjson.GetBytes(r.RawBody, path)
}

// Reset the request, so it can be reused for the next one.
func (r *Request) Reset() {
	r.Method = method.Unknown
	r.Target = ""
	r.Path = ""
	r.Query.Clear()
	r.Proto = proto.HTTP11
	r.Headers.Clear()
	r.commonHeaders = commonHeaders{}
	r.Cookies.Clear()
	r.Params.Clear()
	r.Resource = ""
	r.RawBody = nil
	r.bodyRead = false
	r.Form.Clear()
	r.JSON = nil
	r.Ctx = zeroContext
	r.response.Reset()
}
