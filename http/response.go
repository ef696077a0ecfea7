package http

import (
	"strconv"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/indigo-web/miniexpress/http/cookie"
	"github.com/indigo-web/miniexpress/http/mime"
	"github.com/indigo-web/miniexpress/http/status"
	"github.com/indigo-web/miniexpress/kv"
	json "github.com/json-iterator/go"
)

// why 7? There's no theory behind this number, a typical response just doesn't have more
const preallocRespHeaders = 7

const jsonContentType = mime.JSON + "; charset=utf-8"

var ErrResponseEnded = errors.New("response has already been ended")

// Committer puts the response onto the wire. It's called exactly once per response.
type Committer interface {
	Commit(response *Response) error
}

// Response accumulates status, headers and body of the answer to a single request. It's
// emitted as a whole when ended, after which it can't be modified anymore.
type Response struct {
	code        status.Code
	headers     *kv.Storage
	body        []byte
	headWritten bool
	ended       bool
	err         error
	request     *Request
	committer   Committer
}

// NewResponse returns a new instance of the Response object with status code set to 200 OK.
// NOTE: responses must be paired with a request via NewRequest.
func NewResponse(committer Committer) *Response {
	return &Response{
		code:      status.OK,
		headers:   kv.NewPrealloc(preallocRespHeaders),
		committer: committer,
	}
}

// Status sets the response code. Codes without a known reason phrase are rendered with
// "Unknown Status Code" instead.
func (r *Response) Status(code status.Code) *Response {
	r.code = code
	return r
}

// Code returns the current status code.
func (r *Response) Code() status.Code {
	return r.code
}

// Set sets the header value, overriding the previous values regardless of the case of
// the key.
func (r *Response) Set(key, value string) *Response {
	r.headers.Set(key, value)
	return r
}

// SetMap merges the headers into the response.
func (r *Response) SetMap(headers map[string]string) *Response {
	for key, value := range headers {
		r.headers.Set(key, value)
	}

	return r
}

// Get returns the header value. Lookup is case-insensitive.
func (r *Response) Get(key string) string {
	return r.headers.Value(key)
}

// Headers exposes the response headers.
func (r *Response) Headers() *kv.Storage {
	return r.headers
}

// Body returns the pending body.
func (r *Response) Body() []byte {
	return r.body
}

// Request returns the request the response answers.
func (r *Response) Request() *Request {
	return r.request
}

// Write implements io.Writer, appending b to the pending body.
func (r *Response) Write(b []byte) (n int, err error) {
	if r.ended {
		return 0, ErrResponseEnded
	}

	r.body = append(r.body, b...)
	return len(b), nil
}

// SetCookie adds a Set-Cookie header.
func (r *Response) SetCookie(c cookie.Cookie) *Response {
	r.headers.Add("Set-Cookie", cookie.Render(c, time.Now()))
	return r
}

// Cookie adds a Set-Cookie header with the value converted by cookie.Value: structured
// values are serialized as tagged json.
func (r *Response) Cookie(name string, value any, options ...cookie.Option) error {
	str, err := cookie.Value(value)
	if err != nil {
		return err
	}

	c := cookie.New(name, str)
	for _, option := range options {
		option(&c)
	}

	r.SetCookie(c)
	return nil
}

// Send ends the response with the body. The body is treated depending on its type:
//   - string is sent as text/html, unless another Content-Type is set;
//   - []byte is sent as application/octet-stream, unless another Content-Type is set;
//   - int and status.Code set the status code and send its reason phrase as text/plain;
//   - nil sends whatever was written before;
//   - anything else is sent as JSON.
func (r *Response) Send(body any) error {
	if r.ended {
		return ErrResponseEnded
	}

	switch b := body.(type) {
	case nil:
	case string:
		r.defaultContentType(mime.HTML)
		r.body = append(r.body, b...)
	case []byte:
		r.defaultContentType(mime.OctetStream)
		r.body = append(r.body, b...)
	case int:
		return r.sendCode(status.Code(b))
	case status.Code:
		return r.sendCode(b)
	default:
		return r.JSON(body)
	}

	return r.End()
}

func (r *Response) sendCode(code status.Code) error {
	r.defaultContentType(mime.Plain)
	r.code = code
	r.body = append(r.body[:0], status.Text(code)...)

	return r.End()
}

// JSON ends the response with the model serialized into indented JSON. Map keys are sorted,
// so the output is stable.
func (r *Response) JSON(model any) error {
	if r.ended {
		return ErrResponseEnded
	}

	serialized, err := json.ConfigCompatibleWithStandardLibrary.MarshalIndent(model, "", "\t")
	if err != nil {
		_ = r.Error(status.InternalServerError, "couldn't serialize json")
		return errors.Wrap(err, "serialize json response")
	}

	r.headers.Set("Content-Type", jsonContentType)
	r.body = append(r.body[:0], serialized...)

	return r.End()
}

// Error ends the response immediately with a text/plain body consisting of the code, its
// reason phrase and the message on a separate line.
func (r *Response) Error(code status.Code, message string) error {
	if r.ended {
		return ErrResponseEnded
	}

	r.code = code
	r.headers.Set("Content-Type", mime.Plain)
	r.body = strconv.AppendUint(r.body[:0], uint64(code), 10)
	r.body = append(r.body, ' ')
	r.body = append(r.body, status.Text(code)...)
	r.body = append(r.body, '\n')
	r.body = append(r.body, message...)

	return r.End()
}

// End emits the response. Once ended, the response can't be modified anymore.
func (r *Response) End() error {
	if r.ended {
		return ErrResponseEnded
	}

	r.headWritten = true
	r.err = r.committer.Commit(r)
	r.ended = true

	return r.err
}

// HeadWritten tells whether the status line and headers were emitted.
func (r *Response) HeadWritten() bool {
	return r.headWritten
}

// Ended tells whether the response was emitted. Once true, it never becomes false again
// during the lifetime of the request.
func (r *Response) Ended() bool {
	return r.ended
}

// Err returns the error occurred while emitting the response, if any.
func (r *Response) Err() error {
	return r.err
}

// Reset prepares the response for the next request.
func (r *Response) Reset() {
	r.code = status.OK
	r.headers.Clear()
	r.body = r.body[:0]
	r.headWritten = false
	r.ended = false
	r.err = nil
}

func (r *Response) defaultContentType(value mime.MIME) {
	if !r.headers.Has("Content-Type") {
		r.headers.Set("Content-Type", value)
	}
}
