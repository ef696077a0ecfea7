package middleware

import (
	"io"
	"os"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/indigo-web/miniexpress/http"
	"github.com/indigo-web/miniexpress/http/method"
	"github.com/indigo-web/miniexpress/http/mime"
	"github.com/indigo-web/miniexpress/http/status"
	"github.com/indigo-web/miniexpress/internal/urlencoded"
	"github.com/indigo-web/miniexpress/router/inbuilt"
	json "github.com/json-iterator/go"
	"github.com/tidwall/gjson"
)

// interrupted reports whether the body couldn't be read because the connection timed out
// or the peer went away. There's nobody to answer then, so the chain is just left, and the
// connection is closed as the response wasn't ended.
func interrupted(err error) bool {
	return errors.Is(err, os.ErrDeadlineExceeded) || errors.Is(err, io.ErrUnexpectedEOF)
}

// BufferBody reads the whole body of requests, whose methods are expected to carry one,
// before continuing. Afterward, it's available as request.RawBody.
func BufferBody() inbuilt.Middleware {
	return func(request *http.Request, response *http.Response, next inbuilt.Next) {
		if method.HasBody(request.Method) {
			if _, err := request.ReadBody(); err != nil {
				if !interrupted(err) {
					_ = response.Error(status.BadRequest, "Couldn't read body")
				}

				return
			}
		}

		next()
	}
}

// Urlencoded parses application/x-www-form-urlencoded bodies into request.Form. Keys and
// values are decoded, the last occurrence of a key wins.
func Urlencoded() inbuilt.Middleware {
	return func(request *http.Request, response *http.Response, next inbuilt.Next) {
		if !request.Form.Empty() || !mime.Complies(mime.FormUrlencoded, request.ContentType) {
			next()
			return
		}

		if err := parseForm(request); err != nil {
			if !interrupted(err) {
				_ = response.Error(status.InternalServerError, "Couldn't parse form")
			}

			return
		}

		next()
	}
}

func parseForm(request *http.Request) error {
	raw, err := request.ReadBody()
	if err != nil {
		return err
	}

	// the body buffer is reused by the next request, so the strings must not refer to it
	for _, pair := range strings.Split(string(raw), "&") {
		if len(pair) == 0 {
			continue
		}

		key, value, _ := strings.Cut(pair, "=")
		if key, err = urlencoded.Decode(key); err != nil {
			return err
		}

		if value, err = urlencoded.Decode(value); err != nil {
			return err
		}

		request.Form.Set(key, value)
	}

	return nil
}

// JSON decodes application/json bodies into request.JSON.
func JSON() inbuilt.Middleware {
	return func(request *http.Request, response *http.Response, next inbuilt.Next) {
		if request.JSON != nil || !mime.Complies(mime.JSON, request.ContentType) {
			next()
			return
		}

		raw, err := request.ReadBody()
		if interrupted(err) {
			return
		}

		// rejects malformed documents without allocating anything for them
		if err != nil || !gjson.ValidBytes(raw) {
			_ = response.Error(status.InternalServerError, "Couldn't parse json")
			return
		}

		var body any
		if err = json.ConfigCompatibleWithStandardLibrary.Unmarshal(raw, &body); err != nil {
			_ = response.Error(status.InternalServerError, "Couldn't parse json")
			return
		}

		request.JSON = body
		next()
	}
}

// BodyParser buffers the body and parses it, depending on its Content-Type. Requests of
// methods which aren't expected to carry a body are passed further untouched.
func BodyParser() inbuilt.Middleware {
	parse := inbuilt.Compose(BufferBody(), Urlencoded(), JSON())

	return func(request *http.Request, response *http.Response, next inbuilt.Next) {
		if !method.HasBody(request.Method) {
			next()
			return
		}

		parse(request, response, next)
	}
}
