package config

import (
	"time"
)

type (
	URI struct {
		// RequestLineSize limits the length of the request line, CRLF excluded.
		RequestLineSize int
	}

	HeadersNumber struct {
		Default, Maximal int
	}

	Headers struct {
		// Number is responsible for headers storage size.
		// Default value is an initial size of allocated headers storage.
		// Maximal value is maximum number of headers allowed to be presented
		Number HeadersNumber
		// MaxLineLength limits a single header line, CRLF excluded.
		MaxLineLength int
		// Default headers are headers to be included into every response implicitly, unless
		// explicitly overridden.
		Default map[string]string
	}

	Body struct {
		// MaxSize describes the maximal size of a body, that can be processed. Requests declaring
		// a greater Content-Length are rejected with 400 Bad Request.
		MaxSize uint64
	}

	NET struct {
		// ReadBufferSize is a size of buffer in bytes which will be used to read from
		// socket
		ReadBufferSize int
		// ReadTimeout controls the maximal lifetime of IDLE connections. If no data was
		// received in this period of time, it'll be closed.
		ReadTimeout time.Duration
		// AcceptLoopInterruptPeriod controls how often will the Accept() call be interrupted
		// in order to check whether it's time to stop.
		AcceptLoopInterruptPeriod time.Duration
		// WriteBufferSize is the initial capacity of the buffer the response is rendered into.
		WriteBufferSize int
	}

	Static struct {
		// DefaultFile is served when the requested resource turns out to be a directory.
		DefaultFile string
		// MaxFileSize limits files being served, as each one is buffered whole.
		MaxFileSize int64
	}
)

// Config holds settings used across various parts of the server, mainly restrictions,
// limitations and pre-allocations.
//
// You must ALWAYS modify defaults (returned via Default()) and NEVER try to initialize the
// config manually, because most likely this will result in ambiguous errors.
type Config struct {
	URI     URI
	Headers Headers
	Body    Body
	NET     NET
	Static  Static
}

// Default returns default config. Those are initially well-balanced, however maximal defaults
// are pretty permitting.
func Default() *Config {
	return &Config{
		URI: URI{
			// most web-entities limit it to 4-8kb, so 16kb is pretty much tolerant
			RequestLineSize: 16 * 1024,
		},
		Headers: Headers{
			Number: HeadersNumber{
				Default: 10,
				Maximal: 50,
			},
			// there also might be extremely long cookies.
			MaxLineLength: 16 * 1024,
			Default:       make(map[string]string),
		},
		Body: Body{
			MaxSize: 64 * 1024 * 1024, // 64 megabytes
		},
		NET: NET{
			ReadBufferSize:            4 * 1024,
			ReadTimeout:               2 * time.Second,
			AcceptLoopInterruptPeriod: 5 * time.Second,
			WriteBufferSize:           2 * 1024,
		},
		Static: Static{
			DefaultFile: "index.html",
			MaxFileSize: 32 * 1024 * 1024,
		},
	}
}
