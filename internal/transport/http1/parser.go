package http1

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"github.com/indigo-web/miniexpress/config"
	"github.com/indigo-web/miniexpress/http"
	"github.com/indigo-web/miniexpress/http/method"
	"github.com/indigo-web/miniexpress/http/proto"
	"github.com/indigo-web/miniexpress/http/query"
	"github.com/indigo-web/miniexpress/http/status"
	"github.com/indigo-web/miniexpress/internal/strutil"
	"github.com/indigo-web/miniexpress/internal/transport"
	"github.com/indigo-web/utils/strcomp"
	"github.com/indigo-web/utils/uf"
)

var _ transport.Parser = new(Parser)

type parserState uint8

const (
	eRequestLine parserState = iota + 1
	eHeaderLine
)

// Parser is a stream-based http requests parser. It modifies the request object by pointer.
// Input may be split at arbitrary points, so lines crossing the boundaries are accumulated
// in an internal buffer. When headers are parsed, transport.HeadersCompleted is returned
// along with all the pending data as an extra. Body must be processed separately
type Parser struct {
	request       *http.Request
	cfg           *config.Config
	line          []byte
	headersNumber int
	state         parserState
}

func NewParser(request *http.Request, cfg *config.Config) *Parser {
	return &Parser{
		request: request,
		cfg:     cfg,
		state:   eRequestLine,
	}
}

func (p *Parser) Parse(data []byte) (state transport.RequestState, extra []byte, err error) {
	for len(data) > 0 {
		lf := bytes.IndexByte(data, '\n')
		if lf == -1 {
			if len(p.line)+len(data) > p.lineLimit() {
				return transport.Error, nil, p.lineLimitErr()
			}

			p.line = append(p.line, data...)
			return transport.Pending, nil, nil
		}

		line := data[:lf]
		if len(p.line) > 0 {
			p.line = append(p.line, line...)
			line = p.line
		}

		data = data[lf+1:]
		if len(line) > 0 && line[len(line)-1] == '\r' {
			line = line[:len(line)-1]
		}

		if len(line) > p.lineLimit() {
			return transport.Error, nil, p.lineLimitErr()
		}

		switch p.state {
		case eRequestLine:
			if err = p.requestLine(uf.B2S(line)); err != nil {
				return transport.Error, nil, err
			}

			p.state = eHeaderLine
		case eHeaderLine:
			if len(line) == 0 {
				p.reset()
				return transport.HeadersCompleted, data, nil
			}

			if err = p.headerLine(uf.B2S(line)); err != nil {
				return transport.Error, nil, err
			}
		default:
			panic(fmt.Sprintf("BUG: unexpected state: %v", p.state))
		}

		p.line = p.line[:0]
	}

	return transport.Pending, nil, nil
}

// requestLine parses METHOD SP TARGET SP HTTP/VERSION. Runs of whitespace between the
// tokens are tolerated. The line is backed by a reused buffer, so everything being kept
// must be copied.
func (p *Parser) requestLine(line string) error {
	fields := strings.Fields(line)
	if len(fields) != 3 {
		return status.ErrBadRequestLine
	}

	request := p.request
	request.Method = method.Parse(fields[0])
	if request.Method == method.Unknown {
		return status.ErrMethodNotImplemented
	}

	request.Proto = proto.FromBytes(uf.S2B(fields[2]))
	if request.Proto == proto.Unknown {
		return status.ErrUnsupportedProtocol
	}

	request.Target = strings.Clone(fields[1])
	path, rawQuery, _ := strings.Cut(request.Target, "?")
	if len(path) == 0 {
		return status.ErrBadRequestLine
	}

	request.Path = path
	query.Parse(rawQuery, request.Query)

	return nil
}

func (p *Parser) headerLine(line string) error {
	colon := strings.IndexByte(line, ':')
	if colon <= 0 {
		return status.ErrBadHeader
	}

	if p.headersNumber++; p.headersNumber > p.cfg.Headers.Number.Maximal {
		return status.ErrTooManyHeaders
	}

	key := strings.Clone(line[:colon])
	value := strings.Clone(strutil.StripWS(line[colon+1:]))
	request := p.request

	switch {
	case strcomp.EqualFold(key, "content-length"):
		length, err := strconv.Atoi(value)
		if err != nil || length < 0 {
			return status.ErrBadContentLength
		}

		if uint64(length) > p.cfg.Body.MaxSize {
			return status.ErrBodyTooLarge
		}

		request.ContentLength = length
	case strcomp.EqualFold(key, "content-type"):
		request.ContentType = value
	case strcomp.EqualFold(key, "connection"):
		request.Connection = value
	}

	request.Headers.Add(key, value)

	return nil
}

func (p *Parser) lineLimit() int {
	if p.state == eRequestLine {
		return p.cfg.URI.RequestLineSize
	}

	return p.cfg.Headers.MaxLineLength
}

func (p *Parser) lineLimitErr() error {
	if p.state == eRequestLine {
		return status.ErrTooLongRequestLine
	}

	return status.ErrHeaderFieldsTooLarge
}

func (p *Parser) reset() {
	p.line = p.line[:0]
	p.headersNumber = 0
	p.state = eRequestLine
}
