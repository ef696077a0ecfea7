package http1

import (
	"strconv"

	"github.com/indigo-web/miniexpress/http"
	"github.com/indigo-web/miniexpress/http/method"
	"github.com/indigo-web/miniexpress/http/proto"
	"github.com/indigo-web/miniexpress/http/status"
	"github.com/indigo-web/miniexpress/internal/timer"
	"github.com/indigo-web/miniexpress/transport"
	"github.com/indigo-web/utils/strcomp"
	"github.com/samber/lo"
)

const (
	crlf          = "\r\n"
	colonsp       = ": "
	contentLength = "Content-Length: "
	date          = "Date: "
	connection    = "Connection: "
)

// computed headers are always rendered by the serializer itself, so user-set values are ignored
var computed = []string{"content-length", "connection"}

// Serializer renders the response head and body into a single buffer and writes it at once.
// It implements http.Committer, so the response is able to emit itself.
type Serializer struct {
	writer         transport.Client
	buff           []byte
	defaultHeaders defaultHeaders
}

func NewSerializer(writer transport.Client, buff []byte, defHdrs map[string]string) *Serializer {
	return &Serializer{
		writer:         writer,
		buff:           buff[:0],
		defaultHeaders: processDefaultHeaders(defHdrs),
	}
}

// Commit writes the response, mirroring the protocol of the request. Responses to HEAD
// requests lack the body, even though Content-Length reflects it.
func (s *Serializer) Commit(response *http.Response) error {
	defer s.clear()

	request := response.Request()
	s.renderResponseLine(request.Proto, response.Code())

	hasDate := false
	for _, header := range response.Headers().Expose() {
		if lo.ContainsBy(computed, func(key string) bool {
			return strcomp.EqualFold(header.Key, key)
		}) {
			continue
		}

		hasDate = hasDate || strcomp.EqualFold(header.Key, "date")
		s.renderHeader(header.Key, header.Value)
		s.defaultHeaders.Exclude(header.Key)
	}

	for _, header := range s.defaultHeaders {
		if !header.Excluded {
			s.buff = append(s.buff, header.Full...)
		}
	}

	if !hasDate {
		s.buff = timer.AppendDate(append(s.buff, date...))
		s.crlf()
	}

	s.buff = append(s.buff, connection...)
	if KeepAlive(request) {
		s.buff = append(s.buff, "keep-alive"...)
	} else {
		s.buff = append(s.buff, "close"...)
	}
	s.crlf()

	body := response.Body()
	s.buff = strconv.AppendInt(append(s.buff, contentLength...), int64(len(body)), 10)
	s.crlf()
	s.crlf()

	if request.Method != method.HEAD {
		s.buff = append(s.buff, body...)
	}

	_, err := s.writer.Write(s.buff)
	return err
}

func (s *Serializer) renderResponseLine(protocol proto.Proto, code status.Code) {
	if protocol == proto.Unknown {
		// requests failed before the protocol was parsed are answered with the most common one
		protocol = proto.HTTP11
	}

	s.buff = append(s.buff, protocol.String()...)
	s.buff = append(s.buff, ' ')
	s.buff = strconv.AppendUint(s.buff, uint64(code), 10)
	s.buff = append(s.buff, ' ')
	s.buff = append(s.buff, status.Text(code)...)
	s.crlf()
}

func (s *Serializer) renderHeader(key, value string) {
	s.buff = append(s.buff, key...)
	s.buff = append(s.buff, colonsp...)
	s.buff = append(s.buff, value...)
	s.crlf()
}

func (s *Serializer) crlf() {
	s.buff = append(s.buff, crlf...)
}

func (s *Serializer) clear() {
	s.buff = s.buff[:0]
	s.defaultHeaders.Reset()
}

// KeepAlive tells whether the connection may be reused after the request is answered.
// HTTP/1.0 connections are closed unless keep-alive is explicitly requested, HTTP/1.1
// ones are kept unless close is explicitly requested.
func KeepAlive(request *http.Request) bool {
	switch request.Proto {
	case proto.HTTP10:
		return strcomp.EqualFold(request.Connection, "keep-alive")
	case proto.HTTP11:
		return !strcomp.EqualFold(request.Connection, "close")
	default:
		return false
	}
}

func processDefaultHeaders(hdrs map[string]string) defaultHeaders {
	processed := make(defaultHeaders, 0, len(hdrs))

	for key, value := range hdrs {
		full := key + colonsp + value + crlf
		processed = append(processed, defaultHeader{
			// we let the GC release all the values of the map, as here we're using only
			// the brand-new line without keeping the original string
			Key:  full[:len(key)],
			Full: full,
		})
	}

	return processed
}

type defaultHeader struct {
	Excluded bool
	Key      string
	Full     string
}

type defaultHeaders []defaultHeader

func (d defaultHeaders) Exclude(key string) {
	for i, header := range d {
		if strcomp.EqualFold(header.Key, key) {
			d[i].Excluded = true
			return
		}
	}
}

func (d defaultHeaders) Reset() {
	for i := range d {
		d[i].Excluded = false
	}
}
