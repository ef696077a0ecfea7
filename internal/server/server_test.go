package server

import (
	"strings"
	"testing"

	"github.com/indigo-web/miniexpress/config"
	"github.com/indigo-web/miniexpress/http"
	"github.com/indigo-web/miniexpress/http/status"
	"github.com/indigo-web/miniexpress/transport/dummy"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

type stubRouter struct {
	onRequest func(request *http.Request, response *http.Response)
	skipBody  bool
	requests  []string
}

func (s *stubRouter) OnStart() error {
	return nil
}

func (s *stubRouter) OnRequest(request *http.Request, response *http.Response) {
	var body []byte
	if !s.skipBody {
		body, _ = request.ReadBody()
	}

	s.requests = append(s.requests, request.Method.String()+" "+request.Path+" "+string(body))

	if s.onRequest != nil {
		s.onRequest(request, response)
		return
	}

	_ = response.Send("ok")
}

func (s *stubRouter) OnError(_ *http.Request, response *http.Response, err error) {
	_ = response.Error(status.CodeOf(err), err.Error())
}

func run(r *stubRouter, data ...string) (*dummy.Client, *observer.ObservedLogs) {
	core, logs := observer.New(zap.DebugLevel)
	client := dummy.NewStringClient(data...)
	New(config.Default(), r, zap.New(core)).Run(client)

	return client, logs
}

func TestServer(t *testing.T) {
	t.Run("keep-alive", func(t *testing.T) {
		r := new(stubRouter)
		client, _ := run(r, "GET / HTTP/1.1\r\n\r\nGET /second HTTP/1.1\r\n\r\n")
		require.Equal(t, []string{"GET / ", "GET /second "}, r.requests)
		require.Equal(t, 2, strings.Count(client.Written(), "HTTP/1.1 200 OK"))
		require.True(t, client.Closed())
	})

	t.Run("connection close", func(t *testing.T) {
		r := new(stubRouter)
		run(r, "GET / HTTP/1.1\r\nConnection: close\r\n\r\nGET /second HTTP/1.1\r\n\r\n")
		require.Equal(t, []string{"GET / "}, r.requests)
	})

	t.Run("HTTP/1.0", func(t *testing.T) {
		r := new(stubRouter)
		client, _ := run(r, "GET / HTTP/1.0\r\n\r\nGET /second HTTP/1.0\r\n\r\n")
		require.Equal(t, []string{"GET / "}, r.requests)
		require.Contains(t, client.Written(), "Connection: close\r\n")
	})

	t.Run("body in pieces", func(t *testing.T) {
		r := new(stubRouter)
		run(r,
			"POST /post-sent HTTP/1.1\r\nContent-Length: 19\r\n\r\nfirst=",
			"John&last=DoeGET ",
			"/next HTTP/1.1\r\n\r\n",
		)
		require.Equal(t, []string{"POST /post-sent first=John&last=Doe", "GET /next "}, r.requests)
	})

	t.Run("unread body is discarded", func(t *testing.T) {
		r := &stubRouter{skipBody: true}
		client, _ := run(r, "POST / HTTP/1.1\r\nContent-Length: 5\r\n\r\nhelloGET / HTTP/1.1\r\n\r\n")
		require.Len(t, r.requests, 2)
		require.Equal(t, 2, strings.Count(client.Written(), "200 OK"))
	})

	t.Run("protocol error", func(t *testing.T) {
		r := new(stubRouter)
		client, _ := run(r, "GET /\r\n\r\nGET / HTTP/1.1\r\n\r\n")
		require.Empty(t, r.requests)
		require.True(t, strings.HasPrefix(client.Written(), "HTTP/1.1 400 Bad Request\r\n"))
		require.Contains(t, client.Written(), "Connection: close\r\n")
		require.True(t, client.Closed())
	})

	t.Run("unsupported method", func(t *testing.T) {
		client, _ := run(new(stubRouter), "BREW / HTTP/1.1\r\n\r\n")
		require.True(t, strings.HasPrefix(client.Written(), "HTTP/1.1 405 Unsupported Method\r\n"))
	})

	t.Run("partial request", func(t *testing.T) {
		r := new(stubRouter)
		client, _ := run(r, "GET / HTTP/1.1\r\nHost: localh")
		require.Empty(t, r.requests)
		require.Empty(t, client.Written())
	})

	t.Run("panic", func(t *testing.T) {
		r := &stubRouter{onRequest: func(*http.Request, *http.Response) {
			panic("boom")
		}}
		client, logs := run(r, "GET / HTTP/1.1\r\n\r\nGET / HTTP/1.1\r\n\r\n")
		require.Len(t, r.requests, 1, "the connection must be closed after a panic")
		require.True(t, strings.HasPrefix(client.Written(), "HTTP/1.1 500 Internal Server Error\r\n"))
		require.Equal(t, 1, logs.FilterMessageSnippet("panic").Len())
	})

	t.Run("abandoned", func(t *testing.T) {
		r := &stubRouter{onRequest: func(*http.Request, *http.Response) {}}
		client, logs := run(r, "GET / HTTP/1.1\r\n\r\nGET / HTTP/1.1\r\n\r\n")
		require.Len(t, r.requests, 1)
		require.Empty(t, client.Written())
		require.Equal(t, 1, logs.FilterLevelExact(zap.WarnLevel).Len())
	})
}
