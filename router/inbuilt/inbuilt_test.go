package inbuilt

import (
	"strconv"
	"strings"
	"testing"

	"github.com/indigo-web/miniexpress/config"
	"github.com/indigo-web/miniexpress/http"
	"github.com/indigo-web/miniexpress/http/method"
	"github.com/indigo-web/miniexpress/internal/server"
	"github.com/indigo-web/miniexpress/transport/dummy"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type response struct {
	Line string
	Head string
	Body string
}

func do(t *testing.T, r *Router, raw ...string) []response {
	require.NoError(t, r.OnStart())
	client := dummy.NewStringClient(raw...)
	server.New(config.Default(), r, zap.NewNop()).Run(client)

	var responses []response
	for written := client.Written(); len(written) > 0; {
		head, rest, found := strings.Cut(written, "\r\n\r\n")
		require.True(t, found)
		line, _, _ := strings.Cut(head, "\r\n")
		length := 0
		for _, header := range strings.Split(head, "\r\n")[1:] {
			if value, ok := strings.CutPrefix(header, "Content-Length: "); ok {
				var err error
				length, err = strconv.Atoi(value)
				require.NoError(t, err)
			}
		}

		// responses to HEAD requests declare the length, but carry no body
		length = min(length, len(rest))

		responses = append(responses, response{Line: line, Head: head, Body: rest[:length]})
		written = rest[length:]
	}

	return responses
}

func get(path string) string {
	return "GET " + path + " HTTP/1.1\r\n\r\n"
}

func TestRouter(t *testing.T) {
	t.Run("welcome", func(t *testing.T) {
		r := New().Get("/", func(_ *http.Request, response *http.Response) {
			_ = response.Send("Welcome to MiniExpress.")
		})

		resp := do(t, r, get("/"))
		require.Len(t, resp, 1)
		require.Equal(t, "HTTP/1.1 200 OK", resp[0].Line)
		require.Equal(t, "Welcome to MiniExpress.", resp[0].Body)
	})

	t.Run("params", func(t *testing.T) {
		var itemID string
		r := New().Put("/items/:itemId", func(request *http.Request, response *http.Response) {
			itemID = request.Params.Value("itemId")
			_ = response.Send(200)
		})

		resp := do(t, r, "PUT /items/7 HTTP/1.1\r\nContent-Length: 0\r\n\r\n")
		require.Equal(t, "7", itemID)
		require.Equal(t, "OK", resp[0].Body)
	})

	t.Run("query and params keep the case of keys", func(t *testing.T) {
		var query, params map[string]string
		r := New().Get("/p/:id/:ID", func(request *http.Request, response *http.Response) {
			query, params = request.Query.Map(), request.Params.Map()
			_ = response.Send(200)
		})

		resp := do(t, r, get("/p/1/2?a=1&A=2"))
		require.Equal(t, "HTTP/1.1 200 OK", resp[0].Line)
		require.Equal(t, map[string]string{"a": "1", "A": "2"}, query)
		require.Equal(t, map[string]string{"id": "1", "ID": "2"}, params)
	})

	t.Run("not found", func(t *testing.T) {
		r := New().Get("/", func(_ *http.Request, response *http.Response) {
			_ = response.Send("root")
		})

		resp := do(t, r, get("/missing"), "POST / HTTP/1.1\r\n\r\n")
		require.Len(t, resp, 2)
		require.Equal(t, "HTTP/1.1 404 Not Found", resp[0].Line)
		require.Equal(t, "404 Not Found\n", resp[0].Body)
		require.Equal(t, "HTTP/1.1 404 Not Found", resp[1].Line)
	})

	t.Run("empty chain", func(t *testing.T) {
		resp := do(t, New(), get("/"))
		require.Equal(t, "HTTP/1.1 404 Not Found", resp[0].Line)
	})

	t.Run("order", func(t *testing.T) {
		var trace []string
		mark := func(name string) Middleware {
			return func(_ *http.Request, _ *http.Response, next Next) {
				trace = append(trace, name)
				next()
			}
		}

		r := New().
			Get("/items/:id", func(_ *http.Request, response *http.Response) {
				trace = append(trace, "handler")
				_ = response.Send("item")
			}).
			Use(mark("first")).
			UseAt("/other", mark("skipped")).
			UseAt("/items", mark("items")).
			Get("/items/:id", func(*http.Request, *http.Response) {
				trace = append(trace, "shadowed")
			})

		resp := do(t, r, get("/items/42"))
		require.Equal(t, "item", resp[0].Body)
		require.Equal(t, []string{"first", "items", "handler"}, trace)
	})

	t.Run("middleware short-circuit", func(t *testing.T) {
		called := false
		r := New().
			Use(func(_ *http.Request, response *http.Response, _ Next) {
				_ = response.Error(500, "Couldn't parse json")
			}).
			Get("/", func(*http.Request, *http.Response) {
				called = true
			})

		resp := do(t, r, get("/"))
		require.False(t, called)
		require.Equal(t, "500 Internal Server Error\nCouldn't parse json", resp[0].Body)
	})

	t.Run("resource", func(t *testing.T) {
		var resources []string
		r := New().
			UseAt("/static", func(request *http.Request, _ *http.Response, next Next) {
				resources = append(resources, request.Resource)
				next()
			})

		do(t, r, get("/static/css/main.css"), get("/static"), get("/staticfile"))
		require.Equal(t, []string{"/css/main.css", ""}, resources)
	})

	t.Run("params are rebound", func(t *testing.T) {
		var seen []string
		r := New().
			UseAt("/users/:name", func(request *http.Request, _ *http.Response, next Next) {
				seen = append(seen, request.Params.Value("name"))
				next()
			}).
			Get("/users/:userId/avatar", func(request *http.Request, response *http.Response) {
				seen = append(seen, request.Params.Value("userId"), request.Params.Value("name"))
				_ = response.Send(nil)
			})

		do(t, r, get("/users/john/avatar"))
		require.Equal(t, []string{"john", "john", ""}, seen)
	})

	t.Run("HEAD falls back to GET", func(t *testing.T) {
		r := New().Get("/", func(_ *http.Request, response *http.Response) {
			_ = response.Send("Hello, world!")
		})

		resp := do(t, r, "HEAD / HTTP/1.1\r\n\r\n")
		require.Equal(t, "HTTP/1.1 200 OK", resp[0].Line)
		require.Contains(t, resp[0].Head, "Content-Length: 13")
		require.Empty(t, resp[0].Body)
	})

	t.Run("keep-alive", func(t *testing.T) {
		r := New().Get("/:n", func(request *http.Request, response *http.Response) {
			_ = response.Send(request.Params.Value("n"))
		})

		resp := do(t, r, get("/1")+get("/2"))
		require.Len(t, resp, 2)
		require.Equal(t, "1", resp[0].Body)
		require.Equal(t, "2", resp[1].Body)
	})

	t.Run("protocol error", func(t *testing.T) {
		resp := do(t, New(), "GET / HTTP/1.1\r\nno colon here\r\n\r\n")
		require.Equal(t, "HTTP/1.1 400 Bad Request", resp[0].Line)
		require.Equal(t, "400 Bad Request\nmalformed header line", resp[0].Body)
	})
}

func TestRouter_Registration(t *testing.T) {
	t.Run("frozen", func(t *testing.T) {
		r := New()
		require.NoError(t, r.OnStart())
		require.Panics(t, func() {
			r.Get("/", func(*http.Request, *http.Response) {})
		})
		require.Panics(t, func() {
			r.Use(func(*http.Request, *http.Response, Next) {})
		})
	})

	t.Run("malformed template", func(t *testing.T) {
		require.Panics(t, func() {
			New().Get("items", func(*http.Request, *http.Response) {})
		})
		require.Panics(t, func() {
			New().Route(method.Unknown, "/", func(*http.Request, *http.Response) {})
		})
	})

	t.Run("instances are independent", func(t *testing.T) {
		a, b := New(), New()
		a.Get("/", func(*http.Request, *http.Response) {})
		require.Len(t, a.Routes(), 1)
		require.Empty(t, b.Routes())
	})

	t.Run("routes", func(t *testing.T) {
		noop := func(*http.Request, *http.Response) {}
		mw := func(*http.Request, *http.Response, Next) {}
		r := New().
			Post("/post-sent", noop).
			Use(mw).
			UseAt("/users/:name", mw).
			Get("/", noop).
			Delete("/items/:itemId", noop)

		routes := r.Routes()
		require.Equal(t, []RouteInfo{
			{Path: "/", Prefix: true},
			{Path: "/users/:name", Prefix: true, Params: []string{"name"}},
			{Method: "GET", Path: "/"},
			{Method: "POST", Path: "/post-sent"},
			{Method: "DELETE", Path: "/items/:itemId", Params: []string{"itemId"}},
		}, routes)
		require.Equal(t, "USE /*", routes[0].String())
		require.Equal(t, "USE /users/:name*", routes[1].String())
		require.Equal(t, "DELETE /items/:itemId", routes[4].String())
	})
}
