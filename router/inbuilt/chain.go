package inbuilt

import (
	"github.com/indigo-web/miniexpress/http"
	"github.com/indigo-web/miniexpress/http/status"
)

// chain is a cursor over the entries matching a single request. It walks the middlewares
// first, then the handlers of the request method, and then the fallback ones.
type chain struct {
	router   *Router
	request  *http.Request
	response *http.Response
	handlers []entry
	fallback []entry
	cursor   int
}

func (c *chain) Next() {
	for {
		e, ok := c.advance()
		if !ok {
			break
		}

		c.request.Params.Clear()
		rest, matched := e.pattern.Match(c.request.Path, c.request.Params)
		if !matched {
			continue
		}

		c.request.Resource = rest

		if e.middleware != nil {
			e.middleware(c.request, c.response, c.Next)
		} else {
			e.handler(c.request, c.response)
		}

		return
	}

	if !c.response.Ended() {
		_ = c.response.Error(status.NotFound, "")
	}
}

func (c *chain) advance() (e entry, ok bool) {
	i := c.cursor
	c.cursor++

	for _, entries := range [...][]entry{c.router.middlewares, c.handlers, c.fallback} {
		if i < len(entries) {
			return entries[i], true
		}

		i -= len(entries)
	}

	return entry{}, false
}
