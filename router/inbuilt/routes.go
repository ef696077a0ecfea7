package inbuilt

import (
	"github.com/indigo-web/miniexpress/http/method"
	"github.com/samber/lo"
)

// RouteInfo describes a registered chain entry.
type RouteInfo struct {
	// Method is empty for middlewares, as they are applied to all the methods.
	Method string
	Path   string
	// Prefix is set if the entry matches every path starting with Path.
	Prefix bool
	// Params lists capture names of the path template.
	Params []string
}

func (r RouteInfo) String() string {
	path := r.Path
	if r.Prefix {
		path += "*"
	}

	if len(r.Method) == 0 {
		return "USE " + path
	}

	return r.Method + " " + path
}

// Routes lists all the middlewares and handlers in the order they are tried.
func (r *Router) Routes() []RouteInfo {
	describe := func(e entry, _ int) RouteInfo {
		info := RouteInfo{
			Path:   e.pattern.String(),
			Prefix: e.pattern.Prefixed(),
			Params: e.pattern.Names(),
		}
		if e.handler != nil {
			info.Method = e.method.String()
		}

		return info
	}

	handlers := lo.FlatMap(method.List, func(m method.Method, _ int) []RouteInfo {
		return lo.Map(r.routes[m], describe)
	})

	return append(lo.Map(r.middlewares, describe), handlers...)
}
