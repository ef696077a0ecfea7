// Package query parses the query part of the request target.
//
// Known limitation: keys and values are stored literally, percent-encoded sequences
// are NOT decoded.
package query

import (
	"strings"

	"github.com/indigo-web/miniexpress/kv"
)

// Parse splits the raw query by ampersands into key=value pairs and stores them into the
// storage. A pair without the equality sign results in an empty value. In case of duplicate
// keys the last occurrence wins.
func Parse(raw string, into *kv.Storage) {
	for len(raw) > 0 {
		var pair string
		if amp := strings.IndexByte(raw, '&'); amp != -1 {
			pair, raw = raw[:amp], raw[amp+1:]
		} else {
			pair, raw = raw, ""
		}

		if len(pair) == 0 {
			continue
		}

		key, value, _ := strings.Cut(pair, "=")
		into.Set(key, value)
	}
}
