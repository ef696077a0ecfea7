// Package pattern implements path templates like /items/:id. A template is split on slashes,
// a segment starting with a colon is a named capture matching any non-empty run of
// characters except slash, other segments are matched literally and case-insensitively.
package pattern

import (
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/indigo-web/miniexpress/kv"
	"github.com/indigo-web/utils/strcomp"
	"github.com/samber/lo"
)

var (
	ErrNoLeadingSlash   = errors.New("path template must start with a slash")
	ErrEmptyCapture     = errors.New("capture name must not be empty")
	ErrDuplicateCapture = errors.New("capture name is used more than once")
)

// a typical template has few captures, so the values usually stay on the stack
const preallocCaptures = 8

type segment struct {
	literal string
	// capture is the name of the capture. Empty for literal segments
	capture string
}

// Pattern is a compiled path template. It's immutable, so safe for concurrent use.
type Pattern struct {
	template string
	segments []segment
	names    []string
	prefix   bool
}

// Compile compiles the template into a pattern, matching the whole path. A single
// trailing slash in the path is tolerated.
func Compile(template string) (Pattern, error) {
	return compile(template, false)
}

// Prefix compiles the template into a pattern, matching paths which start with it. The
// match must end on a segment boundary, so /static matches /static/main.css but not
// /staticfile.
func Prefix(template string) (Pattern, error) {
	return compile(template, true)
}

// MustCompile is like Compile, but panics if the template is malformed.
func MustCompile(template string) Pattern {
	return must(Compile(template))
}

// MustPrefix is like Prefix, but panics if the template is malformed.
func MustPrefix(template string) Pattern {
	return must(Prefix(template))
}

func must(p Pattern, err error) Pattern {
	if err != nil {
		panic(err)
	}

	return p
}

func compile(template string, prefix bool) (Pattern, error) {
	if len(template) == 0 || template[0] != '/' {
		return Pattern{}, errors.Wrapf(ErrNoLeadingSlash, "%q", template)
	}

	p := Pattern{
		template: template,
		prefix:   prefix,
	}

	trimmed := strings.TrimSuffix(template[1:], "/")
	if len(trimmed) == 0 {
		return p, nil
	}

	for _, part := range strings.Split(trimmed, "/") {
		name, isCapture := strings.CutPrefix(part, ":")
		if !isCapture {
			p.segments = append(p.segments, segment{literal: part})
			continue
		}

		switch {
		case len(name) == 0:
			return Pattern{}, errors.Wrapf(ErrEmptyCapture, "%q", template)
		case lo.Contains(p.names, name):
			return Pattern{}, errors.Wrapf(ErrDuplicateCapture, "%q: %s", template, name)
		}

		p.names = append(p.names, name)
		p.segments = append(p.segments, segment{capture: name})
	}

	return p, nil
}

// Match tests the path against the pattern. On success, captured values are added into
// params (which may be nil if they aren't needed) and the rest of the path is returned.
// The rest is the unmatched suffix starting with a slash, or an empty string if nothing
// is left. Exact patterns leave the trailing slash at most.
func (p Pattern) Match(path string, params *kv.Storage) (rest string, ok bool) {
	var buff [preallocCaptures]string
	values := buff[:0]

	for _, seg := range p.segments {
		if len(path) == 0 || path[0] != '/' {
			return "", false
		}

		path = path[1:]
		end := strings.IndexByte(path, '/')
		if end == -1 {
			end = len(path)
		}

		value := path[:end]
		path = path[end:]

		if len(seg.capture) > 0 {
			if len(value) == 0 {
				return "", false
			}

			values = append(values, value)
			continue
		}

		if !strcomp.EqualFold(value, seg.literal) {
			return "", false
		}
	}

	if p.prefix {
		if len(path) > 0 && path[0] != '/' {
			return "", false
		}
	} else if len(path) > 1 || (len(path) == 1 && path[0] != '/') {
		return "", false
	}

	if params != nil {
		for i, value := range values {
			params.Set(p.names[i], value)
		}
	}

	return path, true
}

// Names returns capture names in the order they appear in the template.
func (p Pattern) Names() []string {
	return p.names
}

// Prefixed tells whether the pattern matches path prefixes.
func (p Pattern) Prefixed() bool {
	return p.prefix
}

func (p Pattern) String() string {
	return p.template
}
