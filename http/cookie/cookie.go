package cookie

import (
	"strings"
	"time"
)

type Cookie struct {
	Name   string
	Value  string
	Path   string
	Domain string
	// Expires is the absolute expiry moment. Zero value means a session cookie.
	Expires time.Time
	// MaxAge is a relative lifetime. It is never rendered as is, but converted into
	// Expires at the moment the cookie is rendered, overriding the Expires if set.
	MaxAge   time.Duration
	SameSite SameSite
	Secure   bool
	HttpOnly bool
}

func New(name, value string) Cookie {
	return Cookie{Name: name, Value: value}
}

type Builder struct {
	cookie Cookie
}

// Build is a chainable constructor for cookies. A preferred way of instantiation
func Build(name, value string) Builder {
	return Builder{New(name, value)}
}

func (b Builder) Path(path string) Builder {
	b.cookie.Path = path
	return b
}

func (b Builder) Domain(domain string) Builder {
	b.cookie.Domain = domain
	return b
}

func (b Builder) Expires(expires time.Time) Builder {
	b.cookie.Expires = expires
	return b
}

func (b Builder) MaxAge(maxAge time.Duration) Builder {
	b.cookie.MaxAge = maxAge
	return b
}

func (b Builder) SameSite(sameSite SameSite) Builder {
	b.cookie.SameSite = sameSite
	return b
}

func (b Builder) Secure(secure bool) Builder {
	b.cookie.Secure = secure
	return b
}

func (b Builder) HttpOnly(httpOnly bool) Builder {
	b.cookie.HttpOnly = httpOnly
	return b
}

// Cookie returns the built cookie instance
func (b Builder) Cookie() Cookie {
	return b.cookie
}

type SameSite = string

const (
	SameSiteLax    SameSite = "Lax"
	SameSiteStrict SameSite = "Strict"
	SameSiteNone   SameSite = "None"
)

// ExpiresLayout is the date format of the Expires attribute.
const ExpiresLayout = "Mon, 02 Jan 2006 15:04:05 GMT"

// Render returns the Set-Cookie header value for the cookie. The now argument is used
// to resolve MaxAge into an absolute expiry.
func Render(c Cookie, now time.Time) string {
	var b strings.Builder
	b.WriteString(c.Name)
	b.WriteByte('=')
	b.WriteString(c.Value)

	if c.MaxAge != 0 {
		c.Expires = now.Add(c.MaxAge)
	}

	if len(c.Path) > 0 {
		b.WriteString("; Path=")
		b.WriteString(c.Path)
	}

	if len(c.Domain) > 0 {
		b.WriteString("; Domain=")
		b.WriteString(c.Domain)
	}

	if !c.Expires.IsZero() {
		b.WriteString("; Expires=")
		b.WriteString(c.Expires.UTC().Format(ExpiresLayout))
	}

	if len(c.SameSite) > 0 {
		b.WriteString("; SameSite=")
		b.WriteString(c.SameSite)
	}

	if c.Secure {
		b.WriteString("; Secure")
	}

	if c.HttpOnly {
		b.WriteString("; HttpOnly")
	}

	return b.String()
}

// Option sets a cookie attribute.
type Option func(c *Cookie)

func WithPath(path string) Option {
	return func(c *Cookie) { c.Path = path }
}

func WithDomain(domain string) Option {
	return func(c *Cookie) { c.Domain = domain }
}

func WithExpires(expires time.Time) Option {
	return func(c *Cookie) { c.Expires = expires }
}

func WithMaxAge(maxAge time.Duration) Option {
	return func(c *Cookie) { c.MaxAge = maxAge }
}

func WithSameSite(sameSite SameSite) Option {
	return func(c *Cookie) { c.SameSite = sameSite }
}

func WithSecure() Option {
	return func(c *Cookie) { c.Secure = true }
}

func WithHttpOnly() Option {
	return func(c *Cookie) { c.HttpOnly = true }
}
