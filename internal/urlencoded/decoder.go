package urlencoded

import (
	"strings"

	"github.com/cockroachdb/errors"
)

var ErrBadEncoding = errors.New("invalid urlencoded sequence")

// halfbyte maps hex characters into their values. Everything else is 0xff.
var halfbyte = func() (table [256]byte) {
	for i := range table {
		table[i] = 0xff
	}

	for c := byte('0'); c <= '9'; c++ {
		table[c] = c - '0'
	}

	for c := byte('a'); c <= 'f'; c++ {
		table[c] = c - 'a' + 0xa
		table[c-0x20] = c - 'a' + 0xa
	}

	return table
}()

// Decode decodes percent-encoded sequences and pluses (as spaces). In case there's nothing
// to decode, the source is returned as is.
func Decode(src string) (string, error) {
	if strings.IndexByte(src, '%') == -1 && strings.IndexByte(src, '+') == -1 {
		return src, nil
	}

	dst := make([]byte, 0, len(src))

	for i := 0; i < len(src); i++ {
		switch c := src[i]; c {
		case '+':
			dst = append(dst, ' ')
		case '%':
			if len(src)-i < 3 {
				return "", ErrBadEncoding
			}

			a, b := halfbyte[src[i+1]], halfbyte[src[i+2]]
			if a|b > 0x0f {
				return "", ErrBadEncoding
			}

			dst = append(dst, a<<4|b)
			i += 2
		default:
			dst = append(dst, c)
		}
	}

	return string(dst), nil
}
