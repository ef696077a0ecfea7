package mime

import (
	"github.com/indigo-web/miniexpress/internal/strutil"
	"github.com/indigo-web/utils/strcomp"
)

type MIME = string

const (
	OctetStream    MIME = "application/octet-stream"
	Plain          MIME = "text/plain"
	HTML           MIME = "text/html"
	CSS            MIME = "text/css"
	JavaScript     MIME = "application/javascript"
	JSON           MIME = "application/json"
	FormUrlencoded MIME = "application/x-www-form-urlencoded"
	XML            MIME = "text/xml"
	PDF            MIME = "application/pdf"
	JPEG           MIME = "image/jpeg"
	GIF            MIME = "image/gif"
	PNG            MIME = "image/png"
	SVG            MIME = "image/svg+xml"
	ICO            MIME = "image/vnd.microsoft.icon"
)

// Complies returns whether the header value (parameters are ignored) denotes the MIME.
// Empty value complies with nothing.
func Complies(mime MIME, with string) bool {
	with, _ = strutil.CutHeader(with)
	return len(with) > 0 && strcomp.EqualFold(with, mime)
}
