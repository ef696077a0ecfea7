package mime

import (
	"path/filepath"
	"strings"
)

// Extension is the fixed table used to pick a Content-Type for served files. There is
// no content sniffing: anything unlisted is served as OctetStream.
var Extension = map[string]MIME{
	".txt":  Plain,
	".htm":  HTML,
	".html": HTML,
	".css":  CSS,
	".js":   JavaScript,
	".json": JSON,
	".xml":  XML,
	".pdf":  PDF,
	".jpg":  JPEG,
	".jpeg": JPEG,
	".gif":  GIF,
	".png":  PNG,
	".svg":  SVG,
	".ico":  ICO,
}

// ByFilename returns the MIME corresponding to the file extension, or OctetStream.
func ByFilename(name string) MIME {
	if m, found := Extension[strings.ToLower(filepath.Ext(name))]; found {
		return m
	}

	return OctetStream
}
