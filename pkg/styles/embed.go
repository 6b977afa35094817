package styles

import (
	"embed"
	"io/fs"
)

//go:embed assets/*.css
var embeddedAssets embed.FS

// AssetsFS exposes the embedded stylesheet bundle so callers can serve the
// theme CSS over HTTP or copy it into their own asset pipeline.
func AssetsFS() fs.FS {
	sub, err := fs.Sub(embeddedAssets, "assets")
	if err != nil {
		return embeddedAssets
	}
	return sub
}

func embeddedStylesheet(name string) string {
	data, err := fs.ReadFile(embeddedAssets, "assets/"+name+".css")
	if err != nil {
		return ""
	}
	return string(data)
}
