package render

import (
	"embed"
	"io/fs"
)

//go:embed templates/*.tpl templates/partials/*.tpl
var embeddedTemplates embed.FS

//go:embed assets/css/*.css assets/js/*.js
var embeddedAssets embed.FS

// TemplatesFS exposes the embedded page templates rooted at the templates
// directory, so names look like "home.tpl" or "partials/cta.tpl".
func TemplatesFS() fs.FS {
	sub, err := fs.Sub(embeddedTemplates, "templates")
	if err != nil {
		return embeddedTemplates
	}
	return sub
}

// AssetsFS exposes the stylesheets and the browser script served under
// theme.AssetPrefix.
func AssetsFS() fs.FS {
	sub, err := fs.Sub(embeddedAssets, "assets")
	if err != nil {
		return embeddedAssets
	}
	return sub
}
