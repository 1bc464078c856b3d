package web

import (
	"html/template"
	"strings"
)

// icons maps content icon names to the glyph shown in the badge
var icons = map[string]string{
	"activity": "∿",
	"hand":     "✋",
	"heart":    "♥",
	"sparkles": "✦",
	"check":    "✓",
}

var funcs = template.FuncMap{
	// trustedURL marks server-built links (tel:, mailto:, wa.me) as safe;
	// html/template would otherwise neutralise the tel: scheme.
	"trustedURL": func(s string) template.URL {
		return template.URL(s)
	},
	"icon": func(name string) string {
		if glyph, ok := icons[strings.ToLower(name)]; ok {
			return glyph
		}
		return "•"
	},
}

// Templates parses the page and error templates.
func Templates() (*template.Template, error) {
	return template.New("").Funcs(funcs).ParseFS(files, "templates/*.html")
}
