// Package web embeds the page templates, static assets and the default site
// content table.
package web

import (
	"embed"
	"io/fs"
)

//go:embed templates/*.html static content/site.yaml
var files embed.FS

const ContentFile = "content/site.yaml"

// Files exposes the whole embedded tree.
func Files() fs.FS {
	return files
}

// Static returns the assets served under /static.
func Static() fs.FS {
	sub, err := fs.Sub(files, "static")
	if err != nil {
		panic(err)
	}
	return sub
}
