package site

import (
	"embed"
	"io/fs"
)

// ContentFile is the document Load reads from the filesystem root.
const ContentFile = "site.yaml"

//go:embed content/*
var embeddedContent embed.FS

// EmbeddedFS returns the bundled content. Pass it to Load for the defaults.
func EmbeddedFS() fs.FS {
	sub, err := fs.Sub(embeddedContent, "content")
	if err != nil {
		panic(err)
	}
	return sub
}
