package zod

import (
	"embed"
	"io/fs"
)

//go:embed templates/*.tmpl
var embeddedTemplates embed.FS

// TemplatesFS exposes the embedded schema skeleton.
func TemplatesFS() fs.FS {
	return embeddedTemplates
}
