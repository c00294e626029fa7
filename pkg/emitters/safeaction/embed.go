package safeaction

import (
	"embed"
	"io/fs"
)

//go:embed templates/*.tmpl
var embeddedTemplates embed.FS

// TemplatesFS exposes the embedded action and form skeletons.
func TemplatesFS() fs.FS {
	return embeddedTemplates
}
