package action

import (
	"embed"
	"io/fs"
)

//go:embed templates/*.tmpl
var embeddedTemplates embed.FS

// TemplatesFS exposes the embedded server action skeleton.
func TemplatesFS() fs.FS {
	return embeddedTemplates
}
