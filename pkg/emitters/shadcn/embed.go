package shadcn

import (
	"embed"
	"io/fs"
)

//go:embed templates/*.tmpl
var embeddedTemplates embed.FS

// TemplatesFS exposes the embedded form skeleton.
func TemplatesFS() fs.FS {
	return embeddedTemplates
}
