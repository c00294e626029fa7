package template

import (
	"io"
)

// TemplateRenderer renders a named skeleton. Emitters depend on this seam
// rather than on pongo2 directly, so callers can inject their own engine.
type TemplateRenderer interface {
	RenderTemplate(name string, data any, out ...io.Writer) (string, error)
}
