package render

import "strings"

// DefaultComponentsPath is the import base for shadcn/ui components.
const DefaultComponentsPath = "@/components/ui"

// Options carries per-request settings that do not belong on the artifact
// spec itself.
type Options struct {
	// ComponentsPath is the module prefix used when importing shadcn/ui
	// components (Button, Input, Form, ...). Empty means
	// DefaultComponentsPath.
	ComponentsPath string
}

// Component returns the import specifier for a shadcn/ui component module.
func (o Options) Component(module string) string {
	base := strings.TrimRight(strings.TrimSpace(o.ComponentsPath), "/")
	if base == "" {
		base = DefaultComponentsPath
	}
	return base + "/" + module
}
