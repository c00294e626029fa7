package zodform

import (
	"fmt"
	"io/fs"

	"github.com/goliatone/go-zodform/pkg/emitters/action"
	"github.com/goliatone/go-zodform/pkg/emitters/safeaction"
	"github.com/goliatone/go-zodform/pkg/emitters/shadcn"
	"github.com/goliatone/go-zodform/pkg/emitters/zod"
	"github.com/goliatone/go-zodform/pkg/model"
)

// EmbeddedTemplates exposes the built-in skeleton templates for kind so
// callers can copy and customise them before passing them back through each
// emitter's WithTemplatesFS option.
func EmbeddedTemplates(kind model.ArtifactKind) (fs.FS, error) {
	switch kind {
	case model.KindSchema:
		return zod.TemplatesFS(), nil
	case model.KindForm:
		return shadcn.TemplatesFS(), nil
	case model.KindAction:
		return action.TemplatesFS(), nil
	case model.KindSafeActionPair:
		return safeaction.TemplatesFS(), nil
	default:
		return nil, fmt.Errorf("zodform: no templates for kind %q", kind)
	}
}
