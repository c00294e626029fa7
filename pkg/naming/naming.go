// Package naming derives identifiers, labels, and filenames from the raw
// artifact and field names supplied by callers. Every function is pure; the
// same input always yields the same output so generated artifacts can
// reference each other by recomputing nothing.
package naming

import (
	"path"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Filename suffixes, kept compatible with the files saved by earlier
// generator releases.
const (
	SuffixSchema        = "schema.ts"
	SuffixForm          = "form.tsx"
	SuffixServerActions = "server_actions.ts"
)

const (
	formSuffix   = "Form"
	actionSuffix = "Action"

	// SchemaIdentifier is the variable holding the shared form schema.
	SchemaIdentifier = "formSchema"
)

// ToLabel upper-cases the first rune of name. Empty input is returned as-is.
func ToLabel(name string) string {
	if name == "" {
		return name
	}
	r, size := utf8.DecodeRuneInString(name)
	if r == utf8.RuneError && size <= 1 {
		return name
	}
	return string(unicode.ToUpper(r)) + name[size:]
}

// ToComponentName returns the identifier used for an exported component or
// action. Names are used verbatim.
func ToComponentName(name string) string {
	return name
}

// FormComponentName appends the Form suffix unless name already carries it.
func FormComponentName(name string) string {
	component := ToComponentName(name)
	if strings.HasSuffix(component, formSuffix) {
		return component
	}
	return component + formSuffix
}

// FileStem lower-cases name for use as a filename prefix.
func FileStem(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// Filename joins the stem of name with suffix: "<stem>_<suffix>".
func Filename(name, suffix string) string {
	return FileStem(name) + "_" + suffix
}

// ModulePath converts a generated filename into the relative import
// specifier used by sibling modules ("./user_server_actions").
func ModulePath(filename string) string {
	base := path.Base(filename)
	if ext := path.Ext(base); ext != "" {
		base = strings.TrimSuffix(base, ext)
	}
	return "./" + base
}

// Pair carries every identifier shared by the two halves of a safe-action
// pair. It is computed once and handed to both emitters.
type Pair struct {
	Action       string
	ActionAlias  string
	Form         string
	Schema       string
	ActionFile   string
	FormFile     string
	ActionModule string
}

// PairNames derives the identifiers and filenames for a safe-action pair.
func PairNames(name string) Pair {
	action := ToComponentName(name)
	actionFile := Filename(name, SuffixServerActions)
	return Pair{
		Action:       action,
		ActionAlias:  action + actionSuffix,
		Form:         FormComponentName(name),
		Schema:       SchemaIdentifier,
		ActionFile:   actionFile,
		FormFile:     Filename(name, SuffixForm),
		ActionModule: ModulePath(actionFile),
	}
}
