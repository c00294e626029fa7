package model

import (
	"fmt"
	"slices"
	"strings"

	"github.com/goliatone/go-zodform/pkg/naming"
)

// Module-scope identifiers each emitted file declares or imports itself. An
// artifact name that resolves to one of them would be declared twice.
var (
	formIdentifiers = sorted(
		"Button", "Checkbox", "Form", "FormControl", "FormField", "FormItem",
		"FormLabel", "FormMessage", "FormValues", "Input", "Select", "SelectContent",
		"SelectItem", "SelectTrigger", "SelectValue", "Textarea",
		naming.SchemaIdentifier, "useForm", "z", "zodResolver",
	)
	pairFormIdentifiers   = sorted(append(slices.Clone(formIdentifiers), "useAction", "useToast")...)
	pairActionIdentifiers = sorted("createSafeAction", naming.SchemaIdentifier, "z")
	actionIdentifiers     = sorted("inputSchema", "z")

	// Action parameters live in the function scope next to these.
	actionParamIdentifiers = sorted("console", "inputSchema", "validatedInput")
)

// GeneratedIdentifiers lists the identifiers emitted files of kind own at
// module scope. Artifact names may not resolve to any of them.
func GeneratedIdentifiers(kind ArtifactKind) []string {
	switch kind {
	case KindForm:
		return slices.Clone(formIdentifiers)
	case KindAction:
		return slices.Clone(actionIdentifiers)
	case KindSafeActionPair:
		return sorted(append(slices.Clone(pairFormIdentifiers), pairActionIdentifiers...)...)
	}
	return nil
}

// checkGeneratedNames rejects artifact names whose emitted identifiers clash
// with the ones the emitters declare. Schema names never reach the source.
func (s ArtifactSpec) checkGeneratedNames() error {
	switch s.Kind {
	case KindForm:
		return clash("name", naming.ToComponentName(s.Name), formIdentifiers)
	case KindAction:
		return clash("name", s.Name, actionIdentifiers)
	case KindSafeActionPair:
		pair := naming.PairNames(s.Name)
		if err := clash("name", pair.Action, pairActionIdentifiers); err != nil {
			return err
		}
		return clash("name", pair.Form, pairFormIdentifiers)
	}
	return nil
}

func clash(label, name string, owned []string) error {
	if _, found := slices.BinarySearch(owned, name); !found {
		return nil
	}
	return &ConfigurationError{
		Field:  label,
		Reason: fmt.Sprintf("%s clashes with a generated identifier (%s)", quote(name), strings.Join(owned, ", ")),
	}
}

func sorted(names ...string) []string {
	out := slices.Clone(names)
	slices.Sort(out)
	return slices.Compact(out)
}
