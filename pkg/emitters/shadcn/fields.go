package shadcn

import (
	"errors"
	"fmt"
	"strings"

	"github.com/goliatone/go-zodform/pkg/model"
	"github.com/goliatone/go-zodform/pkg/render"
	"github.com/goliatone/go-zodform/pkg/render/writer"
)

// Blocks is the pre-rendered field markup of a form plus the controls it
// uses, so callers import only what they render.
type Blocks struct {
	Source   string
	Controls map[model.InputType]bool
}

// FieldBlocks renders one FormField per field, in order, indented by depth
// levels. Fields whose type has no control fail with
// UnsupportedFieldTypeError.
func FieldBlocks(fields []model.FieldSpec, depth int) (Blocks, error) {
	w := writer.New(writer.DefaultIndent)
	w.IndentBy(depth)
	controls := make(map[model.InputType]bool)

	for _, field := range fields {
		input, err := field.Type.InputType()
		if err != nil {
			var unsupported *model.UnsupportedFieldTypeError
			if errors.As(err, &unsupported) {
				return Blocks{}, &model.UnsupportedFieldTypeError{Field: field.Name, Type: field.Type, Target: "form input"}
			}
			return Blocks{}, err
		}
		controls[input] = true
		writeFieldBlock(w, field, input)
	}
	return Blocks{Source: w.String(), Controls: controls}, nil
}

func writeFieldBlock(w *writer.Writer, field model.FieldSpec, input model.InputType) {
	w.WriteLine("<FormField")
	w.Indent()
	w.WriteLine("control={form.control}")
	w.WriteLinef("name=%q", field.Name)
	w.WriteBlock("render={({ field }) => (", ")}", func() {
		w.WriteBlock("<FormItem>", "</FormItem>", func() {
			w.WriteLinef("<FormLabel>%s</FormLabel>", render.JSXText(field.LabelText()))
			writeControl(w, field, input)
			w.WriteLine("<FormMessage />")
		})
	})
	w.Dedent()
	w.WriteLine("/>")
}

func writeControl(w *writer.Writer, field model.FieldSpec, input model.InputType) {
	switch input {
	case model.InputTextarea:
		w.WriteBlock("<FormControl>", "</FormControl>", func() {
			w.WriteLine("<Textarea {...field} />")
		})
	case model.InputCheckbox:
		w.WriteBlock("<FormControl>", "</FormControl>", func() {
			w.WriteBlock("<Checkbox", "/>", func() {
				w.WriteLine("checked={field.value === 'on'}")
				w.WriteLine("onCheckedChange={(checked) => field.onChange(checked ? 'on' : '')}")
			})
		})
	case model.InputSelect:
		w.WriteBlock("<Select onValueChange={field.onChange} defaultValue={field.value}>", "</Select>", func() {
			w.WriteBlock("<FormControl>", "</FormControl>", func() {
				w.WriteBlock("<SelectTrigger>", "</SelectTrigger>", func() {
					w.WriteLinef("<SelectValue placeholder=\"%s\" />", render.JSXAttribute("Select "+strings.ToLower(field.LabelText())))
				})
			})
			w.WriteBlock("<SelectContent>", "</SelectContent>", func() {
				for _, option := range field.Options {
					w.WriteLinef("<SelectItem value=\"%s\">%s</SelectItem>", render.JSXAttribute(option), render.JSXText(option))
				}
			})
		})
	default:
		w.WriteBlock("<FormControl>", "</FormControl>", func() {
			w.WriteLinef("<Input type=\"%s\" {...field} />", input)
		})
	}
}

// ComponentImports returns the shadcn/ui import statements needed by a form
// rendering blocks, Button and Form first.
func ComponentImports(blocks Blocks, options render.Options) []string {
	imports := []string{
		importLine("Button", options.Component("button")),
		importGroup([]string{"Form", "FormControl", "FormField", "FormItem", "FormLabel", "FormMessage"}, options.Component("form")),
	}
	if blocks.uses(model.InputText, model.InputEmail, model.InputPassword, model.InputNumber, model.InputTel, model.InputDate) {
		imports = append(imports, importLine("Input", options.Component("input")))
	}
	if blocks.uses(model.InputTextarea) {
		imports = append(imports, importLine("Textarea", options.Component("textarea")))
	}
	if blocks.uses(model.InputCheckbox) {
		imports = append(imports, importLine("Checkbox", options.Component("checkbox")))
	}
	if blocks.uses(model.InputSelect) {
		imports = append(imports, importGroup([]string{"Select", "SelectContent", "SelectItem", "SelectTrigger", "SelectValue"}, options.Component("select")))
	}
	return imports
}

func (b Blocks) uses(inputs ...model.InputType) bool {
	for _, input := range inputs {
		if b.Controls[input] {
			return true
		}
	}
	return false
}

func importLine(name, module string) string {
	return fmt.Sprintf("import { %s } from %s", name, render.QuoteString(module))
}

func importGroup(names []string, module string) string {
	w := writer.New(writer.DefaultIndent)
	w.WriteBlock("import {", "} from "+render.QuoteString(module), func() {
		for _, name := range names {
			w.WriteLine(name + ",")
		}
	})
	return strings.TrimSuffix(w.String(), "\n")
}

// DefaultValues renders the defaultValues entries, one per field, indented
// by depth levels.
func DefaultValues(fields []model.FieldSpec, depth int) string {
	w := writer.New(writer.DefaultIndent)
	w.IndentBy(depth)
	for _, field := range fields {
		w.WriteLinef("%s: %s,", field.Name, field.DefaultLiteral())
	}
	return w.String()
}
