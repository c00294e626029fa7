package model

// inputSchemaTypes is total over InputType.
var inputSchemaTypes = map[InputType]SchemaType{
	InputText:     SchemaString,
	InputEmail:    SchemaString,
	InputPassword: SchemaString,
	InputTel:      SchemaString,
	InputSelect:   SchemaString,
	InputTextarea: SchemaString,
	InputNumber:   SchemaNumber,
	InputCheckbox: SchemaBoolean,
	InputDate:     SchemaDate,
}

// schemaInputTypes covers the schema types that have a renderable control.
var schemaInputTypes = map[SchemaType]InputType{
	SchemaString:  InputText,
	SchemaNumber:  InputNumber,
	SchemaBoolean: InputCheckbox,
	SchemaDate:    InputDate,
}

var orderedSchemaTypes = []SchemaType{
	SchemaString, SchemaNumber, SchemaBoolean, SchemaDate, SchemaArray, SchemaObject, SchemaAny,
}

var orderedInputTypes = []InputType{
	InputText, InputEmail, InputPassword, InputNumber, InputTel, InputDate, InputCheckbox, InputSelect, InputTextarea,
}

// SchemaTypes lists every SchemaType in display order.
func SchemaTypes() []SchemaType {
	return append([]SchemaType(nil), orderedSchemaTypes...)
}

// InputTypes lists every InputType in display order.
func InputTypes() []InputType {
	return append([]InputType(nil), orderedInputTypes...)
}

// TypeTags lists every recognised tag: schema tags first, then the input tags
// that are not also schema tags.
func TypeTags() []TypeTag {
	tags := make([]TypeTag, 0, len(orderedSchemaTypes)+len(orderedInputTypes))
	seen := make(map[TypeTag]struct{}, cap(tags))
	for _, st := range orderedSchemaTypes {
		tags = append(tags, TypeTag(st))
		seen[TypeTag(st)] = struct{}{}
	}
	for _, it := range orderedInputTypes {
		if _, ok := seen[TypeTag(it)]; ok {
			continue
		}
		tags = append(tags, TypeTag(it))
	}
	return tags
}

// Valid reports whether t is a known schema type.
func (t SchemaType) Valid() bool {
	switch t {
	case SchemaString, SchemaNumber, SchemaBoolean, SchemaArray, SchemaObject, SchemaDate, SchemaAny:
		return true
	}
	return false
}

// Scalar reports whether t is neither array nor object.
func (t SchemaType) Scalar() bool {
	return t.Valid() && t != SchemaArray && t != SchemaObject
}

// InputType returns the default control for t. Array, object, and any have no
// control.
func (t SchemaType) InputType() (InputType, bool) {
	it, ok := schemaInputTypes[t]
	return it, ok
}

// Valid reports whether t is a known input type.
func (t InputType) Valid() bool {
	_, ok := inputSchemaTypes[t]
	return ok
}

// SchemaType returns the validator primitive backing the control.
func (t InputType) SchemaType() SchemaType {
	return inputSchemaTypes[t]
}

// Valid reports whether t resolves in either vocabulary.
func (t TypeTag) Valid() bool {
	return SchemaType(t).Valid() || InputType(t).Valid()
}

// SchemaType resolves t to a validator primitive. Input tags go through the
// input mapping table.
func (t TypeTag) SchemaType() (SchemaType, error) {
	if st := SchemaType(t); st.Valid() {
		return st, nil
	}
	if it := InputType(t); it.Valid() {
		return it.SchemaType(), nil
	}
	return "", &ConfigurationError{Field: "type", Reason: "unrecognised type tag " + quote(string(t))}
}

// InputType resolves t to a renderable control. Schema tags without a
// control report UnsupportedFieldTypeError.
func (t TypeTag) InputType() (InputType, error) {
	if it := InputType(t); it.Valid() {
		return it, nil
	}
	st := SchemaType(t)
	if !st.Valid() {
		return "", &ConfigurationError{Field: "type", Reason: "unrecognised type tag " + quote(string(t))}
	}
	if it, ok := st.InputType(); ok {
		return it, nil
	}
	return "", &UnsupportedFieldTypeError{Type: t, Target: "form input"}
}
