package model

// Builder accumulates an ArtifactSpec. It is a value type: every method
// returns a new Builder and leaves the receiver untouched, so partially built
// specs can be shared and extended independently.
type Builder struct {
	spec ArtifactSpec
}

// NewBuilder starts a spec with DefaultOptions.
func NewBuilder(kind ArtifactKind, name string) Builder {
	return Builder{spec: ArtifactSpec{
		Kind:    kind,
		Name:    name,
		Options: DefaultOptions(),
	}}
}

// FromSpec starts a builder from an existing spec.
func FromSpec(spec ArtifactSpec) Builder {
	return Builder{spec: spec.Clone()}
}

// Kind replaces the artifact kind.
func (b Builder) Kind(kind ArtifactKind) Builder {
	next := b.fork()
	next.spec.Kind = kind
	return next
}

// Name replaces the artifact name.
func (b Builder) Name(name string) Builder {
	next := b.fork()
	next.spec.Name = name
	return next
}

// Field appends a field with the given name and tag.
func (b Builder) Field(name string, tag TypeTag) Builder {
	return b.Fields(FieldSpec{Name: name, Type: tag})
}

// Select appends a select field with options.
func (b Builder) Select(name string, options ...string) Builder {
	return b.Fields(FieldSpec{Name: name, Type: TypeSelect, Options: options})
}

// Fields appends fields in order.
func (b Builder) Fields(fields ...FieldSpec) Builder {
	next := b.fork()
	for _, field := range fields {
		next.spec.Fields = append(next.spec.Fields, field.clone())
	}
	return next
}

// Validation toggles schema generation.
func (b Builder) Validation(enabled bool) Builder {
	next := b.fork()
	next.spec.Options.UseValidation = enabled
	return next
}

// Method sets the documented HTTP method for actions.
func (b Builder) Method(method HTTPMethod) Builder {
	next := b.fork()
	next.spec.Options.HTTPMethod = method
	return next
}

// TypedParams toggles parameter type annotations for actions.
func (b Builder) TypedParams(enabled bool) Builder {
	next := b.fork()
	next.spec.Options.TypedParams = enabled
	return next
}

// ArrayOf turns a schema spec into an array of item.
func (b Builder) ArrayOf(item SchemaType) Builder {
	next := b.fork()
	next.spec.Options.SchemaType = SchemaArray
	next.spec.Options.ArrayItemType = item
	return next
}

// Scalar turns a schema spec into a bare scalar schema.
func (b Builder) Scalar(schemaType SchemaType) Builder {
	next := b.fork()
	next.spec.Options.SchemaType = schemaType
	next.spec.Options.ArrayItemType = ""
	return next
}

// Options replaces every generation option.
func (b Builder) Options(options GenerationOptions) Builder {
	next := b.fork()
	next.spec.Options = options
	return next
}

// Spec returns a copy of the accumulated spec without validating it.
func (b Builder) Spec() ArtifactSpec {
	return b.spec.Clone()
}

// Build normalises and validates the accumulated spec.
func (b Builder) Build() (ArtifactSpec, error) {
	spec := b.spec.Normalize()
	if err := spec.Validate(); err != nil {
		return ArtifactSpec{}, err
	}
	return spec, nil
}

func (b Builder) fork() Builder {
	return Builder{spec: b.spec.Clone()}
}
