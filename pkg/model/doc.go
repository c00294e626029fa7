// Package model defines the artifact specification consumed by the emitters:
// ordered FieldSpecs, the ArtifactSpec envelope with its GenerationOptions, and
// the GeneratedArtifact values returned to callers. Type tags are split into
// two closed enumerations, SchemaType for validation schemas and InputType for
// renderable form controls, with explicit mapping tables between the subset
// they share. Validation failures surface as ConfigurationError,
// UnsupportedFieldTypeError, or InconsistentNameError; each unwraps to a
// package sentinel so callers can branch with errors.Is.
package model
