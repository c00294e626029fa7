package model

import (
	"errors"
	"fmt"
	"strconv"
)

var (
	// ErrConfiguration marks invalid artifact specs: bad names, missing fields,
	// unknown tags, or unknown options.
	ErrConfiguration = errors.New("model: invalid configuration")
	// ErrUnsupportedFieldType marks a field whose type has no rendering in the
	// requested artifact.
	ErrUnsupportedFieldType = errors.New("model: unsupported field type")
	// ErrInconsistentName marks a generated pair whose halves disagree on the
	// shared identifier.
	ErrInconsistentName = errors.New("model: inconsistent name")
)

// ConfigurationError describes an invalid ArtifactSpec.
type ConfigurationError struct {
	Field  string
	Reason string
}

func (e *ConfigurationError) Error() string {
	if e.Field == "" {
		return "model: configuration: " + e.Reason
	}
	return fmt.Sprintf("model: configuration: %s: %s", e.Field, e.Reason)
}

func (e *ConfigurationError) Unwrap() error { return ErrConfiguration }

// UnsupportedFieldTypeError reports a field that the target artifact cannot
// render.
type UnsupportedFieldTypeError struct {
	Field  string
	Type   TypeTag
	Target string
}

func (e *UnsupportedFieldTypeError) Error() string {
	target := e.Target
	if target == "" {
		target = "artifact"
	}
	if e.Field == "" {
		return fmt.Sprintf("model: type %q has no %s mapping", e.Type, target)
	}
	return fmt.Sprintf("model: field %q: type %q has no %s mapping", e.Field, e.Type, target)
}

func (e *UnsupportedFieldTypeError) Unwrap() error { return ErrUnsupportedFieldType }

// InconsistentNameError reports that the identifier imported by one half of a
// pair differs from the identifier exported by the other.
type InconsistentNameError struct {
	Imported string
	Exported string
}

func (e *InconsistentNameError) Error() string {
	return fmt.Sprintf("model: imported identifier %q does not match exported %q", e.Imported, e.Exported)
}

func (e *InconsistentNameError) Unwrap() error { return ErrInconsistentName }

func quote(s string) string {
	return strconv.Quote(s)
}
