package specfile

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"gopkg.in/yaml.v3"
)

// Format identifies a document encoding.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
	FormatCUE  Format = "cue"
)

//go:embed schema.cue
var cueSchema string

// FormatFor picks the format from the file extension.
func FormatFor(name string) (Format, error) {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".json":
		return FormatJSON, nil
	case ".cue":
		return FormatCUE, nil
	default:
		return "", fmt.Errorf("specfile: unsupported extension for %q", name)
	}
}

// IsSpecFile reports whether name has a recognised extension.
func IsSpecFile(name string) bool {
	_, err := FormatFor(name)
	return err == nil
}

// Load reads and decodes the document at path.
func Load(path string) (File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return File{}, fmt.Errorf("specfile: read %s: %w", path, err)
	}
	return Parse(path, data)
}

// LoadFS reads and decodes name from fsys.
func LoadFS(fsys fs.FS, name string) (File, error) {
	if fsys == nil {
		return File{}, errors.New("specfile: filesystem is nil")
	}
	data, err := fs.ReadFile(fsys, name)
	if err != nil {
		return File{}, fmt.Errorf("specfile: read %s: %w", name, err)
	}
	return Parse(name, data)
}

// Parse decodes data using the format implied by name.
func Parse(name string, data []byte) (File, error) {
	format, err := FormatFor(name)
	if err != nil {
		return File{}, err
	}
	return Decode(format, name, data)
}

// Decode decodes data as format. Unknown keys are rejected in every format.
func Decode(format Format, name string, data []byte) (File, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return File{}, ErrEmptyDocument
	}

	var (
		file File
		err  error
	)
	switch format {
	case FormatYAML:
		err = decodeYAML(data, &file)
	case FormatJSON:
		err = decodeJSON(data, &file)
	case FormatCUE:
		err = decodeCUE(name, data, &file)
	default:
		err = fmt.Errorf("unsupported format %q", format)
	}
	if err != nil {
		return File{}, fmt.Errorf("specfile: decode %s: %w", name, err)
	}
	if err := file.validate(); err != nil {
		return File{}, err
	}
	return file, nil
}

func decodeYAML(data []byte, file *File) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(file); err != nil {
		if errors.Is(err, io.EOF) {
			return ErrEmptyDocument
		}
		return err
	}
	return nil
}

func decodeJSON(data []byte, file *File) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	return dec.Decode(file)
}

// decodeCUE unifies the document with the #File definition so structural
// mistakes surface as CUE errors with positions.
func decodeCUE(name string, data []byte, file *File) error {
	ctx := cuecontext.New()

	schema := ctx.CompileString(cueSchema, cue.Filename("schema.cue"))
	if err := schema.Err(); err != nil {
		return fmt.Errorf("compile schema: %w", err)
	}
	doc := ctx.CompileBytes(data, cue.Filename(name))
	if err := doc.Err(); err != nil {
		return err
	}

	value := schema.LookupPath(cue.ParsePath("#File")).Unify(doc)
	if err := value.Validate(cue.Concrete(true)); err != nil {
		return err
	}
	return value.Decode(file)
}
