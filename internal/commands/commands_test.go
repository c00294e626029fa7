package commands

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goliatone/go-zodform/internal/config"
	"github.com/goliatone/go-zodform/pkg/model"
	pkgopenapi "github.com/goliatone/go-zodform/pkg/openapi"
	"github.com/goliatone/go-zodform/pkg/output"
	"github.com/goliatone/go-zodform/pkg/prompt"
)

const batchYAML = `version: 1
outputDir: generated
artifacts:
  - kind: schema
    name: User
    fields:
      - {name: email, type: string}
  - kind: safe-action-pair
    name: createUser
    fields:
      - {name: email, type: email}
`

func newTestController(t *testing.T) (*Controller, *bytes.Buffer) {
	t.Helper()
	var out bytes.Buffer
	return &Controller{Config: config.Default(), Logger: zerolog.Nop(), Out: &out}, &out
}

func boolPtr(v bool) *bool { return &v }

func TestParseField(t *testing.T) {
	tests := []struct {
		raw     string
		want    model.FieldSpec
		wantErr bool
	}{
		{raw: "email:string", want: model.FieldSpec{Name: "email", Type: model.TypeString}},
		{raw: " age : Number ", want: model.FieldSpec{Name: "age", Type: model.TypeNumber}},
		{raw: "topic:select:sales| support||", want: model.FieldSpec{Name: "topic", Type: model.TypeSelect, Options: []string{"sales", "support"}}},
		{raw: "email", wantErr: true},
		{raw: ":string", wantErr: true},
		{raw: "email:", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, err := ParseField(tt.raw)
			if tt.wantErr {
				assert.ErrorIs(t, err, model.ErrConfiguration)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestKind_Stdout(t *testing.T) {
	c, out := newTestController(t)
	err := c.Kind(context.Background(), KindOptions{
		Kind:   model.KindSchema,
		Name:   "User",
		Fields: []string{"email:string", "age:number"},
	})
	require.NoError(t, err)
	assert.Contains(t, out.String(), "// user_schema.ts\n")
	assert.Contains(t, out.String(), "age: z.number(),")
}

func TestKind_Options(t *testing.T) {
	c, out := newTestController(t)
	err := c.Kind(context.Background(), KindOptions{
		Kind:          model.KindAction,
		Name:          "submitForm",
		Fields:        []string{"x:string"},
		UseValidation: boolPtr(false),
		TypedParams:   boolPtr(false),
		Method:        "put",
	})
	require.NoError(t, err)
	assert.Contains(t, out.String(), "export async function submitForm(x) {")
	assert.NotContains(t, out.String(), "from 'zod'")

	out.Reset()
	err = c.Kind(context.Background(), KindOptions{Kind: model.KindSchema, Name: "Tags", SchemaType: "array", ArrayItemType: "string"})
	require.NoError(t, err)
	assert.Contains(t, out.String(), "z.array(z.string())")

	out.Reset()
	err = c.Kind(context.Background(), KindOptions{
		Kind:           model.KindForm,
		Name:           "ContactForm",
		Fields:         []string{"name:text"},
		ComponentsPath: "~/ui",
	})
	require.NoError(t, err)
	assert.Contains(t, out.String(), "from '~/ui/input'")
}

func TestKind_Errors(t *testing.T) {
	c, _ := newTestController(t)
	cases := map[string]KindOptions{
		"bad field":      {Kind: model.KindSchema, Name: "User", Fields: []string{"email"}},
		"bad method":     {Kind: model.KindAction, Name: "go", Fields: []string{"x:string"}, Method: "PATCH"},
		"item on object": {Kind: model.KindSchema, Name: "User", Fields: []string{"x:string"}, ArrayItemType: "string"},
		"no fields":      {Kind: model.KindForm, Name: "ContactForm"},
		"missing preset": {Kind: model.KindForm, Name: "ContactForm", Fields: []string{"x:text"}, Preset: filepath.Join(t.TempDir(), "nope.yaml")},
	}
	for name, opts := range cases {
		t.Run(name, func(t *testing.T) {
			assert.Error(t, c.Kind(context.Background(), opts))
		})
	}

	err := c.Kind(context.Background(), KindOptions{Kind: model.KindForm, Name: "ContactForm", Fields: []string{"tags:array"}})
	assert.ErrorIs(t, err, model.ErrUnsupportedFieldType)
}

func TestKind_WritesFiles(t *testing.T) {
	c, out := newTestController(t)
	dir := filepath.Join(t.TempDir(), "src")
	opts := KindOptions{
		Kind:   model.KindSafeActionPair,
		Name:   "createUser",
		Fields: []string{"email:email"},
		Output: OutputOptions{Dir: dir},
	}
	require.NoError(t, c.Kind(context.Background(), opts))
	assert.FileExists(t, filepath.Join(dir, "createuser_server_actions.ts"))
	assert.FileExists(t, filepath.Join(dir, "createuser_form.tsx"))
	assert.Contains(t, out.String(), filepath.Join(dir, "createuser_form.tsx"))

	err := c.Kind(context.Background(), opts)
	assert.ErrorIs(t, err, output.ErrExists)

	opts.Output.Overwrite = true
	assert.NoError(t, c.Kind(context.Background(), opts))
}

func TestKind_Preset(t *testing.T) {
	c, out := newTestController(t)
	preset := filepath.Join(t.TempDir(), "preset.yaml")
	require.NoError(t, os.WriteFile(preset, []byte("fields:\n  topic:\n    type: select\n    options: [sales, support]\n"), 0o644))

	err := c.Kind(context.Background(), KindOptions{
		Kind:   model.KindForm,
		Name:   "ContactForm",
		Fields: []string{"topic:text"},
		Preset: preset,
	})
	require.NoError(t, err)
	assert.Contains(t, out.String(), `<SelectItem value="support">support</SelectItem>`)
}

func TestGenerate(t *testing.T) {
	c, out := newTestController(t)
	dir := t.TempDir()
	path := filepath.Join(dir, "zodform.yaml")
	require.NoError(t, os.WriteFile(path, []byte(batchYAML), 0o644))

	require.NoError(t, c.Generate(context.Background(), path, GenerateOptions{}))
	for _, name := range []string{"user_schema.ts", "createuser_server_actions.ts", "createuser_form.tsx"} {
		assert.FileExists(t, filepath.Join(dir, "generated", name))
	}

	custom := filepath.Join(t.TempDir(), "custom")
	require.NoError(t, c.Generate(context.Background(), path, GenerateOptions{Dir: custom}))
	assert.FileExists(t, filepath.Join(custom, "user_schema.ts"))

	out.Reset()
	require.NoError(t, c.Generate(context.Background(), path, GenerateOptions{Stdout: true, ComponentsPath: "~/ui"}))
	assert.Contains(t, out.String(), "// createuser_form.tsx\n")
	assert.Contains(t, out.String(), "from '~/ui/form'")

	assert.Error(t, c.Generate(context.Background(), filepath.Join(dir, "missing.yaml"), GenerateOptions{}))
}

type scriptedDriver struct {
	inputs  []string
	selects []int
	confirm []bool
	infos   []string
}

func (d *scriptedDriver) Input(_ context.Context, cfg prompt.InputConfig) (string, error) {
	if len(d.inputs) == 0 {
		return "", errors.New("no input scripted")
	}
	val := d.inputs[0]
	d.inputs = d.inputs[1:]
	if val == "" {
		val = cfg.Default
	}
	return val, nil
}

func (d *scriptedDriver) Confirm(context.Context, prompt.ConfirmConfig) (bool, error) {
	if len(d.confirm) == 0 {
		return false, errors.New("no confirm scripted")
	}
	val := d.confirm[0]
	d.confirm = d.confirm[1:]
	return val, nil
}

func (d *scriptedDriver) Select(context.Context, prompt.SelectConfig) (int, error) {
	if len(d.selects) == 0 {
		return -1, errors.New("no select scripted")
	}
	val := d.selects[0]
	d.selects = d.selects[1:]
	return val, nil
}

func (d *scriptedDriver) Info(_ context.Context, msg string) error {
	d.infos = append(d.infos, msg)
	return nil
}

func TestInteractive_PrintsAndSaves(t *testing.T) {
	c, out := newTestController(t)
	dir := filepath.Join(t.TempDir(), "saved")
	c.Driver = &scriptedDriver{
		// generator menu, root type, field type
		selects: []int{0, 0, 0},
		inputs:  []string{"User", "1", "email", dir},
		confirm: []bool{true},
	}

	require.NoError(t, c.Interactive(context.Background(), InteractiveOptions{}))
	assert.Contains(t, out.String(), "// user_schema.ts\n")
	assert.FileExists(t, filepath.Join(dir, "user_schema.ts"))
	assert.Equal(t, []string{"Saved to " + dir}, c.Driver.(*scriptedDriver).infos)
}

func TestInteractive_KindWithoutSaving(t *testing.T) {
	c, out := newTestController(t)
	c.Driver = &scriptedDriver{
		selects: []int{0},
		inputs:  []string{"", "1", "name"},
		confirm: []bool{true, false},
	}

	require.NoError(t, c.Interactive(context.Background(), InteractiveOptions{Kind: model.KindForm}))
	assert.Contains(t, out.String(), "// contactform_form.tsx\n")
}

func TestOpenAPI(t *testing.T) {
	c, out := newTestController(t)
	source := filepath.Join("..", "..", "testdata", "openapi.yaml")

	require.NoError(t, c.OpenAPI(context.Background(), OpenAPIOptions{Source: source}))
	assert.Contains(t, out.String(), "createUser")
	assert.Contains(t, out.String(), "POST /users")
	assert.Contains(t, out.String(), "listUsers")

	out.Reset()
	require.NoError(t, c.OpenAPI(context.Background(), OpenAPIOptions{
		Source:      source,
		OperationID: "createUser",
		Kind:        model.KindSchema,
		Name:        "NewUser",
	}))
	assert.Contains(t, out.String(), "// newuser_schema.ts\n")
	assert.Contains(t, out.String(), "email: z.string(),")

	err := c.OpenAPI(context.Background(), OpenAPIOptions{Source: source, MaxDocumentBytes: 16})
	assert.ErrorIs(t, err, pkgopenapi.ErrDocumentTooLarge)

	assert.Error(t, c.OpenAPI(context.Background(), OpenAPIOptions{Source: source, OperationID: "missing"}))
	assert.Error(t, c.OpenAPI(context.Background(), OpenAPIOptions{}))
}

func TestWatch_InitialGenerationAndCancel(t *testing.T) {
	c, _ := newTestController(t)
	dir := t.TempDir()
	path := filepath.Join(dir, "zodform.yaml")
	require.NoError(t, os.WriteFile(path, []byte(batchYAML), 0o644))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- c.Watch(ctx, []string{path}, WatchOptions{Debounce: 10 * time.Millisecond})
	}()

	target := filepath.Join(dir, "generated", "user_schema.ts")
	require.Eventually(t, func() bool {
		_, err := os.Stat(target)
		return err == nil
	}, 3*time.Second, 20*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(3 * time.Second):
		t.Fatal("watch did not stop")
	}

	assert.Error(t, c.Watch(context.Background(), nil, WatchOptions{}))
}
