// Package config loads CLI defaults from .zodform.yaml and ZODFORM_*
// environment variables.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-zodform/pkg/model"
	"github.com/goliatone/go-zodform/pkg/render"
)

// FileName is the config file looked up in the working directory and its
// parents.
const FileName = ".zodform.yaml"

const envPrefix = "ZODFORM_"

// Config holds the defaults shared by every command.
type Config struct {
	// OutputDir is where generated files are written.
	OutputDir string `yaml:"outputDir"`
	// Overwrite replaces existing files instead of failing.
	Overwrite bool `yaml:"overwrite"`

	UseValidation  bool   `yaml:"useValidation"`
	TypedParams    bool   `yaml:"typedParams"`
	HTTPMethod     string `yaml:"httpMethod"`
	ComponentsPath string `yaml:"componentsPath"`

	// ServerAddr is the listen address for `zodform serve`.
	ServerAddr string `yaml:"serverAddr"`
	LogLevel   string `yaml:"logLevel"`
}

// Default returns the built-in configuration.
func Default() Config {
	options := model.DefaultOptions()
	return Config{
		OutputDir:      ".",
		UseValidation:  options.UseValidation,
		TypedParams:    options.TypedParams,
		HTTPMethod:     string(options.HTTPMethod),
		ComponentsPath: render.DefaultComponentsPath,
		ServerAddr:     ":8080",
		LogLevel:       "info",
	}
}

// Load searches for FileName from dir upwards. When no file exists the
// defaults are used. Environment overrides are applied in both cases. The
// returned path is empty when no file was found.
func Load(dir string) (Config, string, error) {
	path, err := find(dir)
	if err != nil {
		return Config{}, "", err
	}
	if path == "" {
		cfg, err := finish(Default())
		return cfg, "", err
	}
	cfg, err := LoadFromPath(path)
	return cfg, path, err
}

// LoadFromPath reads the config file at path.
func LoadFromPath(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return Config{}, fmt.Errorf("config: %s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes data over the defaults and applies environment overrides.
// Unknown keys are rejected.
func Parse(data []byte) (Config, error) {
	cfg := Default()
	if len(bytes.TrimSpace(data)) > 0 {
		decoder := yaml.NewDecoder(bytes.NewReader(data))
		decoder.KnownFields(true)
		if err := decoder.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
			return Config{}, fmt.Errorf("decode: %w", err)
		}
	}
	return finish(cfg)
}

// Options converts the generation defaults into model options.
func (c Config) Options() model.GenerationOptions {
	options := model.DefaultOptions()
	options.UseValidation = c.UseValidation
	options.TypedParams = c.TypedParams
	options.HTTPMethod = model.HTTPMethod(strings.ToUpper(c.HTTPMethod))
	return options
}

// RenderOptions returns the render options for the configured components path.
func (c Config) RenderOptions() render.Options {
	return render.Options{ComponentsPath: c.ComponentsPath}
}

// Level parses LogLevel.
func (c Config) Level() (zerolog.Level, error) {
	return zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(c.LogLevel)))
}

func (c Config) validate() error {
	if _, err := model.ParseHTTPMethod(c.HTTPMethod); err != nil {
		return err
	}
	if _, err := c.Level(); err != nil {
		return fmt.Errorf("logLevel: %w", err)
	}
	if strings.TrimSpace(c.OutputDir) == "" {
		return errors.New("outputDir must not be empty")
	}
	return nil
}

func finish(cfg Config) (Config, error) {
	if err := applyEnv(&cfg); err != nil {
		return Config{}, err
	}
	if err := cfg.validate(); err != nil {
		return Config{}, fmt.Errorf("config: %w", err)
	}
	return cfg, nil
}

func applyEnv(cfg *Config) error {
	cfg.OutputDir = envOr("OUTPUT_DIR", cfg.OutputDir)
	cfg.HTTPMethod = envOr("HTTP_METHOD", cfg.HTTPMethod)
	cfg.ComponentsPath = envOr("COMPONENTS_PATH", cfg.ComponentsPath)
	cfg.ServerAddr = envOr("SERVER_ADDR", cfg.ServerAddr)
	cfg.LogLevel = envOr("LOG_LEVEL", cfg.LogLevel)

	var err error
	if cfg.Overwrite, err = envBool("OVERWRITE", cfg.Overwrite); err != nil {
		return err
	}
	if cfg.UseValidation, err = envBool("USE_VALIDATION", cfg.UseValidation); err != nil {
		return err
	}
	if cfg.TypedParams, err = envBool("TYPED_PARAMS", cfg.TypedParams); err != nil {
		return err
	}
	return nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(envPrefix + key); v != "" {
		return v
	}
	return fallback
}

func envBool(key string, fallback bool) (bool, error) {
	v := os.Getenv(envPrefix + key)
	if v == "" {
		return fallback, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, fmt.Errorf("config: %s%s: %w", envPrefix, key, err)
	}
	return b, nil
}

func find(start string) (string, error) {
	dir, err := filepath.Abs(start)
	if err != nil {
		return "", fmt.Errorf("config: resolve %s: %w", start, err)
	}
	for {
		candidate := filepath.Join(dir, FileName)
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			return candidate, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", nil
		}
		dir = parent
	}
}
