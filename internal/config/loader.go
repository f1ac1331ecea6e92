package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// EnvPrefix is the prefix of environment overrides.
const EnvPrefix = "KEYSCRIBE_"

// Load reads defaults, then the file at path (if non-empty), then the
// process environment, and validates the result.
func Load(path string) (*Config, error) {
	return LoadWithEnv(path, os.Environ())
}

// LoadWithEnv is Load with an explicit environment in "KEY=value" form.
func LoadWithEnv(path string, environ []string) (*Config, error) {
	cfg := Default()

	if path != "" {
		if err := cfg.LoadFile(path); err != nil {
			return nil, err
		}
	}
	if err := cfg.ApplyEnv(environ); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadFile decodes the file at path over the current values. The format
// is chosen by extension: .toml, .yaml or .yml. Unknown keys are errors.
func (c *Config) LoadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading config file %s: %w", path, err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return c.decodeTOML(path, data)
	case ".yaml", ".yml":
		return c.decodeYAML(path, data)
	default:
		return fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)
	}
}

func (c *Config) decodeTOML(path string, data []byte) error {
	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(c); err != nil {
		perr := &ParseError{Path: path, Message: err.Error(), Err: err}

		var derr *toml.DecodeError
		var serr *toml.StrictMissingError
		switch {
		case errors.As(err, &derr):
			perr.Line, perr.Column = derr.Position()
		case errors.As(err, &serr) && len(serr.Errors) > 0:
			perr.Line, perr.Column = serr.Errors[0].Position()
			perr.Message = "unknown setting " + strings.Join(serr.Errors[0].Key(), ".")
		}
		return perr
	}
	return nil
}

func (c *Config) decodeYAML(path string, data []byte) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(c); err != nil {
		// An empty document is not an error.
		if errors.Is(err, io.EOF) {
			return nil
		}
		return &ParseError{Path: path, Message: err.Error(), Err: err}
	}
	return nil
}

// ApplyEnv applies KEYSCRIBE_* entries from environ. KEYSCRIBE_LOG_FEED_CAPACITY
// maps to log.feed_capacity: the first segment is the section, the rest is
// the setting name. Unknown names are ignored.
func (c *Config) ApplyEnv(environ []string) error {
	for _, entry := range environ {
		name, value, ok := strings.Cut(entry, "=")
		if !ok || !strings.HasPrefix(name, EnvPrefix) {
			continue
		}
		path, ok := envToPath(name)
		if !ok {
			continue
		}
		if err := c.Set(path, value); err != nil {
			if errors.Is(err, ErrUnknownSetting) {
				continue
			}
			return fmt.Errorf("environment %s: %w", name, err)
		}
	}
	return nil
}

// envToPath converts KEYSCRIBE_CHORD_TIMEOUT to chord.timeout.
func envToPath(env string) (string, bool) {
	name := strings.ToLower(strings.TrimPrefix(env, EnvPrefix))
	section, setting, ok := strings.Cut(name, "_")
	if !ok || section == "" || setting == "" {
		return "", false
	}
	return section + "." + setting, true
}
