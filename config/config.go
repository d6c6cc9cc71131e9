// Package config loads generation options from a YAML file.
package config

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/Unoqwy/flutter-rust-bridge/dart"
	"github.com/Unoqwy/flutter-rust-bridge/errors"
	"github.com/Unoqwy/flutter-rust-bridge/generator"
)

// Config is the on-disk configuration.
type Config struct {
	// DartOutput is the path the generated Dart source is written to.
	DartOutput string `yaml:"dart_output"`
	// DescriptorOutput is the path the JSON descriptor is written to.
	// Empty disables descriptor output.
	DescriptorOutput string `yaml:"descriptor_output"`
	// ApiClassName overrides the generated API class name.
	ApiClassName string `yaml:"api_class_name"`
	// BindingStyle is "named" or "positional". Defaults to named.
	BindingStyle string `yaml:"binding_style"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		DartOutput:   "bridge_generated.dart",
		BindingStyle: "named",
	}
}

// Load reads and validates a configuration file. Unknown keys are rejected
// so typos fail loudly instead of silently falling back to defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(errors.PhaseConfig, errors.KindInvalidInput, err,
			fmt.Sprintf("reading config %s", path))
	}
	return Parse(data)
}

// Parse decodes and validates configuration bytes.
func Parse(data []byte) (*Config, error) {
	cfg := Default()

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && err != io.EOF {
		return nil, errors.Wrap(errors.PhaseConfig, errors.KindInvalidInput, err,
			"decoding config")
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.DartOutput == "" {
		return errors.InvalidInput(errors.PhaseConfig, "dart_output must not be empty")
	}
	switch c.BindingStyle {
	case "", "named", "positional":
	default:
		return errors.InvalidInput(errors.PhaseConfig,
			fmt.Sprintf("binding_style %q is not one of: named, positional", c.BindingStyle))
	}
	return nil
}

// GeneratorOptions translates the configuration into pipeline options.
func (c *Config) GeneratorOptions() generator.Options {
	opts := generator.Options{Dart: dart.Options{ApiClassName: c.ApiClassName}}
	if c.BindingStyle == "positional" {
		opts.Dart.BindingStyle = dart.BindingPositional
	}
	return opts
}
