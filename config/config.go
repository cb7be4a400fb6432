// Package config loads and validates run configurations.
//
// A run configuration can be written as YAML or TOML. The format is chosen by
// the file extension. Keys that a file omits keep their default values.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/sarchlab/bfsim/core"
)

var (
	ErrInvalidCellWidth  = core.ErrInvalidCellWidth
	ErrInvalidTapeLength = core.ErrInvalidTapeLength
	// ErrUnknownFormat is returned for files that are neither YAML nor TOML.
	ErrUnknownFormat = errors.New("unknown config format")
)

// Format is a config file syntax.
type Format string

// Supported formats.
const (
	YAML Format = "yaml"
	TOML Format = "toml"
)

// FormatOf picks the format from a file extension.
func FormatOf(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return YAML, nil
	case ".toml":
		return TOML, nil
	default:
		return "", fmt.Errorf("%w: %s", ErrUnknownFormat, path)
	}
}

// RunConfig holds the parameters of one run.
type RunConfig struct {
	CellWidth  int  `yaml:"cell_width" toml:"cell_width"`
	TapeLength int  `yaml:"tape_length" toml:"tape_length"`
	Optimize   bool `yaml:"optimize" toml:"optimize"`
	Dump       bool `yaml:"dump" toml:"dump"`
}

// Default returns the configuration used when nothing is configured.
func Default() RunConfig {
	return RunConfig{
		CellWidth:  int(core.Width8),
		TapeLength: core.DefaultTapeLength,
		Optimize:   true,
	}
}

// Parse decodes data in the given format on top of the defaults and
// validates the result.
func Parse(data []byte, format Format) (RunConfig, error) {
	c := Default()

	var err error
	switch format {
	case YAML:
		err = yaml.Unmarshal(data, &c)
	case TOML:
		err = toml.Unmarshal(data, &c)
	default:
		return c, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}

	if err != nil {
		return c, fmt.Errorf("parse %s config: %w", format, err)
	}

	return c, c.Validate()
}

// Load reads a config file.
func Load(path string) (RunConfig, error) {
	format, err := FormatOf(path)
	if err != nil {
		return Default(), err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Default(), fmt.Errorf("cannot read %s: %w", path, err)
	}

	c, err := Parse(data, format)
	if err != nil {
		return c, fmt.Errorf("%s: %w", path, err)
	}

	return c, nil
}

// Validate checks the cell width and the tape length.
func (c RunConfig) Validate() error {
	if _, err := c.Width(); err != nil {
		return err
	}

	if c.TapeLength < 1 {
		return &core.ConfigError{
			Field: "tape length",
			Value: c.TapeLength,
			Err:   ErrInvalidTapeLength,
		}
	}

	return nil
}

// Width returns the cell width as a core.Width.
func (c RunConfig) Width() (core.Width, error) {
	return core.ParseWidth(c.CellWidth)
}

// WithCellWidth sets the cell width in bits.
func (c RunConfig) WithCellWidth(bits int) RunConfig {
	c.CellWidth = bits
	return c
}

// WithTapeLength sets the maximum tape length.
func (c RunConfig) WithTapeLength(n int) RunConfig {
	c.TapeLength = n
	return c
}

// WithOptimize turns the optimizer on or off.
func (c RunConfig) WithOptimize(on bool) RunConfig {
	c.Optimize = on
	return c
}

// WithDump turns the debug dump on or off.
func (c RunConfig) WithDump(on bool) RunConfig {
	c.Dump = on
	return c
}
