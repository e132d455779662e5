// Package formats holds the starting counter values for each game mode.
package formats

import (
	_ "embed"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/mcoot/lifecounter/internal/model"
)

//go:embed formats.yaml
var defaultFormatsYAML []byte

// Format is the starting values for one game mode
type Format struct {
	Mode                    model.GameMode `yaml:"mode"`
	StartingLife            int            `yaml:"starting_life"`
	StartingCommanderDamage int            `yaml:"starting_commander_damage"`
}

type document struct {
	Default model.GameMode `yaml:"default"`
	Formats []Format       `yaml:"formats"`
}

// Registry maps game modes to their starting values
type Registry struct {
	formats  map[model.GameMode]Format
	order    []model.GameMode
	fallback model.GameMode
}

// Default returns the built-in registry. It panics if the embedded YAML is
// malformed, which is a build defect.
func Default() *Registry {
	r, err := Parse(defaultFormatsYAML)
	if err != nil {
		panic(fmt.Sprintf("formats: embedded formats.yaml: %v", err))
	}
	return r
}

// LoadFile reads a registry from a YAML file
func LoadFile(path string) (*Registry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read formats file: %w", err)
	}
	r, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parse formats file %s: %w", path, err)
	}
	return r, nil
}

// Parse builds a registry from YAML
func Parse(data []byte) (*Registry, error) {
	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	if len(doc.Formats) == 0 {
		return nil, errors.New("no formats defined")
	}

	r := &Registry{
		formats:  make(map[model.GameMode]Format, len(doc.Formats)),
		fallback: model.ParseGameMode(string(doc.Default)),
	}
	for _, f := range doc.Formats {
		f.Mode = model.ParseGameMode(string(f.Mode))
		if f.Mode == "" {
			return nil, errors.New("format with empty mode")
		}
		if f.StartingLife < 0 || f.StartingCommanderDamage < 0 {
			return nil, fmt.Errorf("format %s: starting values must be non-negative", f.Mode)
		}
		if _, dup := r.formats[f.Mode]; dup {
			return nil, fmt.Errorf("format %s defined twice", f.Mode)
		}
		r.formats[f.Mode] = f
		r.order = append(r.order, f.Mode)
	}

	if r.fallback == "" {
		r.fallback = r.order[0]
	}
	if _, ok := r.formats[r.fallback]; !ok {
		return nil, fmt.Errorf("default format %s is not defined", r.fallback)
	}

	return r, nil
}

// Lookup returns the format for mode, or the default format for unknown modes
func (r *Registry) Lookup(mode model.GameMode) Format {
	if f, ok := r.formats[model.ParseGameMode(string(mode))]; ok {
		return f
	}
	f := r.formats[r.fallback]
	f.Mode = mode
	return f
}

// Known reports whether mode has its own entry
func (r *Registry) Known(mode model.GameMode) bool {
	_, ok := r.formats[model.ParseGameMode(string(mode))]
	return ok
}

// All returns the formats in file order
func (r *Registry) All() []Format {
	out := make([]Format, 0, len(r.order))
	for _, m := range r.order {
		out = append(out, r.formats[m])
	}
	return out
}
