// Package setup reads a match setup file and normalizes it into the shapes
// the match controller accepts.
package setup

import (
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/mcoot/lifecounter/internal/model"
)

// ColorList accepts either a single colour or a list of colours in YAML
type ColorList []string

// UnmarshalYAML implements yaml.Unmarshaler
func (c *ColorList) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case yaml.ScalarNode:
		if value.Tag == "!!null" {
			*c = nil
			return nil
		}
		*c = ColorList{value.Value}
		return nil
	case yaml.SequenceNode:
		var list []string
		if err := value.Decode(&list); err != nil {
			return err
		}
		*c = list
		return nil
	default:
		return fmt.Errorf("line %d: colors must be a string or a list of strings", value.Line)
	}
}

// PlayerEntry is one seat in the setup file
type PlayerEntry struct {
	Name   string    `yaml:"name"`
	Colors ColorList `yaml:"colors"`
}

// File is the on-disk match setup
type File struct {
	Mode        string        `yaml:"mode"`
	PlayerCount int           `yaml:"player_count"`
	Poison      bool          `yaml:"poison"`
	Players     []PlayerEntry `yaml:"players"`
}

// Load reads a setup file from disk
func Load(path string) (*File, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open setup file: %w", err)
	}
	defer f.Close()

	return Decode(f)
}

// Decode parses a setup file. An empty document yields an empty File.
func Decode(r io.Reader) (*File, error) {
	var file File
	if err := yaml.NewDecoder(r).Decode(&file); err != nil && err != io.EOF {
		return nil, fmt.Errorf("decode setup file: %w", err)
	}
	return &file, nil
}

// PlayerConfigs converts the file's players into validated configs
func (f *File) PlayerConfigs() ([]model.PlayerConfig, error) {
	configs := make([]model.PlayerConfig, 0, len(f.Players))
	for i, entry := range f.Players {
		colors := make([]model.Color, 0, len(entry.Colors))
		for _, key := range entry.Colors {
			c, err := model.ParseColor(key)
			if err != nil {
				return nil, fmt.Errorf("player %d: %w", i+1, err)
			}
			colors = append(colors, c)
		}
		configs = append(configs, model.PlayerConfig{
			Name:   entry.Name,
			Colors: model.NormalizeColors(colors),
		})
	}
	return configs, nil
}

// Setup builds a model.Setup, letting non-zero overrides win over the file
func (f *File) Setup(mode model.GameMode, playerCount int, poison bool) (model.Setup, error) {
	configs, err := f.PlayerConfigs()
	if err != nil {
		return model.Setup{}, err
	}

	s := model.Setup{
		GameMode:      model.ParseGameMode(f.Mode),
		PlayerCount:   f.PlayerCount,
		Players:       configs,
		PoisonEnabled: f.Poison || poison,
	}
	if mode != "" {
		s.GameMode = mode
	}
	if s.GameMode == "" {
		s.GameMode = model.GameModeCommander
	}
	if playerCount > 0 {
		s.PlayerCount = playerCount
	}
	return s, nil
}
