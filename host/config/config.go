// Package config loads firmware configuration for the host tools: named
// board profiles compiled into the binary, and YAML overrides on top.
package config

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"strings"

	"golang.org/x/exp/slices"
	"gopkg.in/yaml.v3"

	"joycursor/core"
)

//go:embed boards.yaml
var rawBoards []byte

var boards Boards

// ErrUnknownBoard is returned by Find for a name with no profile.
var ErrUnknownBoard = errors.New("unknown board")

// Board is a named firmware profile.
type Board struct {
	Name        string
	Target      string
	Description string
	Firmware    core.Config
}

type Boards []Board

// All returns the built-in profiles sorted by name.
func All() Boards {
	return boards
}

// Find returns the profile called name, ignoring case.
func (b Boards) Find(name string) (Board, error) {
	i := slices.IndexFunc(b, func(p Board) bool {
		return p.Name == strings.ToLower(name)
	})
	if i < 0 {
		return Board{}, fmt.Errorf("%w: %q", ErrUnknownBoard, name)
	}
	return b[i], nil
}

// Names lists the profile names.
func (b Boards) Names() []string {
	names := make([]string, len(b))
	for i, p := range b {
		names[i] = p.Name
	}
	return names
}

// ForTarget returns the profiles built for target.
func (b Boards) ForTarget(target string) Boards {
	out := slices.Clone(b)
	return slices.DeleteFunc(out, func(p Board) bool { return p.Target != target })
}

// Overlay decodes data on top of base, then fills and checks the result.
func Overlay(data []byte, base core.Config) (core.Config, error) {
	cfg := base
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return core.Config{}, fmt.Errorf("config: %w", err)
	}
	return finish(cfg)
}

// LoadFile overlays the YAML file at path on base.
func LoadFile(path string, base core.Config) (core.Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return core.Config{}, fmt.Errorf("config: %w", err)
	}
	return Overlay(data, base)
}

func finish(cfg core.Config) (core.Config, error) {
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return core.Config{}, fmt.Errorf("config: %w", err)
	}
	return cfg, nil
}

func parseBoards(data []byte) (Boards, error) {
	var raw struct {
		Elements []struct {
			Name        string    `yaml:"name"`
			Target      string    `yaml:"target"`
			Description string    `yaml:"description"`
			Firmware    yaml.Node `yaml:"firmware"`
		} `yaml:"boards"`
	}
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, err
	}

	out := make(Boards, 0, len(raw.Elements))
	for _, e := range raw.Elements {
		cfg := core.DefaultConfig()
		if !e.Firmware.IsZero() {
			if err := e.Firmware.Decode(&cfg); err != nil {
				return nil, fmt.Errorf("board %s: %w", e.Name, err)
			}
		}
		cfg, err := finish(cfg)
		if err != nil {
			return nil, fmt.Errorf("board %s: %w", e.Name, err)
		}
		out = append(out, Board{
			Name:        strings.ToLower(e.Name),
			Target:      e.Target,
			Description: e.Description,
			Firmware:    cfg,
		})
	}

	slices.SortFunc(out, func(a, b Board) int { return strings.Compare(a.Name, b.Name) })
	return out, nil
}

func init() {
	b, err := parseBoards(rawBoards)
	if err != nil {
		panic(err)
	}
	boards = b
}
