package seed

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Preset is a named seeding profile. Presets can be built in or loaded
// from a YAML file.
type Preset struct {
	Name         string  `yaml:"name"`
	Users        int     `yaml:"users"`
	Posts        int     `yaml:"posts"`
	CommentRatio float64 `yaml:"comment_ratio"`
	Clean        bool    `yaml:"clean"`
}

var builtInPresets = map[string]Preset{
	"minimal": {Name: "minimal", Users: 5, Posts: 20, CommentRatio: 0.3, Clean: true},
	"demo":    {Name: "demo", Users: 25, Posts: 150, CommentRatio: 0.5, Clean: true},
	"mega":    {Name: "mega", Users: 200, Posts: 2000, CommentRatio: 0.7, Clean: true},
}

// LookupPreset returns a built-in preset by name.
func LookupPreset(name string) (Preset, bool) {
	p, ok := builtInPresets[name]
	return p, ok
}

// LoadPresetFile reads a preset definition from a YAML file.
func LoadPresetFile(path string) (Preset, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Preset{}, fmt.Errorf("read preset file: %w", err)
	}

	var p Preset
	if err := yaml.Unmarshal(raw, &p); err != nil {
		return Preset{}, fmt.Errorf("parse preset file: %w", err)
	}
	if p.Users <= 0 || p.Posts < 0 {
		return Preset{}, fmt.Errorf("preset %q: users must be positive and posts non-negative", p.Name)
	}
	return p, nil
}

// ApplyPreset runs a full seeding pass with the preset's profile,
// overriding the Seeder's own Options.
func (s *Seeder) ApplyPreset(p Preset) error {
	opts := s.opts
	opts.NumUsers = p.Users
	opts.NumPosts = p.Posts
	opts.CommentRatio = p.CommentRatio
	opts.ShouldClean = p.Clean

	runner := NewSeeder(s.db, opts)
	return runner.Run()
}
