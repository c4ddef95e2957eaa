package tui

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/lipgloss"
	"gopkg.in/yaml.v3"
)

// Skin overrides the chrome colors. Empty fields keep the default.
type Skin struct {
	Name   string `yaml:"name"`
	Accent string `yaml:"accent"`
	Muted  string `yaml:"muted"`
	Text   string `yaml:"text"`
	Status string `yaml:"status"`
	Warn   string `yaml:"warn"`
	Error  string `yaml:"error"`
}

var defaultSkin = Skin{
	Name:   "default",
	Accent: "39",
	Muted:  "240",
	Text:   "15",
	Status: "17",
	Warn:   "208",
	Error:  "196",
}

// InitializeSkin applies the named skin from <configDir>/skins/<name>.yml.
// The "default" skin (or an empty name) needs no file. On error the default
// skin stays in effect.
func InitializeSkin(name, configDir string) error {
	applySkin(defaultSkin)
	if name == "" || name == defaultSkin.Name {
		return nil
	}

	path := filepath.Join(configDir, "skins", name+".yml")
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading skin %s: %w", path, err)
	}

	var skin Skin
	if err := yaml.Unmarshal(data, &skin); err != nil {
		return fmt.Errorf("parsing skin %s: %w", path, err)
	}
	applySkin(mergeSkin(defaultSkin, skin))
	return nil
}

func mergeSkin(base, over Skin) Skin {
	pick := func(a, b string) string {
		if b != "" {
			return b
		}
		return a
	}
	return Skin{
		Name:   pick(base.Name, over.Name),
		Accent: pick(base.Accent, over.Accent),
		Muted:  pick(base.Muted, over.Muted),
		Text:   pick(base.Text, over.Text),
		Status: pick(base.Status, over.Status),
		Warn:   pick(base.Warn, over.Warn),
		Error:  pick(base.Error, over.Error),
	}
}

func applySkin(s Skin) {
	ColorBlue = lipgloss.Color(s.Accent)
	ColorGray = lipgloss.Color(s.Muted)
	ColorWhite = lipgloss.Color(s.Text)
	ColorNavy = lipgloss.Color(s.Status)
	ColorOrange = lipgloss.Color(s.Warn)
	ColorRed = lipgloss.Color(s.Error)
	rebuildStyles()
}
