// Package style defines the visual styling for moddeck's terminal output.
//
// All styles use semantic names and adaptive colors that adjust to light
// and dark terminal themes. The definitions live in styles.yaml so the
// palette stays in one place.
package style

import (
	_ "embed"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"
	"gopkg.in/yaml.v3"
)

//go:embed styles.yaml
var stylesYAML []byte

// ColorDef is an adaptive color definition in YAML
type ColorDef struct {
	Light string `yaml:"light"`
	Dark  string `yaml:"dark"`
}

// StyleDef is a style definition in YAML
type StyleDef struct {
	Bold       bool   `yaml:"bold,omitempty"`
	Italic     bool   `yaml:"italic,omitempty"`
	Underline  bool   `yaml:"underline,omitempty"`
	Foreground string `yaml:"foreground,omitempty"`
	Background string `yaml:"background,omitempty"`
}

// config is the complete styles.yaml content
type config struct {
	Colors map[string]ColorDef `yaml:"colors"`
	Styles map[string]StyleDef `yaml:"styles"`
}

// registry maps semantic names to lipgloss styles
var registry map[string]lipgloss.Style

func init() {
	var cfg config
	if err := yaml.Unmarshal(stylesYAML, &cfg); err != nil {
		// embedded data is fixed at build time; an empty registry just
		// means plain output
		registry = map[string]lipgloss.Style{}
		return
	}

	colors := make(map[string]lipgloss.AdaptiveColor, len(cfg.Colors))
	for name, def := range cfg.Colors {
		colors[name] = lipgloss.AdaptiveColor{Light: def.Light, Dark: def.Dark}
	}

	registry = make(map[string]lipgloss.Style, len(cfg.Styles))
	for name, def := range cfg.Styles {
		s := lipgloss.NewStyle().Bold(def.Bold).Italic(def.Italic).Underline(def.Underline)
		if c, ok := colors[def.Foreground]; ok {
			s = s.Foreground(c)
		}
		if c, ok := colors[def.Background]; ok {
			s = s.Background(c)
		}
		registry[name] = s
	}
}

// Render applies the named style to text. Unknown names and non-terminal
// output degrade to the plain string.
func Render(name, text string) string {
	if !IsTerminal() {
		return text
	}
	s, ok := registry[name]
	if !ok {
		return text
	}
	return s.Render(text)
}

// IsTerminal reports whether stdout is an interactive terminal that
// supports styling
func IsTerminal() bool {
	if !isatty.IsTerminal(os.Stdout.Fd()) && !isatty.IsCygwinTerminal(os.Stdout.Fd()) {
		return false
	}
	return termenv.EnvColorProfile() != termenv.Ascii
}
