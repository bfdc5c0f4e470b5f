package harness

import (
	"fmt"

	"github.com/roach88/termfixture/internal/console"
	"github.com/roach88/termfixture/internal/scenario"
)

// ExecutionContext is the fully resolved rendering context of one scenario.
type ExecutionContext struct {
	Options scenario.RenderOptions
	// Env is the complete environment the console sees. Unset variables are
	// absent, never empty.
	Env   map[string]string
	Theme *scenario.ThemeSpec
}

// NewExecutionContext merges the catalog defaults, the base environment and
// the scenario's overrides.
func NewExecutionContext(defaults scenario.RenderOptions, baseEnv map[string]string, d scenario.Descriptor) (*ExecutionContext, error) {
	ov, err := d.Overrides()
	if err != nil {
		return nil, err
	}
	overlay, err := d.EnvOverlay()
	if err != nil {
		return nil, err
	}
	theme, err := d.ThemeSpec()
	if err != nil {
		return nil, err
	}
	return &ExecutionContext{
		Options: defaults.Apply(ov),
		Env:     MergeEnv(baseEnv, overlay),
		Theme:   theme,
	}, nil
}

// MergeEnv applies overlay to a copy of base. A nil overlay value removes
// the variable.
func MergeEnv(base map[string]string, overlay map[string]*string) map[string]string {
	env := make(map[string]string, len(base)+len(overlay))
	for k, v := range base {
		env[k] = v
	}
	for k, v := range overlay {
		if v == nil {
			delete(env, k)
			continue
		}
		env[k] = *v
	}
	return env
}

// ConsoleOptions maps the context onto a recording console configuration
// with markup, emoji, highlighting and safe boxes enabled.
func (x *ExecutionContext) ConsoleOptions() (console.Options, error) {
	system, err := console.ParseColorSystem(string(x.Options.ColorSystem))
	if err != nil {
		return console.Options{}, err
	}

	var theme *console.Theme
	if x.Theme != nil {
		theme, err = console.NewTheme(x.Theme.Styles, x.Theme.Inherit)
		if err != nil {
			return console.Options{}, fmt.Errorf("theme: %w", err)
		}
	}

	env := make(console.Environ, len(x.Env))
	for k, v := range x.Env {
		env[k] = v
	}

	return console.Options{
		Width:         x.Options.Width,
		ColorSystem:   system,
		ForceTerminal: x.Options.ForceTerminal.Bool(),
		Theme:         theme,
		Environ:       env,
		Emoji:         true,
		Markup:        true,
		Highlight:     true,
		SafeBox:       true,
		Record:        true,
	}, nil
}
