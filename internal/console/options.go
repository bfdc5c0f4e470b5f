package console

import (
	"fmt"
	"io"
	"sort"

	"github.com/muesli/termenv"
)

// ColorSystem is a color capability level.
type ColorSystem int

const (
	// ColorAuto negotiates the color system from the environment.
	ColorAuto ColorSystem = iota
	// ColorNone disables all styling.
	ColorNone
	// ColorStandard is the 16-color palette.
	ColorStandard
	// Color256 is the 256-color palette.
	Color256
	// ColorTrueColor is 24-bit color.
	ColorTrueColor
)

func (c ColorSystem) String() string {
	switch c {
	case ColorAuto:
		return "auto"
	case ColorNone:
		return "monochrome"
	case ColorStandard:
		return "standard"
	case Color256:
		return "256"
	case ColorTrueColor:
		return "truecolor"
	}
	return fmt.Sprintf("ColorSystem(%d)", int(c))
}

// ParseColorSystem maps a color system name to a ColorSystem.
func ParseColorSystem(name string) (ColorSystem, error) {
	switch name {
	case "auto":
		return ColorAuto, nil
	case "monochrome":
		return ColorNone, nil
	case "standard":
		return ColorStandard, nil
	case "256":
		return Color256, nil
	case "truecolor":
		return ColorTrueColor, nil
	}
	return ColorAuto, fmt.Errorf("unknown color system %q", name)
}

func (c ColorSystem) profile() termenv.Profile {
	switch c {
	case ColorStandard:
		return termenv.ANSI
	case Color256:
		return termenv.ANSI256
	case ColorTrueColor:
		return termenv.TrueColor
	}
	return termenv.Ascii
}

func systemOf(p termenv.Profile) ColorSystem {
	switch p {
	case termenv.ANSI:
		return ColorStandard
	case termenv.ANSI256:
		return Color256
	case termenv.TrueColor:
		return ColorTrueColor
	}
	return ColorNone
}

// Environ is an explicit set of environment variables. It satisfies
// termenv.Environ so capability detection never reads the process
// environment.
type Environ map[string]string

// Environ returns the variables as sorted KEY=VALUE pairs.
func (e Environ) Environ() []string {
	out := make([]string, 0, len(e))
	for k, v := range e {
		out = append(out, k+"="+v)
	}
	sort.Strings(out)
	return out
}

// Getenv returns the value of key, or "" when unset.
func (e Environ) Getenv(key string) string {
	return e[key]
}

// LookupEnv returns the value of key and whether it is set at all.
func (e Environ) LookupEnv(key string) (string, bool) {
	v, ok := e[key]
	return v, ok
}

// Options configure a Console.
type Options struct {
	// Width is the line width in cells. Zero means 80.
	Width int
	// ColorSystem selects the color capability; ColorAuto negotiates.
	ColorSystem ColorSystem
	// ForceTerminal overrides the terminal decision when non-nil.
	ForceTerminal *bool
	// Theme resolves named styles. Nil means DefaultTheme.
	Theme *Theme
	// Environ is the only environment the console consults.
	Environ Environ

	// Emoji replaces :code: sequences in markup.
	Emoji bool
	// Markup parses [style] tags in printed strings.
	Markup bool
	// Highlight applies the repr highlighter to printed strings.
	Highlight bool
	// SafeBox draws every box with ASCII characters.
	SafeBox bool
	// Record keeps printed segments for export.
	Record bool
}

// negotiate resolves the termenv profile for opts.
func negotiate(opts Options) termenv.Profile {
	if opts.ColorSystem != ColorAuto {
		return opts.ColorSystem.profile()
	}

	// FORCE_COLOR makes a terminal whenever it is set, even to "".
	_, terminal := opts.Environ.LookupEnv("FORCE_COLOR")
	if opts.ForceTerminal != nil {
		terminal = *opts.ForceTerminal
	}
	if !terminal {
		return termenv.Ascii
	}

	out := termenv.NewOutput(io.Discard,
		termenv.WithEnvironment(opts.Environ),
		termenv.WithTTY(true),
	)
	return out.EnvColorProfile()
}
