package scenario

import (
	"fmt"

	"github.com/roach88/termfixture/internal/ir"
)

// ColorSystem names a color capability level.
type ColorSystem string

// Color systems. ColorAuto defers to negotiation from the scenario
// environment and terminal decision.
const (
	ColorMonochrome ColorSystem = "monochrome"
	ColorStandard   ColorSystem = "standard"
	Color256        ColorSystem = "256"
	ColorTrueColor  ColorSystem = "truecolor"
	ColorAuto       ColorSystem = "auto"
)

// Valid reports whether c is a known color system.
func (c ColorSystem) Valid() bool {
	switch c {
	case ColorMonochrome, ColorStandard, Color256, ColorTrueColor, ColorAuto:
		return true
	}
	return false
}

// Tristate is the force-terminal switch: on, off, or left to negotiation.
type Tristate int

const (
	// Unset leaves the terminal decision to the environment.
	Unset Tristate = iota
	// On forces terminal behavior.
	On
	// Off forces non-terminal behavior.
	Off
)

// TristateOf maps a nullable bool to a Tristate.
func TristateOf(b *bool) Tristate {
	switch {
	case b == nil:
		return Unset
	case *b:
		return On
	default:
		return Off
	}
}

// Bool returns the tristate as a nullable bool.
func (t Tristate) Bool() *bool {
	switch t {
	case On:
		v := true
		return &v
	case Off:
		v := false
		return &v
	}
	return nil
}

func (t Tristate) value() ir.IRValue {
	switch t {
	case On:
		return ir.IRBool(true)
	case Off:
		return ir.IRBool(false)
	}
	return ir.IRNull{}
}

// RenderOptions are the resolved rendering parameters of one scenario.
type RenderOptions struct {
	Width         int
	ColorSystem   ColorSystem
	ForceTerminal Tristate
}

// IR returns the options in document field order.
func (o RenderOptions) IR() ir.IRRecord {
	return ir.IRRecord{
		ir.F("width", ir.IRInt(o.Width)),
		ir.F("color_system", ir.IRString(o.ColorSystem)),
		ir.F("force_terminal", o.ForceTerminal.value()),
	}
}

// Overrides is a partial RenderOptions. A nil field keeps the default.
type Overrides struct {
	Width         *int
	ColorSystem   *ColorSystem
	ForceTerminal *Tristate
}

// Apply returns o with every present override field replaced.
func (o RenderOptions) Apply(ov Overrides) RenderOptions {
	if ov.Width != nil {
		o.Width = *ov.Width
	}
	if ov.ColorSystem != nil {
		o.ColorSystem = *ov.ColorSystem
	}
	if ov.ForceTerminal != nil {
		o.ForceTerminal = *ov.ForceTerminal
	}
	return o
}

// ThemeSpec is a named-style table layered over the built-in styles.
type ThemeSpec struct {
	Styles  map[string]string
	Inherit bool
}

// Descriptor is one catalog entry.
//
// RenderOptions, Env and Theme hold the overrides exactly as written in the
// catalog (nil when absent) so fixture documents can replay them verbatim.
// Typed views are available through Overrides, EnvOverlay and ThemeSpec.
type Descriptor struct {
	ID            string
	Kind          Kind
	CompareANSI   bool
	RenderOptions ir.IRObject
	Env           ir.IRObject
	Theme         ir.IRObject
	Input         ir.IRObject
	Notes         *string
}

// Overrides decodes the descriptor's render option overrides.
func (d Descriptor) Overrides() (Overrides, error) {
	var ov Overrides
	for _, key := range d.RenderOptions.SortedKeys() {
		v := d.RenderOptions[key]
		switch key {
		case "width":
			n, ok := v.(ir.IRInt)
			if !ok || n <= 0 {
				return ov, fmt.Errorf("render_options.width: want positive integer, got %s", describe(v))
			}
			w := int(n)
			ov.Width = &w
		case "color_system":
			s, ok := v.(ir.IRString)
			if !ok || !ColorSystem(s).Valid() {
				return ov, fmt.Errorf("render_options.color_system: unknown color system %s", describe(v))
			}
			cs := ColorSystem(s)
			ov.ColorSystem = &cs
		case "force_terminal":
			var t Tristate
			switch b := v.(type) {
			case ir.IRNull:
				t = Unset
			case ir.IRBool:
				bv := bool(b)
				t = TristateOf(&bv)
			default:
				return ov, fmt.Errorf("render_options.force_terminal: want bool or null, got %s", describe(v))
			}
			ov.ForceTerminal = &t
		default:
			return ov, fmt.Errorf("render_options: unknown option %q", key)
		}
	}
	return ov, nil
}

// EnvOverlay decodes the descriptor's environment overlay. A nil value in
// the returned map means the variable is unset.
func (d Descriptor) EnvOverlay() (map[string]*string, error) {
	out := make(map[string]*string, len(d.Env))
	for key, v := range d.Env {
		switch s := v.(type) {
		case ir.IRNull:
			out[key] = nil
		case ir.IRString:
			str := string(s)
			out[key] = &str
		default:
			return nil, fmt.Errorf("env.%s: want string or null, got %s", key, describe(v))
		}
	}
	return out, nil
}

// ThemeSpec decodes the descriptor's theme, or returns nil when absent.
func (d Descriptor) ThemeSpec() (*ThemeSpec, error) {
	if d.Theme == nil {
		return nil, nil
	}
	spec := &ThemeSpec{Styles: map[string]string{}, Inherit: true}
	for key, v := range d.Theme {
		switch key {
		case "styles":
			styles, ok := v.(ir.IRObject)
			if !ok {
				return nil, fmt.Errorf("theme.styles: want object, got %s", describe(v))
			}
			for name, def := range styles {
				s, ok := def.(ir.IRString)
				if !ok {
					return nil, fmt.Errorf("theme.styles.%s: want string, got %s", name, describe(def))
				}
				spec.Styles[name] = string(s)
			}
		case "inherit":
			b, ok := v.(ir.IRBool)
			if !ok {
				return nil, fmt.Errorf("theme.inherit: want bool, got %s", describe(v))
			}
			spec.Inherit = bool(b)
		default:
			return nil, fmt.Errorf("theme: unknown field %q", key)
		}
	}
	return spec, nil
}

// IR returns the descriptor fields in document order, without expected
// output. Absent optional fields are null.
func (d Descriptor) IR() ir.IRRecord {
	return ir.IRRecord{
		ir.F("id", ir.IRString(d.ID)),
		ir.F("kind", ir.IRString(d.Kind)),
		ir.F("compare_ansi", ir.IRBool(d.CompareANSI)),
		ir.F("render_options", objectOrNull(d.RenderOptions)),
		ir.F("env", objectOrNull(d.Env)),
		ir.F("theme", objectOrNull(d.Theme)),
		ir.F("input", inputObject(d.Input)),
		ir.F("notes", stringOrNull(d.Notes)),
	}
}

// Digest identifies the descriptor content, independent of its output.
func (d Descriptor) Digest() (string, error) {
	return ir.ScenarioDigest(d.IR())
}

func objectOrNull(o ir.IRObject) ir.IRValue {
	if o == nil {
		return ir.IRNull{}
	}
	return o
}

func inputObject(o ir.IRObject) ir.IRValue {
	if o == nil {
		return ir.IRObject{}
	}
	return o
}

func stringOrNull(s *string) ir.IRValue {
	if s == nil {
		return ir.IRNull{}
	}
	return ir.IRString(*s)
}

func describe(v ir.IRValue) string {
	switch x := v.(type) {
	case ir.IRNull:
		return "null"
	case ir.IRString:
		return fmt.Sprintf("string %q", string(x))
	case ir.IRInt:
		return fmt.Sprintf("integer %d", int64(x))
	case ir.IRBool:
		return fmt.Sprintf("bool %t", bool(x))
	case ir.IRArray:
		return "array"
	case ir.IRObject, ir.IRRecord:
		return "object"
	}
	return fmt.Sprintf("%T", v)
}
