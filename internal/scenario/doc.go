// Package scenario defines the catalog of rendering scenarios.
//
// A catalog is an ordered list of Descriptors plus the RenderOptions
// baseline every scenario starts from. The built-in catalog is embedded
// YAML; an external file with the same shape can replace it.
//
// # Catalog Format
//
//	defaults:
//	  width: 40
//	  color_system: truecolor
//	  force_terminal: true
//	cases:
//	  - id: text/markup_bold
//	    kind: text
//	    input: { markup: "[bold]Bold[/]" }
//	  - id: terminal/no_color
//	    kind: text
//	    render_options: { color_system: auto, force_terminal: null }
//	    env: { NO_COLOR: "1", FORCE_COLOR: null }
//	    input: { markup: "[#ff8800]No Color[/]" }
//
// Loading is strict: unknown YAML fields are rejected, every case is checked
// against an embedded CUE schema, ids must be NFC-normalized and unique.
// Kind-specific input fields are NOT checked here; the builder owns them.
//
// In env overlays a null value means "unset": the variable is removed from
// the scenario environment rather than set to the empty string.
package scenario
