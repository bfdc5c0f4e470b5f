// Package console is the reference renderer: a recording terminal surface
// that turns renderables into styled text.
//
// A Console never touches the process environment or a real terminal. Its
// width, color system, terminal decision and environment variables all come
// from Options, and everything printed is kept in a record buffer as
// Segments. ExportText returns the plain text of that buffer (control
// sequences excluded); ExportANSI returns it with every escape sequence.
//
// Color capability is negotiated once, in New:
//
//   - an explicit color system is used as given;
//   - with ColorAuto, the terminal decision comes from ForceTerminal when
//     set, otherwise from a non-empty FORCE_COLOR;
//   - a non-terminal gets no color; a terminal gets termenv's profile for
//     the supplied environment (NO_COLOR, CLICOLOR, COLORTERM, TERM).
//
// Printable values are Renderables, Castables (converted to markup) and
// plain strings (parsed as markup). Measurable values report their own
// width range to Measure.
//
// Hyperlinks are emitted as OSC 8 sequences with a random id parameter,
// and only when colors are enabled.
package console
