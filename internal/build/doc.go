// Package build turns a scenario's kind and input into a value the console
// can print.
//
// Build is a pure dispatch over scenario.Kind. Each branch extracts its
// fields from the input object, applying the defaults listed below, and
// fails with a *FieldError when a required field is absent or a field has
// the wrong shape. Composite kinds (tree, constrain) recurse.
//
// Defaults per kind:
//
//	rule       character U+2500 (light horizontal), align center, title ""
//	panel      box ROUNDED; title, subtitle and width optional
//	table      show_header true, show_lines false, justify left per column
//	progress   total 100, completed 0, width optional
//	padding    pad [0, 0, 0, 0]
//	constrain  child_kind rule, child_input {}, width 80 (null passes through)
//	align      align left, width optional
//	control    operation clear
//	markdown   hyperlinks true
//	json       json "{}", indent 2 (null is compact), highlight true
//	syntax     language rust
//	traceback  exception_type Error, filename <traceback_fixture>
package build
