// Package harness generates conformance fixture documents.
//
// A run walks the scenario catalog in order. For each scenario it builds the
// renderable, resolves an execution context from the catalog defaults and the
// scenario's overrides, renders into a fresh recording console, and
// normalizes the plain and ANSI captures. The results are assembled into one
// Document and serialized with ir.MarshalCanonical.
//
// # Isolation
//
// Every scenario gets its own console. The only environment a console sees
// is the scenario overlay applied to Options.BaseEnv, which is empty unless a
// caller sets it. The process environment is never read.
//
// # Failure
//
// Runs are fail-fast: the first scenario that cannot be built or rendered
// aborts the run with an *Error and no document is produced. A partial
// document would desynchronize consumers that key expectations by id.
//
// # Normalization
//
// Captures are post-processed by Normalize:
//
//	\r\n, \r               -> \n
//	ESC ] 8 ; id=<x> ;     -> ESC ] 8 ; ;
//
// Normalize is idempotent.
package harness
