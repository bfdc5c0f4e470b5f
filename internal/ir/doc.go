// Package ir provides the value model for fixture documents.
//
// Scenario inputs, environment overlays, theme overrides and the assembled
// fixture document are all expressed as IRValue trees before serialization.
// ir imports nothing internal; every other package may import it.
//
// Key design constraints:
//   - NO float types anywhere - use int64 for numbers
//   - null is representable (IRNull) because scenario inputs use it as
//     "not supplied" (e.g. a panel without subtitle)
//   - Strings are written byte-for-byte: no Unicode normalization and no
//     HTML escaping, since captured terminal output must round-trip exactly
//   - Free-form objects (IRObject) serialize with sorted keys; documents with
//     a fixed shape (IRRecord) keep their declared field order
package ir
