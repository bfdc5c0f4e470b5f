// Package store provides a SQLite-backed ledger of fixture generation runs.
//
// Each recorded run keeps, per case, two content digests:
//   - scenario_digest: the replayable inputs (ir.ScenarioDigest)
//   - capture_digest: the expected plain and ANSI output (ir.CaptureDigest)
//
// Comparing the digests of two runs shows which scenarios were edited and
// which produced different output without storing the output itself.
//
// # Ordering
//
// Runs are ordered by seq, a per-database counter assigned at insert time,
// never by generated_at. Cases are ordered by their catalog position.
//
// # Database Configuration
//
//   - WAL mode: Concurrent reads during writes
//   - synchronous=NORMAL: Balance durability/performance
//   - busy_timeout=5000: Wait up to 5s for locks
//   - foreign_keys=ON: Cases cannot outlive their run
package store
