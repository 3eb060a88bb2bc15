// Package database provides SQLite-based storage for check run history.
//
// This package implements the HistoryDB, which stores one row per check
// run: the target, its content hash, the headline severity counts, and the
// full report as JSON. The compare command reads this history to tell
// regressions from fixes between runs.
//
// Design decision: We use SQLite (via modernc.org/sqlite) instead of other
// databases because:
// 1. No external dependencies - the database is a single file
// 2. CGO-free implementation allows easy cross-compilation
// 3. Sufficient performance for our use case
// 4. WAL mode provides good concurrent read performance
package database
