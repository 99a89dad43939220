// Package database provides SQLite-based storage for the svgencoder run history.
//
// This package implements the HistoryDB, which stores:
//   - One row per conversion run (roots, flags, counts, cancellation)
//   - One row per converted file of a run (paths, base64 length, digest)
//
// SQLite is accessed through modernc.org/sqlite, a CGO-free driver, so the
// binary stays easy to cross-compile. History is opt-in; a run that does not
// ask for it never opens the database.
package database
