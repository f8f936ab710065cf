// Package database provides SQLite-based storage for the scan history.
//
// Every scan of a document is stored as a run: the document name, the
// grammar that produced it, outcome counts and the full scanned document as
// JSON. Runs of the same document can then be compared to see which lines
// a grammar change fixed or broke.
//
// The database is a single file (latinscan.db) opened through the CGO-free
// modernc.org/sqlite driver.
package database
