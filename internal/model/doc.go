// Package model defines the data structures shared by the scanner, the
// reports and the scan history.
//
// The main types are:
//   - Line: one scanned line of verse and its outcome
//   - Document: an ordered collection of lines
//   - Summary: counts and foot pattern distribution of a document
//   - Comparison: line-level differences between two scans
//
// All types serialize to JSON for reports and database storage, and Line and
// Document also serialize to YAML.
package model
