// Package pipeline runs lines of verse through the scansion stages.
//
// A line moves through a fixed sequence of stages, each implemented as a
// Step that advances a State:
//
//	Start -> Normalized -> Pronounced -> Expanded -> Filtered -> Scanned
//
// A rewrite failure in the first three steps ends the line as Failed, and an
// empty meter filter result ends it as Defective. The Scanner wraps the
// pipeline with logging and metrics and aggregates lines into documents.
// The BatchProcessor scans several documents concurrently using errgroup.
package pipeline
