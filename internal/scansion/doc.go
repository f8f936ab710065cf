// Package scansion implements the stages that turn a line of Latin verse
// into a metrically valid pronunciation.
//
// The stages are, in order:
//   - Normalizer: canonical lowercase text
//   - Pronouncer: baseline phonemic transcription
//   - VariantExpander: every pronunciation poetic license allows, weighted
//   - MeterFilter: the variants that scan as dactylic hexameter
//   - Select: the preferred surviving variant
//
// Each stage is a thin wrapper around a relation of a RuleSet. The relations
// are loaded once from a rule archive and shared read-only by every scan.
package scansion
