// Package rewrite implements weighted string rewrite relations.
//
// A Relation maps one input string to a Lattice: an ordered, de-duplicated
// set of weighted output strings. Relations are built from cascades of
// context-dependent rewrite rules (regular expressions with lookaround,
// see github.com/dlclark/regexp2), acceptors, and compositions of other
// relations. Lower weights are preferred.
//
// Rules come in two flavours. Obligatory rules rewrite every match in a
// candidate. Optional rules fork the candidate once for every subset of
// their match sites, so a single input can yield many outputs. The
// enumeration order is fixed (binary counting over match sites, "apply
// none" first), which gives every lattice a reproducible canonical order
// and makes minimum-weight selection deterministic.
//
// Relations are usually loaded from a YAML rule archive with LoadArchive
// or ParseArchive, and applied with TopRewrite, RewriteLattice and
// Intersect. Input strings passed to those helpers are compiled first:
// a backslash escapes the following character, and unescaped square
// brackets are reserved syntax. Use Escape on raw text.
package rewrite
