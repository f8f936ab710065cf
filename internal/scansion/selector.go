package scansion

import "github.com/nao1215/latinscan/internal/rewrite"

// Select returns the text of the minimum-weight candidate. Ties go to the
// candidate that comes first, so the choice is the same on every run.
// The boolean is false for an empty lattice.
func Select(candidates rewrite.Lattice) (string, bool) {
	best, ok := candidates.Shortest()
	return best.Text, ok
}
