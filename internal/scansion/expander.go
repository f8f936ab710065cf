package scansion

import "github.com/nao1215/latinscan/internal/rewrite"

// VariantExpander produces the pronunciations poetic license allows.
type VariantExpander struct {
	rel rewrite.Relation
}

// NewVariantExpander returns a VariantExpander over the VARIABLE relation.
func NewVariantExpander(rel rewrite.Relation) *VariantExpander {
	return &VariantExpander{rel: rel}
}

// Expand returns every output of the relation for pron with its weight.
// Lower weights are preferred. The result is never empty on success.
// Like Pronounce, pron must not contain backslashes or brackets.
func (e *VariantExpander) Expand(pron string) (rewrite.Lattice, error) {
	out, err := rewrite.RewriteLattice(e.rel, pron)
	if err != nil {
		return nil, newRewriteError(StepExpand, pron, err)
	}
	return out, nil
}
