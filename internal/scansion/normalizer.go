package scansion

import "github.com/nao1215/latinscan/internal/rewrite"

// Normalizer maps raw verse text to its canonical form.
type Normalizer struct {
	rel rewrite.Relation
}

// NewNormalizer returns a Normalizer over the NORMALIZE relation.
func NewNormalizer(rel rewrite.Relation) *Normalizer {
	return &Normalizer{rel: rel}
}

// Normalize returns the top-weighted output of the relation for raw.
// Brackets and backslashes in raw are escaped first, so editorial brackets
// reach the grammar as ordinary characters.
func (n *Normalizer) Normalize(raw string) (string, error) {
	out, err := rewrite.TopRewrite(n.rel, rewrite.Escape(raw))
	if err != nil {
		return "", newRewriteError(StepNormalize, raw, err)
	}
	return out, nil
}
