package scansion

import "github.com/nao1215/latinscan/internal/rewrite"

// Pronouncer maps normalized text to a baseline pronunciation.
type Pronouncer struct {
	rel rewrite.Relation
}

// NewPronouncer returns a Pronouncer over the PRONOUNCE relation.
func NewPronouncer(rel rewrite.Relation) *Pronouncer {
	return &Pronouncer{rel: rel}
}

// Pronounce returns the top-weighted output of the relation for normalized.
// The input is read as relation syntax, so it must not contain backslashes
// or brackets; the normalizer's escaping covers raw text only.
func (p *Pronouncer) Pronounce(normalized string) (string, error) {
	out, err := rewrite.TopRewrite(p.rel, normalized)
	if err != nil {
		return "", newRewriteError(StepPronounce, normalized, err)
	}
	return out, nil
}
