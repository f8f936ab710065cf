package rewrite

import (
	"errors"
	"fmt"
)

// RewriteLattice compiles input and returns every output of rel for it.
// An empty result is reported as ErrNoRewrite.
func RewriteLattice(rel Relation, input string) (Lattice, error) {
	text, err := Compile(input)
	if err != nil {
		return nil, err
	}
	out, err := rel.Apply(text)
	if err != nil {
		return nil, err
	}
	if out.Empty() {
		return nil, fmt.Errorf("%w: %s", ErrNoRewrite, rel.Name())
	}
	return out, nil
}

// Rewrites returns the texts of every output of rel for input, in lattice order.
func Rewrites(rel Relation, input string) ([]string, error) {
	out, err := RewriteLattice(rel, input)
	if err != nil {
		return nil, err
	}
	return out.Strings(), nil
}

// TopRewrite returns the minimum-weight output of rel for input.
// Ties go to the first output in lattice order.
func TopRewrite(rel Relation, input string) (string, error) {
	out, err := RewriteLattice(rel, input)
	if err != nil {
		return "", err
	}
	best, _ := out.Shortest()
	return best.Text, nil
}

// OneTopRewrite is TopRewrite that fails with ErrAmbiguousRewrite when more
// than one output has the minimum weight.
func OneTopRewrite(rel Relation, input string) (string, error) {
	out, err := RewriteLattice(rel, input)
	if err != nil {
		return "", err
	}
	if n := out.Ties(); n > 1 {
		return "", fmt.Errorf("%w: %s has %d outputs of equal weight", ErrAmbiguousRewrite, rel.Name(), n)
	}
	best, _ := out.Shortest()
	return best.Text, nil
}

// Matches reports whether rel has any output for input.
func Matches(rel Relation, input string) (bool, error) {
	_, err := RewriteLattice(rel, input)
	if errors.Is(err, ErrNoRewrite) {
		return false, nil
	}
	return err == nil, err
}

// Intersect keeps the candidates of l that rel accepts, in lattice order.
// Each survivor's weight grows by the weight of its cheapest output under rel.
// Candidates whose application fails are dropped; their errors are joined
// and returned alongside the survivors.
func Intersect(l Lattice, rel Relation) (Lattice, error) {
	var errs []error
	out := make(Lattice, 0, len(l))
	for _, c := range l {
		outs, err := rel.Apply(c.Text)
		if err != nil {
			errs = append(errs, fmt.Errorf("candidate %q: %w", c.Text, err))
			continue
		}
		best, ok := outs.Shortest()
		if !ok {
			continue
		}
		out = append(out, Candidate{Text: c.Text, Weight: c.Weight + best.Weight})
	}
	return out, errors.Join(errs...)
}
