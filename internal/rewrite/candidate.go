package rewrite

import "fmt"

// DefaultCandidateLimit is the maximum number of candidates a single
// relation application may hold at any point.
const DefaultCandidateLimit = 4096

// Candidate is one weighted output string.
type Candidate struct {
	// Text is the output string.
	Text string

	// Weight is the accumulated cost of producing Text. Lower is preferred.
	Weight float64
}

// Lattice is an ordered set of candidates with unique texts.
// The order is the canonical enumeration order of the relation that
// produced it.
type Lattice []Candidate

// Empty reports whether the lattice holds no candidates.
func (l Lattice) Empty() bool {
	return len(l) == 0
}

// Strings returns the candidate texts in lattice order.
func (l Lattice) Strings() []string {
	out := make([]string, len(l))
	for i, c := range l {
		out[i] = c.Text
	}
	return out
}

// Shortest returns the candidate with the minimum weight. Ties go to the
// candidate that comes first in lattice order. The boolean is false for an
// empty lattice.
func (l Lattice) Shortest() (Candidate, bool) {
	if len(l) == 0 {
		return Candidate{}, false
	}
	best := l[0]
	for _, c := range l[1:] {
		if c.Weight < best.Weight {
			best = c
		}
	}
	return best, true
}

// Ties returns the number of candidates that share the minimum weight.
func (l Lattice) Ties() int {
	best, ok := l.Shortest()
	if !ok {
		return 0
	}
	n := 0
	for _, c := range l {
		if c.Weight == best.Weight {
			n++
		}
	}
	return n
}

// Clone returns a copy of the lattice that shares no backing array.
func (l Lattice) Clone() Lattice {
	if l == nil {
		return nil
	}
	out := make(Lattice, len(l))
	copy(out, l)
	return out
}

// builder accumulates candidates, merging duplicates.
// A duplicate keeps the position of its first occurrence and the lowest weight seen.
type builder struct {
	items Lattice
	index map[string]int
	limit int
}

func newBuilder(limit int) *builder {
	if limit <= 0 {
		limit = DefaultCandidateLimit
	}
	return &builder{
		index: make(map[string]int),
		limit: limit,
	}
}

func (b *builder) add(c Candidate) error {
	if i, ok := b.index[c.Text]; ok {
		if c.Weight < b.items[i].Weight {
			b.items[i].Weight = c.Weight
		}
		return nil
	}
	if len(b.items) >= b.limit {
		return fmt.Errorf("%w: more than %d candidates", ErrLatticeLimit, b.limit)
	}
	b.index[c.Text] = len(b.items)
	b.items = append(b.items, c)
	return nil
}

func (b *builder) lattice() Lattice {
	return b.items
}
