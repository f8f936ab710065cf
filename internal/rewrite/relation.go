package rewrite

import (
	"fmt"

	"github.com/dlclark/regexp2"
)

// Relation maps an input string to a lattice of weighted outputs.
// An empty lattice means the input is outside the relation's domain.
// Implementations must be safe for concurrent use.
type Relation interface {
	// Name returns the relation's name.
	Name() string

	// Apply returns every output of the relation for input.
	Apply(input string) (Lattice, error)
}

// Cascade applies an ordered list of steps to every candidate.
type Cascade struct {
	name   string
	steps  []step
	domain *regexp2.Regexp
	rng    *regexp2.Regexp
	limit  int
}

// CascadeOption configures a Cascade.
type CascadeOption func(*Cascade) error

// WithDomain restricts the cascade to inputs matching pattern.
func WithDomain(pattern string) CascadeOption {
	return func(c *Cascade) error {
		re, err := regexp2.Compile(pattern, regexp2.None)
		if err != nil {
			return fmt.Errorf("domain: %w", err)
		}
		c.domain = re
		return nil
	}
}

// WithRange drops outputs that do not match pattern.
func WithRange(pattern string) CascadeOption {
	return func(c *Cascade) error {
		re, err := regexp2.Compile(pattern, regexp2.None)
		if err != nil {
			return fmt.Errorf("range: %w", err)
		}
		c.rng = re
		return nil
	}
}

// WithLimit sets the candidate limit for the cascade.
func WithLimit(n int) CascadeOption {
	return func(c *Cascade) error {
		if n > 0 {
			c.limit = n
		}
		return nil
	}
}

// WithRule appends a rewrite rule.
func WithRule(spec RuleSpec) CascadeOption {
	return func(c *Cascade) error {
		r, err := NewRule(spec)
		if err != nil {
			return err
		}
		c.steps = append(c.steps, r)
		return nil
	}
}

// WithTransform appends a Unicode transform (see the Transform constants).
func WithTransform(kind string) CascadeOption {
	return func(c *Cascade) error {
		t, err := newTransform(kind)
		if err != nil {
			return err
		}
		c.steps = append(c.steps, t)
		return nil
	}
}

// NewCascade builds a cascade from options applied in order.
func NewCascade(name string, opts ...CascadeOption) (*Cascade, error) {
	c := &Cascade{
		name:  name,
		limit: DefaultCandidateLimit,
	}
	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
	}
	return c, nil
}

// Name implements Relation.
func (c *Cascade) Name() string {
	return c.name
}

// Len returns the number of steps.
func (c *Cascade) Len() int {
	return len(c.steps)
}

// Apply implements Relation.
func (c *Cascade) Apply(input string) (Lattice, error) {
	if c.domain != nil {
		ok, err := c.domain.MatchString(input)
		if err != nil {
			return nil, fmt.Errorf("%s: domain: %w", c.name, err)
		}
		if !ok {
			return nil, nil
		}
	}

	current := Lattice{{Text: input}}
	for _, st := range c.steps {
		b := newBuilder(c.limit)
		for _, cand := range current {
			if err := st.apply(cand, b.add); err != nil {
				return nil, fmt.Errorf("%s: %s: %w", c.name, st.name(), err)
			}
		}
		current = b.lattice()
	}

	if c.rng == nil {
		return current, nil
	}
	out := current[:0]
	for _, cand := range current {
		ok, err := c.rng.MatchString(cand.Text)
		if err != nil {
			return nil, fmt.Errorf("%s: range: %w", c.name, err)
		}
		if ok {
			out = append(out, cand)
		}
	}
	return out, nil
}

// Acceptor is the identity relation restricted to strings matching a pattern.
type Acceptor struct {
	name string
	re   *regexp2.Regexp
}

// NewAcceptor compiles an acceptor. The pattern should be anchored.
func NewAcceptor(name, pattern string) (*Acceptor, error) {
	re, err := regexp2.Compile(pattern, regexp2.None)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	return &Acceptor{name: name, re: re}, nil
}

// Name implements Relation.
func (a *Acceptor) Name() string {
	return a.name
}

// Apply implements Relation.
func (a *Acceptor) Apply(input string) (Lattice, error) {
	ok, err := a.re.MatchString(input)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", a.name, err)
	}
	if !ok {
		return nil, nil
	}
	return Lattice{{Text: input}}, nil
}

// Composition applies relations in sequence; weights add along each path.
type Composition struct {
	name      string
	relations []Relation
	limit     int
}

// Compose returns the sequential composition of relations.
func Compose(name string, relations ...Relation) *Composition {
	return &Composition{
		name:      name,
		relations: relations,
		limit:     DefaultCandidateLimit,
	}
}

// WithCompositionLimit sets the candidate limit and returns the composition.
func (c *Composition) WithCompositionLimit(n int) *Composition {
	if n > 0 {
		c.limit = n
	}
	return c
}

// Name implements Relation.
func (c *Composition) Name() string {
	return c.name
}

// Apply implements Relation.
func (c *Composition) Apply(input string) (Lattice, error) {
	current := Lattice{{Text: input}}
	for _, rel := range c.relations {
		b := newBuilder(c.limit)
		for _, cand := range current {
			outs, err := rel.Apply(cand.Text)
			if err != nil {
				return nil, fmt.Errorf("%s: %w", c.name, err)
			}
			for _, out := range outs {
				if err := b.add(Candidate{Text: out.Text, Weight: cand.Weight + out.Weight}); err != nil {
					return nil, fmt.Errorf("%s: %s: %w", c.name, rel.Name(), err)
				}
			}
		}
		current = b.lattice()
		if current.Empty() {
			return nil, nil
		}
	}
	return current, nil
}
