package rewrite

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"time"

	"gopkg.in/yaml.v3"
)

// Archive is a named collection of relations loaded from a rule archive.
type Archive struct {
	name        string
	description string
	relations   map[string]Relation
}

// archiveFile is the YAML layout of a rule archive.
type archiveFile struct {
	Name        string                  `yaml:"name"`
	Description string                  `yaml:"description"`
	Rules       map[string]relationSpec `yaml:"rules"`
}

// relationSpec describes one relation. Exactly one of Steps, Accept and
// Compose selects the relation kind; Steps is the default.
type relationSpec struct {
	Description string     `yaml:"description"`
	Steps       []stepSpec `yaml:"steps"`
	Accept      string     `yaml:"accept"`
	Compose     []string   `yaml:"compose"`
	Domain      string     `yaml:"domain"`
	Range       string     `yaml:"range"`
	Cache       bool       `yaml:"cache"`
}

type stepSpec struct {
	Name      string  `yaml:"name"`
	Transform string  `yaml:"transform"`
	Match     string  `yaml:"match"`
	Replace   string  `yaml:"replace"`
	Optional  bool    `yaml:"optional"`
	Cost      float64 `yaml:"cost"`
	SkipCost  float64 `yaml:"skipCost"`
}

type archiveOptions struct {
	limit    int
	cacheTTL time.Duration
}

// ArchiveOption configures archive loading.
type ArchiveOption func(*archiveOptions)

// WithCandidateLimit sets the candidate limit of every relation in the archive.
func WithCandidateLimit(n int) ArchiveOption {
	return func(o *archiveOptions) {
		if n > 0 {
			o.limit = n
		}
	}
}

// WithCacheTTL sets the expiry of memoized results for relations marked
// `cache: true`. Zero keeps results for the life of the archive.
func WithCacheTTL(ttl time.Duration) ArchiveOption {
	return func(o *archiveOptions) {
		o.cacheTTL = ttl
	}
}

// LoadArchive reads and builds the rule archive at path.
func LoadArchive(path string, opts ...ArchiveOption) (*Archive, error) {
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidArchive, err)
	}
	a, err := ParseArchive(data, opts...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return a, nil
}

// ParseArchive builds a rule archive from its YAML source.
func ParseArchive(data []byte, opts ...ArchiveOption) (*Archive, error) {
	o := &archiveOptions{limit: DefaultCandidateLimit}
	for _, opt := range opts {
		opt(o)
	}

	var file archiveFile
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&file); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: empty archive", ErrInvalidArchive)
		}
		return nil, fmt.Errorf("%w: %w", ErrInvalidArchive, err)
	}
	if len(file.Rules) == 0 {
		return nil, fmt.Errorf("%w: no rules defined", ErrInvalidArchive)
	}

	b := &archiveBuilder{
		specs:    file.Rules,
		opts:     o,
		built:    make(map[string]Relation, len(file.Rules)),
		visiting: make(map[string]bool),
	}
	for _, key := range sortedKeys(file.Rules) {
		if _, err := b.build(key); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidArchive, err)
		}
	}

	return &Archive{
		name:        file.Name,
		description: file.Description,
		relations:   b.built,
	}, nil
}

// Name returns the archive's declared name.
func (a *Archive) Name() string {
	return a.name
}

// Description returns the archive's declared description.
func (a *Archive) Description() string {
	return a.description
}

// Has reports whether the archive defines key.
func (a *Archive) Has(key string) bool {
	_, ok := a.relations[key]
	return ok
}

// Relation returns the relation stored under key.
func (a *Archive) Relation(key string) (Relation, error) {
	rel, ok := a.relations[key]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownRelation, key)
	}
	return rel, nil
}

// Keys returns the relation keys in sorted order.
func (a *Archive) Keys() []string {
	return sortedKeys(a.relations)
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

type archiveBuilder struct {
	specs    map[string]relationSpec
	opts     *archiveOptions
	built    map[string]Relation
	visiting map[string]bool
}

func (b *archiveBuilder) build(key string) (Relation, error) {
	if rel, ok := b.built[key]; ok {
		return rel, nil
	}
	spec, ok := b.specs[key]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownRelation, key)
	}
	if b.visiting[key] {
		return nil, fmt.Errorf("relation %q: composition cycle", key)
	}
	b.visiting[key] = true
	defer delete(b.visiting, key)

	rel, err := b.buildSpec(key, spec)
	if err != nil {
		return nil, err
	}
	if spec.Cache {
		rel = Cached(rel, b.opts.cacheTTL)
	}
	b.built[key] = rel
	return rel, nil
}

func (b *archiveBuilder) buildSpec(key string, spec relationSpec) (Relation, error) {
	kinds := 0
	if len(spec.Steps) > 0 {
		kinds++
	}
	if spec.Accept != "" {
		kinds++
	}
	if len(spec.Compose) > 0 {
		kinds++
	}
	if kinds > 1 {
		return nil, fmt.Errorf("relation %q: steps, accept and compose are mutually exclusive", key)
	}

	switch {
	case spec.Accept != "":
		return NewAcceptor(key, spec.Accept)
	case len(spec.Compose) > 0:
		parts := make([]Relation, 0, len(spec.Compose))
		for _, ref := range spec.Compose {
			rel, err := b.build(ref)
			if err != nil {
				return nil, fmt.Errorf("relation %q: %w", key, err)
			}
			parts = append(parts, rel)
		}
		return Compose(key, parts...).WithCompositionLimit(b.opts.limit), nil
	}

	opts := []CascadeOption{WithLimit(b.opts.limit)}
	if spec.Domain != "" {
		opts = append(opts, WithDomain(spec.Domain))
	}
	for i, st := range spec.Steps {
		switch {
		case st.Transform != "" && st.Match != "":
			return nil, fmt.Errorf("relation %q: step %d: transform and match are mutually exclusive", key, i)
		case st.Transform != "":
			opts = append(opts, WithTransform(st.Transform))
		case st.Match != "":
			name := st.Name
			if name == "" {
				name = fmt.Sprintf("%s#%d", key, i)
			}
			opts = append(opts, WithRule(RuleSpec{
				Name:     name,
				Match:    st.Match,
				Replace:  st.Replace,
				Optional: st.Optional,
				Cost:     st.Cost,
				SkipCost: st.SkipCost,
			}))
		default:
			return nil, fmt.Errorf("relation %q: step %d: neither transform nor match given", key, i)
		}
	}
	if spec.Range != "" {
		opts = append(opts, WithRange(spec.Range))
	}
	return NewCascade(key, opts...)
}
