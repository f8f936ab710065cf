package rewrite

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"github.com/dlclark/regexp2"
)

// maxOptionalSites bounds the number of match sites an optional rule may
// fork on. 2^maxOptionalSites outputs per candidate is the worst case.
const maxOptionalSites = 12

// step is one stage of a cascade.
type step interface {
	name() string
	apply(in Candidate, emit func(Candidate) error) error
}

// RuleSpec describes a context-dependent rewrite rule.
type RuleSpec struct {
	// Name identifies the rule in error messages.
	Name string

	// Match is a regular expression in .NET syntax. Lookbehind and
	// lookahead express the rule's left and right context.
	Match string

	// Replace is the replacement template. $1, ${name} and $$ are expanded.
	Replace string

	// Optional rules fork candidates over every subset of their matches.
	Optional bool

	// Cost is added once for every match site that is rewritten.
	Cost float64

	// SkipCost is added once for every match site an optional rule leaves alone.
	SkipCost float64
}

// Rule is a compiled RuleSpec.
type Rule struct {
	spec RuleSpec
	re   *regexp2.Regexp
}

// NewRule compiles a rule.
func NewRule(spec RuleSpec) (*Rule, error) {
	if spec.Match == "" {
		return nil, fmt.Errorf("rule %q: empty match pattern", spec.Name)
	}
	re, err := regexp2.Compile(spec.Match, regexp2.None)
	if err != nil {
		return nil, fmt.Errorf("rule %q: %w", spec.Name, err)
	}
	return &Rule{spec: spec, re: re}, nil
}

func (r *Rule) name() string {
	if r.spec.Name != "" {
		return r.spec.Name
	}
	return r.spec.Match
}

// site is one match of a rule in a candidate, with its expanded replacement.
type site struct {
	index       int
	length      int
	replacement string
}

func (r *Rule) sites(text []rune) ([]site, error) {
	var out []site
	m, err := r.re.FindRunesMatch(text)
	for m != nil && err == nil {
		out = append(out, site{
			index:       m.Index,
			length:      m.Length,
			replacement: expand(r.spec.Replace, m),
		})
		m, err = r.re.FindNextMatch(m)
	}
	if err != nil {
		return nil, fmt.Errorf("rule %q: %w", r.name(), err)
	}
	return out, nil
}

func (r *Rule) apply(in Candidate, emit func(Candidate) error) error {
	text := []rune(in.Text)
	sites, err := r.sites(text)
	if err != nil {
		return err
	}
	if len(sites) == 0 {
		return emit(in)
	}

	if !r.spec.Optional {
		return emit(Candidate{
			Text:   splice(text, sites, all),
			Weight: in.Weight + r.spec.Cost*float64(len(sites)),
		})
	}

	if len(sites) > maxOptionalSites {
		return fmt.Errorf("%w: rule %q matched %d sites", ErrTooManyMatches, r.name(), len(sites))
	}
	for mask := uint(0); mask < 1<<len(sites); mask++ {
		applied := popcount(mask)
		skipped := len(sites) - applied
		c := Candidate{
			Text: splice(text, sites, func(i int) bool { return mask&(1<<i) != 0 }),
			Weight: in.Weight +
				r.spec.Cost*float64(applied) +
				r.spec.SkipCost*float64(skipped),
		}
		if err := emit(c); err != nil {
			return err
		}
	}
	return nil
}

func all(int) bool { return true }

// splice rebuilds text with the selected sites replaced.
func splice(text []rune, sites []site, selected func(int) bool) string {
	var b strings.Builder
	prev := 0
	for i, s := range sites {
		if !selected(i) {
			continue
		}
		b.WriteString(string(text[prev:s.index]))
		b.WriteString(s.replacement)
		prev = s.index + s.length
	}
	b.WriteString(string(text[prev:]))
	return b.String()
}

func popcount(x uint) int {
	n := 0
	for ; x != 0; x &= x - 1 {
		n++
	}
	return n
}

// expand substitutes group references in a replacement template.
func expand(template string, m *regexp2.Match) string {
	if !strings.Contains(template, "$") {
		return template
	}

	var b strings.Builder
	rs := []rune(template)
	for i := 0; i < len(rs); i++ {
		if rs[i] != '$' || i+1 == len(rs) {
			b.WriteRune(rs[i])
			continue
		}
		next := rs[i+1]
		switch {
		case next == '$':
			b.WriteRune('$')
			i++
		case next == '{':
			end := i + 2
			for end < len(rs) && rs[end] != '}' {
				end++
			}
			if end == len(rs) {
				b.WriteRune(rs[i])
				continue
			}
			ref := string(rs[i+2 : end])
			b.WriteString(groupText(m, ref))
			i = end
		case unicode.IsDigit(next):
			end := i + 1
			for end < len(rs) && unicode.IsDigit(rs[end]) {
				end++
			}
			b.WriteString(groupText(m, string(rs[i+1:end])))
			i = end - 1
		default:
			b.WriteRune(rs[i])
		}
	}
	return b.String()
}

func groupText(m *regexp2.Match, ref string) string {
	var g *regexp2.Group
	if n, err := strconv.Atoi(ref); err == nil {
		g = m.GroupByNumber(n)
	} else {
		g = m.GroupByName(ref)
	}
	if g == nil {
		return ""
	}
	return g.String()
}
