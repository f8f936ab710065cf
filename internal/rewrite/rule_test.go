package rewrite

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func mustCascade(t *testing.T, opts ...CascadeOption) *Cascade {
	t.Helper()
	c, err := NewCascade("test", opts...)
	if err != nil {
		t.Fatalf("NewCascade() error = %v", err)
	}
	return c
}

func TestCascadeObligatoryRule(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		spec  RuleSpec
		input string
		want  string
	}{
		{
			name:  "replaces every match",
			spec:  RuleSpec{Match: "a", Replace: "o"},
			input: "banana",
			want:  "bonono",
		},
		{
			name:  "respects left context",
			spec:  RuleSpec{Match: "(?<=n)g", Replace: "k"},
			input: "ngag",
			want:  "nkag",
		},
		{
			name:  "respects right context",
			spec:  RuleSpec{Match: "s(?= [aeiou])", Replace: ""},
			input: "mus ab",
			want:  "mu ab",
		},
		{
			name:  "expands numbered groups",
			spec:  RuleSpec{Match: "(k) (?=a)", Replace: " $1"},
			input: "hik ab",
			want:  "hi kab",
		},
		{
			name:  "expands named groups and literal dollar",
			spec:  RuleSpec{Match: "(?<v>[aeiou])x", Replace: "${v}$$"},
			input: "ax",
			want:  "a$",
		},
		{
			name:  "inserts at empty matches",
			spec:  RuleSpec{Match: "(?<=a)(?=b)", Replace: "-"},
			input: "abab",
			want:  "a-ba-b",
		},
		{
			name:  "leaves unmatched input unchanged",
			spec:  RuleSpec{Match: "z", Replace: "s"},
			input: "arma",
			want:  "arma",
		},
		{
			name:  "matches on runes",
			spec:  RuleSpec{Match: "ō", Replace: "oː"},
			input: "kanō",
			want:  "kanoː",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			c := mustCascade(t, WithRule(tt.spec))
			got, err := c.Apply(tt.input)
			if err != nil {
				t.Fatalf("Apply() error = %v", err)
			}
			if len(got) != 1 {
				t.Fatalf("expected 1 output, got %d: %v", len(got), got.Strings())
			}
			if got[0].Text != tt.want {
				t.Errorf("Apply() = %q, want %q", got[0].Text, tt.want)
			}
		})
	}
}

func TestCascadeOptionalRule(t *testing.T) {
	t.Parallel()

	t.Run("enumerates subsets in counting order", func(t *testing.T) {
		t.Parallel()

		c := mustCascade(t, WithRule(RuleSpec{Match: "a", Replace: "A", Optional: true, Cost: 1}))
		got, err := c.Apply("aba")
		if err != nil {
			t.Fatalf("Apply() error = %v", err)
		}

		want := Lattice{
			{Text: "aba", Weight: 0},
			{Text: "Aba", Weight: 1},
			{Text: "abA", Weight: 1},
			{Text: "AbA", Weight: 2},
		}
		if diff := cmp.Diff(want, got); diff != "" {
			t.Errorf("Apply() mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("charges skip cost for unapplied sites", func(t *testing.T) {
		t.Parallel()

		c := mustCascade(t, WithRule(RuleSpec{Match: "e(?= a)", Replace: "", Optional: true, SkipCost: 1}))
		got, err := c.Apply("ille arma")
		if err != nil {
			t.Fatalf("Apply() error = %v", err)
		}

		want := Lattice{
			{Text: "ille arma", Weight: 1},
			{Text: "ill arma", Weight: 0},
		}
		if diff := cmp.Diff(want, got); diff != "" {
			t.Errorf("Apply() mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("rejects too many sites", func(t *testing.T) {
		t.Parallel()

		c := mustCascade(t, WithRule(RuleSpec{Match: "a", Replace: "", Optional: true}))
		_, err := c.Apply(strings.Repeat("a", maxOptionalSites+1))
		if !errors.Is(err, ErrTooManyMatches) {
			t.Errorf("expected ErrTooManyMatches, got %v", err)
		}
	})
}

func TestCascadeMergesDuplicates(t *testing.T) {
	t.Parallel()

	c := mustCascade(t,
		WithRule(RuleSpec{Name: "maybe", Match: "x", Replace: "y", Optional: true, Cost: 1}),
		WithRule(RuleSpec{Name: "always", Match: "x", Replace: "y"}),
	)

	got, err := c.Apply("x")
	if err != nil {
		t.Fatalf("Apply() error = %v", err)
	}

	want := Lattice{{Text: "y", Weight: 0}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Apply() mismatch (-want +got):\n%s", diff)
	}
}

func TestCascadeLimit(t *testing.T) {
	t.Parallel()

	c := mustCascade(t,
		WithLimit(3),
		WithRule(RuleSpec{Match: "a", Replace: "b", Optional: true}),
	)

	_, err := c.Apply("aa")
	if !errors.Is(err, ErrLatticeLimit) {
		t.Errorf("expected ErrLatticeLimit, got %v", err)
	}
}

func TestCascadeDomainAndRange(t *testing.T) {
	t.Parallel()

	c := mustCascade(t,
		WithDomain(`^[a-z ]+$`),
		WithRule(RuleSpec{Match: "a", Replace: "A", Optional: true}),
		WithRange(`^[^A]*$`),
	)

	t.Run("outside domain yields nothing", func(t *testing.T) {
		t.Parallel()

		got, err := c.Apply("Arma")
		if err != nil {
			t.Fatalf("Apply() error = %v", err)
		}
		if !got.Empty() {
			t.Errorf("expected empty lattice, got %v", got.Strings())
		}
	})

	t.Run("range drops outputs", func(t *testing.T) {
		t.Parallel()

		got, err := c.Apply("arma")
		if err != nil {
			t.Fatalf("Apply() error = %v", err)
		}
		if diff := cmp.Diff([]string{"arma"}, got.Strings()); diff != "" {
			t.Errorf("Apply() mismatch (-want +got):\n%s", diff)
		}
	})
}

func TestCascadeTransforms(t *testing.T) {
	t.Parallel()

	tests := []struct {
		kind  string
		input string
		want  string
	}{
		{kind: TransformLower, input: "ĀRMA Virumque", want: "ārma virumque"},
		{kind: TransformStripMarks, input: "ārma", want: "arma"},
		{kind: TransformNFD, input: "\u014d", want: "o\u0304"},
		{kind: TransformNFC, input: "o\u0304", want: "\u014d"},
	}

	for _, tt := range tests {
		t.Run(tt.kind, func(t *testing.T) {
			t.Parallel()

			c := mustCascade(t, WithTransform(tt.kind))
			got, err := c.Apply(tt.input)
			if err != nil {
				t.Fatalf("Apply() error = %v", err)
			}
			if got[0].Text != tt.want {
				t.Errorf("Apply() = %q, want %q", got[0].Text, tt.want)
			}
		})
	}

	t.Run("unknown transform", func(t *testing.T) {
		t.Parallel()

		_, err := NewCascade("bad", WithTransform("upper"))
		if !errors.Is(err, ErrUnknownTransform) {
			t.Errorf("expected ErrUnknownTransform, got %v", err)
		}
	})
}

func TestNewRuleErrors(t *testing.T) {
	t.Parallel()

	if _, err := NewRule(RuleSpec{Name: "empty"}); err == nil {
		t.Error("expected error for empty pattern")
	}
	if _, err := NewRule(RuleSpec{Name: "broken", Match: "(a"}); err == nil {
		t.Error("expected error for invalid pattern")
	}
}
