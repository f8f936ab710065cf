package rewrite

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
)

const testArchive = `
name: test
description: small archive for tests
rules:
  UPPER:
    steps:
      - name: a
        match: 'a'
        replace: 'A'
  MAYBE:
    steps:
      - match: 'b'
        replace: 'B'
        optional: true
        cost: 1
  ONLY_AB:
    accept: '^[AaBb]+$'
  BOTH:
    compose: [UPPER, MAYBE, ONLY_AB]
    cache: true
`

func TestParseArchive(t *testing.T) {
	t.Parallel()

	a, err := ParseArchive([]byte(testArchive))
	if err != nil {
		t.Fatalf("ParseArchive() error = %v", err)
	}

	if a.Name() != "test" {
		t.Errorf("Name() = %q, want %q", a.Name(), "test")
	}
	if diff := cmp.Diff([]string{"BOTH", "MAYBE", "ONLY_AB", "UPPER"}, a.Keys()); diff != "" {
		t.Errorf("Keys() mismatch (-want +got):\n%s", diff)
	}

	t.Run("composition applies relations in order", func(t *testing.T) {
		t.Parallel()

		rel, err := a.Relation("BOTH")
		if err != nil {
			t.Fatalf("Relation() error = %v", err)
		}
		got, err := rel.Apply("ab")
		if err != nil {
			t.Fatalf("Apply() error = %v", err)
		}

		want := Lattice{{Text: "Ab", Weight: 0}, {Text: "AB", Weight: 1}}
		if diff := cmp.Diff(want, got); diff != "" {
			t.Errorf("Apply() mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("acceptor rejects", func(t *testing.T) {
		t.Parallel()

		rel, err := a.Relation("BOTH")
		if err != nil {
			t.Fatalf("Relation() error = %v", err)
		}
		got, err := rel.Apply("abc")
		if err != nil {
			t.Fatalf("Apply() error = %v", err)
		}
		if !got.Empty() {
			t.Errorf("expected empty lattice, got %v", got.Strings())
		}
	})

	t.Run("unknown key", func(t *testing.T) {
		t.Parallel()

		if a.Has("NOPE") {
			t.Error("Has() = true for unknown key")
		}
		if _, err := a.Relation("NOPE"); !errors.Is(err, ErrUnknownRelation) {
			t.Errorf("expected ErrUnknownRelation, got %v", err)
		}
	})
}

func TestParseArchiveErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		data string
	}{
		{name: "empty", data: ""},
		{name: "no rules", data: "name: x\n"},
		{name: "unknown field", data: "rules:\n  A:\n    accept: 'a'\n    weight: 1\n"},
		{name: "bad pattern", data: "rules:\n  A:\n    steps:\n      - match: '(a'\n"},
		{name: "mixed kinds", data: "rules:\n  A:\n    accept: 'a'\n    compose: [A]\n"},
		{name: "empty step", data: "rules:\n  A:\n    steps:\n      - name: nothing\n"},
		{name: "transform and match", data: "rules:\n  A:\n    steps:\n      - transform: lower\n        match: 'a'\n"},
		{name: "unknown reference", data: "rules:\n  A:\n    compose: [B]\n"},
		{name: "cycle", data: "rules:\n  A:\n    compose: [B]\n  B:\n    compose: [A]\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if _, err := ParseArchive([]byte(tt.data)); !errors.Is(err, ErrInvalidArchive) {
				t.Errorf("expected ErrInvalidArchive, got %v", err)
			}
		})
	}
}

func TestLoadArchive(t *testing.T) {
	t.Parallel()

	t.Run("loads from file", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "rules.yaml")
		if err := os.WriteFile(path, []byte(testArchive), 0o600); err != nil {
			t.Fatalf("failed to write archive: %v", err)
		}

		a, err := LoadArchive(path, WithCandidateLimit(16))
		if err != nil {
			t.Fatalf("LoadArchive() error = %v", err)
		}
		if !a.Has("UPPER") {
			t.Error("expected UPPER relation")
		}
	})

	t.Run("missing file", func(t *testing.T) {
		t.Parallel()

		_, err := LoadArchive(filepath.Join(t.TempDir(), "missing.yaml"))
		if !errors.Is(err, ErrInvalidArchive) {
			t.Errorf("expected ErrInvalidArchive, got %v", err)
		}
	})
}
