package grammar

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/nao1215/latinscan/internal/rewrite"
)

func loadDefault(t *testing.T) *rewrite.Archive {
	t.Helper()
	a, err := Default()
	if err != nil {
		t.Fatalf("Default() error = %v", err)
	}
	return a
}

func relation(t *testing.T, a *rewrite.Archive, key string) rewrite.Relation {
	t.Helper()
	rel, err := a.Relation(key)
	if err != nil {
		t.Fatalf("Relation(%q) error = %v", key, err)
	}
	return rel
}

func TestDefaultDefinesAllRelations(t *testing.T) {
	t.Parallel()

	a := loadDefault(t)
	for _, key := range []string{"NORMALIZE", "PRONOUNCE", "VARIABLE", "SYLLABLE", "WEIGHT", "FOOT", "HEXAMETER"} {
		if !a.Has(key) {
			t.Errorf("embedded grammar lacks %s", key)
		}
	}
}

func TestNormalize(t *testing.T) {
	t.Parallel()

	rel := relation(t, loadDefault(t), "NORMALIZE")

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "punctuation and case",
			input: "Arma virumque canō, Trojae quī prīmus ab ōris",
			want:  "arma virumque canō trojae quī prīmus ab ōris",
		},
		{
			name:  "editorial brackets",
			input: rewrite.Escape("[Ille haec dēpositā tandem formīdine fātur:]"),
			want:  "ille haec dēpositā tandem formīdine fātur",
		},
		{
			name:  "whitespace",
			input: "  Hic   cursus fuit,  ",
			want:  "hic cursus fuit",
		},
		{
			name:  "decomposed macrons and diaeresis",
			input: "Ca\u0304no\u0304 poe\u0308ta",
			want:  "cānō poeta",
		},
		{
			name:  "ligatures",
			input: "Æneas cœpit",
			want:  "aeneas coepit",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := rewrite.TopRewrite(rel, tt.input)
			if err != nil {
				t.Fatalf("TopRewrite() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("TopRewrite() = %q, want %q", got, tt.want)
			}
		})
	}

	t.Run("rejects text without Latin letters", func(t *testing.T) {
		t.Parallel()

		for _, input := range []string{"", "1534.", "μῆνιν ἄειδε"} {
			if _, err := rewrite.TopRewrite(rel, input); !errors.Is(err, rewrite.ErrNoRewrite) {
				t.Errorf("TopRewrite(%q) error = %v, want ErrNoRewrite", input, err)
			}
		}
	})
}

func TestPronounce(t *testing.T) {
	t.Parallel()

	rel := relation(t, loadDefault(t), "PRONOUNCE")

	tests := []struct {
		input string
		want  string
	}{
		{
			input: "arma virumque canō trojae quī prīmus ab ōris",
			want:  "arma wirumkwe kanoː trojjaj kwiː priːmu sa boːris",
		},
		{
			input: "hic cursus fuit",
			want:  "hik kursus fuit",
		},
		{
			input: "ille haec dēpositā tandem formīdine fātur",
			want:  "ille hajk deːpositaː tandem formiːdine faːtur",
		},
		{
			input: "rēx phoebus arma lingua",
			want:  "reːks pʰojbu sarma lingwa",
		},
		{
			input: "aurum ejus",
			want:  "awrum ejjus",
		},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			t.Parallel()

			got, err := rewrite.TopRewrite(rel, tt.input)
			if err != nil {
				t.Fatalf("TopRewrite() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("TopRewrite() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestVariable(t *testing.T) {
	t.Parallel()

	rel := relation(t, loadDefault(t), "VARIABLE")

	t.Run("elision is optional and preferred", func(t *testing.T) {
		t.Parallel()

		got, err := rewrite.RewriteLattice(rel, "ille hajk")
		if err != nil {
			t.Fatalf("RewriteLattice() error = %v", err)
		}
		want := rewrite.Lattice{
			{Text: "ille hajk", Weight: 1},
			{Text: "ill hajk", Weight: 0},
		}
		if len(got) != len(want) {
			t.Fatalf("got %v, want %v", got, want)
		}
		for i := range want {
			if got[i] != want[i] {
				t.Errorf("candidate %d = %+v, want %+v", i, got[i], want[i])
			}
		}
	})

	t.Run("ecthlipsis removes final m", func(t *testing.T) {
		t.Parallel()

		got, err := rewrite.TopRewrite(rel, "multum ille")
		if err != nil {
			t.Fatalf("TopRewrite() error = %v", err)
		}
		if got != "mult ille" {
			t.Errorf("TopRewrite() = %q, want %q", got, "mult ille")
		}
	})

	t.Run("lines without license yield the input", func(t *testing.T) {
		t.Parallel()

		got, err := rewrite.Rewrites(rel, "hik kursus fuit")
		if err != nil {
			t.Fatalf("Rewrites() error = %v", err)
		}
		if len(got) != 1 || got[0] != "hik kursus fuit" {
			t.Errorf("Rewrites() = %v", got)
		}
	})
}

func TestMeter(t *testing.T) {
	t.Parallel()

	a := loadDefault(t)
	meter := rewrite.Compose("METER",
		relation(t, a, "SYLLABLE"),
		relation(t, a, "WEIGHT"),
		relation(t, a, "FOOT"),
		relation(t, a, "HEXAMETER"),
	)

	tests := []struct {
		name  string
		input string
		feet  string
	}{
		{name: "aeneid 1.1", input: "arma wirumkwe kanoː trojjaj kwiː priːmu sa boːris", feet: "DDSSDT"},
		{name: "elided line", input: "ill hajk deːpositaː tandem formiːdine faːtur", feet: "SDSSDT"},
		{name: "short line", input: "hik kursus fuit"},
		{name: "hiatus", input: "ille hajk deːpositaː tandem formiːdine faːtur"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := meter.Apply(tt.input)
			if err != nil {
				t.Fatalf("Apply() error = %v", err)
			}
			if tt.feet == "" {
				if !got.Empty() {
					t.Errorf("expected rejection, got %v", got.Strings())
				}
				return
			}
			best, ok := got.Shortest()
			if !ok {
				t.Fatal("expected the line to scan")
			}
			if best.Text != tt.feet {
				t.Errorf("feet = %q, want %q", best.Text, tt.feet)
			}
		})
	}
}

func TestLoad(t *testing.T) {
	t.Parallel()

	t.Run("empty path loads the embedded grammar", func(t *testing.T) {
		t.Parallel()

		a, err := Load("")
		if err != nil {
			t.Fatalf("Load() error = %v", err)
		}
		if a.Name() != "latin-hexameter" {
			t.Errorf("Name() = %q", a.Name())
		}
		if Identifier("") != DefaultName {
			t.Errorf("Identifier() = %q", Identifier(""))
		}
	})

	t.Run("exported source loads from disk", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "latin.yaml")
		if err := os.WriteFile(path, Source(), 0o600); err != nil {
			t.Fatalf("failed to write grammar: %v", err)
		}
		a, err := Load(path)
		if err != nil {
			t.Fatalf("Load() error = %v", err)
		}
		if !a.Has("HEXAMETER") {
			t.Error("expected HEXAMETER relation")
		}
		if Identifier(path) != path {
			t.Errorf("Identifier() = %q", Identifier(path))
		}
	})
}
