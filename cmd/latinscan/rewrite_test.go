package main

import (
	"errors"
	"strings"
	"testing"

	"github.com/nao1215/latinscan/internal/rewrite"
)

// TestNewRewriteCmd tests the rewrite command creation.
func TestNewRewriteCmd(t *testing.T) {
	t.Parallel()

	cmd := NewRewriteCmd()
	for _, name := range []string{"rules", "grammar", "one-top-rewrite", "all", "max-candidates"} {
		if cmd.Flags().Lookup(name) == nil {
			t.Errorf("expected %s flag", name)
		}
	}
	if cmd.Flags().Lookup("rules").Shorthand != "R" {
		t.Error("expected shorthand 'R' for rules")
	}
}

func TestRewriteCmd(t *testing.T) {
	t.Parallel()

	t.Run("baseline pronunciation", func(t *testing.T) {
		t.Parallel()

		input := writeTestFile(t, "lines.txt", "Arma virumque canō, Trojae quī prīmus ab ōris\nHic cursus fuit,\n")
		stdout, _, err := executeCmd(t, "", "rewrite", "--rules", "NORMALIZE,PRONOUNCE", input)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		want := "arma wirumkwe kanoː trojjaj kwiː priːmu sa boːris\nhik kursus fuit\n"
		if stdout != want {
			t.Errorf("output = %q, want %q", stdout, want)
		}
	})

	t.Run("brackets are read as text", func(t *testing.T) {
		t.Parallel()

		stdout, _, err := executeCmd(t, "[Ille haec dēpositā tandem formīdine fātur:]\n", "rewrite", "-R", "NORMALIZE")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if stdout != "ille haec dēpositā tandem formīdine fātur\n" {
			t.Errorf("output = %q", stdout)
		}
	})

	t.Run("all outputs with weights", func(t *testing.T) {
		t.Parallel()

		stdout, _, err := executeCmd(t, "ille hajk\n", "rewrite", "--rules", "VARIABLE", "--all", "-")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if stdout != "ille hajk\t1\nill hajk\t0\n" {
			t.Errorf("output = %q", stdout)
		}
	})

	t.Run("single rule with spaces in the list", func(t *testing.T) {
		t.Parallel()

		stdout, _, err := executeCmd(t, "Hic cursus fuit,\n", "rewrite", "--rules", " NORMALIZE ")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if stdout != "hic cursus fuit\n" {
			t.Errorf("output = %q", stdout)
		}
	})
}

func TestRewriteCmdErrors(t *testing.T) {
	t.Parallel()

	t.Run("line without a rewrite", func(t *testing.T) {
		t.Parallel()

		input := writeTestFile(t, "lines.txt", "Hic cursus fuit,\n1534.\n")
		stdout, _, err := executeCmd(t, "", "rewrite", "--rules", "NORMALIZE", input)
		if !errors.Is(err, rewrite.ErrNoRewrite) {
			t.Fatalf("error = %v, want ErrNoRewrite", err)
		}
		if !strings.Contains(err.Error(), input+":2:") {
			t.Errorf("error %q does not name the line", err)
		}
		if stdout != "hic cursus fuit\n" {
			t.Errorf("expected lines before the failure to be printed, got %q", stdout)
		}
	})

	t.Run("unknown key", func(t *testing.T) {
		t.Parallel()

		_, _, err := executeCmd(t, "x\n", "rewrite", "--rules", "NORMALIZE,SCAN")
		if !errors.Is(err, rewrite.ErrUnknownRelation) {
			t.Fatalf("error = %v, want ErrUnknownRelation", err)
		}
		if !strings.Contains(err.Error(), "HEXAMETER") {
			t.Errorf("expected available keys in %q", err)
		}
	})

	t.Run("missing rules", func(t *testing.T) {
		t.Parallel()

		if _, _, err := executeCmd(t, "x\n", "rewrite"); err == nil {
			t.Error("expected error without --rules")
		}
	})

	t.Run("conflicting modes", func(t *testing.T) {
		t.Parallel()

		if _, _, err := executeCmd(t, "x\n", "rewrite", "-R", "NORMALIZE", "--all", "--one-top-rewrite"); err == nil {
			t.Error("expected error for --all with --one-top-rewrite")
		}
	})

	t.Run("invalid max candidates", func(t *testing.T) {
		t.Parallel()

		if _, _, err := executeCmd(t, "x\n", "rewrite", "-R", "NORMALIZE", "--max-candidates", "0"); err == nil {
			t.Error("expected error for zero max candidates")
		}
	})
}
