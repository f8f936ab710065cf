package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/nao1215/latinscan/internal/config"
	"github.com/nao1215/latinscan/internal/rewrite"
	"github.com/spf13/cobra"
)

// NewRewriteCmd creates the rewrite command.
func NewRewriteCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rewrite --rules KEY[,KEY...] [FILE]",
		Short: "Apply grammar rules to every line of a file",
		Long: `Rewrite applies a cascade of grammar rules to each line of FILE (or standard
input) and prints the best output of each line.

Rules are applied in the order given, so --rules NORMALIZE,PRONOUNCE prints
the baseline pronunciation of every line. Input lines are escaped, so
brackets are read as ordinary characters.

Rewrite stops at the first line the rules cannot process.

Examples:
  # Print the baseline pronunciation of every line
  latinscan rewrite --rules NORMALIZE,PRONOUNCE aeneid1.txt

  # Fail when a line has more than one best output
  latinscan rewrite --rules NORMALIZE --one-top-rewrite aeneid1.txt

  # Print every output with its weight
  latinscan rewrite --rules VARIABLE --all pronunciations.txt`,
		Args: cobra.MaximumNArgs(1),
		RunE: runRewriteCmd,
	}

	cmd.Flags().StringSliceP("rules", "R", nil,
		"Comma-separated archive keys applied in order (required)")
	cmd.Flags().StringP("grammar", "g", "",
		"Grammar archive (default: built-in Latin hexameter grammar)")
	cmd.Flags().Bool("one-top-rewrite", false,
		"Fail when the best output of a line is not unique")
	cmd.Flags().BoolP("all", "a", false,
		"Print every output with its weight instead of the best one")
	cmd.Flags().Int("max-candidates", config.DefaultMaxCandidates,
		"Maximum candidates a rule may produce for one line")

	return cmd
}

// runRewriteCmd executes the rewrite command.
func runRewriteCmd(cmd *cobra.Command, args []string) error {
	keys, err := cmd.Flags().GetStringSlice("rules")
	if err != nil {
		return err
	}
	if len(keys) == 0 {
		return errors.New("no rules given (use --rules KEY[,KEY...])")
	}
	grammarPath, err := cmd.Flags().GetString("grammar")
	if err != nil {
		return err
	}
	oneTop, err := cmd.Flags().GetBool("one-top-rewrite")
	if err != nil {
		return err
	}
	all, err := cmd.Flags().GetBool("all")
	if err != nil {
		return err
	}
	if oneTop && all {
		return errors.New("--one-top-rewrite and --all are mutually exclusive")
	}
	maxCandidates, err := cmd.Flags().GetInt("max-candidates")
	if err != nil {
		return err
	}
	if maxCandidates <= 0 {
		return config.ErrInvalidMaxCandidates
	}

	archive, err := loadArchive(grammarPath, maxCandidates, config.DefaultCacheTTL)
	if err != nil {
		return err
	}
	rel, err := composeRules(archive, keys, maxCandidates)
	if err != nil {
		return err
	}

	input := stdinName
	if len(args) == 1 {
		input = args[0]
	}
	lines, err := readInput(cmd, input)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", input, err)
	}

	logger := newLogger(cmd)
	out := cmd.OutOrStdout()
	for i, line := range lines {
		escaped := rewrite.Escape(line)

		if all {
			lattice, err := rewrite.RewriteLattice(rel, escaped)
			if err != nil {
				return fmt.Errorf("%s:%d: %w", input, i+1, err)
			}
			for _, c := range lattice {
				fmt.Fprintf(out, "%s\t%g\n", c.Text, c.Weight)
			}
			continue
		}

		rewriteFn := rewrite.TopRewrite
		if oneTop {
			rewriteFn = rewrite.OneTopRewrite
		}
		output, err := rewriteFn(rel, escaped)
		if err != nil {
			logger.Debug("rewrite failed", "line", i+1, "input", line, "error", err)
			return fmt.Errorf("%s:%d: %w", input, i+1, err)
		}
		fmt.Fprintln(out, output)
	}
	return nil
}

// composeRules looks up keys in the archive and composes them in order.
func composeRules(a *rewrite.Archive, keys []string, limit int) (rewrite.Relation, error) {
	rels := make([]rewrite.Relation, 0, len(keys))
	for i, key := range keys {
		key = strings.TrimSpace(key)
		keys[i] = key
		rel, err := a.Relation(key)
		if err != nil {
			return nil, fmt.Errorf("%w (available: %s)", err, strings.Join(a.Keys(), ", "))
		}
		rels = append(rels, rel)
	}
	if len(rels) == 1 {
		return rels[0], nil
	}
	return rewrite.Compose(strings.Join(keys, ","), rels...).WithCompositionLimit(limit), nil
}
