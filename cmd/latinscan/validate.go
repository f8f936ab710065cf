package main

import (
	"errors"
	"fmt"

	"github.com/nao1215/latinscan/internal/docfile"
	"github.com/spf13/cobra"
)

// errInvalidFiles is returned when at least one file fails validation.
var errInvalidFiles = errors.New("invalid document files")

// NewValidateCmd creates the validate command.
func NewValidateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate FILE...",
		Short: "Check scanned document files",
		Long: `Validate reads scanned documents written by 'latinscan scan --output' and
checks that each one is well formed: every field is known, every line is
consistent (a pronunciation needs normalized text, a defective line has no
pronunciation) and the document survives a write and re-read unchanged.

Files ending in .json are read as JSON, all others as YAML.

Examples:
  # Check documents
  latinscan validate aeneid1.yaml aeneid2.json

  # Rewrite documents in canonical form
  latinscan validate --canonicalize aeneid1.yaml`,
		Args: cobra.MinimumNArgs(1),
		RunE: runValidateCmd,
	}

	cmd.Flags().Bool("canonicalize", false,
		"Rewrite valid files in canonical form")

	return cmd
}

// runValidateCmd executes the validate command.
// Every file is checked; the command fails if any file is invalid.
func runValidateCmd(cmd *cobra.Command, args []string) error {
	canonicalize, err := cmd.Flags().GetBool("canonicalize")
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	invalid := 0
	for _, path := range args {
		if canonicalize {
			changed, err := docfile.Canonicalize(path)
			if err != nil {
				invalid++
				fmt.Fprintf(out, "INVALID  %s: %v\n", path, err)
				continue
			}
			if changed {
				fmt.Fprintf(out, "FIXED    %s\n", path)
			} else {
				fmt.Fprintf(out, "OK       %s\n", path)
			}
			continue
		}

		doc, err := docfile.Validate(path)
		if err != nil {
			invalid++
			fmt.Fprintf(out, "INVALID  %s: %v\n", path, err)
			continue
		}
		fmt.Fprintf(out, "OK       %s (%d lines)\n", path, doc.Len())
	}

	if invalid > 0 {
		return fmt.Errorf("%w: %d of %d", errInvalidFiles, invalid, len(args))
	}
	return nil
}
