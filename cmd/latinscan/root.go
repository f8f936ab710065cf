package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// NewRootCmd creates the root command for latinscan.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "latinscan",
		Short: "Scan Latin verse as dactylic hexameter",
		Long: `latinscan finds the pronunciation of each line of Latin verse that scans as
dactylic hexameter.

Lines are normalized, transcribed phonemically, expanded with optional poetic
license (elision, synizesis) and filtered by the meter. Lines with no
scanning pronunciation are reported as defective.

The grammar is a YAML archive of rewrite rules. latinscan ships with a
classical Latin grammar; use 'latinscan init --grammar FILE' to export it
as a starting point for your own.`,
		Version:       getVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags that apply to all commands
	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")

	cmd.AddCommand(NewScanCmd())
	cmd.AddCommand(NewRewriteCmd())
	cmd.AddCommand(NewValidateCmd())
	cmd.AddCommand(NewCompareCmd())
	cmd.AddCommand(NewInitCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// Execute runs the root command.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
