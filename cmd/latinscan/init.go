package main

import (
	"embed"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/nao1215/latinscan/internal/config"
	"github.com/nao1215/latinscan/internal/grammar"
	"github.com/spf13/cobra"
)

//go:embed templates/latinscan.yaml
var configTemplate embed.FS

// grammarLine is the template line replaced when a grammar is exported.
const grammarLine = `grammar: ""`

// NewInitCmd creates the init command.
func NewInitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize a new latinscan configuration file",
		Long: `Initialize creates a new .latinscan configuration file in the current directory.

The generated file documents every setting with its default value.

With --grammar, the built-in grammar is also written to FILE and the
configuration points to it, ready to be edited.

Examples:
  # Create .latinscan in current directory
  latinscan init

  # Create config file at a specific path
  latinscan init -o myconfig.yaml

  # Export the built-in grammar for editing
  latinscan init --grammar latin.yaml

  # Force overwrite existing files
  latinscan init -f`,
		Args: cobra.NoArgs,
		RunE: runInitCmd,
	}

	cmd.Flags().StringP("output", "o", config.DefaultConfigFile,
		"Output file path for the configuration")
	cmd.Flags().StringP("grammar", "g", "",
		"Also write the built-in grammar to this file")
	cmd.Flags().BoolP("force", "f", false,
		"Overwrite existing files")

	return cmd
}

// runInitCmd executes the init command.
func runInitCmd(cmd *cobra.Command, _ []string) error {
	outputPath, err := cmd.Flags().GetString("output")
	if err != nil {
		return err
	}
	grammarPath, err := cmd.Flags().GetString("grammar")
	if err != nil {
		return err
	}
	force, err := cmd.Flags().GetBool("force")
	if err != nil {
		return err
	}

	// Check every target before writing anything.
	if !force {
		for _, path := range []string{outputPath, grammarPath} {
			if path == "" {
				continue
			}
			if _, err := os.Stat(path); err == nil {
				return fmt.Errorf("file already exists: %s (use -f to overwrite)", path)
			}
		}
	}

	content, err := configTemplate.ReadFile("templates/latinscan.yaml")
	if err != nil {
		return fmt.Errorf("failed to read config template: %w", err)
	}

	out := cmd.OutOrStdout()
	if grammarPath != "" {
		if err := writeNewFile(grammarPath, grammar.Source()); err != nil {
			return fmt.Errorf("failed to write grammar: %w", err)
		}
		fmt.Fprintf(out, "Created grammar file: %s\n", grammarPath)

		ref, err := grammarReference(outputPath, grammarPath)
		if err != nil {
			return err
		}
		content = []byte(strings.Replace(string(content), grammarLine, "grammar: "+strconv.Quote(ref), 1))
	}

	if err := writeNewFile(outputPath, content); err != nil {
		return fmt.Errorf("failed to write configuration file: %w", err)
	}

	fmt.Fprintf(out, "Created configuration file: %s\n", outputPath)
	fmt.Fprintln(out, "\nEdit this file to configure:")
	fmt.Fprintln(out, "  - The grammar archive and the rule keys it provides")
	fmt.Fprintln(out, "  - Worker and batch concurrency")
	fmt.Fprintln(out, "  - Candidate limits and rule caching")

	return nil
}

// grammarReference returns the grammar path as written in the configuration
// file: relative to the configuration file's directory when possible.
func grammarReference(configPath, grammarPath string) (string, error) {
	configDir, err := filepath.Abs(filepath.Dir(configPath))
	if err != nil {
		return "", err
	}
	absGrammar, err := filepath.Abs(grammarPath)
	if err != nil {
		return "", err
	}
	if rel, err := filepath.Rel(configDir, absGrammar); err == nil {
		return filepath.ToSlash(rel), nil
	}
	return absGrammar, nil
}

// writeNewFile writes content to path, creating parent directories.
func writeNewFile(path string, content []byte) error {
	dir := filepath.Dir(path)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}
	return os.WriteFile(path, content, 0600)
}
