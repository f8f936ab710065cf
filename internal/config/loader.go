package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// DefaultConfigFile is the default configuration file name.
const DefaultConfigFile = ".latinscan"

// xdgConfigFile is the file name looked up in XDGConfigDir.
const xdgConfigFile = "config.yaml"

// ErrConfigNotFound is returned when the configuration file does not exist.
var ErrConfigNotFound = errors.New("configuration file not found")

// File represents the structure of the .latinscan configuration file.
type File struct {
	// Grammar is the path of a rule archive. Relative paths are resolved
	// against the directory holding the configuration file.
	Grammar string `yaml:"grammar,omitempty"`

	// Rules overrides the archive keys. Empty entries keep the defaults.
	Rules RuleNames `yaml:"rules,omitempty"`

	Workers       int           `yaml:"workers,omitempty"`
	BatchSize     int           `yaml:"batchSize,omitempty"`
	MaxCandidates int           `yaml:"maxCandidates,omitempty"`
	CacheTTL      time.Duration `yaml:"cacheTTL,omitempty"`
	DBDir         string        `yaml:"dbDir,omitempty"`
}

// LoadConfigFile loads a configuration file.
// If the file does not exist, it returns ErrConfigNotFound. Unknown keys are
// rejected so that misspelled settings do not go unnoticed.
func LoadConfigFile(path string) (*File, error) {
	f, err := os.Open(path) //nolint:gosec // User-provided config path is intentional
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrConfigNotFound
		}
		return nil, err
	}
	defer f.Close()

	var cf File
	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	if err := dec.Decode(&cf); err != nil {
		if errors.Is(err, io.EOF) {
			return &cf, nil
		}
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}

	if cf.Grammar != "" && !filepath.IsAbs(cf.Grammar) {
		cf.Grammar = filepath.Join(filepath.Dir(path), cf.Grammar)
	}

	return &cf, nil
}

// FindConfigFile searches for the configuration file in the following order:
//  1. If configPath is specified, use it directly
//  2. Look for .latinscan in the current directory
//  3. Look for .latinscan in the user's home directory
//  4. Look for config.yaml in XDGConfigDir
//
// Returns the path to the configuration file if found, or empty string if not found.
func FindConfigFile(configPath string) string {
	if configPath != "" {
		if _, err := os.Stat(configPath); err == nil {
			return configPath
		}
		return ""
	}

	candidates := make([]string, 0, 3)
	if cwd, err := os.Getwd(); err == nil {
		candidates = append(candidates, filepath.Join(cwd, DefaultConfigFile))
	}
	if home, err := os.UserHomeDir(); err == nil {
		candidates = append(candidates, filepath.Join(home, DefaultConfigFile))
	}
	candidates = append(candidates, filepath.Join(XDGConfigDir(), xdgConfigFile))

	for _, c := range candidates {
		if _, err := os.Stat(c); err == nil {
			return c
		}
	}
	return ""
}
