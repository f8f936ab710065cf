// Package grammar provides the rule archive used when no other archive is configured.
//
// The embedded archive (latin.yaml) defines the relations NORMALIZE, PRONOUNCE,
// VARIABLE, SYLLABLE, WEIGHT, FOOT and HEXAMETER for classical Latin and
// dactylic hexameter. It is also the starting point for custom grammars:
// `latinscan init --grammar` writes it to disk for editing.
package grammar

import (
	_ "embed"
	"fmt"

	"github.com/nao1215/latinscan/internal/rewrite"
)

// DefaultName is the archive identifier reported for the embedded grammar.
const DefaultName = "builtin:latin-hexameter"

//go:embed latin.yaml
var latinYAML []byte

// Source returns the YAML source of the embedded archive.
func Source() []byte {
	out := make([]byte, len(latinYAML))
	copy(out, latinYAML)
	return out
}

// Default builds the embedded archive.
func Default(opts ...rewrite.ArchiveOption) (*rewrite.Archive, error) {
	a, err := rewrite.ParseArchive(latinYAML, opts...)
	if err != nil {
		return nil, fmt.Errorf("embedded grammar: %w", err)
	}
	return a, nil
}

// Load builds the archive at path, or the embedded archive when path is empty.
func Load(path string, opts ...rewrite.ArchiveOption) (*rewrite.Archive, error) {
	if path == "" {
		return Default(opts...)
	}
	return rewrite.LoadArchive(path, opts...)
}

// Identifier returns the name under which an archive loaded from path is recorded.
func Identifier(path string) string {
	if path == "" {
		return DefaultName
	}
	return path
}
