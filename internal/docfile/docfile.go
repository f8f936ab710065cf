package docfile

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/nao1215/latinscan/internal/model"
)

// ErrInvalidDocument is returned when a document cannot be parsed or breaks
// a line invariant.
var ErrInvalidDocument = errors.New("invalid document")

// ErrRoundTrip is returned by Validate when writing and re-reading a
// document does not reproduce it.
var ErrRoundTrip = errors.New("document does not survive a round trip")

// Format is a serialization format.
type Format int

const (
	// FormatYAML is the default format.
	FormatYAML Format = iota

	// FormatJSON is selected by the .json extension.
	FormatJSON
)

// String returns the name of the format.
func (f Format) String() string {
	if f == FormatJSON {
		return "json"
	}
	return "yaml"
}

// FormatFromPath returns the format implied by the extension of path.
func FormatFromPath(path string) Format {
	if strings.EqualFold(filepath.Ext(path), ".json") {
		return FormatJSON
	}
	return FormatYAML
}

// Read parses a document and checks its line invariants.
func Read(r io.Reader, f Format) (*model.Document, error) {
	var doc model.Document
	var err error
	switch f {
	case FormatJSON:
		err = decodeJSON(r, &doc)
	default:
		err = decodeYAML(r, &doc)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidDocument, err)
	}
	if doc.Lines == nil {
		doc.Lines = make([]model.Line, 0)
	}
	if err := doc.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidDocument, err)
	}
	return &doc, nil
}

func decodeYAML(r io.Reader, doc *model.Document) error {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(doc); err != nil {
		if errors.Is(err, io.EOF) {
			return errors.New("empty document")
		}
		return err
	}
	return nil
}

func decodeJSON(r io.Reader, doc *model.Document) error {
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(doc); err != nil {
		if errors.Is(err, io.EOF) {
			return errors.New("empty document")
		}
		return err
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return errors.New("unexpected data after document")
	}
	return nil
}

// Write serializes doc in canonical form.
func Write(w io.Writer, doc *model.Document, f Format) error {
	switch f {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetEscapeHTML(false)
		enc.SetIndent("", "  ")
		return enc.Encode(doc)
	default:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(doc); err != nil {
			return err
		}
		return enc.Close()
	}
}

// ReadFile reads the document at path in the format its extension implies.
func ReadFile(path string) (*model.Document, error) {
	f, err := os.Open(filepath.Clean(path))
	if err != nil {
		return nil, err
	}
	defer f.Close()

	doc, err := Read(f, FormatFromPath(path))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return doc, nil
}

// WriteFile writes doc to path in the format its extension implies,
// creating parent directories as needed.
func WriteFile(path string, doc *model.Document) error {
	var buf bytes.Buffer
	if err := Write(&buf, doc, FormatFromPath(path)); err != nil {
		return fmt.Errorf("failed to encode document: %w", err)
	}
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o600); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

// Validate reads the document at path and checks that it survives a write
// and re-read unchanged.
func Validate(path string) (*model.Document, error) {
	doc, err := ReadFile(path)
	if err != nil {
		return nil, err
	}

	f := FormatFromPath(path)
	var buf bytes.Buffer
	if err := Write(&buf, doc, f); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	again, err := Read(&buf, f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w: %w", path, ErrRoundTrip, err)
	}
	if !doc.Equal(again) {
		return nil, fmt.Errorf("%s: %w", path, ErrRoundTrip)
	}
	return doc, nil
}

// Canonicalize validates the document at path and rewrites it in canonical
// form. It reports whether the file content changed.
func Canonicalize(path string) (bool, error) {
	before, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return false, err
	}
	doc, err := Validate(path)
	if err != nil {
		return false, err
	}

	var buf bytes.Buffer
	if err := Write(&buf, doc, FormatFromPath(path)); err != nil {
		return false, fmt.Errorf("%s: %w", path, err)
	}
	if bytes.Equal(before, buf.Bytes()) {
		return false, nil
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o600); err != nil {
		return false, fmt.Errorf("failed to write %s: %w", path, err)
	}
	return true, nil
}
