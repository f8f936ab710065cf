package model

import (
	"errors"
	"testing"
)

func TestDocument(t *testing.T) {
	t.Parallel()

	doc := NewDocument("aeneid.txt")
	doc.Append(scannedLine())
	doc.Append(Line{LineNumber: 2, Text: "Hic cursus fuit,", Normalized: StringPtr("hic cursus fuit"), Defective: true})
	doc.Append(NewLine("μῆνιν", 3))

	if doc.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", doc.Len())
	}

	scanned, defective, failed := doc.Counts()
	if scanned != 1 || defective != 1 || failed != 1 {
		t.Errorf("Counts() = %d, %d, %d; want 1, 1, 1", scanned, defective, failed)
	}

	if err := doc.Validate(); err != nil {
		t.Errorf("Validate() error = %v", err)
	}

	t.Run("equality", func(t *testing.T) {
		t.Parallel()

		other := NewDocument("aeneid.txt")
		for _, l := range doc.Lines {
			other.Append(l)
		}
		if !doc.Equal(other) {
			t.Error("expected documents to be equal")
		}

		other.Lines[0].Pronunciation = StringPtr("different")
		if doc.Equal(other) {
			t.Error("expected documents to differ")
		}
		if doc.Lines[0].Pronunciation == other.Lines[0].Pronunciation {
			t.Error("replacing a field in a copy must not alias the original")
		}
	})

	t.Run("invalid line", func(t *testing.T) {
		t.Parallel()

		bad := NewDocument("")
		bad.Append(Line{LineNumber: 7, Pronunciation: StringPtr("x")})
		if err := bad.Validate(); !errors.Is(err, ErrPronunciationWithoutNormalized) {
			t.Errorf("Validate() error = %v", err)
		}
	})
}

func TestStatusString(t *testing.T) {
	t.Parallel()

	tests := map[Status]string{
		StatusScanned:   "SCANNED",
		StatusDefective: "DEFECTIVE",
		StatusFailed:    "FAILED",
		Status(99):      "UNKNOWN",
	}
	for s, want := range tests {
		if got := s.String(); got != want {
			t.Errorf("String() = %q, want %q", got, want)
		}
		if info := GetStatusInfo(s); info.Description == "" {
			t.Errorf("GetStatusInfo(%v) has no description", s)
		}
	}
}
