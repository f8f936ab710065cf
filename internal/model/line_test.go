package model

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"
)

func scannedLine() Line {
	return Line{
		LineNumber:    1,
		Text:          "Arma virumque canō, Trojae quī prīmus ab ōris",
		Normalized:    StringPtr("arma virumque canō trojae quī prīmus ab ōris"),
		Pronunciation: StringPtr("arma wirumkwe kanoː trojjaj kwiː priːmu sa boːris"),
		Feet:          StringPtr("DDSSDT"),
	}
}

func TestLineStatus(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		line Line
		want Status
	}{
		{name: "scanned", line: scannedLine(), want: StatusScanned},
		{name: "defective", line: Line{Normalized: StringPtr("hic cursus fuit"), Defective: true}, want: StatusDefective},
		{name: "failed before normalization", line: NewLine("μῆνιν", 1), want: StatusFailed},
		{name: "failed after normalization", line: Line{Normalized: StringPtr("arma")}, want: StatusFailed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := tt.line.Status(); got != tt.want {
				t.Errorf("Status() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestLineValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		line Line
		want error
	}{
		{name: "scanned", line: scannedLine()},
		{name: "defective", line: Line{Normalized: StringPtr("x"), Defective: true}},
		{name: "failed", line: NewLine("x", NoLineNumber)},
		{
			name: "defective with pronunciation",
			line: Line{Normalized: StringPtr("x"), Pronunciation: StringPtr("x"), Defective: true},
			want: ErrDefectiveWithPronunciation,
		},
		{
			name: "pronunciation without normalized",
			line: Line{Pronunciation: StringPtr("x")},
			want: ErrPronunciationWithoutNormalized,
		},
		{
			name: "feet without pronunciation",
			line: Line{Normalized: StringPtr("x"), Feet: StringPtr("DDSSDT")},
			want: ErrFeetWithoutPronunciation,
		},
		{
			name: "defective without normalized",
			line: Line{Defective: true},
			want: ErrDefectiveWithoutNormalized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := tt.line.Validate()
			if tt.want == nil {
				if err != nil {
					t.Errorf("Validate() error = %v", err)
				}
				return
			}
			if !errors.Is(err, tt.want) {
				t.Errorf("Validate() error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestLineAccessors(t *testing.T) {
	t.Parallel()

	l := NewLine("Hic cursus fuit,", NoLineNumber)
	if l.HasLineNumber() {
		t.Error("expected no line number")
	}
	if _, ok := l.NormalizedText(); ok {
		t.Error("expected normalized text to be unset")
	}

	l.Normalized = StringPtr("")
	if got, ok := l.NormalizedText(); !ok || got != "" {
		t.Errorf("NormalizedText() = %q, %v; want empty and set", got, ok)
	}
}

func TestLineSerializationKeepsUnsetDistinct(t *testing.T) {
	t.Parallel()

	empty := Line{LineNumber: 2, Text: "x", Normalized: StringPtr("")}
	unset := Line{LineNumber: 2, Text: "x"}

	t.Run("json", func(t *testing.T) {
		t.Parallel()

		a, err := json.Marshal(empty)
		if err != nil {
			t.Fatalf("Marshal() error = %v", err)
		}
		b, err := json.Marshal(unset)
		if err != nil {
			t.Fatalf("Marshal() error = %v", err)
		}
		if !strings.Contains(string(a), `"normalized":""`) {
			t.Errorf("empty normalized text lost: %s", a)
		}
		if strings.Contains(string(b), "normalized") {
			t.Errorf("unset normalized text serialized: %s", b)
		}

		var back Line
		if err := json.Unmarshal(a, &back); err != nil {
			t.Fatalf("Unmarshal() error = %v", err)
		}
		if !back.Equal(empty) {
			t.Errorf("round trip changed line: %+v", back)
		}
	})

	t.Run("yaml", func(t *testing.T) {
		t.Parallel()

		a, err := yaml.Marshal(empty)
		if err != nil {
			t.Fatalf("Marshal() error = %v", err)
		}
		var back Line
		if err := yaml.Unmarshal(a, &back); err != nil {
			t.Fatalf("Unmarshal() error = %v", err)
		}
		if !back.Equal(empty) {
			t.Errorf("round trip changed line: %+v", back)
		}
		if back.Equal(unset) {
			t.Error("empty and unset normalized text compare equal")
		}
	})
}
