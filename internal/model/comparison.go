package model

// ChangeKind classifies a difference between two scans of a line.
type ChangeKind string

const (
	// ChangeStatus means the line's outcome changed.
	ChangeStatus ChangeKind = "status"

	// ChangePronunciation means the line still scans but with another pronunciation.
	ChangePronunciation ChangeKind = "pronunciation"

	// ChangeFeet means only the foot analysis changed.
	ChangeFeet ChangeKind = "feet"

	// ChangeText means the input text at this position is different.
	ChangeText ChangeKind = "text"

	// ChangeAdded means the line exists only in the newer scan.
	ChangeAdded ChangeKind = "added"

	// ChangeRemoved means the line exists only in the older scan.
	ChangeRemoved ChangeKind = "removed"
)

// LineChange is one line that differs between two scans.
type LineChange struct {
	Position int        `json:"position"`
	Kind     ChangeKind `json:"kind"`
	Text     string     `json:"text"`
	Before   *Line      `json:"before,omitempty"`
	After    *Line      `json:"after,omitempty"`
}

// Comparison lists the differences between two scans of a document.
type Comparison struct {
	Name    string       `json:"name,omitempty"`
	Changes []LineChange `json:"changes"`

	// Fixed counts lines that scan now but did not before.
	Fixed int `json:"fixed"`

	// Broken counts lines that scanned before but do not now.
	Broken int `json:"broken"`
}

// HasChanges reports whether the scans differ.
func (c *Comparison) HasChanges() bool {
	return len(c.Changes) > 0
}

// CompareDocuments compares two scans position by position.
func CompareDocuments(before, after *Document) *Comparison {
	c := &Comparison{
		Name:    after.Name,
		Changes: make([]LineChange, 0),
	}

	n := max(len(before.Lines), len(after.Lines))
	for i := range n {
		switch {
		case i >= len(before.Lines):
			l := after.Lines[i]
			c.Changes = append(c.Changes, LineChange{Position: i + 1, Kind: ChangeAdded, Text: l.Text, After: &l})
			continue
		case i >= len(after.Lines):
			l := before.Lines[i]
			c.Changes = append(c.Changes, LineChange{Position: i + 1, Kind: ChangeRemoved, Text: l.Text, Before: &l})
			continue
		}

		b, a := before.Lines[i], after.Lines[i]
		kind, changed := classify(b, a)
		if !changed {
			continue
		}
		c.Changes = append(c.Changes, LineChange{
			Position: i + 1,
			Kind:     kind,
			Text:     a.Text,
			Before:   &b,
			After:    &a,
		})
		if kind == ChangeStatus {
			switch {
			case a.Status() == StatusScanned:
				c.Fixed++
			case b.Status() == StatusScanned:
				c.Broken++
			}
		}
	}

	return c
}

func classify(before, after Line) (ChangeKind, bool) {
	switch {
	case before.Text != after.Text:
		return ChangeText, true
	case before.Status() != after.Status():
		return ChangeStatus, true
	case !equalOptional(before.Pronunciation, after.Pronunciation):
		return ChangePronunciation, true
	case !equalOptional(before.Feet, after.Feet):
		return ChangeFeet, true
	}
	return "", false
}
