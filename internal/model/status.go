package model

// Status is the outcome of scanning one line.
type Status int

const (
	// StatusScanned indicates a metrically valid pronunciation was selected.
	StatusScanned Status = iota

	// StatusDefective indicates that no pronunciation variant scans as a hexameter.
	// Typical causes are incomplete lines (hemistichs), corrupt text, or gaps
	// in the grammar's coverage.
	StatusDefective

	// StatusFailed indicates the grammar could not process the text at all.
	// Normalization, pronunciation, or variant expansion produced no output.
	StatusFailed
)

// String returns a human-readable representation of the status.
func (s Status) String() string {
	switch s {
	case StatusScanned:
		return "SCANNED"
	case StatusDefective:
		return "DEFECTIVE"
	case StatusFailed:
		return "FAILED"
	default:
		return "UNKNOWN"
	}
}

// StatusInfo describes a status for reports.
type StatusInfo struct {
	Status         Status
	Description    string
	Recommendation string
}

var statusInfoMapping = map[Status]StatusInfo{
	StatusScanned: {
		Status:      StatusScanned,
		Description: "A pronunciation was found that scans as dactylic hexameter.",
	},
	StatusDefective: {
		Status:         StatusDefective,
		Description:    "No pronunciation variant scans as dactylic hexameter.",
		Recommendation: "Check the line for missing words, or extend the VARIABLE relation with the license it needs.",
	},
	StatusFailed: {
		Status:         StatusFailed,
		Description:    "The grammar could not normalize or pronounce the line.",
		Recommendation: "Check the line for characters outside the Latin alphabet, or extend NORMALIZE and PRONOUNCE.",
	},
}

// GetStatusInfo returns the description of a status.
func GetStatusInfo(s Status) StatusInfo {
	if info, ok := statusInfoMapping[s]; ok {
		return info
	}
	return StatusInfo{Status: s, Description: "Unknown status."}
}
