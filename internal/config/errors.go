package config

import "errors"

// Configuration validation errors returned by Config.Validate.
var (
	// ErrNoInput is returned when no verse file is specified.
	ErrNoInput = errors.New("no input specified: provide a file or - for stdin")

	// ErrInvalidWorkers is returned when the worker count is not positive.
	ErrInvalidWorkers = errors.New("invalid workers: must be positive")

	// ErrInvalidBatchSize is returned when the batch size is not positive.
	ErrInvalidBatchSize = errors.New("invalid batch size: must be positive")

	// ErrInvalidMaxCandidates is returned when the candidate limit is not positive.
	ErrInvalidMaxCandidates = errors.New("invalid max candidates: must be positive")

	// ErrInvalidCacheTTL is returned when the cache TTL is negative.
	ErrInvalidCacheTTL = errors.New("invalid cache TTL: must be non-negative")

	// ErrConflictingReportFormats is returned when both --json and --markdown
	// are specified.
	ErrConflictingReportFormats = errors.New("conflicting report formats: --json and --markdown cannot be used together")

	// ErrOutputWithMultipleInputs is returned when --output is combined with
	// more than one input file.
	ErrOutputWithMultipleInputs = errors.New("--output requires a single input")

	// ErrNameWithMultipleInputs is returned when --name is combined with
	// more than one input file.
	ErrNameWithMultipleInputs = errors.New("--name requires a single input")

	// ErrEmptyRuleName is returned when a required archive key is blank.
	ErrEmptyRuleName = errors.New("rule name must not be empty")
)
