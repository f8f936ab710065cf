package rewrite

import "errors"

var (
	// ErrNoRewrite is returned when a relation produces no output for an input.
	ErrNoRewrite = errors.New("relation produced no output")

	// ErrAmbiguousRewrite is returned by OneTopRewrite when several outputs share the best weight.
	ErrAmbiguousRewrite = errors.New("multiple top rewrites")

	// ErrUnescapedBracket is returned when an input string contains a bracket
	// that is not escaped. Bracketed generated symbols are not supported.
	ErrUnescapedBracket = errors.New("unescaped bracket in input")

	// ErrTrailingEscape is returned when an input string ends with a lone backslash.
	ErrTrailingEscape = errors.New("trailing escape character in input")

	// ErrLatticeLimit is returned when a relation would produce more candidates
	// than the configured limit.
	ErrLatticeLimit = errors.New("candidate limit exceeded")

	// ErrTooManyMatches is returned when an optional rule matches more sites than
	// can be enumerated.
	ErrTooManyMatches = errors.New("optional rule matched too many sites")

	// ErrInvalidArchive is returned when a rule archive cannot be parsed or built.
	ErrInvalidArchive = errors.New("invalid rule archive")

	// ErrUnknownRelation is returned when a relation key is not present in an archive.
	ErrUnknownRelation = errors.New("unknown relation")

	// ErrUnknownTransform is returned for an unsupported transform step name.
	ErrUnknownTransform = errors.New("unknown transform")
)
