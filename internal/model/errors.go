package model

import "errors"

var (
	// ErrDefectiveWithPronunciation is returned for a defective line that carries a pronunciation.
	ErrDefectiveWithPronunciation = errors.New("defective line has a pronunciation")

	// ErrPronunciationWithoutNormalized is returned for a pronunciation without normalized text.
	ErrPronunciationWithoutNormalized = errors.New("pronunciation set without normalized text")

	// ErrFeetWithoutPronunciation is returned for a foot analysis without a pronunciation.
	ErrFeetWithoutPronunciation = errors.New("feet set without pronunciation")

	// ErrDefectiveWithoutNormalized is returned for a defective line whose text was never normalized.
	ErrDefectiveWithoutNormalized = errors.New("defective line has no normalized text")
)
