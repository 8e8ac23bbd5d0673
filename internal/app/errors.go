package app

import "errors"

var (
	// ErrInvalidInput marks caller-side validation failures.
	ErrInvalidInput = errors.New("invalid input")
	// ErrNoExtractableText is a content error: the file was readable but
	// yielded no text, so nothing was ingested.
	ErrNoExtractableText = errors.New("document contains no extractable text")
	// ErrDocumentNotFound distinguishes "nothing to do" from a dependency
	// failure.
	ErrDocumentNotFound = errors.New("document not found")
	// ErrIndexUnavailable marks a vector-index dependency failure.
	ErrIndexUnavailable = errors.New("vector index unavailable")
)
