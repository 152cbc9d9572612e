package entities

import "fmt"

// SigningError is the single failure kind of the signing pipeline.
// The message distinguishes the cause (ineligible input, malformed
// archive, transport failure, authority rejection, bad response,
// certificate parse failure, empty version).
type SigningError struct {
	Msg string
	Err error
}

// NewSigningError creates a SigningError with an optional wrapped cause
func NewSigningError(msg string, err error) *SigningError {
	return &SigningError{Msg: msg, Err: err}
}

func (e *SigningError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Msg, e.Err)
	}
	return e.Msg
}

// Unwrap exposes the underlying cause for errors.Is/As
func (e *SigningError) Unwrap() error {
	return e.Err
}

// ArchiveExtractionError indicates the input archive could not be parsed
// or read in full while computing its signature manifest.
type ArchiveExtractionError struct {
	Path string
	Err  error
}

func (e *ArchiveExtractionError) Error() string {
	return fmt.Sprintf("archive extraction failed for %s: %v", e.Path, e.Err)
}

// Unwrap exposes the underlying cause for errors.Is/As
func (e *ArchiveExtractionError) Unwrap() error {
	return e.Err
}
