package document

import (
	"errors"
	"fmt"
)

// ErrorCode categorizes orchestration errors.
type ErrorCode string

const (
	// ErrCodeReferenceUnset indicates a source that needs reference
	// coordinates was loaded, or an output needing them was requested,
	// before any reference was set.
	ErrCodeReferenceUnset ErrorCode = "REFERENCE_UNSET"

	// ErrCodeNoSequence indicates a GenBank source without embedded
	// sequence was loaded while no reference was available.
	ErrCodeNoSequence ErrorCode = "NO_SEQUENCE"

	// ErrCodeEmptyReference indicates a reference source that holds no
	// sequences.
	ErrCodeEmptyReference ErrorCode = "EMPTY_REFERENCE"

	// ErrCodeAuthorityConflict indicates a source tried to replace a
	// reference it may not override.
	ErrCodeAuthorityConflict ErrorCode = "AUTHORITY_CONFLICT"

	// ErrCodeTreeMissing indicates a tree operation without a loaded tree.
	ErrCodeTreeMissing ErrorCode = "TREE_MISSING"

	// ErrCodeAlreadyRerooted indicates a second midpoint reroot.
	ErrCodeAlreadyRerooted ErrorCode = "ALREADY_REROOTED"

	// ErrCodeAlignmentMissing indicates an alignment output without a
	// loaded alignment.
	ErrCodeAlignmentMissing ErrorCode = "ALIGNMENT_MISSING"

	// ErrCodeVariantsMissing indicates a variant output without variants.
	ErrCodeVariantsMissing ErrorCode = "VARIANTS_MISSING"
)

// ErrSealed is returned by loads attempted after the first write.
var ErrSealed = errors.New("document is sealed: all loads must precede writes")

// Error is an orchestration failure.
type Error struct {
	Code ErrorCode

	// File names the offending source, when there is one.
	File string

	Message string

	// Err is the underlying cause, if any.
	Err error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.File != "" {
		return fmt.Sprintf("%s: %s (%s)", e.Code, e.Message, e.File)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause.
func (e *Error) Unwrap() error {
	return e.Err
}

// HasCode reports whether err is, or wraps, an *Error with the given code.
func HasCode(err error, code ErrorCode) bool {
	var de *Error
	if errors.As(err, &de) {
		return de.Code == code
	}
	return false
}

// FilterSpecError reports a malformed "file,name,description" filter
// argument.
type FilterSpecError struct {
	Arg     string
	File    string
	Missing string // "name" or "description"
}

// Error implements the error interface.
func (e *FilterSpecError) Error() string {
	if e.File == "" {
		return fmt.Sprintf("filter %q: missing file", e.Arg)
	}
	return fmt.Sprintf("filter %s: missing %s (want file,name,\"description\")", e.File, e.Missing)
}

// IsFilterSpecError returns true if err is, or wraps, a FilterSpecError.
func IsFilterSpecError(err error) bool {
	var fe *FilterSpecError
	return errors.As(err, &fe)
}
