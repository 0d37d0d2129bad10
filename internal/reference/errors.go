package reference

import (
	"errors"
	"fmt"
)

// NotFound is returned by FromConcatenated for positions outside the
// concatenated coordinate space.
const NotFound = -1

// ErrOutOfRange reports an invalid sequence index.
var ErrOutOfRange = errors.New("sequence index out of range")

// IdentifierNotFoundError reports that no reference sequence carries the
// requested identifier. It is distinct from generic failures so callers can
// choose to abort or skip the cross-reference.
type IdentifierNotFoundError struct {
	ID string
}

func (e *IdentifierNotFoundError) Error() string {
	return fmt.Sprintf("identifier %q not found among reference sequences", e.ID)
}

// IsIdentifierNotFound returns true if err is, or wraps, an
// IdentifierNotFoundError.
func IsIdentifierNotFound(err error) bool {
	var nf *IdentifierNotFoundError
	return errors.As(err, &nf)
}
