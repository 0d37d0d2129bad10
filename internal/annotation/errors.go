package annotation

import (
	"errors"
	"fmt"
)

// NoSequenceError reports a GenBank source without an embedded sequence
// when the caller required one.
type NoSequenceError struct {
	File   string
	Record string
}

func (e *NoSequenceError) Error() string {
	if e.Record != "" {
		return fmt.Sprintf("no sequence in %s (record %s)", e.File, e.Record)
	}
	return fmt.Sprintf("no sequence in %s", e.File)
}

// IsNoSequence returns true if err is, or wraps, a NoSequenceError.
func IsNoSequence(err error) bool {
	var ns *NoSequenceError
	return errors.As(err, &ns)
}
