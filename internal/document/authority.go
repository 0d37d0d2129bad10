package document

import "fmt"

// State is the reference authority state.
type State int

const (
	// Unset: no source has supplied the reference yet.
	Unset State = iota
	// SetImplicit: the reference came from a container, an alignment or
	// a GenBank file.
	SetImplicit
	// SetExplicit: the reference came from an explicit FASTA load.
	SetExplicit
)

func (s State) String() string {
	switch s {
	case Unset:
		return "unset"
	case SetImplicit:
		return "implicit"
	case SetExplicit:
		return "explicit"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// Source identifies the kind of input that can supply the reference.
type Source int

const (
	SourceNone Source = iota
	SourceContainer
	SourceAlignment
	SourceAnnotation
	SourceFasta
)

func (s Source) String() string {
	switch s {
	case SourceNone:
		return "none"
	case SourceContainer:
		return "container"
	case SourceAlignment:
		return "alignment"
	case SourceAnnotation:
		return "annotation"
	case SourceFasta:
		return "fasta"
	}
	return fmt.Sprintf("Source(%d)", int(s))
}

// explicit reports whether the source always overrides implicit ones.
func (s Source) explicit() bool {
	return s == SourceFasta
}

// Decision tells a loader what to do with the reference it carries.
type Decision int

const (
	// Adopt: the reference is unset; load into the empty store.
	Adopt Decision = iota
	// Replace: clear the implicit reference and load this one.
	Replace
	// Keep: leave the reference untouched and bind the source's other
	// data to it.
	Keep
	// Extend: append to a reference built from earlier sources of the
	// same kind.
	Extend
)

func (d Decision) String() string {
	switch d {
	case Adopt:
		return "adopt"
	case Replace:
		return "replace"
	case Keep:
		return "keep"
	case Extend:
		return "extend"
	}
	return fmt.Sprintf("Decision(%d)", int(d))
}

// Authority is the reference authority state machine.
//
//	Unset       --any-->         SetImplicit (or SetExplicit for fasta)
//	SetImplicit --fasta-->       SetExplicit (Replace)
//	SetImplicit --other-->       SetImplicit (Keep; Extend for annotation
//	                                          onto annotation)
//	SetExplicit --fasta-->       error
//	SetExplicit --other-->       SetExplicit (Keep)
type Authority struct {
	state  State
	source Source
}

// State returns the current state.
func (a Authority) State() State {
	return a.state
}

// Source returns the source that set the reference, or SourceNone.
func (a Authority) Source() Source {
	return a.source
}

// String renders the authority as "state:source", e.g. "explicit:fasta".
func (a Authority) String() string {
	return a.state.String() + ":" + a.source.String()
}

// Decide returns what a load from src must do with its reference. It does
// not change the state; call Settle once the load has succeeded.
func (a Authority) Decide(src Source) (Decision, error) {
	switch a.state {
	case Unset:
		return Adopt, nil
	case SetImplicit:
		if src.explicit() {
			return Replace, nil
		}
		if src == SourceAnnotation && a.source == SourceAnnotation {
			return Extend, nil
		}
		return Keep, nil
	default:
		if src.explicit() {
			return 0, &Error{
				Code:    ErrCodeAuthorityConflict,
				Message: fmt.Sprintf("reference already set explicitly by %s", a.source),
			}
		}
		return Keep, nil
	}
}

// Settle records the outcome of a successful load from src.
func (a *Authority) Settle(src Source, d Decision) {
	switch d {
	case Adopt, Replace:
		a.source = src
		if src.explicit() {
			a.state = SetExplicit
		} else {
			a.state = SetImplicit
		}
	}
}
