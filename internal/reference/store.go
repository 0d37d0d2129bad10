package reference

import (
	"fmt"
	"sort"

	"github.com/roach88/harvest/internal/ir"
)

// Store is the ordered set of reference sequences of one document.
//
// Sequences are immutable once appended. Duplicate names are tolerated;
// identifier lookups resolve to the first sequence registering a key.
type Store struct {
	refs []ir.Reference

	// ends[i] is the exclusive concatenated end of refs[i].
	ends []int64

	// index is derived from refs and rebuilt lazily after any change.
	index      map[string]int
	indexStale bool
}

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{}
}

// Append adds a sequence at the end of the store and returns its index.
func (s *Store) Append(name, description, sequence string) int {
	var start int64
	if n := len(s.ends); n > 0 {
		start = s.ends[n-1]
	}
	s.refs = append(s.refs, ir.Reference{Name: name, Description: description, Sequence: sequence})
	s.ends = append(s.ends, start+int64(len(sequence)))
	s.indexStale = true
	return len(s.refs) - 1
}

// Clear empties the store. It is used when a higher-priority source
// supersedes an earlier one.
func (s *Store) Clear() {
	s.refs = nil
	s.ends = nil
	s.index = nil
	s.indexStale = false
}

// Len returns the number of sequences.
func (s *Store) Len() int {
	return len(s.refs)
}

// At returns the sequence at index i. It panics if i is out of range, like
// a slice access; use Len to bound loops.
func (s *Store) At(i int) ir.Reference {
	return s.refs[i]
}

// References returns a copy of the ordered sequence list.
func (s *Store) References() []ir.Reference {
	out := make([]ir.Reference, len(s.refs))
	copy(out, s.refs)
	return out
}

// TotalLength returns the size of the concatenated coordinate space.
func (s *Store) TotalLength() int64 {
	if len(s.ends) == 0 {
		return 0
	}
	return s.ends[len(s.ends)-1]
}

// Start returns the concatenated coordinate of the first residue of
// sequence i.
func (s *Store) Start(i int) (int64, error) {
	if i < 0 || i >= len(s.refs) {
		return 0, fmt.Errorf("%w: %d (have %d)", ErrOutOfRange, i, len(s.refs))
	}
	if i == 0 {
		return 0, nil
	}
	return s.ends[i-1], nil
}

// ToConcatenated returns the sum of the lengths of all sequences preceding
// sequenceIndex, plus offset. The offset is not bounded so that exclusive
// interval ends (offset == length) translate too.
func (s *Store) ToConcatenated(sequenceIndex int, offset int64) (int64, error) {
	start, err := s.Start(sequenceIndex)
	if err != nil {
		return 0, err
	}
	return start + offset, nil
}

// FromConcatenated returns the index of the sequence owning position, or
// NotFound when position < 0 or position >= TotalLength.
func (s *Store) FromConcatenated(position int64) int {
	if position < 0 || position >= s.TotalLength() {
		return NotFound
	}
	// First sequence whose exclusive end lies beyond position; zero-length
	// sequences are skipped naturally.
	return sort.Search(len(s.ends), func(i int) bool {
		return s.ends[i] > position
	})
}

// Locate splits a concatenated coordinate into its sequence index and the
// offset inside that sequence. ok is false when position is outside the
// coordinate space.
func (s *Store) Locate(position int64) (sequenceIndex int, offset int64, ok bool) {
	idx := s.FromConcatenated(position)
	if idx == NotFound {
		return NotFound, 0, false
	}
	start, _ := s.Start(idx)
	return idx, position - start, true
}

// FindByIdentifier returns the index of the first sequence carrying id
// (see Identifiers). It fails with *IdentifierNotFoundError otherwise.
func (s *Store) FindByIdentifier(id string) (int, error) {
	if s.indexStale || s.index == nil {
		s.rebuildIndex()
	}
	if idx, ok := s.index[id]; ok {
		return idx, nil
	}
	return NotFound, &IdentifierNotFoundError{ID: id}
}

// rebuildIndex derives the identifier index from the current sequences.
// First registration wins.
func (s *Store) rebuildIndex() {
	s.index = make(map[string]int, len(s.refs))
	for i, ref := range s.refs {
		for _, key := range Identifiers(ref.Name) {
			if _, taken := s.index[key]; !taken {
				s.index[key] = i
			}
		}
	}
	s.indexStale = false
}
