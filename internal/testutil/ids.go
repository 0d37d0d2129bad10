package testutil

import (
	"fmt"
	"sync"
)

// SequentialIDs generates document IDs "doc-0001", "doc-0002", ... so that
// containers and summaries written by tests are reproducible.
//
// Implements document.IDGenerator.
//
// Thread-safety: All methods are safe for concurrent use via internal mutex.
type SequentialIDs struct {
	mu  sync.Mutex
	seq int
}

// NewSequentialIDs creates a generator whose first ID is "doc-0001".
func NewSequentialIDs() *SequentialIDs {
	return &SequentialIDs{}
}

// Generate returns the next ID.
func (g *SequentialIDs) Generate() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.seq++
	return fmt.Sprintf("doc-%04d", g.seq)
}

// Reset restarts the sequence. After Reset, Generate returns "doc-0001".
func (g *SequentialIDs) Reset() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.seq = 0
}

// FixedID generates the same ID every time.
//
// Thread-safety: FixedID is stateless and safe for concurrent use.
type FixedID string

// Generate returns the fixed ID, or "doc-fixed" when it is empty.
func (id FixedID) Generate() string {
	if id == "" {
		return "doc-fixed"
	}
	return string(id)
}
