package alignment

import (
	"fmt"
	"strings"

	"github.com/roach88/harvest/internal/ir"
)

// Alignment is the parsed content of an alignment source.
type Alignment struct {
	Tracks []string
	LCBs   []ir.LCB
}

// IsGap reports whether c is an alignment gap character.
func IsGap(c byte) bool {
	return c == '-' || c == '.'
}

// Ungapped returns row with every gap character removed.
func Ungapped(row string) string {
	var b strings.Builder
	b.Grow(len(row))
	for i := 0; i < len(row); i++ {
		if !IsGap(row[i]) {
			b.WriteByte(row[i])
		}
	}
	return b.String()
}

// ReverseComplement returns the reverse complement of a nucleotide string.
// Unknown residues are kept as they are; case is preserved.
func ReverseComplement(seq string) string {
	out := make([]byte, len(seq))
	for i := 0; i < len(seq); i++ {
		out[len(seq)-1-i] = complement(seq[i])
	}
	return string(out)
}

func complement(c byte) byte {
	switch c {
	case 'A':
		return 'T'
	case 'T':
		return 'A'
	case 'C':
		return 'G'
	case 'G':
		return 'C'
	case 'a':
		return 't'
	case 't':
		return 'a'
	case 'c':
		return 'g'
	case 'g':
		return 'c'
	}
	return c
}

// ReferenceLength returns the exclusive end of the furthest reference
// region, i.e. the size of the reference space the alignment covers.
func (a *Alignment) ReferenceLength() int64 {
	var n int64
	for _, lcb := range a.LCBs {
		if r, ok := lcb.ReferenceRegion(); ok {
			n = max(n, r.End())
		}
	}
	return n
}

// ReferenceSequence rebuilds the reference from its aligned rows. Every
// reference region is placed at its coordinates; positions no block covers
// are filled with 'N'.
func (a *Alignment) ReferenceSequence() string {
	seq := []byte(strings.Repeat("N", int(a.ReferenceLength())))
	for _, lcb := range a.LCBs {
		r, ok := lcb.ReferenceRegion()
		if !ok {
			continue
		}
		bases := Ungapped(r.Aligned)
		if r.Reverse {
			bases = ReverseComplement(bases)
		}
		copy(seq[r.Start:r.End()], bases)
	}
	return string(seq)
}

// Validate checks that every region refers to a known track and that its
// gapped row carries exactly Length residues.
func (a *Alignment) Validate() error {
	if len(a.Tracks) == 0 {
		return fmt.Errorf("alignment has no tracks")
	}
	for i, lcb := range a.LCBs {
		width := -1
		for _, r := range lcb.Regions {
			if r.Track < 0 || r.Track >= len(a.Tracks) {
				return fmt.Errorf("lcb %d: track %d out of range (have %d)", i, r.Track, len(a.Tracks))
			}
			if r.Start < 0 {
				return fmt.Errorf("lcb %d: track %d: negative start %d", i, r.Track, r.Start)
			}
			if got := int64(len(Ungapped(r.Aligned))); got != r.Length {
				return fmt.Errorf("lcb %d: track %d: row has %d residues, region length is %d", i, r.Track, got, r.Length)
			}
			if width >= 0 && len(r.Aligned) != width {
				return fmt.Errorf("lcb %d: track %d: row width %d, expected %d", i, r.Track, len(r.Aligned), width)
			}
			width = len(r.Aligned)
		}
	}
	return nil
}
