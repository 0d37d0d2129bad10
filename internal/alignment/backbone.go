package alignment

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/roach88/harvest/internal/ir"
	"github.com/roach88/harvest/internal/reference"
)

// BackboneInterval is one row of the backbone view: the part of a block's
// reference interval lying inside a single reference sequence.
type BackboneInterval struct {
	Sequence int
	Span     ir.Interval // concatenated
	LCB      int
	Filters  []string
}

// Backbone splits every block's reference interval at reference-sequence
// boundaries and tags each piece with the filters that intersect it.
// Blocks without a reference region contribute nothing.
func Backbone(lcbs []ir.LCB, refs *reference.Store, filters []ir.Filter) ([]BackboneInterval, error) {
	var out []BackboneInterval
	for i, lcb := range lcbs {
		r, ok := lcb.ReferenceRegion()
		if !ok || r.Length == 0 {
			continue
		}
		if r.End() > refs.TotalLength() {
			return nil, fmt.Errorf("lcb %d: reference interval [%d, %d) exceeds reference length %d",
				i, r.Start, r.End(), refs.TotalLength())
		}

		pos := r.Start
		for pos < r.End() {
			seq := refs.FromConcatenated(pos)
			if seq == reference.NotFound {
				return nil, fmt.Errorf("lcb %d: position %d outside the reference", i, pos)
			}
			seqEnd, err := refs.ToConcatenated(seq, int64(refs.At(seq).Len()))
			if err != nil {
				return nil, err
			}
			span := ir.Interval{Start: pos, End: min(seqEnd, r.End())}

			bi := BackboneInterval{Sequence: seq, Span: span, LCB: i}
			for _, f := range filters {
				if f.Intersects(span) {
					bi.Filters = append(bi.Filters, f.Name)
				}
			}
			out = append(out, bi)
			pos = span.End
		}
	}
	return out, nil
}

// WriteBackbone writes the backbone view as tab-separated rows of
// sequence name, 0-based start and exclusive end within that sequence,
// block number and intersecting filter names ("." when none).
func WriteBackbone(w io.Writer, lcbs []ir.LCB, refs *reference.Store, filters []ir.Filter) error {
	intervals, err := Backbone(lcbs, refs, filters)
	if err != nil {
		return fmt.Errorf("write backbone: %w", err)
	}

	bw := bufio.NewWriter(w)
	fmt.Fprintln(bw, "#sequence\tstart\tend\tlcb\tfilters")
	for _, bi := range intervals {
		seqStart, err := refs.Start(bi.Sequence)
		if err != nil {
			return fmt.Errorf("write backbone: %w", err)
		}
		tags := "."
		if len(bi.Filters) > 0 {
			tags = strings.Join(bi.Filters, ",")
		}
		fmt.Fprintf(bw, "%s\t%d\t%d\t%d\t%s\n",
			refs.At(bi.Sequence).Name, bi.Span.Start-seqStart, bi.Span.End-seqStart, bi.LCB, tags)
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("write backbone: %w", err)
	}
	return nil
}
