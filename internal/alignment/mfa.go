package alignment

import (
	"fmt"
	"io"
	"os"

	"github.com/roach88/harvest/internal/ir"
	"github.com/roach88/harvest/internal/reference"
)

// LoadMFA parses the multi-FASTA alignment at path.
func LoadMFA(path string) (*Alignment, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("load mfa: %w", err)
	}
	defer f.Close()

	aln, err := ReadMFA(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return aln, nil
}

// ReadMFA parses a multi-FASTA alignment: one gapped row per genome, all of
// equal width, the first row being the reference. The result is a single
// block spanning every row.
func ReadMFA(r io.Reader) (*Alignment, error) {
	rows, err := reference.ReadFasta(r)
	if err != nil {
		return nil, fmt.Errorf("read mfa: %w", err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("read mfa: no sequences")
	}

	width := len(rows[0].Sequence)
	aln := &Alignment{Tracks: make([]string, 0, len(rows))}
	var lcb ir.LCB
	for i, row := range rows {
		if len(row.Sequence) != width {
			return nil, fmt.Errorf("read mfa: row %q has width %d, expected %d", row.Name, len(row.Sequence), width)
		}
		aln.Tracks = append(aln.Tracks, row.Name)
		lcb.Regions = append(lcb.Regions, ir.Region{
			Track:   i,
			Start:   0,
			Length:  int64(len(Ungapped(row.Sequence))),
			Aligned: row.Sequence,
		})
	}
	aln.LCBs = []ir.LCB{lcb}
	return aln, nil
}
