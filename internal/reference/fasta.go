package reference

import (
	"fmt"
	"io"
	"os"

	"github.com/biogo/biogo/alphabet"
	"github.com/biogo/biogo/io/seqio"
	"github.com/biogo/biogo/io/seqio/fasta"
	"github.com/biogo/biogo/seq/linear"

	"github.com/roach88/harvest/internal/ir"
)

// DefaultLineWidth is the residue count per line written by SaveFasta.
const DefaultLineWidth = 70

// ReadFasta parses a multi-record FASTA stream.
//
// Header lines are split with SplitTag. Multi-line bodies are concatenated
// in file order and records are returned in file order. Sequence data
// before the first header is an error.
func ReadFasta(r io.Reader) ([]ir.Reference, error) {
	sc := seqio.NewScanner(fasta.NewReader(r, linear.NewSeq("", nil, alphabet.DNAredundant)))

	var records []ir.Reference
	for sc.Next() {
		s, ok := sc.Seq().(*linear.Seq)
		if !ok {
			return nil, fmt.Errorf("read fasta: unexpected record type %T", sc.Seq())
		}
		name, desc := SplitTag(JoinTag(s.ID, s.Desc))
		records = append(records, ir.Reference{
			Name:        name,
			Description: desc,
			Sequence:    letters(s.Seq),
		})
	}
	if err := sc.Error(); err != nil {
		return nil, fmt.Errorf("read fasta: %w", err)
	}
	return records, nil
}

func letters(l alphabet.Letters) string {
	b := make([]byte, len(l))
	for i, c := range l {
		b[i] = byte(c)
	}
	return string(b)
}

// WriteRecord writes one FASTA record, wrapping the sequence every width
// residues. A width <= 0 writes the sequence on a single line.
func WriteRecord(w io.Writer, name, description, sequence string, width int) error {
	if _, err := io.WriteString(w, ">"+JoinTag(name, description)+"\n"); err != nil {
		return err
	}
	if width <= 0 {
		width = len(sequence)
	}
	for start := 0; start < len(sequence); start += width {
		end := min(start+width, len(sequence))
		if _, err := io.WriteString(w, sequence[start:end]+"\n"); err != nil {
			return err
		}
	}
	return nil
}

// LoadFasta appends every record of the FASTA file at path, in file order.
// Nothing is appended if the file fails to parse.
func (s *Store) LoadFasta(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("load fasta: %w", err)
	}
	defer f.Close()

	records, err := ReadFasta(f)
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	for _, rec := range records {
		s.Append(rec.Name, rec.Description, rec.Sequence)
	}
	return nil
}

// SaveFasta writes the store in order. Re-reading the output with ReadFasta
// reproduces the same (name, description, sequence) triples.
func (s *Store) SaveFasta(w io.Writer, width int) error {
	for _, ref := range s.refs {
		if err := WriteRecord(w, ref.Name, ref.Description, ref.Sequence, width); err != nil {
			return fmt.Errorf("save fasta: %w", err)
		}
	}
	return nil
}
