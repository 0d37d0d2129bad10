package annotation

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/biogo/biogo/io/featio/bed"
)

// BedInterval is one BED line: a 0-based half-open range on a named
// sequence.
type BedInterval struct {
	Chrom string
	Start int64
	End   int64
}

// LoadBed parses the BED file at path.
func LoadBed(path string) ([]BedInterval, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("load bed: %w", err)
	}
	defer f.Close()

	intervals, err := ReadBed(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return intervals, nil
}

// ReadBed parses tab-separated BED lines. Blank lines, comments and
// track/browser lines are skipped. Only the first three columns are read.
func ReadBed(r io.Reader) ([]BedInterval, error) {
	data, lines, err := bedRecords(r)
	if err != nil {
		return nil, err
	}

	br, err := bed.NewReader(data, 3)
	if err != nil {
		return nil, fmt.Errorf("read bed: %w", err)
	}

	intervals := make([]BedInterval, 0, len(lines))
	for _, lineNo := range lines {
		f, err := br.Read()
		if err != nil {
			if errors.Is(err, io.EOF) {
				err = io.ErrUnexpectedEOF
			}
			return nil, fmt.Errorf("read bed: line %d: %w", lineNo, err)
		}
		b, ok := f.(*bed.Bed3)
		if !ok {
			return nil, fmt.Errorf("read bed: line %d: unexpected feature %T", lineNo, f)
		}
		if b.ChromStart < 0 || b.ChromEnd < b.ChromStart {
			return nil, fmt.Errorf("read bed: line %d: invalid range %d-%d", lineNo, b.ChromStart, b.ChromEnd)
		}
		intervals = append(intervals, BedInterval{
			Chrom: b.Chrom,
			Start: int64(b.ChromStart),
			End:   int64(b.ChromEnd),
		})
	}
	return intervals, nil
}

// bedRecords copies the data lines of r, each newline-terminated, and
// reports the source line number of every one.
func bedRecords(r io.Reader) (*bytes.Buffer, []int, error) {
	var (
		data   bytes.Buffer
		lines  []int
		lineNo int
	)
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		lineNo++
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") ||
			strings.HasPrefix(line, "track") || strings.HasPrefix(line, "browser") {
			continue
		}
		data.WriteString(line)
		data.WriteByte('\n')
		lines = append(lines, lineNo)
	}
	if err := sc.Err(); err != nil {
		return nil, nil, fmt.Errorf("read bed: %w", err)
	}
	return &data, lines, nil
}
