package variant

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// Record is one VCF data line in file coordinates.
type Record struct {
	Chrom   string
	Pos     int64 // 1-based
	Ref     string
	Alt     []string
	Filters []string
	// Genotypes holds the first allele index of each sample's GT, or -1
	// when it is missing.
	Genotypes []int
}

// Allele returns the allele string of sample i, or "" when missing.
func (r Record) Allele(i int) string {
	gt := r.Genotypes[i]
	switch {
	case gt == 0:
		return r.Ref
	case gt > 0 && gt <= len(r.Alt):
		return r.Alt[gt-1]
	}
	return ""
}

// Table is the parsed content of a VCF file.
type Table struct {
	Samples []string
	Records []Record
}

// LoadVCF parses the VCF file at path.
func LoadVCF(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("load vcf: %w", err)
	}
	defer f.Close()

	table, err := ReadVCF(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return table, nil
}

// ReadVCF parses a VCF stream. Meta lines are skipped; the #CHROM header
// must precede the data lines. Only the GT field of each sample is read.
func ReadVCF(r io.Reader) (*Table, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), 16*1024*1024)

	var (
		table  *Table
		lineNo int
	)
	for sc.Scan() {
		lineNo++
		line := strings.TrimRight(sc.Text(), "\r")
		switch {
		case strings.HasPrefix(line, "##"), strings.TrimSpace(line) == "":
			continue

		case strings.HasPrefix(line, "#CHROM"):
			fields := strings.Split(line, "\t")
			if len(fields) < 8 {
				return nil, fmt.Errorf("read vcf: line %d: header has %d columns", lineNo, len(fields))
			}
			table = &Table{}
			if len(fields) > 9 {
				table.Samples = fields[9:]
			}

		case table == nil:
			return nil, fmt.Errorf("read vcf: line %d: data before #CHROM header", lineNo)

		default:
			rec, err := parseRecord(line, len(table.Samples))
			if err != nil {
				return nil, fmt.Errorf("read vcf: line %d: %w", lineNo, err)
			}
			table.Records = append(table.Records, rec)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read vcf: %w", err)
	}
	if table == nil {
		return nil, fmt.Errorf("read vcf: missing #CHROM header")
	}
	return table, nil
}

func parseRecord(line string, samples int) (Record, error) {
	fields := strings.Split(line, "\t")
	if len(fields) != 9+samples && !(samples == 0 && len(fields) == 8) {
		return Record{}, fmt.Errorf("want %d columns, got %d", 9+samples, len(fields))
	}

	pos, err := strconv.ParseInt(fields[1], 10, 64)
	if err != nil || pos < 1 {
		return Record{}, fmt.Errorf("bad position %q", fields[1])
	}
	rec := Record{Chrom: fields[0], Pos: pos, Ref: strings.ToUpper(fields[3])}
	if fields[4] != "." {
		for _, alt := range strings.Split(fields[4], ",") {
			rec.Alt = append(rec.Alt, strings.ToUpper(alt))
		}
	}
	if f := fields[6]; f != "PASS" && f != "." {
		rec.Filters = strings.Split(f, ";")
	}
	if samples == 0 {
		return rec, nil
	}

	gtIndex := -1
	for i, key := range strings.Split(fields[8], ":") {
		if key == "GT" {
			gtIndex = i
			break
		}
	}
	if gtIndex < 0 {
		return Record{}, fmt.Errorf("FORMAT %q has no GT field", fields[8])
	}

	rec.Genotypes = make([]int, samples)
	for i, sample := range fields[9:] {
		values := strings.Split(sample, ":")
		rec.Genotypes[i] = -1
		if gtIndex >= len(values) {
			continue
		}
		first := strings.FieldsFunc(values[gtIndex], func(r rune) bool { return r == '/' || r == '|' })
		if len(first) == 0 || first[0] == "." {
			continue
		}
		gt, err := strconv.Atoi(first[0])
		if err != nil || gt < 0 || gt > len(rec.Alt) {
			return Record{}, fmt.Errorf("sample %d: bad genotype %q", i+1, values[gtIndex])
		}
		rec.Genotypes[i] = gt
	}
	return rec, nil
}
