package annotation

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"regexp"
	"strconv"
	"strings"
)

// Feature is one annotated feature in record-local coordinates.
type Feature struct {
	Kind        string
	Name        string
	Description string
	Start       int64 // 0-based
	End         int64 // exclusive
	Reverse     bool
}

// Record is one GenBank entry.
type Record struct {
	Locus      string
	Accession  string
	Version    string
	GI         string
	Definition string
	Sequence   string
	Features   []Feature
}

// Name returns the most specific identifier of the record, used as the
// reference name when the record supplies its own sequence.
func (r Record) Name() string {
	for _, id := range []string{r.Version, r.Accession, r.Locus} {
		if id != "" {
			return id
		}
	}
	return r.GI
}

// Identifiers returns every identifier a reference sequence could be known
// by, most specific first.
func (r Record) Identifiers() []string {
	var ids []string
	for _, id := range []string{r.Version, r.Accession, r.GI, r.Locus} {
		if id != "" {
			ids = append(ids, id)
		}
	}
	return ids
}

// List is the parsed content of one annotation source.
type List struct {
	Source  string
	Records []Record
}

// LoadGenbank parses the GenBank file at path.
//
// When requireOwnSequence is set every record must carry an ORIGIN
// sequence; otherwise the load fails with *NoSequenceError naming path.
func LoadGenbank(path string, requireOwnSequence bool) (*List, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("load genbank: %w", err)
	}
	defer f.Close()

	records, err := ReadGenbank(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("%s: no GenBank records", path)
	}

	if requireOwnSequence {
		for _, rec := range records {
			if rec.Sequence == "" {
				return nil, &NoSequenceError{File: path, Record: rec.Name()}
			}
		}
	}
	return &List{Source: path, Records: records}, nil
}

var (
	locationNumber = regexp.MustCompile(`\d+`)
	giPattern      = regexp.MustCompile(`GI:(\d+)`)
)

// ReadGenbank parses every record of a GenBank stream.
func ReadGenbank(r io.Reader) ([]Record, error) {
	br := bufio.NewReader(r)

	var (
		records []Record
		rec     *Record
		section string
		feature *Feature
		quals   map[string]string
		lastKey string
		seq     strings.Builder
		lineNo  int
	)

	endFeature := func() {
		if feature == nil {
			return
		}
		feature.Name = firstNonEmpty(quals["locus_tag"], quals["gene"], quals["label"], feature.Kind)
		feature.Description = firstNonEmpty(quals["product"], quals["note"])
		if feature.Kind != "source" {
			rec.Features = append(rec.Features, *feature)
		}
		feature = nil
		quals = nil
		lastKey = ""
	}

	for {
		line, err := br.ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("read genbank: %w", err)
		}
		if line == "" && err != nil {
			break
		}
		lineNo++
		line = strings.TrimRight(line, "\r\n")

		switch {
		case strings.HasPrefix(line, "LOCUS"):
			rec = &Record{}
			if fields := strings.Fields(line); len(fields) > 1 {
				rec.Locus = fields[1]
			}
			section = "LOCUS"

		case rec == nil:
			if strings.TrimSpace(line) != "" {
				return nil, fmt.Errorf("read genbank: line %d: expected LOCUS", lineNo)
			}

		case strings.HasPrefix(line, "//"):
			endFeature()
			rec.Sequence = seq.String()
			seq.Reset()
			records = append(records, *rec)
			rec = nil
			section = ""

		case len(line) > 0 && line[0] != ' ':
			// New top-level keyword.
			endFeature()
			key, value := splitKeyword(line)
			section = key
			switch key {
			case "DEFINITION":
				rec.Definition = value
			case "ACCESSION":
				if fields := strings.Fields(value); len(fields) > 0 {
					rec.Accession = fields[0]
				}
			case "VERSION":
				if fields := strings.Fields(value); len(fields) > 0 {
					rec.Version = fields[0]
				}
				if m := giPattern.FindStringSubmatch(value); m != nil {
					rec.GI = m[1]
				}
			}

		case section == "DEFINITION":
			rec.Definition = strings.TrimSpace(rec.Definition + " " + strings.TrimSpace(line))

		case section == "FEATURES":
			if err := parseFeatureLine(line, &feature, &quals, &lastKey, endFeature); err != nil {
				return nil, fmt.Errorf("read genbank: line %d: %w", lineNo, err)
			}

		case section == "ORIGIN":
			for _, field := range strings.Fields(line) {
				if field[0] >= '0' && field[0] <= '9' {
					continue
				}
				seq.WriteString(field)
			}
		}

		if err != nil {
			break
		}
	}

	if rec != nil {
		return nil, fmt.Errorf("read genbank: record %s not terminated by //", rec.Locus)
	}
	return records, nil
}

// parseFeatureLine handles one line of the FEATURES table. Feature keys
// start in column 6, qualifiers in column 22.
func parseFeatureLine(line string, feature **Feature, quals *map[string]string, lastKey *string, endFeature func()) error {
	body := strings.TrimSpace(line)
	if body == "" {
		return nil
	}

	if len(line) > 5 && line[5] != ' ' {
		endFeature()
		fields := strings.Fields(body)
		if len(fields) < 2 {
			return fmt.Errorf("feature %q has no location", fields[0])
		}
		start, end, reverse, err := parseLocation(strings.Join(fields[1:], ""))
		if err != nil {
			return err
		}
		*feature = &Feature{Kind: fields[0], Start: start, End: end, Reverse: reverse}
		*quals = map[string]string{}
		return nil
	}

	if *feature == nil {
		return nil
	}

	if strings.HasPrefix(body, "/") {
		key, value, _ := strings.Cut(body[1:], "=")
		*lastKey = key
		(*quals)[key] = strings.Trim(value, `"`)
		return nil
	}

	// Continuation of a qualifier value or of a multi-line location.
	if *lastKey != "" {
		(*quals)[*lastKey] = strings.TrimSpace((*quals)[*lastKey] + " " + strings.Trim(body, `"`))
	}
	return nil
}

// parseLocation reduces a GenBank location to its outer span. join() and
// order() collapse to the first and last bases; complement() sets reverse.
func parseLocation(loc string) (start, end int64, reverse bool, err error) {
	reverse = strings.Contains(loc, "complement(")
	numbers := locationNumber.FindAllString(loc, -1)
	if len(numbers) == 0 {
		return 0, 0, false, fmt.Errorf("bad location %q", loc)
	}
	lo, hi := int64(-1), int64(-1)
	for _, s := range numbers {
		n, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return 0, 0, false, fmt.Errorf("bad location %q: %w", loc, err)
		}
		if lo < 0 || n < lo {
			lo = n
		}
		if n > hi {
			hi = n
		}
	}
	if lo < 1 {
		return 0, 0, false, fmt.Errorf("bad location %q: positions are 1-based", loc)
	}
	return lo - 1, hi, reverse, nil
}

func splitKeyword(line string) (key, value string) {
	fields := strings.SplitN(line, " ", 2)
	key = fields[0]
	if len(fields) > 1 {
		value = strings.TrimSpace(fields[1])
	}
	return key, value
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
