package document

import (
	"fmt"
	"strings"

	"golang.org/x/text/unicode/norm"

	"github.com/roach88/harvest/internal/annotation"
	"github.com/roach88/harvest/internal/ir"
	"github.com/roach88/harvest/internal/variant"
)

// FilterSpec is a parsed -b argument.
type FilterSpec struct {
	File        string
	Name        string
	Description string
}

// ParseFilterSpec parses "file,name,description". The argument is split
// at its first two commas, so the description may itself contain commas.
// Surrounding quotes are stripped from name and description, and both are
// NFC-normalized.
func ParseFilterSpec(arg string) (FilterSpec, error) {
	parts := strings.SplitN(arg, ",", 3)
	spec := FilterSpec{File: strings.TrimSpace(parts[0])}
	if spec.File == "" {
		return FilterSpec{}, &FilterSpecError{Arg: arg, Missing: "file"}
	}
	if len(parts) < 2 || unquote(parts[1]) == "" {
		return FilterSpec{}, &FilterSpecError{Arg: arg, File: spec.File, Missing: "name"}
	}
	if len(parts) < 3 || unquote(parts[2]) == "" {
		return FilterSpec{}, &FilterSpecError{Arg: arg, File: spec.File, Missing: "description"}
	}
	spec.Name = norm.NFC.String(unquote(parts[1]))
	spec.Description = norm.NFC.String(unquote(parts[2]))
	return spec, nil
}

func unquote(s string) string {
	s = strings.TrimSpace(s)
	if len(s) >= 2 && (s[0] == '"' || s[0] == '\'') && s[len(s)-1] == s[0] {
		return s[1 : len(s)-1]
	}
	return s
}

// AddFilter loads the BED file of spec as a named filter. Filters are
// additive: each one tags the variants and backbone intervals it
// intersects and never removes data. They apply in load order.
func (d *Document) AddFilter(spec FilterSpec) error {
	if err := d.beginLoad(spec.File); err != nil {
		return err
	}
	if err := d.requireReference(spec.File); err != nil {
		return err
	}
	intervals, err := annotation.LoadBed(spec.File)
	if err != nil {
		return err
	}

	f := ir.Filter{Name: spec.Name, Description: spec.Description}
	for _, bi := range intervals {
		idx, err := d.refs.FindByIdentifier(bi.Chrom)
		if err != nil {
			if err := d.skipOrFail(spec.File, err); err != nil {
				return fmt.Errorf("%s: %w", spec.File, err)
			}
			continue
		}
		if seqLen := int64(d.refs.At(idx).Len()); bi.End > seqLen {
			return fmt.Errorf("%s: interval %s:%d-%d beyond sequence length %d",
				spec.File, bi.Chrom, bi.Start, bi.End, seqLen)
		}
		start, err := d.refs.ToConcatenated(idx, bi.Start)
		if err != nil {
			return err
		}
		f.Intervals = append(f.Intervals, ir.Interval{Start: start, End: start + bi.End - bi.Start})
	}

	d.filters = append(d.filters, f)
	tagged := variant.Tag(d.variants, f)
	d.log.Info("filter added", "name", f.Name, "intervals", len(f.Intervals), "variants", tagged)
	return nil
}
