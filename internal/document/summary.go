package document

import (
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/roach88/harvest/internal/ir"
)

// Summary is a YAML description of the resolved document.
type Summary struct {
	Document    string              `yaml:"document"`
	Format      string              `yaml:"format"`
	Authority   string              `yaml:"authority"`
	References  []ReferenceSummary  `yaml:"references"`
	Length      int64               `yaml:"total_length"`
	Tracks      []string            `yaml:"tracks,omitempty"`
	Leaves      []string            `yaml:"tree_leaves,omitempty"`
	Annotations []AnnotationSummary `yaml:"annotations,omitempty"`
	LCBs        int                 `yaml:"lcbs"`
	Variants    VariantSummary      `yaml:"variants"`
	Filters     []FilterSummary     `yaml:"filters,omitempty"`
}

// ReferenceSummary describes one reference sequence.
type ReferenceSummary struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description,omitempty"`
	Length      int    `yaml:"length"`
}

// AnnotationSummary describes one annotation track.
type AnnotationSummary struct {
	Source   string `yaml:"source"`
	Features int    `yaml:"features"`
}

// VariantSummary counts variants.
type VariantSummary struct {
	Total  int `yaml:"total"`
	Passed int `yaml:"passed"`
}

// FilterSummary describes one filter.
type FilterSummary struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	Intervals   int    `yaml:"intervals"`
	Bases       int64  `yaml:"bases"`
}

// Summarize builds the summary of the document.
func (d *Document) Summarize() Summary {
	s := Summary{
		Document:  d.ID(),
		Format:    ir.FormatVersion,
		Authority: d.authority.String(),
		Length:    d.refs.TotalLength(),
		Tracks:    d.tracks,
		LCBs:      len(d.lcbs),
	}
	for _, ref := range d.refs.References() {
		s.References = append(s.References, ReferenceSummary{
			Name:        ref.Name,
			Description: ref.Description,
			Length:      ref.Len(),
		})
	}
	if d.tree != nil {
		s.Leaves = d.tree.Leaves()
	}
	for _, a := range d.annots {
		s.Annotations = append(s.Annotations, AnnotationSummary{Source: a.Source, Features: len(a.Features)})
	}
	for _, v := range d.variants {
		s.Variants.Total++
		if v.Passes() {
			s.Variants.Passed++
		}
	}
	for _, f := range d.filters {
		fs := FilterSummary{Name: f.Name, Description: f.Description, Intervals: len(f.Intervals)}
		for _, iv := range f.Intervals {
			fs.Bases += iv.Len()
		}
		s.Filters = append(s.Filters, fs)
	}
	return s
}

// WriteSummary writes Summarize as YAML.
func (d *Document) WriteSummary(w io.Writer) error {
	d.beginWrite("summary")
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(d.Summarize()); err != nil {
		return fmt.Errorf("write summary: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("write summary: %w", err)
	}
	return nil
}
