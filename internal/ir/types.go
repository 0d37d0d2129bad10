package ir

// Reference is one reference sequence of the document.
type Reference struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Sequence    string `json:"sequence"`
}

// Len returns the number of residues in the sequence.
func (r Reference) Len() int {
	return len(r.Sequence)
}

// Interval is a half-open range [Start, End) of concatenated coordinates.
type Interval struct {
	Start int64 `json:"start"`
	End   int64 `json:"end"`
}

// Len returns End-Start, or 0 for an empty or inverted interval.
func (iv Interval) Len() int64 {
	if iv.End <= iv.Start {
		return 0
	}
	return iv.End - iv.Start
}

// Overlaps reports whether the two intervals share at least one coordinate.
func (iv Interval) Overlaps(other Interval) bool {
	return iv.Start < other.End && other.Start < iv.End
}

// Contains reports whether pos lies inside the interval.
func (iv Interval) Contains(pos int64) bool {
	return pos >= iv.Start && pos < iv.End
}

// Feature is an annotation feature positioned on the reference.
// Only name, description and position are modelled.
type Feature struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Span        Interval `json:"span"`
	Reverse     bool     `json:"reverse"`
}

// AnnotationTrack is the resolved content of one annotation source.
type AnnotationTrack struct {
	Source   string    `json:"source"`
	Features []Feature `json:"features"`
}

// Region is one genome's row inside a locally collinear block.
//
// Start and Length are ungapped coordinates in the track's own concatenated
// space. Aligned holds the gapped row as it appeared in the alignment.
type Region struct {
	Track   int    `json:"track"`
	Start   int64  `json:"start"`
	Length  int64  `json:"length"`
	Reverse bool   `json:"reverse"`
	Aligned string `json:"aligned"`
}

// End returns the exclusive end of the region.
func (r Region) End() int64 {
	return r.Start + r.Length
}

// LCB is a locally collinear block: a set of aligned regions, one per
// participating track. Backbone intervals are derived from LCBs.
type LCB struct {
	Regions []Region `json:"regions"`
}

// ReferenceRegion returns the track-0 region of the block, if present.
func (l LCB) ReferenceRegion() (Region, bool) {
	for _, r := range l.Regions {
		if r.Track == 0 {
			return r, true
		}
	}
	return Region{}, false
}

// Variant is one variable alignment column placed on the reference.
//
// Alleles is indexed by track; Alleles[0] is the reference allele. Filters
// holds the names of the filters that tag this position (empty = PASS).
type Variant struct {
	Position int64    `json:"position"`
	Alleles  []string `json:"alleles"`
	Filters  []string `json:"filters,omitempty"`
}

// Passes reports whether no filter tags the variant.
func (v Variant) Passes() bool {
	return len(v.Filters) == 0
}

// Filter is a named set of reference intervals loaded from a BED file.
// Filters are additive: they tag data, never remove it.
type Filter struct {
	Name        string     `json:"name"`
	Description string     `json:"description"`
	Intervals   []Interval `json:"intervals"`
}

// Intersects reports whether any interval of the filter overlaps iv.
func (f Filter) Intersects(iv Interval) bool {
	for _, own := range f.Intervals {
		if own.Overlaps(iv) {
			return true
		}
	}
	return false
}

// Covers reports whether any interval of the filter contains pos.
func (f Filter) Covers(pos int64) bool {
	for _, own := range f.Intervals {
		if own.Contains(pos) {
			return true
		}
	}
	return false
}

// Gap is the allele recorded for a track that has no base at a variant
// position, either because its row is gapped or because it is absent from
// the block.
const Gap = "-"
