package variant

import (
	"slices"

	"github.com/roach88/harvest/internal/ir"
)

// Tag adds f.Name to the filters of every variant whose position f covers.
// Variants are never removed. It returns the number of variants tagged.
func Tag(variants []ir.Variant, f ir.Filter) int {
	n := 0
	for i := range variants {
		if !f.Covers(variants[i].Position) {
			continue
		}
		if !slices.Contains(variants[i].Filters, f.Name) {
			variants[i].Filters = append(variants[i].Filters, f.Name)
		}
		n++
	}
	return n
}
