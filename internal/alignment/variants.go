package alignment

import (
	"sort"
	"strings"

	"github.com/roach88/harvest/internal/ir"
)

// DeriveVariants returns one variant per alignment column where the
// reference has a base and at least one other track differs from it,
// ignoring case. Alleles are upper-cased and indexed by track; tracks
// that are gapped or absent from the block carry ir.Gap.
//
// Variants are sorted by reference position. When blocks overlap on the
// reference the first block wins.
func DeriveVariants(aln *Alignment) []ir.Variant {
	var variants []ir.Variant
	seen := map[int64]bool{}

	for _, lcb := range aln.LCBs {
		ref, ok := lcb.ReferenceRegion()
		if !ok || ref.Length == 0 {
			continue
		}

		rows := make([]string, len(aln.Tracks))
		for _, r := range lcb.Regions {
			rows[r.Track] = r.Aligned
		}

		var k int64 // reference residues consumed so far
		for col := 0; col < len(ref.Aligned); col++ {
			if IsGap(ref.Aligned[col]) {
				continue
			}
			pos := ref.Start + k
			if ref.Reverse {
				pos = ref.End() - 1 - k
			}
			k++

			alleles := make([]string, len(aln.Tracks))
			variable := false
			for t, row := range rows {
				c := byte('-')
				if col < len(row) && !IsGap(row[col]) {
					c = row[col]
					if ref.Reverse {
						c = complement(c)
					}
				}
				if IsGap(c) {
					alleles[t] = ir.Gap
				} else {
					alleles[t] = strings.ToUpper(string(c))
				}
				if alleles[t] != alleles[0] {
					variable = true
				}
			}
			if !variable || seen[pos] {
				continue
			}
			seen[pos] = true
			variants = append(variants, ir.Variant{Position: pos, Alleles: alleles})
		}
	}

	sort.SliceStable(variants, func(i, j int) bool {
		return variants[i].Position < variants[j].Position
	})
	return variants
}
