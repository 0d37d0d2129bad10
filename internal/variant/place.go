package variant

import (
	"fmt"

	"github.com/roach88/harvest/internal/ir"
	"github.com/roach88/harvest/internal/reference"
)

// Place positions a VCF record on the concatenated reference. CHROM is
// resolved through the store's identifier index, so a failed lookup is a
// *reference.IdentifierNotFoundError the caller may choose to skip.
//
// The resulting alleles are the REF allele followed by each sample's
// allele; missing genotypes become ir.Gap.
func Place(rec Record, refs *reference.Store) (ir.Variant, error) {
	idx, err := refs.FindByIdentifier(rec.Chrom)
	if err != nil {
		return ir.Variant{}, err
	}
	offset := rec.Pos - 1
	if offset >= int64(refs.At(idx).Len()) {
		return ir.Variant{}, fmt.Errorf("%s:%d beyond sequence length %d", rec.Chrom, rec.Pos, refs.At(idx).Len())
	}
	pos, err := refs.ToConcatenated(idx, offset)
	if err != nil {
		return ir.Variant{}, err
	}

	v := ir.Variant{Position: pos, Alleles: make([]string, 0, len(rec.Genotypes)+1)}
	v.Alleles = append(v.Alleles, rec.Ref)
	for i := range rec.Genotypes {
		a := rec.Allele(i)
		if a == "" {
			a = ir.Gap
		}
		v.Alleles = append(v.Alleles, a)
	}
	if len(rec.Filters) > 0 {
		v.Filters = append([]string(nil), rec.Filters...)
	}
	return v, nil
}
