package variant

import (
	"bufio"
	"fmt"
	"io"
	"slices"
	"strconv"
	"strings"

	"github.com/roach88/harvest/internal/ir"
	"github.com/roach88/harvest/internal/reference"
)

// WriteVCF renders the variant table as VCFv4.1. Each variant is placed
// back on its own reference sequence; one GT column is written per
// non-reference track. Gapped alleles are written as missing genotypes.
func WriteVCF(w io.Writer, variants []ir.Variant, tracks []string, refs *reference.Store, filters []ir.Filter) error {
	bw := bufio.NewWriter(w)

	fmt.Fprintln(bw, "##fileformat=VCFv4.1")
	fmt.Fprintln(bw, "##source=harvest")
	for _, ref := range refs.References() {
		fmt.Fprintf(bw, "##contig=<ID=%s,length=%d>\n", ref.Name, ref.Len())
	}
	for _, f := range headerFilters(variants, filters) {
		fmt.Fprintf(bw, "##FILTER=<ID=%s,Description=%s>\n", f.Name, strconv.Quote(f.Description))
	}
	fmt.Fprintln(bw, `##FORMAT=<ID=GT,Number=1,Type=Integer,Description="Genotype">`)

	fmt.Fprint(bw, "#CHROM\tPOS\tID\tREF\tALT\tQUAL\tFILTER\tINFO\tFORMAT")
	for _, name := range sampleNames(tracks) {
		fmt.Fprint(bw, "\t"+name)
	}
	fmt.Fprintln(bw)

	for _, v := range variants {
		idx, offset, ok := refs.Locate(v.Position)
		if !ok {
			return fmt.Errorf("write vcf: position %d outside the reference", v.Position)
		}
		if len(v.Alleles) == 0 {
			return fmt.Errorf("write vcf: variant at %d has no alleles", v.Position)
		}

		ref := v.Alleles[0]
		var alts []string
		for _, a := range v.Alleles[1:] {
			if a != ref && a != ir.Gap && !slices.Contains(alts, a) {
				alts = append(alts, a)
			}
		}
		alt := "."
		if len(alts) > 0 {
			alt = strings.Join(alts, ",")
		}
		filter := "PASS"
		if !v.Passes() {
			filter = strings.Join(v.Filters, ";")
		}

		fmt.Fprintf(bw, "%s\t%d\t.\t%s\t%s\t.\t%s\t.\tGT", refs.At(idx).Name, offset+1, ref, alt, filter)
		for _, a := range v.Alleles[1:] {
			gt := "."
			switch {
			case a == ref:
				gt = "0"
			case a != ir.Gap:
				gt = strconv.Itoa(slices.Index(alts, a) + 1)
			}
			fmt.Fprint(bw, "\t"+gt)
		}
		fmt.Fprintln(bw)
	}

	if err := bw.Flush(); err != nil {
		return fmt.Errorf("write vcf: %w", err)
	}
	return nil
}

// WriteSNPs writes one FASTA record per track holding that track's allele
// at every variant that passes all filters and is a single base in every
// track. Rows are wrapped every width residues.
func WriteSNPs(w io.Writer, variants []ir.Variant, tracks []string, width int) error {
	rows := make([]strings.Builder, len(tracks))
	for _, v := range variants {
		if !isSNP(v, len(tracks)) {
			continue
		}
		for t := range tracks {
			rows[t].WriteString(v.Alleles[t])
		}
	}

	bw := bufio.NewWriter(w)
	for t, name := range tracks {
		if err := reference.WriteRecord(bw, name, "", rows[t].String(), width); err != nil {
			return fmt.Errorf("write snps: %w", err)
		}
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("write snps: %w", err)
	}
	return nil
}

func isSNP(v ir.Variant, tracks int) bool {
	if !v.Passes() || len(v.Alleles) != tracks {
		return false
	}
	for _, a := range v.Alleles {
		if len(a) != 1 || a == ir.Gap {
			return false
		}
	}
	return true
}

// sampleNames returns the VCF sample columns: every track but the
// reference.
func sampleNames(tracks []string) []string {
	if len(tracks) <= 1 {
		return nil
	}
	return tracks[1:]
}

// headerFilters returns the declared filters followed by any filter name
// found only on variants, each once.
func headerFilters(variants []ir.Variant, filters []ir.Filter) []ir.Filter {
	out := make([]ir.Filter, 0, len(filters))
	seen := map[string]bool{}
	for _, f := range filters {
		if !seen[f.Name] {
			seen[f.Name] = true
			out = append(out, f)
		}
	}
	for _, v := range variants {
		for _, name := range v.Filters {
			if !seen[name] {
				seen[name] = true
				out = append(out, ir.Filter{Name: name})
			}
		}
	}
	return out
}
