package document

import (
	"fmt"
	"io"

	"github.com/roach88/harvest/internal/alignment"
	"github.com/roach88/harvest/internal/variant"
)

// Output names one artifact a document can write.
type Output int

const (
	OutputContainer Output = iota
	OutputFasta
	OutputNewick
	OutputSNP
	OutputBackbone
	OutputXMFA
	OutputVCF
	OutputSummary
)

// CheckOutput reports whether the document holds what o needs, returning
// the same *Error the matching writer would. It does not seal the
// document.
func (d *Document) CheckOutput(o Output) error {
	switch o {
	case OutputContainer, OutputFasta:
		return d.requireReference("")
	case OutputNewick:
		if d.tree == nil {
			return &Error{Code: ErrCodeTreeMissing, Message: "no tree loaded"}
		}
	case OutputSNP, OutputVCF:
		if !d.hasVariant {
			return &Error{Code: ErrCodeVariantsMissing, Message: "no variants loaded"}
		}
	case OutputBackbone, OutputXMFA:
		if !d.aligned {
			return &Error{Code: ErrCodeAlignmentMissing, Message: "no alignment loaded"}
		}
	}
	return nil
}

func (d *Document) beginWrite(what string) {
	d.sealed = true
	d.log.Info("writing", "output", what)
}

// WriteFasta writes the reference sequences.
func (d *Document) WriteFasta(w io.Writer) error {
	if err := d.CheckOutput(OutputFasta); err != nil {
		return err
	}
	d.beginWrite("fasta")
	return d.refs.SaveFasta(w, d.lineWidth)
}

// WriteNewick writes the (possibly rerooted) tree.
func (d *Document) WriteNewick(w io.Writer) error {
	if err := d.CheckOutput(OutputNewick); err != nil {
		return err
	}
	d.beginWrite("newick")
	if err := d.tree.WriteNewick(w); err != nil {
		return fmt.Errorf("write newick: %w", err)
	}
	return nil
}

// WriteSNPs writes the multi-FASTA SNP table of unfiltered single-base
// variants, one record per track.
func (d *Document) WriteSNPs(w io.Writer) error {
	if err := d.CheckOutput(OutputSNP); err != nil {
		return err
	}
	d.beginWrite("snp")
	return variant.WriteSNPs(w, d.variants, d.tracks, d.lineWidth)
}

// WriteBackbone writes the backbone intervals with their filter tags.
func (d *Document) WriteBackbone(w io.Writer) error {
	if err := d.CheckOutput(OutputBackbone); err != nil {
		return err
	}
	d.beginWrite("backbone")
	return alignment.WriteBackbone(w, d.lcbs, d.refs, d.filters)
}

// WriteXMFA writes the alignment as XMFA.
func (d *Document) WriteXMFA(w io.Writer) error {
	if err := d.CheckOutput(OutputXMFA); err != nil {
		return err
	}
	d.beginWrite("xmfa")
	return alignment.WriteXMFA(w, &alignment.Alignment{Tracks: d.tracks, LCBs: d.lcbs})
}

// WriteVCF writes the variant table as VCF.
func (d *Document) WriteVCF(w io.Writer) error {
	if err := d.CheckOutput(OutputVCF); err != nil {
		return err
	}
	d.beginWrite("vcf")
	return variant.WriteVCF(w, d.variants, d.tracks, d.refs, d.filters)
}
