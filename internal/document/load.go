package document

import (
	"errors"
	"fmt"
	"sort"

	"github.com/roach88/harvest/internal/alignment"
	"github.com/roach88/harvest/internal/annotation"
	"github.com/roach88/harvest/internal/ir"
	"github.com/roach88/harvest/internal/reference"
	"github.com/roach88/harvest/internal/tree"
	"github.com/roach88/harvest/internal/variant"
)

func (d *Document) beginLoad(path string) error {
	if d.sealed {
		return fmt.Errorf("load %s: %w", path, ErrSealed)
	}
	d.log.Info("loading", "file", path)
	return nil
}

// LoadFasta loads an explicit reference FASTA. It supersedes a reference
// set implicitly by an earlier source; a second explicit FASTA is an
// ErrCodeAuthorityConflict. A file with no records is an
// ErrCodeEmptyReference.
//
// Overriding an implicit reference is not unconditional: a FASTA shorter
// than the furthest coordinate already bound to the implicit reference by
// an alignment, variants, annotations or filters is rejected with
// ErrCodeAuthorityConflict, so loaded data never points past the end of
// the reference.
func (d *Document) LoadFasta(path string) error {
	if err := d.beginLoad(path); err != nil {
		return err
	}
	decision, err := d.authority.Decide(SourceFasta)
	if err != nil {
		var de *Error
		if errors.As(err, &de) {
			de.File = path
		}
		return err
	}

	fresh := reference.NewStore()
	if err := fresh.LoadFasta(path); err != nil {
		return err
	}
	if fresh.Len() == 0 {
		return &Error{Code: ErrCodeEmptyReference, File: path, Message: "no sequences in reference file"}
	}
	if decision == Replace {
		// Data already bound to the implicit reference must still fit.
		if need := d.boundLength(); need > fresh.TotalLength() {
			return &Error{
				Code:    ErrCodeAuthorityConflict,
				File:    path,
				Message: fmt.Sprintf("reference is %d bp but loaded data reaches %d", fresh.TotalLength(), need),
			}
		}
		d.log.Info("explicit reference replaces implicit one", "file", path, "previous", d.authority.Source())
		d.refs.Clear()
	}
	for _, ref := range fresh.References() {
		d.refs.Append(ref.Name, ref.Description, ref.Sequence)
	}
	d.authority.Settle(SourceFasta, decision)
	return nil
}

// boundLength returns the furthest concatenated reference coordinate any
// loaded data refers to.
func (d *Document) boundLength() int64 {
	var n int64
	for _, lcb := range d.lcbs {
		if r, ok := lcb.ReferenceRegion(); ok {
			n = max(n, r.End())
		}
	}
	for _, v := range d.variants {
		n = max(n, v.Position+1)
	}
	for _, a := range d.annots {
		for _, f := range a.Features {
			n = max(n, f.Span.End)
		}
	}
	for _, f := range d.filters {
		for _, iv := range f.Intervals {
			n = max(n, iv.End)
		}
	}
	return n
}

// LoadMFA loads a multi-FASTA alignment. When deriveVariantsIfAbsent is set
// and no variant table is loaded, variants are derived from its columns.
func (d *Document) LoadMFA(path string, deriveVariantsIfAbsent bool) error {
	if err := d.beginLoad(path); err != nil {
		return err
	}
	aln, err := alignment.LoadMFA(path)
	if err != nil {
		return err
	}
	return d.bindAlignment(path, aln, deriveVariantsIfAbsent)
}

// LoadXMFA loads an XMFA alignment. See LoadMFA for deriveVariantsIfAbsent.
func (d *Document) LoadXMFA(path string, deriveVariantsIfAbsent bool) error {
	if err := d.beginLoad(path); err != nil {
		return err
	}
	aln, err := alignment.LoadXMFA(path)
	if err != nil {
		return err
	}
	return d.bindAlignment(path, aln, deriveVariantsIfAbsent)
}

func (d *Document) bindAlignment(path string, aln *alignment.Alignment, derive bool) error {
	if d.aligned {
		return fmt.Errorf("%s: an alignment is already loaded", path)
	}
	if d.hasVariant && len(d.tracks) != len(aln.Tracks) {
		return fmt.Errorf("%s: alignment has %d tracks but the variant table has %d",
			path, len(aln.Tracks), len(d.tracks))
	}
	decision, err := d.authority.Decide(SourceAlignment)
	if err != nil {
		return err
	}

	switch decision {
	case Adopt:
		name, desc := reference.SplitTag(aln.Tracks[0])
		d.refs.Append(name, desc, aln.ReferenceSequence())
	default:
		if need := aln.ReferenceLength(); need > d.refs.TotalLength() {
			return fmt.Errorf("%s: alignment reaches reference position %d but the reference is %d bp",
				path, need, d.refs.TotalLength())
		}
	}
	d.authority.Settle(SourceAlignment, decision)

	d.tracks = aln.Tracks
	d.lcbs = aln.LCBs
	d.aligned = true
	if derive && !d.hasVariant {
		d.setVariants(alignment.DeriveVariants(aln))
		d.log.Info("derived variants", "file", path, "count", len(d.variants))
	}
	return nil
}

// LoadGenbank loads one GenBank annotation source.
//
// While the reference is unset, or was itself built from GenBank
// sequences, the file must carry its own sequence, which is appended to
// the reference. A file without one fails with ErrCodeNoSequence.
func (d *Document) LoadGenbank(path string) error {
	if err := d.beginLoad(path); err != nil {
		return err
	}
	requireOwnSequence := d.authority.State() == Unset || d.authority.Source() == SourceAnnotation

	list, err := annotation.LoadGenbank(path, requireOwnSequence)
	if err != nil {
		if annotation.IsNoSequence(err) {
			return &Error{
				Code:    ErrCodeNoSequence,
				File:    path,
				Message: "no sequence in GenBank file and no other reference loaded",
				Err:     err,
			}
		}
		return err
	}

	// Record index -> reference index, or NotFound when skipped.
	owners := make([]int, len(list.Records))
	if requireOwnSequence {
		decision, err := d.authority.Decide(SourceAnnotation)
		if err != nil {
			return err
		}
		for _, rec := range list.Records {
			for _, f := range rec.Features {
				if f.End > int64(len(rec.Sequence)) {
					return fmt.Errorf("%s: feature %s ends at %d beyond record %s (%d bp)",
						path, f.Name, f.End, rec.Name(), len(rec.Sequence))
				}
			}
		}
		for i, rec := range list.Records {
			owners[i] = d.refs.Append(rec.Name(), rec.Definition, rec.Sequence)
		}
		d.authority.Settle(SourceAnnotation, decision)
	} else {
		for i, rec := range list.Records {
			owners[i], err = d.resolveRecord(rec)
			if err != nil {
				if err := d.skipOrFail(path, err); err != nil {
					return fmt.Errorf("%s: %w", path, err)
				}
				owners[i] = reference.NotFound
			}
		}
	}

	track := ir.AnnotationTrack{Source: path}
	for i, rec := range list.Records {
		if owners[i] == reference.NotFound {
			continue
		}
		seqLen := int64(d.refs.At(owners[i]).Len())
		for _, f := range rec.Features {
			if f.End > seqLen {
				return fmt.Errorf("%s: feature %s ends at %d beyond %s (%d bp)",
					path, f.Name, f.End, d.refs.At(owners[i]).Name, seqLen)
			}
			start, err := d.refs.ToConcatenated(owners[i], f.Start)
			if err != nil {
				return err
			}
			track.Features = append(track.Features, ir.Feature{
				Name:        f.Name,
				Description: f.Description,
				Span:        ir.Interval{Start: start, End: start + f.End - f.Start},
				Reverse:     f.Reverse,
			})
		}
	}
	d.annots = append(d.annots, track)
	return nil
}

// resolveRecord finds the reference sequence a GenBank record annotates
// by trying each of its identifiers in turn.
func (d *Document) resolveRecord(rec annotation.Record) (int, error) {
	var lastErr error = &reference.IdentifierNotFoundError{ID: rec.Name()}
	for _, id := range rec.Identifiers() {
		idx, err := d.refs.FindByIdentifier(id)
		if err == nil {
			return idx, nil
		}
		lastErr = err
	}
	return reference.NotFound, lastErr
}

// LoadNewick loads the phylogeny. A later tree replaces an earlier one.
func (d *Document) LoadNewick(path string) error {
	if err := d.beginLoad(path); err != nil {
		return err
	}
	t, err := tree.LoadNewick(path)
	if err != nil {
		return err
	}
	if d.tree != nil {
		d.log.Info("replacing tree", "file", path)
	}
	d.tree = t
	d.rerooted = false
	return nil
}

// LoadVCF loads a variant table, replacing any derived or stored one.
// Sample columns bind to tracks 1..n of the alignment when one is loaded.
func (d *Document) LoadVCF(path string) error {
	if err := d.beginLoad(path); err != nil {
		return err
	}
	if err := d.requireReference(path); err != nil {
		return err
	}
	table, err := variant.LoadVCF(path)
	if err != nil {
		return err
	}

	tracks := d.tracks
	if len(tracks) == 0 {
		tracks = append([]string{d.refs.At(0).Name}, table.Samples...)
	} else if len(table.Samples) != len(tracks)-1 {
		return fmt.Errorf("%s: %d samples but the alignment has %d non-reference tracks",
			path, len(table.Samples), len(tracks)-1)
	}

	variants := make([]ir.Variant, 0, len(table.Records))
	for _, rec := range table.Records {
		v, err := variant.Place(rec, d.refs)
		if err != nil {
			if err := d.skipOrFail(path, err); err != nil {
				return fmt.Errorf("%s: %w", path, err)
			}
			continue
		}
		variants = append(variants, v)
	}
	sort.SliceStable(variants, func(i, j int) bool {
		return variants[i].Position < variants[j].Position
	})

	d.tracks = tracks
	d.setVariants(variants)
	return nil
}

// setVariants installs a variant table and tags it with every filter
// loaded so far.
func (d *Document) setVariants(variants []ir.Variant) {
	for _, f := range d.filters {
		variant.Tag(variants, f)
	}
	d.variants = variants
	d.hasVariant = true
}

// MidpointReroot reroots the tree at its midpoint. It may run once, after
// the tree is loaded, and leaves an already midpoint-rooted tree as is.
func (d *Document) MidpointReroot() error {
	if d.sealed {
		return fmt.Errorf("midpoint reroot: %w", ErrSealed)
	}
	if d.tree == nil {
		return &Error{Code: ErrCodeTreeMissing, Message: "midpoint reroot requires a loaded tree"}
	}
	if d.rerooted {
		return &Error{Code: ErrCodeAlreadyRerooted, Message: "tree was already midpoint rerooted"}
	}
	changed := d.tree.MidpointReroot()
	d.rerooted = true
	d.log.Info("midpoint reroot", "changed", changed)
	return nil
}
