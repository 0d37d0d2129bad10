package store

import (
	"context"
	"fmt"

	"github.com/roach88/harvest/internal/ir"
)

// WriteReferences stores the ordered reference sequences and their digest.
// Sequence bytes are stored as a BLOB so they round-trip byte for byte.
func (c *Container) WriteReferences(ctx context.Context, refs []ir.Reference) error {
	if err := c.writable(); err != nil {
		return err
	}
	for i, ref := range refs {
		// A nil slice would bind as NULL.
		seq := []byte(ref.Sequence)
		if seq == nil {
			seq = []byte{}
		}
		_, err := c.q.ExecContext(ctx, `
			INSERT INTO reference_sequences (idx, name, description, sequence)
			VALUES (?, ?, ?, ?)
		`, i, ref.Name, ref.Description, seq)
		if err != nil {
			return fmt.Errorf("write reference %d: %w", i, err)
		}
	}

	digest, err := ir.ReferencesDigest(refs)
	if err != nil {
		return fmt.Errorf("write references: %w", err)
	}
	return c.putMeta(ctx, MetaReferencesDigest, digest)
}

// WriteTree stores the Newick text of the phylogeny.
func (c *Container) WriteTree(ctx context.Context, newick string) error {
	if err := c.writable(); err != nil {
		return err
	}
	if _, err := c.q.ExecContext(ctx, `INSERT INTO tree (id, newick) VALUES (1, ?)`, newick); err != nil {
		return fmt.Errorf("write tree: %w", err)
	}
	return nil
}

// WriteTracks stores the ordered genome names.
func (c *Container) WriteTracks(ctx context.Context, tracks []string) error {
	if err := c.writable(); err != nil {
		return err
	}
	for i, name := range tracks {
		if _, err := c.q.ExecContext(ctx, `INSERT INTO tracks (idx, name) VALUES (?, ?)`, i, name); err != nil {
			return fmt.Errorf("write track %d: %w", i, err)
		}
	}
	return nil
}

// WriteAnnotations stores the annotation tracks and their features.
func (c *Container) WriteAnnotations(ctx context.Context, lists []ir.AnnotationTrack) error {
	if err := c.writable(); err != nil {
		return err
	}
	for i, list := range lists {
		if _, err := c.q.ExecContext(ctx, `INSERT INTO annotation_lists (idx, source) VALUES (?, ?)`, i, list.Source); err != nil {
			return fmt.Errorf("write annotation list %d: %w", i, err)
		}
		for j, f := range list.Features {
			_, err := c.q.ExecContext(ctx, `
				INSERT INTO annotation_features (list_idx, idx, name, description, start, stop, reverse)
				VALUES (?, ?, ?, ?, ?, ?, ?)
			`, i, j, f.Name, f.Description, f.Span.Start, f.Span.End, boolToInt(f.Reverse))
			if err != nil {
				return fmt.Errorf("write annotation feature %d/%d: %w", i, j, err)
			}
		}
	}
	return nil
}

// WriteFilters stores the named variant filters and their intervals.
func (c *Container) WriteFilters(ctx context.Context, filters []ir.Filter) error {
	if err := c.writable(); err != nil {
		return err
	}
	for i, f := range filters {
		_, err := c.q.ExecContext(ctx, `
			INSERT INTO variant_filters (idx, name, description) VALUES (?, ?, ?)
		`, i, f.Name, f.Description)
		if err != nil {
			return fmt.Errorf("write filter %d: %w", i, err)
		}
		for j, iv := range f.Intervals {
			_, err := c.q.ExecContext(ctx, `
				INSERT INTO filter_intervals (filter_idx, idx, start, stop) VALUES (?, ?, ?, ?)
			`, i, j, iv.Start, iv.End)
			if err != nil {
				return fmt.Errorf("write filter interval %d/%d: %w", i, j, err)
			}
		}
	}
	return nil
}

// WriteVariants stores the variant table.
func (c *Container) WriteVariants(ctx context.Context, variants []ir.Variant) error {
	if err := c.writable(); err != nil {
		return err
	}
	for i, v := range variants {
		alleles, err := marshalStrings(v.Alleles)
		if err != nil {
			return fmt.Errorf("write variant %d: %w", i, err)
		}
		filters, err := marshalStrings(v.Filters)
		if err != nil {
			return fmt.Errorf("write variant %d: %w", i, err)
		}
		_, err = c.q.ExecContext(ctx, `
			INSERT INTO variants (idx, position, alleles, filters) VALUES (?, ?, ?, ?)
		`, i, v.Position, alleles, filters)
		if err != nil {
			return fmt.Errorf("write variant %d: %w", i, err)
		}
	}
	return nil
}

// WriteLCBs stores the alignment blocks and their gapped regions.
func (c *Container) WriteLCBs(ctx context.Context, lcbs []ir.LCB) error {
	if err := c.writable(); err != nil {
		return err
	}
	for i, lcb := range lcbs {
		if _, err := c.q.ExecContext(ctx, `INSERT INTO lcbs (idx) VALUES (?)`, i); err != nil {
			return fmt.Errorf("write lcb %d: %w", i, err)
		}
		for j, r := range lcb.Regions {
			_, err := c.q.ExecContext(ctx, `
				INSERT INTO lcb_regions (lcb_idx, idx, track, start, length, reverse, aligned)
				VALUES (?, ?, ?, ?, ?, ?, ?)
			`, i, j, r.Track, r.Start, r.Length, boolToInt(r.Reverse), r.Aligned)
			if err != nil {
				return fmt.Errorf("write lcb region %d/%d: %w", i, j, err)
			}
		}
	}
	return nil
}
