package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/roach88/harvest/internal/ir"
)

// ReadReferences returns the stored reference sequences in order and
// verifies them against the stored digest.
func (c *Container) ReadReferences(ctx context.Context) ([]ir.Reference, error) {
	rows, err := c.q.QueryContext(ctx, `
		SELECT name, description, sequence
		FROM reference_sequences
		ORDER BY idx ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("query references: %w", err)
	}
	defer rows.Close()

	var refs []ir.Reference
	for rows.Next() {
		var (
			ref ir.Reference
			seq []byte
		)
		if err := rows.Scan(&ref.Name, &ref.Description, &seq); err != nil {
			return nil, fmt.Errorf("scan reference: %w", err)
		}
		ref.Sequence = string(seq)
		refs = append(refs, ref)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate references: %w", err)
	}

	want, ok, err := c.meta(ctx, MetaReferencesDigest)
	if err != nil {
		return nil, err
	}
	if ok {
		got, err := ir.ReferencesDigest(refs)
		if err != nil {
			return nil, fmt.Errorf("read references: %w", err)
		}
		if got != want {
			return nil, fmt.Errorf("read references: digest mismatch (stored %s, computed %s)", want, got)
		}
	}
	return refs, nil
}

// ReadTree returns the stored Newick text. ok is false when the container
// holds no tree.
func (c *Container) ReadTree(ctx context.Context) (newick string, ok bool, err error) {
	err = c.q.QueryRowContext(ctx, `SELECT newick FROM tree WHERE id = 1`).Scan(&newick)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("read tree: %w", err)
	}
	return newick, true, nil
}

// ReadTracks returns the ordered genome names.
func (c *Container) ReadTracks(ctx context.Context) ([]string, error) {
	rows, err := c.q.QueryContext(ctx, `SELECT name FROM tracks ORDER BY idx ASC`)
	if err != nil {
		return nil, fmt.Errorf("query tracks: %w", err)
	}
	defer rows.Close()

	var tracks []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("scan track: %w", err)
		}
		tracks = append(tracks, name)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate tracks: %w", err)
	}
	return tracks, nil
}

// ReadAnnotations returns the annotation tracks in order.
func (c *Container) ReadAnnotations(ctx context.Context) ([]ir.AnnotationTrack, error) {
	rows, err := c.q.QueryContext(ctx, `SELECT idx, source FROM annotation_lists ORDER BY idx ASC`)
	if err != nil {
		return nil, fmt.Errorf("query annotation lists: %w", err)
	}

	var (
		lists []ir.AnnotationTrack
		ids   []int64
	)
	for rows.Next() {
		var (
			id   int64
			list ir.AnnotationTrack
		)
		if err := rows.Scan(&id, &list.Source); err != nil {
			rows.Close()
			return nil, fmt.Errorf("scan annotation list: %w", err)
		}
		ids = append(ids, id)
		lists = append(lists, list)
	}
	err = rows.Err()
	rows.Close()
	if err != nil {
		return nil, fmt.Errorf("iterate annotation lists: %w", err)
	}

	for i, id := range ids {
		features, err := c.readFeatures(ctx, id)
		if err != nil {
			return nil, err
		}
		lists[i].Features = features
	}
	return lists, nil
}

func (c *Container) readFeatures(ctx context.Context, listIdx int64) ([]ir.Feature, error) {
	rows, err := c.q.QueryContext(ctx, `
		SELECT name, description, start, stop, reverse
		FROM annotation_features
		WHERE list_idx = ?
		ORDER BY idx ASC
	`, listIdx)
	if err != nil {
		return nil, fmt.Errorf("query annotation features: %w", err)
	}
	defer rows.Close()

	var features []ir.Feature
	for rows.Next() {
		var (
			f       ir.Feature
			reverse int
		)
		if err := rows.Scan(&f.Name, &f.Description, &f.Span.Start, &f.Span.End, &reverse); err != nil {
			return nil, fmt.Errorf("scan annotation feature: %w", err)
		}
		f.Reverse = reverse != 0
		features = append(features, f)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate annotation features: %w", err)
	}
	return features, nil
}

// ReadFilters returns the variant filters in order.
func (c *Container) ReadFilters(ctx context.Context) ([]ir.Filter, error) {
	rows, err := c.q.QueryContext(ctx, `SELECT idx, name, description FROM variant_filters ORDER BY idx ASC`)
	if err != nil {
		return nil, fmt.Errorf("query filters: %w", err)
	}

	var (
		filters []ir.Filter
		ids     []int64
	)
	for rows.Next() {
		var (
			id int64
			f  ir.Filter
		)
		if err := rows.Scan(&id, &f.Name, &f.Description); err != nil {
			rows.Close()
			return nil, fmt.Errorf("scan filter: %w", err)
		}
		ids = append(ids, id)
		filters = append(filters, f)
	}
	err = rows.Err()
	rows.Close()
	if err != nil {
		return nil, fmt.Errorf("iterate filters: %w", err)
	}

	for i, id := range ids {
		intervals, err := c.readFilterIntervals(ctx, id)
		if err != nil {
			return nil, err
		}
		filters[i].Intervals = intervals
	}
	return filters, nil
}

func (c *Container) readFilterIntervals(ctx context.Context, filterIdx int64) ([]ir.Interval, error) {
	rows, err := c.q.QueryContext(ctx, `
		SELECT start, stop FROM filter_intervals
		WHERE filter_idx = ?
		ORDER BY idx ASC
	`, filterIdx)
	if err != nil {
		return nil, fmt.Errorf("query filter intervals: %w", err)
	}
	defer rows.Close()

	var intervals []ir.Interval
	for rows.Next() {
		var iv ir.Interval
		if err := rows.Scan(&iv.Start, &iv.End); err != nil {
			return nil, fmt.Errorf("scan filter interval: %w", err)
		}
		intervals = append(intervals, iv)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate filter intervals: %w", err)
	}
	return intervals, nil
}

// ReadVariants returns the variant table in order.
func (c *Container) ReadVariants(ctx context.Context) ([]ir.Variant, error) {
	rows, err := c.q.QueryContext(ctx, `
		SELECT position, alleles, filters FROM variants ORDER BY idx ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("query variants: %w", err)
	}
	defer rows.Close()

	var variants []ir.Variant
	for rows.Next() {
		var (
			v                ir.Variant
			alleles, filters string
		)
		if err := rows.Scan(&v.Position, &alleles, &filters); err != nil {
			return nil, fmt.Errorf("scan variant: %w", err)
		}
		if v.Alleles, err = unmarshalStrings(alleles); err != nil {
			return nil, err
		}
		if v.Filters, err = unmarshalStrings(filters); err != nil {
			return nil, err
		}
		variants = append(variants, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate variants: %w", err)
	}
	return variants, nil
}

// ReadLCBs returns the alignment blocks in order.
func (c *Container) ReadLCBs(ctx context.Context) ([]ir.LCB, error) {
	var count int
	if err := c.q.QueryRowContext(ctx, `SELECT COUNT(*) FROM lcbs`).Scan(&count); err != nil {
		return nil, fmt.Errorf("count lcbs: %w", err)
	}
	if count == 0 {
		return nil, nil
	}

	rows, err := c.q.QueryContext(ctx, `
		SELECT l.idx, r.track, r.start, r.length, r.reverse, r.aligned
		FROM lcbs l
		JOIN lcb_regions r ON r.lcb_idx = l.idx
		ORDER BY l.idx ASC, r.idx ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("query lcbs: %w", err)
	}
	defer rows.Close()

	lcbs := make([]ir.LCB, count)
	for rows.Next() {
		var (
			idx     int
			r       ir.Region
			reverse int
		)
		if err := rows.Scan(&idx, &r.Track, &r.Start, &r.Length, &reverse, &r.Aligned); err != nil {
			return nil, fmt.Errorf("scan lcb region: %w", err)
		}
		if idx < 0 || idx >= count {
			return nil, fmt.Errorf("lcb index %d out of range (have %d)", idx, count)
		}
		r.Reverse = reverse != 0
		lcbs[idx].Regions = append(lcbs[idx].Regions, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate lcb regions: %w", err)
	}
	return lcbs, nil
}
