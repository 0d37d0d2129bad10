package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/harvest/internal/ir"
)

func TestReferencesRoundTripByteExact(t *testing.T) {
	ctx := context.Background()
	refs := []ir.Reference{
		{Name: "chrA", Description: "first  chromosome\twith tabs", Sequence: "ACGTNacgtn"},
		{Name: "chrA", Description: "", Sequence: ""},
		{Name: "gi|15|ref|NC_0001.1|", Description: "Escherichia coli", Sequence: "\x00\xffRYKM"},
	}

	c, path := createTestContainer(t)
	require.NoError(t, c.WriteReferences(ctx, refs))
	r := reopen(t, c, path)

	got, err := r.ReadReferences(ctx)
	require.NoError(t, err)
	assert.Equal(t, refs, got)
}

func TestTreeRoundTrip(t *testing.T) {
	ctx := context.Background()
	c, path := createTestContainer(t)
	require.NoError(t, c.WriteTree(ctx, "(a:1,b:2);"))
	r := reopen(t, c, path)

	newick, ok, err := r.ReadTree(ctx)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "(a:1,b:2);", newick)
}

func TestEmptyContainerSections(t *testing.T) {
	ctx := context.Background()
	c, path := createTestContainer(t)
	r := reopen(t, c, path)

	_, ok, err := r.ReadTree(ctx)
	require.NoError(t, err)
	assert.False(t, ok)

	refs, err := r.ReadReferences(ctx)
	require.NoError(t, err)
	assert.Empty(t, refs)

	lcbs, err := r.ReadLCBs(ctx)
	require.NoError(t, err)
	assert.Empty(t, lcbs)

	variants, err := r.ReadVariants(ctx)
	require.NoError(t, err)
	assert.Empty(t, variants)
}

func TestDocumentSectionsRoundTrip(t *testing.T) {
	ctx := context.Background()
	tracks := []string{"ref", "g1", "g2"}
	annotations := []ir.AnnotationTrack{
		{Source: "a.gbk", Features: []ir.Feature{
			{Name: "b0001", Description: "leader", Span: ir.Interval{Start: 189, End: 255}},
			{Name: "b0002", Span: ir.Interval{Start: 336, End: 2799}, Reverse: true},
		}},
		{Source: "empty.gbk"},
	}
	filters := []ir.Filter{
		{Name: "coreA", Description: "core genome A", Intervals: []ir.Interval{{Start: 0, End: 10}, {Start: 20, End: 30}}},
	}
	variants := []ir.Variant{
		{Position: 3, Alleles: []string{"A", "G", "A"}},
		{Position: 7, Alleles: []string{"C", "-", "T"}, Filters: []string{"coreA"}},
	}
	lcbs := []ir.LCB{
		{Regions: []ir.Region{
			{Track: 0, Start: 0, Length: 4, Aligned: "ACGT"},
			{Track: 2, Start: 10, Length: 4, Reverse: true, Aligned: "ACGT"},
		}},
		{Regions: []ir.Region{{Track: 1, Start: 5, Length: 2, Aligned: "TT"}}},
	}

	c, path := createTestContainer(t)
	require.NoError(t, c.WriteTracks(ctx, tracks))
	require.NoError(t, c.WriteAnnotations(ctx, annotations))
	require.NoError(t, c.WriteFilters(ctx, filters))
	require.NoError(t, c.WriteVariants(ctx, variants))
	require.NoError(t, c.WriteLCBs(ctx, lcbs))
	r := reopen(t, c, path)

	gotTracks, err := r.ReadTracks(ctx)
	require.NoError(t, err)
	assert.Equal(t, tracks, gotTracks)

	gotAnnotations, err := r.ReadAnnotations(ctx)
	require.NoError(t, err)
	assert.Equal(t, annotations, gotAnnotations)

	gotFilters, err := r.ReadFilters(ctx)
	require.NoError(t, err)
	assert.Equal(t, filters, gotFilters)

	gotVariants, err := r.ReadVariants(ctx)
	require.NoError(t, err)
	assert.Equal(t, variants, gotVariants)

	gotLCBs, err := r.ReadLCBs(ctx)
	require.NoError(t, err)
	assert.Equal(t, lcbs, gotLCBs)
}
