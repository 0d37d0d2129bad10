package ir

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReferenceDigestDeterminism(t *testing.T) {
	ref := Reference{Name: "chrA", Description: "first", Sequence: "ACGT"}

	d1, err := ReferenceDigest(ref)
	require.NoError(t, err)
	d2, err := ReferenceDigest(ref)
	require.NoError(t, err)

	assert.Equal(t, d1, d2)
	assert.Len(t, d1, 64, "SHA-256 hex is 64 characters")
}

func TestReferenceDigestChangesWithInput(t *testing.T) {
	base := Reference{Name: "chrA", Description: "first", Sequence: "ACGT"}
	variants := []Reference{
		{Name: "chrB", Description: "first", Sequence: "ACGT"},
		{Name: "chrA", Description: "second", Sequence: "ACGT"},
		{Name: "chrA", Description: "first", Sequence: "ACGA"},
	}

	d0, err := ReferenceDigest(base)
	require.NoError(t, err)
	for _, v := range variants {
		d, err := ReferenceDigest(v)
		require.NoError(t, err)
		assert.NotEqual(t, d0, d, "%+v should change the digest", v)
	}
}

func TestReferencesDigestIsOrderSensitive(t *testing.T) {
	a := Reference{Name: "chrA", Sequence: "AAAA"}
	b := Reference{Name: "chrB", Sequence: "CC"}

	ab, err := ReferencesDigest([]Reference{a, b})
	require.NoError(t, err)
	ba, err := ReferencesDigest([]Reference{b, a})
	require.NoError(t, err)

	assert.NotEqual(t, ab, ba)
}

func TestReferencesDigestEmpty(t *testing.T) {
	d, err := ReferencesDigest(nil)
	require.NoError(t, err)
	assert.Len(t, d, 64)
}

func TestIntervalOps(t *testing.T) {
	iv := Interval{Start: 10, End: 20}

	assert.Equal(t, int64(10), iv.Len())
	assert.True(t, iv.Contains(10))
	assert.False(t, iv.Contains(20))
	assert.True(t, iv.Overlaps(Interval{Start: 19, End: 30}))
	assert.False(t, iv.Overlaps(Interval{Start: 20, End: 30}))
	assert.Equal(t, int64(0), Interval{Start: 5, End: 5}.Len())
}

func TestFilterCoverage(t *testing.T) {
	f := Filter{Name: "core", Intervals: []Interval{{Start: 0, End: 5}, {Start: 100, End: 110}}}

	assert.True(t, f.Covers(4))
	assert.False(t, f.Covers(5))
	assert.True(t, f.Covers(105))
	assert.True(t, f.Intersects(Interval{Start: 90, End: 101}))
	assert.False(t, f.Intersects(Interval{Start: 5, End: 100}))
}

func TestLCBReferenceRegion(t *testing.T) {
	lcb := LCB{Regions: []Region{{Track: 1, Start: 3}, {Track: 0, Start: 7, Length: 2}}}

	r, ok := lcb.ReferenceRegion()
	require.True(t, ok)
	assert.Equal(t, int64(7), r.Start)
	assert.Equal(t, int64(9), r.End())

	_, ok = LCB{}.ReferenceRegion()
	assert.False(t, ok)
}
