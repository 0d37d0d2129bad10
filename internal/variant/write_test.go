package variant

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/harvest/internal/ir"
	"github.com/roach88/harvest/internal/reference"
	"github.com/roach88/harvest/internal/testutil"
)

func TestWriteSNPsGolden(t *testing.T) {
	var buf strings.Builder
	require.NoError(t, WriteSNPs(&buf, fixtureVariants(), []string{"chrA", "s1", "s2"}, reference.DefaultLineWidth))
	testutil.AssertGolden(t, "snps", []byte(buf.String()))
}

func TestWriteSNPsSkipsFilteredAndMultiBase(t *testing.T) {
	variants := []ir.Variant{
		{Position: 1, Alleles: []string{"A", "C"}},
		{Position: 2, Alleles: []string{"A", "G"}, Filters: []string{"repeats"}},
		{Position: 3, Alleles: []string{"AT", "A"}},
		{Position: 4, Alleles: []string{"T", "G"}},
	}

	var buf strings.Builder
	require.NoError(t, WriteSNPs(&buf, variants, []string{"r", "s"}, 0))
	assert.Equal(t, ">r\nAT\n>s\nCG\n", buf.String())
}

func TestWriteSNPsEmptyTable(t *testing.T) {
	var buf strings.Builder
	require.NoError(t, WriteSNPs(&buf, nil, []string{"r", "s"}, 70))
	assert.Equal(t, ">r\n>s\n", buf.String())
}

func TestTag(t *testing.T) {
	variants := fixtureVariants()
	f := ir.Filter{Name: "coreA", Intervals: []ir.Interval{{Start: 0, End: 8}}}

	assert.Equal(t, 2, Tag(variants, f))
	assert.Equal(t, []string{"coreA"}, variants[0].Filters)
	assert.Equal(t, []string{"coreA"}, variants[1].Filters)
	assert.True(t, variants[2].Passes())

	// Tagging twice does not duplicate names; nothing is removed.
	Tag(variants, f)
	assert.Equal(t, []string{"coreA"}, variants[0].Filters)
	assert.Len(t, variants, 3)
}
