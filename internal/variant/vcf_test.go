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

func fixtureStore(t *testing.T) *reference.Store {
	t.Helper()
	refs, err := reference.ReadFasta(strings.NewReader(testutil.ReferenceFasta))
	require.NoError(t, err)

	s := reference.NewStore()
	for _, r := range refs {
		s.Append(r.Name, r.Description, r.Sequence)
	}
	return s
}

func fixtureVariants() []ir.Variant {
	return []ir.Variant{
		{Position: 2, Alleles: []string{"G", "C", "G"}},
		{Position: 7, Alleles: []string{"T", "A", ir.Gap}},
		{Position: 13, Alleles: []string{"G", "T", "T"}},
	}
}

func TestReadVCF(t *testing.T) {
	table, err := ReadVCF(strings.NewReader(testutil.VCF))
	require.NoError(t, err)

	assert.Equal(t, []string{"s1", "s2"}, table.Samples)
	require.Len(t, table.Records, 3)
	assert.Equal(t, Record{
		Chrom: "chrA", Pos: 8, Ref: "T", Alt: []string{"A"}, Genotypes: []int{1, -1},
	}, table.Records[1])
	assert.Equal(t, "A", table.Records[1].Allele(0))
	assert.Equal(t, "", table.Records[1].Allele(1))
}

func TestReadVCFFieldsAndFilters(t *testing.T) {
	input := "#CHROM\tPOS\tID\tREF\tALT\tQUAL\tFILTER\tINFO\tFORMAT\tx\n" +
		"c\t5\t.\ta\tg,t\t.\tlowq;dup\t.\tDP:GT\t7:2|1\n"

	table, err := ReadVCF(strings.NewReader(input))
	require.NoError(t, err)
	rec := table.Records[0]
	assert.Equal(t, "A", rec.Ref)
	assert.Equal(t, []string{"G", "T"}, rec.Alt)
	assert.Equal(t, []string{"lowq", "dup"}, rec.Filters)
	assert.Equal(t, []int{2}, rec.Genotypes)
	assert.Equal(t, "T", rec.Allele(0))
}

func TestReadVCFSitesOnly(t *testing.T) {
	input := "#CHROM\tPOS\tID\tREF\tALT\tQUAL\tFILTER\tINFO\nc\t1\t.\tA\tC\t.\t.\t.\n"
	table, err := ReadVCF(strings.NewReader(input))
	require.NoError(t, err)
	assert.Empty(t, table.Samples)
	require.Len(t, table.Records, 1)
	assert.Empty(t, table.Records[0].Genotypes)
}

func TestReadVCFErrors(t *testing.T) {
	header := "#CHROM\tPOS\tID\tREF\tALT\tQUAL\tFILTER\tINFO\tFORMAT\ts1\n"
	tests := map[string]string{
		"no header":    "##fileformat=VCFv4.1\n",
		"data first":   "c\t1\t.\tA\tC\t.\tPASS\t.\tGT\t1\n",
		"columns":      header + "c\t1\t.\tA\tC\t.\tPASS\t.\tGT\n",
		"position":     header + "c\t0\t.\tA\tC\t.\tPASS\t.\tGT\t1\n",
		"no GT":        header + "c\t1\t.\tA\tC\t.\tPASS\t.\tDP\t1\n",
		"bad genotype": header + "c\t1\t.\tA\tC\t.\tPASS\t.\tGT\t2\n",
		"short header": "#CHROM\tPOS\n",
	}
	for name, input := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := ReadVCF(strings.NewReader(input))
			assert.Error(t, err)
		})
	}
}

func TestPlace(t *testing.T) {
	refs := fixtureStore(t)
	table, err := ReadVCF(strings.NewReader(testutil.VCF))
	require.NoError(t, err)

	var got []ir.Variant
	for _, rec := range table.Records {
		v, err := Place(rec, refs)
		require.NoError(t, err)
		got = append(got, v)
	}
	assert.Equal(t, fixtureVariants(), got)
}

func TestPlaceUnknownChrom(t *testing.T) {
	_, err := Place(Record{Chrom: "chrZ", Pos: 1, Ref: "A"}, fixtureStore(t))
	require.Error(t, err)
	assert.True(t, reference.IsIdentifierNotFound(err))
}

func TestPlaceBeyondSequence(t *testing.T) {
	_, err := Place(Record{Chrom: "chrB", Pos: 9, Ref: "A"}, fixtureStore(t))
	require.Error(t, err)
	assert.False(t, reference.IsIdentifierNotFound(err))
}

func TestWriteVCFGolden(t *testing.T) {
	variants := fixtureVariants()
	filters := []ir.Filter{{Name: "coreA", Description: "core genome A", Intervals: []ir.Interval{{Start: 0, End: 4}}}}
	Tag(variants, filters[0])

	var buf strings.Builder
	require.NoError(t, WriteVCF(&buf, variants, []string{"chrA", "s1", "s2"}, fixtureStore(t), filters))
	testutil.AssertGolden(t, "vcf", []byte(buf.String()))
}

func TestVCFRoundTrip(t *testing.T) {
	refs := fixtureStore(t)
	variants := fixtureVariants()
	variants[1].Filters = []string{"lowq"}

	var buf strings.Builder
	require.NoError(t, WriteVCF(&buf, variants, []string{"chrA", "s1", "s2"}, refs, nil))
	assert.Contains(t, buf.String(), "##FILTER=<ID=lowq,Description=\"\">\n")

	table, err := ReadVCF(strings.NewReader(buf.String()))
	require.NoError(t, err)
	assert.Equal(t, []string{"s1", "s2"}, table.Samples)

	var got []ir.Variant
	for _, rec := range table.Records {
		v, err := Place(rec, refs)
		require.NoError(t, err)
		got = append(got, v)
	}
	assert.Equal(t, variants, got)
}

func TestWriteVCFRejectsPositionOutsideReference(t *testing.T) {
	variants := []ir.Variant{{Position: 20, Alleles: []string{"A", "C"}}}
	err := WriteVCF(&strings.Builder{}, variants, []string{"r", "s"}, fixtureStore(t), nil)
	assert.Error(t, err)
}
