package alignment

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/harvest/internal/ir"
	"github.com/roach88/harvest/internal/testutil"
)

func TestUngapped(t *testing.T) {
	assert.Equal(t, "ACGT", Ungapped("A-C.G--T"))
	assert.Equal(t, "", Ungapped("---"))
}

func TestReverseComplement(t *testing.T) {
	assert.Equal(t, "ACGT", ReverseComplement("ACGT"))
	assert.Equal(t, "nAcgT", ReverseComplement("AcgTn"))
}

func TestReadMFA(t *testing.T) {
	aln, err := ReadMFA(strings.NewReader(testutil.AlignmentMFA))
	require.NoError(t, err)

	assert.Equal(t, []string{"chrA", "s1", "s2"}, aln.Tracks)
	require.Len(t, aln.LCBs, 1)
	regions := aln.LCBs[0].Regions
	require.Len(t, regions, 3)
	assert.Equal(t, int64(20), regions[0].Length)
	assert.Equal(t, int64(19), regions[2].Length)
	assert.Equal(t, "ACGTACGTACGTGGGGCCCC", aln.ReferenceSequence())
	assert.NoError(t, aln.Validate())
}

func TestReadMFAErrors(t *testing.T) {
	_, err := ReadMFA(strings.NewReader(""))
	assert.Error(t, err)

	_, err = ReadMFA(strings.NewReader(">a\nACGT\n>b\nACG\n"))
	assert.Error(t, err)
}

func TestLoadMFA(t *testing.T) {
	path := testutil.WriteFile(t, "aln.mfa", testutil.AlignmentMFA)
	aln, err := LoadMFA(path)
	require.NoError(t, err)
	assert.Len(t, aln.Tracks, 3)

	_, err = LoadMFA(path + ".missing")
	assert.Error(t, err)
}

func TestReadXMFA(t *testing.T) {
	aln, err := ReadXMFA(strings.NewReader(testutil.AlignmentXMFA))
	require.NoError(t, err)

	assert.Equal(t, []string{"ref.fna", "s1.fna"}, aln.Tracks)
	require.Len(t, aln.LCBs, 2)
	assert.Equal(t, []ir.Region{
		{Track: 0, Start: 0, Length: 4, Aligned: "ACGT"},
		{Track: 1, Start: 10, Length: 4, Reverse: true, Aligned: "ACCT"},
	}, aln.LCBs[0].Regions)
	assert.Equal(t, []ir.Region{
		{Track: 0, Start: 8, Length: 4, Aligned: "GG-CC"},
		{Track: 1, Start: 0, Length: 0, Aligned: "-----"},
	}, aln.LCBs[1].Regions)

	assert.Equal(t, int64(12), aln.ReferenceLength())
	assert.Equal(t, "ACGTNNNNGGCC", aln.ReferenceSequence())
}

func TestReadXMFATrackNamesFromHeaders(t *testing.T) {
	input := "> 1:1-2 + alpha extra words\nAC\n> 3:1-2 + gamma\nAG\n=\n"
	aln, err := ReadXMFA(strings.NewReader(input))
	require.NoError(t, err)
	assert.Equal(t, []string{"alpha", "track2", "gamma"}, aln.Tracks)
}

func TestReadXMFAErrors(t *testing.T) {
	tests := map[string]string{
		"empty":           "",
		"bad header":      "> one:1-2 +\nAC\n=\n",
		"unterminated":    "> 1:1-2 + a\nAC\n",
		"data first":      "ACGT\n",
		"length mismatch": "> 1:1-3 + a\nAC\n=\n",
		"width mismatch":  "> 1:1-2 + a\nAC\n> 2:1-2 + b\nA-C\n=\n",
		"inverted range":  "> 1:5-2 + a\nAC\n=\n",
	}
	for name, input := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := ReadXMFA(strings.NewReader(input))
			assert.Error(t, err)
		})
	}
}

func TestXMFARoundTrip(t *testing.T) {
	aln, err := ReadXMFA(strings.NewReader(testutil.AlignmentXMFA))
	require.NoError(t, err)

	var buf strings.Builder
	require.NoError(t, WriteXMFA(&buf, aln))

	again, err := ReadXMFA(strings.NewReader(buf.String()))
	require.NoError(t, err)
	assert.Equal(t, aln, again)
}

func TestWriteXMFAWrapsRows(t *testing.T) {
	row := strings.Repeat("A", XMFALineWidth+5)
	aln := &Alignment{
		Tracks: []string{"ref"},
		LCBs:   []ir.LCB{{Regions: []ir.Region{{Track: 0, Length: int64(len(row)), Aligned: row}}}},
	}

	var buf strings.Builder
	require.NoError(t, WriteXMFA(&buf, aln))
	assert.Contains(t, buf.String(), "> 1:1-85 + ref\n"+strings.Repeat("A", XMFALineWidth)+"\nAAAAA\n=\n")
}

func TestWriteXMFAGolden(t *testing.T) {
	aln, err := ReadXMFA(strings.NewReader(testutil.AlignmentXMFA))
	require.NoError(t, err)

	var buf strings.Builder
	require.NoError(t, WriteXMFA(&buf, aln))
	testutil.AssertGolden(t, "xmfa", []byte(buf.String()))
}
