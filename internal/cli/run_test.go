package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/roach88/harvest/internal/testutil"
)

func runWithIDs(t *testing.T, args ...string) (code int, stdout, stderr string) {
	t.Helper()
	var out, errOut bytes.Buffer
	opts := &Options{IDs: testutil.FixedID("doc-cli")}
	code = execute(context.Background(), opts, args, &out, &errOut)
	return code, out.String(), errOut.String()
}

func TestGenbankWithoutReferenceFails(t *testing.T) {
	dir := t.TempDir()
	gbk := testutil.WriteFileIn(t, dir, "chrB.gbk", testutil.GenbankWithoutSequence)
	out := filepath.Join(dir, "out.ggr")

	code, _, stderr := run(t, "-g", gbk, "-o", out)
	assert.Equal(t, ExitFailure, code)
	assert.Contains(t, stderr, "No sequence in Genbank file ("+gbk+") and no other reference loaded.")
	assert.NoFileExists(t, out)
}

func TestFilterWithoutDescriptionIsUsageError(t *testing.T) {
	dir := t.TempDir()
	fasta := testutil.WriteFileIn(t, dir, "ref.fa", testutil.ReferenceFasta)
	out := filepath.Join(dir, "ref.out.fa")

	for _, spec := range []string{"regions.bed,coreA", "regions.bed,coreA,"} {
		t.Run(spec, func(t *testing.T) {
			code, _, stderr := run(t, "-f", fasta, "-b", spec, "-F", out)
			assert.Equal(t, ExitUsage, code)
			assert.Contains(t, stderr, "regions.bed")
			assert.Contains(t, stderr, "missing description")
			assert.NoFileExists(t, out)
		})
	}
}

func TestMissingTreeWritesNoOutputs(t *testing.T) {
	dir := t.TempDir()
	fasta := testutil.WriteFileIn(t, dir, "ref.fa", testutil.ReferenceFasta)
	outFasta := filepath.Join(dir, "out.fa")
	outNewick := filepath.Join(dir, "out.nwk")
	container := filepath.Join(dir, "out.ggr")

	code, _, stderr := run(t, "-q", "-f", fasta, "-o", container, "-F", outFasta, "-N", outNewick)
	assert.Equal(t, ExitFailure, code)
	assert.Contains(t, stderr, "TREE_MISSING")
	assert.NoFileExists(t, outNewick)
	assert.NoFileExists(t, outFasta)
	assert.NoFileExists(t, container)
}

func TestContainerToStdoutIsUsageError(t *testing.T) {
	fasta := testutil.WriteFile(t, "ref.fa", testutil.ReferenceFasta)
	code, stdout, _ := run(t, "-f", fasta, "-o", StdoutPath)
	assert.Equal(t, ExitUsage, code)
	assert.Empty(t, stdout)
}

func TestMissingInputFails(t *testing.T) {
	code, _, stderr := run(t, "-f", filepath.Join(t.TempDir(), "absent.fa"))
	assert.Equal(t, ExitFailure, code)
	assert.Contains(t, stderr, "ERROR:")
}

func TestFastaToStdout(t *testing.T) {
	fasta := testutil.WriteFile(t, "ref.fa", testutil.ReferenceFasta)
	code, stdout, _ := run(t, "-q", "-f", fasta, "-F", StdoutPath)
	require.Equal(t, ExitSuccess, code)
	testutil.AssertGolden(t, "pipeline_fasta", []byte(stdout))
}

func TestQuietSuppressesProgress(t *testing.T) {
	fasta := testutil.WriteFile(t, "ref.fa", testutil.ReferenceFasta)

	_, _, loud := run(t, "-f", fasta, "-F", StdoutPath)
	assert.Contains(t, loud, "level=INFO")

	_, _, quiet := run(t, "-q", "-f", fasta, "-F", StdoutPath)
	assert.NotContains(t, quiet, "level=INFO")
}

func TestPipelineThroughContainer(t *testing.T) {
	dir := t.TempDir()
	mfa := testutil.WriteFileIn(t, dir, "aln.mfa", testutil.AlignmentMFA)
	fasta := testutil.WriteFileIn(t, dir, "ref.fa", testutil.ReferenceFasta)
	tree := testutil.WriteFileIn(t, dir, "tree.nwk", testutil.Tree)
	bed := testutil.WriteFileIn(t, dir, "core.bed", testutil.Bed)
	container := filepath.Join(dir, "out.ggr")
	summary := filepath.Join(dir, "summary.yaml")
	backbone := filepath.Join(dir, "out.backbone")

	code, _, stderr := runWithIDs(t,
		"-q",
		"-m", mfa,
		"-f", fasta,
		"-n", tree,
		"-b", bed+`,core,"core genome"`,
		"-o", container,
		"-B", backbone,
		"--summary", summary,
	)
	require.Equal(t, ExitSuccess, code, stderr)
	assert.FileExists(t, container)
	assert.FileExists(t, backbone)

	data, err := os.ReadFile(summary)
	require.NoError(t, err)
	var doc map[string]any
	require.NoError(t, yaml.Unmarshal(data, &doc))
	assert.Equal(t, "doc-cli", doc["document"])

	// Reload the container alone and reroot the stored tree.
	code, stdout, stderr := run(t, "-q", "-i", container, "--midpoint-reroot", "-N", StdoutPath)
	require.Equal(t, ExitSuccess, code, stderr)
	testutil.AssertGolden(t, "rerooted_newick", []byte(stdout))

	// The stored reference is identical to the FASTA, so both can be loaded.
	code, _, stderr = run(t, "-q", "-i", container, "-f", fasta, "-F", filepath.Join(dir, "again.fa"))
	assert.Equal(t, ExitSuccess, code, stderr)
}
