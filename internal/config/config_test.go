package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	c, err := Load(New(), "")
	require.NoError(t, err)

	assert.Equal(t, Config{Fasta: FastaConfig{LineWidth: 70}}, c)
}

func TestLoadEnvironment(t *testing.T) {
	t.Setenv("HARVEST_FASTA_LINE_WIDTH", "60")
	t.Setenv("HARVEST_IDENTIFIERS_STRICT", "true")
	t.Setenv("HARVEST_QUIET", "1")

	c, err := Load(New(), "")
	require.NoError(t, err)

	assert.Equal(t, 60, c.Fasta.LineWidth)
	assert.True(t, c.Identifiers.Strict)
	assert.True(t, c.Quiet)
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "harvest.yaml")
	require.NoError(t, os.WriteFile(path, []byte("fasta:\n  line_width: 0\nidentifiers:\n  strict: true\n"), 0o644))

	c, err := Load(New(), path)
	require.NoError(t, err)

	assert.Equal(t, 0, c.Fasta.LineWidth)
	assert.True(t, c.Identifiers.Strict)
	assert.False(t, c.Quiet)
}

func TestLoadOverrideBeatsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "harvest.yaml")
	require.NoError(t, os.WriteFile(path, []byte("fasta:\n  line_width: 50\n"), 0o644))

	v := New()
	v.Set(KeyFastaLineWidth, 80)
	c, err := Load(v, path)
	require.NoError(t, err)
	assert.Equal(t, 80, c.Fasta.LineWidth)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(New(), filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestLoadRejectsNegativeLineWidth(t *testing.T) {
	path := filepath.Join(t.TempDir(), "harvest.yaml")
	require.NoError(t, os.WriteFile(path, []byte("fasta:\n  line_width: -5\n"), 0o644))

	_, err := Load(New(), path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid config")
}

func TestValidate(t *testing.T) {
	assert.NoError(t, Validate(Config{Fasta: FastaConfig{LineWidth: 70}}))
	assert.NoError(t, Validate(Config{}))
	assert.Error(t, Validate(Config{Fasta: FastaConfig{LineWidth: -1}}))
}
