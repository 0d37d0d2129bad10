package store

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/harvest/internal/ir"
)

func TestCreateDoesNotTouchDestinationUntilCommit(t *testing.T) {
	c, path := createTestContainer(t)

	_, err := os.Stat(path)
	assert.True(t, os.IsNotExist(err), "destination must not exist before Commit")

	require.NoError(t, c.Commit())
	_, err = os.Stat(path)
	assert.NoError(t, err)
}

func TestCloseWithoutCommitLeavesNothing(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "doc.hvt")
	c, err := Create(context.Background(), path)
	require.NoError(t, err)
	require.NoError(t, c.WriteTracks(context.Background(), []string{"a"}))
	require.NoError(t, c.Close())

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries, "abandoned container must not leave files behind")
}

func TestOpenMissingFile(t *testing.T) {
	_, err := Open(context.Background(), filepath.Join(t.TempDir(), "missing.hvt"))
	assert.Error(t, err)
}

func TestOpenRejectsForeignDatabase(t *testing.T) {
	path := filepath.Join(t.TempDir(), "other.db")
	require.NoError(t, os.WriteFile(path, nil, 0o644))

	_, err := Open(context.Background(), path)
	assert.Error(t, err)
}

func TestMetaRoundTrip(t *testing.T) {
	ctx := context.Background()
	c, path := createTestContainer(t)
	require.NoError(t, c.SetMeta(ctx, MetaDocumentID, "doc-1"))
	require.NoError(t, c.SetMeta(ctx, MetaDocumentID, "doc-2"))

	r := reopen(t, c, path)

	got, ok, err := r.Meta(ctx, MetaDocumentID)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "doc-2", got)

	format, ok, err := r.Meta(ctx, MetaFormat)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, ir.FormatVersion, format)

	_, ok, err = r.Meta(ctx, "absent")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestReadOnlyRejectsWrites(t *testing.T) {
	c, path := createTestContainer(t)
	r := reopen(t, c, path)

	err := r.WriteTracks(context.Background(), []string{"x"})
	assert.ErrorIs(t, err, ErrReadOnly)
	assert.ErrorIs(t, r.Commit(), ErrReadOnly)
}
