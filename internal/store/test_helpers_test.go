package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// createTestContainer starts a new container in a temp directory and returns
// it with its destination path.
func createTestContainer(t *testing.T) (*Container, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "doc.hvt")
	c, err := Create(context.Background(), path)
	require.NoError(t, err)
	t.Cleanup(func() { c.Close() })
	return c, path
}

// reopen commits c and opens the result for reading.
func reopen(t *testing.T, c *Container, path string) *Container {
	t.Helper()
	require.NoError(t, c.Commit())
	r, err := Open(context.Background(), path)
	require.NoError(t, err)
	t.Cleanup(func() { r.Close() })
	return r
}
