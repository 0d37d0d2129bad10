package store

import (
	"context"
	"database/sql"
	_ "embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"

	"github.com/roach88/harvest/internal/ir"
)

//go:embed schema.sql
var schemaSQL string

// Meta keys.
const (
	MetaFormat           = "format"
	MetaToolVersion      = "tool_version"
	MetaDocumentID       = "document_id"
	MetaAuthority        = "authority"
	MetaReferencesDigest = "references_digest"
)

// ErrReadOnly is returned when writing to a container opened with Open.
var ErrReadOnly = errors.New("container is read-only")

// querier is satisfied by both *sql.DB and *sql.Tx.
type querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// Container is an open binary container.
type Container struct {
	db *sql.DB
	tx *sql.Tx // non-nil for containers created with Create
	q  querier

	path string
	tmp  string
}

// Create starts writing a new container destined for path.
// Nothing appears at path until Commit succeeds.
func Create(ctx context.Context, path string) (*Container, error) {
	f, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return nil, fmt.Errorf("create container: %w", err)
	}
	tmp := f.Name()
	f.Close()

	db, err := openDB(tmp)
	if err != nil {
		os.Remove(tmp)
		return nil, err
	}

	if err := applyPragmas(ctx, db, "PRAGMA journal_mode = DELETE", "PRAGMA synchronous = NORMAL"); err != nil {
		db.Close()
		os.Remove(tmp)
		return nil, err
	}

	if _, err := db.ExecContext(ctx, schemaSQL); err != nil {
		db.Close()
		os.Remove(tmp)
		return nil, fmt.Errorf("failed to apply schema: %w", err)
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		db.Close()
		os.Remove(tmp)
		return nil, fmt.Errorf("create container: begin tx: %w", err)
	}

	c := &Container{db: db, tx: tx, q: tx, path: path, tmp: tmp}
	if err := c.putMeta(ctx, MetaFormat, ir.FormatVersion); err != nil {
		c.Close()
		return nil, err
	}
	if err := c.putMeta(ctx, MetaToolVersion, ir.ToolVersion); err != nil {
		c.Close()
		return nil, err
	}
	return c, nil
}

// Open opens an existing container for reading and checks its format.
func Open(ctx context.Context, path string) (*Container, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("open container: %w", err)
	}

	db, err := openDB("file:" + path + "?mode=ro")
	if err != nil {
		return nil, err
	}

	c := &Container{db: db, q: db, path: path}
	format, ok, err := c.meta(ctx, MetaFormat)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("open container %s: %w", path, err)
	}
	if !ok || format != ir.FormatVersion {
		db.Close()
		return nil, fmt.Errorf("open container %s: unsupported format %q (want %q)", path, format, ir.FormatVersion)
	}
	return c, nil
}

// Commit finishes a container started with Create and moves it to its
// destination. The container is closed afterwards.
func (c *Container) Commit() error {
	if c.tx == nil {
		return ErrReadOnly
	}
	if err := c.tx.Commit(); err != nil {
		c.Close()
		return fmt.Errorf("commit container: %w", err)
	}
	c.tx = nil
	if err := c.db.Close(); err != nil {
		os.Remove(c.tmp)
		return fmt.Errorf("close container: %w", err)
	}
	c.db = nil
	if err := os.Rename(c.tmp, c.path); err != nil {
		os.Remove(c.tmp)
		return fmt.Errorf("commit container: %w", err)
	}
	c.tmp = ""
	return nil
}

// Close releases the container. For an uncommitted Create the temporary
// file is discarded. Close is safe to call after Commit.
func (c *Container) Close() error {
	var err error
	if c.tx != nil {
		_ = c.tx.Rollback()
		c.tx = nil
	}
	if c.db != nil {
		err = c.db.Close()
		c.db = nil
	}
	if c.tmp != "" {
		os.Remove(c.tmp)
		c.tmp = ""
	}
	return err
}

func openDB(dsn string) (*sql.DB, error) {
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Pragmas are per connection; keep exactly one.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if err := applyPragmas(context.Background(), db, "PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}

func applyPragmas(ctx context.Context, db *sql.DB, pragmas ...string) error {
	for _, pragma := range pragmas {
		if _, err := db.ExecContext(ctx, pragma); err != nil {
			return fmt.Errorf("failed to execute %q: %w", pragma, err)
		}
	}
	return nil
}

func (c *Container) writable() error {
	if c.tx == nil {
		return ErrReadOnly
	}
	return nil
}

func (c *Container) putMeta(ctx context.Context, key, value string) error {
	if err := c.writable(); err != nil {
		return err
	}
	_, err := c.q.ExecContext(ctx, `
		INSERT INTO meta (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value
	`, key, value)
	if err != nil {
		return fmt.Errorf("write meta %s: %w", key, err)
	}
	return nil
}

func (c *Container) meta(ctx context.Context, key string) (string, bool, error) {
	var value string
	err := c.q.QueryRowContext(ctx, `SELECT value FROM meta WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("read meta %s: %w", key, err)
	}
	return value, true, nil
}

// SetMeta records a free-form metadata value.
func (c *Container) SetMeta(ctx context.Context, key, value string) error {
	return c.putMeta(ctx, key, value)
}

// Meta returns a metadata value and whether it was present.
func (c *Container) Meta(ctx context.Context, key string) (string, bool, error) {
	return c.meta(ctx, key)
}
