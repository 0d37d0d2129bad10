package document

import (
	"io"
	"log/slog"

	"github.com/roach88/harvest/internal/ir"
	"github.com/roach88/harvest/internal/reference"
	"github.com/roach88/harvest/internal/tree"
)

// Document is one in-flight harvest document.
//
// A Document is not safe for concurrent use. Writers only read it, so
// several writers may run after loading is complete provided nothing
// loads concurrently.
type Document struct {
	log        *slog.Logger
	ids        IDGenerator
	strict     bool
	lineWidth  int
	id         string
	authority  Authority
	refs       *reference.Store
	tree       *tree.Tree
	rerooted   bool
	tracks     []string
	aligned    bool
	lcbs       []ir.LCB
	annots     []ir.AnnotationTrack
	variants   []ir.Variant
	hasVariant bool
	filters    []ir.Filter
	sealed     bool
}

// Option configures a Document.
type Option func(*Document)

// WithLogger sets the logger used for progress and warnings.
// Default: a logger that discards everything.
func WithLogger(l *slog.Logger) Option {
	return func(d *Document) {
		d.log = l
	}
}

// WithStrictIdentifiers makes an unresolvable sequence identifier in a
// GenBank, VCF or BED source abort the load instead of being skipped.
func WithStrictIdentifiers(strict bool) Option {
	return func(d *Document) {
		d.strict = strict
	}
}

// WithLineWidth sets the residues per line of FASTA and SNP output.
// Zero writes each sequence on one line. Default: 70.
func WithLineWidth(width int) Option {
	return func(d *Document) {
		d.lineWidth = width
	}
}

// WithIDGenerator sets the source of document IDs.
// Default: UUIDv7Generator.
func WithIDGenerator(g IDGenerator) Option {
	return func(d *Document) {
		d.ids = g
	}
}

// New creates an empty document.
func New(opts ...Option) *Document {
	d := &Document{
		log:       slog.New(slog.NewTextHandler(io.Discard, nil)),
		ids:       UUIDv7Generator{},
		lineWidth: reference.DefaultLineWidth,
		refs:      reference.NewStore(),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// ID returns the document ID, assigning one on first use. A document
// loaded from a container keeps the container's ID.
func (d *Document) ID() string {
	if d.id == "" {
		d.id = d.ids.Generate()
	}
	return d.id
}

// Authority returns the reference authority state.
func (d *Document) Authority() Authority {
	return d.authority
}

// References returns the reference store. Callers must not modify it.
func (d *Document) References() *reference.Store {
	return d.refs
}

// Tree returns the phylogeny, or nil.
func (d *Document) Tree() *tree.Tree {
	return d.tree
}

// Tracks returns the ordered genome names (track 0 = reference).
func (d *Document) Tracks() []string {
	return d.tracks
}

// LCBs returns the alignment blocks.
func (d *Document) LCBs() []ir.LCB {
	return d.lcbs
}

// Annotations returns the annotation tracks in load order.
func (d *Document) Annotations() []ir.AnnotationTrack {
	return d.annots
}

// Variants returns the variant table sorted by position.
func (d *Document) Variants() []ir.Variant {
	return d.variants
}

// Filters returns the filters in load order.
func (d *Document) Filters() []ir.Filter {
	return d.filters
}

// Sealed reports whether a write has happened.
func (d *Document) Sealed() bool {
	return d.sealed
}

func (d *Document) requireReference(file string) error {
	if d.authority.State() == Unset || d.refs.Len() == 0 {
		return &Error{
			Code:    ErrCodeReferenceUnset,
			File:    file,
			Message: "no reference loaded",
		}
	}
	return nil
}

// skipOrFail applies the identifier policy to a failed lookup: strict
// documents fail, others log a warning and continue.
func (d *Document) skipOrFail(file string, err error) error {
	if d.strict || !reference.IsIdentifierNotFound(err) {
		return err
	}
	d.log.Warn("skipping unresolved identifier", "file", file, "error", err)
	return nil
}
