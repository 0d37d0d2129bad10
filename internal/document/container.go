package document

import (
	"context"
	"fmt"

	"github.com/roach88/harvest/internal/ir"
	"github.com/roach88/harvest/internal/reference"
	"github.com/roach88/harvest/internal/store"
	"github.com/roach88/harvest/internal/tree"
)

// LoadContainer loads a binary container written by SaveContainer.
//
// The container is an implicit reference source. If a reference is
// already set, the container's must be identical to it.
func (d *Document) LoadContainer(ctx context.Context, path string) error {
	if err := d.beginLoad(path); err != nil {
		return err
	}
	c, err := store.Open(ctx, path)
	if err != nil {
		return err
	}
	defer c.Close()

	decision, err := d.authority.Decide(SourceContainer)
	if err != nil {
		return err
	}
	loaded := reference.NewStore()
	if err := loaded.LoadContainer(ctx, c); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	if loaded.Len() == 0 {
		return &Error{Code: ErrCodeEmptyReference, File: path, Message: "container holds no reference sequences"}
	}
	if decision == Keep {
		if err := d.sameReferences(loaded); err != nil {
			return &Error{Code: ErrCodeAuthorityConflict, File: path, Message: err.Error()}
		}
	}

	newick, hasTree, err := c.ReadTree(ctx)
	if err != nil {
		return err
	}
	var t *tree.Tree
	if hasTree {
		if t, err = tree.ParseNewick(newick); err != nil {
			return fmt.Errorf("%s: stored tree: %w", path, err)
		}
	}
	tracks, err := c.ReadTracks(ctx)
	if err != nil {
		return err
	}
	lcbs, err := c.ReadLCBs(ctx)
	if err != nil {
		return err
	}
	if len(lcbs) > 0 && d.aligned {
		return fmt.Errorf("%s: an alignment is already loaded", path)
	}
	annots, err := c.ReadAnnotations(ctx)
	if err != nil {
		return err
	}
	filters, err := c.ReadFilters(ctx)
	if err != nil {
		return err
	}
	variants, err := c.ReadVariants(ctx)
	if err != nil {
		return err
	}
	id, _, err := c.Meta(ctx, store.MetaDocumentID)
	if err != nil {
		return err
	}

	// Everything is read; apply.
	if decision == Adopt {
		for _, ref := range loaded.References() {
			d.refs.Append(ref.Name, ref.Description, ref.Sequence)
		}
	}
	d.authority.Settle(SourceContainer, decision)
	if d.id == "" {
		d.id = id
	}
	if t != nil {
		d.tree = t
		d.rerooted = false
	}
	if len(tracks) > 0 {
		d.tracks = tracks
	}
	if len(lcbs) > 0 {
		d.lcbs = lcbs
		d.aligned = true
	}
	d.annots = append(d.annots, annots...)
	d.filters = append(d.filters, filters...)
	if len(variants) > 0 {
		d.setVariants(variants)
	}
	return nil
}

func (d *Document) sameReferences(other *reference.Store) error {
	have, err := ir.ReferencesDigest(d.refs.References())
	if err != nil {
		return err
	}
	got, err := ir.ReferencesDigest(other.References())
	if err != nil {
		return err
	}
	if have != got {
		return fmt.Errorf("container reference differs from the loaded reference")
	}
	return nil
}

// SaveContainer writes the whole document to a binary container at path.
// Nothing is written at path unless every section succeeds.
func (d *Document) SaveContainer(ctx context.Context, path string) error {
	if err := d.CheckOutput(OutputContainer); err != nil {
		return err
	}
	d.beginWrite(path)

	c, err := store.Create(ctx, path)
	if err != nil {
		return err
	}
	defer c.Close()

	if err := c.SetMeta(ctx, store.MetaDocumentID, d.ID()); err != nil {
		return err
	}
	if err := c.SetMeta(ctx, store.MetaAuthority, d.authority.String()); err != nil {
		return err
	}
	if err := d.refs.SaveContainer(ctx, c); err != nil {
		return err
	}
	if d.tree != nil {
		if err := c.WriteTree(ctx, d.tree.String()); err != nil {
			return err
		}
	}
	if err := c.WriteTracks(ctx, d.tracks); err != nil {
		return err
	}
	if err := c.WriteAnnotations(ctx, d.annots); err != nil {
		return err
	}
	if err := c.WriteFilters(ctx, d.filters); err != nil {
		return err
	}
	if err := c.WriteVariants(ctx, d.variants); err != nil {
		return err
	}
	if err := c.WriteLCBs(ctx, d.lcbs); err != nil {
		return err
	}
	return c.Commit()
}
