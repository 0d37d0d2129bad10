package reference

import (
	"context"
	"fmt"

	"github.com/roach88/harvest/internal/store"
)

// SaveContainer writes the store into the reference section of c.
func (s *Store) SaveContainer(ctx context.Context, c *store.Container) error {
	if err := c.WriteReferences(ctx, s.refs); err != nil {
		return fmt.Errorf("save references: %w", err)
	}
	return nil
}

// LoadContainer appends the reference section of c, in stored order.
func (s *Store) LoadContainer(ctx context.Context, c *store.Container) error {
	refs, err := c.ReadReferences(ctx)
	if err != nil {
		return fmt.Errorf("load references: %w", err)
	}
	for _, ref := range refs {
		s.Append(ref.Name, ref.Description, ref.Sequence)
	}
	return nil
}
