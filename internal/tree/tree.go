// Package tree is the phylogeny collaborator: a rooted tree read from and
// written to Newick text, with in-place midpoint rerooting.
package tree

import (
	"fmt"
	"os"
)

// Node is one node of a phylogeny. Length is the branch length to the
// parent and is meaningful only when HasLength is set.
type Node struct {
	Name      string
	Length    float64
	HasLength bool
	Children  []*Node
}

// IsLeaf reports whether the node has no children.
func (n *Node) IsLeaf() bool {
	return len(n.Children) == 0
}

// Tree is a rooted phylogeny.
type Tree struct {
	Root *Node
}

// LoadNewick reads a tree from a Newick file.
func LoadNewick(path string) (*Tree, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("load newick: %w", err)
	}
	t, err := ParseNewick(string(data))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return t, nil
}

// Leaves returns leaf names in depth-first, left-to-right order.
func (t *Tree) Leaves() []string {
	var names []string
	var walk func(n *Node)
	walk = func(n *Node) {
		if n.IsLeaf() {
			names = append(names, n.Name)
			return
		}
		for _, c := range n.Children {
			walk(c)
		}
	}
	if t.Root != nil {
		walk(t.Root)
	}
	return names
}
