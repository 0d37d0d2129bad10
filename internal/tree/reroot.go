package tree

import "math"

// edge is one direction of an undirected branch.
type edge struct {
	to        *Node
	length    float64
	hasLength bool
}

type graph map[*Node][]edge

func (g graph) link(a, b *Node, length float64, hasLength bool) {
	g[a] = append(g[a], edge{to: b, length: length, hasLength: hasLength})
	g[b] = append(g[b], edge{to: a, length: length, hasLength: hasLength})
}

func (g graph) unlink(a, b *Node) {
	drop := func(from, to *Node) {
		edges := g[from]
		for i, e := range edges {
			if e.to == to {
				g[from] = append(edges[:i:i], edges[i+1:]...)
				return
			}
		}
	}
	drop(a, b)
	drop(b, a)
}

// distances returns path lengths from src to every node and the
// predecessor of each node on its path from src.
func (g graph) distances(src *Node) (map[*Node]float64, map[*Node]*Node) {
	dist := map[*Node]float64{src: 0}
	prev := map[*Node]*Node{}
	stack := []*Node{src}
	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for _, e := range g[n] {
			if _, seen := dist[e.to]; seen {
				continue
			}
			dist[e.to] = dist[n] + e.length
			prev[e.to] = n
			stack = append(stack, e.to)
		}
	}
	return dist, prev
}

// MidpointReroot moves the root to the midpoint of the longest leaf-to-leaf
// path. The tree is changed in place; it reports whether anything moved.
//
// A tree that is already midpoint-rooted is left untouched, so calling it
// twice is the same as calling it once. Trees with fewer than two leaves or
// without positive branch lengths are left as they are.
func (t *Tree) MidpointReroot() bool {
	if t.Root == nil {
		return false
	}

	g := graph{}
	var leaves []*Node
	var build func(n *Node)
	build = func(n *Node) {
		if n.IsLeaf() {
			leaves = append(leaves, n)
		}
		for _, c := range n.Children {
			g.link(n, c, c.Length, c.HasLength)
			build(c)
		}
	}
	build(t.Root)
	if len(leaves) < 2 {
		return false
	}

	// A binary root is only a point on the branch between its children;
	// splice it out so the midpoint search sees the unrooted tree.
	oldRoot := t.Root
	var c1, c2 *Node
	var rootOffset float64
	if len(oldRoot.Children) == 2 {
		c1, c2 = oldRoot.Children[0], oldRoot.Children[1]
		rootOffset = c1.Length
		g.unlink(oldRoot, c1)
		g.unlink(oldRoot, c2)
		delete(g, oldRoot)
		g.link(c1, c2, c1.Length+c2.Length, c1.HasLength || c2.HasLength)
	}

	a := farthestLeaf(g, leaves[0], leaves)
	distA, prev := g.distances(a)
	b := farthestLeaf(g, a, leaves)
	diameter := distA[b]
	if diameter <= 0 {
		return false
	}
	mid := diameter / 2
	eps := 1e-9 * math.Max(1, diameter)

	// Walk back from b to find the branch (u, v) holding the midpoint, with
	// u on a's side.
	u, v := prev[b], b
	for u != nil && distA[u] > mid+eps {
		u, v = prev[u], u
	}

	var atNode *Node
	switch {
	case u == nil:
		atNode = v
	case math.Abs(distA[u]-mid) <= eps:
		atNode = u
	case math.Abs(distA[v]-mid) <= eps:
		atNode = v
	}

	if c1 != nil {
		// Offset of the midpoint along the c1→c2 branch, if it lies there.
		var off float64
		onRootBranch := true
		switch {
		case atNode == c1:
			off = 0
		case atNode == c2:
			off = c1.Length + c2.Length
		case atNode == nil && u == c1 && v == c2:
			off = mid - distA[c1]
		case atNode == nil && u == c2 && v == c1:
			off = distA[c1] - mid
		default:
			onRootBranch = false
		}
		if onRootBranch && math.Abs(off-rootOffset) <= eps {
			return false
		}
	} else if atNode == oldRoot {
		return false
	}

	newRoot := atNode
	if newRoot == nil {
		newRoot = &Node{}
		g.unlink(u, v)
		g.link(u, newRoot, mid-distA[u], true)
		g.link(newRoot, v, distA[v]-mid, true)
	}

	t.Root = orient(g, newRoot)
	return true
}

// farthestLeaf returns the leaf with the greatest path length from src.
// Ties go to the earliest leaf in depth-first order.
func farthestLeaf(g graph, src *Node, leaves []*Node) *Node {
	dist, _ := g.distances(src)
	best := leaves[0]
	for _, l := range leaves[1:] {
		if dist[l] > dist[best] {
			best = l
		}
	}
	return best
}

// orient rebuilds parent/child links hanging from root.
func orient(g graph, root *Node) *Node {
	root.Length = 0
	root.HasLength = false

	visited := map[*Node]bool{root: true}
	var walk func(n *Node)
	walk = func(n *Node) {
		n.Children = nil
		for _, e := range g[n] {
			if visited[e.to] {
				continue
			}
			visited[e.to] = true
			e.to.Length = e.length
			e.to.HasLength = e.hasLength
			n.Children = append(n.Children, e.to)
			walk(e.to)
		}
	}
	walk(root)
	return root
}
