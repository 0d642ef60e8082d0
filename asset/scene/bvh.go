package scene

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"unsafe"

	"github.com/achilleasa/hybridrt/types"
)

// A triangle references three entries of a vertex position list and the
// index of the material used to shade it.
type Triangle struct {
	P0, P1, P2 uint32
	Material   uint32
}

// An axis aligned bounding box.
type AABB struct {
	Min types.Vec3
	Max types.Vec3
}

// Area returns a score proportional to the surface area of the box
// (exactly half of it). Only compare it against other Area values.
func (b AABB) Area() float32 {
	e := b.Max.Sub(b.Min)
	return e[0]*e[1] + e[1]*e[2] + e[2]*e[0]
}

// Contains returns true if other lies entirely inside b.
func (b AABB) Contains(other AABB) bool {
	for axis := 0; axis < 3; axis++ {
		if other.Min[axis] < b.Min[axis] || other.Max[axis] > b.Max[axis] {
			return false
		}
	}
	return true
}

// The type of a BVH node.
type NodeTag uint32

const (
	Interior NodeTag = iota
	Leaf
)

func (t NodeTag) String() string {
	if t == Leaf {
		return "leaf"
	}
	return "interior"
}

// Bvh nodes are comprised of a bounding box, a tag and two multipurpose
// uint32 fields whose meaning depends on the tag:
//
// - For leafs, A is the index of the first triangle and B the triangle count
// - For interior nodes, A is the right child and B the left child index
//
// The struct layout is uploaded verbatim to the GPU; do not reorder fields.
type BvhNode struct {
	Bounds AABB
	Tag    NodeTag
	A      uint32
	B      uint32
}

// The size in bytes of a serialized BvhNode.
const BvhNodeSize = int(unsafe.Sizeof(BvhNode{}))

// Create a leaf node covering count triangles starting at first.
func NewLeaf(bounds AABB, first, count uint32) BvhNode {
	return BvhNode{
		Bounds: bounds,
		Tag:    Leaf,
		A:      first,
		B:      count,
	}
}

// Returns true if this is a leaf node.
func (n BvhNode) IsLeaf() bool {
	return n.Tag == Leaf
}

// Convert the node into an interior node pointing to the given children.
func (n *BvhNode) SetChildNodes(right, left uint32) {
	n.Tag = Interior
	n.A = right
	n.B = left
}

// Get right and left child node indices.
func (n BvhNode) GetChildNodes() (right, left uint32) {
	return n.A, n.B
}

// Get first triangle index and triangle count.
func (n BvhNode) GetPrimitives() (first, count uint32) {
	return n.A, n.B
}

// A Bvh is an immutable, flat list of nodes. Node 0 is the root.
type Bvh struct {
	nodes []BvhNode
}

// Wrap a list of nodes. The Bvh takes ownership of the slice.
func NewBvh(nodes []BvhNode) *Bvh {
	return &Bvh{nodes: nodes}
}

// Number of allocated nodes (including any padding sentinel).
func (b *Bvh) Len() int {
	return len(b.nodes)
}

// Get a copy of the node at index.
func (b *Bvh) Node(index int) BvhNode {
	return b.nodes[index]
}

// Get the root node.
func (b *Bvh) Root() BvhNode {
	return b.nodes[0]
}

// Get a copy of the node list.
func (b *Bvh) Nodes() []BvhNode {
	out := make([]BvhNode, len(b.nodes))
	copy(out, b.nodes)
	return out
}

// Write the node list to w using the GPU buffer layout (little endian,
// tightly packed BvhNodeSize byte records).
func (b *Bvh) WriteTo(w io.Writer) (int64, error) {
	if err := binary.Write(w, binary.LittleEndian, b.nodes); err != nil {
		return 0, err
	}
	return int64(len(b.nodes) * BvhNodeSize), nil
}

// Get the node list packed for GPU upload.
func (b *Bvh) Bytes() []byte {
	var buf bytes.Buffer
	buf.Grow(len(b.nodes) * BvhNodeSize)
	b.WriteTo(&buf)
	return buf.Bytes()
}

// Statistics for a built BVH. Only nodes reachable from the root are counted.
type BvhStats struct {
	Nodes            int
	Leafs            int
	EmptyLeafs       int
	MaxDepth         int
	MaxLeafTriangles int
	AvgLeafTriangles float32
}

type nodeRef struct {
	index uint32
	depth int
}

// Collect tree statistics.
func (b *Bvh) Stats() BvhStats {
	var stats BvhStats
	if len(b.nodes) == 0 {
		return stats
	}

	var total int
	visited := make([]bool, len(b.nodes))
	visited[0] = true
	stack := []nodeRef{{0, 0}}
	for len(stack) > 0 {
		ref := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		stats.Nodes++
		if ref.depth > stats.MaxDepth {
			stats.MaxDepth = ref.depth
		}

		node := &b.nodes[ref.index]
		if !node.IsLeaf() {
			// Out of range or already visited children are skipped so a
			// malformed tree cannot panic or loop; Validate reports them.
			right, left := node.GetChildNodes()
			for _, child := range [2]uint32{left, right} {
				if int(child) >= len(b.nodes) || visited[child] {
					continue
				}
				visited[child] = true
				stack = append(stack, nodeRef{child, ref.depth + 1})
			}
			continue
		}

		_, count := node.GetPrimitives()
		stats.Leafs++
		total += int(count)
		if count == 0 {
			stats.EmptyLeafs++
		}
		if int(count) > stats.MaxLeafTriangles {
			stats.MaxLeafTriangles = int(count)
		}
	}

	if stats.Leafs > 0 {
		stats.AvgLeafTriangles = float32(total) / float32(stats.Leafs)
	}
	return stats
}

// Validate checks the structural invariants of the tree against a triangle
// list of the given length: child indices are greater than their parent,
// every node has at most one parent, interior bounds contain the bounds of
// their children and the leaf ranges partition [0, triangleCount).
func (b *Bvh) Validate(triangleCount int) error {
	if len(b.nodes) == 0 {
		return fmt.Errorf("bvh: empty node list")
	}

	parents := make([]int, len(b.nodes))
	for i := range parents {
		parents[i] = -1
	}
	covered := make([]bool, triangleCount)

	stack := []uint32{0}
	for len(stack) > 0 {
		index := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		node := &b.nodes[index]

		if node.IsLeaf() {
			first, count := node.GetPrimitives()
			if int(first)+int(count) > triangleCount {
				return fmt.Errorf("bvh: leaf %d range [%d, %d) exceeds triangle count %d", index, first, first+count, triangleCount)
			}
			for tri := first; tri < first+count; tri++ {
				if covered[tri] {
					return fmt.Errorf("bvh: triangle %d referenced by more than one leaf", tri)
				}
				covered[tri] = true
			}
			continue
		}

		right, left := node.GetChildNodes()
		for _, child := range [2]uint32{right, left} {
			if child <= index || int(child) >= len(b.nodes) {
				return fmt.Errorf("bvh: node %d has invalid child index %d", index, child)
			}
			if parents[child] != -1 {
				return fmt.Errorf("bvh: node %d referenced by nodes %d and %d", child, parents[child], index)
			}
			parents[child] = int(index)

			if !node.Bounds.Contains(b.nodes[child].Bounds) {
				return fmt.Errorf("bvh: bounds of node %d do not contain child %d", index, child)
			}
			stack = append(stack, child)
		}
	}

	for tri, ok := range covered {
		if !ok {
			return fmt.Errorf("bvh: triangle %d not referenced by any leaf", tri)
		}
	}

	return nil
}
