package scene

import (
	"bytes"
	"encoding/binary"
	"math"
	"strings"
	"testing"

	"github.com/achilleasa/hybridrt/types"
)

func TestBvhNodeLayout(t *testing.T) {
	if BvhNodeSize != 36 {
		t.Fatalf("expected BvhNode to occupy 36 bytes; got %d", BvhNodeSize)
	}

	node := NewLeaf(AABB{Min: types.XYZ(-1, -2, -3), Max: types.XYZ(4, 5, 6)}, 7, 8)
	data := NewBvh([]BvhNode{node}).Bytes()
	if len(data) != BvhNodeSize {
		t.Fatalf("expected %d bytes; got %d", BvhNodeSize, len(data))
	}

	expFloats := []float32{-1, -2, -3, 4, 5, 6}
	for index, exp := range expFloats {
		got := math.Float32frombits(binary.LittleEndian.Uint32(data[4*index:]))
		if got != exp {
			t.Fatalf("expected float at offset %d to be %f; got %f", 4*index, exp, got)
		}
	}

	expInts := []uint32{uint32(Leaf), 7, 8}
	for index, exp := range expInts {
		offset := 24 + 4*index
		if got := binary.LittleEndian.Uint32(data[offset:]); got != exp {
			t.Fatalf("expected uint32 at offset %d to be %d; got %d", offset, exp, got)
		}
	}
}

func TestBvhWriteTo(t *testing.T) {
	nodes := []BvhNode{{Tag: Interior, A: 1, B: 2}, NewLeaf(AABB{}, 0, 1), NewLeaf(AABB{}, 1, 1)}

	var buf bytes.Buffer
	n, err := NewBvh(nodes).WriteTo(&buf)
	if err != nil {
		t.Fatal(err)
	}
	if n != int64(3*BvhNodeSize) || buf.Len() != 3*BvhNodeSize {
		t.Fatalf("expected to write %d bytes; reported %d, wrote %d", 3*BvhNodeSize, n, buf.Len())
	}
	if tag := binary.LittleEndian.Uint32(buf.Bytes()[24:]); tag != uint32(Interior) {
		t.Fatalf("expected root tag to be interior; got %d", tag)
	}
}

func TestNodeCopyAccessors(t *testing.T) {
	tree := NewBvh([]BvhNode{
		{Tag: Interior, A: 2, B: 3},
		NewLeaf(AABB{}, 0, 0),
		NewLeaf(AABB{}, 0, 1),
		NewLeaf(AABB{}, 1, 2),
	})

	if tree.Root().IsLeaf() {
		t.Fatal("expected root to be an interior node")
	}
	if right, left := tree.Root().GetChildNodes(); right != 2 || left != 3 {
		t.Fatalf("expected children (2, 3); got (%d, %d)", right, left)
	}
	if first, count := tree.Node(3).GetPrimitives(); first != 1 || count != 2 {
		t.Fatalf("expected primitives (1, 2); got (%d, %d)", first, count)
	}
}

func TestNodeTransitions(t *testing.T) {
	node := NewLeaf(AABB{}, 3, 4)
	if !node.IsLeaf() {
		t.Fatal("expected new node to be a leaf")
	}
	if first, count := node.GetPrimitives(); first != 3 || count != 4 {
		t.Fatalf("expected primitives (3, 4); got (%d, %d)", first, count)
	}

	node.SetChildNodes(10, 11)
	if node.IsLeaf() {
		t.Fatal("expected node to be interior after setting children")
	}
	if right, left := node.GetChildNodes(); right != 10 || left != 11 {
		t.Fatalf("expected children (10, 11); got (%d, %d)", right, left)
	}
	if node.Tag.String() != "interior" {
		t.Fatalf("expected tag string interior; got %s", node.Tag)
	}
}

func TestAABB(t *testing.T) {
	outer := AABB{Min: types.XYZ(0, 0, 0), Max: types.XYZ(2, 3, 4)}
	inner := AABB{Min: types.XYZ(1, 1, 1), Max: types.XYZ(2, 2, 2)}

	if got := outer.Area(); got != 26 {
		t.Fatalf("expected area 26; got %f", got)
	}
	if !outer.Contains(inner) {
		t.Fatal("expected outer box to contain inner box")
	}
	if inner.Contains(outer) {
		t.Fatal("expected inner box not to contain outer box")
	}
}

func TestBvhValidate(t *testing.T) {
	box := AABB{Max: types.XYZ(1, 1, 1)}
	type spec struct {
		nodes    []BvhNode
		triCount int
		expError string
	}
	specs := []spec{
		{
			[]BvhNode{{Bounds: box, Tag: Interior, A: 2, B: 3}, NewLeaf(AABB{}, 0, 0), NewLeaf(box, 0, 1), NewLeaf(box, 1, 2)},
			3,
			"",
		},
		{
			[]BvhNode{{Bounds: box, Tag: Interior, A: 1, B: 2}, NewLeaf(box, 0, 1), NewLeaf(box, 0, 1)},
			1,
			"referenced by more than one leaf",
		},
		{
			[]BvhNode{{Bounds: box, Tag: Interior, A: 1, B: 2}, NewLeaf(box, 0, 1), NewLeaf(box, 1, 1)},
			3,
			"not referenced by any leaf",
		},
		{
			[]BvhNode{{Bounds: box, Tag: Interior, A: 0, B: 1}, NewLeaf(box, 0, 1)},
			1,
			"invalid child index",
		},
		{
			[]BvhNode{{Bounds: box, Tag: Interior, A: 1, B: 1}, NewLeaf(box, 0, 1)},
			1,
			"referenced by nodes",
		},
		{
			[]BvhNode{{Bounds: box, Tag: Interior, A: 1, B: 2}, NewLeaf(AABB{Max: types.XYZ(2, 1, 1)}, 0, 1), NewLeaf(box, 1, 1)},
			2,
			"do not contain child",
		},
		{
			[]BvhNode{NewLeaf(box, 0, 4)},
			2,
			"exceeds triangle count",
		},
	}

	for index, s := range specs {
		err := NewBvh(s.nodes).Validate(s.triCount)
		if s.expError == "" {
			if err != nil {
				t.Fatalf("[spec %d] expected no error; got %v", index, err)
			}
			continue
		}
		if err == nil || !strings.Contains(err.Error(), s.expError) {
			t.Fatalf("[spec %d] expected error containing %q; got %v", index, s.expError, err)
		}
	}
}

func TestBvhStats(t *testing.T) {
	box := AABB{Max: types.XYZ(1, 1, 1)}
	tree := NewBvh([]BvhNode{
		{Bounds: box, Tag: Interior, A: 2, B: 3},
		NewLeaf(AABB{}, 0, 0),
		NewLeaf(box, 0, 3),
		{Bounds: box, Tag: Interior, A: 4, B: 5},
		NewLeaf(box, 3, 1),
		NewLeaf(box, 4, 2),
	})

	stats := tree.Stats()
	if stats.Nodes != 5 {
		t.Fatalf("expected 5 reachable nodes; got %d", stats.Nodes)
	}
	if stats.Leafs != 3 || stats.EmptyLeafs != 0 {
		t.Fatalf("expected 3 non-empty leafs; got %d leafs, %d empty", stats.Leafs, stats.EmptyLeafs)
	}
	if stats.MaxDepth != 2 {
		t.Fatalf("expected max depth 2; got %d", stats.MaxDepth)
	}
	if stats.MaxLeafTriangles != 3 || stats.AvgLeafTriangles != 2 {
		t.Fatalf("expected max/avg leaf size 3/2; got %d/%f", stats.MaxLeafTriangles, stats.AvgLeafTriangles)
	}
}

func TestBvhStatsMalformedTree(t *testing.T) {
	type spec struct {
		nodes    []BvhNode
		expNodes int
	}
	specs := []spec{
		// self reference
		{[]BvhNode{{Tag: Interior, A: 0, B: 0}}, 1},
		// children out of range
		{[]BvhNode{{Tag: Interior, A: 5, B: 6}}, 1},
		// back reference to the root
		{[]BvhNode{{Tag: Interior, A: 1, B: 1}, {Tag: Interior, A: 0, B: 2}, NewLeaf(AABB{}, 0, 1)}, 3},
	}

	for index, s := range specs {
		tree := NewBvh(s.nodes)
		stats := tree.Stats()
		if stats.Nodes != s.expNodes {
			t.Fatalf("[spec %d] expected %d reachable nodes; got %d", index, s.expNodes, stats.Nodes)
		}
		if err := tree.Validate(1); err == nil {
			t.Fatalf("[spec %d] expected malformed tree to fail validation", index)
		}
	}
}
