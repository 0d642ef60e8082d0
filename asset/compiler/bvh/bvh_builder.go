package bvh

import (
	"time"

	"github.com/achilleasa/hybridrt/asset/scene"
	"github.com/achilleasa/hybridrt/log"
	"github.com/achilleasa/hybridrt/types"
)

// Options control BVH construction.
type Options struct {
	// Number of bins per axis used when evaluating split candidates.
	// Values below 2 select DefaultBinCount.
	BinCount int

	// If set, a zero-area padding leaf is stored right after the root so
	// that every sibling pair starts at an even node index.
	Sentinel bool
}

// Get the default build options.
func DefaultOptions() Options {
	return Options{
		BinCount: DefaultBinCount,
		Sentinel: true,
	}
}

type stats struct {
	leafs    int
	splits   int
	maxDepth int
}

// A node waiting to be split.
type pendingNode struct {
	index uint32
	depth int
}

type builder struct {
	logger log.Logger

	// Read-only vertex positions.
	vertices []types.Vec3

	// Triangles with cached centroids; reordered while partitioning.
	triangles []workTriangle

	// Bvh nodes stored as a contiguous, append-only list.
	nodes []scene.BvhNode

	evaluator *splitEvaluator

	// Nodes that still need to be checked for a split.
	pending []pendingNode

	stats stats
}

// Build constructs a BVH over a triangle mesh using a binned surface area
// heuristic. The input triangle slice is not modified; the returned slice
// contains the same triangles reordered so that each leaf references a
// contiguous range. Node 0 of the returned tree is the root.
//
// A node is split only if the best binned split has a lower cost than
// keeping the node as a leaf (triangle count * node bbox area).
func Build(vertices []types.Vec3, triangles []scene.Triangle, opts Options) (*scene.Bvh, []scene.Triangle) {
	if opts.BinCount < 2 {
		opts.BinCount = DefaultBinCount
	}

	b := &builder{
		logger:    log.New("bvh builder"),
		vertices:  vertices,
		triangles: makeWorkList(vertices, triangles),
		nodes:     make([]scene.BvhNode, 0, 2*len(triangles)+1),
		evaluator: newSplitEvaluator(opts.BinCount),
	}

	start := time.Now()
	b.nodes = append(b.nodes, b.leafNode(0, uint32(len(triangles))))
	if opts.Sentinel {
		b.nodes = append(b.nodes, scene.NewLeaf(scene.AABB{}, 0, 0))
	}

	b.pending = append(b.pending, pendingNode{index: 0})
	for len(b.pending) > 0 {
		next := b.pending[len(b.pending)-1]
		b.pending = b.pending[:len(b.pending)-1]
		b.split(next)
	}

	b.logger.Debugf(
		"BVH tree build time: %d ms, triangles: %d, maxDepth: %d, nodes: %d, leafs: %d",
		time.Since(start).Nanoseconds()/1e6,
		len(triangles), b.stats.maxDepth, len(b.nodes), b.stats.leafs,
	)

	return scene.NewBvh(b.nodes), triangleList(b.triangles)
}

// Create a leaf covering triangles [first, first+count) with bounds that
// enclose the full triangle geometry.
func (b *builder) leafNode(first, count uint32) scene.BvhNode {
	var bounds Bounds
	for index := first; index < first+count; index++ {
		bounds.IncludeTriangle(b.vertices, &b.triangles[index].Triangle)
	}
	return scene.NewLeaf(bounds.Build(), first, count)
}

// Try to split a leaf. On success the leaf becomes an interior node, two
// new leafs are appended to the node list and queued for processing.
func (b *builder) split(item pendingNode) {
	if item.depth > b.stats.maxDepth {
		b.stats.maxDepth = item.depth
	}

	node := &b.nodes[item.index]
	first, count := node.GetPrimitives()
	if count <= 1 {
		b.stats.leafs++
		return
	}

	candidate, ok := b.evaluator.evaluate(b.vertices, b.triangles, int(first), int(count))
	leafCost := float32(count) * node.Bounds.Area()
	if !ok || candidate.cost >= leafCost {
		b.stats.leafs++
		return
	}

	boundary := uint32(partition(b.triangles, int(first), int(count), candidate.axis, candidate.position))
	lowerCount := boundary - first
	if lowerCount == 0 || lowerCount == count {
		b.stats.leafs++
		return
	}

	right := uint32(len(b.nodes))
	left := right + 1
	b.nodes = append(b.nodes, b.leafNode(first, lowerCount), b.leafNode(boundary, count-lowerCount))

	// node may point to a stale backing array after append
	b.nodes[item.index].SetChildNodes(right, left)
	b.stats.splits++

	b.pending = append(b.pending,
		pendingNode{index: left, depth: item.depth + 1},
		pendingNode{index: right, depth: item.depth + 1},
	)
}
