package bvh

import (
	"github.com/achilleasa/hybridrt/types"
	"github.com/chewxy/math32"
)

// The default number of bins per axis used for evaluating split candidates.
const DefaultBinCount = 50

type bin struct {
	count  int
	bounds Bounds
}

// A candidate split plane.
type splitCandidate struct {
	axis     int
	position float32
	cost     float32
}

// splitEvaluator approximates the best SAH split of a triangle range by
// binning centroids along each axis. Instead of scoring every centroid as a
// split position (O(N^2)) the range is binned once and each of the
// binCount-1 bin boundaries is scored with a prefix and a suffix sweep.
//
// The scratch buffers are reused across nodes; an evaluation never depends
// on state left over by a previous one.
type splitEvaluator struct {
	bins []bin

	// Triangle count and area of everything to the right of each boundary.
	rightCount []int
	rightArea  []float32
}

func newSplitEvaluator(binCount int) *splitEvaluator {
	return &splitEvaluator{
		bins:       make([]bin, binCount),
		rightCount: make([]int, binCount-1),
		rightArea:  make([]float32, binCount-1),
	}
}

// Find the lowest cost split for triangles [first, first+count). Returns
// false if the centroid extent is zero along all axes.
//
// The cost of a split is leftCount * leftArea + rightCount * rightArea where
// the areas are computed from the full triangle bounds on each side.
// Boundaries leaving one side empty are never selected. Ties keep the first
// candidate encountered.
func (e *splitEvaluator) evaluate(vertices []types.Vec3, tris []workTriangle, first, count int) (splitCandidate, bool) {
	var centroidBounds Bounds
	for index := first; index < first+count; index++ {
		centroidBounds.Include(tris[index].centroid)
	}
	cMin := centroidBounds.min
	cMax := centroidBounds.max

	binCount := len(e.bins)
	best := splitCandidate{cost: math32.MaxFloat32}
	found := false
	for axis := types.X; axis <= types.Z; axis++ {
		extent := cMax[axis] - cMin[axis]
		if extent <= 0 {
			continue
		}

		for index := range e.bins {
			e.bins[index].count = 0
			e.bins[index].bounds.Reset()
		}

		scale := float32(binCount) / extent
		for index := first; index < first+count; index++ {
			tri := &tris[index]
			binIndex := int((tri.centroid[axis] - cMin[axis]) * scale)
			if binIndex >= binCount {
				binIndex = binCount - 1
			} else if binIndex < 0 {
				binIndex = 0
			}

			b := &e.bins[binIndex]
			b.count++
			b.bounds.IncludeTriangle(vertices, &tri.Triangle)
		}

		// Suffix sweep: boundary i separates bins [0, i] from [i+1, binCount).
		var acc Bounds
		accCount := 0
		for boundary := binCount - 2; boundary >= 0; boundary-- {
			b := &e.bins[boundary+1]
			accCount += b.count
			acc.IncludeBounds(&b.bounds)
			e.rightCount[boundary] = accCount
			e.rightArea[boundary] = acc.Area()
		}

		// Prefix sweep; score each boundary as we go.
		acc.Reset()
		accCount = 0
		binWidth := extent / float32(binCount)
		for boundary := 0; boundary < binCount-1; boundary++ {
			b := &e.bins[boundary]
			accCount += b.count
			acc.IncludeBounds(&b.bounds)

			if accCount == 0 || e.rightCount[boundary] == 0 {
				continue
			}

			cost := float32(accCount)*acc.Area() + float32(e.rightCount[boundary])*e.rightArea[boundary]
			if cost < best.cost {
				best = splitCandidate{
					axis:     axis,
					position: cMin[axis] + binWidth*float32(boundary+1),
					cost:     cost,
				}
				found = true
			}
		}
	}

	return best, found
}
