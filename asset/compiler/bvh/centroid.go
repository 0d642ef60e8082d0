package bvh

import (
	"github.com/achilleasa/hybridrt/asset/scene"
	"github.com/achilleasa/hybridrt/types"
)

// A triangle together with its cached centroid. The builder reorders these
// records in place while partitioning.
type workTriangle struct {
	scene.Triangle
	centroid types.Vec3
}

// Calculate the centroid of every triangle once.
func makeWorkList(vertices []types.Vec3, triangles []scene.Triangle) []workTriangle {
	const third float32 = 1.0 / 3.0

	work := make([]workTriangle, len(triangles))
	for index, tri := range triangles {
		work[index] = workTriangle{
			Triangle: tri,
			centroid: vertices[tri.P0].Add(vertices[tri.P1]).Add(vertices[tri.P2]).Mul(third),
		}
	}
	return work
}

// Strip cached centroids, preserving the current order.
func triangleList(work []workTriangle) []scene.Triangle {
	out := make([]scene.Triangle, len(work))
	for index := range work {
		out[index] = work[index].Triangle
	}
	return out
}
