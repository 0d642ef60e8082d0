package bvh

import (
	"math/rand"

	"github.com/achilleasa/hybridrt/asset/scene"
	"github.com/achilleasa/hybridrt/types"
)

// Edge size of the cube that bounds each triangle generated by RandomSoup.
const SoupTriangleSize = 0.02

// Generate count small triangles scattered uniformly inside the unit cube.
// The output is fully determined by seed. Triangles cycle through 7
// material indices.
func RandomSoup(count int, seed int64) ([]types.Vec3, []scene.Triangle) {
	rng := rand.New(rand.NewSource(seed))
	jitter := func() types.Vec3 {
		return types.XYZ(
			(rng.Float32()-0.5)*SoupTriangleSize,
			(rng.Float32()-0.5)*SoupTriangleSize,
			(rng.Float32()-0.5)*SoupTriangleSize,
		)
	}

	vertices := make([]types.Vec3, 0, 3*count)
	triangles := make([]scene.Triangle, 0, count)
	for index := 0; index < count; index++ {
		center := types.XYZ(rng.Float32(), rng.Float32(), rng.Float32())
		vertices = append(vertices, center.Add(jitter()), center.Add(jitter()), center.Add(jitter()))
		base := uint32(3 * index)
		triangles = append(triangles, scene.Triangle{P0: base, P1: base + 1, P2: base + 2, Material: uint32(index % 7)})
	}
	return vertices, triangles
}
