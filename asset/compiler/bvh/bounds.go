package bvh

import (
	"github.com/achilleasa/hybridrt/asset/scene"
	"github.com/achilleasa/hybridrt/types"
)

// Bounds incrementally grows an axis aligned bounding box. The zero value
// is an empty accumulator that has not absorbed any point yet.
type Bounds struct {
	min, max types.Vec3
	valid    bool
}

// Reset the accumulator to the empty state.
func (b *Bounds) Reset() {
	*b = Bounds{}
}

// Returns true if no point has been absorbed.
func (b *Bounds) IsEmpty() bool {
	return !b.valid
}

// Expand the bounds to include point.
func (b *Bounds) Include(point types.Vec3) {
	if !b.valid {
		b.min, b.max, b.valid = point, point, true
		return
	}
	b.min = types.MinVec3(b.min, point)
	b.max = types.MaxVec3(b.max, point)
}

// Expand the bounds to include the extent absorbed by other, if any.
func (b *Bounds) IncludeBounds(other *Bounds) {
	if !other.valid {
		return
	}
	if !b.valid {
		*b = *other
		return
	}
	b.min = types.MinVec3(b.min, other.min)
	b.max = types.MaxVec3(b.max, other.max)
}

// Expand the bounds to include all three vertices of tri.
func (b *Bounds) IncludeTriangle(vertices []types.Vec3, tri *scene.Triangle) {
	b.Include(vertices[tri.P0])
	b.Include(vertices[tri.P1])
	b.Include(vertices[tri.P2])
}

// Build returns the absorbed extent. An empty accumulator yields a zero
// sized box at the origin.
func (b *Bounds) Build() scene.AABB {
	if !b.valid {
		return scene.AABB{}
	}
	return scene.AABB{Min: b.min, Max: b.max}
}

// Area returns half the surface area of the absorbed extent or 0 if the
// accumulator is empty.
func (b *Bounds) Area() float32 {
	if !b.valid {
		return 0
	}
	return scene.AABB{Min: b.min, Max: b.max}.Area()
}
