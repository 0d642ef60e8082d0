package bvh

// Reorder triangles [first, first+count) in place so that all triangles
// whose centroid lies below position along axis come first. Returns the
// index of the first triangle of the upper side.
func partition(tris []workTriangle, first, count, axis int, position float32) int {
	i := first
	j := first + count - 1
	for i <= j {
		if tris[i].centroid[axis] < position {
			i++
		} else {
			tris[i], tris[j] = tris[j], tris[i]
			j--
		}
	}
	return i
}
