package input

import (
	"github.com/achilleasa/hybridrt/asset/compiler/bvh"
	"github.com/achilleasa/hybridrt/asset/scene"
	"github.com/achilleasa/hybridrt/types"
)

// A Model is a triangle mesh as produced by a model reader. Triangle
// indices must be valid for the position list.
type Model struct {
	Name      string
	Positions []types.Vec3
	Triangles []scene.Triangle

	// Material names indexed by Triangle.Material.
	Materials []string

	matNameToIndex map[string]uint32
	bvh            *scene.Bvh
}

// Create a new empty model.
func NewModel(name string) *Model {
	return &Model{
		Name:           name,
		Positions:      make([]types.Vec3, 0),
		Triangles:      make([]scene.Triangle, 0),
		Materials:      make([]string, 0),
		matNameToIndex: make(map[string]uint32, 0),
	}
}

// Get the index of a material, registering it if it is not yet known.
func (m *Model) MaterialIndex(name string) uint32 {
	if index, exists := m.matNameToIndex[name]; exists {
		return index
	}

	m.Materials = append(m.Materials, name)
	index := uint32(len(m.Materials) - 1)
	m.matNameToIndex[name] = index
	return index
}

// Replace the model triangle list. Any previously built BVH is discarded
// as its leafs no longer match the triangle order.
func (m *Model) SetTriangles(triangles []scene.Triangle) {
	m.Triangles = triangles
	m.bvh = nil
}

// Get the BVH built by BuildBvh or nil if none has been built.
func (m *Model) Bvh() *scene.Bvh {
	return m.bvh
}

// Build a BVH for the model geometry. The model adopts the leaf-contiguous
// triangle order produced by the builder.
func (m *Model) BuildBvh(opts bvh.Options) *scene.Bvh {
	tree, triangles := bvh.Build(m.Positions, m.Triangles, opts)
	m.Triangles = triangles
	m.bvh = tree
	return tree
}
