package compiler

import (
	"fmt"
	"time"

	"github.com/achilleasa/hybridrt/asset/compiler/bvh"
	"github.com/achilleasa/hybridrt/asset/compiler/input"
	"github.com/achilleasa/hybridrt/asset/scene"
	"github.com/achilleasa/hybridrt/log"
	"github.com/achilleasa/hybridrt/types"
)

type modelCompiler struct {
	model          *input.Model
	optimizedScene *scene.Scene
	logger         log.Logger
	opts           bvh.Options
}

// Compile a model parsed by a model reader into a GPU-friendly scene. The
// model adopts the triangle order of the generated BVH.
func Compile(model *input.Model, opts bvh.Options) (*scene.Scene, error) {
	compiler := &modelCompiler{
		model:          model,
		optimizedScene: &scene.Scene{},
		logger:         log.New("scene compiler"),
		opts:           opts,
	}

	start := time.Now()
	compiler.logger.Noticef("compiling model %q", model.Name)

	err := compiler.checkIndices()
	if err != nil {
		return nil, err
	}

	compiler.partitionGeometry()
	compiler.packBuffers()

	compiler.logger.Noticef("compiled model in %d ms", time.Since(start).Nanoseconds()/1e6)
	return compiler.optimizedScene, nil
}

// Ensure that all triangles reference valid vertices. The BVH builder
// assumes valid input and must never see a model failing this check.
func (mc *modelCompiler) checkIndices() error {
	vertexCount := uint32(len(mc.model.Positions))
	materialCount := uint32(len(mc.model.Materials))
	for index, tri := range mc.model.Triangles {
		for _, p := range [3]uint32{tri.P0, tri.P1, tri.P2} {
			if p >= vertexCount {
				return fmt.Errorf("compiler: triangle %d references vertex %d; model %q has %d vertices", index, p, mc.model.Name, vertexCount)
			}
		}
		if materialCount > 0 && tri.Material >= materialCount {
			return fmt.Errorf("compiler: triangle %d references material %d; model %q has %d materials", index, tri.Material, mc.model.Name, materialCount)
		}
	}
	return nil
}

// Build the model BVH.
func (mc *modelCompiler) partitionGeometry() {
	start := time.Now()
	mc.logger.Infof("building BVH tree for %q (%d triangles, %d bins)", mc.model.Name, len(mc.model.Triangles), mc.opts.BinCount)

	mc.optimizedScene.Bvh = mc.model.BuildBvh(mc.opts)

	mc.logger.Noticef("partitioned geometry in %d ms", time.Since(start).Nanoseconds()/1e6)
}

// Copy model geometry into the scene buffers.
func (mc *modelCompiler) packBuffers() {
	// Convert Vec3 to Vec4 which is required for proper alignment inside shader storage buffers
	mc.optimizedScene.VertexList = make([]types.Vec4, len(mc.model.Positions))
	for index, pos := range mc.model.Positions {
		mc.optimizedScene.VertexList[index] = pos.Vec4(0)
	}

	mc.optimizedScene.TriangleList = make([]scene.Triangle, len(mc.model.Triangles))
	copy(mc.optimizedScene.TriangleList, mc.model.Triangles)

	mc.optimizedScene.MaterialNames = make([]string, len(mc.model.Materials))
	copy(mc.optimizedScene.MaterialNames, mc.model.Materials)
}
