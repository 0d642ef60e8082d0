package writer

import (
	"path/filepath"
	"strings"

	"github.com/achilleasa/hybridrt/asset/scene"
	"github.com/pkg/errors"
)

// Entries of a compiled geometry archive. Binary entries hold little endian
// records in the layout used for GPU upload. The BVH itself is not stored;
// loading an archive rebuilds it.
const (
	VerticesFile  = "vertices.bin"
	TrianglesFile = "triangles.bin"
	MaterialsFile = "materials.txt"
)

// The Writer interface is implemented by all scene writers.
type Writer interface {
	// Write the packed geometry of a compiled scene.
	Write(*scene.Scene) error
}

// Write the packed geometry of a compiled scene. The output format is
// selected by the file extension; only .zip archives are supported.
func WriteScene(sc *scene.Scene, filename string) error {
	if !strings.EqualFold(filepath.Ext(filename), ".zip") {
		return errors.Errorf("writeScene: unsupported output format %q", filename)
	}
	return newZipSceneWriter(filename).Write(sc)
}
