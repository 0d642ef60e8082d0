package reader

import (
	"archive/zip"
	"bytes"
	"encoding/binary"
	"io/ioutil"
	"path/filepath"
	"strings"
	"time"

	"github.com/achilleasa/hybridrt/asset"
	"github.com/achilleasa/hybridrt/asset/compiler/input"
	"github.com/achilleasa/hybridrt/asset/scene"
	"github.com/achilleasa/hybridrt/asset/scene/writer"
	"github.com/achilleasa/hybridrt/log"
	"github.com/achilleasa/hybridrt/types"
	"github.com/pkg/errors"
)

// Size of a vertex and a triangle record in a geometry archive.
const recordSize = 16

type zipModelReader struct {
	logger log.Logger
}

// Create a new zip geometry reader
func newZipModelReader() *zipModelReader {
	return &zipModelReader{
		logger: log.New("zip reader"),
	}
}

// Read a model from a geometry archive written by writer.WriteScene.
func (p *zipModelReader) Read(res *asset.Resource) (*input.Model, error) {
	p.logger.Noticef(`parsing compiled geometry from "%s"`, res.Path())
	start := time.Now()

	// zip package requires a reader implementing ReaderAt. To work around
	// this requirement we read the entire zip file into memory and create
	// a reader from the bytes package that implements ReaderAt
	data, err := ioutil.ReadAll(res)
	if err != nil {
		return nil, errors.Wrap(err, "zip reader")
	}
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, errors.Wrapf(err, "zip reader: %s", res.Name())
	}

	name := res.Name()
	model := input.NewModel(strings.TrimSuffix(name, filepath.Ext(name)))
	var vertices []types.Vec4
	var triangles []scene.Triangle
	seen := make(map[string]bool)
	for _, f := range zr.File {
		var entry []byte
		if entry, err = readEntry(f); err != nil {
			return nil, errors.Wrapf(err, "zip reader: failed to load %s", f.Name)
		}

		switch f.Name {
		case writer.VerticesFile:
			vertices = make([]types.Vec4, len(entry)/recordSize)
			err = decodeEntry(entry, vertices)
		case writer.TrianglesFile:
			triangles = make([]scene.Triangle, len(entry)/recordSize)
			err = decodeEntry(entry, triangles)
		case writer.MaterialsFile:
			if len(entry) != 0 {
				for _, matName := range strings.Split(string(entry), "\n") {
					model.MaterialIndex(matName)
				}
			}
		default:
			p.logger.Warningf("unknown file %s in scene zip file; skipping", f.Name)
			continue
		}

		if err != nil {
			return nil, errors.Wrapf(err, "zip reader: failed to load %s", f.Name)
		}
		seen[f.Name] = true
	}

	for _, required := range []string{writer.VerticesFile, writer.TrianglesFile} {
		if !seen[required] {
			return nil, errors.Errorf("zip reader: %s does not contain %s", name, required)
		}
	}

	model.Positions = make([]types.Vec3, len(vertices))
	for index, v := range vertices {
		model.Positions[index] = types.XYZ(v[0], v[1], v[2])
	}
	if err = checkTriangles(triangles, len(model.Positions), len(model.Materials)); err != nil {
		return nil, errors.Wrapf(err, "zip reader: %s", name)
	}
	model.SetTriangles(triangles)

	p.logger.Noticef("loaded geometry in %d ms", time.Since(start).Nanoseconds()/1e6)
	return model, nil
}

func readEntry(f *zip.File) ([]byte, error) {
	rc, err := f.Open()
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	return ioutil.ReadAll(rc)
}

// Decode a buffer of little endian records into out.
func decodeEntry(data []byte, out interface{}) error {
	if len(data)%recordSize != 0 {
		return errors.Wrapf(ErrSyntax, "buffer length %d is not a multiple of the %d byte record size", len(data), recordSize)
	}
	return binary.Read(bytes.NewReader(data), binary.LittleEndian, out)
}

// Ensure that decoded triangles only reference stored vertices and materials.
func checkTriangles(triangles []scene.Triangle, vertexCount, materialCount int) error {
	for index, tri := range triangles {
		for _, p := range [3]uint32{tri.P0, tri.P1, tri.P2} {
			if int(p) >= vertexCount {
				return errors.Wrapf(ErrIndexOutOfRange, "triangle %d references vertex %d; %d vertices stored", index, p, vertexCount)
			}
		}
		if materialCount > 0 && int(tri.Material) >= materialCount {
			return errors.Wrapf(ErrIndexOutOfRange, "triangle %d references material %d; %d materials stored", index, tri.Material, materialCount)
		}
	}
	return nil
}
