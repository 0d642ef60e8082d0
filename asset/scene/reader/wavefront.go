package reader

import (
	"bufio"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/achilleasa/hybridrt/asset"
	"github.com/achilleasa/hybridrt/asset/compiler/input"
	"github.com/achilleasa/hybridrt/asset/scene"
	"github.com/achilleasa/hybridrt/log"
	"github.com/achilleasa/hybridrt/types"
	"github.com/pkg/errors"
)

// The material assigned to faces that precede any usemtl statement.
const defaultMaterialName = "default"

type wavefrontReader struct {
	logger log.Logger

	// The parsed model.
	model *input.Model

	// Material index assigned to parsed faces.
	curMaterial    uint32
	hasCurMaterial bool

	// Number of parsed but unused texture coordinates and normals.
	skippedUVs     int
	skippedNormals int
}

// Create a new wavefront obj reader.
func newWavefrontReader() *wavefrontReader {
	return &wavefrontReader{
		logger: log.New("wavefront reader"),
	}
}

// Read model definition.
func (r *wavefrontReader) Read(res *asset.Resource) (*input.Model, error) {
	r.logger.Noticef(`parsing model from "%s"`, res.Path())
	start := time.Now()

	name := res.Name()
	r.model = input.NewModel(strings.TrimSuffix(name, filepath.Ext(name)))

	err := r.parse(res, name)
	if err != nil {
		return nil, err
	}

	if r.skippedUVs > 0 || r.skippedNormals > 0 {
		r.logger.Infof("ignored %d texture coordinates and %d normals", r.skippedUVs, r.skippedNormals)
	}
	if len(r.model.Triangles) == 0 {
		r.logger.Warningf(`model "%s" contains no faces`, r.model.Name)
	}

	r.logger.Noticef(
		"parsed model in %d ms (%d vertices, %d triangles, %d materials)",
		time.Since(start).Nanoseconds()/1e6,
		len(r.model.Positions), len(r.model.Triangles), len(r.model.Materials),
	)
	return r.model, nil
}

// Tag an error with the file and line where it occurred.
func (r *wavefrontReader) emitError(file string, line int, err error) error {
	kind := ErrSyntax
	if le, ok := err.(*lineError); ok {
		kind = le.kind
	}
	return &ParseError{
		File: file,
		Line: line,
		Kind: kind,
		Msg:  err.Error(),
	}
}

// Parse wavefront object format.
func (r *wavefrontReader) parse(res *asset.Resource, file string) error {
	var lineNum int
	var err error

	scanner := bufio.NewScanner(res)
	for scanner.Scan() {
		lineNum++
		lineTokens := strings.Fields(scanner.Text())
		if len(lineTokens) == 0 || strings.HasPrefix(lineTokens[0], "#") {
			continue
		}

		switch lineTokens[0] {
		case "v":
			var v types.Vec3
			v, err = parseVec3(lineTokens)
			if err == nil {
				r.model.Positions = append(r.model.Positions, v)
			}
		case "vt":
			r.skippedUVs++
		case "vn":
			r.skippedNormals++
		case "usemtl":
			if len(lineTokens) != 2 {
				err = argCountError(`unsupported syntax for "usemtl"; expected 1 argument; got %d`, len(lineTokens)-1)
				break
			}
			r.curMaterial = r.model.MaterialIndex(lineTokens[1])
			r.hasCurMaterial = true
		case "f":
			err = r.parseFace(lineTokens)
		}

		if err != nil {
			return r.emitError(file, lineNum, err)
		}
	}

	if err = scanner.Err(); err != nil {
		return errors.Wrapf(err, "wavefront reader: could not read %q", file)
	}
	return nil
}

// Parse face definition. Each face argument is comprised of 1, 2 or 3 indices
// separated by a slash character; only the first (vertex) index is used:
// - vertexIndex
// - vertexIndex/uvIndex
// - vertexIndex//normalIndex
// - vertexIndex/uvIndex/normalIndex
//
// Faces with more than 3 vertices are split into a triangle fan around the
// first vertex.
func (r *wavefrontReader) parseFace(lineTokens []string) error {
	if len(lineTokens) < 4 {
		return argCountError(`unsupported syntax for "f"; expected at least 3 arguments; got %d`, len(lineTokens)-1)
	}

	indices := make([]uint32, len(lineTokens)-1)
	for arg := range indices {
		vToken := lineTokens[arg+1]
		if slash := strings.IndexByte(vToken, '/'); slash != -1 {
			vToken = vToken[:slash]
		}

		index, err := selectFaceCoordIndex(vToken, len(r.model.Positions))
		if err != nil {
			return err
		}
		indices[arg] = index
	}

	// If no material was selected use the default one
	if !r.hasCurMaterial {
		r.curMaterial = r.model.MaterialIndex(defaultMaterialName)
		r.hasCurMaterial = true
	}

	for i := 1; i+1 < len(indices); i++ {
		r.model.Triangles = append(r.model.Triangles, scene.Triangle{
			P0:       indices[0],
			P1:       indices[i],
			P2:       indices[i+1],
			Material: r.curMaterial,
		})
	}
	return nil
}

// Convert a 1-based (or negative, relative to the end of the list) face
// index into an offset into a coord list with coordListLen items.
func selectFaceCoordIndex(indexToken string, coordListLen int) (uint32, error) {
	if indexToken == "" {
		return 0, syntaxError("face argument does not include a vertex index")
	}

	index, err := strconv.ParseInt(indexToken, 10, 32)
	if err != nil {
		return 0, syntaxError("could not parse face index %q", indexToken)
	}

	var offset int
	if index < 0 {
		offset = coordListLen + int(index)
	} else {
		offset = int(index - 1)
	}
	if offset < 0 || offset >= coordListLen {
		return 0, indexError("face index %d out of bounds; %d vertices defined", index, coordListLen)
	}
	return uint32(offset), nil
}

// Parse a Vec3 row.
func parseVec3(lineTokens []string) (types.Vec3, error) {
	if len(lineTokens) != 4 {
		return types.Vec3{}, argCountError(`unsupported syntax for "%s"; expected 3 arguments; got %d`, lineTokens[0], len(lineTokens)-1)
	}

	v := types.Vec3{}
	for tokIdx := 1; tokIdx <= 3; tokIdx++ {
		coord, err := strconv.ParseFloat(lineTokens[tokIdx], 32)
		if err != nil {
			return v, syntaxError("could not parse %q as a number", lineTokens[tokIdx])
		}
		v[tokIdx-1] = float32(coord)
	}
	return v, nil
}
