package reader

import (
	"path/filepath"
	"strings"

	"github.com/achilleasa/hybridrt/asset"
	"github.com/achilleasa/hybridrt/asset/compiler/input"
	"github.com/pkg/errors"
)

// The Reader interface is implemented by all model readers.
type Reader interface {
	// Read a model definition from a resource.
	Read(*asset.Resource) (*input.Model, error)
}

// Read model from a local file or http(s) URL. Wavefront obj files and
// geometry archives produced by writer.WriteScene are supported.
func ReadModel(filename string) (*input.Model, error) {
	// Select reader based on file extension
	var reader Reader
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".obj":
		reader = newWavefrontReader()
	case ".zip":
		reader = newZipModelReader()
	default:
		return nil, errors.Wrapf(ErrUnsupported, "readModel: %q", filename)
	}

	res, err := asset.NewResource(filename)
	if err != nil {
		return nil, err
	}
	defer res.Close()

	return reader.Read(res)
}
