package writer

import (
	"archive/zip"
	"encoding/binary"
	"os"
	"strings"
	"time"

	"github.com/achilleasa/hybridrt/asset/scene"
	"github.com/achilleasa/hybridrt/log"
	"github.com/pkg/errors"
)

type zipSceneWriter struct {
	logger    log.Logger
	sceneFile string
}

// Create a new zip scene writer
func newZipSceneWriter(sceneFile string) *zipSceneWriter {
	return &zipSceneWriter{
		logger:    log.New("zip writer"),
		sceneFile: sceneFile,
	}
}

// Write scene geometry to a zip file.
func (w *zipSceneWriter) Write(sc *scene.Scene) error {
	w.logger.Noticef("writing compressed scene to %s", w.sceneFile)
	start := time.Now()

	zipFile, err := os.Create(w.sceneFile)
	if err != nil {
		return errors.Wrap(err, "zip writer")
	}
	defer zipFile.Close()

	zw := zip.NewWriter(zipFile)
	entries := []struct {
		name string
		data interface{}
	}{
		{VerticesFile, sc.VertexList},
		{TrianglesFile, sc.TriangleList},
		{MaterialsFile, []byte(strings.Join(sc.MaterialNames, "\n"))},
	}

	for _, entry := range entries {
		cw, err := zw.Create(entry.name)
		if err == nil {
			err = binary.Write(cw, binary.LittleEndian, entry.data)
		}
		if err != nil {
			zw.Close()
			return errors.Wrapf(err, "zip writer: could not write %s", entry.name)
		}
	}

	if err = zw.Close(); err != nil {
		return errors.Wrap(err, "zip writer")
	}

	w.logger.Noticef("compressed scene in %d ms", time.Since(start).Nanoseconds()/1e6)
	return nil
}
