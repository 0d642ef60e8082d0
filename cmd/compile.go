package cmd

import (
	"path/filepath"
	"strings"

	"github.com/achilleasa/hybridrt/asset/compiler"
	"github.com/achilleasa/hybridrt/asset/compiler/bvh"
	"github.com/achilleasa/hybridrt/asset/scene/reader"
	"github.com/achilleasa/hybridrt/asset/scene/writer"
	"github.com/pkg/errors"
	"github.com/urfave/cli"
)

// Build BVH options from command flags.
func buildOptions(ctx *cli.Context) bvh.Options {
	opts := bvh.DefaultOptions()
	if bins := ctx.Int("bins"); bins > 0 {
		opts.BinCount = bins
	}
	if ctx.Bool("no-sentinel") {
		opts.Sentinel = false
	}
	return opts
}

// Parse and compile one or more models (wavefront obj files or geometry
// archives), displaying BVH statistics for each.
func CompileModel(ctx *cli.Context) error {
	setupLogging(ctx)

	if ctx.NArg() == 0 {
		return errors.New("missing model file argument")
	}

	opts := buildOptions(ctx)
	for idx := 0; idx < ctx.NArg(); idx++ {
		modelFile := ctx.Args().Get(idx)

		logger.Noticef("parsing and compiling model: %s", modelFile)
		model, err := reader.ReadModel(modelFile)
		if err != nil {
			return err
		}

		sc, err := compiler.Compile(model, opts)
		if err != nil {
			return err
		}

		if ctx.Bool("verify") {
			if err = sc.Bvh.Validate(len(sc.TriangleList)); err != nil {
				return errors.Wrapf(err, "compile: BVH for %q failed verification", modelFile)
			}
			logger.Noticef("verified BVH for %s", modelFile)
		}

		// Display compiled scene info
		logger.Noticef("scene information:\n%s", sc.Stats())

		if ctx.Bool("write") {
			sceneFile := sceneFilename(modelFile)
			if sceneFile == modelFile {
				logger.Warningf("skipping write; %s would overwrite its own input", modelFile)
				continue
			}
			if err = writer.WriteScene(sc, sceneFile); err != nil {
				return err
			}
		}
	}

	return nil
}

// Get the compiled scene filename for a model by replacing its extension.
func sceneFilename(modelFile string) string {
	if strings.Contains(modelFile, "://") {
		modelFile = filepath.Base(modelFile)
	}
	return strings.TrimSuffix(modelFile, filepath.Ext(modelFile)) + ".zip"
}
