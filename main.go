package main

import (
	"fmt"
	"os"

	"github.com/achilleasa/hybridrt/asset/compiler/bvh"
	"github.com/achilleasa/hybridrt/cmd"
	"github.com/urfave/cli"
)

func main() {
	cli.VersionFlag = cli.BoolFlag{
		Name:  "version",
		Usage: "print only the version",
	}

	bvhFlags := []cli.Flag{
		cli.IntFlag{
			Name:  "bins",
			Value: bvh.DefaultBinCount,
			Usage: "number of SAH bins evaluated per axis",
		},
		cli.BoolFlag{
			Name:  "no-sentinel",
			Usage: "do not reserve node 1; sibling pairs start at odd indices",
		},
	}

	app := cli.NewApp()
	app.Name = "hybridrt"
	app.Usage = "build GPU-ready bounding volume hierarchies for triangle meshes"
	app.Version = "0.0.1"
	app.Flags = []cli.Flag{
		cli.BoolFlag{
			Name:  "v",
			Usage: "enable verbose logging",
		},
		cli.BoolFlag{
			Name:  "vv",
			Usage: "enable even more verbose logging",
		},
	}
	app.Commands = []cli.Command{
		{
			Name:  "compile",
			Usage: "parse models and build their BVH",
			Description: `
Parse a model from a wavefront obj file or a geometry archive, build a BVH tree
using a binned surface area heuristic and display statistics about the packed
scene.

When --write is specified the packed vertex and triangle buffers are written to
a zip archive next to each model. The BVH is not stored; it is rebuilt whenever
the archive is compiled.`,
			ArgsUsage: "model1.obj model2.zip ...",
			Flags: append([]cli.Flag{
				cli.BoolFlag{
					Name:  "verify",
					Usage: "check the structural invariants of each generated BVH",
				},
				cli.BoolFlag{
					Name:  "write, w",
					Usage: "write the packed geometry to a .zip file",
				},
			}, bvhFlags...),
			Action: cmd.CompileModel,
		},
		{
			Name:  "bench",
			Usage: "time BVH construction over a random triangle soup",
			Flags: append([]cli.Flag{
				cli.IntFlag{
					Name:  "triangles, t",
					Value: 10000,
					Usage: "number of triangles to generate",
				},
				cli.Int64Flag{
					Name:  "seed, s",
					Value: 1,
					Usage: "random generator seed",
				},
				cli.IntFlag{
					Name:  "runs, r",
					Value: 5,
					Usage: "number of timed builds",
				},
			}, bvhFlags...),
			Action: cmd.Bench,
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "error: %s\n", err.Error())
		os.Exit(1)
	}
}
