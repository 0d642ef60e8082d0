package cmd

import (
	"bytes"
	"fmt"
	"time"

	"github.com/achilleasa/hybridrt/asset/compiler/bvh"
	"github.com/achilleasa/hybridrt/asset/scene"
	"github.com/achilleasa/hybridrt/types"
	"github.com/olekukonko/tablewriter"
	"github.com/pkg/errors"
	"github.com/urfave/cli"
)

// Time BVH construction over a random triangle soup.
func Bench(ctx *cli.Context) error {
	setupLogging(ctx)

	count := ctx.Int("triangles")
	runs := ctx.Int("runs")
	if count < 0 {
		return errors.Errorf("bench: invalid triangle count %d", count)
	}
	if runs < 1 {
		return errors.Errorf("bench: invalid run count %d", runs)
	}

	opts := buildOptions(ctx)
	vertices, triangles := bvh.RandomSoup(count, ctx.Int64("seed"))

	out, err := runBench(vertices, triangles, opts, runs)
	if err != nil {
		return err
	}

	logger.Noticef("benchmark results (%d triangles, %d bins):\n%s", count, opts.BinCount, out)
	return nil
}

// Build the BVH runs times and render a table with timings and tree statistics.
func runBench(vertices []types.Vec3, triangles []scene.Triangle, opts bvh.Options, runs int) (string, error) {
	var buf bytes.Buffer
	table := tablewriter.NewWriter(&buf)
	table.SetAutoFormatHeaders(false)
	table.SetHeader([]string{"Run", "Time", "Nodes", "Leafs", "Max depth", "Max tris/leaf"})

	var total time.Duration
	for run := 0; run < runs; run++ {
		start := time.Now()
		tree, permuted := bvh.Build(vertices, triangles, opts)
		elapsed := time.Since(start)
		total += elapsed

		if err := tree.Validate(len(permuted)); err != nil {
			return "", errors.Wrapf(err, "bench: run %d produced an invalid BVH", run)
		}

		stats := tree.Stats()
		table.Append([]string{
			fmt.Sprintf("%d", run),
			elapsed.String(),
			fmt.Sprintf("%d", stats.Nodes),
			fmt.Sprintf("%d", stats.Leafs),
			fmt.Sprintf("%d", stats.MaxDepth),
			fmt.Sprintf("%d", stats.MaxLeafTriangles),
		})
	}
	table.SetFooter([]string{"Avg", (total / time.Duration(runs)).String(), " ", " ", " ", " "})
	table.Render()

	return buf.String(), nil
}
