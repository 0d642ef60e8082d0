package scene

import (
	"bytes"
	"fmt"
	"reflect"
	"strings"

	"github.com/achilleasa/hybridrt/types"
	"github.com/olekukonko/tablewriter"
)

// A Scene holds the geometry buffers of a compiled mesh. All lists are
// laid out so they can be uploaded verbatim to GPU storage buffers.
type Scene struct {
	// The BVH over TriangleList. Leafs reference contiguous triangle ranges.
	Bvh *Bvh

	// Vertex positions expanded to Vec4 for std430 alignment.
	VertexList []types.Vec4

	// Triangles in leaf order.
	TriangleList []Triangle

	// Material names indexed by Triangle.Material.
	MaterialNames []string
}

// Build a tabular representation of scene statistics.
func (sc *Scene) Stats() string {
	bvhBytes := 0
	var bvhStats BvhStats
	if sc.Bvh != nil {
		bvhBytes = sc.Bvh.Len() * BvhNodeSize
		bvhStats = sc.Bvh.Stats()
	}
	geomBytes := sliceBytes(sc.VertexList, sc.TriangleList)

	var buf bytes.Buffer
	table := tablewriter.NewWriter(&buf)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetAutoFormatHeaders(false)
	table.SetHeader([]string{"Asset Type", "Asset", "Size"})
	table.Append([]string{"Geometry", "---", fmtSize(geomBytes)})
	table.Append([]string{"", fmt.Sprintf("Vertices (%d)", len(sc.VertexList)), fmtSize(sliceBytes(sc.VertexList))})
	table.Append([]string{"", fmt.Sprintf("Triangles (%d)", len(sc.TriangleList)), fmtSize(sliceBytes(sc.TriangleList))})
	table.Append([]string{" ", " ", " "})
	table.Append([]string{"BVH", "---", fmtSize(bvhBytes)})
	table.Append([]string{"", "Nodes", fmt.Sprintf("%d", bvhStats.Nodes)})
	table.Append([]string{"", "Leafs", fmt.Sprintf("%d", bvhStats.Leafs)})
	table.Append([]string{"", "Max depth", fmt.Sprintf("%d", bvhStats.MaxDepth)})
	table.Append([]string{"", "Max tris/leaf", fmt.Sprintf("%d", bvhStats.MaxLeafTriangles)})
	table.Append([]string{"", "Avg tris/leaf", fmt.Sprintf("%.2f", bvhStats.AvgLeafTriangles)})
	table.Append([]string{" ", " ", " "})
	table.Append([]string{"Materials", fmt.Sprintf("%d", len(sc.MaterialNames)), " "})
	table.SetFooter([]string{"Total", " ", strings.TrimLeft(fmtSize(geomBytes+bvhBytes), " ")})

	table.Render()
	return buf.String()
}

// Sum the total space used by a set of slices.
func sliceBytes(items ...interface{}) int {
	totalBytes := 0
	for _, item := range items {
		v := reflect.ValueOf(item)
		if v.Len() == 0 {
			continue
		}

		totalBytes += int(v.Type().Elem().Size()) * v.Len()
	}
	return totalBytes
}

// Format a byte count using the appropriate byte/kb/mb unit.
func fmtSize(totalBytes int) string {
	if totalBytes < 1e3 {
		return fmt.Sprintf("%3d bytes", totalBytes)
	} else if totalBytes < 1e6 {
		return fmt.Sprintf("%3.1f kb", float32(totalBytes)/1e3)
	}
	return fmt.Sprintf("%5.1f mb", float32(totalBytes)/1e6)
}
