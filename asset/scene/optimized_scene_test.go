package scene

import (
	"strings"
	"testing"

	"github.com/achilleasa/hybridrt/types"
)

func TestFmtSize(t *testing.T) {
	type spec struct {
		in  int
		exp string
	}
	specs := []spec{
		{0, "  0 bytes"},
		{999, "999 bytes"},
		{1500, "1.5 kb"},
		{2500000, "  2.5 mb"},
	}

	for index, s := range specs {
		if got := fmtSize(s.in); got != s.exp {
			t.Fatalf("[spec %d] expected %q; got %q", index, s.exp, got)
		}
	}
}

func TestSliceBytes(t *testing.T) {
	got := sliceBytes(make([]types.Vec4, 3), make([]Triangle, 2), []byte{})
	if exp := 3*16 + 2*16; got != exp {
		t.Fatalf("expected %d bytes; got %d", exp, got)
	}
}

func TestSceneStats(t *testing.T) {
	sc := &Scene{
		Bvh:           NewBvh([]BvhNode{NewLeaf(AABB{}, 0, 1)}),
		VertexList:    make([]types.Vec4, 3),
		TriangleList:  []Triangle{{P0: 0, P1: 1, P2: 2}},
		MaterialNames: []string{"default"},
	}

	out := sc.Stats()
	for _, exp := range []string{"Vertices (3)", "Triangles (1)", "Nodes", "Max depth", "Total"} {
		if !strings.Contains(out, exp) {
			t.Fatalf("expected stats table to contain %q; got:\n%s", exp, out)
		}
	}
}
