package utils

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/meshplace/hxa/go/hxa"
)

func TestTriangulateGeometry_Cube(t *testing.T) {
	f := NewCubeFile()
	positions, indices, err := TriangulateGeometry(f.Nodes[0].Geometry)
	if err != nil {
		t.Fatalf("triangulate failed: %v", err)
	}
	if len(positions) != 8 {
		t.Fatalf("got %d positions, want 8", len(positions))
	}
	// 6 quads fan into 12 triangles
	if len(indices) != 36 {
		t.Fatalf("got %d indices, want 36", len(indices))
	}
	for _, idx := range indices {
		if idx >= 8 {
			t.Fatalf("index %d out of range", idx)
		}
	}
}

func TestTriangulateGeometry_DanglingCorners(t *testing.T) {
	f := NewCubeFile()
	g := f.Nodes[0].Geometry
	refs := g.Corner.Layers[0].I32()
	refs[len(refs)-1] = 2 // last corner no longer closes its polygon
	g.Corner.Layers[0] = hxa.NewLayerI32("reference", 1, refs)
	if _, _, err := TriangulateGeometry(g); err == nil {
		t.Fatalf("dangling polygon was accepted")
	}
}

func TestRunHXA2GLB(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "cube.hxa")
	out := filepath.Join(dir, "cube.glb")
	if err := RunGenCube(in); err != nil {
		t.Fatalf("RunGenCube failed: %v", err)
	}
	if err := RunHXA2GLB(in, out); err != nil {
		t.Fatalf("RunHXA2GLB failed: %v", err)
	}
	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("failed to read output: %v", err)
	}
	if len(data) < 12 || !bytes.HasPrefix(data, []byte("glTF")) {
		t.Fatalf("output is not a GLB container")
	}
}
