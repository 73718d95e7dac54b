package utils

import (
	"fmt"
	"os"

	"github.com/meshplace/hxa/go/hxa"
)

var cubeVertices = []float32{
	-1, -1, -1,
	1, -1, -1,
	1, 1, -1,
	-1, 1, -1,
	-1, -1, 1,
	1, -1, 1,
	1, 1, 1,
	-1, 1, 1,
}

// one quad per face, last corner negated per the reference convention
var cubeQuads = [][4]int32{
	{0, 3, 2, 1},
	{4, 5, 6, 7},
	{0, 1, 5, 4},
	{1, 2, 6, 5},
	{2, 3, 7, 6},
	{3, 0, 4, 7},
}

// NewCubeFile builds a deterministic version-3 unit-cube asset: one geometry
// node, 8 vertices, 6 quad faces. Used as a fixture by tests and the CLI.
func NewCubeFile() *hxa.File {
	refs := make([]int32, 0, len(cubeQuads)*4)
	for _, q := range cubeQuads {
		refs = append(refs, q[0], q[1], q[2], -q[3]-1)
	}
	g := &hxa.Geometry{
		VertexCount: uint32(len(cubeVertices) / 3),
		Vertex: hxa.LayerStack{Layers: []hxa.Layer{
			hxa.NewLayerF32(hxa.LayerNameVertex, hxa.VertexComponents, cubeVertices),
		}},
		CornerCount: uint32(len(refs)),
		Corner: hxa.LayerStack{Layers: []hxa.Layer{
			hxa.NewLayerI32(hxa.LayerNameReference, 1, refs),
		}},
		Edge:      &hxa.LayerStack{},
		FaceCount: uint32(len(cubeQuads)),
	}
	return &hxa.File{
		Version: hxa.Version3,
		Nodes: []hxa.Node{{
			Kind: hxa.NodeGeometry,
			Meta: []hxa.Meta{{
				Name: "generator",
				Type: hxa.MetaText,
				Text: []byte("hxatool gencube"),
			}},
			Geometry: g,
		}},
	}
}

// RunGenCube writes the cube fixture to outPath.
func RunGenCube(outPath string) error {
	f := NewCubeFile()
	if err := hxa.Save(f, outPath); err != nil {
		return fmt.Errorf("failed to save %s: %w", outPath, err)
	}
	if fi, err := os.Stat(outPath); err == nil {
		fmt.Printf("%s written (%d bytes)\n", outPath, fi.Size())
	}
	return nil
}
