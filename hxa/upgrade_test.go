package hxa

import (
	"bytes"
	"testing"
)

// version-2 file with a top-level geometry, a geometry embedded in a meta
// entry, and an image node.
func v2File() *File {
	geo := func() *Geometry {
		return &Geometry{
			VertexCount: 1,
			Vertex: LayerStack{Layers: []Layer{
				NewLayerF32(LayerNameVertex, 3, []float32{0, 0, 0}),
			}},
		}
	}
	return &File{
		Version: 2,
		Nodes: []Node{
			{Kind: NodeGeometry, Geometry: geo()},
			{
				Kind: NodeMeta,
				Meta: []Meta{{
					Name:  "lod",
					Type:  MetaNode,
					Nodes: []Node{{Kind: NodeGeometry, Geometry: geo()}},
				}},
			},
			{Kind: NodeImage, Image: &Image{Type: Image1D, Resolution: [3]uint32{1, 1, 1}}},
		},
	}
}

func TestUpgrade_AttachesEmptyEdgeStacks(t *testing.T) {
	f := v2File()
	Upgrade(f, 3)
	if f.Version != 3 {
		t.Fatalf("version = %d, want 3", f.Version)
	}
	g := f.Nodes[0].Geometry
	if g.Edge == nil || len(g.Edge.Layers) != 0 {
		t.Fatalf("top-level geometry edge stack = %+v, want empty", g.Edge)
	}
	eg := f.Nodes[1].Meta[0].Nodes[0].Geometry
	if eg.Edge == nil || len(eg.Edge.Layers) != 0 {
		t.Fatalf("embedded geometry edge stack = %+v, want empty", eg.Edge)
	}
	if f.Nodes[2].Image == nil || len(f.Nodes[2].Image.Stack.Layers) != 0 {
		t.Fatalf("image node was touched")
	}
	// the upgraded tree must encode (the encoder refuses v3 without edges)
	if _, err := EncodeBytes(f); err != nil {
		t.Fatalf("upgraded file does not encode: %v", err)
	}
}

func TestUpgrade_Idempotent(t *testing.T) {
	once := v2File()
	Upgrade(once, 3)
	a := mustEncode(t, once)

	twice := v2File()
	Upgrade(twice, 3)
	Upgrade(twice, 3)
	b := mustEncode(t, twice)

	if !bytes.Equal(a, b) {
		t.Fatalf("double upgrade changed the tree")
	}
}

func TestUpgrade_NoOpAtOrPastTarget(t *testing.T) {
	f := richFile()
	before := mustEncode(t, f)
	Upgrade(f, 3)
	Upgrade(f, 2)
	after := mustEncode(t, f)
	if !bytes.Equal(before, after) {
		t.Fatalf("upgrade mutated a file already at the target version")
	}
}

func TestUpgrade_AfterDecode(t *testing.T) {
	src := mustEncode(t, v2File())
	f, err := DecodeBytes(src)
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	Upgrade(f, 3)
	out := mustEncode(t, f)
	back, err := DecodeBytes(out)
	if err != nil {
		t.Fatalf("re-decode failed: %v", err)
	}
	if back.Version != 3 || back.Nodes[0].Geometry.Edge == nil {
		t.Fatalf("upgraded stream did not decode as version 3")
	}
}
