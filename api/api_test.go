package api

import (
	"bytes"
	"strings"
	"testing"

	"github.com/meshplace/hxa/go/hxa"
	"github.com/meshplace/hxa/go/utils"
)

func cubeBytes(t *testing.T) []byte {
	t.Helper()
	data, err := hxa.EncodeBytes(utils.NewCubeFile())
	if err != nil {
		t.Fatalf("encode failed: %v", err)
	}
	return data
}

func TestHXAToTXT(t *testing.T) {
	out, err := HXAToTXT(cubeBytes(t))
	if err != nil {
		t.Fatalf("HXAToTXT failed: %v", err)
	}
	if !strings.Contains(out, "node 0: geometry") {
		t.Fatalf("dump missing node line:\n%s", out)
	}
}

func TestHXAToGLB(t *testing.T) {
	out, err := HXAToGLB(cubeBytes(t))
	if err != nil {
		t.Fatalf("HXAToGLB failed: %v", err)
	}
	if !bytes.HasPrefix(out, []byte("glTF")) {
		t.Fatalf("output is not a GLB container")
	}
}

func TestUpgradeHXA(t *testing.T) {
	v2 := &hxa.File{
		Version: 2,
		Nodes: []hxa.Node{{
			Kind: hxa.NodeGeometry,
			Geometry: &hxa.Geometry{
				VertexCount: 1,
				Vertex: hxa.LayerStack{Layers: []hxa.Layer{
					hxa.NewLayerF32(hxa.LayerNameVertex, 3, []float32{0, 0, 0}),
				}},
			},
		}},
	}
	src, err := hxa.EncodeBytes(v2)
	if err != nil {
		t.Fatalf("encode failed: %v", err)
	}
	out, err := UpgradeHXA(src, 3)
	if err != nil {
		t.Fatalf("UpgradeHXA failed: %v", err)
	}
	f, err := hxa.DecodeBytes(out)
	if err != nil {
		t.Fatalf("upgraded bytes do not decode: %v", err)
	}
	if f.Version != 3 || f.Nodes[0].Geometry.Edge == nil {
		t.Fatalf("upgrade did not take: version %d", f.Version)
	}
}

func TestDigestHXA(t *testing.T) {
	data := cubeBytes(t)
	a, err := DigestHXA(data)
	if err != nil {
		t.Fatalf("DigestHXA failed: %v", err)
	}
	b, _ := DigestHXA(data)
	if a != b {
		t.Fatalf("digest not stable")
	}
	f, _ := hxa.DecodeBytes(data)
	want, _ := f.Digest()
	if a != want {
		t.Fatalf("api digest %x disagrees with model digest %x", a, want)
	}
}
