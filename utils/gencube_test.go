package utils

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/meshplace/hxa/go/hxa"
)

func TestCubeFile_RoundTrip(t *testing.T) {
	f := NewCubeFile()
	if err := hxa.Validate(f); err != nil {
		t.Fatalf("cube fixture invalid: %v", err)
	}
	src, err := hxa.EncodeBytes(f)
	if err != nil {
		t.Fatalf("encode failed: %v", err)
	}
	dec, err := hxa.DecodeBytes(src)
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	again, err := hxa.EncodeBytes(dec)
	if err != nil {
		t.Fatalf("re-encode failed: %v", err)
	}
	if !bytes.Equal(src, again) {
		t.Fatalf("cube does not round-trip byte-identically")
	}
}

func TestRunGenCube(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cube.hxa")
	if err := RunGenCube(path); err != nil {
		t.Fatalf("RunGenCube failed: %v", err)
	}
	f, err := hxa.Load(path)
	if err != nil {
		t.Fatalf("generated file does not load: %v", err)
	}
	if f.Version != hxa.Version3 || len(f.Nodes) != 1 {
		t.Fatalf("got version %d, %d nodes", f.Version, len(f.Nodes))
	}
	g := f.Nodes[0].Geometry
	if g == nil || g.VertexCount != 8 || g.FaceCount != 6 || g.CornerCount != 24 {
		t.Fatalf("cube geometry decoded wrong: %+v", g)
	}
}
