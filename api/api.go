package api

import (
	"bytes"
	"fmt"

	"github.com/qmuntal/gltf"

	"github.com/meshplace/hxa/go/hxa"
	"github.com/meshplace/hxa/go/utils"
)

// Bytes-in/bytes-out operations for embedding (wasm, services). Everything
// here is a thin consumer of the core codec.

// HXAToTXT decodes an .hxa blob and returns its text dump.
func HXAToTXT(data []byte) (string, error) {
	f, err := hxa.DecodeBytes(data)
	if err != nil {
		return "", err
	}
	var buf bytes.Buffer
	utils.DumpFile(&buf, f, false)
	return buf.String(), nil
}

// HXAToGLB converts the geometry nodes of an .hxa blob into a .glb blob.
func HXAToGLB(data []byte) ([]byte, error) {
	f, err := hxa.DecodeBytes(data)
	if err != nil {
		return nil, err
	}
	doc, err := utils.BuildGLTFDocument(f)
	if err != nil {
		return nil, err
	}
	var out bytes.Buffer
	enc := gltf.NewEncoder(&out)
	enc.AsBinary = true
	if err := enc.Encode(doc); err != nil {
		return nil, err
	}
	return out.Bytes(), nil
}

// UpgradeHXA decodes an .hxa blob, raises its version to target and returns
// the re-encoded blob.
func UpgradeHXA(data []byte, target uint32) ([]byte, error) {
	f, err := hxa.DecodeBytes(data)
	if err != nil {
		return nil, err
	}
	hxa.Upgrade(f, target)
	return hxa.EncodeBytes(f)
}

// DigestHXA returns the xxhash64 fingerprint of an .hxa blob's canonical
// encoding.
func DigestHXA(data []byte) (uint64, error) {
	f, err := hxa.DecodeBytes(data)
	if err != nil {
		return 0, err
	}
	d, err := f.Digest()
	if err != nil {
		return 0, fmt.Errorf("re-encode failed: %w", err)
	}
	return d, nil
}
