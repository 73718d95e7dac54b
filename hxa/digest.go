package hxa

import (
	xxhash "github.com/cespare/xxhash/v2"
)

// Digest returns an xxhash64 fingerprint of the layer's raw bytes.
func (l *Layer) Digest() uint64 {
	return xxhash.Sum64(l.Data)
}

// Digest returns an xxhash64 fingerprint of the file's encoded form. Because
// encoding is byte-exact, two files digest equal iff they encode to the same
// stream. Fails only if the file would not encode.
func (f *File) Digest() (uint64, error) {
	h := xxhash.New()
	if err := Encode(h, f); err != nil {
		return 0, err
	}
	return h.Sum64(), nil
}
