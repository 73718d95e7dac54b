package hxa

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"os"
)

type encoder struct {
	w   io.Writer
	f   *File
	buf [8]byte
}

// Encode writes f to w in exactly the layout the decoder reads, so that a
// successfully decoded file re-encodes to byte-identical output. The model is
// not mutated. Every length field written is taken from the payload actually
// present; inconsistencies (oversized names, layer buffers that do not match
// components × elements × size, tags outside their range, a missing payload
// for the declared kind, edge-stack presence disagreeing with the version)
// are refused with a descriptive error before any further bytes are written.
func Encode(w io.Writer, f *File) error {
	e := &encoder{w: w, f: f}
	if err := e.write(magic[:]); err != nil {
		return err
	}
	if err := e.u32(f.Version); err != nil {
		return err
	}
	if err := e.u32(uint32(len(f.Nodes))); err != nil {
		return err
	}
	for i := range f.Nodes {
		if err := e.node(&f.Nodes[i]); err != nil {
			return err
		}
	}
	return nil
}

// EncodeBytes returns f as a complete in-memory file.
func EncodeBytes(f *File) ([]byte, error) {
	var buf bytes.Buffer
	if err := Encode(&buf, f); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Save encodes f to the file at path.
func Save(f *File, path string) error {
	data, err := EncodeBytes(f)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func (e *encoder) node(n *Node) error {
	if n.Kind >= nodeKinds {
		return fmt.Errorf("hxa: node kind %d out of range", n.Kind)
	}
	if err := e.u8(uint8(n.Kind)); err != nil {
		return err
	}
	if err := e.u32(uint32(len(n.Meta))); err != nil {
		return err
	}
	for i := range n.Meta {
		if err := e.meta(&n.Meta[i]); err != nil {
			return err
		}
	}
	switch n.Kind {
	case NodeGeometry:
		if n.Geometry == nil {
			return fmt.Errorf("hxa: geometry node without geometry payload")
		}
		return e.geometry(n.Geometry)
	case NodeImage:
		if n.Image == nil {
			return fmt.Errorf("hxa: image node without image payload")
		}
		return e.image(n.Image)
	}
	return nil
}

func (e *encoder) meta(m *Meta) error {
	if m.Type >= metaTypes {
		return fmt.Errorf("hxa: meta type %d out of range", m.Type)
	}
	if err := e.name(m.Name); err != nil {
		return err
	}
	if err := e.u8(uint8(m.Type)); err != nil {
		return err
	}
	if err := e.u32(uint32(m.Count())); err != nil {
		return err
	}
	switch m.Type {
	case MetaU64:
		for _, v := range m.U64s {
			binary.LittleEndian.PutUint64(e.buf[:8], v)
			if err := e.write(e.buf[:8]); err != nil {
				return err
			}
		}
	case MetaF64:
		for _, v := range m.F64s {
			binary.LittleEndian.PutUint64(e.buf[:8], math.Float64bits(v))
			if err := e.write(e.buf[:8]); err != nil {
				return err
			}
		}
	case MetaNode:
		for i := range m.Nodes {
			if err := e.node(&m.Nodes[i]); err != nil {
				return err
			}
		}
	case MetaText:
		return e.write(m.Text)
	case MetaBinary:
		return e.write(m.Binary)
	case MetaMeta:
		for i := range m.Metas {
			if err := e.meta(&m.Metas[i]); err != nil {
				return err
			}
		}
	}
	return nil
}

func (e *encoder) geometry(g *Geometry) error {
	if e.f.Version > Version2 && g.Edge == nil {
		return fmt.Errorf("hxa: version %d geometry requires an edge layer stack (run Upgrade first)", e.f.Version)
	}
	if e.f.Version <= Version2 && g.Edge != nil {
		return fmt.Errorf("hxa: version %d cannot carry an edge layer stack", e.f.Version)
	}
	if err := e.u32(g.VertexCount); err != nil {
		return err
	}
	if err := e.stack(&g.Vertex, uint64(g.VertexCount)); err != nil {
		return err
	}
	if err := e.u32(g.CornerCount); err != nil {
		return err
	}
	if err := e.stack(&g.Corner, uint64(g.CornerCount)); err != nil {
		return err
	}
	if g.Edge != nil {
		if err := e.stack(g.Edge, uint64(g.CornerCount)); err != nil {
			return err
		}
	}
	if err := e.u32(g.FaceCount); err != nil {
		return err
	}
	return e.stack(&g.Face, uint64(g.FaceCount))
}

func (e *encoder) image(img *Image) error {
	if img.Type >= imageTypes {
		return fmt.Errorf("hxa: image type %d out of range", img.Type)
	}
	if err := e.u8(uint8(img.Type)); err != nil {
		return err
	}
	for i := 0; i < img.Type.Dimensions(); i++ {
		if err := e.u32(img.Resolution[i]); err != nil {
			return err
		}
	}
	elements, ok := img.ElementCount()
	if !ok {
		return fmt.Errorf("hxa: image element count overflows")
	}
	return e.stack(&img.Stack, elements)
}

func (e *encoder) stack(s *LayerStack, elements uint64) error {
	if err := e.u32(uint32(len(s.Layers))); err != nil {
		return err
	}
	for i := range s.Layers {
		l := &s.Layers[i]
		if l.Components == 0 {
			return fmt.Errorf("hxa: layer %q has zero components", l.Name)
		}
		if l.Type >= layerTypes {
			return fmt.Errorf("hxa: layer %q type %d out of range", l.Name, l.Type)
		}
		want, ok := mulU64(uint64(l.Components), elements)
		if ok {
			want, ok = mulU64(want, uint64(l.Type.Size()))
		}
		if !ok {
			return fmt.Errorf("hxa: layer %q byte size overflows", l.Name)
		}
		if uint64(len(l.Data)) != want {
			return fmt.Errorf("hxa: layer %q holds %d bytes, want %d (%d components × %d elements × %d)",
				l.Name, len(l.Data), want, l.Components, elements, l.Type.Size())
		}
		if err := e.name(l.Name); err != nil {
			return err
		}
		if err := e.u8(l.Components); err != nil {
			return err
		}
		if err := e.u8(uint8(l.Type)); err != nil {
			return err
		}
		if err := e.write(l.Data); err != nil {
			return err
		}
	}
	return nil
}

func (e *encoder) name(s string) error {
	if len(s) > 255 {
		return fmt.Errorf("hxa: name %q exceeds 255 bytes", s[:16]+"…")
	}
	if err := e.u8(uint8(len(s))); err != nil {
		return err
	}
	return e.write([]byte(s))
}

func (e *encoder) u8(v uint8) error {
	e.buf[0] = v
	return e.write(e.buf[:1])
}

func (e *encoder) u32(v uint32) error {
	binary.LittleEndian.PutUint32(e.buf[:4], v)
	return e.write(e.buf[:4])
}

func (e *encoder) write(p []byte) error {
	if len(p) == 0 {
		return nil
	}
	n, err := e.w.Write(p)
	if err == nil && n < len(p) {
		return io.ErrShortWrite
	}
	return err
}
