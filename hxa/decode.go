package hxa

import (
	"bytes"
	"encoding/binary"
	"errors"
	"io"
	"math"
	"os"
)

// magic identifies an HxA stream; checked before anything is allocated.
var magic = [4]byte{'H', 'x', 'A', 0}

// MaxDepth caps combined node/meta nesting during decode. The format itself
// declares no limit.
const MaxDepth = 1024

const (
	// preallocation cap for count-prefixed containers; growth beyond it is
	// driven by what the stream actually delivers, so a hostile count
	// cannot force a large allocation up front.
	maxPrealloc = 4096
	blobChunk   = 1 << 20
)

var errElementOverflow = errors.New("element count overflows")

type decoder struct {
	r       io.Reader
	off     int64
	version uint32
	depth   int
	buf     [8]byte
}

// Decode reads one file from r. The stream must be positioned at the magic
// value; decoding is single-pass with no lookahead. On error the returned
// File holds whatever was decoded before the failure and is always safe to
// Reset. Short reads at any depth report ErrTruncated.
func Decode(r io.Reader) (*File, error) {
	d := &decoder{r: r}
	f := new(File)
	return f, d.file(f)
}

// DecodeBytes decodes a complete in-memory file.
func DecodeBytes(data []byte) (*File, error) {
	return Decode(bytes.NewReader(data))
}

// Load reads and decodes the file at path.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return DecodeBytes(data)
}

func (d *decoder) file(f *File) error {
	var m [4]byte
	if err := d.read(m[:]); err != nil {
		return err
	}
	if m != magic {
		return &FormatError{Offset: 0, Err: ErrNotHxaFile}
	}
	var err error
	if d.version, err = d.u32(); err != nil {
		return err
	}
	f.Version = d.version
	count, err := d.u32()
	if err != nil {
		return err
	}
	f.Nodes = make([]Node, 0, prealloc(count))
	for i := uint32(0); i < count; i++ {
		f.Nodes = append(f.Nodes, Node{})
		if err := d.node(&f.Nodes[len(f.Nodes)-1]); err != nil {
			return err
		}
	}
	return nil
}

func (d *decoder) node(n *Node) error {
	if err := d.push(); err != nil {
		return err
	}
	defer d.pop()

	kind, err := d.u8()
	if err != nil {
		return err
	}
	if kind >= nodeKinds {
		return d.tagErr(ErrUnknownNodeKind)
	}
	n.Kind = NodeKind(kind)

	count, err := d.u32()
	if err != nil {
		return err
	}
	n.Meta = make([]Meta, 0, prealloc(count))
	for i := uint32(0); i < count; i++ {
		n.Meta = append(n.Meta, Meta{})
		if err := d.meta(&n.Meta[len(n.Meta)-1]); err != nil {
			return err
		}
	}

	switch n.Kind {
	case NodeGeometry:
		return d.geometry(n)
	case NodeImage:
		return d.image(n)
	}
	return nil
}

func (d *decoder) meta(m *Meta) error {
	if err := d.push(); err != nil {
		return err
	}
	defer d.pop()

	name, err := d.name()
	if err != nil {
		return err
	}
	m.Name = name

	typ, err := d.u8()
	if err != nil {
		return err
	}
	if typ >= metaTypes {
		return d.tagErr(ErrUnknownMetaType)
	}
	m.Type = MetaType(typ)

	count, err := d.u32()
	if err != nil {
		return err
	}

	switch m.Type {
	case MetaU64:
		raw, err := d.blob(uint64(count) * 8)
		if err != nil {
			return err
		}
		m.U64s = make([]uint64, count)
		for i := range m.U64s {
			m.U64s[i] = binary.LittleEndian.Uint64(raw[8*i:])
		}
	case MetaF64:
		raw, err := d.blob(uint64(count) * 8)
		if err != nil {
			return err
		}
		m.F64s = make([]float64, count)
		for i := range m.F64s {
			m.F64s[i] = f64frombytes(raw[8*i:])
		}
	case MetaNode:
		// Embedded value copies, decoded exactly like top-level nodes.
		m.Nodes = make([]Node, 0, prealloc(count))
		for i := uint32(0); i < count; i++ {
			m.Nodes = append(m.Nodes, Node{})
			if err := d.node(&m.Nodes[len(m.Nodes)-1]); err != nil {
				return err
			}
		}
	case MetaText:
		if m.Text, err = d.blob(uint64(count)); err != nil {
			return err
		}
	case MetaBinary:
		if m.Binary, err = d.blob(uint64(count)); err != nil {
			return err
		}
	case MetaMeta:
		m.Metas = make([]Meta, 0, prealloc(count))
		for i := uint32(0); i < count; i++ {
			m.Metas = append(m.Metas, Meta{})
			if err := d.meta(&m.Metas[len(m.Metas)-1]); err != nil {
				return err
			}
		}
	}
	return nil
}

func (d *decoder) geometry(n *Node) error {
	// Attach before populating so a failure mid-payload leaves a
	// consistent partial structure behind.
	g := new(Geometry)
	n.Geometry = g

	var err error
	if g.VertexCount, err = d.u32(); err != nil {
		return err
	}
	if err := d.stack(&g.Vertex, uint64(g.VertexCount)); err != nil {
		return err
	}
	if g.CornerCount, err = d.u32(); err != nil {
		return err
	}
	if err := d.stack(&g.Corner, uint64(g.CornerCount)); err != nil {
		return err
	}
	if d.version > Version2 {
		g.Edge = new(LayerStack)
		if err := d.stack(g.Edge, uint64(g.CornerCount)); err != nil {
			return err
		}
	}
	if g.FaceCount, err = d.u32(); err != nil {
		return err
	}
	return d.stack(&g.Face, uint64(g.FaceCount))
}

func (d *decoder) image(n *Node) error {
	img := &Image{Resolution: [3]uint32{1, 1, 1}}
	n.Image = img

	typ, err := d.u8()
	if err != nil {
		return err
	}
	if typ >= imageTypes {
		return d.tagErr(ErrUnknownImageType)
	}
	img.Type = ImageType(typ)

	for i := 0; i < img.Type.Dimensions(); i++ {
		if img.Resolution[i], err = d.u32(); err != nil {
			return err
		}
	}
	elements, ok := img.ElementCount()
	if !ok {
		return &FormatError{Offset: d.off, Err: errElementOverflow}
	}
	return d.stack(&img.Stack, elements)
}

// stack decodes one layer stack whose element count is supplied by the
// surrounding structure.
func (d *decoder) stack(s *LayerStack, elements uint64) error {
	count, err := d.u32()
	if err != nil {
		return err
	}
	s.Layers = make([]Layer, 0, prealloc(count))
	for i := uint32(0); i < count; i++ {
		s.Layers = append(s.Layers, Layer{})
		l := &s.Layers[len(s.Layers)-1]

		if l.Name, err = d.name(); err != nil {
			return err
		}
		comps, err := d.u8()
		if err != nil {
			return err
		}
		if comps == 0 {
			return d.tagErr(ErrZeroComponents)
		}
		l.Components = comps

		typ, err := d.u8()
		if err != nil {
			return err
		}
		if typ >= layerTypes {
			return d.tagErr(ErrUnknownLayerType)
		}
		l.Type = LayerType(typ)

		size, ok := mulU64(uint64(comps), elements)
		if ok {
			size, ok = mulU64(size, uint64(l.Type.Size()))
		}
		if !ok {
			return &FormatError{Offset: d.off, Err: errElementOverflow}
		}
		if l.Data, err = d.blob(size); err != nil {
			return err
		}
	}
	return nil
}

func (d *decoder) name() (string, error) {
	n, err := d.u8()
	if err != nil {
		return "", err
	}
	if n == 0 {
		return "", nil
	}
	b := make([]byte, n)
	if err := d.read(b); err != nil {
		return "", err
	}
	return string(b), nil
}

// blob reads exactly n raw bytes, in bounded chunks so a hostile length
// field cannot force a huge allocation before the stream runs dry.
func (d *decoder) blob(n uint64) ([]byte, error) {
	if n == 0 {
		return nil, nil
	}
	if n <= blobChunk {
		b := make([]byte, n)
		if err := d.read(b); err != nil {
			return nil, err
		}
		return b, nil
	}
	b := make([]byte, 0, blobChunk)
	for n > 0 {
		step := uint64(blobChunk)
		if n < step {
			step = n
		}
		start := len(b)
		b = append(b, make([]byte, step)...)
		if err := d.read(b[start:]); err != nil {
			return nil, err
		}
		n -= step
	}
	return b, nil
}

func (d *decoder) u8() (uint8, error) {
	if err := d.read(d.buf[:1]); err != nil {
		return 0, err
	}
	return d.buf[0], nil
}

func (d *decoder) u32() (uint32, error) {
	if err := d.read(d.buf[:4]); err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(d.buf[:4]), nil
}

func (d *decoder) read(p []byte) error {
	n, err := io.ReadFull(d.r, p)
	d.off += int64(n)
	if err == nil {
		return nil
	}
	if err == io.EOF || err == io.ErrUnexpectedEOF {
		return &FormatError{Offset: d.off, Err: ErrTruncated}
	}
	return err
}

// tagErr reports a bad one-byte tag at the offset it was read from.
func (d *decoder) tagErr(kind error) error {
	return &FormatError{Offset: d.off - 1, Err: kind}
}

func (d *decoder) push() error {
	d.depth++
	if d.depth > MaxDepth {
		return &FormatError{Offset: d.off, Err: ErrTooDeep}
	}
	return nil
}

func (d *decoder) pop() { d.depth-- }

func f64frombytes(b []byte) float64 {
	return math.Float64frombits(binary.LittleEndian.Uint64(b))
}

func prealloc(count uint32) int {
	if count > maxPrealloc {
		return maxPrealloc
	}
	return int(count)
}
