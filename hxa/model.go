// Package hxa implements the HxA binary scene-asset format: a typed,
// recursively structured in-memory model plus a decoder and encoder that
// round-trip it byte for byte.
//
// All integers in the stream are little-endian. A file is a version, then a
// sequence of nodes; each node carries an arbitrarily deep metadata tree and
// one kind-specific payload (nothing, geometry, or image). Geometry and image
// payloads store their bulk data in layer stacks: ordered groups of
// same-length, independently typed arrays.
package hxa

import (
	"encoding/binary"
	"math"
)

// Version numbers of the format revisions the codec understands. Version 3
// added the per-corner edge layer stack to geometry nodes.
const (
	Version2 = 2
	Version3 = 3
	Version  = Version3
)

// NodeKind selects which payload a Node carries.
type NodeKind uint8

const (
	NodeMeta     NodeKind = 0 // metadata only
	NodeGeometry NodeKind = 1
	NodeImage    NodeKind = 2

	nodeKinds = 3
)

func (k NodeKind) String() string {
	switch k {
	case NodeMeta:
		return "meta"
	case NodeGeometry:
		return "geometry"
	case NodeImage:
		return "image"
	default:
		return "unknown"
	}
}

// MetaType selects which payload a Meta entry carries.
type MetaType uint8

const (
	MetaU64    MetaType = 0
	MetaF64    MetaType = 1
	MetaNode   MetaType = 2 // fully embedded sub-nodes, not references
	MetaText   MetaType = 3
	MetaBinary MetaType = 4
	MetaMeta   MetaType = 5

	metaTypes = 6
)

func (t MetaType) String() string {
	switch t {
	case MetaU64:
		return "u64"
	case MetaF64:
		return "f64"
	case MetaNode:
		return "node"
	case MetaText:
		return "text"
	case MetaBinary:
		return "binary"
	case MetaMeta:
		return "meta"
	default:
		return "unknown"
	}
}

// LayerType is the scalar type of one layer's elements.
type LayerType uint8

const (
	LayerU8  LayerType = 0
	LayerI32 LayerType = 1
	LayerF32 LayerType = 2
	LayerF64 LayerType = 3

	layerTypes = 4
)

// Size returns the byte width of one scalar of this type.
func (t LayerType) Size() int {
	switch t {
	case LayerU8:
		return 1
	case LayerI32, LayerF32:
		return 4
	case LayerF64:
		return 8
	default:
		return 0
	}
}

func (t LayerType) String() string {
	switch t {
	case LayerU8:
		return "u8"
	case LayerI32:
		return "i32"
	case LayerF32:
		return "f32"
	case LayerF64:
		return "f64"
	default:
		return "unknown"
	}
}

// ImageType is the shape of an image node.
type ImageType uint8

const (
	ImageCube ImageType = 0
	Image1D   ImageType = 1
	Image2D   ImageType = 2
	Image3D   ImageType = 3

	imageTypes = 4
)

// Dimensions returns how many leading Resolution entries are meaningful for
// the shape: 2 for a cube map, otherwise the shape's dimensionality.
func (t ImageType) Dimensions() int {
	if t == ImageCube {
		return 2
	}
	return int(t)
}

func (t ImageType) String() string {
	switch t {
	case ImageCube:
		return "cube"
	case Image1D:
		return "1d"
	case Image2D:
		return "2d"
	case Image3D:
		return "3d"
	default:
		return "unknown"
	}
}

// File is the root of a decoded asset and owns the whole tree.
type File struct {
	Version uint32
	Nodes   []Node
}

// Node is one record in a file (or embedded in a node-typed Meta entry).
// Exactly one of Geometry/Image is non-nil, selected by Kind; NodeMeta nodes
// carry neither.
type Node struct {
	Kind NodeKind
	Meta []Meta

	Geometry *Geometry
	Image    *Image
}

// Meta is a named, typed annotation. Exactly one payload field is populated,
// selected by Type. Node entries embed complete independently owned
// sub-nodes, and Metas nests further Meta entries, so the tree is mutually
// recursive with Node to arbitrary depth.
type Meta struct {
	Name string // at most 255 bytes on the wire
	Type MetaType

	U64s   []uint64
	F64s   []float64
	Nodes  []Node
	Text   []byte
	Binary []byte
	Metas  []Meta
}

// Count returns the wire value_count for the entry's populated payload.
func (m *Meta) Count() int {
	switch m.Type {
	case MetaU64:
		return len(m.U64s)
	case MetaF64:
		return len(m.F64s)
	case MetaNode:
		return len(m.Nodes)
	case MetaText:
		return len(m.Text)
	case MetaBinary:
		return len(m.Binary)
	case MetaMeta:
		return len(m.Metas)
	default:
		return 0
	}
}

// Geometry is the payload of a NodeGeometry node. The stacks' element counts
// are the stored count fields, not derivable from the layers (a stack may
// have zero layers but a nonzero element count). Edge is present only in
// files with version > 2 and shares CornerCount.
type Geometry struct {
	VertexCount uint32
	Vertex      LayerStack

	CornerCount uint32
	Corner      LayerStack

	Edge *LayerStack

	FaceCount uint32
	Face      LayerStack
}

// Image is the payload of a NodeImage node. Meaningful Resolution entries are
// given by Type.Dimensions(); trailing entries default to 1.
type Image struct {
	Type       ImageType
	Resolution [3]uint32
	Stack      LayerStack
}

// ElementCount returns the number of elements each layer in the image stack
// holds: the product of the meaningful resolution entries, times 6 for a
// cube map's faces. ok is false if the product overflows uint64.
func (img *Image) ElementCount() (n uint64, ok bool) {
	return imageElements(img.Type, img.Resolution)
}

func imageElements(t ImageType, res [3]uint32) (uint64, bool) {
	n := uint64(1)
	if t == ImageCube {
		n = 6
	}
	for i := 0; i < t.Dimensions() && i < len(res); i++ {
		var ok bool
		n, ok = mulU64(n, uint64(res[i]))
		if !ok {
			return 0, false
		}
	}
	return n, true
}

// LayerStack is an ordered sequence of same-length layers.
type LayerStack struct {
	Layers []Layer
}

// Layer is one named, fixed-component, fixed-type array. Data holds the raw
// little-endian scalars exactly as stored; its length must equal
// Components × elements × Type.Size(), where elements is owned by the
// surrounding structure. The codec never interprets Data beyond byte-exact
// storage; use the typed views for access.
type Layer struct {
	Name       string // at most 255 bytes on the wire
	Components uint8  // >= 1
	Type       LayerType
	Data       []byte
}

// NewLayerU8 builds a LayerU8 layer over a copy of vals.
func NewLayerU8(name string, components uint8, vals []byte) Layer {
	data := make([]byte, len(vals))
	copy(data, vals)
	return Layer{Name: name, Components: components, Type: LayerU8, Data: data}
}

// NewLayerI32 builds a LayerI32 layer from vals.
func NewLayerI32(name string, components uint8, vals []int32) Layer {
	data := make([]byte, 4*len(vals))
	for i, v := range vals {
		binary.LittleEndian.PutUint32(data[4*i:], uint32(v))
	}
	return Layer{Name: name, Components: components, Type: LayerI32, Data: data}
}

// NewLayerF32 builds a LayerF32 layer from vals.
func NewLayerF32(name string, components uint8, vals []float32) Layer {
	data := make([]byte, 4*len(vals))
	for i, v := range vals {
		binary.LittleEndian.PutUint32(data[4*i:], math.Float32bits(v))
	}
	return Layer{Name: name, Components: components, Type: LayerF32, Data: data}
}

// NewLayerF64 builds a LayerF64 layer from vals.
func NewLayerF64(name string, components uint8, vals []float64) Layer {
	data := make([]byte, 8*len(vals))
	for i, v := range vals {
		binary.LittleEndian.PutUint64(data[8*i:], math.Float64bits(v))
	}
	return Layer{Name: name, Components: components, Type: LayerF64, Data: data}
}

// U8 returns the layer's scalars as bytes. The slice aliases Data.
func (l *Layer) U8() []byte { return l.Data }

// I32 decodes the layer's scalars as signed 32-bit integers.
func (l *Layer) I32() []int32 {
	out := make([]int32, len(l.Data)/4)
	for i := range out {
		out[i] = int32(binary.LittleEndian.Uint32(l.Data[4*i:]))
	}
	return out
}

// F32 decodes the layer's scalars as 32-bit floats.
func (l *Layer) F32() []float32 {
	out := make([]float32, len(l.Data)/4)
	for i := range out {
		out[i] = math.Float32frombits(binary.LittleEndian.Uint32(l.Data[4*i:]))
	}
	return out
}

// F64 decodes the layer's scalars as 64-bit floats.
func (l *Layer) F64() []float64 {
	out := make([]float64, len(l.Data)/8)
	for i := range out {
		out[i] = math.Float64frombits(binary.LittleEndian.Uint64(l.Data[8*i:]))
	}
	return out
}

func mulU64(a, b uint64) (uint64, bool) {
	if a == 0 || b == 0 {
		return 0, true
	}
	n := a * b
	if n/a != b {
		return 0, false
	}
	return n, true
}
