package utils

import (
	"fmt"
	"math"

	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"

	"github.com/meshplace/hxa/go/hxa"
)

// TriangulateGeometry fans every polygon of the corner reference layer into
// triangles. A negative reference closes a polygon; its real vertex index is
// -v-1. Positions come from the first vertex layer, which must follow the
// "vertex" convention (f32 or f64, 3 components).
func TriangulateGeometry(g *hxa.Geometry) ([][3]float32, []uint32, error) {
	if len(g.Vertex.Layers) == 0 || len(g.Corner.Layers) == 0 {
		return nil, nil, fmt.Errorf("geometry has no vertex or corner layers")
	}
	pos := &g.Vertex.Layers[0]
	if pos.Components != hxa.VertexComponents {
		return nil, nil, fmt.Errorf("position layer has %d components, want %d", pos.Components, hxa.VertexComponents)
	}
	var coords []float32
	switch pos.Type {
	case hxa.LayerF32:
		coords = pos.F32()
	case hxa.LayerF64:
		d := pos.F64()
		coords = make([]float32, len(d))
		for i, v := range d {
			coords[i] = float32(v)
		}
	default:
		return nil, nil, fmt.Errorf("position layer type %s is not a float type", pos.Type)
	}

	if uint64(len(coords)) != uint64(g.VertexCount)*hxa.VertexComponents {
		return nil, nil, fmt.Errorf("position layer holds %d scalars for %d vertices", len(coords), g.VertexCount)
	}
	positions := make([][3]float32, g.VertexCount)
	for i := range positions {
		positions[i] = [3]float32{coords[3*i], coords[3*i+1], coords[3*i+2]}
	}

	ref := &g.Corner.Layers[0]
	if ref.Type != hxa.LayerI32 || ref.Components != 1 {
		return nil, nil, fmt.Errorf("reference layer must be 1-component i32, got %d×%s", ref.Components, ref.Type)
	}
	refs := ref.I32()

	var indices []uint32
	poly := make([]uint32, 0, 8)
	for _, v := range refs {
		idx := v
		last := false
		if v < 0 {
			idx = -v - 1
			last = true
		}
		if uint32(idx) >= g.VertexCount {
			return nil, nil, fmt.Errorf("corner references vertex %d of %d", idx, g.VertexCount)
		}
		poly = append(poly, uint32(idx))
		if !last {
			continue
		}
		for k := 2; k < len(poly); k++ {
			indices = append(indices, poly[0], poly[k-1], poly[k])
		}
		poly = poly[:0]
	}
	if len(poly) != 0 {
		return nil, nil, fmt.Errorf("reference layer ends mid-polygon (%d dangling corners)", len(poly))
	}
	return positions, indices, nil
}

// BuildGLTFDocument converts every geometry node of f into one glTF mesh
// primitive with flat per-face normals.
func BuildGLTFDocument(f *hxa.File) (*gltf.Document, error) {
	doc := gltf.NewDocument()
	doc.Asset.Generator = "HxA -> GLB"

	count := 0
	for ni := range f.Nodes {
		n := &f.Nodes[ni]
		if n.Geometry == nil {
			continue
		}
		positions, indices, err := TriangulateGeometry(n.Geometry)
		if err != nil {
			return nil, fmt.Errorf("node %d: %w", ni, err)
		}

		// flat normals per face
		normals := make([][3]float32, len(positions))
		for i := 0; i+2 < len(indices); i += 3 {
			v0, v1, v2 := indices[i], indices[i+1], indices[i+2]
			p0, p1, p2 := positions[v0], positions[v1], positions[v2]
			vec1 := [3]float32{p1[0] - p0[0], p1[1] - p0[1], p1[2] - p0[2]}
			vec2 := [3]float32{p2[0] - p0[0], p2[1] - p0[1], p2[2] - p0[2]}
			cross := [3]float32{
				vec1[1]*vec2[2] - vec1[2]*vec2[1],
				vec1[2]*vec2[0] - vec1[0]*vec2[2],
				vec1[0]*vec2[1] - vec1[1]*vec2[0],
			}
			length := float32(math.Sqrt(float64(cross[0]*cross[0] + cross[1]*cross[1] + cross[2]*cross[2])))
			if length > 0 {
				cross[0] /= length
				cross[1] /= length
				cross[2] /= length
			}
			normals[v0] = cross
			normals[v1] = cross
			normals[v2] = cross
		}

		posAccessor := modeler.WritePosition(doc, positions)
		normalAccessor := modeler.WriteNormal(doc, normals)
		indicesAccessor := modeler.WriteIndices(doc, indices)

		prim := &gltf.Primitive{
			Attributes: map[string]uint32{
				gltf.POSITION: uint32(posAccessor),
				gltf.NORMAL:   uint32(normalAccessor),
			},
			Indices: gltf.Index(uint32(indicesAccessor)),
		}

		pbr := &gltf.PBRMetallicRoughness{
			BaseColorFactor: &[4]float32{1, 1, 1, 1},
			MetallicFactor:  gltf.Float(0),
			RoughnessFactor: gltf.Float(1),
		}
		material := &gltf.Material{PBRMetallicRoughness: pbr, AlphaMode: gltf.AlphaOpaque}
		doc.Materials = append(doc.Materials, material)
		prim.Material = gltf.Index(uint32(len(doc.Materials) - 1))

		mesh := &gltf.Mesh{Name: fmt.Sprintf("Geometry%d", ni), Primitives: []*gltf.Primitive{prim}}
		doc.Meshes = append(doc.Meshes, mesh)
		node := &gltf.Node{Mesh: gltf.Index(uint32(len(doc.Meshes) - 1))}
		doc.Nodes = append(doc.Nodes, node)
		doc.Scenes[0].Nodes = append(doc.Scenes[0].Nodes, uint32(len(doc.Nodes)-1))
		count++
	}
	if count == 0 {
		return nil, fmt.Errorf("file has no geometry nodes")
	}
	return doc, nil
}

// RunHXA2GLB converts the geometry nodes of an .hxa file into a .glb file.
func RunHXA2GLB(inPath, outPath string) error {
	f, err := hxa.Load(inPath)
	if err != nil {
		return fmt.Errorf("failed to load %s: %w", inPath, err)
	}
	doc, err := BuildGLTFDocument(f)
	if err != nil {
		return err
	}
	return gltf.SaveBinary(doc, outPath)
}
