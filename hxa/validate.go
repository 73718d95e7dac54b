package hxa

import "fmt"

// Validate checks the conventions a well-formed asset is expected to honor
// beyond what the codec itself enforces: position and reference layers in
// their required slots, face counts matching the polygon markers in the
// reference layer, and edge-stack presence agreeing with the declared
// version. The decoder deliberately does not run these checks; a file can
// round-trip without satisfying them.
func Validate(f *File) error {
	for i := range f.Nodes {
		if err := validateNode(f, &f.Nodes[i], fmt.Sprintf("node %d", i)); err != nil {
			return err
		}
	}
	return nil
}

func validateNode(f *File, n *Node, where string) error {
	switch n.Kind {
	case NodeGeometry:
		if n.Geometry == nil {
			return fmt.Errorf("%s: geometry node without payload", where)
		}
		if err := validateGeometry(f, n.Geometry, where); err != nil {
			return err
		}
	case NodeImage:
		if n.Image == nil {
			return fmt.Errorf("%s: image node without payload", where)
		}
	}
	for i := range n.Meta {
		if err := validateMeta(f, &n.Meta[i], fmt.Sprintf("%s meta %q", where, n.Meta[i].Name)); err != nil {
			return err
		}
	}
	return nil
}

func validateMeta(f *File, m *Meta, where string) error {
	for i := range m.Nodes {
		if err := validateNode(f, &m.Nodes[i], fmt.Sprintf("%s node %d", where, i)); err != nil {
			return err
		}
	}
	for i := range m.Metas {
		if err := validateMeta(f, &m.Metas[i], fmt.Sprintf("%s/%q", where, m.Metas[i].Name)); err != nil {
			return err
		}
	}
	return nil
}

func validateGeometry(f *File, g *Geometry, where string) error {
	if len(g.Vertex.Layers) == 0 {
		return fmt.Errorf("%s: no vertex layers", where)
	}
	pos := &g.Vertex.Layers[0]
	if pos.Name != LayerNameVertex || pos.Components != VertexComponents {
		return fmt.Errorf("%s: first vertex layer must be %q with %d components, got %q with %d",
			where, LayerNameVertex, VertexComponents, pos.Name, pos.Components)
	}
	if len(g.Corner.Layers) == 0 {
		return fmt.Errorf("%s: no corner layers", where)
	}
	ref := &g.Corner.Layers[0]
	if ref.Name != LayerNameReference || ref.Components != 1 || ref.Type != LayerI32 {
		return fmt.Errorf("%s: first corner layer must be a 1-component i32 %q layer",
			where, LayerNameReference)
	}
	faces := 0
	for _, v := range ref.I32() {
		idx := v
		if v < 0 {
			faces++
			idx = -v - 1
		}
		if uint32(idx) >= g.VertexCount {
			return fmt.Errorf("%s: corner references vertex %d of %d", where, idx, g.VertexCount)
		}
	}
	if uint32(faces) != g.FaceCount {
		return fmt.Errorf("%s: face count %d but reference layer ends %d polygons",
			where, g.FaceCount, faces)
	}
	if f.Version > Version2 && g.Edge == nil {
		return fmt.Errorf("%s: version %d geometry is missing its edge stack", where, f.Version)
	}
	if f.Version <= Version2 && g.Edge != nil {
		return fmt.Errorf("%s: version %d geometry cannot carry an edge stack", where, f.Version)
	}
	return nil
}
