package hxa

// Reset releases the file's entire contents and returns it to the empty
// state. The walk mirrors the ownership tree exactly and skips anything still
// in its zero state, so it is safe on a file the decoder abandoned partway
// through. Resetting an already-empty file is a no-op.
func (f *File) Reset() {
	for i := range f.Nodes {
		f.Nodes[i].reset()
	}
	f.Nodes = nil
	f.Version = 0
}

func (n *Node) reset() {
	for i := range n.Meta {
		n.Meta[i].reset()
	}
	n.Meta = nil
	if n.Geometry != nil {
		n.Geometry.reset()
		n.Geometry = nil
	}
	if n.Image != nil {
		n.Image.reset()
		n.Image = nil
	}
	n.Kind = NodeMeta
}

func (m *Meta) reset() {
	for i := range m.Nodes {
		m.Nodes[i].reset()
	}
	for i := range m.Metas {
		m.Metas[i].reset()
	}
	*m = Meta{}
}

func (g *Geometry) reset() {
	g.Vertex.reset()
	g.Corner.reset()
	if g.Edge != nil {
		g.Edge.reset()
		g.Edge = nil
	}
	g.Face.reset()
	g.VertexCount, g.CornerCount, g.FaceCount = 0, 0, 0
}

func (img *Image) reset() {
	img.Stack.reset()
	*img = Image{}
}

func (s *LayerStack) reset() {
	for i := range s.Layers {
		s.Layers[i] = Layer{}
	}
	s.Layers = nil
}
