package hxa

// Upgrade bumps f's declared version to target in place. A file already at or
// past target is left untouched, so repeated calls are no-ops. Upgrading past
// version 2 attaches a fresh empty (zero-layer) edge stack to every geometry
// node that lacks one — including geometry embedded in node-typed meta
// entries, which the codec version-gates the same way. No other field is
// touched. Run it before encoding a file whose version was raised, or before
// any consumer that assumes version-3 edge stacks.
func Upgrade(f *File, target uint32) {
	if f.Version >= target {
		return
	}
	f.Version = target
	if target <= Version2 {
		return
	}
	for i := range f.Nodes {
		upgradeNode(&f.Nodes[i])
	}
}

func upgradeNode(n *Node) {
	if n.Geometry != nil && n.Geometry.Edge == nil {
		n.Geometry.Edge = new(LayerStack)
	}
	for i := range n.Meta {
		upgradeMeta(&n.Meta[i])
	}
}

func upgradeMeta(m *Meta) {
	for i := range m.Nodes {
		upgradeNode(&m.Nodes[i])
	}
	for i := range m.Metas {
		upgradeMeta(&m.Metas[i])
	}
}
