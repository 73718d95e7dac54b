package hxa

// Standard layer names. The first vertex layer of a geometry node must be
// the 3-component position layer, and the first corner layer the 1-component
// i32 polygon index layer (negative entry marks the last corner of a
// polygon, real index -v-1). The rest are soft conventions consumers look
// up by name.
const (
	LayerNameVertex    = "vertex"
	LayerNameReference = "reference"

	LayerNameUV       = "uv"
	LayerNameNormal   = "normal"
	LayerNameBinormal = "binormal"
	LayerNameTangent  = "tangent"
	LayerNameColor    = "color"
	LayerNameCrease   = "creases"
	LayerNameSelect   = "select"
)

// VertexComponents is the component count required of the position layer.
const VertexComponents = 3

// FindLayer returns the stack's first layer with the given name, or nil.
func (s *LayerStack) FindLayer(name string) *Layer {
	for i := range s.Layers {
		if s.Layers[i].Name == name {
			return &s.Layers[i]
		}
	}
	return nil
}
