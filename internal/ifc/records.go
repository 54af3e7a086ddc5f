// Package ifc models the boundary with the external BIM parser. The parser
// (an ifcopenshell based extractor or equivalent) triangulates the source
// file and emits the flat records below; everything downstream of this
// package is parser agnostic.
package ifc

// Raw surface style as found in the source graph. RGB and Transparency
// are optional: authoring tools routinely omit either.
type StyleRawRecord struct {
	ID           string     `json:"id"`
	RGB          *[3]float64 `json:"rgb,omitempty"`
	Transparency *float64   `json:"transparency,omitempty"`
}

// Styled item linking one or more styles to a geometric representation.
type StyledItemRawRecord struct {
	ID        string   `json:"id"`
	StyleRefs []string `json:"style_refs,omitempty"`
}

// Material record, optionally carrying the styles of its surface
// representation.
type MaterialRawRecord struct {
	ID        string   `json:"id"`
	StyleRefs []string `json:"style_refs,omitempty"`
}

// Layered material set, the one level of indirection allowed between a
// material association and a style: the set references plain materials.
type LayerSetRawRecord struct {
	ID           string   `json:"id"`
	MaterialRefs []string `json:"material_refs,omitempty"`
}

const (
	TextureKindImage = "image"
	TextureKindPixel = "pixel"
)

// Texture reference found in the source graph. Textures are detected and
// logged only, never decoded or applied.
type TextureRawRecord struct {
	ID   string `json:"id"`
	Kind string `json:"kind"`
	Path string `json:"path"`
}

// One triangulated representation of an element. Vertices are laid out as
// [x0,y0,z0, x1,y1,z1, ...], faces as index triples into the vertex list.
type GeometryRecord struct {
	Vertices []float64 `json:"vertices"`
	Faces    []uint32  `json:"faces"`
}

// A building product with its triangulated representations and optional
// material references.
type ElementRecord struct {
	ID            string           `json:"id"`
	Type          string           `json:"type,omitempty"`
	Geometry      []GeometryRecord `json:"geometry,omitempty"`
	MaterialRef   string           `json:"material_ref,omitempty"`
	StyledItemRef string           `json:"styled_item_ref,omitempty"`
}

// The complete parsed scene as handed over by the external parser.
type SceneDocument struct {
	Schema      string                `json:"schema,omitempty"`
	Styles      []StyleRawRecord      `json:"styles,omitempty"`
	StyledItems []StyledItemRawRecord `json:"styled_items,omitempty"`
	Materials   []MaterialRawRecord   `json:"materials,omitempty"`
	LayerSets   []LayerSetRawRecord   `json:"layer_sets,omitempty"`
	Textures    []TextureRawRecord    `json:"textures,omitempty"`
	Elements    []ElementRecord       `json:"elements,omitempty"`
}
