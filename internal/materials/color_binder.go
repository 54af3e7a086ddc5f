package materials

import (
	"github.com/golang/glog"

	"github.com/bimscene/ifc_tiler/internal/ifc"
	"github.com/bimscene/ifc_tiler/internal/tiler"
)

// Color assigned to elements with no resolvable material.
var DefaultColor = [4]float64{0.5, 0.5, 0.5, 1.0}

// Maps element identifiers to their resolved RGBA color. Every element of
// a scene has exactly one entry after binding.
type ColorBinding map[string][4]float64

// A single lookup path from an element to a color. Strategies are tried in
// order and the first hit wins, so new association forms can be appended
// without touching the existing ones.
type resolveStrategy func(b *Binder, elem *ifc.ElementRecord) ([4]float64, bool)

// Binder resolves each element of a scene to a single color using the
// ordered strategy list below.
type Binder struct {
	colors    StyleMap
	textures  map[string]ifc.TextureRawRecord
	layerSets map[string][]string
	stats     *tiler.ConversionStats
}

var strategies = []resolveStrategy{
	(*Binder).styledItemColor,
	(*Binder).associationColor,
	(*Binder).textureDetection,
}

func NewBinder(doc *ifc.SceneDocument, colors StyleMap, textures map[string]ifc.TextureRawRecord, stats *tiler.ConversionStats) *Binder {
	layerSets := make(map[string][]string, len(doc.LayerSets))
	for _, set := range doc.LayerSets {
		layerSets[set.ID] = set.MaterialRefs
	}

	return &Binder{
		colors:    colors,
		textures:  textures,
		layerSets: layerSets,
		stats:     stats,
	}
}

// Produces a ColorBinding covering every element of the scene. Elements
// with no resolvable color bind to DefaultColor, never to an error.
func (b *Binder) BindColors(doc *ifc.SceneDocument) ColorBinding {
	binding := make(ColorBinding, len(doc.Elements))

	for i := range doc.Elements {
		binding[doc.Elements[i].ID] = b.resolve(&doc.Elements[i])
	}

	return binding
}

func (b *Binder) resolve(elem *ifc.ElementRecord) [4]float64 {
	for _, strategy := range strategies {
		if rgba, ok := strategy(b, elem); ok {
			return rgba
		}
	}

	b.stats.UnresolvedMaterials++
	return DefaultColor
}

// Direct styled item reference. Always wins over the association path.
func (b *Binder) styledItemColor(elem *ifc.ElementRecord) ([4]float64, bool) {
	if elem.StyledItemRef == "" {
		return [4]float64{}, false
	}
	rgba, ok := b.colors[elem.StyledItemRef]
	return rgba, ok
}

// Material association, either directly resolvable or through one level of
// indirection via a layered material set.
func (b *Binder) associationColor(elem *ifc.ElementRecord) ([4]float64, bool) {
	if elem.MaterialRef == "" {
		return [4]float64{}, false
	}
	if rgba, ok := b.colors[elem.MaterialRef]; ok {
		return rgba, true
	}
	for _, materialRef := range b.layerSets[elem.MaterialRef] {
		if rgba, ok := b.colors[materialRef]; ok {
			return rgba, true
		}
	}
	return [4]float64{}, false
}

// Texture references are logged but never synthesized into a color, so this
// strategy never hits and the element falls through to the default.
func (b *Binder) textureDetection(elem *ifc.ElementRecord) ([4]float64, bool) {
	for _, ref := range []string{elem.StyledItemRef, elem.MaterialRef} {
		if ref == "" {
			continue
		}
		if texture, ok := b.textures[ref]; ok {
			b.stats.DetectedTextures++
			glog.Warningf("texture %s (%s) found for element %s but not applied", texture.Path, texture.Kind, elem.ID)
			break
		}
	}
	return [4]float64{}, false
}
