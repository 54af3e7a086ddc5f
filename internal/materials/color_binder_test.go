package materials

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bimscene/ifc_tiler/internal/ifc"
	"github.com/bimscene/ifc_tiler/internal/tiler"
)

func bindScene(t *testing.T, doc *ifc.SceneDocument, stats *tiler.ConversionStats) ColorBinding {
	t.Helper()
	colors := ResolveStyles(doc, stats)
	textures := ExtractTextures(doc)
	return NewBinder(doc, colors, textures, stats).BindColors(doc)
}

func TestBindColorsStyledItemPath(t *testing.T) {
	doc := &ifc.SceneDocument{
		Styles: []ifc.StyleRawRecord{
			{ID: "s1", RGB: rgb(1, 0, 0), Transparency: transparency(0.5)},
		},
		StyledItems: []ifc.StyledItemRawRecord{
			{ID: "si1", StyleRefs: []string{"s1"}},
		},
		Elements: []ifc.ElementRecord{
			{ID: "wall-1", StyledItemRef: "si1"},
		},
	}

	binding := bindScene(t, doc, &tiler.ConversionStats{})

	assert.Equal(t, [4]float64{1, 0, 0, 0.5}, binding["wall-1"])
}

func TestBindColorsAssociationPath(t *testing.T) {
	doc := &ifc.SceneDocument{
		Styles: []ifc.StyleRawRecord{
			{ID: "s1", RGB: rgb(0, 1, 0)},
		},
		Materials: []ifc.MaterialRawRecord{
			{ID: "m1", StyleRefs: []string{"s1"}},
		},
		Elements: []ifc.ElementRecord{
			{ID: "slab-1", MaterialRef: "m1"},
		},
	}

	binding := bindScene(t, doc, &tiler.ConversionStats{})

	assert.Equal(t, [4]float64{0, 1, 0, 1}, binding["slab-1"])
}

func TestBindColorsLayerSetIndirection(t *testing.T) {
	doc := &ifc.SceneDocument{
		Styles: []ifc.StyleRawRecord{
			{ID: "s1", RGB: rgb(0, 0, 1)},
		},
		Materials: []ifc.MaterialRawRecord{
			{ID: "m1", StyleRefs: []string{"s1"}},
		},
		LayerSets: []ifc.LayerSetRawRecord{
			{ID: "ls1", MaterialRefs: []string{"missing", "m1"}},
		},
		Elements: []ifc.ElementRecord{
			{ID: "wall-1", MaterialRef: "ls1"},
		},
	}

	binding := bindScene(t, doc, &tiler.ConversionStats{})

	assert.Equal(t, [4]float64{0, 0, 1, 1}, binding["wall-1"])
}

func TestBindColorsStyledItemWinsOverAssociation(t *testing.T) {
	doc := &ifc.SceneDocument{
		Styles: []ifc.StyleRawRecord{
			{ID: "s1", RGB: rgb(1, 0, 0)},
			{ID: "s2", RGB: rgb(0, 1, 0)},
		},
		StyledItems: []ifc.StyledItemRawRecord{
			{ID: "si1", StyleRefs: []string{"s1"}},
		},
		Materials: []ifc.MaterialRawRecord{
			{ID: "m1", StyleRefs: []string{"s2"}},
		},
		Elements: []ifc.ElementRecord{
			{ID: "duct-1", StyledItemRef: "si1", MaterialRef: "m1"},
		},
	}

	binding := bindScene(t, doc, &tiler.ConversionStats{})

	assert.Equal(t, [4]float64{1, 0, 0, 1}, binding["duct-1"])
}

func TestBindColorsDefaultForUnresolved(t *testing.T) {
	doc := &ifc.SceneDocument{
		Elements: []ifc.ElementRecord{
			{ID: "proxy-1"},
			{ID: "proxy-2", MaterialRef: "missing"},
		},
	}
	stats := &tiler.ConversionStats{}

	binding := bindScene(t, doc, stats)

	assert.Equal(t, [4]float64{0.5, 0.5, 0.5, 1.0}, binding["proxy-1"])
	assert.Equal(t, [4]float64{0.5, 0.5, 0.5, 1.0}, binding["proxy-2"])
	assert.Equal(t, 2, stats.UnresolvedMaterials)
}

func TestBindColorsTextureFallsThroughToDefault(t *testing.T) {
	doc := &ifc.SceneDocument{
		Textures: []ifc.TextureRawRecord{
			{ID: "t1", Kind: ifc.TextureKindImage, Path: "brick.png"},
		},
		Elements: []ifc.ElementRecord{
			{ID: "wall-1", StyledItemRef: "t1"},
		},
	}
	stats := &tiler.ConversionStats{}

	binding := bindScene(t, doc, stats)

	assert.Equal(t, DefaultColor, binding["wall-1"])
	assert.Equal(t, 1, stats.DetectedTextures)
	assert.Equal(t, 1, stats.UnresolvedMaterials)
}

func TestBindColorsCoversEveryElement(t *testing.T) {
	doc := &ifc.SceneDocument{
		Elements: []ifc.ElementRecord{
			{ID: "a"}, {ID: "b"}, {ID: "c"},
		},
	}

	binding := bindScene(t, doc, &tiler.ConversionStats{})

	require.Len(t, binding, 3)
	for _, elem := range doc.Elements {
		assert.Contains(t, binding, elem.ID)
	}
}

func TestBindColorsIsDeterministic(t *testing.T) {
	doc := &ifc.SceneDocument{
		Styles: []ifc.StyleRawRecord{
			{ID: "s1", RGB: rgb(0.3, 0.6, 0.9), Transparency: transparency(0.25)},
		},
		StyledItems: []ifc.StyledItemRawRecord{
			{ID: "si1", StyleRefs: []string{"s1"}},
		},
		Elements: []ifc.ElementRecord{
			{ID: "wall-1", StyledItemRef: "si1"},
			{ID: "proxy-1"},
		},
	}

	first := bindScene(t, doc, &tiler.ConversionStats{})
	second := bindScene(t, doc, &tiler.ConversionStats{})

	assert.Equal(t, first, second)
}
