package mesh

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bimscene/ifc_tiler/internal/ifc"
	"github.com/bimscene/ifc_tiler/internal/materials"
	"github.com/bimscene/ifc_tiler/internal/tiler"
)

var (
	red  = [4]float64{1, 0, 0, 1}
	blue = [4]float64{0, 0, 1, 0.5}
)

func triangle(x float64) ifc.GeometryRecord {
	return ifc.GeometryRecord{
		Vertices: []float64{x, 0, 0, x + 1, 0, 0, x, 1, 0},
		Faces:    []uint32{0, 1, 2},
	}
}

func TestAssembleOffsetsFaceIndices(t *testing.T) {
	doc := &ifc.SceneDocument{
		Elements: []ifc.ElementRecord{
			{ID: "a", Geometry: []ifc.GeometryRecord{triangle(0)}},
			{ID: "b", Geometry: []ifc.GeometryRecord{triangle(5)}},
		},
	}
	binding := materials.ColorBinding{"a": red, "b": blue}
	stats := &tiler.ConversionStats{}

	buffer := Assemble(doc, binding, stats)

	assert.Equal(t, 6, buffer.NumberOfVertices())
	assert.Equal(t, 2, buffer.NumberOfFaces())
	assert.Equal(t, []uint32{0, 1, 2, 3, 4, 5}, buffer.Faces)
	assert.Equal(t, 2, stats.AssembledElements)
}

func TestAssembleTagsVerticesWithElementColor(t *testing.T) {
	doc := &ifc.SceneDocument{
		Elements: []ifc.ElementRecord{
			{ID: "a", Geometry: []ifc.GeometryRecord{triangle(0)}},
			{ID: "b", Geometry: []ifc.GeometryRecord{triangle(5)}},
		},
	}
	binding := materials.ColorBinding{"a": red, "b": blue}

	buffer := Assemble(doc, binding, &tiler.ConversionStats{})

	require.Len(t, buffer.Colors, buffer.NumberOfVertices()*4)
	assert.Equal(t, []float64{1, 0, 0, 1}, buffer.Colors[0:4])
	assert.Equal(t, []float64{0, 0, 1, 0.5}, buffer.Colors[3*4:3*4+4])
}

func TestAssembleSkipsElementsWithoutGeometry(t *testing.T) {
	doc := &ifc.SceneDocument{
		Elements: []ifc.ElementRecord{
			{ID: "group-1"},
			{ID: "a", Geometry: []ifc.GeometryRecord{triangle(0)}},
		},
	}
	stats := &tiler.ConversionStats{}

	buffer := Assemble(doc, materials.ColorBinding{"a": red}, stats)

	assert.Equal(t, 1, stats.SkippedElements)
	require.Len(t, buffer.Spans, 1)
	assert.Equal(t, "a", buffer.Spans[0].ElementID)
}

func TestAssembleDropsDegenerateFaces(t *testing.T) {
	doc := &ifc.SceneDocument{
		Elements: []ifc.ElementRecord{
			{ID: "a", Geometry: []ifc.GeometryRecord{{
				Vertices: []float64{0, 0, 0, 1, 0, 0, 0, 1, 0},
				// out of range, repeated index, valid, incomplete triple
				Faces: []uint32{0, 1, 7, 0, 0, 2, 0, 1, 2, 1},
			}}},
		},
	}
	stats := &tiler.ConversionStats{}

	buffer := Assemble(doc, materials.ColorBinding{"a": red}, stats)

	assert.Equal(t, 1, buffer.NumberOfFaces())
	assert.Equal(t, 3, stats.DroppedFaces)
	assert.Equal(t, 1, stats.AssembledElements)
}

func TestAssembleFaceCountMatchesValidTriangles(t *testing.T) {
	doc := &ifc.SceneDocument{
		Elements: []ifc.ElementRecord{
			{ID: "a", Geometry: []ifc.GeometryRecord{triangle(0), triangle(2)}},
			{ID: "b", Geometry: []ifc.GeometryRecord{triangle(9)}},
		},
	}
	binding := materials.ColorBinding{"a": red, "b": blue}

	buffer := Assemble(doc, binding, &tiler.ConversionStats{})

	assert.Equal(t, 3, buffer.NumberOfFaces())
	// every face index is within vertex bounds and has a color entry
	for _, idx := range buffer.Faces {
		require.Less(t, int(idx), buffer.NumberOfVertices())
		require.Len(t, buffer.Colors[idx*4:idx*4+4], 4)
	}
}

func TestAssembleUnboundElementGetsDefaultColor(t *testing.T) {
	doc := &ifc.SceneDocument{
		Elements: []ifc.ElementRecord{
			{ID: "a", Geometry: []ifc.GeometryRecord{triangle(0)}},
		},
	}

	buffer := Assemble(doc, materials.ColorBinding{}, &tiler.ConversionStats{})

	assert.Equal(t, []float64{0.5, 0.5, 0.5, 1}, buffer.Colors[0:4])
}

func TestAssembleBoundingBoxIsTight(t *testing.T) {
	doc := &ifc.SceneDocument{
		Elements: []ifc.ElementRecord{
			{ID: "a", Geometry: []ifc.GeometryRecord{triangle(0)}},
			{ID: "b", Geometry: []ifc.GeometryRecord{triangle(5)}},
		},
	}
	binding := materials.ColorBinding{"a": red, "b": blue}

	buffer := Assemble(doc, binding, &tiler.ConversionStats{})
	box := buffer.GetBoundingBox()

	assert.Equal(t, 0.0, box.Xmin)
	assert.Equal(t, 6.0, box.Xmax)
	assert.Equal(t, 0.0, box.Ymin)
	assert.Equal(t, 1.0, box.Ymax)
	assert.Equal(t, 0.0, box.Zmin)
	assert.Equal(t, 0.0, box.Zmax)
}

func TestAssembleIsIdempotent(t *testing.T) {
	doc := &ifc.SceneDocument{
		Elements: []ifc.ElementRecord{
			{ID: "a", Geometry: []ifc.GeometryRecord{triangle(0)}},
			{ID: "b", Geometry: []ifc.GeometryRecord{triangle(5)}},
		},
	}
	binding := materials.ColorBinding{"a": red, "b": blue}

	first := Assemble(doc, binding, &tiler.ConversionStats{})
	second := Assemble(doc, binding, &tiler.ConversionStats{})

	assert.Equal(t, first.Coords, second.Coords)
	assert.Equal(t, first.Faces, second.Faces)
	assert.Equal(t, first.Colors, second.Colors)
}

func TestSpanCentroid(t *testing.T) {
	buffer := &Buffer{
		Coords: []float64{0, 0, 0, 2, 0, 0, 1, 3, 0},
	}
	span := &ElementSpan{VertexOffset: 0, VertexCount: 3}

	centroid := buffer.SpanCentroid(span)

	assert.InDelta(t, 1.0, centroid.X, 1e-12)
	assert.InDelta(t, 1.0, centroid.Y, 1e-12)
	assert.InDelta(t, 0.0, centroid.Z, 1e-12)
}
