package mesh

import (
	"strconv"

	"github.com/bimscene/ifc_tiler/internal/ifc"
	"github.com/bimscene/ifc_tiler/internal/materials"
	"github.com/bimscene/ifc_tiler/internal/tiler"
	"github.com/bimscene/ifc_tiler/tools"
)

const progressLogInterval = 50

// Assembles the geometry of every element into one unified Buffer. Each
// vertex contributed by an element carries that element's resolved color.
// Elements without geometry are skipped, degenerate faces are dropped
// individually; neither is an error.
func Assemble(doc *ifc.SceneDocument, binding materials.ColorBinding, stats *tiler.ConversionStats) *Buffer {
	buffer := &Buffer{}

	for i := range doc.Elements {
		if i%progressLogInterval == 0 {
			tools.LogOutput("assembling element " + strconv.Itoa(i) + "/" + strconv.Itoa(len(doc.Elements)))
		}
		appendElement(buffer, &doc.Elements[i], binding, stats)
	}

	return buffer
}

func appendElement(buffer *Buffer, elem *ifc.ElementRecord, binding materials.ColorBinding, stats *tiler.ConversionStats) {
	span := ElementSpan{
		ElementID:    elem.ID,
		VertexOffset: buffer.NumberOfVertices(),
		FaceOffset:   buffer.NumberOfFaces(),
	}

	rgba, ok := binding[elem.ID]
	if !ok {
		rgba = materials.DefaultColor
	}

	for g := range elem.Geometry {
		appendGeometry(buffer, &span, &elem.Geometry[g], rgba, stats)
	}

	if span.VertexCount == 0 {
		stats.SkippedElements++
		return
	}

	stats.AssembledElements++
	buffer.Spans = append(buffer.Spans, span)
}

func appendGeometry(buffer *Buffer, span *ElementSpan, geom *ifc.GeometryRecord, rgba [4]float64, stats *tiler.ConversionStats) {
	vertexCount := len(geom.Vertices) / 3
	if vertexCount == 0 {
		return
	}

	// index offset of this representation inside the unified buffer
	offset := uint32(buffer.NumberOfVertices())

	buffer.Coords = append(buffer.Coords, geom.Vertices[:vertexCount*3]...)
	for i := 0; i < vertexCount; i++ {
		buffer.Colors = append(buffer.Colors, rgba[0], rgba[1], rgba[2], rgba[3])
	}
	span.VertexCount += vertexCount

	for i := 0; i+3 <= len(geom.Faces); i += 3 {
		a, b, c := geom.Faces[i], geom.Faces[i+1], geom.Faces[i+2]
		if !isValidFace(a, b, c, uint32(vertexCount)) {
			stats.DroppedFaces++
			continue
		}
		buffer.Faces = append(buffer.Faces, a+offset, b+offset, c+offset)
		span.FaceCount++
	}
	if len(geom.Faces)%3 != 0 {
		stats.DroppedFaces++
	}
}

// A face is valid when its three indices are in range and distinct.
func isValidFace(a, b, c, vertexCount uint32) bool {
	if a >= vertexCount || b >= vertexCount || c >= vertexCount {
		return false
	}
	return a != b && b != c && a != c
}
