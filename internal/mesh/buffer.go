// Package mesh builds the unified vertex/face/color buffers of a scene.
package mesh

import "github.com/bimscene/ifc_tiler/internal/geometry"

// The contiguous range of vertices and faces contributed by one element.
// Spans are the unit of tile partitioning: an element's triangles never
// end up split across two tiles.
type ElementSpan struct {
	ElementID    string
	VertexOffset int
	VertexCount  int
	FaceOffset   int
	FaceCount    int
}

// Unified mesh buffer. Coords holds 3 values per vertex, Faces 3 indices
// per triangle and Colors 4 values per vertex. Read-only once assembled.
type Buffer struct {
	Coords []float64
	Faces  []uint32
	Colors []float64
	Spans  []ElementSpan

	boundingBox *geometry.BoundingBox
}

func (b *Buffer) NumberOfVertices() int {
	return len(b.Coords) / 3
}

func (b *Buffer) NumberOfFaces() int {
	return len(b.Faces) / 3
}

func (b *Buffer) IsEmpty() bool {
	return len(b.Faces) == 0
}

// Tight AABB of all vertices, cached after the first call.
func (b *Buffer) GetBoundingBox() *geometry.BoundingBox {
	if b.boundingBox == nil {
		b.boundingBox = geometry.NewBoundingBoxFromCoords(b.Coords)
	}
	return b.boundingBox
}

// Centroid of the vertices in the given span, used for spatial binning.
func (b *Buffer) SpanCentroid(span *ElementSpan) geometry.Coordinate {
	if span.VertexCount == 0 {
		return geometry.Coordinate{}
	}

	var x, y, z float64
	for i := span.VertexOffset; i < span.VertexOffset+span.VertexCount; i++ {
		x += b.Coords[i*3]
		y += b.Coords[i*3+1]
		z += b.Coords[i*3+2]
	}
	n := float64(span.VertexCount)
	return geometry.Coordinate{X: x / n, Y: y / n, Z: z / n}
}
