package tiling

import (
	"math"
	"sort"

	"github.com/golang/glog"

	"github.com/bimscene/ifc_tiler/internal/geometry"
	"github.com/bimscene/ifc_tiler/internal/mesh"
	"github.com/bimscene/ifc_tiler/internal/tiler"
)

const DefaultMaxVerticesPerTile = 500000

// Partitioner splits a unified mesh buffer into tiles.
type Partitioner interface {
	Partition(buffer *mesh.Buffer, stats *tiler.ConversionStats) []*Tile
}

// GridPartitioner bins elements into a regular spatial grid over the root
// bounding box. Binning is per element (by span centroid), never per
// triangle, so an element's geometry is always whole inside one tile. The
// vertex budget is advisory: a cell holding more vertices than the budget
// is chunked into multiple tiles, but a single oversized element still
// becomes one tile on its own.
type GridPartitioner struct {
	maxVertices int
}

func NewGridPartitioner(maxVerticesPerTile int) Partitioner {
	if maxVerticesPerTile <= 0 {
		maxVerticesPerTile = DefaultMaxVerticesPerTile
	}
	return &GridPartitioner{maxVertices: maxVerticesPerTile}
}

type gridIndex struct {
	x int
	y int
	z int
}

func (p *GridPartitioner) Partition(buffer *mesh.Buffer, stats *tiler.ConversionStats) []*Tile {
	if buffer.IsEmpty() {
		// downstream viewers must still get a valid manifest
		glog.Warning("empty scene, emitting a single empty tile")
		tiles := []*Tile{{Index: 0, Content: &mesh.Buffer{}}}
		stats.TileCount = len(tiles)
		return tiles
	}

	if buffer.NumberOfVertices() <= p.maxVertices {
		tiles := []*Tile{{Index: 0, Content: buffer}}
		stats.TileCount = len(tiles)
		return tiles
	}

	cells := p.binSpans(buffer)
	tiles := p.buildTiles(buffer, cells)
	stats.TileCount = len(tiles)

	glog.Infof("partitioned %d vertices into %d tiles", buffer.NumberOfVertices(), len(tiles))
	return tiles
}

// Groups the element spans of the buffer by the grid cell containing their
// centroid. The grid resolution is derived from the vertex budget so that
// cells hold roughly one budget's worth of vertices each.
func (p *GridPartitioner) binSpans(buffer *mesh.Buffer) map[gridIndex][]*mesh.ElementSpan {
	box := buffer.GetBoundingBox()
	targetTiles := float64(buffer.NumberOfVertices()) / float64(p.maxVertices)
	cellsPerAxis := int(math.Ceil(math.Cbrt(targetTiles)))
	if cellsPerAxis < 1 {
		cellsPerAxis = 1
	}

	cells := make(map[gridIndex][]*mesh.ElementSpan)
	for i := range buffer.Spans {
		span := &buffer.Spans[i]
		centroid := buffer.SpanCentroid(span)
		index := gridIndex{
			x: cellIndex(centroid.X, box.Xmin, box.Xmax, cellsPerAxis),
			y: cellIndex(centroid.Y, box.Ymin, box.Ymax, cellsPerAxis),
			z: cellIndex(centroid.Z, box.Zmin, box.Zmax, cellsPerAxis),
		}
		cells[index] = append(cells[index], span)
	}

	return cells
}

func cellIndex(v, min, max float64, cellsPerAxis int) int {
	if max <= min {
		return 0
	}
	idx := int(float64(cellsPerAxis) * (v - min) / (max - min))
	if idx >= cellsPerAxis {
		idx = cellsPerAxis - 1
	}
	if idx < 0 {
		idx = 0
	}
	return idx
}

// Turns each grid cell into one or more tiles, chunking a cell's span list
// greedily so that tiles stay under the vertex budget where feasible. Cells
// are visited in deterministic order so repeated runs produce an identical
// tile sequence.
func (p *GridPartitioner) buildTiles(buffer *mesh.Buffer, cells map[gridIndex][]*mesh.ElementSpan) []*Tile {
	indices := make([]gridIndex, 0, len(cells))
	for index := range cells {
		indices = append(indices, index)
	}
	sort.Slice(indices, func(i, j int) bool {
		a, b := indices[i], indices[j]
		if a.x != b.x {
			return a.x < b.x
		}
		if a.y != b.y {
			return a.y < b.y
		}
		return a.z < b.z
	})

	var tiles []*Tile
	for _, index := range indices {
		spans := cells[index]

		var chunk []*mesh.ElementSpan
		chunkVertices := 0
		for _, span := range spans {
			if len(chunk) > 0 && chunkVertices+span.VertexCount > p.maxVertices {
				tiles = append(tiles, extractTile(buffer, chunk, len(tiles)))
				chunk = nil
				chunkVertices = 0
			}
			chunk = append(chunk, span)
			chunkVertices += span.VertexCount
		}
		if len(chunk) > 0 {
			tiles = append(tiles, extractTile(buffer, chunk, len(tiles)))
		}
	}

	return tiles
}

// Copies the given spans out of the unified buffer into an independently
// indexed tile buffer. Vertex data is copied, never edited: only the face
// indices are rebased onto the tile's own vertex ordering.
func extractTile(buffer *mesh.Buffer, spans []*mesh.ElementSpan, tileIndex int) *Tile {
	content := &mesh.Buffer{}

	for _, span := range spans {
		newOffset := content.NumberOfVertices()

		content.Coords = append(content.Coords,
			buffer.Coords[span.VertexOffset*3:(span.VertexOffset+span.VertexCount)*3]...)
		content.Colors = append(content.Colors,
			buffer.Colors[span.VertexOffset*4:(span.VertexOffset+span.VertexCount)*4]...)

		rebase := uint32(newOffset) - uint32(span.VertexOffset)
		for i := span.FaceOffset * 3; i < (span.FaceOffset+span.FaceCount)*3; i++ {
			content.Faces = append(content.Faces, buffer.Faces[i]+rebase)
		}

		content.Spans = append(content.Spans, mesh.ElementSpan{
			ElementID:    span.ElementID,
			VertexOffset: newOffset,
			VertexCount:  span.VertexCount,
			FaceOffset:   content.NumberOfFaces() - span.FaceCount,
			FaceCount:    span.FaceCount,
		})
	}

	return &Tile{Index: tileIndex, Content: content}
}

// Root bounding box of a tile set, the union of the tile boxes.
func MergedBoundingBox(tiles []*Tile) *geometry.BoundingBox {
	boxes := make([]*geometry.BoundingBox, 0, len(tiles))
	for _, tile := range tiles {
		if tile.IsEmpty() {
			continue
		}
		boxes = append(boxes, tile.GetBoundingBox())
	}
	return geometry.MergeBoundingBoxes(boxes)
}
