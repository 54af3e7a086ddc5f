// Package tiling splits a unified mesh buffer into spatially bounded,
// independently loadable tiles.
package tiling

import (
	"github.com/bimscene/ifc_tiler/internal/geometry"
	"github.com/bimscene/ifc_tiler/internal/mesh"
)

// A spatially bounded subset of the unified mesh, independently indexed.
// Tiles are immutable once produced and can be serialized in any order.
type Tile struct {
	Index   int
	Content *mesh.Buffer
}

func (t *Tile) IsEmpty() bool {
	return t.Content.IsEmpty()
}

func (t *Tile) NumberOfVertices() int {
	return t.Content.NumberOfVertices()
}

// Tight AABB of the tile's own vertex subset, not inherited from the root.
func (t *Tile) GetBoundingBox() *geometry.BoundingBox {
	return t.Content.GetBoundingBox()
}

// Geometric error hint for viewers. Estimated from the tile diagonal so a
// child tile of a larger volume never reports a larger error than its root.
func (t *Tile) ComputeGeometricError(scale float64) float64 {
	if scale <= 0 {
		scale = 1
	}
	return t.GetBoundingBox().Diagonal() / scale
}
