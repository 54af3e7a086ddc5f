package io

import (
	"github.com/bimscene/ifc_tiler/internal/tiler"
	"github.com/bimscene/ifc_tiler/internal/tiling"
)

// Contains the minimal data needed to serialize a single 3d tile, i.e. a
// binary content.b3dm file in the tile's own folder
type WorkUnit struct {
	Tile     *tiling.Tile
	Opts     *tiler.TilerOptions
	BasePath string
}
