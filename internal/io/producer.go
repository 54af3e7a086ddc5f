package io

import (
	"sync"

	"github.com/bimscene/ifc_tiler/internal/tiling"
)

type Producer interface {
	Produce(work chan *WorkUnit, wg *sync.WaitGroup, tiles []*tiling.Tile)
}
