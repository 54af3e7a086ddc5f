package io

import (
	"path"
	"strconv"
	"sync"

	"github.com/bimscene/ifc_tiler/internal/tiler"
	"github.com/bimscene/ifc_tiler/internal/tiling"
)

type StandardProducer struct {
	basePath string
	options  *tiler.TilerOptions
}

func NewStandardProducer(basepath string, subfolder string, options *tiler.TilerOptions) *StandardProducer {
	return &StandardProducer{
		basePath: path.Join(basepath, subfolder),
		options:  options,
	}
}

// Submits one WorkUnit per tile to the provided work channel. Closes the
// channel when all work is submitted.
func (p *StandardProducer) Produce(work chan *WorkUnit, wg *sync.WaitGroup, tiles []*tiling.Tile) {
	for _, tile := range tiles {
		work <- &WorkUnit{
			Tile:     tile,
			BasePath: path.Join(p.basePath, strconv.Itoa(tile.Index)),
			Opts:     p.options,
		}
	}
	close(work)
	wg.Done()
}
