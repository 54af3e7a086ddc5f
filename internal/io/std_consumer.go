package io

import (
	"fmt"
	"os"
	"path"
	"sync"

	"github.com/golang/glog"

	"github.com/bimscene/ifc_tiler/internal/tiler"
	"github.com/bimscene/ifc_tiler/internal/tiling"
	"github.com/bimscene/ifc_tiler/tools"
)

type Consumer interface {
	Consume(workchan chan *WorkUnit, errchan chan error, waitGroup *sync.WaitGroup)
}

type StandardConsumer struct{}

func NewStandardConsumer() *StandardConsumer {
	return &StandardConsumer{}
}

// Continually consumes WorkUnits submitted to a work channel producing the
// corresponding content.b3dm files. Continues working until the work
// channel is closed or an error is raised. In this last case the error is
// submitted to the error channel before quitting.
func (c *StandardConsumer) Consume(workchan chan *WorkUnit, errchan chan error, waitGroup *sync.WaitGroup) {
	for {
		work, ok := <-workchan
		if !ok {
			// channel was closed by producer, quit infinite loop
			break
		}

		if err := c.doWork(work); err != nil {
			errchan <- err
			break
		}
	}

	waitGroup.Done()
}

// Takes a workunit and writes the corresponding content.b3dm file
func (c *StandardConsumer) doWork(workUnit *WorkUnit) error {
	parentFolder := workUnit.BasePath

	if err := tools.CreateDirectoryIfDoesNotExist(parentFolder); err != nil {
		return err
	}

	content, err := EncodeB3dm(workUnit.Tile.Content)
	if err != nil {
		return fmt.Errorf("cannot encode tile %d: %w", workUnit.Tile.Index, err)
	}

	b3dmFilePath := path.Join(parentFolder, "content.b3dm")
	if err := os.WriteFile(b3dmFilePath, content, 0666); err != nil {
		return err
	}

	glog.Infof("wrote tile %d (%d vertices) to %s", workUnit.Tile.Index, workUnit.Tile.NumberOfVertices(), b3dmFilePath)
	return nil
}

// Exports the tile set as a 3d tiles tree on disk: one folder per tile
// with its binary content, plus the root tileset.json manifest. Distinct
// tiles have no ordering dependency, so serialization runs on numConsumers
// parallel workers fed by a single producer.
func ExportTileset(basePath string, subfolder string, tiles []*tiling.Tile, opts *tiler.TilerOptions, numConsumers int) error {
	// the work channel holds every tile so the producer always runs to
	// completion even when all consumers bail out on errors early
	workChannel := make(chan *WorkUnit, len(tiles))
	errorChannel := make(chan error, numConsumers)

	var waitGroup sync.WaitGroup

	waitGroup.Add(1)
	producer := NewStandardProducer(basePath, subfolder, opts)
	go producer.Produce(workChannel, &waitGroup, tiles)

	for i := 0; i < numConsumers; i++ {
		waitGroup.Add(1)
		consumer := NewStandardConsumer()
		go consumer.Consume(workChannel, errorChannel, &waitGroup)
	}

	waitGroup.Wait()
	close(errorChannel)

	withErrors := false
	for err := range errorChannel {
		glog.Error(err)
		withErrors = true
	}
	if withErrors {
		return fmt.Errorf("errors raised while exporting tiles, check log output for details")
	}

	return nil
}
