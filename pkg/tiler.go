package pkg

import (
	"os"
	"path"
	"path/filepath"
	"runtime"
	"strconv"

	"github.com/golang/glog"

	"github.com/bimscene/ifc_tiler/internal/ifc"
	"github.com/bimscene/ifc_tiler/internal/io"
	"github.com/bimscene/ifc_tiler/internal/materials"
	"github.com/bimscene/ifc_tiler/internal/mesh"
	"github.com/bimscene/ifc_tiler/internal/tiler"
	"github.com/bimscene/ifc_tiler/pkg/algorithm_manager"
	"github.com/bimscene/ifc_tiler/tools"
)

type ITiler interface {
	RunTiler(opts *tiler.TilerOptions) error
}

type Tiler struct {
	fileFinder       tools.FileFinder
	algorithmManager algorithm_manager.AlgorithmManager
	uploader         io.Uploader
}

func NewTiler(fileFinder tools.FileFinder, algorithmManager algorithm_manager.AlgorithmManager) ITiler {
	return &Tiler{
		fileFinder:       fileFinder,
		algorithmManager: algorithmManager,
		uploader:         io.NewLocalUploader(),
	}
}

// Starts the conversion process
func (t *Tiler) RunTiler(opts *tiler.TilerOptions) error {
	glog.Infoln("Preparing list of files to process...")

	sceneFiles := t.fileFinder.GetSceneFilesToProcess(opts)
	glog.Infoln("scene_file list", sceneFiles)
	for i, filePath := range sceneFiles {
		glog.Infof("scene_file path %d [%s]", i, filePath)
	}

	for i, filePath := range sceneFiles {
		tools.LogOutput("Processing file " + strconv.Itoa(i+1) + "/" + strconv.Itoa(len(sceneFiles)))
		if err := t.processSceneFile(filePath, opts); err != nil {
			return err
		}
	}
	t.algorithmManager.GetCoordinateConverterAlgorithm().Cleanup()

	return nil
}

func (t *Tiler) processSceneFile(filePath string, opts *tiler.TilerOptions) error {
	buffer, stats, err := t.assembleScene(filePath, opts)
	if err != nil {
		return err
	}

	switch opts.Command {
	case tools.CommandConvert:
		err = t.exportGlbFile(buffer, opts, filePath)
	case tools.CommandTile:
		err = t.exportCesiumTileset(buffer, stats, opts, getFilenameWithoutExtension(filePath))
	}
	if err != nil {
		return err
	}

	logStats(stats)
	tools.LogOutput("> done processing", filepath.Base(filePath))

	return nil
}

// Loads the scene document and turns it into a single colored vertex buffer.
func (t *Tiler) assembleScene(filePath string, opts *tiler.TilerOptions) (*mesh.Buffer, *tiler.ConversionStats, error) {
	tools.LogOutput("> reading data from scene file...", filepath.Base(filePath))
	doc, err := ifc.Load(filePath)
	if err != nil {
		return nil, nil, err
	}

	stats := &tiler.ConversionStats{}

	tools.LogOutput("> resolving styles...")
	colors := materials.ResolveStyles(doc, stats)
	textures := materials.ExtractTextures(doc)
	binding := materials.NewBinder(doc, colors, textures, stats).BindColors(doc)

	tools.LogOutput("> assembling mesh...")
	buffer := mesh.Assemble(doc, binding, stats)

	return buffer, stats, nil
}

// Writes the whole scene as a single binary glTF file.
func (t *Tiler) exportGlbFile(buffer *mesh.Buffer, opts *tiler.TilerOptions, filePath string) error {
	tools.LogOutput("> exporting data...")
	glbData, err := io.EncodeGlb(buffer)
	if err != nil {
		return err
	}

	outputPath := glbOutputPath(opts, filePath)
	if err := tools.CreateDirectoryIfDoesNotExist(filepath.Dir(outputPath)); err != nil {
		return err
	}
	if err := os.WriteFile(outputPath, glbData, 0666); err != nil {
		return err
	}
	glog.Infof("glb_file written [%s] size %d", outputPath, len(glbData))

	return nil
}

func glbOutputPath(opts *tiler.TilerOptions, filePath string) string {
	output := opts.TilerConvertOptions.Output
	if output == "" {
		return getFilenameWithoutExtension(filePath) + ".glb"
	}
	if opts.FolderProcessing {
		return path.Join(output, getFilenameWithoutExtension(filePath)+".glb")
	}
	return output
}

// Partitions the buffer into tiles and writes the tileset according to the
// options specified in the TilerOptions instance
func (t *Tiler) exportCesiumTileset(buffer *mesh.Buffer, stats *tiler.ConversionStats, opts *tiler.TilerOptions, subfolder string) error {
	tools.LogOutput("> partitioning mesh...")
	tiles := t.algorithmManager.GetPartitionerAlgorithm().Partition(buffer, stats)
	stats.TileCount = len(tiles)

	tools.LogOutput("> exporting data...")
	numConsumers := runtime.NumCPU()
	basePath := opts.TilerTileOptions.Output
	if err := io.ExportTileset(basePath, subfolder, tiles, opts, numConsumers); err != nil {
		return err
	}

	tilesetDir := path.Join(basePath, subfolder)
	err := io.WriteTilesetJsonFile(
		tilesetDir,
		tiles,
		opts,
		t.algorithmManager.GetCoordinateConverterAlgorithm(),
		t.algorithmManager.GetElevationCorrectionAlgorithm(),
	)
	if err != nil {
		return err
	}

	return t.uploader.UploadTileset(tilesetDir)
}

func getFilenameWithoutExtension(filePath string) string {
	nameWext := filepath.Base(filePath)
	extension := filepath.Ext(nameWext)
	return nameWext[0 : len(nameWext)-len(extension)]
}

func logStats(stats *tiler.ConversionStats) {
	glog.Infof("conversion stats: elements %d skipped %d styles %d unresolved_materials %d textures %d dropped_faces %d tiles %d",
		stats.AssembledElements, stats.SkippedElements, stats.ResolvedStyles,
		stats.UnresolvedMaterials, stats.DetectedTextures, stats.DroppedFaces, stats.TileCount)
}
