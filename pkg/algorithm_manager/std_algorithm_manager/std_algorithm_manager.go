package std_algorithm_manager

import (
	"github.com/bimscene/ifc_tiler/internal/converters"
	"github.com/bimscene/ifc_tiler/internal/converters/elevation/offset_elevation_corrector"
	"github.com/bimscene/ifc_tiler/internal/converters/proj4_coordinate_converter"
	"github.com/bimscene/ifc_tiler/internal/tiler"
	"github.com/bimscene/ifc_tiler/internal/tiling"
	"github.com/bimscene/ifc_tiler/pkg/algorithm_manager"
)

type StandardAlgorithmManager struct {
	coordinateConverter converters.CoordinateConverter
	elevationCorrector  converters.ElevationCorrector
	partitioner         tiling.Partitioner
}

func NewAlgorithmManager(opts *tiler.TilerOptions) algorithm_manager.AlgorithmManager {
	return &StandardAlgorithmManager{
		coordinateConverter: proj4_coordinate_converter.NewProj4CoordinateConverter(),
		elevationCorrector:  offset_elevation_corrector.NewOffsetElevationCorrector(opts.ZOffset),
		partitioner:         tiling.NewGridPartitioner(opts.MaxVerticesPerTile),
	}
}

func (am *StandardAlgorithmManager) GetElevationCorrectionAlgorithm() converters.ElevationCorrector {
	return am.elevationCorrector
}

func (am *StandardAlgorithmManager) GetPartitionerAlgorithm() tiling.Partitioner {
	return am.partitioner
}

func (am *StandardAlgorithmManager) GetCoordinateConverterAlgorithm() converters.CoordinateConverter {
	return am.coordinateConverter
}
