package algorithm_manager

import (
	"github.com/bimscene/ifc_tiler/internal/converters"
	"github.com/bimscene/ifc_tiler/internal/tiling"
)

type AlgorithmManager interface {
	GetElevationCorrectionAlgorithm() converters.ElevationCorrector
	GetPartitionerAlgorithm() tiling.Partitioner
	GetCoordinateConverterAlgorithm() converters.CoordinateConverter
}
