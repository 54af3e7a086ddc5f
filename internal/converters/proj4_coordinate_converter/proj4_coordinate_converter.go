package proj4_coordinate_converter

import (
	"errors"
	"fmt"
	"math"
	"sync"

	"github.com/shopspring/decimal"
	"github.com/xeonx/proj4"

	"github.com/bimscene/ifc_tiler/internal/converters"
	"github.com/bimscene/ifc_tiler/internal/geometry"
)

const (
	epsgWGS84LatLong  = 4326
	epsgWGS84Geocent  = 4978
	toRadians         = math.Pi / 180
	toDeg             = 180 / math.Pi
	regionEdgeSamples = 8
)

// Proj4 init strings for the EPSG codes the converter understands out of
// the box. Building sites in practice sit in one of a handful of projected
// systems; anything else fails loudly at conversion time.
var epsgDefinitions = map[int]string{
	3395:  "+proj=merc +lon_0=0 +k=1 +x_0=0 +y_0=0 +datum=WGS84 +units=m +no_defs",
	3857:  "+proj=merc +a=6378137 +b=6378137 +lat_ts=0 +lon_0=0 +x_0=0 +y_0=0 +k=1 +units=m +nadgrids=@null +wktext +no_defs",
	4326:  "+proj=longlat +datum=WGS84 +no_defs",
	4978:  "+proj=geocent +datum=WGS84 +units=m +no_defs",
	25832: "+proj=utm +zone=32 +ellps=GRS80 +towgs84=0,0,0,0,0,0,0 +units=m +no_defs",
	25833: "+proj=utm +zone=33 +ellps=GRS80 +towgs84=0,0,0,0,0,0,0 +units=m +no_defs",
	32632: "+proj=utm +zone=32 +datum=WGS84 +units=m +no_defs",
	32633: "+proj=utm +zone=33 +datum=WGS84 +units=m +no_defs",
}

// CoordinateConverter backed by the proj4 library. Projection handles are
// created lazily per srid and cached for the lifetime of the converter.
type proj4CoordinateConverter struct {
	projections map[int]*proj.Proj
	sync.Mutex
}

func NewProj4CoordinateConverter() converters.CoordinateConverter {
	return &proj4CoordinateConverter{
		projections: make(map[int]*proj.Proj),
	}
}

func (c *proj4CoordinateConverter) ConvertCoordinateSrid(sourceSrid int, targetSrid int, coord geometry.Coordinate) (geometry.Coordinate, error) {
	if sourceSrid == targetSrid {
		return coord, nil
	}

	source, err := c.initProjection(sourceSrid)
	if err != nil {
		return coord, err
	}
	target, err := c.initProjection(targetSrid)
	if err != nil {
		return coord, err
	}

	return executeConversion(&coord, source, target)
}

func (c *proj4CoordinateConverter) ConvertToWGS84Cartesian(coord geometry.Coordinate, sourceSrid int) (geometry.Coordinate, error) {
	return c.ConvertCoordinateSrid(sourceSrid, epsgWGS84Geocent, coord)
}

// Converts the given bounding box to an EPSG 4326 region expressed in
// radians, sampling the box edges so that projection curvature cannot push
// the true extremes outside the reported region. The edge stepping uses
// exact decimal increments to stay reproducible across runs.
func (c *proj4CoordinateConverter) Convert2DBoundingboxToWGS84Region(bbox *geometry.BoundingBox, srid int) (*geometry.BoundingBox, error) {
	if bbox == nil {
		return nil, errors.New("nil bounding box")
	}

	xStep := decimal.NewFromFloat(bbox.Xmax - bbox.Xmin).Div(decimal.NewFromInt(regionEdgeSamples))
	yStep := decimal.NewFromFloat(bbox.Ymax - bbox.Ymin).Div(decimal.NewFromInt(regionEdgeSamples))
	xOrigin := decimal.NewFromFloat(bbox.Xmin)
	yOrigin := decimal.NewFromFloat(bbox.Ymin)

	west, south := math.MaxFloat64, math.MaxFloat64
	east, north := -math.MaxFloat64, -math.MaxFloat64

	for i := 0; i <= regionEdgeSamples; i++ {
		for j := 0; j <= regionEdgeSamples; j++ {
			// only the box boundary can contain the projected extremes
			if i != 0 && i != regionEdgeSamples && j != 0 && j != regionEdgeSamples {
				continue
			}
			x, _ := xOrigin.Add(xStep.Mul(decimal.NewFromInt(int64(i)))).Float64()
			y, _ := yOrigin.Add(yStep.Mul(decimal.NewFromInt(int64(j)))).Float64()

			converted, err := c.ConvertCoordinateSrid(srid, epsgWGS84LatLong, geometry.Coordinate{X: x, Y: y, Z: 0})
			if err != nil {
				return nil, err
			}

			west = math.Min(west, converted.X*toRadians)
			east = math.Max(east, converted.X*toRadians)
			south = math.Min(south, converted.Y*toRadians)
			north = math.Max(north, converted.Y*toRadians)
		}
	}

	return geometry.NewBoundingBox(west, east, south, north, bbox.Zmin, bbox.Zmax), nil
}

func (c *proj4CoordinateConverter) Cleanup() {
	c.Lock()
	defer c.Unlock()
	for _, projection := range c.projections {
		projection.Close()
	}
	c.projections = make(map[int]*proj.Proj)
}

func (c *proj4CoordinateConverter) initProjection(srid int) (*proj.Proj, error) {
	c.Lock()
	defer c.Unlock()

	if projection, ok := c.projections[srid]; ok {
		return projection, nil
	}

	definition, ok := epsgDefinitions[srid]
	if !ok {
		return nil, fmt.Errorf("unsupported EPSG srid %d", srid)
	}

	projection, err := proj.InitPlus(definition)
	if err != nil {
		return nil, fmt.Errorf("cannot initialize projection for EPSG %d: %w", srid, err)
	}

	c.projections[srid] = projection
	return projection, nil
}

func executeConversion(coord *geometry.Coordinate, source *proj.Proj, target *proj.Proj) (geometry.Coordinate, error) {
	x, y, z := getCoordinateArraysForConversion(coord, source)

	if err := proj.TransformRaw(source, target, x, y, z); err != nil {
		return *coord, err
	}

	return geometry.Coordinate{
		X: fromProjectionUnits(x[0], target),
		Y: fromProjectionUnits(y[0], target),
		Z: z[0],
	}, nil
}

// proj4 wants lat/long systems expressed in radians
func getCoordinateArraysForConversion(coord *geometry.Coordinate, source *proj.Proj) ([]float64, []float64, []float64) {
	x, y := coord.X, coord.Y
	if source.IsLatLong() {
		x *= toRadians
		y *= toRadians
	}
	return []float64{x}, []float64{y}, []float64{coord.Z}
}

func fromProjectionUnits(value float64, target *proj.Proj) float64 {
	if target.IsLatLong() {
		return value * toDeg
	}
	return value
}
