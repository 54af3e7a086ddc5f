package io

import (
	"encoding/json"
	"errors"
	"os"
	"path"
	"strconv"

	"github.com/bimscene/ifc_tiler/internal/converters"
	"github.com/bimscene/ifc_tiler/internal/geometry"
	"github.com/bimscene/ifc_tiler/internal/tiler"
	"github.com/bimscene/ifc_tiler/internal/tiling"
	"github.com/bimscene/ifc_tiler/tools"
)

type Tileset struct {
	Asset          Asset   `json:"asset"`
	GeometricError float64 `json:"geometricError"`
	Root           Root    `json:"root"`
}

type Asset struct {
	Version string `json:"version"`
}

type Root struct {
	Content        *Content       `json:"content,omitempty"`
	BoundingVolume BoundingVolume `json:"boundingVolume"`
	GeometricError float64        `json:"geometricError"`
	Refine         string         `json:"refine"`
	Children       []Child        `json:"children,omitempty"`
}

type Child struct {
	Content        Content        `json:"content"`
	BoundingVolume BoundingVolume `json:"boundingVolume"`
	GeometricError float64        `json:"geometricError"`
	Refine         string         `json:"refine"`
}

type Content struct {
	Url string `json:"uri"`
}

type BoundingVolume struct {
	Box    []float64 `json:"box,omitempty"`
	Region []float64 `json:"region,omitempty"`
}

// Builds the manifest for the given tile set: a root entry whose bounding
// volume is the union of the children, and one leaf entry per tile. The
// root geometric error is the diagonal of the merged bounding box, every
// child error is capped at the root error, so errors never increase from
// root to leaf whatever scale the options carry.
func GenerateTilesetJson(tiles []*tiling.Tile, opts *tiler.TilerOptions, converter converters.CoordinateConverter, corrector converters.ElevationCorrector) ([]byte, error) {
	if len(tiles) == 0 {
		return nil, errors.New("cannot generate a tileset for zero tiles")
	}

	rootBox := tiling.MergedBoundingBox(tiles)
	rootVolume, err := makeBoundingVolume(rootBox, opts, converter, corrector)
	if err != nil {
		return nil, err
	}

	rootError := rootBox.Diagonal()
	children := make([]Child, 0, len(tiles))
	for _, tile := range tiles {
		childVolume, err := makeBoundingVolume(tile.GetBoundingBox(), opts, converter, corrector)
		if err != nil {
			return nil, err
		}
		childError := tile.ComputeGeometricError(opts.GeometricErrorScale)
		if childError > rootError {
			childError = rootError
		}
		children = append(children, Child{
			Content:        Content{Url: strconv.Itoa(tile.Index) + "/content.b3dm"},
			BoundingVolume: childVolume,
			GeometricError: childError,
			Refine:         opts.RefineMode.String(),
		})
	}

	tileset := Tileset{
		Asset:          Asset{Version: "1.0"},
		GeometricError: rootError,
		Root: Root{
			BoundingVolume: rootVolume,
			GeometricError: rootError,
			Refine:         opts.RefineMode.String(),
			Children:       children,
		},
	}

	return json.MarshalIndent(tileset, "", "\t")
}

// Writes the tileset.json file for the given tile set into basePath
func WriteTilesetJsonFile(basePath string, tiles []*tiling.Tile, opts *tiler.TilerOptions, converter converters.CoordinateConverter, corrector converters.ElevationCorrector) error {
	if err := tools.CreateDirectoryIfDoesNotExist(basePath); err != nil {
		return err
	}

	jsonData, err := GenerateTilesetJson(tiles, opts, converter, corrector)
	if err != nil {
		return err
	}

	return os.WriteFile(path.Join(basePath, "tileset.json"), jsonData, 0666)
}

// Georeferenced scenes get region volumes in WGS84, local scenes keep
// box volumes in scene coordinates.
func makeBoundingVolume(box *geometry.BoundingBox, opts *tiler.TilerOptions, converter converters.CoordinateConverter, corrector converters.ElevationCorrector) (BoundingVolume, error) {
	if opts.Srid == 0 {
		arr := box.GetAsBoxArray()
		return BoundingVolume{Box: arr[:]}, nil
	}

	shifted := geometry.NewBoundingBox(
		box.Xmin, box.Xmax,
		box.Ymin, box.Ymax,
		corrector.CorrectElevation(box.Xmid, box.Ymid, box.Zmin),
		corrector.CorrectElevation(box.Xmid, box.Ymid, box.Zmax),
	)
	region, err := converter.Convert2DBoundingboxToWGS84Region(shifted, opts.Srid)
	if err != nil {
		return BoundingVolume{}, err
	}
	arr := region.GetAsRegionArray()
	return BoundingVolume{Region: arr[:]}, nil
}
