package tiler

import "strings"

type RefineMode string

const (
	RefineModeAdd     RefineMode = "ADD"
	RefineModeReplace RefineMode = "REPLACE"
)

func (e RefineMode) String() string {
	if e == RefineModeAdd {
		return "ADD"
	} else if e == RefineModeReplace {
		return "REPLACE"
	}
	return ""
}

func ParseRefineMode(value string) RefineMode {
	normalizedValue := strings.Trim(strings.ToUpper(value), " ")
	if normalizedValue == "ADD" {
		return RefineModeAdd
	} else if normalizedValue == "REPLACE" {
		return RefineModeReplace
	}
	return ""
}

// Contains the options needed for the conversion pipeline
type TilerOptions struct {
	Input               string     // Input scene file/folder
	Srid                int        // EPSG code of the scene coordinates, 0 means local non-georeferenced
	ZOffset             float64    // Z Offset in meters to apply to vertices during georeferencing
	MaxVerticesPerTile  int        // Advisory vertex budget per tile, element atomicity may exceed it
	FolderProcessing    bool       // Enables the processing of all scene files in folder
	Recursive           bool       // Recursive lookup of scene files in subfolders
	RefineMode          RefineMode // Refine mode to use to generate the tileset
	GeometricErrorScale float64    // Divisor applied to tile diagonals when computing leaf geometric errors

	Command             string
	TilerConvertOptions *TilerConvertOptions
	TilerTileOptions    *TilerTileOptions
}

type TilerConvertOptions struct {
	Output string // Output glb file
}

type TilerTileOptions struct {
	Output string // Output tileset folder
}

func (opt *TilerOptions) Copy() *TilerOptions {
	newOpt := &TilerOptions{
		Input:               opt.Input,
		Srid:                opt.Srid,
		ZOffset:             opt.ZOffset,
		MaxVerticesPerTile:  opt.MaxVerticesPerTile,
		FolderProcessing:    opt.FolderProcessing,
		Recursive:           opt.Recursive,
		RefineMode:          opt.RefineMode,
		GeometricErrorScale: opt.GeometricErrorScale,
		Command:             opt.Command,
	}

	if opt.TilerConvertOptions != nil {
		convertOpt := *opt.TilerConvertOptions
		newOpt.TilerConvertOptions = &convertOpt
	}

	if opt.TilerTileOptions != nil {
		tileOpt := *opt.TilerTileOptions
		newOpt.TilerTileOptions = &tileOpt
	}

	return newOpt
}
