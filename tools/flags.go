package tools

import (
	"flag"
	"log"
)

const (
	CommandConvert = "convert"
	CommandTile    = "tile"
)

type FlagsGlobal struct {
	Help    *bool `json:"help"`
	Version *bool `json:"version"`
}

type TilerFlags struct {
	Input                     *string  `json:"input"`
	Srid                      *int     `json:"srid"`
	ZOffset                   *float64
	MaxVerticesPerTile        *int `json:"max_vertices_per_tile"`
	FolderProcessing          *bool
	RecursiveFolderProcessing *bool
	RefineMode                *string `json:"refine_mode"`
	ConfigFile                *string `json:"config_file"`
}

type FlagsForCommandConvert struct {
	TilerFlags
	Output       *string
	Silent       *bool
	LogTimestamp *bool
	Help         *bool
	Version      *bool
}

type FlagsForCommandTile struct {
	TilerFlags
	Output       *string
	Silent       *bool
	LogTimestamp *bool
	Help         *bool
	Version      *bool
}

func ParseFlagsGlobal() FlagsGlobal {
	help := defineBoolFlag("help", "h", false, "Displays this help.")
	version := defineBoolFlag("version", "v", false, "Displays the version of ifctiler.")

	flag.Parse()

	return FlagsGlobal{
		Help:    help,
		Version: version,
	}
}

func ParseFlagsForCommandConvert(args []string) FlagsForCommandConvert {
	log.Println(FmtJSONString(args))

	flagCommand := flag.NewFlagSet("command-convert", flag.ExitOnError)

	input := defineStringFlagCommand(flagCommand, "input", "i", "", "Specifies the input scene file/folder.")
	output := defineStringFlagCommand(flagCommand, "output", "o", "", "Specifies the output glb file.")
	configFile := defineStringFlagCommand(flagCommand, "config", "c", "", "Specifies an optional yaml config file.")
	folderProcessing := defineBoolFlagCommand(flagCommand, "folder", "f", false, "Enables processing of all scene files from input folder. Input must be a folder if specified.")
	recursiveFolderProcessing := defineBoolFlagCommand(flagCommand, "recursive", "r", false, "Enables recursive lookup for all scene files inside the subfolders.")
	silent := defineBoolFlagCommand(flagCommand, "silent", "s", false, "Use to suppress all the non-error messages.")
	logTimestamp := defineBoolFlagCommand(flagCommand, "timestamp", "t", false, "Adds timestamp to log messages.")
	help := defineBoolFlagCommand(flagCommand, "help", "h", false, "Displays this help.")
	version := defineBoolFlagCommand(flagCommand, "version", "v", false, "Displays the version of ifctiler.")

	srid := 0
	zOffset := 0.0
	maxVerticesPerTile := 0
	refineMode := ""

	flagCommand.Parse(args)

	return FlagsForCommandConvert{
		TilerFlags: TilerFlags{
			Input:                     input,
			Srid:                      &srid,
			ZOffset:                   &zOffset,
			MaxVerticesPerTile:        &maxVerticesPerTile,
			FolderProcessing:          folderProcessing,
			RecursiveFolderProcessing: recursiveFolderProcessing,
			RefineMode:                &refineMode,
			ConfigFile:                configFile,
		},
		Output:       output,
		Silent:       silent,
		LogTimestamp: logTimestamp,
		Help:         help,
		Version:      version,
	}
}

func ParseFlagsForCommandTile(args []string) FlagsForCommandTile {
	log.Println(FmtJSONString(args))

	flagCommand := flag.NewFlagSet("command-tile", flag.ExitOnError)

	input := defineStringFlagCommand(flagCommand, "input", "i", "", "Specifies the input scene file/folder.")
	output := defineStringFlagCommand(flagCommand, "output", "o", "", "Specifies the output folder where to write the tileset data.")
	configFile := defineStringFlagCommand(flagCommand, "config", "c", "", "Specifies an optional yaml config file.")
	srid := defineIntFlagCommand(flagCommand, "srid", "e", 0, "EPSG srid code of the scene coordinates. 0 means a local, non georeferenced scene.")
	zOffset := defineFloat64FlagCommand(flagCommand, "zoffset", "z", 0, "Vertical offset to apply during georeferencing, in meters.")
	maxVerticesPerTile := defineIntFlagCommand(flagCommand, "max-vertices", "m", 0, "Advisory maximum number of vertices per tile, 0 means the configured or built-in default. A single element larger than the budget still becomes one tile.")
	refineMode := defineStringFlagCommand(flagCommand, "refine-mode", "", "", "Type of refine mode, can be 'ADD' or 'REPLACE'. Empty means the configured or built-in default.")
	folderProcessing := defineBoolFlagCommand(flagCommand, "folder", "f", false, "Enables processing of all scene files from input folder. Input must be a folder if specified.")
	recursiveFolderProcessing := defineBoolFlagCommand(flagCommand, "recursive", "r", false, "Enables recursive lookup for all scene files inside the subfolders.")
	silent := defineBoolFlagCommand(flagCommand, "silent", "s", false, "Use to suppress all the non-error messages.")
	logTimestamp := defineBoolFlagCommand(flagCommand, "timestamp", "t", false, "Adds timestamp to log messages.")
	help := defineBoolFlagCommand(flagCommand, "help", "h", false, "Displays this help.")
	version := defineBoolFlagCommand(flagCommand, "version", "v", false, "Displays the version of ifctiler.")

	flagCommand.Parse(args)

	return FlagsForCommandTile{
		TilerFlags: TilerFlags{
			Input:                     input,
			Srid:                      srid,
			ZOffset:                   zOffset,
			MaxVerticesPerTile:        maxVerticesPerTile,
			FolderProcessing:          folderProcessing,
			RecursiveFolderProcessing: recursiveFolderProcessing,
			RefineMode:                refineMode,
			ConfigFile:                configFile,
		},
		Output:       output,
		Silent:       silent,
		LogTimestamp: logTimestamp,
		Help:         help,
		Version:      version,
	}
}

func defineStringFlag(name string, shortHand string, defaultValue string, usage string) *string {
	var output string
	flag.StringVar(&output, name, defaultValue, usage)
	if shortHand != name && shortHand != "" {
		flag.StringVar(&output, shortHand, defaultValue, usage+" (shorthand for "+name+")")
	}

	return &output
}

func defineBoolFlag(name string, shortHand string, defaultValue bool, usage string) *bool {
	var output bool
	flag.BoolVar(&output, name, defaultValue, usage)
	if shortHand != name {
		flag.BoolVar(&output, shortHand, defaultValue, usage+" (shorthand for "+name+")")
	}
	return &output
}

func defineStringFlagCommand(flagCommand *flag.FlagSet, name string, shortHand string, defaultValue string, usage string) *string {
	var output string
	flagCommand.StringVar(&output, name, defaultValue, usage)
	if shortHand != name && shortHand != "" {
		flagCommand.StringVar(&output, shortHand, defaultValue, usage+" (shorthand for "+name+")")
	}

	return &output
}

func defineIntFlagCommand(flagCommand *flag.FlagSet, name string, shortHand string, defaultValue int, usage string) *int {
	var output int
	flagCommand.IntVar(&output, name, defaultValue, usage)
	if shortHand != name {
		flagCommand.IntVar(&output, shortHand, defaultValue, usage+" (shorthand for "+name+")")
	}

	return &output
}

func defineFloat64FlagCommand(flagCommand *flag.FlagSet, name string, shortHand string, defaultValue float64, usage string) *float64 {
	var output float64
	flagCommand.Float64Var(&output, name, defaultValue, usage)
	if shortHand != name {
		flagCommand.Float64Var(&output, shortHand, defaultValue, usage+" (shorthand for "+name+")")
	}
	return &output
}

func defineBoolFlagCommand(flagCommand *flag.FlagSet, name string, shortHand string, defaultValue bool, usage string) *bool {
	var output bool
	flagCommand.BoolVar(&output, name, defaultValue, usage)
	if shortHand != name {
		flagCommand.BoolVar(&output, shortHand, defaultValue, usage+" (shorthand for "+name+")")
	}
	return &output
}
