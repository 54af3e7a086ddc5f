package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/bimscene/ifc_tiler/internal/config"
	"github.com/bimscene/ifc_tiler/internal/tiler"
	"github.com/bimscene/ifc_tiler/pkg"
	"github.com/bimscene/ifc_tiler/pkg/algorithm_manager/std_algorithm_manager"
	"github.com/bimscene/ifc_tiler/tools"
)

const VERSION = "1.0.2"

const logo = `
 _  __      _   _ _
(_)/ _| ___| |_(_) | ___ _ __
| | |_ / __| __| | |/ _ \ '__|
| |  _| (__| |_| | |  __/ |
|_|_|  \___|\__|_|_|\___|_|
        An IFC scene to Cesium 3D Tiles converter written in golang
`

func main() {
	log.SetPrefix("[ifctiler] ")
	log.SetFlags(log.LUTC | log.Ldate | log.Lmicroseconds | log.Lshortfile)

	flagsGlobal := tools.ParseFlagsGlobal()
	log.Println(tools.FmtJSONString(flagsGlobal))

	args := flag.Args()
	if len(args) == 0 {
		log.Fatal("Please specify a subcommand [convert|tile].")
	}
	cmd, args := args[0], args[1:]

	switch cmd {
	case tools.CommandConvert:
		mainCommandConvert(args)
	case tools.CommandTile:
		mainCommandTile(args)
	default:
		log.Fatalf("Unrecognized command [%q]. Command must be one of [convert|tile]", cmd)
	}
}

func mainCommandConvert(args []string) {
	// Retrieve command line args
	flags := tools.ParseFlagsForCommandConvert(args)

	// Prints the command line flag description
	if *flags.Help {
		showHelp()
		return
	}

	if *flags.Version {
		printVersion()
		return
	}

	// set logging and timestamp logging
	if *flags.Silent {
		tools.DisableLogger()
	} else {
		printLogo()
	}
	if !*flags.LogTimestamp {
		tools.DisableLoggerTimestamp()
	}

	opts := optionsFromTilerFlags(&flags.TilerFlags)
	opts.Command = tools.CommandConvert
	opts.TilerConvertOptions = &tiler.TilerConvertOptions{
		Output: *flags.Output,
	}

	if err := layerConfigFile(opts, *flags.ConfigFile); err != nil {
		log.Fatal("Error reading config file: ", err)
	}

	// Validate TilerOptions
	if msg, res := validateOptionsForCommandConvert(opts); !res {
		log.Fatal("Error parsing input parameters: " + msg)
	}

	runTiler(opts)
}

func mainCommandTile(args []string) {
	// Retrieve command line args
	flags := tools.ParseFlagsForCommandTile(args)

	if *flags.Help {
		showHelp()
		return
	}

	if *flags.Version {
		printVersion()
		return
	}

	if *flags.Silent {
		tools.DisableLogger()
	} else {
		printLogo()
	}
	if !*flags.LogTimestamp {
		tools.DisableLoggerTimestamp()
	}

	opts := optionsFromTilerFlags(&flags.TilerFlags)
	opts.Command = tools.CommandTile
	opts.TilerTileOptions = &tiler.TilerTileOptions{
		Output: *flags.Output,
	}

	if err := layerConfigFile(opts, *flags.ConfigFile); err != nil {
		log.Fatal("Error reading config file: ", err)
	}

	// Validate TilerOptions
	if msg, res := validateOptionsForCommandTile(opts); !res {
		log.Fatal("Error parsing input parameters: " + msg)
	}

	runTiler(opts)
}

// Puts the shared command line args inside a TilerOptions struct
func optionsFromTilerFlags(tilerFlags *tools.TilerFlags) *tiler.TilerOptions {
	return &tiler.TilerOptions{
		Input:              *tilerFlags.Input,
		Srid:               *tilerFlags.Srid,
		ZOffset:            *tilerFlags.ZOffset,
		MaxVerticesPerTile: *tilerFlags.MaxVerticesPerTile,
		FolderProcessing:   *tilerFlags.FolderProcessing,
		Recursive:          *tilerFlags.RecursiveFolderProcessing,
		RefineMode:         tiler.ParseRefineMode(*tilerFlags.RefineMode),
	}
}

// Fills whatever the command line left unset from the yaml config file,
// or from the built-in defaults when no file is given.
func layerConfigFile(opts *tiler.TilerOptions, configFile string) error {
	cfg, err := config.Load(configFile)
	if err != nil {
		return err
	}
	cfg.ApplyToOptions(opts)
	return nil
}

// Validates the input options provided to the command line tool checking
// that input and output folders/files exist
func validateOptionsForCommandConvert(opts *tiler.TilerOptions) (string, bool) {
	if _, err := os.Stat(opts.Input); os.IsNotExist(err) {
		return "Input file/folder not found", false
	}
	if opts.FolderProcessing && opts.TilerConvertOptions.Output == "" {
		return "Output folder is required when processing a folder", false
	}

	return "", true
}

func validateOptionsForCommandTile(opts *tiler.TilerOptions) (string, bool) {
	if _, err := os.Stat(opts.Input); os.IsNotExist(err) {
		return "Input file/folder not found", false
	}
	if opts.TilerTileOptions.Output == "" {
		return "Output folder is required", false
	}
	if opts.RefineMode == "" {
		return "refine-mode should be either ADD or REPLACE", false
	}
	if opts.MaxVerticesPerTile <= 0 {
		return "max-vertices should be a positive number", false
	}
	if opts.GeometricErrorScale < 1 {
		return "geometric_error_scale should be at least 1", false
	}

	return "", true
}

// Starts the tiler
func runTiler(opts *tiler.TilerOptions) {
	defer timeTrack(time.Now(), "tiler")
	err := pkg.NewTiler(tools.NewStandardFileFinder(), std_algorithm_manager.NewAlgorithmManager(opts)).RunTiler(opts)

	if err != nil {
		log.Fatal("Error while tiling: ", err)
	} else {
		tools.LogOutput("Conversion Completed")
	}
}

func timeTrack(start time.Time, name string) {
	elapsed := time.Since(start)
	tools.LogOutput(fmt.Sprintf("%s took %s", name, elapsed))
}

func printLogo() {
	fmt.Println(logo)
}

func showHelp() {
	printLogo()
	fmt.Println("***")
	fmt.Println("ifctiler is a tool that processes IFC scene exports and transforms them into glTF models or a 3D Tiles data structure consumable by Cesium.js")
	printVersion()
	fmt.Println("***")
	fmt.Println("")
	fmt.Println("Command line flags: ")
	flag.CommandLine.SetOutput(os.Stdout)
	flag.PrintDefaults()
}

func printVersion() {
	fmt.Println("v." + VERSION)
}
