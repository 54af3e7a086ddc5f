package tools

import (
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/bimscene/ifc_tiler/internal/tiler"
)

type FileFinder interface {
	GetSceneFilesToProcess(opts *tiler.TilerOptions) []string
}

type StandardFileFinder struct{}

func NewStandardFileFinder() FileFinder {
	return &StandardFileFinder{}
}

func (f *StandardFileFinder) GetSceneFilesToProcess(opts *tiler.TilerOptions) []string {
	// If folder processing is not enabled then the scene file is given by the
	// -input flag, otherwise look for scene files in the -input folder,
	// eventually excluding nested folders if the Recursive flag is disabled
	if !opts.FolderProcessing {
		return []string{opts.Input}
	}

	return f.getSceneFilesFromInputFolder(opts)
}

func (f *StandardFileFinder) getSceneFilesFromInputFolder(opts *tiler.TilerOptions) []string {
	var sceneFiles = make([]string, 0)

	baseInfo, _ := os.Stat(opts.Input)
	err := filepath.Walk(
		opts.Input,
		func(path string, info os.FileInfo, err error) error {
			if info.IsDir() && !opts.Recursive && !os.SameFile(info, baseInfo) {
				return filepath.SkipDir
			} else {
				if isSceneFile(info.Name()) {
					sceneFiles = append(sceneFiles, path)
				}
			}
			return nil
		},
	)

	if err != nil {
		log.Fatal(err)
	}

	return sceneFiles
}

func isSceneFile(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	return ext == ".json" || ext == ".ifcjson"
}
