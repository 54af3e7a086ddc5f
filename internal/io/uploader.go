package io

import "github.com/golang/glog"

// Pushes a serialized tileset folder to remote storage. Remote backends
// live outside this module; the pipeline only needs the seam.
type Uploader interface {
	UploadTileset(localDir string) error
}

// Uploader used when no remote storage is configured: the tileset stays
// where the consumers wrote it.
type LocalUploader struct{}

func NewLocalUploader() Uploader {
	return &LocalUploader{}
}

func (u *LocalUploader) UploadTileset(localDir string) error {
	glog.Infof("tileset left in place at %s, no remote storage configured", localDir)
	return nil
}
