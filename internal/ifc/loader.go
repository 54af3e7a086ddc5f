package ifc

import (
	"encoding/json"
	"fmt"
	"os"
)

// Loads a parsed scene document from the given file. Any failure here is a
// source parse failure and is the only error class that aborts a run.
func Load(filePath string) (*SceneDocument, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("cannot read scene file %s: %w", filePath, err)
	}

	return Parse(data)
}

// Parses a scene document from raw bytes.
func Parse(data []byte) (*SceneDocument, error) {
	var doc SceneDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("cannot parse scene document: %w", err)
	}

	return &doc, nil
}
