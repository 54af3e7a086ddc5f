package ifc

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleScene = `{
	"schema": "IFC4",
	"styles": [
		{"id": "s1", "rgb": [1, 0, 0], "transparency": 0.5},
		{"id": "s2", "rgb": [0, 1, 0]}
	],
	"styled_items": [{"id": "si1", "style_refs": ["s1"]}],
	"materials": [{"id": "m1", "style_refs": ["s2"]}],
	"textures": [{"id": "t1", "kind": "image", "path": "brick.png"}],
	"elements": [
		{"id": "wall-1", "type": "IfcWall", "styled_item_ref": "si1",
		 "geometry": [{"vertices": [0,0,0, 1,0,0, 0,1,0], "faces": [0,1,2]}]}
	]
}`

func TestParse(t *testing.T) {
	doc, err := Parse([]byte(sampleScene))
	require.NoError(t, err)

	assert.Equal(t, "IFC4", doc.Schema)
	require.Len(t, doc.Styles, 2)
	require.NotNil(t, doc.Styles[0].RGB)
	assert.Equal(t, [3]float64{1, 0, 0}, *doc.Styles[0].RGB)
	require.NotNil(t, doc.Styles[0].Transparency)
	assert.Equal(t, 0.5, *doc.Styles[0].Transparency)
	assert.Nil(t, doc.Styles[1].Transparency)

	require.Len(t, doc.Elements, 1)
	assert.Equal(t, "si1", doc.Elements[0].StyledItemRef)
	require.Len(t, doc.Elements[0].Geometry, 1)
	assert.Len(t, doc.Elements[0].Geometry[0].Vertices, 9)
}

func TestParseMalformed(t *testing.T) {
	_, err := Parse([]byte("{not json"))
	assert.Error(t, err)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scene.json")
	require.NoError(t, os.WriteFile(path, []byte(sampleScene), 0666))

	doc, err := Load(path)
	require.NoError(t, err)
	assert.Len(t, doc.Elements, 1)
}
