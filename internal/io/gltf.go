package io

import (
	"encoding/json"
	"fmt"

	"github.com/bimscene/ifc_tiler/internal/mesh"
	"github.com/bimscene/ifc_tiler/tools"
)

const (
	glbJSONChunkType = 0x4E4F534A // "JSON"
	glbBinChunkType  = 0x004E4942 // "BIN\0"

	componentTypeUnsignedInt = 5125
	componentTypeFloat       = 5126
	targetArrayBuffer        = 34962
	targetElementArray       = 34963
	modeTriangles            = 4
)

type gltfAsset struct {
	Version   string `json:"version"`
	Generator string `json:"generator"`
}

type gltfScene struct {
	Nodes []int `json:"nodes,omitempty"`
}

type gltfNode struct {
	Mesh        *int      `json:"mesh,omitempty"`
	Translation []float64 `json:"translation,omitempty"`
}

type gltfPrimitive struct {
	Attributes map[string]int `json:"attributes"`
	Indices    *int           `json:"indices,omitempty"`
	Material   *int           `json:"material,omitempty"`
	Mode       int            `json:"mode"`
}

type gltfMesh struct {
	Primitives []gltfPrimitive `json:"primitives"`
}

type gltfPbr struct {
	BaseColorFactor [4]float64 `json:"baseColorFactor"`
	MetallicFactor  float64    `json:"metallicFactor"`
	RoughnessFactor float64    `json:"roughnessFactor"`
}

type gltfMaterial struct {
	PbrMetallicRoughness gltfPbr `json:"pbrMetallicRoughness"`
	AlphaMode            string  `json:"alphaMode"`
	DoubleSided          bool    `json:"doubleSided"`
}

type gltfAccessor struct {
	BufferView    int       `json:"bufferView"`
	ComponentType int       `json:"componentType"`
	Count         int       `json:"count"`
	Type          string    `json:"type"`
	Min           []float64 `json:"min,omitempty"`
	Max           []float64 `json:"max,omitempty"`
}

type gltfBufferView struct {
	Buffer     int `json:"buffer"`
	ByteOffset int `json:"byteOffset"`
	ByteLength int `json:"byteLength"`
	Target     int `json:"target,omitempty"`
}

type gltfBuffer struct {
	ByteLength int `json:"byteLength"`
}

type gltfDocument struct {
	Asset       gltfAsset        `json:"asset"`
	Scene       int              `json:"scene"`
	Scenes      []gltfScene      `json:"scenes"`
	Nodes       []gltfNode       `json:"nodes,omitempty"`
	Meshes      []gltfMesh       `json:"meshes,omitempty"`
	Materials   []gltfMaterial   `json:"materials,omitempty"`
	Accessors   []gltfAccessor   `json:"accessors,omitempty"`
	BufferViews []gltfBufferView `json:"bufferViews,omitempty"`
	Buffers     []gltfBuffer     `json:"buffers,omitempty"`
}

// Encodes a mesh buffer as a binary glTF container. Vertex positions are
// expressed relative to the buffer center, which becomes the translation
// of the single node, so float32 truncation stays small even for scenes
// far from the origin. An empty buffer yields a valid GLB with no mesh.
func EncodeGlb(buffer *mesh.Buffer) ([]byte, error) {
	doc := gltfDocument{
		Asset:  gltfAsset{Version: "2.0", Generator: "ifc_tiler"},
		Scene:  0,
		Scenes: []gltfScene{{}},
	}

	var binChunk []byte
	if !buffer.IsEmpty() {
		binChunk = buildGeometryChunk(&doc, buffer)
	}

	jsonChunk, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("cannot marshal gltf document: %w", err)
	}
	jsonChunk = tools.PadByteArray(jsonChunk, 4, ' ')
	binChunk = tools.PadByteArray(binChunk, 4, 0)

	totalLength := 12 + 8 + len(jsonChunk)
	if len(binChunk) > 0 {
		totalLength += 8 + len(binChunk)
	}

	out := make([]byte, 0, totalLength)
	out = append(out, []byte("glTF")...)
	out = append(out, tools.ConvertIntToByteArray(2)...) // container version
	out = append(out, tools.ConvertIntToByteArray(totalLength)...)
	out = append(out, tools.ConvertIntToByteArray(len(jsonChunk))...)
	out = append(out, tools.ConvertIntToByteArray(glbJSONChunkType)...)
	out = append(out, jsonChunk...)
	if len(binChunk) > 0 {
		out = append(out, tools.ConvertIntToByteArray(len(binChunk))...)
		out = append(out, tools.ConvertIntToByteArray(glbBinChunkType)...)
		out = append(out, binChunk...)
	}

	return out, nil
}

// Fills the document with the mesh, material, accessor and buffer view
// entries and returns the packed binary chunk: positions, colors, indices.
func buildGeometryChunk(doc *gltfDocument, buffer *mesh.Buffer) []byte {
	box := buffer.GetBoundingBox()
	center := []float64{box.Xmid, box.Ymid, box.Zmid}

	relative := make([]float64, len(buffer.Coords))
	for i := 0; i < len(buffer.Coords); i += 3 {
		relative[i] = buffer.Coords[i] - center[0]
		relative[i+1] = buffer.Coords[i+1] - center[1]
		relative[i+2] = buffer.Coords[i+2] - center[2]
	}

	positionBytes := tools.ConvertTruncateFloat64ToFloat32ByteArray(relative)
	colorBytes := tools.ConvertTruncateFloat64ToFloat32ByteArray(buffer.Colors)
	indexBytes := tools.ConvertUint32SliceToByteArray(buffer.Faces)

	posMin, posMax := float32Extents(relative)

	doc.BufferViews = []gltfBufferView{
		{Buffer: 0, ByteOffset: 0, ByteLength: len(positionBytes), Target: targetArrayBuffer},
		{Buffer: 0, ByteOffset: len(positionBytes), ByteLength: len(colorBytes), Target: targetArrayBuffer},
		{Buffer: 0, ByteOffset: len(positionBytes) + len(colorBytes), ByteLength: len(indexBytes), Target: targetElementArray},
	}
	doc.Accessors = []gltfAccessor{
		{BufferView: 0, ComponentType: componentTypeFloat, Count: buffer.NumberOfVertices(), Type: "VEC3", Min: posMin, Max: posMax},
		{BufferView: 1, ComponentType: componentTypeFloat, Count: buffer.NumberOfVertices(), Type: "VEC4"},
		{BufferView: 2, ComponentType: componentTypeUnsignedInt, Count: len(buffer.Faces), Type: "SCALAR"},
	}

	indices := 2
	material := 0
	doc.Materials = []gltfMaterial{{
		PbrMetallicRoughness: gltfPbr{
			BaseColorFactor: [4]float64{1, 1, 1, 1},
			MetallicFactor:  0,
			RoughnessFactor: 1,
		},
		AlphaMode:   "BLEND",
		DoubleSided: true,
	}}
	doc.Meshes = []gltfMesh{{
		Primitives: []gltfPrimitive{{
			Attributes: map[string]int{"POSITION": 0, "COLOR_0": 1},
			Indices:    &indices,
			Material:   &material,
			Mode:       modeTriangles,
		}},
	}}
	meshIndex := 0
	doc.Nodes = []gltfNode{{Mesh: &meshIndex, Translation: center}}
	doc.Scenes = []gltfScene{{Nodes: []int{0}}}

	binChunk := make([]byte, 0, len(positionBytes)+len(colorBytes)+len(indexBytes))
	binChunk = append(binChunk, positionBytes...)
	binChunk = append(binChunk, colorBytes...)
	binChunk = append(binChunk, indexBytes...)
	doc.Buffers = []gltfBuffer{{ByteLength: len(binChunk)}}

	return binChunk
}

// Accessor bounds must cover the truncated float32 values actually stored,
// so extents are computed after the float64 to float32 round trip.
func float32Extents(coords []float64) ([]float64, []float64) {
	min := []float64{0, 0, 0}
	max := []float64{0, 0, 0}
	for axis := 0; axis < 3; axis++ {
		min[axis] = float64(float32(coords[axis]))
		max[axis] = float64(float32(coords[axis]))
	}
	for i := 3; i < len(coords); i += 3 {
		for axis := 0; axis < 3; axis++ {
			v := float64(float32(coords[i+axis]))
			if v < min[axis] {
				min[axis] = v
			}
			if v > max[axis] {
				max[axis] = v
			}
		}
	}
	return min, max
}
