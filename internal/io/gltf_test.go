package io

import (
	"encoding/binary"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bimscene/ifc_tiler/internal/mesh"
)

func testBuffer() *mesh.Buffer {
	return &mesh.Buffer{
		Coords: []float64{
			100, 200, 300,
			101, 200, 300,
			100, 201, 300,
			100, 200, 302,
		},
		Colors: []float64{
			1, 0, 0, 1,
			1, 0, 0, 1,
			0, 1, 0, 0.5,
			0, 1, 0, 0.5,
		},
		Faces: []uint32{0, 1, 2, 1, 2, 3},
		Spans: []mesh.ElementSpan{
			{ElementID: "wall", VertexCount: 4, FaceCount: 2},
		},
	}
}

func decodeGlbChunks(t *testing.T, data []byte) (jsonChunk []byte, binChunk []byte) {
	require.GreaterOrEqual(t, len(data), 12)
	assert.Equal(t, "glTF", string(data[0:4]))
	assert.Equal(t, uint32(2), binary.LittleEndian.Uint32(data[4:8]))
	assert.Equal(t, uint32(len(data)), binary.LittleEndian.Uint32(data[8:12]))

	jsonLen := int(binary.LittleEndian.Uint32(data[12:16]))
	assert.Equal(t, uint32(glbJSONChunkType), binary.LittleEndian.Uint32(data[16:20]))
	jsonChunk = data[20 : 20+jsonLen]

	if len(data) > 20+jsonLen {
		binStart := 20 + jsonLen
		binLen := int(binary.LittleEndian.Uint32(data[binStart : binStart+4]))
		assert.Equal(t, uint32(glbBinChunkType), binary.LittleEndian.Uint32(data[binStart+4:binStart+8]))
		binChunk = data[binStart+8 : binStart+8+binLen]
		assert.Len(t, data, binStart+8+binLen)
	}
	return jsonChunk, binChunk
}

func TestEncodeGlbContainerLayout(t *testing.T) {
	data, err := EncodeGlb(testBuffer())
	require.NoError(t, err)

	jsonChunk, binChunk := decodeGlbChunks(t, data)
	assert.Zero(t, len(jsonChunk)%4)
	assert.Zero(t, len(binChunk)%4)
	assert.Zero(t, len(data)%4)

	var doc gltfDocument
	require.NoError(t, json.Unmarshal(jsonChunk, &doc))
	assert.Equal(t, "2.0", doc.Asset.Version)
	require.Len(t, doc.Buffers, 1)
	assert.Equal(t, len(binChunk), doc.Buffers[0].ByteLength)
}

func TestEncodeGlbGeometryLayout(t *testing.T) {
	buffer := testBuffer()
	data, err := EncodeGlb(buffer)
	require.NoError(t, err)

	jsonChunk, binChunk := decodeGlbChunks(t, data)
	var doc gltfDocument
	require.NoError(t, json.Unmarshal(jsonChunk, &doc))

	require.Len(t, doc.Accessors, 3)
	positions := doc.Accessors[0]
	colors := doc.Accessors[1]
	indices := doc.Accessors[2]
	assert.Equal(t, "VEC3", positions.Type)
	assert.Equal(t, componentTypeFloat, positions.ComponentType)
	assert.Equal(t, buffer.NumberOfVertices(), positions.Count)
	assert.Equal(t, "VEC4", colors.Type)
	assert.Equal(t, buffer.NumberOfVertices(), colors.Count)
	assert.Equal(t, "SCALAR", indices.Type)
	assert.Equal(t, componentTypeUnsignedInt, indices.ComponentType)
	assert.Equal(t, len(buffer.Faces), indices.Count)

	require.Len(t, doc.BufferViews, 3)
	expectedBinLen := buffer.NumberOfVertices()*3*4 + buffer.NumberOfVertices()*4*4 + len(buffer.Faces)*4
	assert.Equal(t, expectedBinLen, len(binChunk))
	assert.Equal(t, targetElementArray, doc.BufferViews[2].Target)

	// index data is stored verbatim after positions and colors
	indexOffset := doc.BufferViews[2].ByteOffset
	firstIndex := binary.LittleEndian.Uint32(binChunk[indexOffset : indexOffset+4])
	assert.Equal(t, uint32(0), firstIndex)
	lastIndex := binary.LittleEndian.Uint32(binChunk[indexOffset+5*4 : indexOffset+6*4])
	assert.Equal(t, uint32(3), lastIndex)
}

func TestEncodeGlbPositionsAreCenterRelative(t *testing.T) {
	buffer := testBuffer()
	data, err := EncodeGlb(buffer)
	require.NoError(t, err)

	jsonChunk, _ := decodeGlbChunks(t, data)
	var doc gltfDocument
	require.NoError(t, json.Unmarshal(jsonChunk, &doc))

	box := buffer.GetBoundingBox()
	require.Len(t, doc.Nodes, 1)
	assert.Equal(t, []float64{box.Xmid, box.Ymid, box.Zmid}, doc.Nodes[0].Translation)

	positions := doc.Accessors[0]
	for axis := 0; axis < 3; axis++ {
		assert.LessOrEqual(t, positions.Min[axis], 0.0)
		assert.GreaterOrEqual(t, positions.Max[axis], 0.0)
	}
	// the test box spans 1, 1 and 2 units around the center
	assert.InDelta(t, -0.5, positions.Min[0], 1e-6)
	assert.InDelta(t, 0.5, positions.Max[0], 1e-6)
	assert.InDelta(t, -1.0, positions.Min[2], 1e-6)
	assert.InDelta(t, 1.0, positions.Max[2], 1e-6)
}

func TestEncodeGlbEmptyBuffer(t *testing.T) {
	data, err := EncodeGlb(&mesh.Buffer{})
	require.NoError(t, err)

	jsonChunk, binChunk := decodeGlbChunks(t, data)
	assert.Empty(t, binChunk)

	var doc gltfDocument
	require.NoError(t, json.Unmarshal(jsonChunk, &doc))
	assert.Empty(t, doc.Meshes)
	assert.Empty(t, doc.Buffers)
	require.Len(t, doc.Scenes, 1)
}

func TestEncodeGlbMaterialIsBlended(t *testing.T) {
	data, err := EncodeGlb(testBuffer())
	require.NoError(t, err)

	jsonChunk, _ := decodeGlbChunks(t, data)
	var doc gltfDocument
	require.NoError(t, json.Unmarshal(jsonChunk, &doc))

	require.Len(t, doc.Materials, 1)
	assert.Equal(t, "BLEND", doc.Materials[0].AlphaMode)
	assert.True(t, doc.Materials[0].DoubleSided)
	require.Len(t, doc.Meshes, 1)
	require.Len(t, doc.Meshes[0].Primitives, 1)
	attrs := doc.Meshes[0].Primitives[0].Attributes
	assert.Contains(t, attrs, "POSITION")
	assert.Contains(t, attrs, "COLOR_0")
}
