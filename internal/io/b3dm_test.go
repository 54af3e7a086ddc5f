package io

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeB3dmHeader(t *testing.T) {
	data, err := EncodeB3dm(testBuffer())
	require.NoError(t, err)

	require.GreaterOrEqual(t, len(data), b3dmHeaderLength)
	assert.Equal(t, "b3dm", string(data[0:4]))
	assert.Equal(t, uint32(1), binary.LittleEndian.Uint32(data[4:8]))
	assert.Equal(t, uint32(len(data)), binary.LittleEndian.Uint32(data[8:12]))

	featureTableLen := int(binary.LittleEndian.Uint32(data[12:16]))
	assert.Zero(t, binary.LittleEndian.Uint32(data[16:20])) // feature table binary
	assert.Zero(t, binary.LittleEndian.Uint32(data[20:24])) // batch table json
	assert.Zero(t, binary.LittleEndian.Uint32(data[24:28])) // batch table binary

	// the embedded gltf must start on an 8-byte boundary
	glbStart := b3dmHeaderLength + featureTableLen
	assert.Zero(t, glbStart%8)
	assert.Equal(t, "glTF", string(data[glbStart:glbStart+4]))
}

func TestEncodeB3dmFeatureTable(t *testing.T) {
	data, err := EncodeB3dm(testBuffer())
	require.NoError(t, err)

	featureTableLen := int(binary.LittleEndian.Uint32(data[12:16]))
	featureTable := string(data[b3dmHeaderLength : b3dmHeaderLength+featureTableLen])
	assert.Contains(t, featureTable, "\"BATCH_LENGTH\":0")
}

func TestGenerateB3dmFeatureTableJsonContentAlignment(t *testing.T) {
	content := generateB3dmFeatureTableJsonContent(0)
	assert.Zero(t, (b3dmHeaderLength+len(content))%8)
}
