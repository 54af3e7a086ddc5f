package io

import (
	"strings"

	"github.com/bimscene/ifc_tiler/internal/mesh"
	"github.com/bimscene/ifc_tiler/tools"
)

const b3dmHeaderLength = 28

// Wraps a mesh buffer into a b3dm tile content: header, feature table and
// the embedded binary glTF. The batch table is empty, per-vertex colors
// already carry the element appearance.
func EncodeB3dm(buffer *mesh.Buffer) ([]byte, error) {
	glb, err := EncodeGlb(buffer)
	if err != nil {
		return nil, err
	}

	featureTable := generateB3dmFeatureTableJsonContent(0)
	featureTableLen := len(featureTable)

	byteLength := b3dmHeaderLength + featureTableLen + len(glb)

	outputByte := make([]byte, 0, byteLength)
	outputByte = append(outputByte, []byte("b3dm")...)                 // magic
	outputByte = append(outputByte, tools.ConvertIntToByteArray(1)...) // version number
	outputByte = append(outputByte, tools.ConvertIntToByteArray(byteLength)...)
	outputByte = append(outputByte, tools.ConvertIntToByteArray(featureTableLen)...) // feature table length
	outputByte = append(outputByte, tools.ConvertIntToByteArray(0)...)               // feature table binary length
	outputByte = append(outputByte, tools.ConvertIntToByteArray(0)...)               // batch table length
	outputByte = append(outputByte, tools.ConvertIntToByteArray(0)...)               // batch table binary length
	outputByte = append(outputByte, []byte(featureTable)...)                         // feature table
	outputByte = append(outputByte, glb...)                                          // binary gltf payload

	return outputByte, nil
}

// Generates the json representation of the feature table, padded with
// spaces so the embedded gltf starts on an 8-byte boundary
func generateB3dmFeatureTableJsonContent(spaceNo int) string {
	sb := "{\"BATCH_LENGTH\":0}"
	sb += strings.Repeat(" ", spaceNo)
	paddingSize := (b3dmHeaderLength + len(sb)) % 8
	if paddingSize != 0 {
		return generateB3dmFeatureTableJsonContent(spaceNo + 8 - paddingSize)
	}
	return sb
}
