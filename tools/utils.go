package tools

import (
	"encoding/binary"
	"encoding/json"
	"math"
)

func FmtJSONString(v interface{}) string {
	data, err := json.Marshal(v)
	if err != nil {
		return "marshal data fail"
	}
	return string(data)
}

const (
	FloatMin = 0.000001
)

func IsFloatEqual(f1, f2 float64) bool {
	return math.Dim(f1, f2) < FloatMin
}

// Serializes an int as a 4 byte little endian unsigned integer
func ConvertIntToByteArray(value int) []byte {
	out := make([]byte, 4)
	binary.LittleEndian.PutUint32(out, uint32(value))
	return out
}

// Truncates the given float64 values to float32 and serializes them as a
// little endian byte array
func ConvertTruncateFloat64ToFloat32ByteArray(values []float64) []byte {
	out := make([]byte, len(values)*4)
	for i, value := range values {
		binary.LittleEndian.PutUint32(out[i*4:], math.Float32bits(float32(value)))
	}
	return out
}

// Serializes uint32 values as a little endian byte array
func ConvertUint32SliceToByteArray(values []uint32) []byte {
	out := make([]byte, len(values)*4)
	for i, value := range values {
		binary.LittleEndian.PutUint32(out[i*4:], value)
	}
	return out
}

// Pads the given byte array with the pad byte until its length is a
// multiple of align. A nil input stays nil.
func PadByteArray(data []byte, align int, pad byte) []byte {
	if len(data) == 0 {
		return data
	}
	for len(data)%align != 0 {
		data = append(data, pad)
	}
	return data
}
