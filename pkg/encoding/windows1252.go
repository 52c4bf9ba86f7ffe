// Package encoding provides text encoding utilities for MSH file names.
package encoding

import (
	"bytes"

	"golang.org/x/text/encoding/charmap"
)

// DecodeName converts a Windows-1252 encoded name to a UTF-8 string.
// The name is cut at the first NUL byte. Returns the raw bytes as a string if
// decoding fails.
func DecodeName(data []byte) string {
	data = CutNull(data)
	if isASCII(data) {
		return string(data)
	}
	result, err := charmap.Windows1252.NewDecoder().Bytes(data)
	if err != nil {
		return string(data)
	}
	return string(result)
}

// EncodeName converts a UTF-8 string back to its Windows-1252 bytes.
// Characters with no Windows-1252 mapping are replaced by the encoder's
// substitute byte.
func EncodeName(s string) []byte {
	if isASCII([]byte(s)) {
		return []byte(s)
	}
	result, err := charmap.Windows1252.NewEncoder().Bytes([]byte(s))
	if err != nil {
		return []byte(s)
	}
	return result
}

// CutNull returns data up to (not including) the first NUL byte.
func CutNull(data []byte) []byte {
	if i := bytes.IndexByte(data, 0); i >= 0 {
		return data[:i]
	}
	return data
}

func isASCII(data []byte) bool {
	for _, b := range data {
		if b >= 0x80 {
			return false
		}
	}
	return true
}
