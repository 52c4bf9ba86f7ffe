package msh

import "github.com/Faultbox/mshkit/pkg/encoding"

// Reflected CRC-32, as used by zlib and PNG.
const crcPolynomial = 0xEDB88320

var (
	crcTable   = makeCRCTable(crcPolynomial)
	lowerTable = makeLowerTable()
)

func makeCRCTable(poly uint32) *[256]uint32 {
	t := new([256]uint32)
	for i := uint32(0); i < 256; i++ {
		crc := i
		for j := 0; j < 8; j++ {
			if crc&1 != 0 {
				crc = (crc >> 1) ^ poly
			} else {
				crc >>= 1
			}
		}
		t[i] = crc
	}
	return t
}

// makeLowerTable folds ASCII A-Z only; bytes >= 0x80 are left alone.
func makeLowerTable() *[256]byte {
	t := new([256]byte)
	for i := range t {
		b := byte(i)
		if b >= 'A' && b <= 'Z' {
			b += 'a' - 'A'
		}
		t[i] = b
	}
	return t
}

// CalcLowerCRC hashes a name the way animation data identifies bones: CRC-32
// over the name's Windows-1252 bytes with ASCII letters lower-cased.
func CalcLowerCRC(name string) uint32 {
	return calcLowerCRC(encoding.EncodeName(name))
}

func calcLowerCRC(p []byte) uint32 {
	crc := ^uint32(0)
	for _, b := range p {
		crc = crcTable[byte(crc)^lowerTable[b]] ^ (crc >> 8)
	}
	return ^crc
}
