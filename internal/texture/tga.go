// Package texture resolves, decodes and exports the TGA textures referenced by
// MSH documents.
package texture

import (
	"bytes"
	"errors"
	"fmt"
	"image"

	"github.com/ftrvxmtrx/tga"
)

// TGA image type constants.
const (
	TGATypeColorMapped  = 1  // uncompressed color-mapped
	TGATypeUncompressed = 2  // uncompressed true-color
	TGATypeGray         = 3  // uncompressed grayscale
	TGATypeRLE          = 10 // RLE true-color
	TGATypeRLEGray      = 11 // RLE grayscale
)

const (
	tgaHeaderSize  = 18
	tgaFooterSize  = 26 // the decoder always probes for a v2 footer
	tgaTypeRLEFlag = 8
	tgaRLEMaxRun   = 128
)

var (
	// ErrTGATooShort is returned for data shorter than a TGA header and footer.
	ErrTGATooShort = errors.New("TGA data too short")
	// ErrTGATruncated is returned when the header promises more pixel data
	// than the file holds.
	ErrTGATruncated = errors.New("TGA pixel data truncated")
)

// tgaHeader holds the header fields needed to bound the pixel data.
type tgaHeader struct {
	idLength    int
	imageType   byte
	mapLength   int
	mapBPP      int
	width       int
	height      int
	bpp         int
	hasColorMap bool
}

func parseTGAHeader(data []byte) tgaHeader {
	return tgaHeader{
		idLength:    int(data[0]),
		hasColorMap: data[1] != 0,
		imageType:   data[2],
		mapLength:   int(data[5]) | int(data[6])<<8,
		mapBPP:      int(data[7]),
		width:       int(data[12]) | int(data[13])<<8,
		height:      int(data[14]) | int(data[15])<<8,
		bpp:         int(data[16]),
	}
}

// minSize returns the smallest file that can hold the image the header
// describes. RLE data is bounded by full-length runs.
func (h tgaHeader) minSize() int {
	n := tgaHeaderSize + h.idLength
	if h.hasColorMap {
		n += h.mapLength * ((h.mapBPP + 7) / 8)
	}
	pixels := h.width * h.height
	bytesPer := (h.bpp + 7) / 8
	if h.imageType&tgaTypeRLEFlag != 0 {
		packets := (pixels + tgaRLEMaxRun - 1) / tgaRLEMaxRun
		return n + packets*(1+bytesPer)
	}
	return n + pixels*bytesPer
}

// DecodeTGA decodes a TGA image. The header is checked against the data size
// before the decoder allocates the image.
func DecodeTGA(data []byte) (image.Image, error) {
	if len(data) < tgaHeaderSize || len(data) < tgaFooterSize {
		return nil, ErrTGATooShort
	}

	h := parseTGAHeader(data)
	if need := h.minSize(); len(data) < need {
		return nil, fmt.Errorf("%w: %dx%d type %d needs %d bytes, have %d",
			ErrTGATruncated, h.width, h.height, h.imageType, need, len(data))
	}

	img, err := tga.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decoding TGA type %d/%d bpp: %w", h.imageType, h.bpp, err)
	}
	return img, nil
}
