package msh

import "encoding/binary"

const chunkHeaderSize = 8

// containerTags lists the chunks whose payload holds child chunks, mapped to the
// number of bytes that precede the first child.
var containerTags = map[string]int{
	"HEDR": 0,
	"MSH2": 0,
	"SINF": 0,
	"CAMR": 0,
	"MATL": 4, // u32 material count
	"MATD": 0,
	"MODL": 0,
	"GEOM": 0,
	"SEGM": 0,
	"CLTH": 0,
	"ANM2": 0,
}

// ChunkRef locates a chunk inside a buffer.
type ChunkRef struct {
	Tag   string
	Start int // offset of the tag
	End   int // one past the payload

	// Truncated is set when the declared length ran past the scanned range and
	// End was clamped to it.
	Truncated bool
}

// Body returns the offset of the first payload byte.
func (c ChunkRef) Body() int {
	return c.Start + chunkHeaderSize
}

// Len returns the usable payload length.
func (c ChunkRef) Len() int {
	return c.End - c.Body()
}

// IsContainer reports whether the scanner descends into this chunk.
func IsContainer(tag string) bool {
	_, ok := containerTags[tag]
	return ok
}

// FindChunk returns the first chunk with the given tag in [start, end),
// searching container chunks depth-first.
func FindChunk(data []byte, tag string, start, end int) (ChunkRef, bool) {
	var found ChunkRef
	var ok bool
	scan(data, start, end, true, func(c ChunkRef) bool {
		if c.Tag == tag {
			found, ok = c, true
			return false
		}
		return true
	})
	return found, ok
}

// FindAllChunks returns every chunk with the given tag in [start, end) in file
// order, including matches nested inside other matches.
func FindAllChunks(data []byte, tag string, start, end int) []ChunkRef {
	var refs []ChunkRef
	scan(data, start, end, true, func(c ChunkRef) bool {
		if c.Tag == tag {
			refs = append(refs, c)
		}
		return true
	})
	return refs
}

// Children returns the direct children of a chunk.
func Children(data []byte, parent ChunkRef) []ChunkRef {
	var refs []ChunkRef
	scan(data, parent.Body()+containerTags[parent.Tag], parent.End, false, func(c ChunkRef) bool {
		refs = append(refs, c)
		return true
	})
	return refs
}

// chunkAt reads the chunk header at off if it lies inside data.
func chunkAt(data []byte, off int) (ChunkRef, bool) {
	var found ChunkRef
	var ok bool
	if off < 0 || off >= len(data) {
		return found, false
	}
	scan(data, off, len(data), false, func(c ChunkRef) bool {
		if c.Start == off {
			found, ok = c, true
		}
		return false
	})
	return found, ok
}

// scan walks the chunks in [start, end). visit returns false to stop the walk.
// A header whose length overruns the range is clamped when its tag looks like a
// real tag (the file was cut short), otherwise it is skipped one byte at a time.
func scan(data []byte, start, end int, deep bool, visit func(ChunkRef) bool) bool {
	start, end = clampRange(data, start, end)

	pos := start
	for pos+chunkHeaderSize <= end {
		head := data[pos : pos+4]
		length := uint64(binary.LittleEndian.Uint32(data[pos+4:]))
		bodyEnd := uint64(pos) + chunkHeaderSize + length

		ref := ChunkRef{Tag: string(head), Start: pos}
		if bodyEnd > uint64(end) {
			if !plausibleTag(head) {
				pos++
				continue
			}
			ref.End = end
			ref.Truncated = true
		} else {
			ref.End = int(bodyEnd)
		}

		if !visit(ref) {
			return false
		}
		if skip, ok := containerTags[ref.Tag]; ok && deep {
			if !scan(data, ref.Body()+skip, ref.End, true, visit) {
				return false
			}
		}
		pos = ref.End
	}
	return true
}

func clampRange(data []byte, start, end int) (int, int) {
	if start < 0 {
		start = 0
	}
	if end > len(data) {
		end = len(data)
	}
	if end < start {
		end = start
	}
	return start, end
}

func plausibleTag(tag []byte) bool {
	for _, b := range tag {
		switch {
		case b >= 'A' && b <= 'Z':
		case b >= '0' && b <= '9':
		case b == '_':
		default:
			return false
		}
	}
	return true
}
