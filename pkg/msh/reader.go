package msh

import (
	"encoding/binary"
	"math"

	"github.com/Faultbox/mshkit/pkg/encoding"
)

// ReadU8 reads a byte at off. ok is false if off is outside data.
func ReadU8(data []byte, off int) (uint8, bool) {
	if off < 0 || off+1 > len(data) {
		return 0, false
	}
	return data[off], true
}

// ReadU16 reads a little-endian uint16 at off.
func ReadU16(data []byte, off int) (uint16, bool) {
	if off < 0 || off+2 > len(data) {
		return 0, false
	}
	return binary.LittleEndian.Uint16(data[off:]), true
}

// ReadU32 reads a little-endian uint32 at off.
func ReadU32(data []byte, off int) (uint32, bool) {
	if off < 0 || off+4 > len(data) {
		return 0, false
	}
	return binary.LittleEndian.Uint32(data[off:]), true
}

// ReadI32 reads a little-endian int32 at off.
func ReadI32(data []byte, off int) (int32, bool) {
	v, ok := ReadU32(data, off)
	return int32(v), ok
}

// ReadF32 reads a little-endian float32 at off.
func ReadF32(data []byte, off int) (float32, bool) {
	v, ok := ReadU32(data, off)
	return math.Float32frombits(v), ok
}

// ReadString reads a fixed-length string field of n bytes at off, cut at the
// first NUL and decoded from Windows-1252. It refuses to read past the end of
// data and returns "", false instead.
func ReadString(data []byte, off, n int) (string, bool) {
	if off < 0 || n < 0 || off+n > len(data) {
		return "", false
	}
	return encoding.DecodeName(data[off : off+n]), true
}

// cursor reads sequential fields from one chunk payload. Reads past end set
// short and return zero values, so a loop can stop filling its collection at
// the last complete element.
type cursor struct {
	data  []byte
	off   int
	end   int
	short bool
}

func newCursor(data []byte, c ChunkRef) *cursor {
	return &cursor{data: data, off: c.Body(), end: c.End}
}

func (c *cursor) remaining() int {
	if c.off >= c.end {
		return 0
	}
	return c.end - c.off
}

func (c *cursor) need(n int) bool {
	if c.short || c.off+n > c.end {
		c.short = true
		return false
	}
	return true
}

func (c *cursor) u8() uint8 {
	if !c.need(1) {
		return 0
	}
	v := c.data[c.off]
	c.off++
	return v
}

func (c *cursor) u16() uint16 {
	if !c.need(2) {
		return 0
	}
	v := binary.LittleEndian.Uint16(c.data[c.off:])
	c.off += 2
	return v
}

func (c *cursor) u32() uint32 {
	if !c.need(4) {
		return 0
	}
	v := binary.LittleEndian.Uint32(c.data[c.off:])
	c.off += 4
	return v
}

func (c *cursor) i32() int32 {
	return int32(c.u32())
}

func (c *cursor) f32() float32 {
	return math.Float32frombits(c.u32())
}

func (c *cursor) vec2() (v [2]float32) {
	if !c.need(8) {
		return v
	}
	for i := range v {
		v[i] = c.f32()
	}
	return v
}

func (c *cursor) vec3() (v [3]float32) {
	if !c.need(12) {
		return v
	}
	for i := range v {
		v[i] = c.f32()
	}
	return v
}

func (c *cursor) vec4() (v [4]float32) {
	if !c.need(16) {
		return v
	}
	for i := range v {
		v[i] = c.f32()
	}
	return v
}

func (c *cursor) bytes4() (v [4]uint8) {
	if !c.need(4) {
		return v
	}
	copy(v[:], c.data[c.off:c.off+4])
	c.off += 4
	return v
}

// fixedString reads an n-byte NUL-padded field.
func (c *cursor) fixedString(n int) string {
	if !c.need(n) {
		return ""
	}
	s := encoding.DecodeName(c.data[c.off : c.off+n])
	c.off += n
	return s
}

// cstring reads a NUL-terminated string. A missing terminator consumes the
// rest of the chunk.
func (c *cursor) cstring() string {
	if !c.need(1) {
		return ""
	}
	start := c.off
	for c.off < c.end && c.data[c.off] != 0 {
		c.off++
	}
	s := encoding.DecodeName(c.data[start:c.off])
	if c.off < c.end {
		c.off++ // terminator
	}
	return s
}

// count reads a u32 element count and returns it together with a capacity hint
// bounded by what the chunk can actually hold.
func (c *cursor) count(elemSize int) (n int, capHint int) {
	n = int(c.u32())
	if c.short {
		return 0, 0
	}
	capHint = n
	if elemSize > 0 && c.remaining()/elemSize < capHint {
		capHint = c.remaining() / elemSize
	}
	return n, capHint
}

// stringChunk decodes a chunk whose whole payload is a NUL-padded string.
func stringChunk(data []byte, c ChunkRef) string {
	return encoding.DecodeName(data[c.Body():c.End])
}
