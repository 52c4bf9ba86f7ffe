//go:build ignore

// This program generates a test MSH file for unit tests.
// Run with: go run generate.go
package main

import (
	"bytes"
	"encoding/binary"
	"hash/crc32"
	"math"
	"os"
)

type writer struct {
	bytes.Buffer
}

func (w *writer) u16(vs ...uint16) {
	for _, v := range vs {
		binary.Write(w, binary.LittleEndian, v)
	}
}

func (w *writer) u32(vs ...uint32) {
	for _, v := range vs {
		binary.Write(w, binary.LittleEndian, v)
	}
}

func (w *writer) f32(vs ...float32) {
	for _, v := range vs {
		binary.Write(w, binary.LittleEndian, math.Float32bits(v))
	}
}

// str writes a NUL-terminated string padded to four bytes.
func (w *writer) str(s string) {
	b := make([]byte, (len(s)+4)&^3)
	copy(b, s)
	w.Write(b)
}

// chunk writes tag, a length placeholder, the body and then patches the length.
func (w *writer) chunk(tag string, body func()) {
	w.WriteString(tag)
	at := w.Len()
	w.u32(0)
	body()
	binary.LittleEndian.PutUint32(w.Bytes()[at:], uint32(w.Len()-at-4))
}

func main() {
	// A 2-bone skinned quad with one material, a hardpoint and a two-cycle animation.
	var w writer

	w.chunk("HEDR", func() {
		w.chunk("MSH2", func() {
			w.chunk("SINF", func() {
				w.chunk("NAME", func() { w.str("testscene") })
				w.chunk("FRAM", func() { w.u32(0, 20); w.f32(30) })
				w.chunk("BBOX", func() {
					w.f32(0, 0, 0, 1) // rotation
					w.f32(0.5, 0.5, 0) // center
					w.f32(0.5, 0.5, 0) // extents
					w.f32(0.7071)      // radius
				})
			})

			w.chunk("MATL", func() {
				w.u32(1)
				w.chunk("MATD", func() {
					w.chunk("NAME", func() { w.str("quad_mat") })
					w.chunk("DATA", func() {
						w.f32(1, 1, 1, 1)       // diffuse
						w.f32(1, 1, 1, 1)       // specular
						w.f32(0.2, 0.2, 0.2, 1) // ambient
						w.f32(50)               // shininess
					})
					w.chunk("ATRB", func() { w.Write([]byte{0x10, 0, 0, 0}) }) // hard-edged
					w.chunk("TX0D", func() { w.str("Quad_Diffuse") })
				})
			})

			model := func(name string, mndx uint32, parent string, extra func()) {
				w.chunk("MODL", func() {
					w.chunk("MTYP", func() { w.u32(0) })
					w.chunk("MNDX", func() { w.u32(mndx) })
					w.chunk("NAME", func() { w.str(name) })
					if parent != "" {
						w.chunk("PRNT", func() { w.str(parent) })
					}
					w.chunk("TRAN", func() {
						w.f32(1, 1, 1)
						w.f32(0, 0, 0, 1)
						w.f32(0, 0, 0)
					})
					if extra != nil {
						extra()
					}
				})
			}

			model("DummyRoot", 0, "", nil)
			model("bone_root", 1, "DummyRoot", nil)
			model("bone_top", 2, "bone_root", nil)
			model("hp_top", 3, "bone_top", nil)
			model("Quad", 4, "DummyRoot", func() {
				w.chunk("GEOM", func() {
					w.chunk("ENVL", func() { w.u32(2, 1, 2) })
					w.chunk("SEGM", func() {
						w.chunk("MATI", func() { w.u32(0) })
						w.chunk("POSL", func() {
							w.u32(4)
							w.f32(0, 0, 0, 1, 0, 0, 1, 1, 0, 0, 1, 0)
						})
						w.chunk("NRML", func() {
							w.u32(4)
							w.f32(0, 0, 1, 0, 0, 1, 0, 0, 1, 0, 0, 1)
						})
						w.chunk("UV0L", func() {
							w.u32(4)
							w.f32(0, 0, 1, 0, 1, 1, 0, 1)
						})
						w.chunk("WGHT", func() {
							w.u32(4)
							for _, bone := range []uint32{0, 0, 1, 1} {
								w.u32(bone)
								w.f32(1)
								for k := 0; k < 3; k++ {
									w.u32(0)
									w.f32(0)
								}
							}
						})
						w.chunk("STRP", func() {
							w.u32(4)
							w.u16(0|0x8000, 1|0x8000, 3, 2)
						})
					})
				})
			})
		})

		w.chunk("ANM2", func() {
			w.chunk("CYCL", func() {
				w.u32(2)
				for _, c := range []struct {
					name        string
					first, last uint32
				}{{"idle", 0, 9}, {"wave", 10, 20}} {
					name := make([]byte, 64)
					copy(name, c.name)
					w.Write(name)
					w.f32(30)
					w.u32(0, c.first, c.last)
				}
			})
			w.chunk("KFR3", func() {
				w.u32(2)
				for _, bone := range []string{"bone_root", "bone_top"} {
					w.u32(crc32.ChecksumIEEE([]byte(bone)), 0, 2, 2)
					w.u32(0)
					w.f32(0, 0, 0)
					w.u32(20)
					w.f32(0, 1, 0)
					w.u32(0)
					w.f32(0, 0, 0, 1)
					w.u32(20)
					w.f32(0, 0, 0.7071, 0.7071)
				}
			})
		})
	})

	if err := os.WriteFile("test.msh", w.Bytes(), 0644); err != nil {
		panic(err)
	}
}
