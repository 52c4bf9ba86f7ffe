package msh

// BGRAToRGBA swaps a file-order color into display order.
func BGRAToRGBA(c [4]uint8) [4]uint8 {
	return [4]uint8{c[2], c[1], c[0], c[3]}
}

// RGBAToBGRA swaps a display-order color back into file order.
func RGBAToBGRA(c [4]uint8) [4]uint8 {
	return [4]uint8{c[2], c[1], c[0], c[3]}
}

// BGRAToRGBAf swaps a float material color into display order.
func BGRAToRGBAf(c [4]float32) [4]float32 {
	return [4]float32{c[2], c[1], c[0], c[3]}
}

// RGBAToBGRAf swaps a float display color back into file order.
func RGBAToBGRAf(c [4]float32) [4]float32 {
	return [4]float32{c[2], c[1], c[0], c[3]}
}
