// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/rpeg

package rpeg

// Every product is converted explicitly so the compiler cannot fuse it into a
// multiply-add; results must be bit-identical on every architecture.

// ToLumaChroma converts normalized RGB to luma (Y) and the color differences Pb and Pr.
func ToLumaChroma(r, g, b float32) (y, pb, pr float32) {
	y = float32(0.299*r) + float32(0.587*g) + float32(0.114*b)
	pb = float32(-0.168736*r) - float32(0.331264*g) + float32(0.5*b)
	pr = float32(0.5*r) - float32(0.418688*g) - float32(0.081312*b)
	return
}

// ToRGB is the inverse of ToLumaChroma.
func ToRGB(y, pb, pr float32) (r, g, b float32) {
	r = y + float32(1.402*pr)
	g = y - float32(0.344136*pb) - float32(0.714136*pr)
	b = y + float32(1.772*pb)
	return
}
