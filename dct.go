// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/rpeg

package rpeg

// Coefficients are the 2x2 transform terms of four luma samples.
// A is the block average (DC); B, C and D carry the vertical, horizontal
// and diagonal detail.
type Coefficients struct {
	A, B, C, D float32
}

// ForwardDCT transforms luma samples given top-left, top-right, bottom-left, bottom-right.
func ForwardDCT(y1, y2, y3, y4 float32) Coefficients {
	return Coefficients{
		A: (y4 + y3 + y2 + y1) / 4,
		B: (y4 + y3 - y2 - y1) / 4,
		C: (y4 - y3 + y2 - y1) / 4,
		D: (y4 - y3 - y2 + y1) / 4,
	}
}

// InverseDCT recovers the four luma samples in the order ForwardDCT takes them.
func InverseDCT(c Coefficients) (y1, y2, y3, y4 float32) {
	y1 = c.A - c.B - c.C + c.D
	y2 = c.A - c.B + c.C - c.D
	y3 = c.A + c.B - c.C - c.D
	y4 = c.A + c.B + c.C + c.D
	return
}
