// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/rpeg

package rpeg

import "math"

const (
	// dcScale maps the [0,1] block average onto the 9-bit field.
	dcScale = 511
	// dcMax is the largest 9-bit unsigned value.
	dcMax = 511
	// detailScale maps detail coefficients onto 5-bit signed steps of 0.02.
	detailScale = 50
	// detailLimit saturates detail steps to the 5-bit signed range actually used.
	detailLimit = 15
)

// QuantizeDC scales the block average by 511 and rounds it.
// Inputs outside [0,1] saturate to the 9-bit range.
func QuantizeDC(x float32) uint64 {
	q := math.Round(float64(x * dcScale))
	switch {
	case q >= dcMax:
		return dcMax
	case q > 0:
		return uint64(q)
	default:
		// negative drift and NaN
		return 0
	}
}

// QuantizeDetail scales a detail coefficient by 50, rounds it and clamps it to [-15, 15].
func QuantizeDetail(x float32) int64 {
	q := math.Round(float64(x * detailScale))
	if math.IsNaN(q) {
		return 0
	}

	return int64(max(-detailLimit, min(detailLimit, q)))
}

// ExpandDC is the inverse scaling of QuantizeDC.
func ExpandDC(q uint64) float32 {
	return float32(q) / dcScale
}

// ExpandDetail is the inverse scaling of QuantizeDetail.
func ExpandDetail(q int64) float32 {
	return float32(q) / detailScale
}
