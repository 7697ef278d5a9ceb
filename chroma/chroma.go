// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/rpeg

/*
Package chroma maps averaged color-difference values (Pb, Pr) to and from
a 4-bit index.

The table is fixed and monotonic. It is denser near zero, where most
natural image chroma lives, and saturates at +/-0.35.
*/
package chroma

import (
	"fmt"
	"math"
)

// Len is the number of table entries; every index fits in 4 bits.
const Len = 16

var table = [Len]float32{
	-0.35, -0.20, -0.15, -0.10,
	-0.077, -0.055, -0.033, -0.011,
	0.011, 0.033, 0.055, 0.077,
	0.10, 0.15, 0.20, 0.35,
}

// IndexOf returns the index of the table entry nearest to v.
// Ties go to the lower index; values beyond the table map to its ends.
// NaN is looked up as zero.
func IndexOf(v float32) uint64 {
	if math.IsNaN(float64(v)) {
		v = 0
	}

	best := 0
	bestDist := float32(math.Inf(1))
	for i, c := range table {
		dist := v - c
		if dist < 0 {
			dist = -dist
		}
		if dist < bestDist {
			best, bestDist = i, dist
		}
	}

	return uint64(best)
}

// ValueOf returns the chroma value for index i. It panics if i >= Len.
func ValueOf(i uint64) float32 {
	if i >= Len {
		panic(fmt.Sprintf("chroma: index %d out of range", i))
	}

	return table[i]
}
