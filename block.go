// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/rpeg

package rpeg

import (
	"fmt"

	"github.com/woozymasta/rpeg/bitpack"
	"github.com/woozymasta/rpeg/chroma"
)

// Pixel is one RGB sample with channels normalized to [0,1].
type Pixel struct {
	R, G, B float32
}

// Block is a 2x2 pixel group ordered top-left, top-right, bottom-left, bottom-right.
type Block [4]Pixel

// Compressed block word layout, LSB = 0.
var (
	fieldA  = bitpack.Field{Width: 9, LSB: 23}
	fieldB  = bitpack.Field{Width: 5, LSB: 18}
	fieldC  = bitpack.Field{Width: 5, LSB: 13}
	fieldD  = bitpack.Field{Width: 5, LSB: 8}
	fieldPb = bitpack.Field{Width: 4, LSB: 4}
	fieldPr = bitpack.Field{Width: 4, LSB: 0}
)

// blockFields holds the six quantized values stored in one word.
type blockFields struct {
	a       uint64
	b, c, d int64
	pb, pr  uint64
}

// EncodeBlock compresses a 2x2 block into one 32-bit word.
func EncodeBlock(blk Block) uint32 {
	var luma [4]float32
	var pbSum, prSum float32
	for i, p := range blk {
		y, pb, pr := ToLumaChroma(p.R, p.G, p.B)
		luma[i] = y
		pbSum += pb
		prSum += pr
	}

	coef := ForwardDCT(luma[0], luma[1], luma[2], luma[3])

	return packBlock(blockFields{
		a:  QuantizeDC(coef.A),
		b:  QuantizeDetail(coef.B),
		c:  QuantizeDetail(coef.C),
		d:  QuantizeDetail(coef.D),
		pb: chroma.IndexOf(pbSum / 4),
		pr: chroma.IndexOf(prSum / 4),
	})
}

// DecodeBlock expands a word produced by EncodeBlock back into four pixels.
// Channels are not clamped; lossy reconstruction may stray slightly outside [0,1].
func DecodeBlock(word uint32) Block {
	f := unpackBlock(word)

	y1, y2, y3, y4 := InverseDCT(Coefficients{
		A: ExpandDC(f.a),
		B: ExpandDetail(f.b),
		C: ExpandDetail(f.c),
		D: ExpandDetail(f.d),
	})
	pb := chroma.ValueOf(f.pb)
	pr := chroma.ValueOf(f.pr)

	var blk Block
	for i, y := range [4]float32{y1, y2, y3, y4} {
		r, g, b := ToRGB(y, pb, pr)
		blk[i] = Pixel{R: r, G: g, B: b}
	}

	return blk
}

// packBlock writes the six fields into a word. The quantizers bound every value,
// so a failure here is a bug, not bad input.
func packBlock(f blockFields) uint32 {
	var word uint64
	var err error

	word, err = fieldA.SetUnsigned(word, f.a)
	mustPack(fieldA, err)
	word, err = fieldB.SetSigned(word, f.b)
	mustPack(fieldB, err)
	word, err = fieldC.SetSigned(word, f.c)
	mustPack(fieldC, err)
	word, err = fieldD.SetSigned(word, f.d)
	mustPack(fieldD, err)
	word, err = fieldPb.SetUnsigned(word, f.pb)
	mustPack(fieldPb, err)
	word, err = fieldPr.SetUnsigned(word, f.pr)
	mustPack(fieldPr, err)

	// #nosec G115 -- all fields lie below bit 32.
	return uint32(word)
}

func unpackBlock(word uint32) blockFields {
	w := uint64(word)
	return blockFields{
		a:  fieldA.GetUnsigned(w),
		b:  fieldB.GetSigned(w),
		c:  fieldC.GetSigned(w),
		d:  fieldD.GetSigned(w),
		pb: fieldPb.GetUnsigned(w),
		pr: fieldPr.GetUnsigned(w),
	}
}

func mustPack(f bitpack.Field, err error) {
	if err != nil {
		panic(fmt.Sprintf("rpeg: packing field %s: %v", f, err))
	}
}
