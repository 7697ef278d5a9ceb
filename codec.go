// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/rpeg

package rpeg

import (
	"fmt"
	"math"
)

// RGB is one pixel with channels in [0, Image.Denominator].
type RGB struct {
	R, G, B uint16
}

// Image is an uncompressed raster stored row-major.
type Image struct {
	Pix         []RGB
	Width       int
	Height      int
	Denominator uint16
}

// NewImage allocates a black image.
func NewImage(width, height int, denominator uint16) *Image {
	return &Image{
		Pix:         make([]RGB, width*height),
		Width:       width,
		Height:      height,
		Denominator: denominator,
	}
}

// Compressed is a sequence of block words in row-major block order.
// Width and Height are always even.
type Compressed struct {
	Words  []uint32
	Width  int
	Height int
}

// BlockCount returns the number of 2x2 blocks in a width x height area.
func BlockCount(width, height int) int {
	return (width / 2) * (height / 2)
}

// BlockOrigin returns the pixel index of the top-left corner of block n, for an
// area width pixels wide (even) stored with the given row stride.
func BlockOrigin(n, width, stride int) int {
	perRow := width / 2
	return (n/perRow)*(2*stride) + (n%perRow)*2
}

// Compress encodes every full 2x2 block of img. A trailing odd row or column is dropped.
func Compress(img *Image) (*Compressed, error) {
	if err := img.validate(); err != nil {
		return nil, err
	}

	width := img.Width &^ 1
	height := img.Height &^ 1
	if width == 0 || height == 0 {
		return nil, fmt.Errorf("%w: %dx%d has no full 2x2 block", ErrUnsupportedDimensions, img.Width, img.Height)
	}

	denom := float32(img.Denominator)
	stride := img.Width
	words := make([]uint32, BlockCount(width, height))
	for n := range words {
		tlc := BlockOrigin(n, width, stride)
		blk := Block{
			img.Pix[tlc].normalize(denom),
			img.Pix[tlc+1].normalize(denom),
			img.Pix[tlc+stride].normalize(denom),
			img.Pix[tlc+stride+1].normalize(denom),
		}
		words[n] = EncodeBlock(blk)
	}

	return &Compressed{Words: words, Width: width, Height: height}, nil
}

// Decompress reconstructs an image with channels scaled to denominator.
func Decompress(c *Compressed, denominator uint16) (*Image, error) {
	if err := c.validate(); err != nil {
		return nil, err
	}
	if denominator == 0 {
		return nil, fmt.Errorf("%w: zero denominator", ErrInvalidImage)
	}

	img := NewImage(c.Width, c.Height, denominator)
	denom := float32(denominator)
	stride := c.Width
	for n, word := range c.Words {
		tlc := BlockOrigin(n, c.Width, stride)
		blk := DecodeBlock(word)
		for i, idx := range [4]int{tlc, tlc + 1, tlc + stride, tlc + stride + 1} {
			img.Pix[idx] = blk[i].scale(denom)
		}
	}

	return img, nil
}

// checkImageSize rejects dimensions whose pixel buffer would exceed maxImagePixels.
// Decoders call it before allocating from a header.
func checkImageSize(width, height int) error {
	if width > maxStreamSide || height > maxStreamSide ||
		uint64(width)*uint64(height) > maxImagePixels { //nolint:gosec // sides are non-negative
		return fmt.Errorf("%w: %dx%d exceeds %d pixels", ErrSizeOverflow, width, height, maxImagePixels)
	}

	return nil
}

func (m *Image) validate() error {
	if m == nil {
		return fmt.Errorf("%w: nil image", ErrInvalidImage)
	}
	if m.Width < 0 || m.Height < 0 {
		return fmt.Errorf("%w: negative size %dx%d", ErrInvalidImage, m.Width, m.Height)
	}
	if m.Denominator == 0 {
		return fmt.Errorf("%w: zero denominator", ErrInvalidImage)
	}
	if len(m.Pix) != m.Width*m.Height {
		return fmt.Errorf("%w: %d pixels for %dx%d", ErrInvalidImage, len(m.Pix), m.Width, m.Height)
	}

	return nil
}

func (c *Compressed) validate() error {
	if c == nil {
		return fmt.Errorf("%w: nil stream", ErrMalformedStream)
	}
	if c.Width <= 0 || c.Height <= 0 || c.Width%2 != 0 || c.Height%2 != 0 {
		return fmt.Errorf("%w: %dx%d", ErrUnsupportedDimensions, c.Width, c.Height)
	}
	if want := BlockCount(c.Width, c.Height); len(c.Words) != want {
		return fmt.Errorf("%w: %d words for %dx%d, want %d", ErrMalformedStream, len(c.Words), c.Width, c.Height, want)
	}

	return nil
}

func (p RGB) normalize(denom float32) Pixel {
	return Pixel{
		R: float32(p.R) / denom,
		G: float32(p.G) / denom,
		B: float32(p.B) / denom,
	}
}

func (p Pixel) scale(denom float32) RGB {
	return RGB{
		R: scaleChannel(p.R, denom),
		G: scaleChannel(p.G, denom),
		B: scaleChannel(p.B, denom),
	}
}

// scaleChannel rounds v*denom to the nearest integer inside [0, denom].
func scaleChannel(v, denom float32) uint16 {
	x := math.Round(float64(v * denom))
	switch {
	case x >= float64(denom):
		return uint16(denom)
	case x > 0:
		return uint16(x)
	default:
		return 0
	}
}
