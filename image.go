// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/rpeg

package rpeg

import (
	"bufio"
	"bytes"
	"fmt"
	"image"
	"image/color"
	_ "image/gif" // register GIF decoding
	"image/jpeg"
	"image/png"
	"io"
	"path/filepath"
	"strconv"
	"strings"

	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
)

// ImageFormat selects an uncompressed image encoding.
type ImageFormat int

const (
	// FormatPPM is binary Netpbm PPM (P6); the default.
	FormatPPM ImageFormat = iota
	// FormatPNG is PNG.
	FormatPNG
	// FormatJPEG is baseline JPEG at quality 95.
	FormatJPEG
	// FormatBMP is 24-bit BMP.
	FormatBMP
	// FormatTIFF is deflate-compressed TIFF.
	FormatTIFF
	// FormatDDS is single-level uncompressed BGRA8 DDS.
	FormatDDS
)

// jpegQuality keeps JPEG re-encoding from stacking visible loss on top of the block codec.
const jpegQuality = 95

var imageFormatNames = map[ImageFormat]string{
	FormatPPM:  "ppm",
	FormatPNG:  "png",
	FormatJPEG: "jpeg",
	FormatBMP:  "bmp",
	FormatTIFF: "tiff",
	FormatDDS:  "dds",
}

// String returns the canonical format name.
func (f ImageFormat) String() string {
	if name, ok := imageFormatNames[f]; ok {
		return name
	}

	return "ImageFormat(" + strconv.Itoa(int(f)) + ")"
}

// ParseImageFormat parses a format name or file extension (with or without the dot).
func ParseImageFormat(name string) (ImageFormat, error) {
	switch strings.TrimPrefix(strings.ToLower(strings.TrimSpace(name)), ".") {
	case "ppm", "pnm", "pgm":
		return FormatPPM, nil
	case "png":
		return FormatPNG, nil
	case "jpg", "jpeg":
		return FormatJPEG, nil
	case "bmp":
		return FormatBMP, nil
	case "tif", "tiff":
		return FormatTIFF, nil
	case "dds":
		return FormatDDS, nil
	default:
		return FormatPPM, fmt.Errorf("%w: %q", ErrUnknownImageFormat, name)
	}
}

// FormatFromPath picks the output format from a file extension; unknown or missing
// extensions fall back to PPM.
func FormatFromPath(path string) ImageFormat {
	f, err := ParseImageFormat(filepath.Ext(path))
	if err != nil {
		return FormatPPM
	}

	return f
}

// FromImage converts any image.Image to an 8-bit Image with denominator 255.
// Alpha is dropped after un-premultiplying.
func FromImage(src image.Image) *Image {
	b := src.Bounds()
	img := NewImage(b.Dx(), b.Dy(), 0xff)
	i := 0
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			c := color.NRGBAModel.Convert(src.At(x, y)).(color.NRGBA)
			img.Pix[i] = RGB{R: uint16(c.R), G: uint16(c.G), B: uint16(c.B)}
			i++
		}
	}

	return img
}

// NRGBA converts the image to an opaque 8-bit *image.NRGBA.
func (m *Image) NRGBA() *image.NRGBA {
	dst := image.NewNRGBA(image.Rect(0, 0, m.Width, m.Height))
	denom := uint32(max(m.Denominator, 1))
	to8 := func(v uint16) uint8 {
		// #nosec G115 -- bounded by the clamp.
		return uint8((min(uint32(v), denom)*0xff + denom/2) / denom)
	}

	for i, p := range m.Pix {
		o := i * 4
		dst.Pix[o+0] = to8(p.R)
		dst.Pix[o+1] = to8(p.G)
		dst.Pix[o+2] = to8(p.B)
		dst.Pix[o+3] = 0xff
	}

	return dst
}

// DecodeImage reads a PPM/PGM, DDS, PNG, JPEG, GIF, BMP or TIFF image, detected by content.
func DecodeImage(r io.Reader) (*Image, error) {
	br := bufio.NewReader(r)
	head, _ := br.Peek(len(ddsMagic))

	switch {
	case isPNMMagic(head):
		return decodePNM(br)
	case bytes.HasPrefix(head, []byte(ddsMagic)):
		return decodeDDS(br)
	}

	data, err := io.ReadAll(br)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecodeImage, err)
	}

	// check the header size before the decoder allocates the raster
	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecodeImage, err)
	}
	if err := checkImageSize(cfg.Width, cfg.Height); err != nil {
		return nil, err
	}

	src, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecodeImage, err)
	}

	return FromImage(src), nil
}

// EncodeImage writes img in the given format. PPM keeps the image denominator;
// all other formats are 8-bit.
func EncodeImage(w io.Writer, img *Image, format ImageFormat) error {
	if err := img.validate(); err != nil {
		return err
	}

	var err error
	switch format {
	case FormatPPM:
		return encodePNM(w, img)
	case FormatDDS:
		return encodeDDS(w, img)
	case FormatPNG:
		err = png.Encode(w, img.NRGBA())
	case FormatJPEG:
		err = jpeg.Encode(w, img.NRGBA(), &jpeg.Options{Quality: jpegQuality})
	case FormatBMP:
		err = bmp.Encode(w, img.NRGBA())
	case FormatTIFF:
		err = tiff.Encode(w, img.NRGBA(), &tiff.Options{Compression: tiff.Deflate})
	default:
		return fmt.Errorf("%w: %s", ErrUnknownImageFormat, format)
	}
	if err != nil {
		return fmt.Errorf("%w: %s: %v", ErrEncodeImage, format, err)
	}

	return nil
}

func isPNMMagic(head []byte) bool {
	if len(head) < 2 || head[0] != 'P' {
		return false
	}

	switch head[1] {
	case '2', '3', '5', '6':
		return true
	default:
		return false
	}
}
