// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/rpeg

package rpeg

import (
	"fmt"
	"image"
	"io"

	"github.com/woozymasta/bcn"
)

// ddsMagic opens every DDS file.
const ddsMagic = "DDS "

// decodeDDS reads the top mip level of a DDS file. BCn-compressed levels are
// decoded by bcn; the result always has denominator 255.
func decodeDDS(r io.Reader) (*Image, error) {
	header, err := bcn.ReadDDSHeader(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDDSHeaderRead, err)
	}

	dx10, err := bcn.ReadDDSHeaderDX10(r, header)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDDSDX10Read, err)
	}

	width, height := int(header.Width), int(header.Height)
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: DDS size %dx%d", ErrDDSHeaderRead, width, height)
	}
	if err := checkImageSize(width, height); err != nil {
		return nil, err
	}

	format, name := detectFormat(header, dx10)
	expected := expectedDataLength(format, width, height)
	if expected <= 0 {
		return nil, fmt.Errorf("%w: %s", ErrUnknownDDSFormat, name)
	}

	data := make([]byte, expected)
	if _, err := io.ReadFull(r, data); err != nil {
		return nil, fmt.Errorf("%w: %s %dx%d: %v", ErrDDSDataRead, name, width, height, err)
	}

	var decoded image.Image
	decoded, err = bcn.DecodeImageWithOptions(data, width, height, format, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecodeImage, err)
	}

	return FromImage(decoded), nil
}

// encodeDDS writes img as a single-level uncompressed BGRA8 DDS file.
func encodeDDS(w io.Writer, img *Image) error {
	if err := img.validate(); err != nil {
		return err
	}

	w32, err := u32FromInt(img.Width)
	if err != nil {
		return err
	}
	h32, err := u32FromInt(img.Height)
	if err != nil {
		return err
	}

	header := makeDDSHeader(w32, h32)

	data, _, _, err := bcn.EncodeImageWithOptions(img.NRGBA(), bcn.FormatBGRA8, nil)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrEncodeImage, err)
	}

	if err := bcn.WriteDDSMagic(w); err != nil {
		return fmt.Errorf("%w: %v", ErrWriteDDSMagic, err)
	}
	if err := bcn.WriteDDSHeader(w, header); err != nil {
		return fmt.Errorf("%w: %v", ErrWriteDDSHeader, err)
	}
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("%w: %v", ErrWriteDDSData, err)
	}

	return nil
}

func detectFormat(header *bcn.DDSHeader, dx10 *bcn.DDSHeaderDX10) (bcn.Format, string) {
	if dx10 != nil {
		format := mapDxgiFormat(dx10.DXGIFormat)
		return format, fmt.Sprintf("DXGI %d", dx10.DXGIFormat)
	}

	pf := header.PixelFormat
	if (pf.Flags & bcn.DDSPFFourCC) != 0 {
		fourCCStr := intToFourCC(pf.FourCC)
		switch fourCCStr {
		case "DXT1":
			return bcn.FormatDXT1, fourCCStr
		case "DXT2", "DXT3":
			return bcn.FormatDXT3, fourCCStr
		case "DXT4", "DXT5":
			return bcn.FormatDXT5, fourCCStr
		case "ATI1", "BC4U", "BC4S":
			return bcn.FormatBC4, fourCCStr
		case "ATI2", "BC5U", "BC5S":
			return bcn.FormatBC5, fourCCStr
		default:
			return bcn.FormatUnknown, fourCCStr
		}
	}

	if (pf.Flags&bcn.DDSPFRGB) != 0 && (pf.Flags&bcn.DDSPFAlphaPixels) != 0 && pf.RGBBitCount == 32 {
		if pf.RBitMask == 0x000000ff && pf.GBitMask == 0x0000ff00 &&
			pf.BBitMask == 0x00ff0000 && pf.ABitMask == 0xff000000 {
			return bcn.FormatRGBA8, "RGBA8"
		}
		if pf.RBitMask == 0x00ff0000 && pf.GBitMask == 0x0000ff00 &&
			pf.BBitMask == 0x000000ff && pf.ABitMask == 0xff000000 {
			return bcn.FormatBGRA8, "BGRA8"
		}
	}

	return bcn.FormatUnknown, "UNKNOWN"
}

func mapDxgiFormat(dxgiFormat uint32) bcn.Format {
	switch dxgiFormat {
	case 71:
		return bcn.FormatDXT1
	case 74:
		return bcn.FormatDXT3
	case 77:
		return bcn.FormatDXT5
	case 80:
		return bcn.FormatBC4
	case 83:
		return bcn.FormatBC5
	case 87:
		return bcn.FormatBGRA8
	case 28:
		return bcn.FormatRGBA8
	default:
		return bcn.FormatUnknown
	}
}

func intToFourCC(value uint32) string {
	return string([]byte{
		byte(value & 0xff),
		byte((value >> 8) & 0xff),
		byte((value >> 16) & 0xff),
		byte((value >> 24) & 0xff),
	})
}

// expectedDataLength returns the byte size of one level, or -1 for unknown formats.
func expectedDataLength(format bcn.Format, width, height int) int {
	blocksW := (width + 3) / 4
	blocksH := (height + 3) / 4
	switch format {
	case bcn.FormatDXT1, bcn.FormatBC4:
		return blocksW * blocksH * 8
	case bcn.FormatDXT3, bcn.FormatDXT5, bcn.FormatBC5:
		return blocksW * blocksH * 16
	case bcn.FormatRGBA8, bcn.FormatBGRA8:
		return width * height * 4
	default:
		return -1
	}
}

// makeDDSHeader builds a single-level header for uncompressed BGRA8 data.
func makeDDSHeader(width, height uint32) *bcn.DDSHeader {
	hdr := &bcn.DDSHeader{
		Size:              bcn.DDSHeaderSize,
		Flags:             uint32(bcn.DDSFlagCaps | bcn.DDSFlagHeight | bcn.DDSFlagWidth | bcn.DDSFlagPixelFormat | bcn.DDSFlagPitch),
		Height:            height,
		Width:             width,
		Depth:             1,
		MipMapCount:       1,
		Caps:              uint32(bcn.DDSCapsTexture),
		PitchOrLinearSize: width * 4,
	}
	hdr.PixelFormat.Size = bcn.DDSPixelFormatSize
	hdr.PixelFormat.Flags = bcn.DDSPFRGB | bcn.DDSPFAlphaPixels
	hdr.PixelFormat.RGBBitCount = 32
	hdr.PixelFormat.RBitMask = 0x00ff0000
	hdr.PixelFormat.GBitMask = 0x0000ff00
	hdr.PixelFormat.BBitMask = 0x000000ff
	hdr.PixelFormat.ABitMask = 0xff000000

	return hdr
}
