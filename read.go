// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/rpeg

package rpeg

import (
	"fmt"
	"image"
	"image/color"
	"os"
)

// ReadConfig reads the dimensions of a compressed file without reading its words.
func ReadConfig(path string) (image.Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return image.Config{}, fmt.Errorf("%w: %q: %v", ErrOpenFile, path, err)
	}
	defer func() { _ = f.Close() }()

	src, closeEnvelope, err := openEnvelope(f)
	if err != nil {
		return image.Config{}, err
	}
	defer closeEnvelope()

	width, height, err := readStreamHeader(src)
	if err != nil {
		return image.Config{}, err
	}

	return image.Config{
		Width:      width,
		Height:     height,
		ColorModel: color.NRGBAModel,
	}, nil
}

// ReadCompressed reads a compressed file.
func ReadCompressed(path string) (*Compressed, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %v", ErrOpenFile, path, err)
	}
	defer func() { _ = f.Close() }()

	return DecodeCompressed(f)
}

// ReadImage reads an uncompressed image file; the format is detected by content.
func ReadImage(path string) (*Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %v", ErrOpenFile, path, err)
	}
	defer func() { _ = f.Close() }()

	return DecodeImage(f)
}
