// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/rpeg

package rpeg

import (
	"fmt"
	"io"
	"os"
)

// WriteCompressed writes a compressed file. Nil opts writes a plain stream.
func WriteCompressed(c *Compressed, path string, opts *WriteOptions) error {
	return writeFile(path, func(w io.Writer) error {
		return EncodeCompressed(w, c, opts)
	})
}

// WriteImage writes an image file in the format named by the path extension (PPM if none).
func WriteImage(img *Image, path string) error {
	return WriteImageWithFormat(img, path, FormatFromPath(path))
}

// WriteImageWithFormat writes an image file in the requested format.
func WriteImageWithFormat(img *Image, path string, format ImageFormat) error {
	return writeFile(path, func(w io.Writer) error {
		return EncodeImage(w, img, format)
	})
}

// writeFile creates path and runs encode on it; the close error is reported
// since it is the last chance to see a failed flush.
func writeFile(path string, encode func(io.Writer) error) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("%w: %q: %v", ErrCreateFile, path, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("%w: %q: %v", ErrCloseFile, path, cerr)
		}
	}()

	return encode(f)
}
