// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/rpeg

package rpeg

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"strconv"
)

// decodePNM reads a binary or plain PPM (P6, P3) or PGM (P5, P2) image.
// The file's maxval becomes the image denominator; gray samples fill all three channels.
func decodePNM(br *bufio.Reader) (*Image, error) {
	magic, err := pnmToken(br)
	if err != nil {
		return nil, fmt.Errorf("%w: magic: %v", ErrPNMHeader, err)
	}

	var channels int
	var plain bool
	switch magic {
	case "P6":
		channels = 3
	case "P3":
		channels, plain = 3, true
	case "P5":
		channels = 1
	case "P2":
		channels, plain = 1, true
	default:
		return nil, fmt.Errorf("%w: magic %q", ErrPNMHeader, magic)
	}

	width, err := pnmInt(br, "width")
	if err != nil {
		return nil, err
	}
	height, err := pnmInt(br, "height")
	if err != nil {
		return nil, err
	}
	maxval, err := pnmInt(br, "maxval")
	if err != nil {
		return nil, err
	}
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: size %dx%d", ErrPNMHeader, width, height)
	}
	if err := checkImageSize(width, height); err != nil {
		return nil, err
	}
	denom, err := u16FromInt(maxval)
	if err != nil || denom == 0 {
		return nil, fmt.Errorf("%w: maxval %d", ErrPNMHeader, maxval)
	}

	img := NewImage(width, height, denom)
	sample := binarySampleReader(br, denom)
	if plain {
		sample = func() (uint16, error) { return plainSample(br) }
	}

	var s [3]uint16
	for i := range img.Pix {
		for c := 0; c < channels; c++ {
			v, err := sample()
			if err != nil {
				return nil, fmt.Errorf("%w: pixel %d: %v", ErrPNMData, i, err)
			}
			if v > denom {
				return nil, fmt.Errorf("%w: pixel %d: sample %d exceeds maxval %d", ErrPNMData, i, v, denom)
			}
			s[c] = v
		}
		if channels == 1 {
			s[1], s[2] = s[0], s[0]
		}
		img.Pix[i] = RGB{R: s[0], G: s[1], B: s[2]}
	}

	return img, nil
}

// encodePNM writes img as a binary PPM (P6). Samples take two big-endian bytes
// when the denominator exceeds 255.
func encodePNM(w io.Writer, img *Image) error {
	if err := img.validate(); err != nil {
		return err
	}

	bw := bufio.NewWriter(w)
	if _, err := fmt.Fprintf(bw, "P6\n%d %d\n%d\n", img.Width, img.Height, img.Denominator); err != nil {
		return fmt.Errorf("%w: %v", ErrPNMWrite, err)
	}

	wide := img.Denominator > 0xff
	var buf [6]byte
	for _, p := range img.Pix {
		out := buf[:3]
		if wide {
			binary.BigEndian.PutUint16(buf[0:], p.R)
			binary.BigEndian.PutUint16(buf[2:], p.G)
			binary.BigEndian.PutUint16(buf[4:], p.B)
			out = buf[:6]
		} else {
			buf[0], buf[1], buf[2] = byte(p.R), byte(p.G), byte(p.B)
		}
		if _, err := bw.Write(out); err != nil {
			return fmt.Errorf("%w: %v", ErrPNMWrite, err)
		}
	}

	if err := bw.Flush(); err != nil {
		return fmt.Errorf("%w: %v", ErrPNMWrite, err)
	}

	return nil
}

func binarySampleReader(br *bufio.Reader, denom uint16) func() (uint16, error) {
	if denom > 0xff {
		var buf [2]byte
		return func() (uint16, error) {
			if _, err := io.ReadFull(br, buf[:]); err != nil {
				return 0, err
			}
			return binary.BigEndian.Uint16(buf[:]), nil
		}
	}

	return func() (uint16, error) {
		b, err := br.ReadByte()
		return uint16(b), err
	}
}

func plainSample(br *bufio.Reader) (uint16, error) {
	tok, err := pnmToken(br)
	if err != nil {
		return 0, err
	}
	v, err := strconv.ParseUint(tok, 10, 16)
	if err != nil {
		return 0, err
	}

	return uint16(v), nil
}

func pnmInt(br *bufio.Reader, name string) (int, error) {
	tok, err := pnmToken(br)
	if err != nil {
		return 0, fmt.Errorf("%w: %s: %v", ErrPNMHeader, name, err)
	}
	n, err := strconv.Atoi(tok)
	if err != nil {
		return 0, fmt.Errorf("%w: %s %q", ErrPNMHeader, name, tok)
	}

	return n, nil
}

// pnmToken returns the next whitespace-delimited token, skipping comments.
// Exactly one whitespace byte after the token is consumed, which is what
// separates the header from binary samples.
func pnmToken(br *bufio.Reader) (string, error) {
	for {
		c, err := br.ReadByte()
		if err != nil {
			return "", err
		}
		if c == '#' {
			if _, err := br.ReadString('\n'); err != nil {
				return "", err
			}
			continue
		}
		if isPNMSpace(c) {
			continue
		}

		tok := []byte{c}
		for {
			c, err = br.ReadByte()
			if errors.Is(err, io.EOF) {
				return string(tok), nil
			}
			if err != nil {
				return "", err
			}
			if isPNMSpace(c) {
				return string(tok), nil
			}
			if c == '#' {
				_ = br.UnreadByte()
				return string(tok), nil
			}
			tok = append(tok, c)
		}
	}
}

func isPNMSpace(c byte) bool {
	switch c {
	case ' ', '\t', '\n', '\r', '\v', '\f':
		return true
	default:
		return false
	}
}
