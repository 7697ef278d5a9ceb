// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/rpeg

package rpeg

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
)

const (
	// StreamMagic opens every plain compressed stream. The second line holds
	// "<width> <height>" and big-endian block words follow.
	StreamMagic = "Compressed image format 2\n"

	// WordSize is the on-wire size of one compressed block.
	WordSize = 4

	// maxStreamSide bounds header dimensions before anything is allocated.
	maxStreamSide = 1 << 20
	// maxDimensionLine bounds the "<width> <height>" line, newline excluded.
	maxDimensionLine = 32
	// maxImagePixels bounds width*height of every decoded stream or image.
	maxImagePixels = 1 << 27
	// wordPrealloc caps the initial word slice so a lying header cannot force a huge allocation.
	wordPrealloc = 1 << 16
)

// Envelope is an optional general-purpose compression layer around a plain stream.
type Envelope int

const (
	// EnvelopeNone writes the plain stream.
	EnvelopeNone Envelope = iota
	// EnvelopeLZ4 wraps the stream in an LZ4 frame.
	EnvelopeLZ4
	// EnvelopeZstd wraps the stream in a Zstandard frame.
	EnvelopeZstd
)

var (
	lz4FrameMagic  = []byte{0x04, 0x22, 0x4D, 0x18}
	zstdFrameMagic = []byte{0x28, 0xB5, 0x2F, 0xFD}
)

// String returns the envelope name accepted by ParseEnvelope.
func (e Envelope) String() string {
	switch e {
	case EnvelopeNone:
		return "none"
	case EnvelopeLZ4:
		return "lz4"
	case EnvelopeZstd:
		return "zstd"
	default:
		return "Envelope(" + strconv.Itoa(int(e)) + ")"
	}
}

// ParseEnvelope parses "none", "lz4" or "zstd". An empty name means none.
func ParseEnvelope(name string) (Envelope, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "none", "raw":
		return EnvelopeNone, nil
	case "lz4":
		return EnvelopeLZ4, nil
	case "zstd", "zst":
		return EnvelopeZstd, nil
	default:
		return EnvelopeNone, fmt.Errorf("%w: %q", ErrUnknownEnvelope, name)
	}
}

// WriteOptions configures compressed stream writing.
type WriteOptions struct {
	// Envelope selects the optional compression layer.
	Envelope Envelope
	// HighCompression trades envelope speed for size (LZ4 level 9, zstd best).
	HighCompression bool
}

// EncodeCompressed writes c as a compressed stream. Nil opts writes a plain stream.
func EncodeCompressed(w io.Writer, c *Compressed, opts *WriteOptions) error {
	if err := c.validate(); err != nil {
		return err
	}
	if opts == nil {
		opts = &WriteOptions{}
	}

	switch opts.Envelope {
	case EnvelopeNone:
		return writePlainStream(w, c)

	case EnvelopeLZ4:
		zw := lz4.NewWriter(w)
		level := lz4.Fast
		if opts.HighCompression {
			level = lz4.Level9
		}
		if err := zw.Apply(lz4.CompressionLevelOption(level)); err != nil {
			return fmt.Errorf("%w: %v", ErrLZ4Encode, err)
		}
		if err := writePlainStream(zw, c); err != nil {
			return err
		}
		if err := zw.Close(); err != nil {
			return fmt.Errorf("%w: %v", ErrLZ4Encode, err)
		}
		return nil

	case EnvelopeZstd:
		level := zstd.SpeedDefault
		if opts.HighCompression {
			level = zstd.SpeedBestCompression
		}
		zw, err := zstd.NewWriter(w, zstd.WithEncoderLevel(level))
		if err != nil {
			return fmt.Errorf("%w: %v", ErrZstdEncode, err)
		}
		if err := writePlainStream(zw, c); err != nil {
			_ = zw.Close()
			return err
		}
		if err := zw.Close(); err != nil {
			return fmt.Errorf("%w: %v", ErrZstdEncode, err)
		}
		return nil

	default:
		return fmt.Errorf("%w: %s", ErrUnknownEnvelope, opts.Envelope)
	}
}

// DecodeCompressed reads a compressed stream, unwrapping an LZ4 or zstd envelope if present.
func DecodeCompressed(r io.Reader) (*Compressed, error) {
	src, closeEnvelope, err := openEnvelope(r)
	if err != nil {
		return nil, err
	}
	defer closeEnvelope()

	width, height, err := readStreamHeader(src)
	if err != nil {
		return nil, err
	}

	words, err := readStreamWords(src, BlockCount(width, height))
	if err != nil {
		return nil, err
	}

	return &Compressed{Words: words, Width: width, Height: height}, nil
}

// writePlainStream writes the header line pair and the big-endian words.
func writePlainStream(w io.Writer, c *Compressed) error {
	w32, err := u32FromInt(c.Width)
	if err != nil {
		return err
	}
	h32, err := u32FromInt(c.Height)
	if err != nil {
		return err
	}

	bw := bufio.NewWriter(w)
	if _, err := fmt.Fprintf(bw, "%s%d %d\n", StreamMagic, w32, h32); err != nil {
		return fmt.Errorf("%w: %v", ErrStreamHeaderWrite, err)
	}

	var buf [WordSize]byte
	for i, word := range c.Words {
		binary.BigEndian.PutUint32(buf[:], word)
		if _, err := bw.Write(buf[:]); err != nil {
			return fmt.Errorf("%w: word %d: %v", ErrStreamWordsWrite, i, err)
		}
	}

	if err := bw.Flush(); err != nil {
		return fmt.Errorf("%w: %v", ErrStreamWordsWrite, err)
	}

	return nil
}

// openEnvelope sniffs the frame magic and returns a buffered reader over the plain stream.
func openEnvelope(r io.Reader) (*bufio.Reader, func(), error) {
	br := bufio.NewReader(r)
	peek, err := br.Peek(len(lz4FrameMagic))
	if err != nil && !errors.Is(err, io.EOF) {
		return nil, nil, fmt.Errorf("%w: %v", ErrStreamHeaderRead, err)
	}

	switch {
	case bytes.Equal(peek, lz4FrameMagic):
		zr := lz4.NewReader(br)
		return bufio.NewReader(&envelopeReader{r: zr, sentinel: ErrLZ4Decode}), func() {}, nil

	case bytes.Equal(peek, zstdFrameMagic):
		zr, err := zstd.NewReader(br)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: %v", ErrZstdDecode, err)
		}
		return bufio.NewReader(&envelopeReader{r: zr, sentinel: ErrZstdDecode}), zr.Close, nil

	default:
		return br, func() {}, nil
	}
}

// readStreamHeader parses the magic line and the dimension line.
func readStreamHeader(br *bufio.Reader) (int, int, error) {
	magic := make([]byte, len(StreamMagic))
	if _, err := io.ReadFull(br, magic); err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			return 0, 0, fmt.Errorf("%w: header truncated", ErrMalformedStream)
		}
		return 0, 0, fmt.Errorf("%w: %v", ErrStreamHeaderRead, err)
	}
	if string(magic) != StreamMagic {
		return 0, 0, fmt.Errorf("%w: bad magic %q", ErrMalformedStream, magic)
	}

	line, err := readDimensionLine(br)
	if err != nil {
		return 0, 0, err
	}

	fields := strings.Fields(line)
	if len(fields) != 2 {
		return 0, 0, fmt.Errorf("%w: dimension line %q", ErrMalformedStream, strings.TrimSpace(line))
	}
	width, err := parseStreamSide(fields[0])
	if err != nil {
		return 0, 0, err
	}
	height, err := parseStreamSide(fields[1])
	if err != nil {
		return 0, 0, err
	}

	if width == 0 || height == 0 || width%2 != 0 || height%2 != 0 {
		return 0, 0, fmt.Errorf("%w: %dx%d", ErrUnsupportedDimensions, width, height)
	}
	if err := checkImageSize(width, height); err != nil {
		return 0, 0, err
	}

	return width, height, nil
}

// readDimensionLine reads up to and including the newline ending the dimension
// line, which may not exceed maxDimensionLine bytes.
func readDimensionLine(br *bufio.Reader) (string, error) {
	line := make([]byte, 0, maxDimensionLine)
	for len(line) <= maxDimensionLine {
		c, err := br.ReadByte()
		if errors.Is(err, io.EOF) {
			return "", fmt.Errorf("%w: dimension line truncated", ErrMalformedStream)
		}
		if err != nil {
			return "", fmt.Errorf("%w: %v", ErrStreamHeaderRead, err)
		}
		if c == '\n' {
			return string(line), nil
		}
		line = append(line, c)
	}

	return "", fmt.Errorf("%w: dimension line longer than %d bytes", ErrMalformedStream, maxDimensionLine)
}

func parseStreamSide(s string) (int, error) {
	n, err := strconv.ParseUint(s, 10, 32)
	if err != nil {
		return 0, fmt.Errorf("%w: dimension %q: %v", ErrMalformedStream, s, err)
	}
	if n > maxStreamSide {
		return 0, fmt.Errorf("%w: dimension %d", ErrSizeOverflow, n)
	}

	return int(n), nil
}

// readStreamWords reads exactly count words and requires the stream to end after them.
func readStreamWords(br *bufio.Reader, count int) ([]uint32, error) {
	words := make([]uint32, 0, min(count, wordPrealloc))

	var buf [WordSize]byte
	for i := 0; i < count; i++ {
		if _, err := io.ReadFull(br, buf[:]); err != nil {
			if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
				return nil, fmt.Errorf("%w: truncated at word %d of %d", ErrMalformedStream, i, count)
			}
			return nil, fmt.Errorf("%w: word %d: %v", ErrStreamWordsRead, i, err)
		}
		words = append(words, binary.BigEndian.Uint32(buf[:]))
	}

	if _, err := br.ReadByte(); err == nil {
		return nil, fmt.Errorf("%w: trailing data after %d words", ErrMalformedStream, count)
	} else if !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: %v", ErrStreamWordsRead, err)
	}

	return words, nil
}

// envelopeReader tags decompressor failures with the envelope's sentinel.
type envelopeReader struct {
	r        io.Reader
	sentinel error
}

func (e *envelopeReader) Read(p []byte) (int, error) {
	n, err := e.r.Read(p)
	if err != nil && !errors.Is(err, io.EOF) {
		err = fmt.Errorf("%w: %v", e.sentinel, err)
	}

	return n, err
}
