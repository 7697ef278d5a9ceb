package rpeg

import (
	"bytes"
	"errors"
	"path/filepath"
	"slices"
	"strings"
	"testing"
)

func TestEncodeCompressedPlainBytes(t *testing.T) {
	t.Parallel()

	c := &Compressed{Words: []uint32{0xD41F268F, 0x00000077}, Width: 4, Height: 2}

	var buf bytes.Buffer
	if err := EncodeCompressed(&buf, c, nil); err != nil {
		t.Fatalf("EncodeCompressed: %v", err)
	}

	want := append([]byte("Compressed image format 2\n4 2\n"), 0xD4, 0x1F, 0x26, 0x8F, 0x00, 0x00, 0x00, 0x77)
	if !bytes.Equal(buf.Bytes(), want) {
		t.Fatalf("stream = %q, want %q", buf.Bytes(), want)
	}
}

func TestCompressedRoundTripEnvelopes(t *testing.T) {
	t.Parallel()

	c, err := Compress(testImage(64, 48))
	if err != nil {
		t.Fatalf("Compress: %v", err)
	}

	tests := []struct {
		name string
		opts *WriteOptions
	}{
		{name: "plain", opts: nil},
		{name: "lz4", opts: &WriteOptions{Envelope: EnvelopeLZ4}},
		{name: "lz4-best", opts: &WriteOptions{Envelope: EnvelopeLZ4, HighCompression: true}},
		{name: "zstd", opts: &WriteOptions{Envelope: EnvelopeZstd}},
		{name: "zstd-best", opts: &WriteOptions{Envelope: EnvelopeZstd, HighCompression: true}},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			var buf bytes.Buffer
			if err := EncodeCompressed(&buf, c, tc.opts); err != nil {
				t.Fatalf("EncodeCompressed: %v", err)
			}

			got, err := DecodeCompressed(&buf)
			if err != nil {
				t.Fatalf("DecodeCompressed: %v", err)
			}
			if got.Width != c.Width || got.Height != c.Height {
				t.Fatalf("got %dx%d, want %dx%d", got.Width, got.Height, c.Width, c.Height)
			}
			if !slices.Equal(got.Words, c.Words) {
				t.Fatalf("word mismatch")
			}
		})
	}
}

func TestWriteReadCompressedFile(t *testing.T) {
	t.Parallel()

	c, err := Compress(testImage(32, 18))
	if err != nil {
		t.Fatalf("Compress: %v", err)
	}

	path := filepath.Join(t.TempDir(), "image.rpeg")
	if err := WriteCompressed(c, path, &WriteOptions{Envelope: EnvelopeZstd}); err != nil {
		t.Fatalf("WriteCompressed: %v", err)
	}

	cfg, err := ReadConfig(path)
	if err != nil {
		t.Fatalf("ReadConfig: %v", err)
	}
	if cfg.Width != 32 || cfg.Height != 18 {
		t.Fatalf("unexpected size: %dx%d", cfg.Width, cfg.Height)
	}

	got, err := ReadCompressed(path)
	if err != nil {
		t.Fatalf("ReadCompressed: %v", err)
	}
	if !slices.Equal(got.Words, c.Words) {
		t.Fatalf("word mismatch")
	}
}

func TestDecodeCompressedErrors(t *testing.T) {
	t.Parallel()

	header := StreamMagic + "4 2\n"
	tests := []struct {
		name    string
		data    string
		wantErr error
	}{
		{name: "empty", data: "", wantErr: ErrMalformedStream},
		{name: "bad-magic", data: "Compressed image format 3\n4 2\n", wantErr: ErrMalformedStream},
		{name: "no-dimension-line", data: StreamMagic + "4 2", wantErr: ErrMalformedStream},
		{name: "one-dimension", data: StreamMagic + "4\n", wantErr: ErrMalformedStream},
		{name: "non-numeric", data: StreamMagic + "four 2\n", wantErr: ErrMalformedStream},
		{name: "negative", data: StreamMagic + "-4 2\n", wantErr: ErrMalformedStream},
		{name: "odd-width", data: StreamMagic + "5 2\n", wantErr: ErrUnsupportedDimensions},
		{name: "zero-height", data: StreamMagic + "4 0\n", wantErr: ErrUnsupportedDimensions},
		{name: "huge", data: StreamMagic + "4000000 2\n", wantErr: ErrSizeOverflow},
		{name: "huge-area", data: StreamMagic + "1048576 1048576\n", wantErr: ErrSizeOverflow},
		{name: "long-dimension-line", data: StreamMagic + "4 2" + strings.Repeat(" ", 40) + "\n", wantErr: ErrMalformedStream},
		{name: "endless-dimension-line", data: StreamMagic + strings.Repeat("4", 1<<16), wantErr: ErrMalformedStream},
		{name: "no-words", data: header, wantErr: ErrMalformedStream},
		{name: "partial-word", data: header + "\x00\x00\x00\x77\x00\x00", wantErr: ErrMalformedStream},
		{name: "trailing-data", data: header + strings.Repeat("\x00", 9), wantErr: ErrMalformedStream},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			_, err := DecodeCompressed(strings.NewReader(tc.data))
			if !errors.Is(err, tc.wantErr) {
				t.Fatalf("expected error %v, got %v", tc.wantErr, err)
			}
		})
	}
}

func TestEncodeCompressedRejectsInvalid(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	err := EncodeCompressed(&buf, &Compressed{Words: make([]uint32, 1), Width: 4, Height: 4}, nil)
	if !errors.Is(err, ErrMalformedStream) {
		t.Fatalf("expected ErrMalformedStream, got %v", err)
	}
	if buf.Len() != 0 {
		t.Fatalf("wrote %d bytes for an invalid stream", buf.Len())
	}

	c := &Compressed{Words: make([]uint32, 1), Width: 2, Height: 2}
	err = EncodeCompressed(&buf, c, &WriteOptions{Envelope: Envelope(42)})
	if !errors.Is(err, ErrUnknownEnvelope) {
		t.Fatalf("expected ErrUnknownEnvelope, got %v", err)
	}
}

func TestParseEnvelopeTable(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		want    Envelope
		wantErr error
	}{
		{name: "", want: EnvelopeNone},
		{name: "none", want: EnvelopeNone},
		{name: "LZ4", want: EnvelopeLZ4},
		{name: "zstd", want: EnvelopeZstd},
		{name: " zst ", want: EnvelopeZstd},
		{name: "gzip", wantErr: ErrUnknownEnvelope},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			got, err := ParseEnvelope(tc.name)
			if !errors.Is(err, tc.wantErr) {
				t.Fatalf("ParseEnvelope(%q) error = %v, want %v", tc.name, err, tc.wantErr)
			}
			if err == nil && got != tc.want {
				t.Fatalf("ParseEnvelope(%q) = %v, want %v", tc.name, got, tc.want)
			}
			if err == nil {
				if back, _ := ParseEnvelope(got.String()); back != got {
					t.Fatalf("%v does not round-trip through String", got)
				}
			}
		})
	}
}
