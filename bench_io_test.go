package rpeg

import (
	"bytes"
	"path/filepath"
	"testing"
)

// benchMainFlowImage builds a deterministic image used by IO benchmarks.
func benchMainFlowImage(width, height int) *Image {
	img := NewImage(width, height, 255)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			// Deterministic pattern with mixed low/high frequencies.
			img.Pix[y*width+x] = RGB{
				R: uint16((x*7 + y*3) & 0xff),        //nolint:gosec // bounded by mask
				G: uint16((x*13 + y*5) & 0xff),       //nolint:gosec // bounded by mask
				B: uint16((x ^ y ^ (x >> 2)) & 0xff), //nolint:gosec // bounded by mask
			}
		}
	}
	return img
}

// benchMainFlowCompressed compresses the benchmark image once for stream benchmarks.
func benchMainFlowCompressed(b *testing.B) *Compressed {
	b.Helper()

	c, err := Compress(benchMainFlowImage(1024, 1024))
	if err != nil {
		b.Fatalf("prepare compressed image: %v", err)
	}

	return c
}

// benchStreamBytes is the size of the plain word payload for throughput reporting.
func benchStreamBytes(c *Compressed) int64 {
	return int64(len(c.Words) * WordSize)
}

func BenchmarkCompress(b *testing.B) {
	img := benchMainFlowImage(1024, 1024)

	b.ReportAllocs()
	b.SetBytes(int64(len(img.Pix) * 3))
	b.ResetTimer()

	for b.Loop() {
		if _, err := Compress(img); err != nil {
			b.Fatalf("compress: %v", err)
		}
	}
}

func BenchmarkDecompress(b *testing.B) {
	c := benchMainFlowCompressed(b)

	b.ReportAllocs()
	b.SetBytes(benchStreamBytes(c))
	b.ResetTimer()

	for b.Loop() {
		if _, err := Decompress(c, 255); err != nil {
			b.Fatalf("decompress: %v", err)
		}
	}
}

func BenchmarkEncodeCompressed(b *testing.B) {
	c := benchMainFlowCompressed(b)

	for _, env := range []Envelope{EnvelopeNone, EnvelopeLZ4, EnvelopeZstd} {
		opts := &WriteOptions{Envelope: env}
		b.Run(env.String(), func(b *testing.B) {
			var buf bytes.Buffer

			b.ReportAllocs()
			b.SetBytes(benchStreamBytes(c))
			b.ResetTimer()

			for b.Loop() {
				buf.Reset()
				if err := EncodeCompressed(&buf, c, opts); err != nil {
					b.Fatalf("encode (%s): %v", env, err)
				}
			}
		})
	}
}

func BenchmarkMainFlowWriteRead(b *testing.B) {
	c := benchMainFlowCompressed(b)

	for _, env := range []Envelope{EnvelopeNone, EnvelopeLZ4, EnvelopeZstd} {
		opts := &WriteOptions{Envelope: env}
		path := filepath.Join(b.TempDir(), "main_flow_"+env.String()+".rpeg")

		b.Run("write-"+env.String(), func(b *testing.B) {
			b.ReportAllocs()
			b.SetBytes(benchStreamBytes(c))
			b.ResetTimer()

			for b.Loop() {
				if err := WriteCompressed(c, path, opts); err != nil {
					b.Fatalf("write: %v", err)
				}
			}
		})

		b.Run("read-"+env.String(), func(b *testing.B) {
			if err := WriteCompressed(c, path, opts); err != nil {
				b.Fatalf("prepare input file: %v", err)
			}

			b.ReportAllocs()
			b.SetBytes(benchStreamBytes(c))
			b.ResetTimer()

			for b.Loop() {
				if _, err := ReadCompressed(path); err != nil {
					b.Fatalf("read: %v", err)
				}
			}
		})
	}
}
