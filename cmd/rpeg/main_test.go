package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/woozymasta/rpeg"
)

// writeGradient writes a 6x4 gray gradient PPM and returns its path.
func writeGradient(t *testing.T, dir string) string {
	t.Helper()

	img := rpeg.NewImage(6, 4, 255)
	for i := range img.Pix {
		v := uint16(60 + i*4) //nolint:gosec // bounded
		img.Pix[i] = rpeg.RGB{R: v, G: v, B: v}
	}

	path := filepath.Join(dir, "in.ppm")
	if err := rpeg.WriteImage(img, path); err != nil {
		t.Fatalf("WriteImage: %v", err)
	}

	return path
}

func TestRunCompressDecompressFiles(t *testing.T) {
	t.Setenv(configEnv, "")

	dir := t.TempDir()
	in := writeGradient(t, dir)
	stream := filepath.Join(dir, "out.rpeg")
	out := filepath.Join(dir, "out.png")

	var stdout, stderr bytes.Buffer
	if code := run([]string{"-c", "-e", "zstd", "-o", stream, in}, nil, &stdout, &stderr); code != 0 {
		t.Fatalf("compress exit %d: %s", code, stderr.String())
	}

	stdout.Reset()
	if code := run([]string{"--info", stream}, nil, &stdout, &stderr); code != 0 {
		t.Fatalf("info exit %d: %s", code, stderr.String())
	}
	if got := stdout.String(); got != "6x4 6 blocks\n" {
		t.Fatalf("info = %q", got)
	}

	if code := run([]string{"-d", "-o", out, stream}, nil, &stdout, &stderr); code != 0 {
		t.Fatalf("decompress exit %d: %s", code, stderr.String())
	}

	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if !bytes.HasPrefix(data, []byte("\x89PNG")) {
		t.Fatalf("output is not PNG")
	}
}

func TestRunPipes(t *testing.T) {
	t.Setenv(configEnv, "")

	dir := t.TempDir()
	in, err := os.ReadFile(writeGradient(t, dir))
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}

	var compressed, stderr bytes.Buffer
	if code := run([]string{"-c"}, bytes.NewReader(in), &compressed, &stderr); code != 0 {
		t.Fatalf("compress exit %d: %s", code, stderr.String())
	}
	if !strings.HasPrefix(compressed.String(), rpeg.StreamMagic+"6 4\n") {
		t.Fatalf("unexpected stream header %q", compressed.String()[:32])
	}

	var image bytes.Buffer
	if code := run([]string{"-d", "--denominator", "1000"}, &compressed, &image, &stderr); code != 0 {
		t.Fatalf("decompress exit %d: %s", code, stderr.String())
	}
	if !strings.HasPrefix(image.String(), "P6\n6 4\n1000\n") {
		t.Fatalf("unexpected image header %q", image.String()[:16])
	}
}

func TestRunWarnsOnOddEdge(t *testing.T) {
	t.Setenv(configEnv, "")

	img := rpeg.NewImage(3, 3, 255)
	var in bytes.Buffer
	if err := rpeg.EncodeImage(&in, img, rpeg.FormatPPM); err != nil {
		t.Fatalf("EncodeImage: %v", err)
	}

	var stdout, stderr bytes.Buffer
	if code := run([]string{"-c"}, &in, &stdout, &stderr); code != 0 {
		t.Fatalf("compress exit %d: %s", code, stderr.String())
	}
	if !strings.Contains(stderr.String(), "dropping trailing row or column") {
		t.Fatalf("missing warning in %q", stderr.String())
	}
}

func TestRunExitCodes(t *testing.T) {
	t.Setenv(configEnv, "")

	dir := t.TempDir()
	tests := []struct {
		name string
		args []string
		want int
	}{
		{name: "help", args: []string{"--help"}, want: 0},
		{name: "no-mode", args: []string{}, want: 2},
		{name: "two-modes", args: []string{"-c", "-d"}, want: 2},
		{name: "info-without-file", args: []string{"--info"}, want: 2},
		{name: "two-inputs", args: []string{"-c", "a", "b"}, want: 2},
		{name: "unknown-flag", args: []string{"-c", "--nope"}, want: 2},
		{name: "bad-envelope", args: []string{"-c", "-e", "gzip"}, want: 2},
		{name: "bad-denominator", args: []string{"-d", "--denominator", "0"}, want: 2},
		{name: "missing-input", args: []string{"-c", filepath.Join(dir, "missing.ppm")}, want: 1},
		{name: "garbage-stream", args: []string{"-d"}, want: 1},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var stdout, stderr bytes.Buffer
			if code := run(tc.args, strings.NewReader("garbage"), &stdout, &stderr); code != tc.want {
				t.Fatalf("run(%v) = %d, want %d: %s", tc.args, code, tc.want, stderr.String())
			}
		})
	}
}
