// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/rpeg

package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/pflag"
	"github.com/woozymasta/rpeg"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

// options is the merged result of config file and flags.
type options struct {
	cfg        config
	input      string
	output     string
	compress   bool
	decompress bool
	info       bool
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	opts, err := parseArguments(args, stderr)
	if errors.Is(err, pflag.ErrHelp) {
		return 0
	}
	if err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		return 2
	}

	level, _ := parseLogLevel(opts.cfg.LogLevel)
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	switch {
	case opts.info:
		err = runInfo(opts, stdout)
	case opts.compress:
		err = runCompress(opts, stdin, stdout, logger)
	default:
		err = runDecompress(opts, stdin, stdout, logger)
	}
	if err != nil {
		logger.Error("rpeg failed", "error", err)
		return 1
	}

	return 0
}

func parseArguments(args []string, stderr io.Writer) (options, error) {
	flags := pflag.NewFlagSet("rpeg", pflag.ContinueOnError)
	flags.SetOutput(stderr)
	flags.Usage = func() {
		fmt.Fprintf(stderr, "Usage:\n  rpeg -c [flags] [image]     compress an image (stdin if omitted)\n")
		fmt.Fprintf(stderr, "  rpeg -d [flags] [stream]    decompress a stream (stdin if omitted)\n")
		fmt.Fprintf(stderr, "  rpeg --info stream          print stream dimensions\n\nFlags:\n")
		flags.PrintDefaults()
	}

	var opts options
	var (
		envelope    string
		best        bool
		format      string
		denominator int
		logLevel    string
		configPath  string
	)
	flags.BoolVarP(&opts.compress, "compress", "c", false, "compress an image")
	flags.BoolVarP(&opts.decompress, "decompress", "d", false, "decompress a stream")
	flags.BoolVar(&opts.info, "info", false, "print the dimensions of a compressed file")
	flags.StringVarP(&opts.output, "output", "o", "", "output file (default stdout)")
	flags.StringVarP(&envelope, "envelope", "e", "none", "compressed stream envelope: none, lz4 or zstd")
	flags.BoolVar(&best, "best", false, "use the slowest, smallest envelope level")
	flags.StringVarP(&format, "format", "f", "", "decompressed image format: ppm, png, jpeg, bmp, tiff or dds (default from --output extension, else ppm)")
	flags.IntVar(&denominator, "denominator", 255, "channel maximum of decompressed PPM output")
	flags.StringVar(&logLevel, "log-level", "info", "log level: debug, info, warn or error")
	flags.StringVar(&configPath, "config", "", "YAML config file (default $"+configEnv+")")

	if err := flags.Parse(args); err != nil {
		return options{}, err
	}

	modes := 0
	for _, set := range []bool{opts.compress, opts.decompress, opts.info} {
		if set {
			modes++
		}
	}
	if modes != 1 {
		return options{}, fmt.Errorf("exactly one of --compress, --decompress or --info is required")
	}

	switch flags.NArg() {
	case 0:
		if opts.info {
			return options{}, fmt.Errorf("--info requires a file argument")
		}
	case 1:
		opts.input = flags.Arg(0)
	default:
		return options{}, fmt.Errorf("expected at most one input, got %d", flags.NArg())
	}

	if configPath == "" {
		configPath = os.Getenv(configEnv)
	}
	opts.cfg = defaultConfig()
	if configPath != "" {
		cfg, err := loadConfig(configPath)
		if err != nil {
			return options{}, err
		}
		opts.cfg = cfg
	}

	// explicit flags win over the config file
	if flags.Changed("envelope") {
		opts.cfg.Envelope = envelope
	}
	if flags.Changed("best") {
		opts.cfg.HighCompression = best
	}
	if flags.Changed("format") {
		opts.cfg.Format = format
	}
	if flags.Changed("denominator") {
		opts.cfg.Denominator = denominator
	}
	if flags.Changed("log-level") {
		opts.cfg.LogLevel = logLevel
	}

	if err := opts.cfg.validate(); err != nil {
		return options{}, err
	}

	return opts, nil
}

func runInfo(opts options, stdout io.Writer) error {
	cfg, err := rpeg.ReadConfig(opts.input)
	if err != nil {
		return err
	}

	_, err = fmt.Fprintf(stdout, "%dx%d %d blocks\n", cfg.Width, cfg.Height, rpeg.BlockCount(cfg.Width, cfg.Height))
	return err
}

func runCompress(opts options, stdin io.Reader, stdout io.Writer, logger *slog.Logger) error {
	var img *rpeg.Image
	var err error
	if opts.input == "" {
		img, err = rpeg.DecodeImage(stdin)
	} else {
		img, err = rpeg.ReadImage(opts.input)
	}
	if err != nil {
		return err
	}

	if img.Width%2 != 0 || img.Height%2 != 0 {
		logger.Warn("dropping trailing row or column", "width", img.Width, "height", img.Height)
	}

	c, err := rpeg.Compress(img)
	if err != nil {
		return err
	}

	envelope, _ := rpeg.ParseEnvelope(opts.cfg.Envelope)
	writeOpts := &rpeg.WriteOptions{Envelope: envelope, HighCompression: opts.cfg.HighCompression}

	if opts.output == "" {
		err = rpeg.EncodeCompressed(stdout, c, writeOpts)
	} else {
		err = rpeg.WriteCompressed(c, opts.output, writeOpts)
	}
	if err != nil {
		return err
	}

	logger.Debug("compressed",
		"input", displayName(opts.input),
		"width", c.Width,
		"height", c.Height,
		"blocks", len(c.Words),
		"envelope", envelope.String(),
	)

	return nil
}

func runDecompress(opts options, stdin io.Reader, stdout io.Writer, logger *slog.Logger) error {
	var c *rpeg.Compressed
	var err error
	if opts.input == "" {
		c, err = rpeg.DecodeCompressed(stdin)
	} else {
		c, err = rpeg.ReadCompressed(opts.input)
	}
	if err != nil {
		return err
	}

	// #nosec G115 -- validated to 1..65535.
	img, err := rpeg.Decompress(c, uint16(opts.cfg.Denominator))
	if err != nil {
		return err
	}

	format := rpeg.FormatFromPath(opts.output)
	if opts.cfg.Format != "" {
		format, _ = rpeg.ParseImageFormat(opts.cfg.Format)
	}

	if opts.output == "" {
		err = rpeg.EncodeImage(stdout, img, format)
	} else {
		err = rpeg.WriteImageWithFormat(img, opts.output, format)
	}
	if err != nil {
		return err
	}

	logger.Debug("decompressed",
		"input", displayName(opts.input),
		"width", img.Width,
		"height", img.Height,
		"format", format.String(),
	)

	return nil
}

func displayName(path string) string {
	if path == "" {
		return "<stdin>"
	}

	return path
}
