// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/rpeg

// Rpeg compresses images into rpeg block streams and back.
//
// Usage:
//
//	rpeg -c [flags] [image]     compress (stdin if no file is given)
//	rpeg -d [flags] [stream]    decompress (stdin if no file is given)
//	rpeg --info stream          print the stream dimensions
//
// Output goes to stdout unless --output is given. Compressed streams may be
// wrapped in an LZ4 or zstd envelope with --envelope; decompression detects
// the envelope on its own. Decompressed images are PPM unless --format or the
// --output extension says otherwise.
//
// Defaults can be kept in a YAML file passed with --config or named by the
// RPEG_CONFIG environment variable:
//
//	envelope: zstd
//	high_compression: true
//	format: png
//	denominator: 255
//	log_level: debug
//
// Flags given on the command line override the file.
package main
