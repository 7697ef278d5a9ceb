// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/rpeg

package bitpack

import "errors"

var (
	// ErrOverflow indicates a value does not fit the target field width.
	ErrOverflow = errors.New("value does not fit field")
	// ErrInvalidField indicates a field that does not lie inside a 64-bit word.
	ErrInvalidField = errors.New("invalid field")
)
