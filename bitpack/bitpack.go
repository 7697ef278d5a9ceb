// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/rpeg

package bitpack

import "fmt"

// WordBits is the width of the word every field lives in.
const WordBits = 64

// Field addresses Width bits of a word starting at bit LSB (bit 0 is least significant).
type Field struct {
	Width uint
	LSB   uint
}

// Valid reports whether the field lies inside a 64-bit word.
func (f Field) Valid() bool {
	return validField(f.Width, f.LSB)
}

// String returns the field as "width@lsb".
func (f Field) String() string {
	return fmt.Sprintf("%d@%d", f.Width, f.LSB)
}

// GetSigned extracts the field from word, sign-extended.
func (f Field) GetSigned(word uint64) int64 {
	return GetSigned(word, f.Width, f.LSB)
}

// GetUnsigned extracts the field from word, zero-extended.
func (f Field) GetUnsigned(word uint64) uint64 {
	return GetUnsigned(word, f.Width, f.LSB)
}

// SetSigned returns word with the field replaced by value.
func (f Field) SetSigned(word uint64, value int64) (uint64, error) {
	return SetSigned(word, f.Width, f.LSB, value)
}

// SetUnsigned returns word with the field replaced by value.
func (f Field) SetUnsigned(word uint64, value uint64) (uint64, error) {
	return SetUnsigned(word, f.Width, f.LSB, value)
}

// FitsSigned reports whether n is representable in a two's-complement field of width bits.
func FitsSigned(n int64, width uint) bool {
	if width == 0 || width > WordBits {
		return false
	}
	if width == WordBits {
		return true
	}

	shift := WordBits - width
	return (n<<shift)>>shift == n
}

// FitsUnsigned reports whether n is representable in an unsigned field of width bits.
func FitsUnsigned(n uint64, width uint) bool {
	if width == 0 || width > WordBits {
		return false
	}
	if width == WordBits {
		return true
	}

	return n>>width == 0
}

// GetSigned extracts the width-bit field at lsb and sign-extends it to 64 bits.
// It panics if the field does not lie inside the word.
func GetSigned(word uint64, width, lsb uint) int64 {
	mustField(width, lsb)

	// left-align the field, then let the arithmetic shift copy its sign bit down
	return int64(word<<(WordBits-width-lsb)) >> (WordBits - width)
}

// GetUnsigned extracts the width-bit field at lsb, zero-filling the high bits.
// It panics if the field does not lie inside the word.
func GetUnsigned(word uint64, width, lsb uint) uint64 {
	mustField(width, lsb)

	return (word << (WordBits - width - lsb)) >> (WordBits - width)
}

// SetSigned returns word with the width-bit field at lsb replaced by the low width bits
// of value. All other bits are unchanged. It fails with ErrOverflow if value does not fit.
func SetSigned(word uint64, width, lsb uint, value int64) (uint64, error) {
	if !validField(width, lsb) {
		return 0, fmt.Errorf("%w: %d@%d", ErrInvalidField, width, lsb)
	}
	if !FitsSigned(value, width) {
		return 0, fmt.Errorf("%w: %d in %d signed bits", ErrOverflow, value, width)
	}

	// #nosec G115 -- reinterpretation, only the low width bits are kept.
	bits := uint64(value) & mask(width, 0)
	return word&^mask(width, lsb) | bits<<lsb, nil
}

// SetUnsigned returns word with the width-bit field at lsb replaced by value.
// All other bits are unchanged. It fails with ErrOverflow if value does not fit.
func SetUnsigned(word uint64, width, lsb uint, value uint64) (uint64, error) {
	if !validField(width, lsb) {
		return 0, fmt.Errorf("%w: %d@%d", ErrInvalidField, width, lsb)
	}
	if !FitsUnsigned(value, width) {
		return 0, fmt.Errorf("%w: %d in %d unsigned bits", ErrOverflow, value, width)
	}

	return word&^mask(width, lsb) | value<<lsb, nil
}

// mask covers bits [lsb, lsb+width). A full-width field is all ones; the general
// formula would need a shift by 64 there.
func mask(width, lsb uint) uint64 {
	if width == WordBits {
		return ^uint64(0)
	}

	return (uint64(1)<<width - 1) << lsb
}

func validField(width, lsb uint) bool {
	return width >= 1 && width <= WordBits && lsb <= WordBits-width
}

func mustField(width, lsb uint) {
	if !validField(width, lsb) {
		panic(fmt.Sprintf("bitpack: invalid field %d@%d", width, lsb))
	}
}
