/*
Package rpeg implements a lossy block image codec.

Every 2x2 pixel block is converted to luma and color-difference form,
its four luma samples go through a 2x2 discrete cosine transform, and the
resulting average, three detail terms and two averaged chroma values are
quantized and packed into one 32-bit word:

	bits 31..23  a   block average, 9-bit unsigned
	bits 22..18  b   vertical detail, 5-bit signed
	bits 17..13  c   horizontal detail, 5-bit signed
	bits 12..8   d   diagonal detail, 5-bit signed
	bits  7..4   pb  chroma index, 4-bit unsigned
	bits  3..0   pr  chroma index, 4-bit unsigned

Words are stored big-endian in row-major block order after a short text
header carrying the dimensions. The stream may be wrapped in an LZ4 or
Zstandard frame; readers detect the envelope from its magic.

The package focuses on practical workflows: read a PPM, PNG, JPEG, BMP,
TIFF or DDS image, compress it to a file, and decompress it back.
Images with an odd width or height lose their last column or row.
*/
package rpeg
