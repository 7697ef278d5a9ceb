/*
Package bitpack reads and writes signed and unsigned integers of any width
from 1 to 64 bits at any bit offset inside a 64-bit word.

Words are plain uint64 values; every setter returns a new word and leaves
its argument untouched. Setters refuse values that do not fit the field
instead of truncating them, so a returned word always round-trips through
the matching getter.
*/
package bitpack
