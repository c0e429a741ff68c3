package osubin

import "errors"

// Indicates a ULEB128 value too wide for 64 bits.
var errULEB128Overflow = errors.New("ULEB128 value overflows 64 bits")
