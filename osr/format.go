// Package osr implements a decoder and encoder for osu! replays, both
// standalone .osr files and replay records embedded in a scores
// database.
//
// A standalone replay carries its input stream as an LZMA-compressed
// block of plaintext actions; an embedded replay carries a four-byte
// sentinel in place of the block. The Decoder and Encoder expose both
// variants. The scoresdb package builds on the embedded variant.
package osr

// DefaultCompressionLevel is the LZMA compression level used for the
// action stream when the Encoder does not specify one.
const DefaultCompressionLevel = 5

// noPayloadSentinel stands in for the action block on replay records
// embedded in a scores database.
const noPayloadSentinel uint32 = 0xffffffff

// lzmaDictCap maps a compression level in 0..9 onto an LZMA
// dictionary capacity, roughly following the xz preset sizes.
func lzmaDictCap(level int) int {
	if level < 0 {
		level = 0
	}
	if level > 9 {
		level = 9
	}
	return 1 << (16 + uint(level))
}
