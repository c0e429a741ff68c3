// Package osudb implements a decoder and encoder for the osu!.db
// beatmap catalogue format.
//
// The format identifies itself with a version number, a decimal date
// of the form YYYYMMDD, read from the head of the file. Three
// breaking revisions changed the field layout; the decoder and
// encoder branch on the version through the predicates below, so the
// cutover values exist in exactly one place. A listing decoded from a
// file re-encodes byte for byte at the same version.
package osudb

// The three breaking format revisions. Each constant is the first
// version carrying the new layout.
const (
	// versionFloatDifficulty widened the four difficulty settings
	// from bytes to 32-bit floats, introduced the per-mod star rating
	// tables, and dropped the unknown legacy short.
	versionFloatDifficulty uint32 = 20140609

	// versionNoEntrySize dropped the byte-length prefix in front of
	// every beatmap entry.
	versionNoEntrySize uint32 = 20191106

	// versionSingleStars shrank star rating values from 64-bit to
	// 32-bit floats to reduce storage overhead.
	versionSingleStars uint32 = 20250107
)

// atLeast reports whether a file of the given version carries the
// layout introduced by revision rev.
func atLeast(version, rev uint32) bool {
	return version >= rev
}

// Star rating records are stored in a tagged form left over from the
// client's generic serializer: a lead byte, the mod mask, a type tag
// describing the width of the value, then the value itself.
const (
	ratingLeadTag   = 0x08 // precedes the 32-bit mod mask
	ratingDoubleTag = 0x0d // 64-bit value, before versionSingleStars
	ratingSingleTag = 0x0c // 32-bit value, since versionSingleStars
)
