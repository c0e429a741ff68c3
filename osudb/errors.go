package osudb

import (
	"fmt"
	"strconv"
	"strings"
)

// RankedStatusError indicates a ranked status code outside the closed
// set.
type RankedStatusError uint8

func (err RankedStatusError) Error() string {
	return fmt.Sprintf("unknown ranked status %d", uint8(err))
}

// GradeError indicates a grade code outside the closed set.
type GradeError uint8

func (err GradeError) Error() string {
	return fmt.Sprintf("unknown grade %d", uint8(err))
}

// ModeError indicates a game mode code outside the closed set.
type ModeError uint8

func (err ModeError) Error() string {
	return fmt.Sprintf("unknown game mode %d", uint8(err))
}

// RatingTagError indicates a star rating record whose lead or type
// tag byte does not match the tag implied by the catalogue version.
// It usually means the declared version does not match the data.
type RatingTagError struct {
	Expected uint8
	Found    uint8
}

func (err RatingTagError) Error() string {
	return fmt.Sprintf("star rating tag mismatch: expected 0x%02X, found 0x%02X", err.Expected, err.Found)
}

// EntrySizeError reports a beatmap entry whose declared byte length
// does not match the number of bytes its body occupied. The decoder
// trusts the field layout rather than the declared length, so this is
// produced as a warning, not an error.
type EntrySizeError struct {
	// Index is the position of the entry within the catalogue.
	Index int
	// Declared is the byte length stored in front of the entry.
	Declared uint32
	// Consumed is the number of bytes the entry body occupied.
	Consumed int64
}

func (err EntrySizeError) Error() string {
	return fmt.Sprintf("beatmap entry #%d: declared size %d, consumed %d bytes", err.Index, err.Declared, err.Consumed)
}

// DataError wraps an error that occurred while encoding or decoding
// byte data.
type DataError struct {
	// Offset is the byte offset where the error occurred.
	Offset int64

	Cause error
}

func (err DataError) Error() string {
	var s strings.Builder
	s.WriteString("data error")
	if err.Offset >= 0 {
		s.WriteString(" at ")
		s.Write(strconv.AppendInt(nil, err.Offset, 10))
	}
	if err.Cause != nil {
		s.WriteString(": ")
		s.WriteString(err.Cause.Error())
	}
	return s.String()
}

func (err DataError) Unwrap() error {
	return err.Cause
}

// BeatmapError indicates an error that occurred within a beatmap
// entry.
type BeatmapError struct {
	// Index is the position of the entry within the catalogue.
	Index int

	Cause error
}

func (err BeatmapError) Error() string {
	return fmt.Sprintf("beatmap entry #%d: %s", err.Index, err.Cause.Error())
}

func (err BeatmapError) Unwrap() error {
	return err.Cause
}
