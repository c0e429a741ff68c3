package osr

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var (
	// Indicates a number missing its integer or fraction digits.
	errExpectedDigit = errors.New("expected a digit")
	// Indicates a record missing a '|' between two of its fields.
	errMissingSeparator = errors.New("missing '|' separator")
	// Indicates a record missing its ',' terminator.
	errMissingTerminator = errors.New("missing ',' terminator")
)

// ModeError indicates a game mode code outside the closed set.
type ModeError uint8

func (err ModeError) Error() string {
	return fmt.Sprintf("unknown game mode %d", uint8(err))
}

// SentinelError indicates an embedded replay record carrying
// something other than the no-payload sentinel where its action block
// would be.
type SentinelError uint32

func (err SentinelError) Error() string {
	return fmt.Sprintf("expected no-payload sentinel FFFFFFFF, found %08X", uint32(err))
}

// ActionError indicates malformed text within the decompressed action
// stream.
type ActionError struct {
	// Offset is the byte offset into the decompressed text.
	Offset int64

	Cause error
}

func (err ActionError) Error() string {
	return fmt.Sprintf("action stream at %d: %s", err.Offset, err.Cause.Error())
}

func (err ActionError) Unwrap() error {
	return err.Cause
}

// CompressionError wraps an error from the LZMA layer. It signals a
// problem with the compressed envelope of the action stream, as
// opposed to corruption of the replay fields themselves.
type CompressionError struct {
	Cause error
}

func (err CompressionError) Error() string {
	return "lzma: " + err.Cause.Error()
}

func (err CompressionError) Unwrap() error {
	return err.Cause
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
