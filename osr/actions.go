package osr

import (
	"bytes"
	"io"
	"strconv"

	"github.com/osukit/osufile"
	"github.com/ulikunitz/xz/lzma"
)

// decodeActions decompresses an LZMA action block and parses the
// plaintext action list inside it. A zero-length block is an empty
// list.
func decodeActions(raw []byte) ([]osufile.Action, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	zr, err := lzma.NewReader(bytes.NewReader(raw))
	if err != nil {
		return nil, CompressionError{Cause: err}
	}
	text, err := io.ReadAll(zr)
	if err != nil {
		return nil, CompressionError{Cause: err}
	}
	return parseActions(text)
}

// encodeActions formats the actions into the plaintext grammar and
// compresses the result at the given level.
func encodeActions(actions []osufile.Action, level int) ([]byte, error) {
	var text []byte
	for _, a := range actions {
		text = appendAction(text, a)
	}
	var buf bytes.Buffer
	zw, err := lzma.WriterConfig{DictCap: lzmaDictCap(level)}.NewWriter(&buf)
	if err != nil {
		return nil, CompressionError{Cause: err}
	}
	if _, err := zw.Write(text); err != nil {
		return nil, CompressionError{Cause: err}
	}
	if err := zw.Close(); err != nil {
		return nil, CompressionError{Cause: err}
	}
	return buf.Bytes(), nil
}

// parseActions parses the decompressed plaintext action list: zero or
// more "<delta>|<x>|<y>|<z>," records with no whitespace. The final
// record may omit its ',' terminator. A malformed record fails the
// whole parse.
func parseActions(text []byte) ([]osufile.Action, error) {
	var actions []osufile.Action
	pos := 0
	for pos < len(text) {
		var fields [4]float64
		for i := 0; i < 3; i++ {
			v, next, err := parseNumber(text, pos)
			if err != nil {
				return nil, err
			}
			fields[i] = v
			pos = next
			if pos >= len(text) || text[pos] != '|' {
				return nil, ActionError{Offset: int64(pos), Cause: errMissingSeparator}
			}
			pos++
		}
		v, next, err := parseNumber(text, pos)
		if err != nil {
			return nil, err
		}
		fields[3] = v
		pos = next

		actions = append(actions, osufile.Action{
			Delta: int64(fields[0]),
			X:     float32(fields[1]),
			Y:     float32(fields[2]),
			Z:     float32(fields[3]),
		})

		if pos >= len(text) {
			break
		}
		if text[pos] != ',' {
			return nil, ActionError{Offset: int64(pos), Cause: errMissingTerminator}
		}
		pos++
	}
	return actions, nil
}

// parseNumber parses one decimal of the grammar: an optional leading
// '-', one or more digits, and optionally a '.' followed by one or
// more digits. No exponent notation and no leading '+'.
func parseNumber(text []byte, pos int) (float64, int, error) {
	neg := false
	if pos < len(text) && text[pos] == '-' {
		neg = true
		pos++
	}
	start := pos
	num := 0.0
	for pos < len(text) && isDigit(text[pos]) {
		num = num*10 + float64(text[pos]-'0')
		pos++
	}
	if pos == start {
		return 0, 0, ActionError{Offset: int64(pos), Cause: errExpectedDigit}
	}
	if pos < len(text) && text[pos] == '.' {
		pos++
		start = pos
		scale := 1.0
		for pos < len(text) && isDigit(text[pos]) {
			scale /= 10
			num += float64(text[pos]-'0') * scale
			pos++
		}
		if pos == start {
			return 0, 0, ActionError{Offset: int64(pos), Cause: errExpectedDigit}
		}
	}
	if neg {
		num = -num
	}
	return num, pos, nil
}

func isDigit(c byte) bool {
	return '0' <= c && c <= '9'
}

func appendAction(dst []byte, a osufile.Action) []byte {
	dst = strconv.AppendInt(dst, a.Delta, 10)
	dst = append(dst, '|')
	dst = appendNumber(dst, a.X)
	dst = append(dst, '|')
	dst = appendNumber(dst, a.Y)
	dst = append(dst, '|')
	dst = appendNumber(dst, a.Z)
	return append(dst, ',')
}

// appendNumber formats v in the plain decimal form the grammar
// accepts: no exponent, shortest digits that re-parse to the same
// float.
func appendNumber(dst []byte, v float32) []byte {
	return strconv.AppendFloat(dst, float64(v), 'f', -1, 32)
}
