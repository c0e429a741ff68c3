// Package scoresdb implements a decoder and encoder for the scores.db
// database, which stores every locally achieved score grouped by
// beatmap.
//
// Each stored score is a replay record in its embedded form: the
// shared replay fields followed by the no-payload sentinel instead of
// an action block. The osr package handles the records themselves.
package scoresdb

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/osukit/osufile"
	"github.com/osukit/osufile/errors"
	"github.com/osukit/osufile/osr"
	"github.com/osukit/osufile/osubin"
)

// Decoder decodes a stream of bytes into an osufile.ScoreList.
type Decoder struct{}

func decodeError(r *osubin.Reader, err error) error {
	r.Add(0, err)
	err = r.Err()
	if err != nil {
		return DataError{Offset: r.N(), Cause: err}
	}
	return nil
}

// Decode reads data from r and decodes it into a score list according
// to the scores.db format.
func (d Decoder) Decode(r io.Reader) (*osufile.ScoreList, error) {
	if r == nil {
		return nil, errors.New("nil reader")
	}
	br := osubin.NewReader(r)

	l := &osufile.ScoreList{}
	br.Int(&l.Version)

	var count uint32
	if br.Int(&count) {
		return nil, decodeError(br, nil)
	}
	rd := osr.Decoder{}
	for i := 0; i < int(count); i++ {
		var bs osufile.BeatmapScores
		br.String(&bs.Hash)

		var scores uint32
		if br.Int(&scores) {
			return nil, decodeError(br, nil)
		}
		for j := 0; j < int(scores); j++ {
			rp, err := rd.ReadFrom(br, false)
			if err != nil {
				return nil, ScoreError{Beatmap: i, Index: j, Cause: err}
			}
			bs.Scores = append(bs.Scores, rp)
		}
		l.Beatmaps = append(l.Beatmaps, bs)
	}

	if err := decodeError(br, nil); err != nil {
		return nil, err
	}
	return l, nil
}

// Encoder encodes an osufile.ScoreList into a stream of bytes.
type Encoder struct{}

// Encode writes the score list to w according to the scores.db
// format. Every replay is written in its embedded form; action
// payloads, if any are attached, are not stored.
func (e Encoder) Encode(w io.Writer, l *osufile.ScoreList) error {
	if w == nil {
		return errors.New("nil writer")
	}
	if l == nil {
		return errors.New("nil score list")
	}
	bw := osubin.NewWriter(w)

	bw.Int(l.Version)
	bw.Int(uint32(len(l.Beatmaps)))
	we := osr.Encoder{}
	for i := range l.Beatmaps {
		bs := &l.Beatmaps[i]
		bw.String(bs.Hash)
		bw.Int(uint32(len(bs.Scores)))
		for j, rp := range bs.Scores {
			if err := we.WriteTo(bw, rp, false); err != nil {
				return ScoreError{Beatmap: i, Index: j, Cause: err}
			}
		}
	}

	err := bw.Err()
	if err != nil {
		return DataError{Offset: bw.N(), Cause: err}
	}
	return nil
}

// DecodeFile reads a score list from the scores.db file at path.
func DecodeFile(path string) (*osufile.ScoreList, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Decoder{}.Decode(bufio.NewReader(f))
}

// EncodeFile writes the score list to the file at path, replacing it
// if it exists.
func EncodeFile(path string, l *osufile.ScoreList) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	bw := bufio.NewWriter(f)
	if err := (Encoder{}).Encode(bw, l); err != nil {
		f.Close()
		return err
	}
	if err := bw.Flush(); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// ScoreError indicates an error within one stored score.
type ScoreError struct {
	// Beatmap is the position of the score group within the database.
	Beatmap int
	// Index is the position of the score within its group.
	Index int

	Cause error
}

func (err ScoreError) Error() string {
	return fmt.Sprintf("beatmap #%d score #%d: %s", err.Beatmap, err.Index, err.Cause.Error())
}

func (err ScoreError) Unwrap() error {
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
