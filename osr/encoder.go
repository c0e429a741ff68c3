package osr

import (
	"io"

	"github.com/osukit/osufile"
	"github.com/osukit/osufile/errors"
	"github.com/osukit/osufile/osubin"
)

// Encoder encodes an osufile.Replay into a stream of bytes.
type Encoder struct {
	// Level is the LZMA compression level for the action stream,
	// between 1 and 9. The zero value means DefaultCompressionLevel.
	Level int
}

func encodeError(w *osubin.Writer, err error) error {
	w.Add(0, err)
	err = w.Err()
	if err != nil {
		return DataError{Offset: w.N(), Cause: err}
	}
	return nil
}

// Encode writes the replay to w according to the standalone .osr
// format. A standalone replay always carries a length-prefixed action
// block: a replay without payload encodes as an empty action list,
// not as the embedded-form sentinel.
func (e Encoder) Encode(w io.Writer, rp *osufile.Replay) error {
	if w == nil {
		return errors.New("nil writer")
	}
	if rp == nil {
		return errors.New("nil replay")
	}
	return e.WriteTo(osubin.NewWriter(w), rp, true)
}

// WriteTo encodes a single replay record to bw. When standalone is
// false the no-payload sentinel is written in place of the action
// block, whatever the payload holds, matching the embedded form used
// in a scores database.
func (e Encoder) WriteTo(bw *osubin.Writer, rp *osufile.Replay, standalone bool) error {
	bw.Byte(rp.Mode.Raw())
	bw.Int(rp.Version)
	bw.String(rp.BeatmapHash)
	bw.String(rp.PlayerName)
	bw.String(rp.ReplayHash)
	bw.Short(rp.Count300)
	bw.Short(rp.Count100)
	bw.Short(rp.Count50)
	bw.Short(rp.CountGeki)
	bw.Short(rp.CountKatsu)
	bw.Short(rp.CountMiss)
	bw.Int(rp.Score)
	bw.Short(rp.MaxCombo)
	bw.Bool(rp.PerfectCombo)
	bw.Int(rp.Mods.Bits())
	bw.String(rp.LifeGraph)
	bw.Ticks(rp.Timestamp)

	if standalone {
		raw, err := e.encodePayload(rp.Data)
		if err != nil {
			return encodeError(bw, err)
		}
		bw.Int(uint32(len(raw)))
		bw.Bytes(raw)
	} else {
		bw.Int(noPayloadSentinel)
	}

	bw.Long(rp.OnlineScoreID)
	return encodeError(bw, nil)
}

// encodePayload produces the compressed action block. A raw payload
// passes through unchanged; otherwise the actions, or an empty list
// for a nil payload, are formatted and compressed.
func (e Encoder) encodePayload(data *osufile.ReplayData) ([]byte, error) {
	if data != nil && data.Raw != nil {
		return data.Raw, nil
	}
	var actions []osufile.Action
	if data != nil {
		actions = data.Actions
	}
	return encodeActions(actions, e.level())
}

func (e Encoder) level() int {
	if e.Level == 0 {
		return DefaultCompressionLevel
	}
	return e.Level
}
