package osr

import (
	"io"

	"github.com/osukit/osufile"
	"github.com/osukit/osufile/errors"
	"github.com/osukit/osufile/osubin"
)

// Decoder decodes a stream of bytes into an osufile.Replay.
type Decoder struct {
	// RawActions keeps the compressed action stream as opaque bytes
	// in ReplayData.Raw instead of decompressing and parsing it. The
	// encoder re-emits such a payload unchanged, so a replay round
	// trips byte for byte without compression work.
	RawActions bool
}

func decodeError(r *osubin.Reader, err error) error {
	r.Add(0, err)
	err = r.Err()
	if err != nil {
		return DataError{Offset: r.N(), Cause: err}
	}
	return nil
}

// Decode reads data from r and decodes it into a replay according to
// the standalone .osr format.
func (d Decoder) Decode(r io.Reader) (*osufile.Replay, error) {
	if r == nil {
		return nil, errors.New("nil reader")
	}
	return d.ReadFrom(osubin.NewReader(r), true)
}

// ReadFrom decodes a single replay record from br. standalone selects
// the payload variant: a standalone replay carries a length-prefixed
// action block, while an embedded one must carry exactly the
// no-payload sentinel in its place.
func (d Decoder) ReadFrom(br *osubin.Reader, standalone bool) (*osufile.Replay, error) {
	rp := &osufile.Replay{}

	var mode uint8
	if br.Byte(&mode) {
		return nil, decodeError(br, nil)
	}
	m, ok := osufile.ModeFromRaw(mode)
	if !ok {
		return nil, decodeError(br, ModeError(mode))
	}
	rp.Mode = m

	br.Int(&rp.Version)
	br.String(&rp.BeatmapHash)
	br.String(&rp.PlayerName)
	br.String(&rp.ReplayHash)
	br.Short(&rp.Count300)
	br.Short(&rp.Count100)
	br.Short(&rp.Count50)
	br.Short(&rp.CountGeki)
	br.Short(&rp.CountKatsu)
	br.Short(&rp.CountMiss)
	br.Int(&rp.Score)
	br.Short(&rp.MaxCombo)
	br.Bool(&rp.PerfectCombo)

	var mods uint32
	br.Int(&mods)
	rp.Mods = osufile.ModSetFromBits(mods)

	br.String(&rp.LifeGraph)
	br.Ticks(&rp.Timestamp)

	if standalone {
		var length uint32
		if br.Int(&length) {
			return nil, decodeError(br, nil)
		}
		raw := make([]byte, length)
		if br.Bytes(raw) {
			return nil, decodeError(br, nil)
		}
		data := &osufile.ReplayData{}
		if d.RawActions {
			data.Raw = raw
		} else {
			actions, err := decodeActions(raw)
			if err != nil {
				return nil, decodeError(br, err)
			}
			data.Actions = actions
		}
		rp.Data = data
	} else {
		var sentinel uint32
		if br.Int(&sentinel) {
			return nil, decodeError(br, nil)
		}
		if sentinel != noPayloadSentinel {
			return nil, decodeError(br, SentinelError(sentinel))
		}
	}

	br.Long(&rp.OnlineScoreID)
	if err := decodeError(br, nil); err != nil {
		return nil, err
	}
	return rp, nil
}
