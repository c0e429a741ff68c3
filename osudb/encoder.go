package osudb

import (
	"bytes"
	"io"

	"github.com/osukit/osufile"
	"github.com/osukit/osufile/errors"
	"github.com/osukit/osufile/osubin"
)

// Encoder encodes an osufile.Listing into a stream of bytes.
type Encoder struct{}

func encodeError(w *osubin.Writer, err error) error {
	w.Add(0, err)
	err = w.Err()
	if err != nil {
		return DataError{Offset: w.N(), Cause: err}
	}
	return nil
}

// Encode writes the listing to w according to the osu!.db format. The
// listing's Version field selects the layout, so a listing decoded
// from a file re-encodes byte for byte.
func (e Encoder) Encode(w io.Writer, l *osufile.Listing) error {
	if w == nil {
		return errors.New("nil writer")
	}
	if l == nil {
		return errors.New("nil listing")
	}
	bw := osubin.NewWriter(w)

	bw.Int(l.Version)
	bw.Int(l.FolderCount)
	bw.TicksOption(l.UnbanDate)
	bw.String(l.PlayerName)

	bw.Int(uint32(len(l.Beatmaps)))
	for i := range l.Beatmaps {
		if err := e.encodeBeatmap(bw, &l.Beatmaps[i], l.Version); err != nil {
			return BeatmapError{Index: i, Cause: err}
		}
	}

	bw.Int(l.UserPermissions)
	return encodeError(bw, nil)
}

// encodeBeatmap writes one catalogue entry. Before versionNoEntrySize
// the entry body must be preceded by its byte length, which is only
// known after serializing it, so the body goes through a scratch
// buffer first.
func (e Encoder) encodeBeatmap(bw *osubin.Writer, bm *osufile.Beatmap, version uint32) error {
	if atLeast(version, versionNoEntrySize) {
		return e.encodeBeatmapBody(bw, bm, version)
	}

	var buf bytes.Buffer
	sw := osubin.NewWriter(&buf)
	if err := e.encodeBeatmapBody(sw, bm, version); err != nil {
		return err
	}
	bw.Int(uint32(buf.Len()))
	bw.Bytes(buf.Bytes())
	return encodeError(bw, nil)
}

func (e Encoder) encodeBeatmapBody(bw *osubin.Writer, bm *osufile.Beatmap, version uint32) error {
	bw.String(bm.ArtistASCII)
	bw.String(bm.ArtistUnicode)
	bw.String(bm.TitleASCII)
	bw.String(bm.TitleUnicode)
	bw.String(bm.Creator)
	bw.String(bm.DifficultyName)
	bw.String(bm.Audio)
	bw.String(bm.Hash)
	bw.String(bm.FileName)

	bw.Byte(bm.Status.Raw())
	bw.Short(bm.HitcircleCount)
	bw.Short(bm.SliderCount)
	bw.Short(bm.SpinnerCount)
	bw.Ticks(bm.LastModified)

	e.difficulty(bw, version, bm.ApproachRate)
	e.difficulty(bw, version, bm.CircleSize)
	e.difficulty(bw, version, bm.HPDrain)
	e.difficulty(bw, version, bm.OverallDifficulty)
	bw.Double(bm.SliderVelocity)

	e.encodeStarRatings(bw, bm.StdRatings, version)
	e.encodeStarRatings(bw, bm.TaikoRatings, version)
	e.encodeStarRatings(bw, bm.CtbRatings, version)
	e.encodeStarRatings(bw, bm.ManiaRatings, version)

	bw.Int(bm.DrainTime)
	bw.Int(bm.TotalTime)
	bw.Int(bm.PreviewTime)

	bw.Int(uint32(len(bm.TimingPoints)))
	for _, tp := range bm.TimingPoints {
		bw.Double(tp.BPM)
		bw.Double(tp.Offset)
		bw.Bool(tp.Inherits)
	}

	bw.Int(uint32(bm.BeatmapID))
	bw.Int(uint32(bm.BeatmapsetID))
	bw.Int(bm.ThreadID)

	bw.Byte(bm.StdGrade.Raw())
	bw.Byte(bm.TaikoGrade.Raw())
	bw.Byte(bm.CtbGrade.Raw())
	bw.Byte(bm.ManiaGrade.Raw())

	bw.Short(bm.LocalOffset)
	bw.Single(bm.StackLeniency)
	bw.Byte(bm.Mode.Raw())

	bw.String(bm.SongSource)
	bw.String(bm.Tags)
	bw.Short(bm.OnlineOffset)
	bw.String(bm.TitleFont)
	bw.TicksOption(bm.LastPlayed)
	bw.Bool(bm.IsOsz2)
	bw.String(bm.FolderName)
	bw.Ticks(bm.LastOnlineCheck)
	bw.Bool(bm.IgnoreSounds)
	bw.Bool(bm.IgnoreSkin)
	bw.Bool(bm.DisableStoryboard)
	bw.Bool(bm.DisableVideo)
	bw.Bool(bm.VisualOverride)

	if !atLeast(version, versionFloatDifficulty) {
		var legacy uint16
		if bm.UnknownShort != nil {
			legacy = *bm.UnknownShort
		}
		bw.Short(legacy)
	}
	bw.Int(bm.UnknownLastModified)
	bw.Byte(bm.ManiaScrollSpeed)

	return encodeError(bw, nil)
}

// difficulty writes one of the four difficulty settings, narrowing it
// back to a byte below versionFloatDifficulty.
func (e Encoder) difficulty(bw *osubin.Writer, version uint32, v float32) bool {
	if atLeast(version, versionFloatDifficulty) {
		return bw.Single(v)
	}
	return bw.Byte(uint8(v))
}

// encodeStarRatings writes one per-mode star rating table. Below
// versionFloatDifficulty the format has no room for the table, so a
// non-empty one serializes to nothing.
func (e Encoder) encodeStarRatings(bw *osubin.Writer, ratings []osufile.StarRating, version uint32) bool {
	if !atLeast(version, versionFloatDifficulty) {
		return false
	}
	if bw.Int(uint32(len(ratings))) {
		return true
	}
	for _, r := range ratings {
		bw.Byte(ratingLeadTag)
		bw.Int(r.Mods.Bits())
		if atLeast(version, versionSingleStars) {
			bw.Byte(ratingSingleTag)
			bw.Single(float32(r.Stars))
		} else {
			bw.Byte(ratingDoubleTag)
			bw.Double(r.Stars)
		}
	}
	return bw.Err() != nil
}
