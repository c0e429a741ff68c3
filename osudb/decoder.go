package osudb

import (
	"io"

	"github.com/osukit/osufile"
	"github.com/osukit/osufile/errors"
	"github.com/osukit/osufile/osubin"
)

// Decoder decodes a stream of bytes into an osufile.Listing.
type Decoder struct{}

func decodeError(r *osubin.Reader, err error) error {
	r.Add(0, err)
	err = r.Err()
	if err != nil {
		return DataError{Offset: r.N(), Cause: err}
	}
	return nil
}

// Decode reads data from r and decodes it into a listing according to
// the osu!.db format.
//
// Decoding does not recover from malformed data: a truncated stream,
// an enumeration code outside its closed set, or a star rating tag
// that does not match the file version all fail the whole decode. The
// warning channel reports oddities that do not affect the decoded
// value, currently only pre-20191106 entries whose declared byte
// length disagrees with their body.
func (d Decoder) Decode(r io.Reader) (l *osufile.Listing, warn, err error) {
	if r == nil {
		return nil, nil, errors.New("nil reader")
	}
	br := osubin.NewReader(r)

	l = &osufile.Listing{}
	br.Int(&l.Version)
	br.Int(&l.FolderCount)
	br.TicksOption(&l.UnbanDate)
	br.String(&l.PlayerName)

	var count uint32
	if br.Int(&count) {
		return nil, nil, decodeError(br, nil)
	}

	var warns errors.Errors
	for i := 0; i < int(count); i++ {
		bm, w, err := d.decodeBeatmap(br, l.Version, i)
		if err != nil {
			return nil, warns.Return(), BeatmapError{Index: i, Cause: err}
		}
		warns = warns.Append(w)
		l.Beatmaps = append(l.Beatmaps, bm)
	}

	br.Int(&l.UserPermissions)
	if err := decodeError(br, nil); err != nil {
		return nil, warns.Return(), err
	}
	return l, warns.Return(), nil
}

// decodeBeatmap reads one catalogue entry. The version is the already
// decoded catalogue version; it selects the layout of every gated
// field.
func (d Decoder) decodeBeatmap(br *osubin.Reader, version uint32, index int) (bm osufile.Beatmap, warn, err error) {
	// Before versionNoEntrySize every entry is preceded by its byte
	// length. The layout is trusted over the declared length, which
	// keeps files with unknown trailing bytes per entry decodable.
	var declaredSize uint32
	hasSize := !atLeast(version, versionNoEntrySize)
	if hasSize {
		if br.Int(&declaredSize) {
			return bm, nil, decodeError(br, nil)
		}
	}
	start := br.N()

	br.String(&bm.ArtistASCII)
	br.String(&bm.ArtistUnicode)
	br.String(&bm.TitleASCII)
	br.String(&bm.TitleUnicode)
	br.String(&bm.Creator)
	br.String(&bm.DifficultyName)
	br.String(&bm.Audio)
	br.String(&bm.Hash)
	br.String(&bm.FileName)

	if bm.Status, err = d.rankedStatus(br); err != nil {
		return bm, nil, err
	}

	br.Short(&bm.HitcircleCount)
	br.Short(&bm.SliderCount)
	br.Short(&bm.SpinnerCount)
	br.Ticks(&bm.LastModified)

	d.difficulty(br, version, &bm.ApproachRate)
	d.difficulty(br, version, &bm.CircleSize)
	d.difficulty(br, version, &bm.HPDrain)
	d.difficulty(br, version, &bm.OverallDifficulty)
	br.Double(&bm.SliderVelocity)

	if bm.StdRatings, err = d.decodeStarRatings(br, version); err != nil {
		return bm, nil, err
	}
	if bm.TaikoRatings, err = d.decodeStarRatings(br, version); err != nil {
		return bm, nil, err
	}
	if bm.CtbRatings, err = d.decodeStarRatings(br, version); err != nil {
		return bm, nil, err
	}
	if bm.ManiaRatings, err = d.decodeStarRatings(br, version); err != nil {
		return bm, nil, err
	}

	br.Int(&bm.DrainTime)
	br.Int(&bm.TotalTime)
	br.Int(&bm.PreviewTime)

	var pointCount uint32
	if br.Int(&pointCount) {
		return bm, nil, decodeError(br, nil)
	}
	for i := uint32(0); i < pointCount; i++ {
		var tp osufile.TimingPoint
		br.Double(&tp.BPM)
		br.Double(&tp.Offset)
		if br.Bool(&tp.Inherits) {
			return bm, nil, decodeError(br, nil)
		}
		bm.TimingPoints = append(bm.TimingPoints, tp)
	}

	var beatmapID, beatmapsetID uint32
	br.Int(&beatmapID)
	br.Int(&beatmapsetID)
	br.Int(&bm.ThreadID)
	bm.BeatmapID = int32(beatmapID)
	bm.BeatmapsetID = int32(beatmapsetID)

	if bm.StdGrade, err = d.grade(br); err != nil {
		return bm, nil, err
	}
	if bm.TaikoGrade, err = d.grade(br); err != nil {
		return bm, nil, err
	}
	if bm.CtbGrade, err = d.grade(br); err != nil {
		return bm, nil, err
	}
	if bm.ManiaGrade, err = d.grade(br); err != nil {
		return bm, nil, err
	}

	br.Short(&bm.LocalOffset)
	br.Single(&bm.StackLeniency)

	var mode uint8
	if br.Byte(&mode) {
		return bm, nil, decodeError(br, nil)
	}
	var ok bool
	if bm.Mode, ok = osufile.ModeFromRaw(mode); !ok {
		return bm, nil, decodeError(br, ModeError(mode))
	}

	br.String(&bm.SongSource)
	br.String(&bm.Tags)
	br.Short(&bm.OnlineOffset)
	br.String(&bm.TitleFont)
	br.TicksOption(&bm.LastPlayed)
	br.Bool(&bm.IsOsz2)
	br.String(&bm.FolderName)
	br.Ticks(&bm.LastOnlineCheck)
	br.Bool(&bm.IgnoreSounds)
	br.Bool(&bm.IgnoreSkin)
	br.Bool(&bm.DisableStoryboard)
	br.Bool(&bm.DisableVideo)
	br.Bool(&bm.VisualOverride)

	if !atLeast(version, versionFloatDifficulty) {
		var legacy uint16
		if br.Short(&legacy) {
			return bm, nil, decodeError(br, nil)
		}
		bm.UnknownShort = &legacy
	}
	br.Int(&bm.UnknownLastModified)
	br.Byte(&bm.ManiaScrollSpeed)

	if err := decodeError(br, nil); err != nil {
		return bm, nil, err
	}
	if hasSize {
		if consumed := br.N() - start; consumed != int64(declaredSize) {
			warn = EntrySizeError{Index: index, Declared: declaredSize, Consumed: consumed}
		}
	}
	return bm, warn, nil
}

// difficulty reads one of the four difficulty settings. Stored as a
// single byte before versionFloatDifficulty, widened on decode.
func (d Decoder) difficulty(br *osubin.Reader, version uint32, v *float32) bool {
	if atLeast(version, versionFloatDifficulty) {
		return br.Single(v)
	}
	var b uint8
	if br.Byte(&b) {
		return true
	}
	*v = float32(b)
	return false
}

// decodeStarRatings reads one per-mode star rating table. Files
// predating versionFloatDifficulty carry no tables at all.
func (d Decoder) decodeStarRatings(br *osubin.Reader, version uint32) ([]osufile.StarRating, error) {
	if !atLeast(version, versionFloatDifficulty) {
		return nil, nil
	}
	var count uint32
	if br.Int(&count) {
		return nil, decodeError(br, nil)
	}
	var ratings []osufile.StarRating
	for i := uint32(0); i < count; i++ {
		r, err := d.decodeStarRating(br, version)
		if err != nil {
			return nil, err
		}
		ratings = append(ratings, r)
	}
	return ratings, nil
}

// decodeStarRating reads one tagged (mod set, stars) record. A tag
// byte that does not match the literal expected for the version fails
// the decode; it is the main consistency check that the declared
// version matches the data.
func (d Decoder) decodeStarRating(br *osubin.Reader, version uint32) (r osufile.StarRating, err error) {
	var lead uint8
	if br.Byte(&lead) {
		return r, decodeError(br, nil)
	}
	if lead != ratingLeadTag {
		return r, decodeError(br, RatingTagError{Expected: ratingLeadTag, Found: lead})
	}
	var mods uint32
	if br.Int(&mods) {
		return r, decodeError(br, nil)
	}
	r.Mods = osufile.ModSetFromBits(mods)

	var tag uint8
	if br.Byte(&tag) {
		return r, decodeError(br, nil)
	}
	if atLeast(version, versionSingleStars) {
		if tag != ratingSingleTag {
			return r, decodeError(br, RatingTagError{Expected: ratingSingleTag, Found: tag})
		}
		var stars float32
		if br.Single(&stars) {
			return r, decodeError(br, nil)
		}
		r.Stars = float64(stars)
	} else {
		if tag != ratingDoubleTag {
			return r, decodeError(br, RatingTagError{Expected: ratingDoubleTag, Found: tag})
		}
		if br.Double(&r.Stars) {
			return r, decodeError(br, nil)
		}
	}
	return r, nil
}

func (d Decoder) rankedStatus(br *osubin.Reader) (osufile.RankedStatus, error) {
	var raw uint8
	if br.Byte(&raw) {
		return 0, decodeError(br, nil)
	}
	status, ok := osufile.RankedStatusFromRaw(raw)
	if !ok {
		return 0, decodeError(br, RankedStatusError(raw))
	}
	return status, nil
}

func (d Decoder) grade(br *osubin.Reader) (osufile.Grade, error) {
	var raw uint8
	if br.Byte(&raw) {
		return 0, decodeError(br, nil)
	}
	grade, ok := osufile.GradeFromRaw(raw)
	if !ok {
		return 0, decodeError(br, GradeError(raw))
	}
	return grade, nil
}
