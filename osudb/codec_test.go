package osudb

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/osukit/osufile"
	"github.com/osukit/osufile/osubin"
)

func strptr(s string) *string { return &s }
func u16ptr(v uint16) *uint16 { return &v }

// app builds a byte fixture from a mix of literals.
func app(bs ...interface{}) []byte {
	var s []byte
	for _, b := range bs {
		switch b := b.(type) {
		case string:
			s = append(s, []byte(b)...)
		case []byte:
			s = append(s, b...)
		case byte:
			s = append(s, b)
		case int:
			s = append(s, byte(b))
		case uint16:
			s = binary.LittleEndian.AppendUint16(s, b)
		case uint32:
			s = binary.LittleEndian.AppendUint32(s, b)
		case uint64:
			s = binary.LittleEndian.AppendUint64(s, b)
		default:
			panic(fmt.Sprintf("unhandled fixture type %T", b))
		}
	}
	return s
}

// testListing builds a two-entry listing exercising every field the
// given version can carry.
func testListing(version uint32) *osufile.Listing {
	bm := osufile.Beatmap{
		ArtistASCII:    strptr("Artist"),
		ArtistUnicode:  strptr("アーティスト"),
		TitleASCII:     strptr("Title"),
		TitleUnicode:   nil,
		Creator:        strptr("mapper"),
		DifficultyName: strptr("Insane"),
		Audio:          strptr("audio.mp3"),
		Hash:           strptr("1cf5b2c2cdfbb59c67dd2b1a5d0f2b6c"),
		FileName:       strptr("Artist - Title (mapper) [Insane].osu"),
		Status:         osufile.StatusRanked,
		HitcircleCount: 320,
		SliderCount:    80,
		SpinnerCount:   2,
		LastModified:   634600000000000000,

		// Integral so the byte layout of old versions can hold them.
		ApproachRate:      9,
		CircleSize:        4,
		HPDrain:           6,
		OverallDifficulty: 8,
		SliderVelocity:    1.8,

		DrainTime:   95,
		TotalTime:   98000,
		PreviewTime: 40000,
		TimingPoints: []osufile.TimingPoint{
			{BPM: 60000.0 / 175, Offset: 1205, Inherits: true},
			{BPM: -100, Offset: 20525, Inherits: false},
		},
		BeatmapID:    131891,
		BeatmapsetID: 39804,
		ThreadID:     54321,
		StdGrade:     osufile.GradeS,
		TaikoGrade:   osufile.GradeUnplayed,
		CtbGrade:     osufile.GradeUnplayed,
		ManiaGrade:   osufile.GradeUnplayed,

		LocalOffset:   12,
		StackLeniency: 0.7,
		Mode:          osufile.ModeStandard,
		SongSource:    strptr(""),
		Tags:          strptr("stream jump"),
		OnlineOffset:  3,
		TitleFont:     nil,
		LastPlayed:    osufile.NewTicks(636500000000000000),
		IsOsz2:        false,
		FolderName:    strptr("39804 Artist - Title"),

		LastOnlineCheck:     636600000000000000,
		IgnoreSounds:        false,
		IgnoreSkin:          true,
		DisableStoryboard:   false,
		DisableVideo:        true,
		VisualOverride:      false,
		UnknownLastModified: 0xdeadbeef,
		ManiaScrollSpeed:    14,
	}
	if atLeast(version, versionFloatDifficulty) {
		bm.StdRatings = []osufile.StarRating{
			{Mods: osufile.ModSetFromBits(0), Stars: 5.25},
			{Mods: osufile.ModSet(0).With(osufile.ModDoubleTime), Stars: 7.5},
			// The table is an associative list: duplicates survive.
			{Mods: osufile.ModSet(0).With(osufile.ModDoubleTime), Stars: 7.5},
		}
		bm.TaikoRatings = []osufile.StarRating{
			{Mods: osufile.ModSetFromBits(0), Stars: 4.5},
		}
	} else {
		bm.UnknownShort = u16ptr(3)
	}

	sparse := bm
	sparse.ArtistUnicode = nil
	sparse.SongSource = nil
	sparse.Tags = nil
	sparse.LastPlayed = nil
	sparse.TimingPoints = nil
	sparse.Status = osufile.StatusPendingWipGraveyard
	sparse.Mode = osufile.ModeMania

	return &osufile.Listing{
		Version:         version,
		FolderCount:     2,
		UnbanDate:       nil,
		PlayerName:      strptr("player"),
		Beatmaps:        []osufile.Beatmap{bm, sparse},
		UserPermissions: 1,
	}
}

func TestRoundTrip(t *testing.T) {
	// One version inside each layout epoch, plus the boundaries.
	versions := []uint32{20101010, 20140609, 20180722, 20191106, 20250107}
	for _, version := range versions {
		t.Run(fmt.Sprint(version), func(t *testing.T) {
			l := testListing(version)
			var buf bytes.Buffer
			if err := (Encoder{}).Encode(&buf, l); err != nil {
				t.Fatalf("encode: %v", err)
			}
			got, warn, err := Decoder{}.Decode(bytes.NewReader(buf.Bytes()))
			if warn != nil {
				t.Errorf("unexpected warning: %v", warn)
			}
			if err != nil {
				t.Fatalf("decode: %v", err)
			}
			if diff := cmp.Diff(l, got); diff != "" {
				t.Errorf("listing mismatch (-want +got):\n%s", diff)
			}

			var again bytes.Buffer
			if err := (Encoder{}).Encode(&again, got); err != nil {
				t.Fatalf("re-encode: %v", err)
			}
			if !bytes.Equal(buf.Bytes(), again.Bytes()) {
				t.Error("re-encoded bytes differ from first encoding")
			}
		})
	}
}

func TestDecodeHeader(t *testing.T) {
	data := app(
		uint32(20191106), uint32(7),
		0x01, uint64(0), // no restriction, placeholder date
		0x0b, 0x06, "player",
		uint32(0), // no beatmaps
		uint32(4),
	)
	l, warn, err := Decoder{}.Decode(bytes.NewReader(data))
	if warn != nil || err != nil {
		t.Fatalf("decode: warn %v, err %v", warn, err)
	}
	if l.Version != 20191106 || l.FolderCount != 7 || l.UserPermissions != 4 {
		t.Errorf("header: %+v", l)
	}
	if l.UnbanDate != nil {
		t.Errorf("unban date: got %v, want nil", *l.UnbanDate)
	}
	if l.PlayerName == nil || *l.PlayerName != "player" {
		t.Errorf("player name: got %v", l.PlayerName)
	}
	if len(l.Beatmaps) != 0 {
		t.Errorf("beatmaps: got %d", len(l.Beatmaps))
	}
}

func TestUnbanDateCollapsing(t *testing.T) {
	// The flag is inverted: true means unrestricted, and the
	// timestamp that follows is a placeholder to be discarded,
	// whatever its bytes say.
	data := app(
		uint32(20191106), uint32(0),
		0x01, uint64(0x123456789abcdef0),
		0x00,      // player name absent
		uint32(0), // no beatmaps
		uint32(0),
	)
	l, _, err := Decoder{}.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatal(err)
	}
	if l.UnbanDate != nil {
		t.Errorf("got %v, want nil", *l.UnbanDate)
	}

	// Encoding nil always writes flag 1 and placeholder 0.
	var buf bytes.Buffer
	if err := (Encoder{}).Encode(&buf, l); err != nil {
		t.Fatal(err)
	}
	want := app(uint32(20191106), uint32(0), 0x01, uint64(0), 0x00, uint32(0), uint32(0))
	if !bytes.Equal(buf.Bytes(), want) {
		t.Errorf("got % 02x, want % 02x", buf.Bytes(), want)
	}

	// Flag 0 keeps the date.
	data = app(
		uint32(20191106), uint32(0),
		0x00, uint64(636600000000000000),
		0x00, uint32(0), uint32(0),
	)
	l, _, err = Decoder{}.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatal(err)
	}
	if l.UnbanDate == nil || *l.UnbanDate != 636600000000000000 {
		t.Errorf("got %v", l.UnbanDate)
	}
}

func TestStarRatingRecord(t *testing.T) {
	const doubleEra, singleEra = 20180722, 20250107

	t.Run("double era", func(t *testing.T) {
		rec := app(0x08, uint32(72), 0x0d, math.Float64bits(7.11))
		br := osubin.NewReader(bytes.NewReader(rec))
		r, err := Decoder{}.decodeStarRating(br, doubleEra)
		if err != nil {
			t.Fatal(err)
		}
		if r.Mods.Bits() != 72 || r.Stars != 7.11 {
			t.Errorf("got %+v", r)
		}
	})

	t.Run("single era widens", func(t *testing.T) {
		rec := app(0x08, uint32(0), 0x0c, math.Float32bits(5.5))
		br := osubin.NewReader(bytes.NewReader(rec))
		r, err := Decoder{}.decodeStarRating(br, singleEra)
		if err != nil {
			t.Fatal(err)
		}
		if r.Stars != 5.5 {
			t.Errorf("got %v", r.Stars)
		}
	})

	mismatches := []struct {
		name             string
		version          uint32
		rec              []byte
		expected, found  uint8
	}{
		{"single tag in double era", doubleEra, app(0x08, uint32(0), 0x0c, uint32(0)), 0x0d, 0x0c},
		{"double tag in single era", singleEra, app(0x08, uint32(0), 0x0d, uint64(0)), 0x0c, 0x0d},
		{"bad lead byte", doubleEra, app(0x09, uint32(0), 0x0d, uint64(0)), 0x08, 0x09},
	}
	for _, c := range mismatches {
		t.Run(c.name, func(t *testing.T) {
			br := osubin.NewReader(bytes.NewReader(c.rec))
			_, err := Decoder{}.decodeStarRating(br, c.version)
			var tagErr RatingTagError
			if !errors.As(err, &tagErr) {
				t.Fatalf("got %v, want RatingTagError", err)
			}
			if tagErr.Expected != c.expected || tagErr.Found != c.found {
				t.Errorf("got %+v", tagErr)
			}
		})
	}
}

func TestEpochGatingStarRatings(t *testing.T) {
	// Below the float-difficulty revision the format has no room for
	// rating tables: a non-empty table serializes to zero bytes and
	// comes back empty, not as an error.
	l := testListing(20101010)
	withRatings := *l
	withRatings.Beatmaps = append([]osufile.Beatmap(nil), l.Beatmaps...)
	withRatings.Beatmaps[0].StdRatings = []osufile.StarRating{{Stars: 5}}

	var plain, rated bytes.Buffer
	if err := (Encoder{}).Encode(&plain, l); err != nil {
		t.Fatal(err)
	}
	if err := (Encoder{}).Encode(&rated, &withRatings); err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(plain.Bytes(), rated.Bytes()) {
		t.Error("rating table leaked into a pre-20140609 encoding")
	}

	got, _, err := Decoder{}.Decode(bytes.NewReader(rated.Bytes()))
	if err != nil {
		t.Fatal(err)
	}
	if len(got.Beatmaps[0].StdRatings) != 0 {
		t.Errorf("ratings: got %v", got.Beatmaps[0].StdRatings)
	}
}

func TestEntrySizeWarning(t *testing.T) {
	l := testListing(20101010)
	l.Beatmaps = l.Beatmaps[:1]
	var buf bytes.Buffer
	if err := (Encoder{}).Encode(&buf, l); err != nil {
		t.Fatal(err)
	}

	// The declared entry size sits right after the header and entry
	// count; its offset is the length of an entry-less encoding minus
	// the trailing permission mask.
	header := *l
	header.Beatmaps = nil
	var empty bytes.Buffer
	if err := (Encoder{}).Encode(&empty, &header); err != nil {
		t.Fatal(err)
	}
	sizeOffset := empty.Len() - 4

	data := buf.Bytes()
	declared := binary.LittleEndian.Uint32(data[sizeOffset:])
	binary.LittleEndian.PutUint32(data[sizeOffset:], declared+5)

	got, warn, err := Decoder{}.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	var sizeErr EntrySizeError
	if !errors.As(warn, &sizeErr) {
		t.Fatalf("warning: got %v, want EntrySizeError", warn)
	}
	if sizeErr.Index != 0 || sizeErr.Declared != declared+5 || sizeErr.Consumed != int64(declared) {
		t.Errorf("warning: %+v", sizeErr)
	}
	if diff := cmp.Diff(l, got); diff != "" {
		t.Errorf("listing mismatch (-want +got):\n%s", diff)
	}
}

func TestInvalidRankedStatus(t *testing.T) {
	l := testListing(20191106)
	l.Beatmaps = l.Beatmaps[:1]
	bm := &l.Beatmaps[0]
	bm.ArtistASCII, bm.ArtistUnicode, bm.TitleASCII, bm.TitleUnicode = nil, nil, nil, nil
	bm.Creator, bm.DifficultyName, bm.Audio, bm.Hash, bm.FileName = nil, nil, nil, nil, nil

	var buf bytes.Buffer
	if err := (Encoder{}).Encode(&buf, l); err != nil {
		t.Fatal(err)
	}
	header := *l
	header.Beatmaps = nil
	var empty bytes.Buffer
	if err := (Encoder{}).Encode(&empty, &header); err != nil {
		t.Fatal(err)
	}

	// Nine absent strings, then the status byte. 3 is a hole in the
	// closed set.
	data := buf.Bytes()
	data[empty.Len()-4+9] = 3

	_, _, err := Decoder{}.Decode(bytes.NewReader(data))
	var statusErr RankedStatusError
	if !errors.As(err, &statusErr) {
		t.Fatalf("got %v, want RankedStatusError", err)
	}
	if uint8(statusErr) != 3 {
		t.Errorf("got code %d, want 3", uint8(statusErr))
	}
	var bmErr BeatmapError
	if !errors.As(err, &bmErr) || bmErr.Index != 0 {
		t.Errorf("missing entry context: %v", err)
	}
}

func TestTruncatedInput(t *testing.T) {
	l := testListing(20250107)
	l.Beatmaps = l.Beatmaps[:1]
	var buf bytes.Buffer
	if err := (Encoder{}).Encode(&buf, l); err != nil {
		t.Fatal(err)
	}
	data := buf.Bytes()
	for n := 0; n < len(data); n++ {
		if _, _, err := (Decoder{}).Decode(bytes.NewReader(data[:n])); err == nil {
			t.Fatalf("prefix %d of %d: expected error", n, len(data))
		}
	}
}

func FuzzDecode(f *testing.F) {
	for _, version := range []uint32{20101010, 20180722, 20250107} {
		var buf bytes.Buffer
		if err := (Encoder{}).Encode(&buf, testListing(version)); err != nil {
			f.Fatal(err)
		}
		f.Add(buf.Bytes())
	}
	f.Fuzz(func(t *testing.T, data []byte) {
		l, _, err := Decoder{}.Decode(bytes.NewReader(data))
		if err != nil {
			return
		}
		// Whatever decodes must survive a value-level round trip.
		var buf bytes.Buffer
		if err := (Encoder{}).Encode(&buf, l); err != nil {
			t.Fatalf("re-encode: %v", err)
		}
		again, _, err := Decoder{}.Decode(bytes.NewReader(buf.Bytes()))
		if err != nil {
			t.Fatalf("re-decode: %v", err)
		}
		if diff := cmp.Diff(l, again); diff != "" {
			t.Errorf("round trip mismatch (-first +second):\n%s", diff)
		}
	})
}
