// The osufile package models the binary databases kept by the osu!
// client: the beatmap catalogue (osu!.db), standalone replays (.osr),
// and the score database (scores.db).
//
// This package holds only the data structures. Decoding and encoding
// live in the format sub-packages: "osudb" for the catalogue, "osr"
// for replays, and "scoresdb" for the score database. The "osubin"
// package provides the primitive binary layer shared by the formats.
//
// The catalogue format carries its own version number, a decimal date
// of the form YYYYMMDD, and several fields changed width or presence
// across versions. The format packages handle those changes; values
// decoded from an old file re-encode byte for byte at the same
// version.
package osufile

// Listing is the decoded form of an osu!.db file: the catalogue of
// every installed beatmap, plus a small amount of account state.
type Listing struct {
	// Version is the catalogue format version, a decimal date of the
	// form YYYYMMDD. It controls the layout of every version-gated
	// field, both when decoding and when re-encoding.
	Version uint32

	// FolderCount is the number of folders in the Songs directory.
	FolderCount uint32

	// UnbanDate is the end of the account's restriction, or nil if the
	// account is not restricted.
	UnbanDate *Ticks

	// PlayerName is the locally signed-in player, if any.
	PlayerName *string

	// Beatmaps holds one entry per installed difficulty, in file
	// order. The order is meaningful and preserved by the codec.
	Beatmaps []Beatmap

	// UserPermissions is the raw permission bit mask (0 = none,
	// 1 = normal, 2 = moderator, 4 = supporter, 8 = friend,
	// 16 = peppy, 32 = World Cup staff).
	UserPermissions uint32
}

// Beatmap is a single catalogue entry: the cached metadata for one
// difficulty of one beatmapset.
type Beatmap struct {
	// ArtistASCII is the romanized artist name.
	ArtistASCII *string
	// ArtistUnicode is the unrestricted artist name.
	ArtistUnicode *string
	// TitleASCII is the romanized song title.
	TitleASCII *string
	// TitleUnicode is the unrestricted song title.
	TitleUnicode *string
	// Creator is the mapper's name.
	Creator *string
	// DifficultyName is the name of this difficulty ("Insane", etc).
	DifficultyName *string
	// Audio is the filename of the song file.
	Audio *string
	// Hash is the MD5 hash of the beatmap, as a hex string.
	Hash *string
	// FileName is the filename of the .osu file for this difficulty.
	FileName *string

	Status         RankedStatus
	HitcircleCount uint16
	SliderCount    uint16
	SpinnerCount   uint16
	LastModified   Ticks

	// The four difficulty settings. Stored as bytes before the
	// 20140609 format revision and as floats after it.
	ApproachRate      float32
	CircleSize        float32
	HPDrain           float32
	OverallDifficulty float32

	SliderVelocity float64

	// Per-mod star rating tables, one per game mode. Empty on files
	// predating the 20140609 revision.
	StdRatings   []StarRating
	TaikoRatings []StarRating
	CtbRatings   []StarRating
	ManiaRatings []StarRating

	// DrainTime is in seconds; TotalTime and PreviewTime are in
	// milliseconds from the start of the song.
	DrainTime   uint32
	TotalTime   uint32
	PreviewTime uint32

	TimingPoints []TimingPoint

	BeatmapID    int32
	BeatmapsetID int32
	ThreadID     uint32

	StdGrade   Grade
	TaikoGrade Grade
	CtbGrade   Grade
	ManiaGrade Grade

	LocalOffset   uint16
	StackLeniency float32
	Mode          Mode

	// SongSource is where the song comes from, if anywhere.
	SongSource *string
	// Tags are whitespace-separated search tags.
	Tags *string

	OnlineOffset uint16
	TitleFont    *string

	// LastPlayed is nil if the beatmap has never been played.
	LastPlayed *Ticks

	// IsOsz2 reports whether the beatmap came in osz2 form.
	IsOsz2 bool

	// FolderName is the beatmapset's folder within Songs.
	FolderName *string

	// LastOnlineCheck is when the entry was last checked against the
	// online repository.
	LastOnlineCheck Ticks

	IgnoreSounds      bool
	IgnoreSkin        bool
	DisableStoryboard bool
	DisableVideo      bool
	VisualOverride    bool

	// UnknownShort is an unidentified field present only on files
	// predating the 20140609 revision. Kept so such files round-trip
	// byte for byte.
	UnknownShort *uint16

	// UnknownLastModified is an unidentified 32-bit field, possibly an
	// early last-modified stamp. Kept for round-tripping.
	UnknownLastModified uint32

	ManiaScrollSpeed uint8
}

// StarRating is one entry of a per-mod difficulty table: the star
// count a mod combination yields for a beatmap. Tables are ordered
// associative lists; the codec preserves stream order and does not
// deduplicate mod combinations.
type StarRating struct {
	Mods  ModSet
	Stars float64
}

// TimingPoint is a tempo marker within a beatmap.
type TimingPoint struct {
	// BPM is the tempo of the timing point. Non-inheriting points
	// store a negative percentage of the previous point's tempo here
	// instead of an absolute value.
	BPM float64

	// Offset is in milliseconds from the start of the song.
	Offset float64

	// Inherits reports whether the point derives its tempo from the
	// previous point.
	Inherits bool
}

// RankedStatus is the online ranking state of a beatmap.
type RankedStatus uint8

const (
	StatusUnknown RankedStatus = iota
	StatusUnsubmitted
	// StatusPendingWipGraveyard covers all three of pending, WIP and
	// graveyard; the format does not distinguish them.
	StatusPendingWipGraveyard
	_ // 3 is unused on the wire
	StatusRanked
	StatusApproved
	StatusQualified
	StatusLoved
)

// RankedStatusFromRaw converts a wire code into a RankedStatus.
// Returns false for codes outside the closed set.
func RankedStatusFromRaw(raw uint8) (RankedStatus, bool) {
	switch RankedStatus(raw) {
	case StatusUnknown, StatusUnsubmitted, StatusPendingWipGraveyard,
		StatusRanked, StatusApproved, StatusQualified, StatusLoved:
		return RankedStatus(raw), true
	}
	return 0, false
}

// Raw returns the wire code of the status.
func (s RankedStatus) Raw() uint8 {
	return uint8(s)
}

func (s RankedStatus) String() string {
	switch s {
	case StatusUnknown:
		return "Unknown"
	case StatusUnsubmitted:
		return "Unsubmitted"
	case StatusPendingWipGraveyard:
		return "PendingWipGraveyard"
	case StatusRanked:
		return "Ranked"
	case StatusApproved:
		return "Approved"
	case StatusQualified:
		return "Qualified"
	case StatusLoved:
		return "Loved"
	}
	return "Invalid"
}

// Grade is a rank obtained by passing a beatmap.
type Grade uint8

const (
	// GradeSSPlus is a silver SS: only perfect scores with hidden.
	GradeSSPlus Grade = iota
	// GradeSPlus is a silver S: highest performance with hidden.
	GradeSPlus
	GradeSS
	GradeS
	GradeA
	GradeB
	GradeC
	GradeD
	_ // 8 is skipped on the wire
	// GradeUnplayed means no rank has been achieved yet.
	GradeUnplayed
)

// GradeFromRaw converts a wire code into a Grade. Returns false for
// codes outside the closed set; note that code 8 is not assigned.
func GradeFromRaw(raw uint8) (Grade, bool) {
	switch Grade(raw) {
	case GradeSSPlus, GradeSPlus, GradeSS, GradeS, GradeA, GradeB,
		GradeC, GradeD, GradeUnplayed:
		return Grade(raw), true
	}
	return 0, false
}

// Raw returns the wire code of the grade.
func (g Grade) Raw() uint8 {
	return uint8(g)
}

func (g Grade) String() string {
	switch g {
	case GradeSSPlus:
		return "SSPlus"
	case GradeSPlus:
		return "SPlus"
	case GradeSS:
		return "SS"
	case GradeS:
		return "S"
	case GradeA:
		return "A"
	case GradeB:
		return "B"
	case GradeC:
		return "C"
	case GradeD:
		return "D"
	case GradeUnplayed:
		return "Unplayed"
	}
	return "Invalid"
}
