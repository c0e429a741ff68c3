package osufile

// Replay is a single play record. It comes from either a standalone
// .osr file, in which case it carries an action payload, or from a
// scores database, in which case the payload is absent.
type Replay struct {
	// Mode is the game mode the replay was scored in.
	Mode Mode

	// Version is the format version of the replay, a decimal date of
	// the form YYYYMMDD.
	Version uint32

	// BeatmapHash is the MD5 hash of the beatmap played.
	BeatmapHash *string

	// PlayerName is the name of the player who scored the replay.
	PlayerName *string

	// ReplayHash is the replay-specific MD5 hash.
	ReplayHash *string

	// The six hit counts. Their meaning depends on the mode: Count100
	// is 150s in taiko and 200s in mania, Count50 is small fruit in
	// catch the beat, CountGeki is MAX scores in mania, CountKatsu is
	// 100s in mania. CountMiss means the same everywhere.
	Count300   uint16
	Count100   uint16
	Count50    uint16
	CountGeki  uint16
	CountKatsu uint16
	CountMiss  uint16

	Score    uint32
	MaxCombo uint16

	// PerfectCombo reports whether the maximum combo was never broken.
	PerfectCombo bool

	// Mods is the mod combination the replay was scored with.
	Mods ModSet

	// LifeGraph is a comma-separated list of "<offset>|<life>" pairs,
	// where offset is in milliseconds and life is between 0 and 1. The
	// codec does not parse it further.
	LifeGraph *string

	// Timestamp is when the replay was scored.
	Timestamp Ticks

	// Data is the action payload. Present only on standalone replays;
	// nil on replays embedded in a scores database.
	Data *ReplayData

	// OnlineScoreID only has a meaningful value on replays embedded in
	// a scores database; 0 otherwise.
	OnlineScoreID uint64
}

// ReplayData is the action payload of a standalone replay.
//
// Normally the compressed stream is decoded into Actions. A decoder
// configured to skip decompression instead stores the compressed
// stream verbatim in Raw, and the encoder re-emits Raw unchanged when
// it is non-nil.
type ReplayData struct {
	Actions []Action
	Raw     []byte
}

// Action is one input sample within a replay payload. The meaning of
// the three payload slots depends on the game mode.
type Action struct {
	// Delta is the amount of milliseconds since the previous action.
	Delta int64

	// X is the cursor x coordinate (0..512) in standard, or the
	// bitwise combination of pressed keys in mania.
	X float32

	// Y is the cursor y coordinate (0..384) in standard.
	Y float32

	// Z is the bitwise combination of pressed buttons in standard.
	Z float32
}

// StdButtons returns the standard-mode buttons pressed during the
// action.
func (a Action) StdButtons() StandardButtonSet {
	return StandardButtonSet(uint32(a.Z))
}

// ManiaButtons returns the mania-mode keys pressed during the action.
func (a Action) ManiaButtons() ManiaButtonSet {
	return ManiaButtonSet(uint32(a.X))
}

// StandardButton is one of the four standard-mode inputs.
type StandardButton uint32

const (
	MousePrimary StandardButton = iota
	MouseSecondary
	KeyPrimary
	KeySecondary
)

// StandardButtonSet is a combination of pressed standard-mode buttons.
type StandardButtonSet uint32

// Bits returns the raw bit mask of the set.
func (s StandardButtonSet) Bits() uint32 {
	return uint32(s)
}

// IsDown reports whether the button is pressed in the combination.
func (s StandardButtonSet) IsDown(b StandardButton) bool {
	return s&(1<<uint32(b)) != 0
}

// With returns the combination with the button pressed.
func (s StandardButtonSet) With(b StandardButton) StandardButtonSet {
	return s | 1<<uint32(b)
}

// Without returns the combination with the button released.
func (s StandardButtonSet) Without(b StandardButton) StandardButtonSet {
	return s &^ (1 << uint32(b))
}

// ManiaButtonSet is a combination of pressed mania-mode keys. Key
// indices start at 0 and go left to right.
type ManiaButtonSet uint32

// Bits returns the raw bit mask of the set.
func (s ManiaButtonSet) Bits() uint32 {
	return uint32(s)
}

// IsDown reports whether the key at the given index is pressed.
func (s ManiaButtonSet) IsDown(key uint) bool {
	return s&(1<<key) != 0
}

// With returns the combination with the key pressed.
func (s ManiaButtonSet) With(key uint) ManiaButtonSet {
	return s | 1<<key
}

// Without returns the combination with the key released.
func (s ManiaButtonSet) Without(key uint) ManiaButtonSet {
	return s &^ (1 << key)
}
