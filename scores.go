package osufile

// ScoreList is the decoded form of a scores.db file: every locally
// achieved score, grouped by beatmap.
type ScoreList struct {
	// Version is the format version, a decimal date of the form
	// YYYYMMDD.
	Version uint32

	// Beatmaps holds the score groups in file order.
	Beatmaps []BeatmapScores
}

// BeatmapScores is the list of scores achieved on a single beatmap.
type BeatmapScores struct {
	// Hash is the MD5 hash of the beatmap.
	Hash *string

	// Scores holds the replays in file order. Embedded replays carry
	// no action payload; their Data field is nil.
	Scores []*Replay
}
