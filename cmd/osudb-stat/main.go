// The osudb-stat command displays stats for an osu!.db catalogue.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/goccy/go-json"
	"github.com/osukit/osufile"
	"github.com/osukit/osufile/osudb"
)

const usage = `usage: osudb-stat [INPUT] [OUTPUT]

Reads an osu!.db catalogue from INPUT, and writes to OUTPUT statistics
for the file.

INPUT and OUTPUT are paths to files. If INPUT is "-" or unspecified,
then stdin is used. If OUTPUT is "-" or unspecified, then stdout is
used. Warnings and errors are written to stderr.
`

type Hardest struct {
	Title      string
	Difficulty string
	Stars      float64
}

func (h Hardest) String() string {
	return fmt.Sprintf("%s [%s] %.2f*", h.Title, h.Difficulty, h.Stars)
}

type Stats struct {
	// Catalogue header data.
	Version         uint32
	FolderCount     uint32
	PlayerName      string `json:",omitempty"`
	UserPermissions uint32

	// Number of beatmaps overall.
	BeatmapCount int

	// Number of timing points overall.
	TimingPointCount int

	// Number of beatmaps per ranked status.
	StatusCount map[string]int

	// Number of beatmaps per game mode.
	ModeCount map[string]int

	// Number of beatmaps per achieved grade, in the beatmap's own
	// mode.
	GradeCount map[string]int

	// Hardest beatmaps by no-mod star rating.
	Hardest []Hardest `json:",omitempty"`
}

func (s *Stats) Fill(l *osufile.Listing) {
	s.Version = l.Version
	s.FolderCount = l.FolderCount
	if l.PlayerName != nil {
		s.PlayerName = *l.PlayerName
	}
	s.UserPermissions = l.UserPermissions
	s.BeatmapCount = len(l.Beatmaps)

	s.StatusCount = map[string]int{}
	s.ModeCount = map[string]int{}
	s.GradeCount = map[string]int{}
	for i := range l.Beatmaps {
		bm := &l.Beatmaps[i]
		s.TimingPointCount += len(bm.TimingPoints)
		s.StatusCount[bm.Status.String()]++
		s.ModeCount[bm.Mode.String()]++
		s.GradeCount[grade(bm).String()]++
		if h, ok := hardest(bm); ok {
			s.Hardest = append(s.Hardest, h)
		}
	}

	sort.Slice(s.Hardest, func(i, j int) bool {
		return s.Hardest[i].Stars > s.Hardest[j].Stars
	})
	if len(s.Hardest) > 20 {
		s.Hardest = s.Hardest[:20]
	}
}

// grade returns the grade achieved on the beatmap in its own mode.
func grade(bm *osufile.Beatmap) osufile.Grade {
	switch bm.Mode {
	case osufile.ModeTaiko:
		return bm.TaikoGrade
	case osufile.ModeCatchTheBeat:
		return bm.CtbGrade
	case osufile.ModeMania:
		return bm.ManiaGrade
	}
	return bm.StdGrade
}

// hardest returns the beatmap's no-mod star rating in its own mode.
func hardest(bm *osufile.Beatmap) (Hardest, bool) {
	ratings := bm.StdRatings
	switch bm.Mode {
	case osufile.ModeTaiko:
		ratings = bm.TaikoRatings
	case osufile.ModeCatchTheBeat:
		ratings = bm.CtbRatings
	case osufile.ModeMania:
		ratings = bm.ManiaRatings
	}
	for _, r := range ratings {
		if r.Mods.Bits() != 0 {
			continue
		}
		h := Hardest{Stars: r.Stars}
		if bm.TitleASCII != nil {
			h.Title = *bm.TitleASCII
		}
		if bm.DifficultyName != nil {
			h.Difficulty = *bm.DifficultyName
		}
		return h, true
	}
	return Hardest{}, false
}

func main() {
	var input io.Reader = os.Stdin
	var output io.Writer = os.Stdout

	flag.Usage = func() { fmt.Fprintf(flag.CommandLine.Output(), usage) }
	flag.Parse()
	args := flag.Args()
	if len(args) >= 1 && args[0] != "-" {
		in, err := os.Open(args[0])
		if err != nil {
			fmt.Fprintln(os.Stderr, fmt.Errorf("open input: %w", err))
			return
		}
		input = in
		defer in.Close()
	}
	if len(args) >= 2 && args[1] != "-" {
		out, err := os.Create(args[1])
		if err != nil {
			fmt.Fprintln(os.Stderr, fmt.Errorf("create output: %w", err))
			return
		}
		defer out.Close()
		output = out
	}

	listing, warn, err := osudb.Decoder{}.Decode(input)
	if warn != nil {
		fmt.Fprintln(os.Stderr, fmt.Errorf("warning: %w", warn))
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, fmt.Errorf("error: %w", err))
		return
	}

	stats := Stats{}
	stats.Fill(listing)

	je := json.NewEncoder(output)
	je.SetIndent("", "\t")
	if err := je.Encode(&stats); err != nil {
		fmt.Fprintln(os.Stderr, fmt.Errorf("encode stats: %w", err))
	}
}
