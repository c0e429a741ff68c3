package osufile

import "time"

// Ticks is the timestamp representation used throughout the osu!
// databases: a count of 100-nanosecond intervals since
// 0001-01-01 00:00:00 UTC. The zero value is the placeholder written
// on the wire wherever an optional timestamp is absent.
type Ticks uint64

const (
	ticksPerSecond = 10_000_000

	// Ticks elapsed between 0001-01-01 and the Unix epoch.
	unixEpochTicks = 621_355_968_000_000_000
)

// TicksFromTime converts a time.Time into Ticks, truncating to
// 100-nanosecond resolution. Times before 0001-01-01 UTC are not
// representable and convert to 0.
func TicksFromTime(t time.Time) Ticks {
	s := t.Unix()
	ticks := s*ticksPerSecond + int64(t.Nanosecond())/100 + unixEpochTicks
	if ticks < 0 {
		return 0
	}
	return Ticks(ticks)
}

// Time converts the tick count into a time.Time in UTC.
func (t Ticks) Time() time.Time {
	rel := int64(t) - unixEpochTicks
	sec := rel / ticksPerSecond
	rem := rel % ticksPerSecond
	if rem < 0 {
		sec--
		rem += ticksPerSecond
	}
	return time.Unix(sec, rem*100).UTC()
}

// NewTicks returns a pointer to t, for filling optional timestamp
// fields.
func NewTicks(t Ticks) *Ticks {
	return &t
}
