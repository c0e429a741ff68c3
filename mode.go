package osufile

// Mode is one of the four osu! game modes.
type Mode uint8

const (
	ModeStandard Mode = iota
	ModeTaiko
	ModeCatchTheBeat
	ModeMania
)

// ModeFromRaw converts a wire code into a Mode. Returns false for
// codes outside the closed set.
func ModeFromRaw(raw uint8) (Mode, bool) {
	if raw > uint8(ModeMania) {
		return 0, false
	}
	return Mode(raw), true
}

// Raw returns the wire code of the mode.
func (m Mode) Raw() uint8 {
	return uint8(m)
}

func (m Mode) String() string {
	switch m {
	case ModeStandard:
		return "Standard"
	case ModeTaiko:
		return "Taiko"
	case ModeCatchTheBeat:
		return "CatchTheBeat"
	case ModeMania:
		return "Mania"
	}
	return "Invalid"
}
