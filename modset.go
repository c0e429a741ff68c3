package osufile

// Mod is a single gameplay modifier, identified by its bit position
// within a ModSet.
type Mod uint32

const (
	ModNoFail Mod = iota
	ModEasy
	ModTouchDevice
	ModHidden
	ModHardRock
	ModSuddenDeath
	ModDoubleTime
	ModRelax
	ModHalfTime
	ModNightcore
	ModFlashlight
	ModAutoplay
	ModSpunOut
	ModAutopilot
	ModPerfect
	ModKey4
	ModKey5
	ModKey6
	ModKey7
	ModKey8
	ModFadeIn
	ModRandom
	ModCinema
	ModTargetPractice
	ModKey9
	ModCoop
	ModKey1
	ModKey3
	ModKey2
	ModScoreV2
	ModMirror
)

// Raw returns the bit position of the mod.
func (m Mod) Raw() uint32 {
	return uint32(m)
}

// ModSet is a combination of simultaneously active mods, packed as a
// 32-bit mask with one bit per Mod.
type ModSet uint32

// ModSetFromBits builds a ModSet from a raw bit mask.
func ModSetFromBits(bits uint32) ModSet {
	return ModSet(bits)
}

// Bits returns the raw bit mask of the set.
func (s ModSet) Bits() uint32 {
	return uint32(s)
}

// Contains reports whether the mod is active in the set.
func (s ModSet) Contains(m Mod) bool {
	return s&(1<<m.Raw()) != 0
}

// With returns the set with the mod active.
func (s ModSet) With(m Mod) ModSet {
	return s | 1<<m.Raw()
}

// Without returns the set with the mod inactive.
func (s ModSet) Without(m Mod) ModSet {
	return s &^ (1 << m.Raw())
}
