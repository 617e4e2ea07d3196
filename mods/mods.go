package mods

import "strings"

// Modifier is the legacy bit-flag representation of game modifiers.
// See https://github.com/ppy/osu-api/wiki#mods
type Modifier int64

const (
	NoFail Modifier = 1 << iota
	Easy
	TouchDevice
	Hidden
	HardRock
	SuddenDeath
	DoubleTime
	Relax
	HalfTime
	Nightcore // always used with DoubleTime
	Flashlight
	Autoplay
	SpunOut
	Autopilot
	Perfect
	Key4
	Key5
	Key6
	Key7
	Key8
	FadeIn
	Random
	Cinema
	Target
	Key9
	KeyCoop
	Key1
	Key3
	Key2
	ScoreV2
	Mirror
	Lazer // not an osu! mod, used to request lazer scoring rules
	None Modifier = 0
)

var modNames = []struct {
	mod  Modifier
	name string
}{
	{NoFail, "NF"}, {Easy, "EZ"}, {TouchDevice, "TD"}, {Hidden, "HD"},
	{HardRock, "HR"}, {SuddenDeath, "SD"}, {Nightcore, "NC"}, {DoubleTime, "DT"},
	{Relax, "RX"}, {HalfTime, "HT"}, {Flashlight, "FL"}, {Autoplay, "AT"},
	{SpunOut, "SO"}, {Autopilot, "AP"}, {Perfect, "PF"}, {ScoreV2, "V2"},
	{Mirror, "MR"}, {Lazer, "LZ"},
}

// Active reports whether all bits of mod are set.
func (m Modifier) Active(mod Modifier) bool {
	return m&mod == mod
}

func (m Modifier) NF() bool { return m.Active(NoFail) }
func (m Modifier) EZ() bool { return m.Active(Easy) }
func (m Modifier) TD() bool { return m.Active(TouchDevice) }
func (m Modifier) HD() bool { return m.Active(Hidden) }
func (m Modifier) HR() bool { return m.Active(HardRock) }
func (m Modifier) DT() bool { return m.Active(DoubleTime) || m.Active(Nightcore) }
func (m Modifier) RX() bool { return m.Active(Relax) }
func (m Modifier) HT() bool { return m.Active(HalfTime) }
func (m Modifier) FL() bool { return m.Active(Flashlight) }
func (m Modifier) SO() bool { return m.Active(SpunOut) }
func (m Modifier) AP() bool { return m.Active(Autopilot) }

// ClockRate returns the speed multiplier the mod combination implies.
func (m Modifier) ClockRate() float64 {
	if m.DT() {
		return 1.5
	}

	if m.HT() {
		return 0.75
	}

	return 1.0
}

// String returns the compact mod acronym string, e.g. "HDDT". An empty mod
// set yields "NM".
func (m Modifier) String() string {
	var sb strings.Builder

	for _, entry := range modNames {
		if m.Active(entry.mod) {
			// NC implies DT, don't print both
			if entry.mod == DoubleTime && m.Active(Nightcore) {
				continue
			}

			sb.WriteString(entry.name)
		}
	}

	if sb.Len() == 0 {
		return "NM"
	}

	return sb.String()
}

// Parse converts an acronym string like "HDDT" back into a Modifier.
// Unknown acronym pairs are ignored.
func Parse(s string) Modifier {
	s = strings.ToUpper(strings.TrimSpace(s))

	if s == "" || s == "NM" {
		return None
	}

	var m Modifier

	for i := 0; i+2 <= len(s); i += 2 {
		acronym := s[i : i+2]

		for _, entry := range modNames {
			if entry.name == acronym {
				m |= entry.mod

				if entry.mod == Nightcore {
					m |= DoubleTime
				}
			}
		}
	}

	return m
}
