package vehicle

import "github.com/automoto/rallycore/config"

// Mode is the game mode the race is played in.
type Mode int

const (
	ModeRace Mode = iota
	ModeTag1
	ModeTag2
	ModeSurvival
	ModeCaptureFlag
)

func (m Mode) String() string {
	switch m {
	case ModeRace:
		return "race"
	case ModeTag1:
		return "tag1"
	case ModeTag2:
		return "tag2"
	case ModeSurvival:
		return "survival"
	case ModeCaptureFlag:
		return "ctf"
	}
	return "unknown"
}

// ParseMode maps a config string onto a Mode, defaulting to a plain race.
func ParseMode(s string) Mode {
	for m := ModeRace; m <= ModeCaptureFlag; m++ {
		if m.String() == s {
			return m
		}
	}
	return ModeRace
}

// IsTag reports whether m is one of the tag modes.
func (m Mode) IsTag() bool {
	return m == ModeTag1 || m == ModeTag2
}

// Race is the race-wide state vehicle impacts read and write.
type Race struct {
	Mode       Mode
	Difficulty Difficulty

	WorstHumanPlace int
	Completed       bool

	WhoIsIt    *Car
	WhoWasIt   *Car
	ReTagTimer float64
}

// Tick advances race timers by dt seconds.
func (r *Race) Tick(dt float64) {
	if r.ReTagTimer > 0 {
		r.ReTagTimer = max(r.ReTagTimer-dt, 0)
	}
}

// placesBehind counts the places between a 1-based race place and the leader.
func placesBehind(place int) float64 {
	return float64(max(place-1, 0))
}

// cpuTweak is the hard-difficulty grip bonus for CPU cars running behind
// every human.
func (r *Race) cpuTweak(car *Car) float64 {
	if r.Difficulty != DifficultyHard || !car.CPU || car.Place <= r.WorstHumanPlace {
		return 1
	}
	return 1 + float64(car.Place-r.WorstHumanPlace)*config.Vehicle.CPUTweakPerPlace
}

// tag moves "it" between two cars that touched.
func (r *Race) tag(c1, c2 *Car) {
	if r.Completed {
		return
	}
	switch {
	case c1.IsIt:
		if c2 != r.WhoWasIt || r.ReTagTimer <= 0 {
			r.transferIt(c1, c2)
		}
	case c2.IsIt:
		if c1 != r.WhoWasIt || r.ReTagTimer <= 0 {
			r.transferIt(c2, c1)
		}
	}
}

func (r *Race) transferIt(from, to *Car) {
	from.IsIt = false
	to.IsIt = true
	r.WhoWasIt = from
	r.WhoIsIt = to
	r.ReTagTimer = config.Rules.TagCooldown
}
