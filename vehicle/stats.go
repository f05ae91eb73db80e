package vehicle

import (
	"github.com/automoto/rallycore/config"
)

// Difficulty is the race difficulty setting.
type Difficulty int

const (
	DifficultySimplistic Difficulty = iota
	DifficultyEasy
	DifficultyMedium
	DifficultyHard
)

func (d Difficulty) String() string {
	switch d {
	case DifficultySimplistic:
		return "simplistic"
	case DifficultyEasy:
		return "easy"
	case DifficultyMedium:
		return "medium"
	case DifficultyHard:
		return "hard"
	}
	return "unknown"
}

// ParseDifficulty maps a config string onto a Difficulty, defaulting to medium.
func ParseDifficulty(s string) Difficulty {
	for d := DifficultySimplistic; d <= DifficultyHard; d++ {
		if d.String() == s {
			return d
		}
	}
	return DifficultyMedium
}

func (d Difficulty) index() int {
	return min(max(int(d), 0), 3)
}

// Stats are a vehicle's 0..7 ratings.
type Stats struct {
	Speed        int
	Acceleration int
	Traction     int
	Suspension   int
}

// Tune is the physics block derived from Stats.
type Tune struct {
	MaxSpeed        float64
	Acceleration    float64
	TireTraction    float64
	MinPlaningAngle float64
	MinPlaningSpeed float64
	Suspension      float64
	AirFriction     float64
}

// Derive converts ratings into physics values, applying the difficulty
// handicaps. CPU cars get their own bonuses on top.
func (s Stats) Derive(d Difficulty, cpu bool) Tune {
	c := config.Stats
	i := d.index()

	speed := float64(s.Speed) * c.Scale
	accel := float64(s.Acceleration) * c.Scale
	traction := float64(s.Traction) * c.Scale
	suspension := float64(s.Suspension) * c.Scale

	t := Tune{MaxSpeed: c.MaxSpeedBase + speed*c.MaxSpeedRange}
	if cpu {
		t.MaxSpeed *= c.CPUSpeedScale[i]
		accel += c.CPUBonus[i]
		traction += c.CPUBonus[i]
	}
	t.Acceleration = c.AccelBase + accel*c.AccelRange

	t.setTraction(traction, d)
	t.setSuspension(suspension, d)
	t.AirFriction = c.AirFriction
	return t
}

// setTraction fills the grip and planing values from a traction rating plus
// the difficulty handicap.
func (t *Tune) setTraction(traction float64, d Difficulty) {
	c := config.Stats
	traction += c.TractionBonus[d.index()]
	t.TireTraction = c.TractionBase + traction*c.TractionRange
	t.MinPlaningAngle = c.PlaningAngleBase - traction*c.PlaningAngleAdj
	t.MinPlaningSpeed = c.PlaningSpeedBase + traction*c.PlaningSpeedAdj
}

func (t *Tune) setSuspension(suspension float64, d Difficulty) {
	c := config.Stats
	suspension += c.SuspensionBonus[d.index()]
	t.Suspension = c.SuspensionBase + suspension*c.SuspensionRange
}
