package vehicle

import "github.com/go-gl/mathgl/mgl64"

// Sound identifies a one-shot sound effect.
type Sound int

const (
	SoundCrash Sound = iota
	SoundCrashThud
)

// Cue identifies an announcer line.
type Cue int

const (
	CueWoah Cue = iota
	CueGottaHurt
	CueNiceDriving
	CueCostYa
	CueWatchIt
	CueStickyTires
	CueSuspension
)

// Effects receives fire-and-forget presentation events from the simulation.
type Effects interface {
	Sound(s Sound, at mgl64.Vec3, volume float64)
	Announce(c Cue, delay float64)
	Sparks(at mgl64.Vec3, radius float64)
	Splash(at mgl64.Vec3)
	DropFlag(car *Car)
}

// NopEffects discards every event.
type NopEffects struct{}

func (NopEffects) Sound(Sound, mgl64.Vec3, float64) {}
func (NopEffects) Announce(Cue, float64)            {}
func (NopEffects) Sparks(mgl64.Vec3, float64)       {}
func (NopEffects) Splash(mgl64.Vec3)                {}
func (NopEffects) DropFlag(*Car)                    {}
