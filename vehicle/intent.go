package vehicle

import (
	"github.com/automoto/rallycore/config"
	"github.com/automoto/rallycore/shared/gamemath"
)

// Intent is what a driver, human or CPU, wants to do this step.
type Intent struct {
	Steer    float64 // -1..1
	Analog   bool    // Steer is a stick position rather than a key
	Throttle bool
	Reverse  bool
	Brake    bool
	Nitro    bool
	Throw    bool
}

// ApplyIntent turns the car's current intent into steering and thrust.
func ApplyIntent(c *Car, dt float64) {
	if c.NoControl || c.Eliminated() {
		c.Braking = false
		c.GasPedal = false
		c.AccelBackwards = false
		c.Steering = 0
		c.Thrust = 0
		return
	}
	in := c.Intent

	if in.Nitro && c.NitroTimer <= 0 {
		c.NitroTimer = config.Vehicle.NitroTime
	}
	if in.Throw && c.ThrowTimer <= 0 {
		c.ThrowTimer = config.Vehicle.ThrowTime
	}

	thrust := 0.0
	switch {
	case c.NitroTimer > 0:
		c.Braking = false
		c.GasPedal = true
		thrust = config.Vehicle.NitroThrust
	case in.Brake:
		c.Braking = true
		c.GasPedal = false
	default:
		c.Braking = false
		c.GasPedal = in.Throttle || in.Reverse
		if in.Throttle {
			thrust = c.Tune.Acceleration
			c.AccelBackwards = false
		} else if in.Reverse {
			thrust = -c.Tune.Acceleration
			c.AccelBackwards = true
		}
	}

	c.Steering = steer(c.Steering, in, config.Tuning.SteeringResponsiveness*dt)

	v := config.Vehicle
	switch {
	case c.Body.OnGround:
		if c.Body.Speed2D < v.LowSpeedThreshold && thrust != 0 {
			if thrust < 0 {
				thrust = -v.LowSpeedBoost
			} else {
				thrust = v.LowSpeedBoost
			}
		}
		if c.Planing {
			thrust = 0
		}
	case !c.OnWater:
		thrust = 0
	}
	c.Thrust = thrust
}

// steer ramps digital steering toward full lock or back to centre. Analog
// input is taken as is.
func steer(current float64, in Intent, step float64) float64 {
	if in.Analog {
		return in.Steer
	}
	switch in.Steer {
	case -1, 1, 0:
		return gamemath.Approach(current, in.Steer, step)
	}
	return in.Steer
}
