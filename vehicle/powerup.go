package vehicle

import "github.com/automoto/rallycore/config"

// SetStickyTires raises the car's grip to the pickup rating for a while. It
// reports whether the car was not already on sticky tires.
func (c *Car) SetStickyTires(d Difficulty) bool {
	fresh := c.StickyTimer <= 0
	c.Tune.setTraction(config.Powerup.Rating, d)
	c.StickyTimer = config.Powerup.StickyTiresTime
	return fresh
}

// SetSuperSuspension stiffens the suspension to the pickup rating for a
// while. It reports whether the car did not already have it.
func (c *Car) SetSuperSuspension(d Difficulty) bool {
	fresh := c.SuspensionTimer <= 0
	c.Tune.setSuspension(config.Powerup.Rating, d)
	c.SuspensionTimer = config.Powerup.SuspensionTime
	return fresh
}

// SetAflame halves the car's top speed until the flames go out.
func (c *Car) SetAflame() {
	c.FlamingTimer = config.Powerup.FlamingTime
}

// tickPowerups counts the pickups down and puts the stock tune back as each
// one runs out.
func (c *Car) tickPowerups(dt float64) {
	c.FlamingTimer = max(c.FlamingTimer-dt, 0)

	if c.StickyTimer > 0 {
		c.StickyTimer -= dt
		if c.StickyTimer <= 0 {
			c.StickyTimer = 0
			c.Tune.TireTraction = c.Base.TireTraction
			c.Tune.MinPlaningAngle = c.Base.MinPlaningAngle
			c.Tune.MinPlaningSpeed = c.Base.MinPlaningSpeed
		}
	}

	if c.SuspensionTimer > 0 {
		c.SuspensionTimer -= dt
		if c.SuspensionTimer <= 0 {
			c.SuspensionTimer = 0
			c.Tune.Suspension = c.Base.Suspension
		}
	}
}
