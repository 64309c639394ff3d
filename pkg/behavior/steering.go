package behavior

import (
	"math"

	"github.com/lao-tseu-is-alive/go-sky-pilot/pkg/geometry"
)

// evasiveAmplitudeScale multiplies the patrol wave while dodging turret fire.
const evasiveAmplitudeScale = 4

// Controller produces the steering and avoidance forces of one craft.
// It writes into its Ledger; the caller resets it at the start of every tick
// with Begin and applies it once with Resolve.
type Controller struct {
	Craft  *Craft
	World  geometry.Rect
	Tuning Tuning
	Ledger *Ledger
	Smooth *Smoother

	tick    uint64
	heading float64 // patrol direction: +1 right, -1 left, 0 undecided
}

// NewController wires a controller to the craft it steers.
func NewController(craft *Craft, world geometry.Rect, tuning Tuning) *Controller {
	return &Controller{
		Craft:  craft,
		World:  world,
		Tuning: tuning,
		Ledger: NewLedger(),
		Smooth: NewSmoother(),
	}
}

// Begin starts a new tick: the ledger is emptied, smoothing windows are kept.
func (c *Controller) Begin(tick uint64) {
	c.tick = tick
	c.Ledger.Reset()
}

// Resolve applies the ledger to the craft and returns the acceleration used.
func (c *Controller) Resolve() geometry.Vector2D {
	return c.Ledger.Apply(c.Craft)
}

// Heading is the current patrol direction.
func (c *Controller) Heading() float64 {
	return c.heading
}

// SetHeading forces the patrol direction (+1 right, -1 left).
func (c *Controller) SetHeading(h float64) {
	switch {
	case h > 0:
		c.heading = 1
	case h < 0:
		c.heading = -1
	default:
		c.heading = 0
	}
}

func (c *Controller) cruiseSpeed() float64 {
	return c.Craft.MaxSpeed()
}

// ---------------------------------------------------------------------
// Pursuit
// ---------------------------------------------------------------------

// Pursue steers toward target and returns the force added to the ledger.
// bombing pins the aim to the release altitude above the target.
func (c *Controller) Pursue(target Body, bombing bool) geometry.Vector2D {
	t := c.Tuning
	pos := c.Craft.Center()
	vel := c.Craft.Vel

	switch target.Kind {
	case KindLandingPad:
		return c.Land(target)

	case KindCloud:
		// hide inside, not beside
		f := geometry.Arrive(target.Center(), pos, vel, c.cruiseSpeed(), t.ArriveRadius).Limit(t.CloudForce)
		c.Ledger.Add(f, CategoryArrive, KindCloud)
		return f

	case KindBalloon:
		f := geometry.Arrive(c.AimBeside(target), pos, vel, c.cruiseSpeed(), t.ArriveRadius).Limit(t.BalloonForce)
		c.Ledger.Add(f, CategoryArrive, KindBalloon)
		return f
	}

	aim := c.AimBeside(target)
	if bombing {
		aim = c.BombAim(target)
	}
	f := geometry.Seek(aim, pos, vel, t.SeekForce, c.cruiseSpeed())
	c.Ledger.Add(f, CategorySeek, target.Kind)
	return f
}

// AimBeside returns a point level with the target, just off whichever side
// the craft is on, so the craft settles next to the target instead of inside it.
func (c *Controller) AimBeside(target Body) geometry.Vector2D {
	tc := target.Center()
	offset := target.Rect.W/2 + c.Tuning.SideGap + c.Craft.Rect.W/2
	if c.Craft.Center().X < tc.X {
		return geometry.Vector2D{X: tc.X - offset, Y: tc.Y}
	}
	return geometry.Vector2D{X: tc.X + offset, Y: tc.Y}
}

// BombAim returns the release point straight above target at bombing altitude.
func (c *Controller) BombAim(target Body) geometry.Vector2D {
	y := c.World.Bottom() - c.Tuning.BombReleaseHeight
	if minY := c.World.Top() + c.Craft.Rect.H; y < minY {
		y = minY
	}
	return geometry.Vector2D{X: target.Center().X, Y: y}
}

// ---------------------------------------------------------------------
// Patrol
// ---------------------------------------------------------------------

// WaveAmplitude is the vertical amplitude of the patrol wave.
func (c *Controller) WaveAmplitude(dodging bool) float64 {
	a := c.Tuning.WaveAmplitude
	if dodging {
		a *= evasiveAmplitudeScale
	}
	return a
}

// Patrol flies toward the far end of the world with a vertical sine wave
// overlaid. It returns the instantaneous wave vector.
func (c *Controller) Patrol(dodging bool) geometry.Vector2D {
	t := c.Tuning
	pos := c.Craft.Center()

	switch {
	case pos.X >= c.World.Right()-t.PatrolMargin:
		c.heading = -1
	case pos.X <= c.World.Left()+t.PatrolMargin:
		c.heading = 1
	case c.heading == 0:
		c.heading = 1
		if pos.X > c.World.Center().X {
			c.heading = -1
		}
	}

	goalX := c.World.Right()
	if c.heading < 0 {
		goalX = c.World.Left()
	}
	head := geometry.Seek(geometry.Vector2D{X: goalX, Y: pos.Y}, pos, c.Craft.Vel, t.PatrolForce, c.cruiseSpeed())
	c.Ledger.Add(head, CategorySineWave, KindNone)

	wave := geometry.Vector2D{Y: c.WaveAmplitude(dodging) * math.Sin(float64(c.tick)*t.WaveFrequency)}
	c.Ledger.Add(wave, CategorySineWave, KindNone)

	// climb back to the upper part of the field, hold altitude once there
	if pos.Y > c.World.Top()+c.World.H/2 {
		c.Ledger.Add(geometry.Vector2D{Y: -t.AltitudeBiasMag}, CategorySineWave, KindNone)
	} else {
		hold := geometry.Vector2D{Y: -c.Craft.Vel.Y}.Limit(t.AltitudeBiasMag)
		c.Ledger.Add(hold, CategorySineWave, KindNone)
	}

	return wave
}

// ---------------------------------------------------------------------
// Landing
// ---------------------------------------------------------------------

// Land steers onto pad: a gentle approach to a point above the pad centre,
// then a braked vertical descent once the craft is horizontally over the pad.
func (c *Controller) Land(pad Body) geometry.Vector2D {
	t := c.Tuning
	craft := c.Craft

	if !craft.Rect.ContainsX(pad.Rect) {
		aim := geometry.Vector2D{
			X: pad.Center().X,
			Y: pad.Rect.Top() - t.LandingApproachHeight - craft.Rect.H/2,
		}
		f := geometry.Seek(aim, craft.Center(), craft.Vel, t.LandingForce, c.cruiseSpeed()).SetMag(t.LandingForce)
		c.Ledger.Add(f, CategorySeek, KindLandingPad)
		return f
	}

	remaining := math.Max(pad.Rect.Top()-craft.Rect.Bottom(), 0)
	descent := clamp(t.LandingForce*remaining/math.Max(t.LandingApproachHeight, 1), t.DescentMin, t.LandingForce)
	if craft.Vel.Y < t.DescentFloorVelocity {
		floor := t.DescentMin + (t.DescentFloorVelocity-craft.Vel.Y)*t.LandingBrake
		descent = clamp(math.Max(descent, floor), t.DescentMin, t.LandingForce)
	}
	brake := clamp(-craft.Vel.X*t.LandingBrake, -t.LandingForce, t.LandingForce)

	f := geometry.Vector2D{X: brake, Y: descent}
	c.Ledger.Add(f, CategorySeek, KindLandingPad)
	return f
}
