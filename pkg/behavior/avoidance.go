package behavior

import (
	"math"

	"github.com/lao-tseu-is-alive/go-sky-pilot/pkg/geometry"
)

// Whisker indexes the probes returned by Probes.
type Whisker uint8

const (
	WhiskerAhead Whisker = iota
	WhiskerLeft
	WhiskerRight
	WhiskerUp
	WhiskerDown

	NumWhiskers
)

// AvoidReport summarises one obstacle avoidance pass.
type AvoidReport struct {
	Hits      int
	Immediate int
	Force     geometry.Vector2D
	Key       Kind
}

// Avoiding reports whether the pass produced any contribution.
func (r AvoidReport) Avoiding() bool {
	return r.Hits > 0
}

// Probes projects the whiskers ahead of the craft: straight along the velocity,
// two diagonals spread either side, and fixed probes above and below.
// The forward reach grows with speed between WhiskerMin and WhiskerMax.
func Probes(craft *Craft, t Tuning) [NumWhiskers]geometry.Vector2D {
	center := craft.Center()

	dir := craft.Vel.Normalize()
	if dir.IsZero() {
		dir = geometry.Vector2D{X: 1}
		if craft.Flipped {
			dir.X = -1
		}
	}

	reach := clamp(craft.Speed()*t.WhiskerScale, t.WhiskerMin, t.WhiskerMax)
	spread := t.WhiskerSpread * math.Pi / 180
	vertical := craft.Rect.H/2 + t.ProbeLength

	var p [NumWhiskers]geometry.Vector2D
	p[WhiskerAhead] = center.Add(dir.Mul(reach))
	p[WhiskerLeft] = center.Add(dir.Rotate(-spread).Mul(reach))
	p[WhiskerRight] = center.Add(dir.Rotate(spread).Mul(reach))
	p[WhiskerUp] = center.Add(geometry.Vector2D{Y: -vertical})
	p[WhiskerDown] = center.Add(geometry.Vector2D{Y: vertical})
	return p
}

// Flee computes the avoidance force away from one obstacle.
// A composite never pushes the craft down (it climbs over instead), and a
// craft already flying too low is always pushed up.
func (c *Controller) Flee(o Obstacle) geometry.Vector2D {
	t := c.Tuning
	pos := c.Craft.Center()

	// seek the mirror image of the obstacle centre
	mirror := pos.Mul(2).Sub(o.Rect.Center())
	f := geometry.Seek(mirror, pos, c.Craft.Vel, t.AvoidForce, c.cruiseSpeed()).SetMag(t.AvoidForce)
	if f.IsZero() {
		f = geometry.Vector2D{Y: -t.AvoidForce}
	}

	if o.Composite && f.Y > 0 {
		f.Y = -f.Y * t.CompositeLift
	}
	if c.tooLow() {
		f.Y = -math.Max(math.Abs(f.Y), t.AvoidForce/2)
	}
	return f
}

func (c *Controller) tooLow() bool {
	return c.Craft.Rect.Bottom() >= c.World.Bottom()-c.Tuning.TooLowHeight
}

// Avoid tests every obstacle against the craft and its whiskers.
// Obstacles touching the craft are handled at once (brake and flee); the others
// contribute once per whisker inside them. Contributions are averaged over the
// hit count, smoothed, and recorded as a single avoid entry.
// A tick without hits empties the smoothing window.
func (c *Controller) Avoid(obstacles []Obstacle) AvoidReport {
	var report AvoidReport
	if len(obstacles) == 0 {
		c.Smooth.Reset(WindowAvoid)
		return report
	}

	probes := Probes(c.Craft, c.Tuning)
	zone := c.Craft.Rect.Expand(c.Tuning.ImmediateBand)

	var sum geometry.Vector2D
	for _, o := range obstacles {
		if zone.Intersects(o.Rect) {
			brake := c.Craft.Vel.Mul(-c.Tuning.ImpactBrake)
			sum = sum.Add(c.Flee(o)).Add(brake)
			report.Hits++
			report.Immediate++
			c.noteKey(&report, o)
			continue
		}
		for _, p := range probes {
			if o.Rect.Contains(p) {
				sum = sum.Add(c.Flee(o))
				report.Hits++
				c.noteKey(&report, o)
			}
		}
	}

	if report.Hits == 0 {
		c.Smooth.Reset(WindowAvoid)
		return report
	}

	avg := sum.Mul(1 / float64(report.Hits))
	report.Force = c.Smooth.Average(avg, WindowAvoid)
	c.Ledger.Add(report.Force, CategoryAvoid, report.Key)
	return report
}

func (c *Controller) noteKey(r *AvoidReport, o Obstacle) {
	if r.Key == KindNone {
		r.Key = o.Kind()
	}
	c.Ledger.Mark(CategoryAvoid, o.Kind())
}
