package behavior

import (
	"math"

	"github.com/lao-tseu-is-alive/go-sky-pilot/pkg/geometry"
)

// threatPriority is the order in which threat classes are considered.
var threatPriority = [...]Kind{KindGunfire, KindSmartMissile, KindBomb}

// DodgeReport summarises one threat scan.
type DodgeReport struct {
	Dodged bool
	Threat ID
	Kind   Kind
	Turret bool
	Force  geometry.Vector2D
	Braked bool
}

// Receding reports whether a threat is already moving away from the craft on
// the horizontal axis.
func (c *Controller) Receding(threat Body) bool {
	dx := threat.Center().X - c.Craft.Center().X
	return (dx > 0 && threat.Vel.X > 0) || (dx < 0 && threat.Vel.X < 0)
}

// Dodge picks the single most pressing threat, nearest first within the
// priority gunfire > guided munition > bomb, and records one dodge for it.
// threats must be ordered by distance. Receding threats only cause a light brake.
func (c *Controller) Dodge(threats []Body) DodgeReport {
	var report DodgeReport
	if len(threats) == 0 {
		return report
	}

	var chosen *Body
	for _, kind := range threatPriority {
		for i := range threats {
			th := &threats[i]
			if th.Kind != kind || th.Dead {
				continue
			}
			if c.Receding(*th) {
				if !report.Braked {
					brake := geometry.Vector2D{X: -c.Craft.Vel.X * c.Tuning.RecedeBrake}
					c.Ledger.Add(brake, CategoryBrake, th.Kind)
					report.Braked = true
				}
				continue
			}
			chosen = th
			break
		}
		if chosen != nil {
			break
		}
	}
	if chosen == nil {
		return report
	}

	f := c.dodgeForce(*chosen)
	c.Ledger.Add(f, CategoryDodge, chosen.Kind)

	report.Dodged = true
	report.Threat = chosen.ID
	report.Kind = chosen.Kind
	report.Turret = chosen.Source == KindTurret
	report.Force = f
	return report
}

func (c *Controller) dodgeForce(threat Body) geometry.Vector2D {
	t := c.Tuning
	pos := c.Craft.Center()

	mirror := pos.Mul(2).Sub(threat.Center())
	f := geometry.Seek(mirror, pos, c.Craft.Vel, t.DodgeForce, c.cruiseSpeed()).SetMag(t.DodgeForce)

	if threat.Source == KindTurret {
		// turret fire is dodged vertically, and harder
		y := f.Y
		if math.Abs(y) < geometry.Epsilon {
			y = -1
		}
		f = geometry.Vector2D{Y: math.Copysign(t.DodgeForce*t.TurretDodgeScale, y)}
	} else {
		f.X *= 0.5
	}

	if c.Craft.Rect.Top() <= c.World.Top()+t.CeilingBand {
		f.Y = math.Max(math.Abs(f.Y), t.DodgeForce/2)
	}
	return f
}
