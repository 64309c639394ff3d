package pilot

import (
	"math"

	"github.com/lao-tseu-is-alive/go-sky-pilot/pkg/behavior"
)

var (
	groundKinds   = []behavior.Kind{behavior.KindTank, behavior.KindVan, behavior.KindMissileLauncher}
	cloudKinds    = []behavior.Kind{behavior.KindCloud}
	heliKinds     = []behavior.Kind{behavior.KindHelicopter}
	softKinds     = []behavior.Kind{behavior.KindBalloon}
	threatKinds   = []behavior.Kind{behavior.KindGunfire, behavior.KindSmartMissile, behavior.KindBomb}
	obstacleKinds = []behavior.Kind{
		behavior.KindTerrain,
		behavior.KindBunker,
		behavior.KindSuperBunker,
		behavior.KindChain,
		behavior.KindBalloon,
		behavior.KindTurret,
		behavior.KindHelicopter,
	}
)

// NeedsResupply reports an airborne agent short on fuel, health or ordnance.
func (p *Pilot) NeedsResupply() bool {
	a, t := p.agent, p.tuning
	if a.Landed || a.Repairing {
		return false
	}
	outOfOrdnance := a.Ammo <= t.AmmoLow && a.Bombs <= t.BombsLow && a.Missiles <= t.MissilesLow
	return a.Fuel < t.FuelLow || a.HealthRatio() < t.HealthLow || outOfOrdnance
}

func (p *Pilot) retreatPad() (behavior.Body, bool) {
	if !p.NeedsResupply() {
		return behavior.Body{}, false
	}
	return p.ChoosePad()
}

// ChoosePad picks where to land: the nearest own pad while in the home half
// of the map, otherwise the nearest neutral pad, falling back on whatever
// pads exist. Distance is horizontal only.
func (p *Pilot) ChoosePad() (behavior.Body, bool) {
	if p.deps.Pads == nil {
		return behavior.Body{}, false
	}

	var own, neutral []behavior.Body
	for _, pad := range p.deps.Pads.Pads() {
		if pad.Dead {
			continue
		}
		switch pad.Team {
		case p.agent.Team:
			own = append(own, pad)
		case behavior.TeamNeutral:
			neutral = append(neutral, pad)
		}
	}

	candidates := own
	if (!p.inHomeHalf() && len(neutral) > 0) || len(own) == 0 {
		candidates = neutral
	}
	if len(candidates) == 0 {
		return behavior.Body{}, false
	}

	x := p.agent.Center().X
	best := candidates[0]
	for _, pad := range candidates[1:] {
		if math.Abs(pad.Center().X-x) < math.Abs(best.Center().X-x) {
			best = pad
		}
	}
	return best, true
}

// inHomeHalf: blue holds the left half of the map, red the right.
func (p *Pilot) inHomeHalf() bool {
	mid := p.ctrl.World.Center().X
	x := p.agent.Center().X
	if p.agent.Team == behavior.TeamRed {
		return x >= mid
	}
	return x < mid
}

func (p *Pilot) wantsCover() bool {
	return p.Chased() || p.agent.HealthRatio() < p.tuning.CoverHealth || p.cloudSeeker
}

// validTarget resolves the held handle and drops it when it can no longer be
// pursued. Losing a ground vehicle stops ground hunting until the next re-roll.
func (p *Pilot) validTarget(self behavior.Body) (behavior.Body, bool) {
	if p.target == "" {
		return behavior.Body{}, false
	}

	b, ok := p.lookup(p.target)
	reason := ""
	switch {
	case !ok:
		reason = "gone"
	case b.Dead:
		reason = "destroyed"
	case b.Cloaked:
		reason = "concealed"
	case b.Center().DistanceTo(self.Center()) > p.tuning.BroadRange:
		reason = "out of range"
	case b.Kind == behavior.KindCloud && !p.wantsCover():
		reason = "cover no longer needed"
	case b.Kind.IsGroundVehicle() && p.agent.Bombs <= p.tuning.BombsLow:
		reason = "out of bombs"
	}
	if reason == "" {
		return b, true
	}

	if p.targetKind.IsGroundVehicle() {
		p.stopHunting = true
	}
	p.dropTarget(reason)
	return behavior.Body{}, false
}

// acquire scans for a new target in fixed priority order, each step gated by
// the ordnance it needs: ground vehicles, clouds as cover, the enemy
// helicopter, then a broad scan for it or a soft target.
func (p *Pilot) acquire(self behavior.Body) (behavior.Body, bool) {
	origin := self.Center()
	t := p.tuning

	if p.agent.Bombs > t.BombsLow && p.huntGround && !p.stopHunting {
		q := Query{Origin: origin, Range: t.TargetRange, Kinds: groundKinds, EnemyOf: self.Team, Exclude: self.ID}
		if b, ok := p.nearest(q); ok {
			return p.hold(b, "ground vehicle")
		}
	}

	if p.wantsCover() {
		q := Query{Origin: origin, Range: t.CloudRange, Kinds: cloudKinds}
		if b, ok := p.nearest(q); ok {
			return p.hold(b, "cover")
		}
	}

	w, armed := p.agent.ActiveWeapon()
	if armed {
		q := Query{Origin: origin, Range: t.TargetRange, Kinds: heliKinds, EnemyOf: self.Team, Exclude: self.ID}
		if b, ok := p.nearest(q); ok {
			return p.hold(b, "helicopter")
		}
		q.Range = t.BroadRange
		if b, ok := p.nearest(q); ok {
			return p.hold(b, "helicopter, broad scan")
		}
	}
	if armed && !w.Guided() {
		q := Query{Origin: origin, Range: t.TargetRange, Kinds: softKinds, EnemyOf: self.Team, Exclude: self.ID}
		if b, ok := p.nearest(q); ok {
			return p.hold(b, "soft target")
		}
	}
	return behavior.Body{}, false
}

func (p *Pilot) nearest(q Query) (behavior.Body, bool) {
	found := p.nearby(q)
	if len(found) == 0 {
		return behavior.Body{}, false
	}
	return found[0], true
}

func (p *Pilot) hold(b behavior.Body, why string) (behavior.Body, bool) {
	p.target = b.ID
	p.targetKind = b.Kind
	p.logger.Debugf("[%s] target %s (%s): %s", p.agent.ID, b.ID, b.Kind, why)
	return b, true
}

func (p *Pilot) dropTarget(reason string) {
	if p.target == "" {
		return
	}
	p.logger.Debugf("[%s] dropped target %s: %s", p.agent.ID, p.target, reason)
	p.target = ""
	p.targetKind = behavior.KindNone
}

// votes decides whether to shoot and whether to drop bombs at target this tick.
// Direct fire needs horizontal alignment within AlignGate and a vertical
// offset strictly inside the band of the weapon used. Bombs need a tighter
// horizontal alignment, the target below, and the agent not climbing away.
func (p *Pilot) votes(target behavior.Body, bombing bool) (fire, bomb bool) {
	if target.Kind == behavior.KindCloud || target.Kind == behavior.KindLandingPad {
		return false, false
	}

	a, t := p.agent, p.tuning
	d := target.Center().Sub(a.Center())

	if bombing {
		bomb = a.Bombs > 0 &&
			math.Abs(d.X) < t.BombAlignGate &&
			target.Rect.Top() > a.Rect.Bottom() &&
			a.Vel.Y > -t.ClimbTolerance
		return false, bomb
	}

	w, armed := a.ActiveWeapon()
	if armed && w.Guided() && target.Kind != behavior.KindHelicopter {
		// missiles are kept for helicopters
		w, armed = WeaponGun, a.Ammo > 0
	}
	if !armed {
		return false, false
	}
	fire = math.Abs(d.X) < t.AlignGate && math.Abs(d.Y) < t.FireBand(w)
	return fire, false
}

func (p *Pilot) obstacles(self behavior.Body, target behavior.ID) []behavior.Body {
	q := Query{Origin: self.Center(), Range: p.tuning.AvoidRange, Kinds: obstacleKinds, Exclude: self.ID, Cloaked: true}
	found := p.nearby(q)
	if target == "" {
		return found
	}
	out := found[:0:0]
	for _, b := range found {
		if b.ID != target {
			out = append(out, b)
		}
	}
	return out
}

func (p *Pilot) threats(self behavior.Body) []behavior.Body {
	q := Query{Origin: self.Center(), Range: p.tuning.ThreatRange, Kinds: threatKinds, EnemyOf: self.Team, Exclude: self.ID, Cloaked: true}
	return p.nearby(q)
}
