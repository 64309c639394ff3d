package simulation

import (
	"math"

	"github.com/lao-tseu-is-alive/go-sky-pilot/pkg/behavior"
	"github.com/lao-tseu-is-alive/go-sky-pilot/pkg/geometry"
	"github.com/lao-tseu-is-alive/go-sky-pilot/pkg/pilot"
)

// balloonLift is how fast a freed balloon rises.
const balloonLift = 0.5

// solid lists the kinds a helicopter crashes into.
var solid = map[behavior.Kind]bool{
	behavior.KindTerrain:         true,
	behavior.KindBunker:          true,
	behavior.KindSuperBunker:     true,
	behavior.KindTurret:          true,
	behavior.KindChain:           true,
	behavior.KindBalloon:         true,
	behavior.KindTank:            true,
	behavior.KindVan:             true,
	behavior.KindMissileLauncher: true,
}

func isProjectile(k behavior.Kind) bool {
	return k == behavior.KindGunfire || k == behavior.KindSmartMissile || k == behavior.KindBomb
}

// integrate moves everything by one tick.
func (b *Battle) integrate() {
	for _, c := range b.crafts {
		if c.down || c.agent.Landed {
			continue
		}
		b.fly(c)
	}

	for _, u := range b.sortedUnits() {
		if u.body.Dead {
			continue
		}
		switch u.body.Kind {
		case behavior.KindTank, behavior.KindVan, behavior.KindMissileLauncher:
			u.body.Rect = u.body.Rect.Moved(u.body.Vel)
			if u.body.Rect.Left() < b.world.Left() || u.body.Rect.Right() > b.world.Right() {
				u.body.Vel.X = -u.body.Vel.X
				u.body.Rect.X = clamp(u.body.Rect.X, b.world.Left(), b.world.Right()-u.body.Rect.W)
			}

		case behavior.KindCloud:
			u.body.Rect = u.body.Rect.Moved(u.body.Vel)
			if u.body.Rect.Left() > b.world.Right() {
				u.body.Rect.X = b.world.Left() - u.body.Rect.W
			} else if u.body.Rect.Right() < b.world.Left() {
				u.body.Rect.X = b.world.Right()
			}

		case behavior.KindBalloon:
			if u.body.Tether.Anchor != "" {
				continue
			}
			u.body.Vel = geometry.Vector2D{Y: -balloonLift}
			u.body.Rect = u.body.Rect.Moved(u.body.Vel)
			if u.body.Rect.Bottom() < b.world.Top() {
				u.body.Dead = true
			}

		case behavior.KindBomb:
			u.body.Vel.Y += b.cfg.Weapons.BombGravity
			u.body.Rect = u.body.Rect.Moved(u.body.Vel)
			if u.body.Rect.Bottom() >= b.world.Bottom() {
				u.body.Dead = true
			}

		case behavior.KindGunfire, behavior.KindSmartMissile:
			u.body.Rect = u.body.Rect.Moved(u.body.Vel)
			if b.tick >= u.expire || !b.world.Intersects(u.body.Rect) {
				u.body.Dead = true
			}
		}
	}
}

// fly moves one helicopter, keeps it inside the world and burns fuel.
// An empty tank damages the craft every tick.
func (b *Battle) fly(c *craft) {
	a := c.agent
	a.Rect = a.Rect.Moved(a.Vel)

	if a.Rect.Left() < b.world.Left() || a.Rect.Right() > b.world.Right() {
		a.Rect.X = clamp(a.Rect.X, b.world.Left(), b.world.Right()-a.Rect.W)
		a.Vel.X = 0
	}
	if a.Rect.Top() < b.world.Top() || a.Rect.Bottom() > b.world.Bottom() {
		a.Rect.Y = clamp(a.Rect.Y, b.world.Top(), b.world.Bottom()-a.Rect.H)
		a.Vel.Y = 0
	}

	a.Fuel = math.Max(a.Fuel-b.cfg.Craft.FuelBurn, 0)
	if a.Fuel == 0 {
		a.Health -= b.cfg.Craft.CrashDamage
	}
}

// collide resolves projectile hits and helicopters flying into solid bodies.
func (b *Battle) collide() {
	units := b.sortedUnits()

	for _, p := range units {
		if p.body.Dead || !isProjectile(p.body.Kind) {
			continue
		}
		b.impact(p, units)
	}

	for _, c := range b.crafts {
		if c.down || c.agent.Landed {
			continue
		}
		for _, u := range units {
			if !u.body.Dead && solid[u.body.Kind] && c.agent.Rect.Intersects(u.body.Rect) {
				c.agent.Health -= b.cfg.Craft.CrashDamage
				break
			}
		}
	}
}

// impact checks one projectile against helicopters first, then units in ID
// order. A projectile hits at most one thing. Terrain stops everything.
func (b *Battle) impact(p *unit, units []*unit) {
	for _, c := range b.crafts {
		if c.down || c.agent.ID == p.owner {
			continue
		}
		if c.agent.Team == p.body.Team && c.agent.ID != p.target {
			continue
		}
		if p.body.Rect.Intersects(c.agent.Rect) {
			c.agent.Health -= p.damage
			p.body.Dead = true
			b.logger.Debugf("%s hit %s (%.0f left)", p.body.ID, c.agent.ID, c.agent.Health)
			return
		}
	}

	for _, u := range units {
		if u == p || u.body.Dead || u.body.ID == p.owner || !p.body.Rect.Intersects(u.body.Rect) {
			continue
		}
		if u.body.Kind == behavior.KindTerrain {
			p.body.Dead = true
			return
		}
		if _, ok := bodyHealth[u.body.Kind]; !ok {
			continue
		}
		if u.body.Team == p.body.Team && u.body.ID != p.target {
			continue
		}
		p.body.Dead = true
		b.damage(u, p.damage)
		return
	}
}

// damage hurts a unit and breaks its tether when it is destroyed:
// a lost anchor frees the balloon, a lost balloon leaves the anchor alone,
// and the chain goes with either.
func (b *Battle) damage(u *unit, amount float64) {
	u.health -= amount
	if u.health > 0 {
		return
	}
	u.body.Dead = true
	b.logger.Debugf("%s destroyed", u.body.ID)

	tether := u.body.Tether
	if tether.IsZero() {
		return
	}
	if link, ok := b.units[tether.Link]; ok {
		link.body.Dead = true
	}
	switch u.body.ID {
	case tether.Anchor:
		if payload, ok := b.units[tether.Payload]; ok {
			payload.body.Tether = behavior.Tether{}
		}
	case tether.Payload:
		if anchor, ok := b.units[tether.Anchor]; ok {
			anchor.body.Tether = behavior.Tether{}
		}
	}
}

// landAndResupply sets down retreating helicopters that reached a friendly
// or neutral pad, and refills the ones already landed.
func (b *Battle) landAndResupply() {
	cc := b.cfg.Craft
	for _, c := range b.crafts {
		if c.down {
			continue
		}
		a := c.agent

		if !a.Landed {
			if c.last.Mode != pilot.ModeRetreat {
				continue
			}
			if pad, ok := b.padUnder(a); ok {
				a.Landed = true
				a.Rect.Y = pad.Rect.Top() - a.Rect.H
				a.Vel = geometry.Vector2D{}
				c.rearm = 0
				b.logger.Infof("[%s] landed on %s at tick %d", a.ID, pad.ID, b.tick)
			}
			continue
		}

		a.Fuel = math.Min(a.Fuel+cc.FuelRefill, a.MaxFuel)
		a.Health = math.Min(a.Health+cc.RepairRate, a.MaxHealth)
		c.rearm++
		if c.rearm >= max(cc.RearmInterval, 1) {
			c.rearm = 0
			a.Ammo = min(a.Ammo+1, a.MaxAmmo)
			a.Bombs = min(a.Bombs+1, a.MaxBombs)
			a.Missiles = min(a.Missiles+1, a.MaxMissiles)
		}
	}
}

// padUnder returns the usable pad the craft is touching down on.
func (b *Battle) padUnder(a *pilot.Agent) (behavior.Body, bool) {
	for _, pad := range b.registry.Pads() {
		if pad.Team != a.Team && pad.Team != behavior.TeamNeutral {
			continue
		}
		if a.Rect.ContainsX(pad.Rect) && a.Rect.Bottom() >= pad.Rect.Top()-1 {
			return pad, true
		}
	}
	return behavior.Body{}, false
}

// reap drops destroyed entities from the battle and the registry.
func (b *Battle) reap() {
	for id, u := range b.units {
		if u.body.Dead {
			delete(b.units, id)
			b.registry.Remove(id)
		}
	}
	for _, c := range b.crafts {
		if c.down || c.agent.Health > 0 {
			continue
		}
		c.down = true
		c.weapons.fire, c.weapons.bomb = false, false
		b.registry.Remove(c.agent.ID)
		b.logger.Infof("%s helicopter %s shot down at tick %d", c.agent.Team, c.agent.ID, b.tick)
	}
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
