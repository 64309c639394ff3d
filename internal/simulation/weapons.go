package simulation

import (
	"github.com/lao-tseu-is-alive/go-sky-pilot/pkg/behavior"
	"github.com/lao-tseu-is-alive/go-sky-pilot/pkg/geometry"
	"github.com/lao-tseu-is-alive/go-sky-pilot/pkg/pilot"
)

// intent records what one pilot asked of its weapons. The battle turns it
// into projectiles on its own schedule.
type intent struct {
	agent *pilot.Agent
	fire  bool
	bomb  bool
}

var _ pilot.Weapons = (*intent)(nil)

func (w *intent) RequestFire(on bool) { w.fire = on }
func (w *intent) RequestBomb(on bool) { w.bomb = on }

// Face turns the sprite toward the engaged target.
func (w *intent) Face(target behavior.Body) {
	w.agent.Flipped = target.Center().X < w.agent.Center().X
}

var helicopterKinds = []behavior.Kind{behavior.KindHelicopter}

// spawn adds a projectile centred on at.
func (b *Battle) spawn(kind behavior.Kind, team behavior.Team, source behavior.Kind, at, vel geometry.Vector2D) *unit {
	size := sizes[kind]
	u := &unit{body: behavior.Body{
		ID:     b.nextID(kind),
		Kind:   kind,
		Team:   team,
		Rect:   geometry.NewRectFromCenter(at, size[0], size[1]),
		Vel:    vel,
		Source: source,
	}}
	b.units[u.body.ID] = u
	return u
}

func (b *Battle) fireWeapons() {
	for _, c := range b.crafts {
		if c.down || c.agent.Landed {
			continue
		}
		b.fireCraft(c)
	}

	for _, u := range b.sortedUnits() {
		if u.body.Dead || b.tick < u.cooldown {
			continue
		}
		switch u.body.Kind {
		case behavior.KindTurret:
			b.fireTurret(u)
		case behavior.KindMissileLauncher:
			b.fireLauncher(u)
		}
	}
}

func (b *Battle) fireCraft(c *craft) {
	wc := b.cfg.Weapons
	a := c.agent
	facing := 1.0
	if a.Flipped {
		facing = -1
	}

	if c.weapons.fire && b.tick >= c.ready {
		switch w, ok := a.ActiveWeapon(); {
		case !ok:
		case w == pilot.WeaponMissile && b.isHelicopter(c.pilot.Target()):
			m := b.spawn(behavior.KindSmartMissile, a.Team, behavior.KindHelicopter, a.Center(), geometry.Vector2D{X: facing * wc.MissileSpeed})
			m.owner, m.target = a.ID, c.pilot.Target()
			m.damage, m.expire = wc.MissileDamage, b.tick+wc.MissileLife
			a.Missiles--
			c.ready = b.tick + wc.MissileInterval
			b.lockOn(m)
		case a.Ammo > 0:
			g := b.spawn(behavior.KindGunfire, a.Team, behavior.KindHelicopter, a.Center(), geometry.Vector2D{X: facing*wc.GunSpeed + a.Vel.X})
			g.owner, g.damage, g.expire = a.ID, wc.GunDamage, b.tick+wc.GunLife
			a.Ammo--
			c.ready = b.tick + wc.GunInterval
		}
	}

	if c.weapons.bomb && a.Bombs > 0 && b.tick >= c.bombAt {
		at := geometry.Vector2D{X: a.Center().X, Y: a.Rect.Bottom() + sizes[behavior.KindBomb][1]/2}
		bomb := b.spawn(behavior.KindBomb, a.Team, behavior.KindHelicopter, at, geometry.Vector2D{X: a.Vel.X})
		bomb.owner, bomb.damage = a.ID, wc.BombDamage
		a.Bombs--
		c.bombAt = b.tick + wc.BombInterval
	}
}

func (b *Battle) isHelicopter(id behavior.ID) bool {
	c := b.craftByID(id)
	return c != nil && !c.down
}

// closestEnemyHelicopter returns a visible hostile helicopter within reach of u.
func (b *Battle) closestEnemyHelicopter(u *unit, reach float64) (behavior.Body, bool) {
	found := b.registry.Nearby(pilot.Query{
		Origin:  u.body.Center(),
		Range:   reach,
		Kinds:   helicopterKinds,
		EnemyOf: u.body.Team,
	})
	if len(found) == 0 {
		return behavior.Body{}, false
	}
	return found[0], true
}

func (b *Battle) fireTurret(u *unit) {
	wc := b.cfg.Weapons
	target, ok := b.closestEnemyHelicopter(u, wc.TurretRange)
	if !ok {
		return
	}
	at := geometry.Vector2D{X: u.body.Center().X, Y: u.body.Rect.Top()}
	vel := target.Center().Sub(at).SetMag(wc.GunSpeed)
	g := b.spawn(behavior.KindGunfire, u.body.Team, behavior.KindTurret, at, vel)
	g.owner, g.damage, g.expire = u.body.ID, wc.GunDamage, b.tick+wc.GunLife
	u.cooldown = b.tick + wc.TurretInterval
}

func (b *Battle) fireLauncher(u *unit) {
	wc := b.cfg.Weapons
	target, ok := b.closestEnemyHelicopter(u, wc.LauncherRange)
	if !ok {
		return
	}
	at := geometry.Vector2D{X: u.body.Center().X, Y: u.body.Rect.Top() - sizes[behavior.KindSmartMissile][1]}
	m := b.spawn(behavior.KindSmartMissile, u.body.Team, behavior.KindMissileLauncher, at, geometry.Vector2D{Y: -wc.MissileSpeed})
	m.owner, m.target = u.body.ID, target.ID
	m.damage, m.expire = wc.MissileDamage, b.tick+wc.MissileLife
	u.cooldown = b.tick + wc.LauncherInterval
	b.lockOn(m)
}

// lockOn tells the pilot of the target helicopter it is being chased.
func (b *Battle) lockOn(m *unit) {
	if c := b.craftByID(m.target); c != nil && !c.down {
		c.pilot.MarkChased(m.body.ID)
	}
}

// home steers every guided munition toward its target. Once per munition
// the chased pilot is offered the nearest balloon as a decoy; an accepted
// decoy becomes the new target.
func (b *Battle) home() {
	wc := b.cfg.Weapons
	for _, m := range b.sortedUnits() {
		if m.body.Kind != behavior.KindSmartMissile || m.body.Dead {
			continue
		}

		target, ok := b.targetBody(m.target)
		if !ok {
			// lost lock: fly straight until it burns out
			continue
		}

		if c := b.craftByID(m.target); c != nil && !m.offered {
			if decoy, found := b.decoyFor(target); found {
				m.offered = true
				if c.pilot.OfferDecoy(m.body, decoy) {
					b.logger.Debugf("%s diverted from %s to %s", m.body.ID, m.target, decoy.ID)
					m.target = decoy.ID
					target = decoy
				}
			}
		}

		steer := geometry.Seek(target.Center(), m.body.Center(), m.body.Vel, wc.MissileTurn, wc.MissileSpeed)
		m.body.Vel = m.body.Vel.Add(steer).Limit(wc.MissileSpeed)
	}
}

// targetBody resolves a munition target among helicopters and units.
func (b *Battle) targetBody(id behavior.ID) (behavior.Body, bool) {
	if c := b.craftByID(id); c != nil {
		if c.down {
			return behavior.Body{}, false
		}
		return c.agent.Body(), true
	}
	if u, ok := b.units[id]; ok && !u.body.Dead {
		return u.body, true
	}
	return behavior.Body{}, false
}

func (b *Battle) decoyFor(target behavior.Body) (behavior.Body, bool) {
	found := b.registry.Nearby(pilot.Query{
		Origin:  target.Center(),
		Range:   b.cfg.Pilot.DecoyRange,
		Kinds:   []behavior.Kind{behavior.KindBalloon},
		Cloaked: true,
	})
	if len(found) == 0 {
		return behavior.Body{}, false
	}
	return found[0], true
}
