package simulation

import (
	"cmp"
	"fmt"
	"slices"
	"time"

	"github.com/google/uuid"
	"github.com/lao-tseu-is-alive/go-sky-pilot/internal/arena"
	"github.com/lao-tseu-is-alive/go-sky-pilot/pkg/behavior"
	"github.com/lao-tseu-is-alive/go-sky-pilot/pkg/geometry"
	"github.com/lao-tseu-is-alive/go-sky-pilot/pkg/pilot"
	golog "github.com/tochemey/goakt/v3/log"
)

// TickDuration is the simulated time covered by one Step.
const TickDuration = time.Second / 60

// unit sizes, width x height
var sizes = map[behavior.Kind][2]float64{
	behavior.KindTank:            {40, 20},
	behavior.KindVan:             {36, 18},
	behavior.KindMissileLauncher: {40, 22},
	behavior.KindTurret:          {24, 24},
	behavior.KindBunker:          {48, 24},
	behavior.KindSuperBunker:     {64, 32},
	behavior.KindBalloon:         {28, 30},
	behavior.KindLandingPad:      {80, 8},
	behavior.KindGunfire:         {6, 2},
	behavior.KindBomb:            {6, 8},
	behavior.KindSmartMissile:    {10, 4},
}

// bodyHealth lists the kinds that can be destroyed and how much they take.
var bodyHealth = map[behavior.Kind]float64{
	behavior.KindTank:            40,
	behavior.KindVan:             20,
	behavior.KindMissileLauncher: 30,
	behavior.KindTurret:          60,
	behavior.KindBunker:          80,
	behavior.KindSuperBunker:     400,
	behavior.KindBalloon:         10,
}

// balloonAltitude is where the bottom of a tethered balloon floats.
const balloonAltitude = 120

// unit is any non-piloted entity: ground units, structures, scenery and projectiles.
type unit struct {
	body   behavior.Body
	health float64
	// next tick the unit may fire
	cooldown uint64

	// projectiles
	owner   behavior.ID
	target  behavior.ID
	damage  float64
	expire  uint64
	offered bool // a decoy was already offered for this munition
}

// craft is one AI helicopter with its pilot.
type craft struct {
	agent   *pilot.Agent
	pilot   *pilot.Pilot
	weapons *intent
	last    pilot.Decision
	ready   uint64 // next tick the gun or missile rack may fire
	bombAt  uint64 // next tick a bomb may drop
	rearm   uint64 // landed ticks counted towards the next rearm
	down    bool   // destroyed, already removed from the registry
}

// Battle is the deterministic harness around the pilots: it owns every entity,
// spawns projectiles for the pilots' fire intent, integrates motion and
// resolves collisions, landings and resupply.
type Battle struct {
	ID       uuid.UUID
	cfg      *Config
	logger   golog.Logger
	world    geometry.Rect
	registry *arena.Registry

	units  map[behavior.ID]*unit
	crafts []*craft // ordered by agent ID
	serial uint64

	tick   uint64
	over   bool
	winner behavior.Team
}

// NewBattle populates a battle from cfg. The same config and seed always
// produce the same battle.
func NewBattle(cfg *Config, logger golog.Logger) (*Battle, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("cannot start battle: %w", err)
	}
	if logger == nil {
		logger = golog.DefaultLogger
	}

	world := geometry.Rect{X: 0, Y: 0, W: cfg.WorldWidth, H: cfg.WorldHeight}
	b := &Battle{
		ID:       uuid.New(),
		cfg:      cfg,
		logger:   logger,
		world:    world,
		registry: arena.NewRegistry(world),
		units:    make(map[behavior.ID]*unit),
	}

	b.spawnScenery()
	if err := b.spawnHelicopters(); err != nil {
		return nil, err
	}
	b.sync()
	b.registry.Rebuild()

	b.logger.Infof("battle %s: %d helicopters, %d other entities", b.ID, len(b.crafts), len(b.units))
	return b, nil
}

func (b *Battle) nextID(kind behavior.Kind) behavior.ID {
	b.serial++
	return behavior.ID(fmt.Sprintf("%s-%d", kind, b.serial))
}

func (b *Battle) onFloor(kind behavior.Kind, team behavior.Team, x float64) *unit {
	size := sizes[kind]
	u := &unit{
		body: behavior.Body{
			ID:   b.nextID(kind),
			Kind: kind,
			Team: team,
			Rect: geometry.Rect{X: x - size[0]/2, Y: b.world.Bottom() - size[1], W: size[0], H: size[1]},
		},
		health: bodyHealth[kind],
	}
	b.units[u.body.ID] = u
	return u
}

// spawnScenery places everything but the helicopters. Team names were
// checked by Validate.
func (b *Battle) spawnScenery() {
	for _, p := range b.cfg.Pads {
		team, _ := ParseTeam(p.Team)
		b.onFloor(behavior.KindLandingPad, team, p.X)
	}

	for _, v := range b.cfg.Vehicles {
		team, _ := ParseTeam(v.Team)
		kind, _ := behavior.ParseKind(v.Kind)
		u := b.onFloor(kind, team, v.X)
		// blue rolls toward red and back
		dir := 1.0
		if team == behavior.TeamRed {
			dir = -1
		}
		u.body.Vel = geometry.Vector2D{X: dir * v.Speed}
	}

	for _, t := range b.cfg.Turrets {
		team, _ := ParseTeam(t.Team)
		b.onFloor(behavior.KindTurret, team, t.X)
	}

	for _, bk := range b.cfg.Bunkers {
		team, _ := ParseTeam(bk.Team)
		kind := behavior.KindBunker
		if bk.Super {
			kind = behavior.KindSuperBunker
		}
		anchor := b.onFloor(kind, team, bk.X)
		if !bk.Balloon {
			continue
		}

		size := sizes[behavior.KindBalloon]
		payload := &unit{
			body: behavior.Body{
				ID:   b.nextID(behavior.KindBalloon),
				Kind: behavior.KindBalloon,
				Team: team,
				Rect: geometry.Rect{X: bk.X - size[0]/2, Y: balloonAltitude - size[1], W: size[0], H: size[1]},
			},
			health: bodyHealth[behavior.KindBalloon],
		}
		link := &unit{
			body: behavior.Body{
				ID:   b.nextID(behavior.KindChain),
				Kind: behavior.KindChain,
				Team: team,
				Rect: geometry.Rect{X: bk.X - 2, Y: balloonAltitude, W: 4, H: anchor.body.Rect.Top() - balloonAltitude},
			},
		}
		tether := behavior.Tether{Anchor: anchor.body.ID, Link: link.body.ID, Payload: payload.body.ID}
		anchor.body.Tether = tether
		link.body.Tether = tether
		payload.body.Tether = tether
		b.units[link.body.ID] = link
		b.units[payload.body.ID] = payload
	}

	for _, c := range b.cfg.Clouds {
		u := &unit{body: behavior.Body{
			ID:   b.nextID(behavior.KindCloud),
			Kind: behavior.KindCloud,
			Rect: geometry.Rect{X: c.X, Y: c.Y, W: c.W, H: c.H},
			Vel:  geometry.Vector2D{X: c.Drift},
		}}
		b.units[u.body.ID] = u
	}

	for _, t := range b.cfg.Terrain {
		u := &unit{body: behavior.Body{
			ID:   b.nextID(behavior.KindTerrain),
			Kind: behavior.KindTerrain,
			Rect: geometry.Rect{X: t.X, Y: t.Y, W: t.W, H: t.H},
		}}
		b.units[u.body.ID] = u
	}
}

func (b *Battle) spawnHelicopters() error {
	specs := slices.Clone(b.cfg.Helicopters)
	slices.SortFunc(specs, func(x, y HelicopterConfig) int { return cmp.Compare(x.Name, y.Name) })

	cc := b.cfg.Craft
	for i, h := range specs {
		team, err := ParseTeam(h.Team)
		if err != nil {
			return fmt.Errorf("helicopter %s: %w", h.Name, err)
		}
		weapon, err := ParseWeapon(h.Weapon)
		if err != nil {
			return fmt.Errorf("helicopter %s: %w", h.Name, err)
		}
		y := h.Y
		if y == 0 {
			y = balloonAltitude
		}

		agent := &pilot.Agent{
			Craft: behavior.Craft{
				Rect:    geometry.NewRectFromCenter(geometry.Vector2D{X: h.X, Y: y}, cc.Width, cc.Height),
				MaxVel:  geometry.Vector2D{X: cc.MaxVelX, Y: cc.MaxVelY},
				Flipped: team == behavior.TeamRed,
			},
			ID:        behavior.ID(h.Name),
			Team:      team,
			Fuel:      cc.MaxFuel,
			MaxFuel:   cc.MaxFuel,
			Health:    cc.MaxHealth,
			MaxHealth: cc.MaxHealth,
			Ammo:      cc.MaxAmmo,
			MaxAmmo:   cc.MaxAmmo,
			Bombs:     cc.MaxBombs,
			MaxBombs:  cc.MaxBombs,
			Weapon:    weapon,
		}
		if weapon == pilot.WeaponMissile {
			agent.Missiles, agent.MaxMissiles = cc.MaxMissiles, cc.MaxMissiles
		}

		weapons := &intent{agent: agent}
		deps := pilot.Deps{World: b.registry, Weapons: weapons, Pads: b.registry}
		p := pilot.New(agent, deps, b.cfg.Pilot, b.cfg.Seed+uint64(i), pilot.WithLogger(b.logger))
		b.crafts = append(b.crafts, &craft{agent: agent, pilot: p, weapons: weapons})
	}
	return nil
}

// Step advances the battle by one tick:
// index rebuild, pilots in ID order, weapons, motion, homing, collisions,
// landing and resupply, then removal of the dead.
func (b *Battle) Step() {
	if b.over {
		return
	}
	b.tick++

	b.sync()
	b.registry.Rebuild()

	for _, c := range b.crafts {
		if c.down {
			continue
		}
		c.last = c.pilot.Step(b.tick)
	}

	b.fireWeapons()
	b.integrate()
	b.home()
	b.collide()
	b.landAndResupply()
	b.reap()
	b.checkOver()
}

// Run steps until the battle is over or n ticks have passed.
func (b *Battle) Run(n uint64) {
	for i := uint64(0); i < n && !b.over; i++ {
		b.Step()
	}
}

// sync copies the authoritative state into the registry.
func (b *Battle) sync() {
	for _, u := range b.units {
		b.registry.Put(u.body)
	}
	for _, c := range b.crafts {
		if c.down {
			continue
		}
		body := c.agent.Body()
		body.Cloaked = b.inCloud(c.agent.Center())
		b.registry.Put(body)
	}
}

func (b *Battle) inCloud(p geometry.Vector2D) bool {
	for _, u := range b.units {
		if u.body.Kind == behavior.KindCloud && u.body.Rect.Contains(p) {
			return true
		}
	}
	return false
}

func (b *Battle) checkOver() {
	alive := map[behavior.Team]int{}
	for _, c := range b.crafts {
		if !c.down {
			alive[c.agent.Team]++
		}
	}

	switch {
	case alive[behavior.TeamBlue] == 0 && alive[behavior.TeamRed] == 0:
		b.over, b.winner = true, behavior.TeamNeutral
	case alive[behavior.TeamBlue] == 0:
		b.over, b.winner = true, behavior.TeamRed
	case alive[behavior.TeamRed] == 0:
		b.over, b.winner = true, behavior.TeamBlue
	case b.cfg.MaxTicks > 0 && b.tick >= b.cfg.MaxTicks:
		b.over, b.winner = true, behavior.TeamNeutral
	}
	if b.over {
		b.logger.Infof("battle %s over at tick %d, winner %s", b.ID, b.tick, b.winner)
	}
}

// sortedUnits returns the units ordered by ID so every pass visits them in
// the same order.
func (b *Battle) sortedUnits() []*unit {
	out := make([]*unit, 0, len(b.units))
	for _, u := range b.units {
		out = append(out, u)
	}
	slices.SortFunc(out, func(x, y *unit) int { return cmp.Compare(x.body.ID, y.body.ID) })
	return out
}

func (b *Battle) craftByID(id behavior.ID) *craft {
	for _, c := range b.crafts {
		if c.agent.ID == id {
			return c
		}
	}
	return nil
}

// Tick is the number of steps run so far.
func (b *Battle) Tick() uint64 { return b.tick }

// Over reports a finished battle.
func (b *Battle) Over() bool { return b.over }

// Winner is the winning team once Over; neutral means a draw.
func (b *Battle) Winner() behavior.Team { return b.winner }

// Config is the configuration the battle was built from.
func (b *Battle) Config() *Config { return b.cfg }

// Pilot returns the pilot of a helicopter.
func (b *Battle) Pilot(id behavior.ID) (*pilot.Pilot, bool) {
	if c := b.craftByID(id); c != nil {
		return c.pilot, true
	}
	return nil, false
}
