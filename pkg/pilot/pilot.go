package pilot

import (
	"fmt"
	"math/rand/v2"

	"github.com/lao-tseu-is-alive/go-sky-pilot/pkg/behavior"
	"github.com/lao-tseu-is-alive/go-sky-pilot/pkg/geometry"
	golog "github.com/tochemey/goakt/v3/log"
)

// Mode is what the pilot decided to do this tick.
type Mode uint8

const (
	ModePatrol Mode = iota
	ModePursue
	ModeBombing
	ModeCover
	ModeRetreat
	ModeLanded
	ModeLiftOff
)

func (m Mode) String() string {
	switch m {
	case ModePatrol:
		return "patrol"
	case ModePursue:
		return "pursue"
	case ModeBombing:
		return "bombing"
	case ModeCover:
		return "cover"
	case ModeRetreat:
		return "retreat"
	case ModeLanded:
		return "landed"
	case ModeLiftOff:
		return "lift-off"
	default:
		return fmt.Sprintf("mode(%d)", uint8(m))
	}
}

// Claims records which behaviour took each decision slot during a tick.
// They are cleared at the start of every Step.
type Claims struct {
	WantsLandingPad  bool
	FoundSteerTarget bool
	Avoiding         bool
	AvoidingTurret   bool
	DodgedBullet     bool
}

// Decision is the outcome of one Step.
type Decision struct {
	Tick   uint64
	Mode   Mode
	Target behavior.ID
	Fire   bool
	Bomb   bool
	Accel  geometry.Vector2D
	Claims Claims
}

// Option configures a Pilot.
type Option func(*Pilot)

// WithLogger sets the logger used for decision traces.
func WithLogger(l golog.Logger) Option {
	return func(p *Pilot) {
		if l != nil {
			p.logger = l
		}
	}
}

// Pilot flies one Agent. It is not safe for concurrent use; the scheduler
// steps every pilot in turn.
type Pilot struct {
	agent  *Agent
	deps   Deps
	tuning Tuning
	ctrl   *behavior.Controller
	rng    *rand.Rand
	logger golog.Logger

	claims Claims
	mode   Mode

	target     behavior.ID
	targetKind behavior.Kind
	chasedBy   behavior.ID

	// personality, re-rolled every RerollInterval ticks
	huntGround  bool
	cloudSeeker bool
	stopHunting bool
}

// New wires a pilot to its agent. seed drives every random draw the pilot makes,
// so two pilots built with the same seed and fed the same world decide alike.
func New(agent *Agent, deps Deps, tuning Tuning, seed uint64, opts ...Option) *Pilot {
	p := &Pilot{
		agent:  agent,
		deps:   deps,
		tuning: tuning,
		rng:    rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
		logger: golog.DefaultLogger,
	}
	for _, opt := range opts {
		opt(p)
	}
	if p.deps.Weapons == nil {
		p.deps.Weapons = noWeapons{}
	}

	var world geometry.Rect
	if deps.World != nil {
		world = deps.World.Bounds()
	}
	p.ctrl = behavior.NewController(&agent.Craft, world, tuning.Tuning)
	if tuning.RerollInterval == 0 {
		p.tuning.RerollInterval = DefaultTuning().RerollInterval
	}
	p.reroll()
	return p
}

// Agent returns the piloted agent.
func (p *Pilot) Agent() *Agent {
	return p.agent
}

// Controller exposes the steering controller, mainly for overlays.
func (p *Pilot) Controller() *behavior.Controller {
	return p.ctrl
}

// Target is the handle currently pursued, empty when none.
func (p *Pilot) Target() behavior.ID {
	return p.target
}

// Mode is the mode chosen by the last Step.
func (p *Pilot) Mode() Mode {
	return p.mode
}

// Chased reports whether a guided munition is known to be homing on the agent.
func (p *Pilot) Chased() bool {
	return p.chasedBy != ""
}

// Step runs one decision cycle: resupply, target validity, acquisition,
// engagement votes, then motion. It never fails; bad inputs degrade to
// patrolling.
func (p *Pilot) Step(tick uint64) Decision {
	p.claims = Claims{}
	p.ctrl.Begin(tick)
	d := Decision{Tick: tick}

	if p.agent.Landed {
		return p.finish(p.stepLanded(d))
	}

	if tick > 0 && tick%p.tuning.RerollInterval == 0 {
		p.reroll()
	}
	p.refreshChase()

	self := p.agent.Body()
	var (
		target  behavior.Body
		held    bool
		bombing bool
	)

	if pad, ok := p.retreatPad(); ok {
		p.claims.WantsLandingPad = true
		p.dropTarget("retreating")
		target, held = pad, true
		d.Mode = ModeRetreat
		d.Target = pad.ID
	} else {
		target, held = p.validTarget(self)
		if !held {
			target, held = p.acquire(self)
		}
		if held {
			bombing = target.Kind.IsGroundVehicle()
			d.Mode = modeFor(target.Kind)
			d.Target = target.ID
			d.Fire, d.Bomb = p.votes(target, bombing)
		}
	}
	p.applyVotes(d.Fire, d.Bomb)
	if d.Fire || d.Bomb {
		p.deps.Weapons.Face(target)
	}

	// motion: avoidance always, steering only without structural avoidance,
	// patrol only when neither claimed the tick
	avoid := p.ctrl.Avoid(behavior.MergeObstacles(p.obstacles(self, d.Target), p.lookup))
	dodge := p.ctrl.Dodge(p.threats(self))
	p.claims.Avoiding = avoid.Avoiding()
	p.claims.DodgedBullet = dodge.Dodged
	p.claims.AvoidingTurret = dodge.Turret

	if held && !p.claims.Avoiding {
		p.ctrl.Pursue(target, bombing)
		p.claims.FoundSteerTarget = true
	}
	if !p.claims.Avoiding && !p.claims.FoundSteerTarget {
		p.ctrl.Patrol(p.claims.AvoidingTurret)
	}

	d.Accel = p.ctrl.Resolve()
	return p.finish(d)
}

func (p *Pilot) finish(d Decision) Decision {
	if d.Mode != p.mode {
		p.logger.Debugf("[%s] mode %s -> %s at tick %d", p.agent.ID, p.mode, d.Mode, d.Tick)
		p.mode = d.Mode
	}
	d.Claims = p.claims
	return d
}

// stepLanded holds a landed agent still while the harness refills it, and
// lifts off once everything is topped up.
func (p *Pilot) stepLanded(d Decision) Decision {
	p.applyVotes(false, false)
	p.dropTarget("landed")

	if !p.agent.Full() {
		p.agent.Repairing = true
		p.agent.Vel = geometry.Vector2D{}
		d.Mode = ModeLanded
		return d
	}

	p.agent.Landed = false
	p.agent.Repairing = false
	lift := geometry.Vector2D{Y: -p.tuning.LandingForce}
	p.ctrl.Ledger.Add(lift, behavior.CategoryBrake, behavior.KindLandingPad)
	d.Accel = p.ctrl.Resolve()
	d.Mode = ModeLiftOff
	return d
}

func (p *Pilot) reroll() {
	// always two draws, in this order
	p.huntGround = p.rng.Float64() < p.tuning.GroundHuntChance
	p.cloudSeeker = p.rng.Float64() < p.tuning.CloudHideChance
	p.stopHunting = false
}

func (p *Pilot) lookup(id behavior.ID) (behavior.Body, bool) {
	if p.deps.World == nil {
		return behavior.Body{}, false
	}
	return p.deps.World.Lookup(id)
}

func (p *Pilot) nearby(q Query) []behavior.Body {
	if p.deps.World == nil {
		return nil
	}
	return p.deps.World.Nearby(q)
}

func (p *Pilot) applyVotes(fire, bomb bool) {
	if fire != p.agent.Firing {
		p.deps.Weapons.RequestFire(fire)
		p.agent.Firing = fire
	}
	if bomb != p.agent.Bombing {
		p.deps.Weapons.RequestBomb(bomb)
		p.agent.Bombing = bomb
	}
}

func modeFor(k behavior.Kind) Mode {
	switch {
	case k.IsGroundVehicle():
		return ModeBombing
	case k == behavior.KindCloud:
		return ModeCover
	default:
		return ModePursue
	}
}

type noWeapons struct{}

func (noWeapons) RequestFire(bool)   {}
func (noWeapons) RequestBomb(bool)   {}
func (noWeapons) Face(behavior.Body) {}
