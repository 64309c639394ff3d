package behavior

import (
	"fmt"

	"github.com/lao-tseu-is-alive/go-sky-pilot/pkg/geometry"
)

// ID is a handle into the world registry. Holding an ID never keeps the
// entity alive; it must be looked up again every tick.
type ID string

// Kind identifies what an entity is. It doubles as the key of force ledger entries.
type Kind uint8

const (
	KindNone Kind = iota
	KindHelicopter
	KindTank
	KindVan
	KindMissileLauncher
	KindCloud
	KindBalloon
	KindChain
	KindBunker
	KindSuperBunker
	KindTurret
	KindLandingPad
	KindTerrain
	KindGunfire
	KindSmartMissile
	KindBomb
	KindComposite

	numKinds
)

var kindNames = [numKinds]string{
	KindNone:            "none",
	KindHelicopter:      "helicopter",
	KindTank:            "tank",
	KindVan:             "van",
	KindMissileLauncher: "missile-launcher",
	KindCloud:           "cloud",
	KindBalloon:         "balloon",
	KindChain:           "chain",
	KindBunker:          "bunker",
	KindSuperBunker:     "super-bunker",
	KindTurret:          "turret",
	KindLandingPad:      "landing-pad",
	KindTerrain:         "terrain",
	KindGunfire:         "gunfire",
	KindSmartMissile:    "smart-missile",
	KindBomb:            "bomb",
	KindComposite:       "composite",
}

func (k Kind) String() string {
	if k < numKinds {
		return kindNames[k]
	}
	return fmt.Sprintf("kind(%d)", uint8(k))
}

// ParseKind maps a kind name back to its Kind.
func ParseKind(s string) (Kind, error) {
	for k, name := range kindNames {
		if name == s {
			return Kind(k), nil
		}
	}
	return KindNone, fmt.Errorf("unknown entity kind %q", s)
}

// IsGroundVehicle reports the primary ground targets hunted with bombs.
func (k Kind) IsGroundVehicle() bool {
	return k == KindTank || k == KindVan || k == KindMissileLauncher
}

// IsThreat reports the ballistic kinds dodged by the threat scanner.
func (k Kind) IsThreat() bool {
	return k == KindGunfire || k == KindSmartMissile || k == KindBomb
}

// Team is the side an entity fights for.
type Team uint8

const (
	TeamNeutral Team = iota
	TeamBlue
	TeamRed
)

func (t Team) String() string {
	switch t {
	case TeamBlue:
		return "🔵 BLUE"
	case TeamRed:
		return "🔴 RED"
	default:
		return "NEUTRAL"
	}
}

// Opponent returns the opposing team; neutral has none.
func (t Team) Opponent() Team {
	switch t {
	case TeamBlue:
		return TeamRed
	case TeamRed:
		return TeamBlue
	default:
		return TeamNeutral
	}
}

// HostileTo reports whether the two teams fight each other.
func (t Team) HostileTo(other Team) bool {
	return t != TeamNeutral && other != TeamNeutral && t != other
}

// Tether links the parts of a chained structure: an anchor on the ground,
// the connecting link and the tethered payload floating above it.
// Every part of the group carries the same Tether; missing parts are empty IDs.
type Tether struct {
	Anchor  ID `json:"anchor,omitempty"`
	Link    ID `json:"link,omitempty"`
	Payload ID `json:"payload,omitempty"`
}

// IsZero reports an untethered body.
func (t Tether) IsZero() bool {
	return t.Anchor == "" && t.Link == "" && t.Payload == ""
}

// Body is a read-only view of a world entity as seen by the pilot this tick.
type Body struct {
	ID      ID
	Kind    Kind
	Team    Team
	Rect    geometry.Rect
	Vel     geometry.Vector2D
	Dead    bool
	Cloaked bool

	// Source is the kind that fired a projectile (a turret, a helicopter...).
	Source Kind
	// Tether is set on bunkers, chains and balloons that belong to a chained group.
	Tether Tether
}

// Center is the middle of the body's bounding box.
func (b Body) Center() geometry.Vector2D {
	return b.Rect.Center()
}

// Alive reports whether the body can still be acted upon.
func (b Body) Alive() bool {
	return !b.Dead
}

// Craft is the kinematic state of the piloted unit that steering reads and writes.
type Craft struct {
	Rect geometry.Rect
	Vel  geometry.Vector2D
	// MaxVel holds the per-axis velocity limits.
	MaxVel geometry.Vector2D
	// Flipped is true while the craft faces left.
	Flipped bool
}

// Center is the middle of the craft.
func (c *Craft) Center() geometry.Vector2D {
	return c.Rect.Center()
}

// Speed is the magnitude of the craft's velocity.
func (c *Craft) Speed() float64 {
	return c.Vel.Len()
}

// MaxSpeed is the magnitude of the per-axis velocity limits.
func (c *Craft) MaxSpeed() float64 {
	return c.MaxVel.Len()
}

// ClampVelocity clamps each velocity axis to its maximum.
func (c *Craft) ClampVelocity() {
	c.Vel.X = clamp(c.Vel.X, -c.MaxVel.X, c.MaxVel.X)
	c.Vel.Y = clamp(c.Vel.Y, -c.MaxVel.Y, c.MaxVel.Y)
}

// Face updates the facing flag from horizontal motion.
func (c *Craft) Face() {
	if c.Vel.X < -facingDeadZone {
		c.Flipped = true
	} else if c.Vel.X > facingDeadZone {
		c.Flipped = false
	}
}

const facingDeadZone = 0.1

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
