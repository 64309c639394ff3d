package pilot

import (
	"fmt"

	"github.com/lao-tseu-is-alive/go-sky-pilot/pkg/behavior"
)

// Weapon is the direct-fire weapon fitted to a helicopter.
type Weapon uint8

const (
	WeaponGun Weapon = iota
	WeaponMissile
)

func (w Weapon) String() string {
	switch w {
	case WeaponGun:
		return "gun"
	case WeaponMissile:
		return "missile"
	default:
		return fmt.Sprintf("weapon(%d)", uint8(w))
	}
}

// Guided reports weapons that home on their target.
func (w Weapon) Guided() bool {
	return w == WeaponMissile
}

// Agent is the state of one AI helicopter. The pilot writes the embedded
// Craft velocity and the intent flags; the harness owns everything else.
type Agent struct {
	behavior.Craft

	ID   behavior.ID
	Team behavior.Team

	Fuel, MaxFuel     float64
	Health, MaxHealth float64

	Ammo, MaxAmmo         int
	Bombs, MaxBombs       int
	Missiles, MaxMissiles int
	Weapon                Weapon

	// Landed is set by the harness on touchdown; the pilot clears it on lift-off.
	Landed bool
	// Repairing is true while the harness refills a landed agent.
	Repairing bool

	// Firing and Bombing mirror the last intent sent to the weapon system.
	Firing  bool
	Bombing bool
}

// Body returns the agent as other entities see it.
func (a *Agent) Body() behavior.Body {
	return behavior.Body{
		ID:   a.ID,
		Kind: behavior.KindHelicopter,
		Team: a.Team,
		Rect: a.Rect,
		Vel:  a.Vel,
		Dead: a.Health <= 0,
	}
}

// HealthRatio is the remaining structural integrity in [0,1].
func (a *Agent) HealthRatio() float64 {
	if a.MaxHealth <= 0 {
		return 0
	}
	return a.Health / a.MaxHealth
}

// Damaged reports any missing health.
func (a *Agent) Damaged() bool {
	return a.Health < a.MaxHealth
}

// Full reports an agent with every resource topped up.
func (a *Agent) Full() bool {
	return a.Fuel >= a.MaxFuel &&
		a.Health >= a.MaxHealth &&
		a.Ammo >= a.MaxAmmo &&
		a.Bombs >= a.MaxBombs &&
		a.Missiles >= a.MaxMissiles
}

// ActiveWeapon returns the weapon the agent can shoot right now.
// A missile carrier falls back on its gun once the missiles are spent.
func (a *Agent) ActiveWeapon() (Weapon, bool) {
	if a.Weapon == WeaponMissile && a.Missiles > 0 {
		return WeaponMissile, true
	}
	if a.Ammo > 0 {
		return WeaponGun, true
	}
	return WeaponGun, false
}
