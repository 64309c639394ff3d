package simulation

import (
	"testing"
	"time"

	"github.com/lao-tseu-is-alive/go-sky-pilot/pkg/behavior"
	"github.com/lao-tseu-is-alive/go-sky-pilot/pkg/geometry"
	"github.com/lao-tseu-is-alive/go-sky-pilot/pkg/pilot"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	golog "github.com/tochemey/goakt/v3/log"
)

// duel is the default world emptied down to one helicopter a side, far apart.
func duel() *Config {
	cfg := DefaultConfig()
	cfg.Helicopters = []HelicopterConfig{
		{Name: "blue-1", Team: "blue", X: 500, Y: 120, Weapon: "gun"},
		{Name: "red-1", Team: "red", X: 3500, Y: 120, Weapon: "missile"},
	}
	cfg.Vehicles = nil
	cfg.Bunkers = nil
	cfg.Turrets = nil
	cfg.Pads = nil
	cfg.Clouds = nil
	cfg.Terrain = nil
	return cfg
}

func newTestBattle(t *testing.T, cfg *Config) *Battle {
	t.Helper()
	b, err := NewBattle(cfg, golog.DiscardLogger)
	require.NoError(t, err)
	return b
}

func unitsOf(b *Battle, kind behavior.Kind) []*unit {
	var out []*unit
	for _, u := range b.sortedUnits() {
		if u.body.Kind == kind {
			out = append(out, u)
		}
	}
	return out
}

func TestNewBattle_RejectsInvalidConfig(t *testing.T) {
	cfg := duel()
	cfg.WorldWidth = 0
	_, err := NewBattle(cfg, golog.DiscardLogger)
	assert.Error(t, err)
}

func TestNewBattle_PopulatesDefaultWorld(t *testing.T) {
	b := newTestBattle(t, DefaultConfig())

	s := b.Snapshot()
	assert.Len(t, s.Agents, 2)
	// 3 pads, 6 vehicles, 2 turrets, 3 bunkers, 2 chains, 2 balloons, 3 clouds, 2 terrain
	assert.Len(t, s.Bodies, 23)
	assert.Equal(t, 1, s.BlueHelicopters)
	assert.Equal(t, 1, s.RedHelicopters)
	assert.Len(t, b.registry.Pads(), 3)

	for _, balloon := range unitsOf(b, behavior.KindBalloon) {
		anchor, ok := b.registry.Lookup(balloon.body.Tether.Anchor)
		require.True(t, ok)
		assert.Equal(t, behavior.KindBunker, anchor.Kind)
		assert.Equal(t, balloon.body.Tether, anchor.Tether)
	}

	blue, ok := b.Pilot("blue-1")
	require.True(t, ok)
	assert.Equal(t, behavior.TeamBlue, blue.Agent().Team)
	assert.Equal(t, 0, blue.Agent().Missiles, "gun carriers get no missiles")
	red, _ := b.Pilot("red-1")
	assert.Equal(t, 4, red.Agent().Missiles)
	assert.True(t, red.Agent().Flipped, "red starts facing left")
}

func TestBattle_SameSeedSameBattle(t *testing.T) {
	run := func() *Snapshot {
		b := newTestBattle(t, DefaultConfig())
		b.Run(900)
		s := b.Snapshot()
		s.BattleID = ""
		return s
	}
	assert.Equal(t, run(), run())
}

func TestBattle_StopsAtMaxTicks(t *testing.T) {
	cfg := duel()
	cfg.MaxTicks = 5
	b := newTestBattle(t, cfg)

	b.Run(100)
	assert.Equal(t, uint64(5), b.Tick())
	assert.True(t, b.Over())
	assert.Equal(t, behavior.TeamNeutral, b.Winner())

	b.Step()
	assert.Equal(t, uint64(5), b.Tick(), "a finished battle does not advance")
}

func TestBattle_GunfireHitsEnemyOnly(t *testing.T) {
	b := newTestBattle(t, duel())
	red := b.craftByID("red-1")
	blue := b.craftByID("blue-1")

	hostile := b.spawn(behavior.KindGunfire, behavior.TeamBlue, behavior.KindHelicopter, red.agent.Center(), geometry.Vector2D{})
	hostile.owner, hostile.damage = "blue-1", 4
	friendly := b.spawn(behavior.KindGunfire, behavior.TeamBlue, behavior.KindHelicopter, blue.agent.Center(), geometry.Vector2D{})
	friendly.owner, friendly.damage = "blue-1", 4

	b.collide()

	assert.Equal(t, 96.0, red.agent.Health)
	assert.True(t, hostile.body.Dead)
	assert.Equal(t, 100.0, blue.agent.Health)
	assert.False(t, friendly.body.Dead, "rounds pass through their own side")
}

func TestBattle_TerrainStopsRounds(t *testing.T) {
	cfg := duel()
	cfg.Terrain = []RectConfig{{X: 1000, Y: 300, W: 100, H: 100}}
	b := newTestBattle(t, cfg)

	round := b.spawn(behavior.KindGunfire, behavior.TeamRed, behavior.KindTurret, geometry.Vector2D{X: 1050, Y: 350}, geometry.Vector2D{})
	b.collide()
	assert.True(t, round.body.Dead)
}

func TestBattle_DestroyedBunkerFreesBalloon(t *testing.T) {
	cfg := duel()
	cfg.Bunkers = []BunkerConfig{{Team: "red", X: 2000, Balloon: true}}
	b := newTestBattle(t, cfg)

	anchor := unitsOf(b, behavior.KindBunker)[0]
	chain := unitsOf(b, behavior.KindChain)[0]
	balloon := unitsOf(b, behavior.KindBalloon)[0]
	top := balloon.body.Rect.Top()

	b.damage(anchor, 10)
	assert.False(t, anchor.body.Dead, "80 hit points")

	b.damage(anchor, 100)
	assert.True(t, anchor.body.Dead)
	assert.True(t, chain.body.Dead)
	assert.True(t, balloon.body.Tether.IsZero())

	b.integrate()
	assert.InDelta(t, top-balloonLift, balloon.body.Rect.Top(), 1e-9, "a freed balloon drifts up")

	b.reap()
	_, ok := b.registry.Lookup(anchor.body.ID)
	assert.False(t, ok)
	assert.Len(t, b.units, 1)
}

func TestBattle_LostBalloonKeepsBunker(t *testing.T) {
	cfg := duel()
	cfg.Bunkers = []BunkerConfig{{Team: "red", X: 2000, Balloon: true}}
	b := newTestBattle(t, cfg)

	anchor := unitsOf(b, behavior.KindBunker)[0]
	chain := unitsOf(b, behavior.KindChain)[0]
	balloon := unitsOf(b, behavior.KindBalloon)[0]

	b.damage(balloon, 10)
	assert.True(t, balloon.body.Dead)
	assert.True(t, chain.body.Dead)
	assert.False(t, anchor.body.Dead)
	assert.True(t, anchor.body.Tether.IsZero())
}

func TestBattle_TurretFiresAtEnemyInRange(t *testing.T) {
	cfg := duel()
	cfg.Helicopters[0].X, cfg.Helicopters[0].Y = 300, 200
	cfg.Turrets = []UnitConfig{{Team: "red", X: 300}, {Team: "blue", X: 320}}
	b := newTestBattle(t, cfg)

	b.fireWeapons()
	rounds := unitsOf(b, behavior.KindGunfire)
	require.Len(t, rounds, 1, "only the red turret has an enemy in range")
	assert.Equal(t, behavior.KindTurret, rounds[0].body.Source)
	assert.Equal(t, behavior.TeamRed, rounds[0].body.Team)
	assert.Less(t, rounds[0].body.Vel.Y, 0.0, "shooting up")
	assert.InDelta(t, cfg.Weapons.GunSpeed, rounds[0].body.Vel.Len(), 1e-9)

	b.fireWeapons()
	assert.Len(t, unitsOf(b, behavior.KindGunfire), 1, "turret is reloading")
}

func TestBattle_FireIntentSpawnsRounds(t *testing.T) {
	b := newTestBattle(t, duel())
	blue := b.craftByID("blue-1")
	blue.weapons.fire = true
	blue.weapons.bomb = true

	b.fireWeapons()
	assert.Len(t, unitsOf(b, behavior.KindGunfire), 1)
	assert.Len(t, unitsOf(b, behavior.KindBomb), 1)
	assert.Equal(t, 63, blue.agent.Ammo)
	assert.Equal(t, 5, blue.agent.Bombs)
	assert.Equal(t, uint64(6), blue.ready)
	assert.Equal(t, uint64(20), blue.bombAt)

	b.fireWeapons()
	assert.Len(t, unitsOf(b, behavior.KindGunfire), 1, "gun interval not elapsed")

	blue.weapons.fire = false
	b.tick = 6
	b.fireWeapons()
	assert.Len(t, unitsOf(b, behavior.KindGunfire), 1, "no intent, no round")
}

func TestBattle_MissileCarrierUsesGunOnNonHelicopters(t *testing.T) {
	b := newTestBattle(t, duel())
	red := b.craftByID("red-1")
	red.weapons.fire = true

	// no target held yet: missiles are kept for helicopters
	b.fireWeapons()
	assert.Len(t, unitsOf(b, behavior.KindSmartMissile), 0)
	assert.Len(t, unitsOf(b, behavior.KindGunfire), 1)
	assert.Equal(t, 4, red.agent.Missiles)
}

func TestBattle_DecoyDivertsMissile(t *testing.T) {
	cfg := duel()
	cfg.Bunkers = []BunkerConfig{{Team: "blue", X: 560, Balloon: true}}
	b := newTestBattle(t, cfg)
	blue := b.craftByID("blue-1")

	m := b.spawn(behavior.KindSmartMissile, behavior.TeamRed, behavior.KindMissileLauncher, geometry.Vector2D{X: 900, Y: 120}, geometry.Vector2D{X: -4})
	m.target = "blue-1"
	b.lockOn(m)
	require.True(t, blue.pilot.Chased())

	balloon := unitsOf(b, behavior.KindBalloon)[0]
	b.home()

	assert.True(t, m.offered)
	assert.Equal(t, balloon.body.ID, m.target)
	assert.False(t, blue.pilot.Chased())
	assert.Less(t, m.body.Vel.X, 0.0)
	assert.LessOrEqual(t, m.body.Vel.Len(), cfg.Weapons.MissileSpeed+1e-9)
}

func TestBattle_NoDecoyOutOfRange(t *testing.T) {
	cfg := duel()
	cfg.Bunkers = []BunkerConfig{{Team: "blue", X: 900, Balloon: true}}
	b := newTestBattle(t, cfg)
	blue := b.craftByID("blue-1")

	m := b.spawn(behavior.KindSmartMissile, behavior.TeamRed, behavior.KindMissileLauncher, geometry.Vector2D{X: 1200, Y: 120}, geometry.Vector2D{X: -4})
	m.target = "blue-1"
	b.lockOn(m)
	b.home()

	assert.Equal(t, behavior.ID("blue-1"), m.target)
	assert.True(t, blue.pilot.Chased())
}

func TestBattle_LandingAndResupply(t *testing.T) {
	cfg := duel()
	cfg.Pads = []UnitConfig{{Team: "blue", X: 200}}
	cfg.Helicopters[0].X, cfg.Helicopters[0].Y = 200, 384
	b := newTestBattle(t, cfg)

	blue := b.craftByID("blue-1")
	a := blue.agent
	a.Fuel, a.Ammo = 10, 0
	a.Vel = geometry.Vector2D{Y: 0.2}

	b.landAndResupply()
	assert.False(t, a.Landed, "only retreating craft land")

	blue.last.Mode = pilot.ModeRetreat
	b.landAndResupply()
	require.True(t, a.Landed)
	assert.Equal(t, 376.0, a.Rect.Y)
	assert.True(t, a.Vel.IsZero())
	assert.Equal(t, 10.0, a.Fuel, "nothing refilled on touchdown")

	for range 4 {
		b.landAndResupply()
	}
	assert.InDelta(t, 12.0, a.Fuel, 1e-9)
	assert.Equal(t, 1, a.Ammo)
	assert.Equal(t, 6, a.Bombs, "already full")
}

func TestBattle_EnemyPadIsNotUsed(t *testing.T) {
	cfg := duel()
	cfg.Pads = []UnitConfig{{Team: "red", X: 200}}
	cfg.Helicopters[0].X, cfg.Helicopters[0].Y = 200, 384
	b := newTestBattle(t, cfg)

	blue := b.craftByID("blue-1")
	blue.last.Mode = pilot.ModeRetreat
	b.landAndResupply()
	assert.False(t, blue.agent.Landed)
}

func TestBattle_EmptyTankDamages(t *testing.T) {
	b := newTestBattle(t, duel())
	a := b.craftByID("blue-1").agent
	a.Fuel = 0.005

	b.integrate()
	assert.Equal(t, 0.0, a.Fuel)
	assert.Equal(t, 99.0, a.Health)
}

func TestBattle_CraftStaysInsideWorld(t *testing.T) {
	cfg := duel()
	cfg.Helicopters[0].X, cfg.Helicopters[0].Y = 18, 9
	b := newTestBattle(t, cfg)
	a := b.craftByID("blue-1").agent
	a.Vel = geometry.Vector2D{X: -4, Y: -2}

	b.integrate()
	assert.Equal(t, 0.0, a.Rect.Left())
	assert.Equal(t, 0.0, a.Rect.Top())
	assert.True(t, a.Vel.IsZero())
}

func TestBattle_ShotDownEndsBattle(t *testing.T) {
	b := newTestBattle(t, duel())
	red := b.craftByID("red-1")
	red.agent.Health = 0

	b.reap()
	b.checkOver()

	assert.True(t, red.down)
	assert.True(t, b.Over())
	assert.Equal(t, behavior.TeamBlue, b.Winner())
	_, ok := b.registry.Lookup("red-1")
	assert.False(t, ok)

	s := b.Snapshot()
	assert.Equal(t, "blue", s.Winner)
	assert.Equal(t, 0, s.RedHelicopters)
}

func TestTicks(t *testing.T) {
	tests := []struct {
		d    time.Duration
		want uint64
	}{
		{0, 1},
		{TickDuration / 2, 1},
		{TickDuration, 1},
		{10 * TickDuration, 10},
		{time.Second, 60},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Ticks(tt.d), tt.d.String())
	}
}

func TestSnapshot_ToProto(t *testing.T) {
	cfg := duel()
	cfg.DisplayWhiskers = true
	b := newTestBattle(t, cfg)
	b.Run(3)

	st, err := b.Snapshot().ToProto()
	require.NoError(t, err)

	fields := st.GetFields()
	assert.Equal(t, 3.0, fields["tick"].GetNumberValue())
	agents := fields["agents"].GetListValue().GetValues()
	require.Len(t, agents, 2)
	first := agents[0].GetStructValue().GetFields()
	assert.Equal(t, "blue-1", first["id"].GetStringValue())
	assert.Len(t, first["whiskers"].GetListValue().GetValues(), int(behavior.NumWhiskers))
}

func BenchmarkBattle_Step(b *testing.B) {
	battle, err := NewBattle(DefaultConfig(), golog.DiscardLogger)
	if err != nil {
		b.Fatal(err)
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		battle.Step()
	}
}
