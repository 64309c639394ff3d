package simulation

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/hashicorp/go-multierror"
	"github.com/lao-tseu-is-alive/go-sky-pilot/pkg/behavior"
	"github.com/lao-tseu-is-alive/go-sky-pilot/pkg/pilot"
	"github.com/santhosh-tekuri/jsonschema/v5"
	"gopkg.in/yaml.v3"
)

//go:embed config.schema.json
var defaultSchema string

type Config struct {
	// World Dimensions
	WorldWidth  float64 `json:"worldWidth"`
	WorldHeight float64 `json:"worldHeight"`
	ViewWidth   float64 `json:"viewWidth"` // visible part of the world in the viewer

	// Seed drives every pilot's random draws; MaxTicks 0 runs until a side is wiped out.
	Seed     uint64 `json:"seed"`
	MaxTicks uint64 `json:"maxTicks"`

	// Population
	Helicopters []HelicopterConfig `json:"helicopters"`
	Vehicles    []UnitConfig       `json:"vehicles"`
	Bunkers     []BunkerConfig     `json:"bunkers"`
	Turrets     []UnitConfig       `json:"turrets"`
	Pads        []UnitConfig       `json:"pads"`
	Clouds      []CloudConfig      `json:"clouds"`
	Terrain     []RectConfig       `json:"terrain"`

	Craft   CraftConfig   `json:"craft"`
	Weapons WeaponsConfig `json:"weapons"`
	Pilot   pilot.Tuning  `json:"pilot"`

	DisplayWhiskers bool `json:"displayWhiskers"`
}

type HelicopterConfig struct {
	Name   string  `json:"name"`
	Team   string  `json:"team"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Weapon string  `json:"weapon"` // gun or missile
}

// UnitConfig places a ground unit or a landing pad on the floor.
type UnitConfig struct {
	Kind  string  `json:"kind,omitempty"` // vehicles only
	Team  string  `json:"team"`
	X     float64 `json:"x"`
	Speed float64 `json:"speed,omitempty"`
}

type BunkerConfig struct {
	Team    string  `json:"team"`
	X       float64 `json:"x"`
	Super   bool    `json:"super,omitempty"`
	Balloon bool    `json:"balloon,omitempty"` // tethers a balloon with a chain
}

type CloudConfig struct {
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
	W     float64 `json:"w"`
	H     float64 `json:"h"`
	Drift float64 `json:"drift,omitempty"`
}

type RectConfig struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	W float64 `json:"w"`
	H float64 `json:"h"`
}

// CraftConfig describes every helicopter of the battle.
type CraftConfig struct {
	Width       float64 `json:"width"`
	Height      float64 `json:"height"`
	MaxVelX     float64 `json:"maxVelX"`
	MaxVelY     float64 `json:"maxVelY"`
	MaxFuel     float64 `json:"maxFuel"`
	FuelBurn    float64 `json:"fuelBurn"` // per airborne tick
	MaxHealth   float64 `json:"maxHealth"`
	MaxAmmo     int     `json:"maxAmmo"`
	MaxBombs    int     `json:"maxBombs"`
	MaxMissiles int     `json:"maxMissiles"`

	// Resupply on a pad, per tick
	FuelRefill    float64 `json:"fuelRefill"`
	RepairRate    float64 `json:"repairRate"`
	RearmInterval uint64  `json:"rearmInterval"` // ticks per round of ammunition

	CrashDamage float64 `json:"crashDamage"` // per tick spent inside an obstacle
}

type WeaponsConfig struct {
	GunSpeed    float64 `json:"gunSpeed"`
	GunDamage   float64 `json:"gunDamage"`
	GunLife     uint64  `json:"gunLife"`
	GunInterval uint64  `json:"gunInterval"`

	BombGravity  float64 `json:"bombGravity"`
	BombDamage   float64 `json:"bombDamage"`
	BombInterval uint64  `json:"bombInterval"`

	MissileSpeed    float64 `json:"missileSpeed"`
	MissileTurn     float64 `json:"missileTurn"`
	MissileDamage   float64 `json:"missileDamage"`
	MissileLife     uint64  `json:"missileLife"`
	MissileInterval uint64  `json:"missileInterval"`

	LauncherRange    float64 `json:"launcherRange"`
	LauncherInterval uint64  `json:"launcherInterval"`
	TurretRange      float64 `json:"turretRange"`
	TurretInterval   uint64  `json:"turretInterval"`
}

func DefaultConfig() *Config {
	return &Config{
		WorldWidth:  4096,
		WorldHeight: 400,
		ViewWidth:   960,
		Seed:        1,
		MaxTicks:    0,
		Helicopters: []HelicopterConfig{
			{Name: "blue-1", Team: "blue", X: 240, Y: 120, Weapon: "gun"},
			{Name: "red-1", Team: "red", X: 3856, Y: 120, Weapon: "missile"},
		},
		Vehicles: []UnitConfig{
			{Kind: "tank", Team: "blue", X: 600, Speed: 0.4},
			{Kind: "van", Team: "blue", X: 900, Speed: 0.6},
			{Kind: "missile-launcher", Team: "blue", X: 1200, Speed: 0.3},
			{Kind: "tank", Team: "red", X: 3400, Speed: 0.4},
			{Kind: "van", Team: "red", X: 3100, Speed: 0.6},
			{Kind: "missile-launcher", Team: "red", X: 2800, Speed: 0.3},
		},
		Bunkers: []BunkerConfig{
			{Team: "blue", X: 1500, Balloon: true},
			{Team: "red", X: 2500, Balloon: true},
			{Team: "neutral", X: 2040, Super: true},
		},
		Turrets: []UnitConfig{
			{Team: "blue", X: 400},
			{Team: "red", X: 3650},
		},
		Pads: []UnitConfig{
			{Team: "blue", X: 200},
			{Team: "neutral", X: 2200},
			{Team: "red", X: 3820},
		},
		Clouds: []CloudConfig{
			{X: 700, Y: 40, W: 160, H: 48, Drift: 0.1},
			{X: 1900, Y: 70, W: 200, H: 56, Drift: -0.1},
			{X: 3000, Y: 30, W: 180, H: 48, Drift: 0.15},
		},
		Terrain: []RectConfig{
			{X: 1700, Y: 330, W: 120, H: 70},
			{X: 2300, Y: 310, W: 90, H: 90},
		},
		Craft: CraftConfig{
			Width:         32,
			Height:        16,
			MaxVelX:       4,
			MaxVelY:       2,
			MaxFuel:       100,
			FuelBurn:      0.01,
			MaxHealth:     100,
			MaxAmmo:       64,
			MaxBombs:      6,
			MaxMissiles:   4,
			FuelRefill:    0.5,
			RepairRate:    0.5,
			RearmInterval: 4,
			CrashDamage:   1,
		},
		Weapons: WeaponsConfig{
			GunSpeed:         8,
			GunDamage:        4,
			GunLife:          60,
			GunInterval:      6,
			BombGravity:      0.15,
			BombDamage:       40,
			BombInterval:     20,
			MissileSpeed:     4,
			MissileTurn:      0.25,
			MissileDamage:    35,
			MissileLife:      240,
			MissileInterval:  60,
			LauncherRange:    480,
			LauncherInterval: 300,
			TurretRange:      300,
			TurretInterval:   40,
		},
		Pilot:           pilot.DefaultTuning(),
		DisplayWhiskers: true,
	}
}

// LoadConfig loads configuration from a JSON or YAML file and validates it
// against the schema. An empty schemaFile selects the embedded schema.
// Fields missing from the file keep their default value.
func LoadConfig(configFile string, schemaFile string) (*Config, error) {
	// 1. Compile Schema
	var (
		sch *jsonschema.Schema
		err error
	)
	if schemaFile != "" {
		sch, err = jsonschema.Compile(schemaFile)
	} else {
		sch, err = jsonschema.CompileString("config.schema.json", defaultSchema)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to compile schema: %w", err)
	}

	// 2. Read Config File
	b, err := os.ReadFile(configFile)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	switch strings.ToLower(filepath.Ext(configFile)) {
	case ".yaml", ".yml":
		if b, err = yamlToJSON(b); err != nil {
			return nil, fmt.Errorf("failed to decode config yaml: %w", err)
		}
	}

	// 3. Validate
	var v interface{}
	if err := json.Unmarshal(b, &v); err != nil {
		return nil, fmt.Errorf("failed to decode config json: %w", err)
	}
	if err := sch.Validate(v); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	// 4. Unmarshal into Struct
	cfg := DefaultConfig()
	if err := json.Unmarshal(b, cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

func yamlToJSON(data []byte) ([]byte, error) {
	var raw interface{}
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, err
	}
	return json.Marshal(raw)
}

// Validate checks what the schema cannot: names that must resolve to teams,
// kinds and weapons, and positions that must fall inside the world.
// Every problem is reported, not only the first.
func (c *Config) Validate() error {
	var result *multierror.Error

	if c.WorldWidth <= 0 || c.WorldHeight <= 0 {
		result = multierror.Append(result, fmt.Errorf("world size %.0fx%.0f must be positive", c.WorldWidth, c.WorldHeight))
	}
	inside := func(what string, x float64) {
		if x < 0 || x > c.WorldWidth {
			result = multierror.Append(result, fmt.Errorf("%s: x=%.0f is outside the world", what, x))
		}
	}

	names := make(map[string]bool, len(c.Helicopters))
	for i, h := range c.Helicopters {
		what := fmt.Sprintf("helicopters[%d]", i)
		if h.Name == "" || names[h.Name] {
			result = multierror.Append(result, fmt.Errorf("%s: name %q is empty or duplicated", what, h.Name))
		}
		names[h.Name] = true
		if team, err := ParseTeam(h.Team); err != nil || team == behavior.TeamNeutral {
			result = multierror.Append(result, fmt.Errorf("%s: a helicopter needs blue or red team, got %q", what, h.Team))
		}
		if _, err := ParseWeapon(h.Weapon); err != nil {
			result = multierror.Append(result, fmt.Errorf("%s: %w", what, err))
		}
		inside(what, h.X)
	}

	for i, v := range c.Vehicles {
		what := fmt.Sprintf("vehicles[%d]", i)
		if kind, err := behavior.ParseKind(v.Kind); err != nil || !kind.IsGroundVehicle() {
			result = multierror.Append(result, fmt.Errorf("%s: %q is not a ground vehicle", what, v.Kind))
		}
		if _, err := ParseTeam(v.Team); err != nil {
			result = multierror.Append(result, fmt.Errorf("%s: %w", what, err))
		}
		inside(what, v.X)
	}

	units := map[string][]UnitConfig{"turrets": c.Turrets, "pads": c.Pads}
	for _, group := range []string{"turrets", "pads"} {
		for i, u := range units[group] {
			what := fmt.Sprintf("%s[%d]", group, i)
			if _, err := ParseTeam(u.Team); err != nil {
				result = multierror.Append(result, fmt.Errorf("%s: %w", what, err))
			}
			inside(what, u.X)
		}
	}

	for i, bk := range c.Bunkers {
		what := fmt.Sprintf("bunkers[%d]", i)
		if _, err := ParseTeam(bk.Team); err != nil {
			result = multierror.Append(result, fmt.Errorf("%s: %w", what, err))
		}
		inside(what, bk.X)
	}

	if c.Craft.Width <= 0 || c.Craft.Height <= 0 {
		result = multierror.Append(result, fmt.Errorf("craft size must be positive"))
	}
	if c.Craft.Height >= c.WorldHeight {
		result = multierror.Append(result, fmt.Errorf("craft height %.0f does not fit the world", c.Craft.Height))
	}

	return result.ErrorOrNil()
}

// ParseTeam maps a config team name to a Team.
func ParseTeam(s string) (behavior.Team, error) {
	switch strings.ToLower(s) {
	case "blue":
		return behavior.TeamBlue, nil
	case "red":
		return behavior.TeamRed, nil
	case "", "neutral":
		return behavior.TeamNeutral, nil
	default:
		return behavior.TeamNeutral, fmt.Errorf("unknown team %q", s)
	}
}

// ParseWeapon maps a config weapon name to a Weapon. Empty means gun.
func ParseWeapon(s string) (pilot.Weapon, error) {
	switch strings.ToLower(s) {
	case "", "gun":
		return pilot.WeaponGun, nil
	case "missile":
		return pilot.WeaponMissile, nil
	default:
		return pilot.WeaponGun, fmt.Errorf("unknown weapon %q", s)
	}
}
