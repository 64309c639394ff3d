package pilot

import "github.com/lao-tseu-is-alive/go-sky-pilot/pkg/behavior"

// Tuning extends the steering table with the thresholds and ranges used to
// pick targets and decide engagements.
type Tuning struct {
	behavior.Tuning

	// Resupply thresholds
	FuelLow     float64 `json:"fuelLow"`
	HealthLow   float64 `json:"healthLow"` // ratio of MaxHealth
	AmmoLow     int     `json:"ammoLow"`
	BombsLow    int     `json:"bombsLow"`
	MissilesLow int     `json:"missilesLow"`
	// CoverHealth is the health ratio under which clouds are sought as cover.
	CoverHealth float64 `json:"coverHealth"`

	// Engagement gates. FireBandGun and FireBandGuided are the only vertical
	// bands; read them through FireBand.
	AlignGate      float64 `json:"alignGate"`
	FireBandGun    float64 `json:"fireBandGun"`
	FireBandGuided float64 `json:"fireBandGuided"`
	BombAlignGate  float64 `json:"bombAlignGate"`
	ClimbTolerance float64 `json:"climbTolerance"`

	// Query ranges
	TargetRange float64 `json:"targetRange"`
	CloudRange  float64 `json:"cloudRange"`
	BroadRange  float64 `json:"broadRange"`
	AvoidRange  float64 `json:"avoidRange"`
	ThreatRange float64 `json:"threatRange"`
	DecoyRange  float64 `json:"decoyRange"`

	// Personality
	RerollInterval   uint64  `json:"rerollInterval"` // ticks
	GroundHuntChance float64 `json:"groundHuntChance"`
	CloudHideChance  float64 `json:"cloudHideChance"`
}

// DefaultTuning returns the stock pilot table.
func DefaultTuning() Tuning {
	return Tuning{
		Tuning: behavior.DefaultTuning(),

		FuelLow:     20,
		HealthLow:   0.33,
		AmmoLow:     0,
		BombsLow:    0,
		MissilesLow: 0,
		CoverHealth: 0.66,

		AlignGate:      100,
		FireBandGun:    48,
		FireBandGuided: 24,
		BombAlignGate:  20,
		ClimbTolerance: 0.5,

		TargetRange: 640,
		CloudRange:  400,
		BroadRange:  4096,
		AvoidRange:  160,
		ThreatRange: 200,
		DecoyRange:  120,

		RerollInterval:   300,
		GroundHuntChance: 0.75,
		CloudHideChance:  0.3,
	}
}

// FireBand is the vertical tolerance for direct fire with w.
// Unguided rounds get the wider band.
func (t Tuning) FireBand(w Weapon) float64 {
	if w.Guided() {
		return t.FireBandGuided
	}
	return t.FireBandGun
}
