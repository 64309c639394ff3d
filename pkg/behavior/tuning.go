package behavior

// Tuning holds the force magnitudes and distances used by steering and avoidance.
// Most steering caps sit in the 0.1–0.3 range; delicate targets get less.
type Tuning struct {
	// Pursuit
	SeekForce         float64 `json:"seekForce"`
	CloudForce        float64 `json:"cloudForce"`
	BalloonForce      float64 `json:"balloonForce"`
	ArriveRadius      float64 `json:"arriveRadius"`
	SideGap           float64 `json:"sideGap"`
	BombReleaseHeight float64 `json:"bombReleaseHeight"` // above the world floor

	// Patrol
	PatrolForce     float64 `json:"patrolForce"`
	PatrolMargin    float64 `json:"patrolMargin"`
	WaveAmplitude   float64 `json:"waveAmplitude"`
	WaveFrequency   float64 `json:"waveFrequency"` // radians per tick
	AltitudeBiasMag float64 `json:"altitudeBiasMag"`

	// Landing
	LandingForce          float64 `json:"landingForce"`
	LandingApproachHeight float64 `json:"landingApproachHeight"`
	DescentMin            float64 `json:"descentMin"`
	DescentFloorVelocity  float64 `json:"descentFloorVelocity"`
	LandingBrake          float64 `json:"landingBrake"`

	// Obstacle avoidance
	AvoidForce    float64 `json:"avoidForce"`
	CompositeLift float64 `json:"compositeLift"`
	TooLowHeight  float64 `json:"tooLowHeight"` // above the world floor
	ImmediateBand float64 `json:"immediateBand"`
	ImpactBrake   float64 `json:"impactBrake"`
	WhiskerScale  float64 `json:"whiskerScale"`
	WhiskerMin    float64 `json:"whiskerMin"`
	WhiskerMax    float64 `json:"whiskerMax"`
	WhiskerSpread float64 `json:"whiskerSpread"` // degrees
	ProbeLength   float64 `json:"probeLength"`

	// Threat dodging
	DodgeForce       float64 `json:"dodgeForce"`
	TurretDodgeScale float64 `json:"turretDodgeScale"`
	CeilingBand      float64 `json:"ceilingBand"`
	RecedeBrake      float64 `json:"recedeBrake"`
}

// DefaultTuning returns the stock force table.
func DefaultTuning() Tuning {
	return Tuning{
		SeekForce:         0.3,
		CloudForce:        0.2,
		BalloonForce:      0.1,
		ArriveRadius:      96,
		SideGap:           24,
		BombReleaseHeight: 140,

		PatrolForce:     0.15,
		PatrolMargin:    96,
		WaveAmplitude:   0.025,
		WaveFrequency:   0.05,
		AltitudeBiasMag: 0.1,

		LandingForce:          0.15,
		LandingApproachHeight: 48,
		DescentMin:            0.03,
		DescentFloorVelocity:  0.5,
		LandingBrake:          0.25,

		AvoidForce:    0.2,
		CompositeLift: 2,
		TooLowHeight:  56,
		ImmediateBand: 4,
		ImpactBrake:   0.2,
		WhiskerScale:  12,
		WhiskerMin:    32,
		WhiskerMax:    96,
		WhiskerSpread: 40,
		ProbeLength:   40,

		DodgeForce:       0.2,
		TurretDodgeScale: 1.5,
		CeilingBand:      48,
		RecedeBrake:      0.05,
	}
}
