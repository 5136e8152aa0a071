package bot

// PushParams tunes how a bot shoves nearby racers
type PushParams struct {
	Enabled  bool    `mapstructure:"enabled"`
	Radius   float64 `mapstructure:"radius" validate:"gte=0"`
	Force    float64 `mapstructure:"force" validate:"gte=0"`
	Duration float64 `mapstructure:"duration" validate:"gte=0"`
	Cooldown float64 `mapstructure:"cooldown" validate:"gte=0"`
	Chance   float64 `mapstructure:"chance" validate:"gte=0,lte=1"`
}

// Params is the per-bot personality and steering tuning. A Params value is
// read only once a navigator uses it.
type Params struct {
	// personality
	BaseSpeedMul float64 `mapstructure:"baseSpeedMul" validate:"gte=0.7,lte=1.3"`
	Aggression   float64 `mapstructure:"aggression" validate:"gte=0,lte=1"`

	// lanes
	MaxLaneOffset         float64 `mapstructure:"maxLaneOffset" validate:"gte=0"`
	LaneRepickIntervalMin float64 `mapstructure:"laneRepickIntervalMin" validate:"gte=0"`
	LaneRepickIntervalMax float64 `mapstructure:"laneRepickIntervalMax" validate:"gtefield=LaneRepickIntervalMin"`

	// steering
	LookAhead              float64 `mapstructure:"lookAhead" validate:"gt=0"`
	TurnSlowdownAngle      float64 `mapstructure:"turnSlowdownAngle" validate:"gte=0,lt=120"`
	MinSpeedMulOnSharpTurn float64 `mapstructure:"minSpeedMulOnSharpTurn" validate:"gte=0,lte=1"`
	TurnResponsiveness     float64 `mapstructure:"turnResponsiveness" validate:"gt=0"`

	// crowd
	SeparationRadius   float64   `mapstructure:"separationRadius" validate:"gte=0"`
	SeparationStrength float64   `mapstructure:"separationStrength" validate:"gte=0"`
	AvoidRayLength     float64   `mapstructure:"avoidRayLength" validate:"gte=0"`
	AvoidStrength      float64   `mapstructure:"avoidStrength" validate:"gte=0"`
	AgentsMask         LayerMask `mapstructure:"agentsMask"`

	// stuck handling
	RepathIfStuckTime float64 `mapstructure:"repathIfStuckTime" validate:"gt=0"`
	StuckDistanceEps  float64 `mapstructure:"stuckDistanceEps" validate:"gte=0"`

	// jumping
	JumpCooldown    float64 `mapstructure:"jumpCooldown" validate:"gte=0"`
	AssistDuration  float64 `mapstructure:"assistDuration" validate:"gte=0"`
	PostJumpMinHold float64 `mapstructure:"postJumpMinHold" validate:"gte=0"`

	// edge guard
	GroundMask        LayerMask `mapstructure:"groundMask"`
	EdgeProbeAhead    float64   `mapstructure:"edgeProbeAhead" validate:"gte=0.1"`
	EdgeProbeSide     float64   `mapstructure:"edgeProbeSide" validate:"gte=0.05"`
	EdgeProbeDown     float64   `mapstructure:"edgeProbeDown" validate:"gte=0.1"`
	EdgeAvoidStrength float64   `mapstructure:"edgeAvoidStrength" validate:"gte=0,lte=5"`

	Push PushParams `mapstructure:"push"`
}

// DefaultParams a middle of the pack bot
func DefaultParams() *Params {
	return &Params{
		BaseSpeedMul: 1,
		Aggression:   0.5,

		MaxLaneOffset:         1,
		LaneRepickIntervalMin: 2,
		LaneRepickIntervalMax: 5,

		LookAhead:              2,
		TurnSlowdownAngle:      45,
		MinSpeedMulOnSharpTurn: 0.6,
		TurnResponsiveness:     6,

		SeparationRadius:   2,
		SeparationStrength: 1,
		AvoidRayLength:     2.5,
		AvoidStrength:      1.2,
		AgentsMask:         AllLayers,

		RepathIfStuckTime: 2,
		StuckDistanceEps:  0.2,

		JumpCooldown:    0.4,
		AssistDuration:  0.2,
		PostJumpMinHold: 0.12,

		GroundMask:        AllLayers,
		EdgeProbeAhead:    1.4,
		EdgeProbeSide:     0.7,
		EdgeProbeDown:     3,
		EdgeAvoidStrength: 2.2,

		Push: PushParams{
			Radius:   1.6,
			Force:    6,
			Duration: 0.35,
			Cooldown: 2.5,
			Chance:   0.35,
		},
	}
}

// Clone a copy safe to tweak
func (p *Params) Clone() *Params {
	c := *p
	return &c
}

// groundMask maps the empty mask to every layer
func (p *Params) groundMask() LayerMask {
	if p.GroundMask == 0 {
		return AllLayers
	}
	return p.GroundMask
}
