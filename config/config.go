package config

import (
	"math"

	"github.com/yohamta/donburi/ecs"
)

// Default is the single render/update layer used by every archetype.
const Default ecs.LayerID = 0

// CollisionConfig contains detector and resolver limits
type CollisionConfig struct {
	MaxPasses     int     // Resolver passes per call
	MaxCollisions int     // Record buffer limit per resolver call
	SentinelSlot  int     // Scan stops at the first object at or past this slot
	Separation    float64 // Added to every penetration depth so boxes end up apart
}

// TuningConfig is the user-adjustable physics block. It is persisted with gdata
// and can be overridden from the runtime config file.
type TuningConfig struct {
	SteeringResponsiveness float64 `json:"steeringResponsiveness" mapstructure:"steeringResponsiveness"`
	CarMaxTightTurn        float64 `json:"carMaxTightTurn" mapstructure:"carMaxTightTurn"`
	CarTurningRadius       float64 `json:"carTurningRadius" mapstructure:"carTurningRadius"`
	TireTraction           float64 `json:"tireTraction" mapstructure:"tireTraction"`
	TireFriction           float64 `json:"tireFriction" mapstructure:"tireFriction"`
	CarGravity             float64 `json:"carGravity" mapstructure:"carGravity"`
	SlopeRatioAdjuster     float64 `json:"slopeRatioAdjuster" mapstructure:"slopeRatioAdjuster"`
}

// VehicleConfig contains land vehicle constants
type VehicleConfig struct {
	// Sub-stepping
	SubstepDistance float64 // Max travel per sub-step before another pass is added
	MaxSubsteps     int

	// Forces
	SlopeAccel         float64 // Scaled by cos(normal.y)
	SlopeFloorDistance float64 // Slope accel applies when this close to the floor
	FlatNormalY        float64 // Above this the ground counts as flat
	BrakeSlopeFactor   float64
	BrakeFriction      float64
	AmbientFriction    float64 // Rolling drag while grounded
	AirFriction        float64
	WaterFriction      float64
	PlaningGripScale   float64 // Traction/friction multiplier while planing
	PlaningHysteresis  float64 // Added to the enter angle to get the exit angle
	PlaningExitSpeed   float64 // Fraction of min planing speed below which planing ends
	LowSpeedBoost      float64
	LowSpeedThreshold  float64
	NitroThrust        float64
	CPUTweakPerPlace   float64 // Hard difficulty grip bonus per place behind the worst human

	// Speed caps
	WaterMaxSpeed    float64
	NitroMaxSpeed    float64
	PlaceSpeedTweak  float64
	CPUPlaceTweak    float64
	FlamingSpeedRate float64

	// Steering
	WaterTurnSpeed    float64
	WaterTraction     float64
	SteerResponseRate float64

	// Ground conformer
	MaxTilt              float64
	TiltDamping          float64
	PitchDip             float64
	RollDip              float64
	BounceSpeed          float64 // Above this 2D speed a ground hit bounces even on flat ground
	VerticalSpeedRatio   float64 // Cap on bounce vertical speed as a ratio of max speed
	SuspensionSpinLoss   float64
	HangTimeHeight       float64
	ThrowTime            float64 // Length of the throw animation
	TurnPoseThreshold    float64
	FallCueHeight        float64
	CrashThudSpeed       float64
	BumpSoundCooldown    float64
	ViscousFriction      float64
	Epsilon              float64
	NitroTime            float64
	MaxSpinRate          float64 // CPU brakes when spinning faster than this
	DefaultBottomOffset  float64
	DefaultHalfWidth     float64
	DefaultTopOffset     float64
	SpawnHeightAboveSoil float64
}

// StatsConfig maps 0..7 stat ratings onto tuning values
type StatsConfig struct {
	Scale float64 // Rating multiplier, 1/8

	MaxSpeedBase, MaxSpeedRange       float64
	AccelBase, AccelRange             float64
	TractionBase, TractionRange       float64
	PlaningAngleBase, PlaningAngleAdj float64
	PlaningSpeedBase, PlaningSpeedAdj float64
	SuspensionBase, SuspensionRange   float64
	AirFriction                       float64

	// Difficulty handicaps, indexed simplistic, easy, medium, hard
	TractionBonus   [4]float64
	CPUBonus        [4]float64 // Added to CPU acceleration and traction ratings
	SuspensionBonus [4]float64
	CPUSpeedScale   [4]float64
}

// PowerupConfig contains the trackside pickups that change a car's tune
type PowerupConfig struct {
	Rating          float64 // Traction or suspension rating a pad sets, before handicaps
	StickyTiresTime float64
	SuspensionTime  float64
	FlamingTime     float64
	AnnounceDelay   float64
}

// RulesConfig contains game-mode side effects of vehicle impacts
type RulesConfig struct {
	TagCooldown         float64
	SurvivalThreshold   float64
	SurvivalDamageScale float64 // Impact speed is divided by this
	ImpactResetTime     float64
	StartingHealth      float64

	KickDot       float64 // Below this dot the cars are thrown up
	KickScale     float64
	WreckSpeed    float64
	WreckSpin     float64
	WreckWobble   float64
	GreaseTime    float64
	AnnounceSpeed float64
	CrashSpeed    float64
	SparkRadius   float64
}

// SubmarineConfig contains submarine constants
type SubmarineConfig struct {
	TurnSpeed       float64
	MaxPitch        float64
	YawThreshold    float64
	MinHeight       float64 // Above terrain
	Band            float64 // Usable depth above MinHeight
	Friction        float64 // While immobilized
	ViscousFriction float64
	PlaceTweak      float64
	NitroRatio      float64
	MaxSpeed        float64
}

// SurfaceParams scale a vehicle's grip on a kind of ground
type SurfaceParams struct {
	Traction     float64
	Friction     float64
	Steering     float64
	Acceleration float64
}

// GroundConfig contains per-surface grip tables
type GroundConfig struct {
	Default SurfaceParams
	Water   SurfaceParams
	Ice     SurfaceParams
	Snow    SurfaceParams
}

// AvoidConfig tunes the CPU obstacle probe and path follower
type AvoidConfig struct {
	CellSize     int
	LookAhead    float64 // Seconds of travel the probe sweeps
	ConeAngle    float64
	WaypointNear float64

	StuckCheckTime float64 // How often a CPU car checks whether it is stuck
	StuckDistance  float64
	StuckWaterDist float64
	StuckSubDist   float64
	ReverseTime    float64
	PathTolerance  float64 // Steer only when the path is further off than this angle
	BrakeAngle     float64
	FastSpeed      float64 // Above this the CPU looks ahead for sharp turns
	FutureTime     float64
	CoastDot       float64
}

// DebugConfig contains debug viewer options
type DebugConfig struct {
	ShowBoxes       bool
	Scale           float64 // World units per pixel divisor
	FollowSmoothing float64
	ShakeIntensity  float64 // Pixels, on sparks
	ShakeFrames     int
}

type Config struct {
	Width    int
	Height   int
	TickRate int
}

var C *Config
var Collision CollisionConfig
var Tuning TuningConfig
var DefaultTuning TuningConfig
var Vehicle VehicleConfig
var Stats StatsConfig
var Rules RulesConfig
var Powerup PowerupConfig
var Submarine SubmarineConfig
var Ground GroundConfig
var Avoid AvoidConfig
var Debug DebugConfig

func init() {
	C = &Config{
		Width:    960,
		Height:   640,
		TickRate: 60,
	}

	Collision = CollisionConfig{
		MaxPasses:     3,
		MaxCollisions: 60,
		SentinelSlot:  1000,
		Separation:    1,
	}

	DefaultTuning = TuningConfig{
		SteeringResponsiveness: 7,
		CarMaxTightTurn:        2000,
		CarTurningRadius:       .0016,
		TireTraction:           .028,
		TireFriction:           10000,
		CarGravity:             6500,
		SlopeRatioAdjuster:     .7,
	}
	Tuning = DefaultTuning

	Vehicle = VehicleConfig{
		SubstepDistance: 40,
		MaxSubsteps:     8,

		SlopeAccel:         2500,
		SlopeFloorDistance: 40,
		FlatNormalY:        .95,
		BrakeSlopeFactor:   .6,
		BrakeFriction:      4000,
		AmbientFriction:    1100,
		AirFriction:        8,
		WaterFriction:      1600,
		PlaningGripScale:   .1,
		PlaningHysteresis:  .15,
		PlaningExitSpeed:   .8,
		LowSpeedBoost:      5000,
		LowSpeedThreshold:  400,
		NitroThrust:        7000,
		CPUTweakPerPlace:   .3,

		WaterMaxSpeed:    2000,
		NitroMaxSpeed:    7000,
		PlaceSpeedTweak:  170,
		CPUPlaceTweak:    200,
		FlamingSpeedRate: .5,

		WaterTurnSpeed:    1000,
		WaterTraction:     .3,
		SteerResponseRate: 15,

		MaxTilt:              math.Pi / 2.1,
		TiltDamping:          15,
		PitchDip:             .0013,
		RollDip:              .0005,
		BounceSpeed:          400,
		VerticalSpeedRatio:   1.1,
		SuspensionSpinLoss:   .4,
		HangTimeHeight:       250,
		ThrowTime:            .6,
		TurnPoseThreshold:    .1,
		FallCueHeight:        500,
		CrashThudSpeed:       2000,
		BumpSoundCooldown:    .5,
		ViscousFriction:      120,
		Epsilon:              .0001,
		NitroTime:            5,
		MaxSpinRate:          math.Pi,
		DefaultBottomOffset:  -78,
		DefaultHalfWidth:     120,
		DefaultTopOffset:     180,
		SpawnHeightAboveSoil: 100,
	}

	Stats = StatsConfig{
		Scale:            1.0 / 8.0,
		MaxSpeedBase:     3000,
		MaxSpeedRange:    3000,
		AccelBase:        2000,
		AccelRange:       4000,
		TractionBase:     .4,
		TractionRange:    .5,
		PlaningAngleBase: .6,
		PlaningAngleAdj:  .3,
		PlaningSpeedBase: 3000,
		PlaningSpeedAdj:  500,
		SuspensionBase:   .4,
		SuspensionRange:  .6,
		AirFriction:      8,

		TractionBonus:   [4]float64{.8, .5, .3, 0},
		CPUBonus:        [4]float64{0, 0, .05, .2},
		SuspensionBonus: [4]float64{.4, .4, 0, 0},
		CPUSpeedScale:   [4]float64{.7, 1, 1, 1},
	}

	Powerup = PowerupConfig{
		Rating:          3,
		StickyTiresTime: 20,
		SuspensionTime:  20,
		FlamingTime:     5,
		AnnounceDelay:   .5,
	}

	Rules = RulesConfig{
		TagCooldown:         3,
		SurvivalThreshold:   1400,
		SurvivalDamageScale: 25000,
		ImpactResetTime:     1.5,
		StartingHealth:      1,

		KickDot:       .2,
		KickScale:     .002,
		WreckSpeed:    1200,
		WreckSpin:     .1,
		WreckWobble:   3,
		GreaseTime:    .5,
		AnnounceSpeed: 3000,
		CrashSpeed:    500,
		SparkRadius:   300,
	}

	Submarine = SubmarineConfig{
		TurnSpeed:       math.Pi * .8,
		MaxPitch:        math.Pi / 3,
		YawThreshold:    .3,
		MinHeight:       200,
		Band:            6000,
		Friction:        3000,
		ViscousFriction: 120,
		PlaceTweak:      100,
		NitroRatio:      1.4,
		MaxSpeed:        4000,
	}

	Ground = GroundConfig{
		Default: SurfaceParams{Traction: 1, Friction: 1, Steering: 1, Acceleration: 1},
		Water:   SurfaceParams{Traction: .3, Friction: .3, Steering: .3, Acceleration: .5},
		Ice:     SurfaceParams{Traction: .05, Friction: .05, Steering: .2, Acceleration: .3},
		Snow:    SurfaceParams{Traction: .3, Friction: .5, Steering: .6, Acceleration: .7},
	}

	Avoid = AvoidConfig{
		CellSize:     256,
		LookAhead:    1,
		ConeAngle:    math.Pi / 10,
		WaypointNear: 600,

		StuckCheckTime: 1,
		StuckDistance:  80,
		StuckWaterDist: 40,
		StuckSubDist:   100,
		ReverseTime:    4,
		PathTolerance:  math.Pi / 14,
		BrakeAngle:     math.Pi / 3,
		FastSpeed:      2500,
		FutureTime:     .9,
		CoastDot:       .3,
	}

	Debug = DebugConfig{
		ShowBoxes:       true,
		Scale:           16,
		FollowSmoothing: .1,
		ShakeIntensity:  6,
		ShakeFrames:     12,
	}
}
