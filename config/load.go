package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// Load reads the runtime config file from configDir, sets defaults and overlays
// any tuning overrides onto Tuning.
func Load(configDir string) error {
	viper.SetDefault("logLevel", "info")
	viper.SetDefault("prettyLog", true)
	viper.SetDefault("tickRate", C.TickRate)
	viper.SetDefault("track", "assets/tracks/sandbox.tmx")
	viper.SetDefault("duration", "30s")
	viper.SetDefault("dataDir", "rallycore")
	viper.SetDefault("realtime", false)

	viper.SetDefault("race.mode", "race")
	viper.SetDefault("race.difficulty", "medium")
	viper.SetDefault("race.cpuCars", 3)
	viper.SetDefault("race.humanCars", 1)
	viper.SetDefault("race.laps", 3)

	viper.SetDefault("collision.maxCollisions", Collision.MaxCollisions)
	viper.SetDefault("collision.maxPasses", Collision.MaxPasses)

	viper.SetDefault("tuning.steeringResponsiveness", DefaultTuning.SteeringResponsiveness)
	viper.SetDefault("tuning.carMaxTightTurn", DefaultTuning.CarMaxTightTurn)
	viper.SetDefault("tuning.carTurningRadius", DefaultTuning.CarTurningRadius)
	viper.SetDefault("tuning.tireTraction", DefaultTuning.TireTraction)
	viper.SetDefault("tuning.tireFriction", DefaultTuning.TireFriction)
	viper.SetDefault("tuning.carGravity", DefaultTuning.CarGravity)
	viper.SetDefault("tuning.slopeRatioAdjuster", DefaultTuning.SlopeRatioAdjuster)

	viper.SetEnvPrefix("rally")
	viper.AutomaticEnv()

	viper.SetConfigName("rallycore")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(configDir)

	if err := viper.ReadInConfig(); err != nil {
		return fmt.Errorf("error reading config file: %w", err)
	}

	return Apply()
}

// Apply copies the values currently held by viper into the package tuning vars.
func Apply() error {
	if err := viper.UnmarshalKey("tuning", &Tuning); err != nil {
		return fmt.Errorf("decoding tuning: %w", err)
	}
	if n := viper.GetInt("collision.maxCollisions"); n > 0 {
		Collision.MaxCollisions = n
	}
	if n := viper.GetInt("collision.maxPasses"); n > 0 {
		Collision.MaxPasses = n
	}
	if n := viper.GetInt("tickRate"); n > 0 {
		C.TickRate = n
	}
	return nil
}

// GetString returns a string config value.
func GetString(key string) string {
	return viper.GetString(key)
}

// GetInt returns an int config value.
func GetInt(key string) int {
	return viper.GetInt(key)
}

// GetBool returns a bool config value.
func GetBool(key string) bool {
	return viper.GetBool(key)
}

// GetDuration returns a duration config value.
func GetDuration(key string) time.Duration {
	return viper.GetDuration(key)
}
