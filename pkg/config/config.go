package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/montplusa/light-riders-bot/pkg/ai/deepq"
	"github.com/montplusa/light-riders-bot/pkg/ai/montecarlo"
	"github.com/montplusa/light-riders-bot/pkg/ai/qlearning"
	"github.com/montplusa/light-riders-bot/pkg/ai/valueiter"
)

// Engine names accepted in LR_ENGINE.
const (
	EngineValueIter  = "valueiter"
	EngineQLearning  = "qlearning"
	EngineMonteCarlo = "montecarlo"
	EngineDeepQ      = "deepq"
	EngineRandom     = "random"
	EngineTerritory  = "territory"
	EngineTrivial    = "trivial"
)

var ErrUnknownEngine = errors.New("unknown engine")

// Config holds the bot's configuration values.
type Config struct {
	Engine string // Learning engine used by the bot
	Seed   int64  // Seed of the random source, 0 means time based
	Debug  bool   // Enables debug.Log output on stderr
	Color  bool   // Coloured value/policy printing

	ValueIter  valueiter.Config
	QLearning  qlearning.Config
	MonteCarlo montecarlo.Config
	DeepQ      deepq.Config
}

// Default returns the configuration used when no variable is set.
func Default() Config {
	return Config{
		Engine:     EngineValueIter,
		ValueIter:  valueiter.DefaultConfig(),
		QLearning:  qlearning.DefaultConfig(),
		MonteCarlo: montecarlo.DefaultConfig(),
		DeepQ:      deepq.DefaultConfig(),
	}
}

// Load reads .env files (or ".env" when none is given) and then the LR_*
// environment variables on top of Default.
func Load(files ...string) (Config, error) {
	if len(files) == 0 {
		// .env は任意
		if err := godotenv.Load(); err != nil {
			log.Printf("[CONFIG] [INFO] .env file not found or could not be loaded: %v", err)
		}
	} else if err := godotenv.Load(files...); err != nil {
		return Config{}, fmt.Errorf("load env files %v: %w", files, err)
	}
	return FromEnv()
}

// FromEnv reads the LR_* environment variables on top of Default.
func FromEnv() (Config, error) {
	cfg := Default()
	r := &envReader{}

	cfg.Engine = strings.ToLower(getEnvWithDefault("LR_ENGINE", cfg.Engine))
	r.int64("LR_SEED", &cfg.Seed)
	r.bool("LR_DEBUG", &cfg.Debug)
	r.bool("LR_COLOR", &cfg.Color)

	r.float("LR_VI_GAMMA", &cfg.ValueIter.Gamma)
	r.float("LR_VI_EVAL_GAMMA", &cfg.ValueIter.EvaluationGamma)
	r.float("LR_VI_THRESHOLD", &cfg.ValueIter.Threshold)
	r.int("LR_VI_SWEEPS", &cfg.ValueIter.MaxSweeps)

	r.float("LR_Q_GAMMA", &cfg.QLearning.Gamma)
	r.float("LR_Q_ALPHA", &cfg.QLearning.Alpha)
	r.int("LR_Q_EPISODE_CAP", &cfg.QLearning.EpisodeCap)

	r.float("LR_MC_GAMMA", &cfg.MonteCarlo.Gamma)
	r.float("LR_MC_EPSILON", &cfg.MonteCarlo.Epsilon)
	r.int("LR_MC_EPISODES", &cfg.MonteCarlo.Episodes)

	r.int("LR_DEEPQ_EPISODES", &cfg.DeepQ.Episodes)
	r.float("LR_DEEPQ_LR", &cfg.DeepQ.LearningRate)

	if r.err != nil {
		return Config{}, r.err
	}
	if !IsEngine(cfg.Engine) {
		return Config{}, fmt.Errorf("LR_ENGINE=%q: %w", cfg.Engine, ErrUnknownEngine)
	}
	return cfg, nil
}

// envReader keeps the first parse error; later reads are skipped.
type envReader struct {
	err error
}

func (r *envReader) int(key string, v *int) {
	if r.err == nil {
		*v, r.err = getEnvAsInt(key, *v)
	}
}

func (r *envReader) int64(key string, v *int64) {
	if r.err == nil {
		*v, r.err = getEnvAsInt64(key, *v)
	}
}

func (r *envReader) float(key string, v *float64) {
	if r.err == nil {
		*v, r.err = getEnvAsFloat(key, *v)
	}
}

func (r *envReader) bool(key string, v *bool) {
	if r.err == nil {
		*v, r.err = getEnvAsBool(key, *v)
	}
}

// IsEngine reports whether name is a known engine.
func IsEngine(name string) bool {
	switch name {
	case EngineValueIter, EngineQLearning, EngineMonteCarlo, EngineDeepQ,
		EngineRandom, EngineTerritory, EngineTrivial:
		return true
	}
	return false
}

// getEnvWithDefault retrieves the value of an environment variable or returns a default value if not set.
func getEnvWithDefault(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) (int, error) {
	valueStr, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue, nil
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return 0, fmt.Errorf("environment variable %s must be an integer: %w", key, err)
	}
	return value, nil
}

func getEnvAsInt64(key string, defaultValue int64) (int64, error) {
	valueStr, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue, nil
	}
	value, err := strconv.ParseInt(valueStr, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("environment variable %s must be an integer: %w", key, err)
	}
	return value, nil
}

func getEnvAsFloat(key string, defaultValue float64) (float64, error) {
	valueStr, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue, nil
	}
	value, err := strconv.ParseFloat(valueStr, 64)
	if err != nil {
		return 0, fmt.Errorf("environment variable %s must be a number: %w", key, err)
	}
	return value, nil
}

func getEnvAsBool(key string, defaultValue bool) (bool, error) {
	valueStr, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue, nil
	}
	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		return false, fmt.Errorf("environment variable %s must be a boolean: %w", key, err)
	}
	return value, nil
}
