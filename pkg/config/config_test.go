package config

import (
	"math/rand"
	"os"
	"path/filepath"
	"testing"

	"github.com/montplusa/light-riders-bot/pkg/game"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromEnvDefaults(t *testing.T) {
	cfg, err := FromEnv()
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
	assert.Equal(t, EngineValueIter, cfg.Engine)
	assert.Equal(t, 0.9, cfg.ValueIter.Gamma)
	assert.Equal(t, 1.0, cfg.ValueIter.EvaluationGamma)
	assert.Equal(t, 5, cfg.ValueIter.MaxSweeps)
	assert.Equal(t, 25, cfg.QLearning.EpisodeCap)
	assert.Equal(t, 30, cfg.MonteCarlo.Episodes)
}

func TestFromEnvOverrides(t *testing.T) {
	t.Setenv("LR_ENGINE", "QLearning")
	t.Setenv("LR_SEED", "42")
	t.Setenv("LR_DEBUG", "true")
	t.Setenv("LR_VI_SWEEPS", "8")
	t.Setenv("LR_Q_ALPHA", "0.25")
	t.Setenv("LR_MC_EPSILON", "0.1")
	t.Setenv("LR_DEEPQ_EPISODES", "4")

	cfg, err := FromEnv()
	require.NoError(t, err)
	assert.Equal(t, EngineQLearning, cfg.Engine)
	assert.Equal(t, int64(42), cfg.Seed)
	assert.True(t, cfg.Debug)
	assert.Equal(t, 8, cfg.ValueIter.MaxSweeps)
	assert.Equal(t, 0.25, cfg.QLearning.Alpha)
	assert.Equal(t, 0.1, cfg.MonteCarlo.Epsilon)
	assert.Equal(t, 4, cfg.DeepQ.Episodes)
}

func TestFromEnvErrors(t *testing.T) {
	t.Run("bad number", func(t *testing.T) {
		t.Setenv("LR_Q_GAMMA", "high")
		_, err := FromEnv()
		assert.ErrorContains(t, err, "LR_Q_GAMMA")
	})

	t.Run("unknown engine", func(t *testing.T) {
		t.Setenv("LR_ENGINE", "alphazero")
		_, err := FromEnv()
		assert.ErrorIs(t, err, ErrUnknownEngine)
	})
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bot.env")
	require.NoError(t, os.WriteFile(path, []byte("LR_ENGINE=montecarlo\nLR_MC_EPISODES=12\n"), 0644))
	// Load が設定した変数はテスト後に元に戻す
	t.Setenv("LR_ENGINE", "")
	t.Setenv("LR_MC_EPISODES", "")
	os.Unsetenv("LR_ENGINE")
	os.Unsetenv("LR_MC_EPISODES")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, EngineMonteCarlo, cfg.Engine)
	assert.Equal(t, 12, cfg.MonteCarlo.Episodes)

	_, err = Load(filepath.Join(t.TempDir(), "missing.env"))
	assert.Error(t, err)
}

func TestNewAI(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	cfg := Default()
	for _, name := range []string{EngineValueIter, EngineQLearning, EngineMonteCarlo, EngineDeepQ, EngineRandom, EngineTerritory, EngineTrivial} {
		t.Run(name, func(t *testing.T) {
			cfg.Engine = name
			ai, err := NewAI(cfg, rng, nil)
			require.NoError(t, err)
			assert.Contains(t, ai.Name(), name)

			_, err = ai.SelectMove(game.Turn{
				FieldData: "0,.,.,.,.,.,.,.,1", FieldHeight: 3, FieldWidth: 3,
				MyBotID: "0", OtherBotID: "1", Round: 2,
			})
			assert.NoError(t, err)
		})
	}

	_, err := NewNamedAI("nope", cfg, rng, nil)
	assert.ErrorIs(t, err, ErrUnknownEngine)
}

func TestRandSeed(t *testing.T) {
	cfg := Default()
	cfg.Seed = 9
	assert.Equal(t, cfg.Rand().Int63(), cfg.Rand().Int63())
}
