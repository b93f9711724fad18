package deepq

import (
	"bytes"
	"math/rand"
	"testing"

	randomai "github.com/montplusa/light-riders-bot/pkg/ai/random"
	"github.com/montplusa/light-riders-bot/pkg/game"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newVersus(t *testing.T, data string, rows, cols int, rng *rand.Rand) *game.Versus {
	t.Helper()
	v, err := game.NewVersus(data, rows, cols, "0", "1", rng)
	require.NoError(t, err)
	return v
}

func TestFeatures(t *testing.T) {
	v := newVersus(t, "0,.,.,.,x,.,.,.,1", 3, 3, rand.New(rand.NewSource(1)))
	x := Features(v)
	require.Len(t, x, FeatureSize)

	at := func(dr, dc int) float64 { return x[(dr+2)*windowSize+(dc+2)] }
	assert.Zero(t, at(0, 0))
	assert.Zero(t, at(0, 1))
	assert.Equal(t, 1.0, at(1, 1))
	assert.Equal(t, 1.0, at(-1, 0))
	assert.Equal(t, -1.0, at(2, 2))
	assert.Equal(t, 1.0, x[FeatureSize-2])
	assert.Equal(t, 1.0, x[FeatureSize-1])
}

func TestNormalizeFeature(t *testing.T) {
	assert.Equal(t, -1.0, normalizeFeature(0, 0, 10))
	assert.Equal(t, 1.0, normalizeFeature(10, 0, 10))
	assert.Equal(t, 0.0, normalizeFeature(5, 0, 10))
	assert.Equal(t, 1.0, normalizeFeature(50, 0, 10))
	assert.Equal(t, 0.0, normalizeFeature(3, 2, 2))
}

func TestExamplesUseDiscountedReturns(t *testing.T) {
	e := New(DefaultConfig(), DefaultNetworkConfig(), rand.New(rand.NewSource(1)))
	episode := []transition{
		{features: []float64{1}, values: []float64{0.1, 0.2, 0.3, 0.4}, action: game.Right, reward: -0.3},
		{features: []float64{2}, values: []float64{0.5, 0.6, 0.7, 0.8}, action: game.Up, reward: game.LoseReward},
	}
	ex := e.examples(episode)
	require.Len(t, ex, 2)

	assert.Equal(t, []float64{1}, ex[0].Input)
	assert.InDeltaSlice(t, []float64{0.1, 0.2, 0.3, (-0.3 + 0.9*game.LoseReward) / ReturnScale}, ex[0].Response, 1e-9)
	assert.InDeltaSlice(t, []float64{game.LoseReward / ReturnScale, 0.6, 0.7, 0.8}, ex[1].Response, 1e-9)
	// 予測値は書き換えない
	assert.Equal(t, 0.4, episode[0].values[game.Right])
}

func TestLearnAndBest(t *testing.T) {
	rng := rand.New(rand.NewSource(2))
	v := newVersus(t, "0,.,.,.,.,.,.,.,.,.,.,.,.,.,.,1", 4, 4, rng)
	cfg := DefaultConfig()
	cfg.Episodes = 5
	e := New(cfg, DefaultNetworkConfig(), rng)

	res := e.Learn(v)
	assert.Equal(t, 5, res.Episodes)
	assert.Len(t, res.Returns, 5)
	assert.Positive(t, res.Examples)
	assert.Len(t, e.Values(v), game.NumActions)
	assert.Contains(t, v.LegalActions(v.CurrentState()), e.Best(v))
}

func TestSaveLoadNetwork(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	v := newVersus(t, "0,.,.,.,.,.,.,.,1", 3, 3, rng)
	e := New(DefaultConfig(), DefaultNetworkConfig(), rng)

	var buf bytes.Buffer
	require.NoError(t, SaveNetwork(&buf, e.Network()))
	n, err := LoadNetwork(&buf)
	require.NoError(t, err)

	loaded := NewWithNetwork(DefaultConfig(), n, rng)
	assert.InDeltaSlice(t, e.Values(v), loaded.Values(v), 1e-9)

	_, err = LoadNetwork(bytes.NewBufferString("not json"))
	assert.Error(t, err)
}

func TestDeepQAI(t *testing.T) {
	rng := rand.New(rand.NewSource(4))
	cfg := DefaultConfig()
	cfg.Episodes = 3
	ai := NewAI(cfg, DefaultNetworkConfig(), rng)
	assert.Equal(t, "deepq (default)", ai.Name())

	turn := game.Turn{FieldData: "0,.,.,.,.,.,.,.,1", FieldHeight: 3, FieldWidth: 3, MyBotID: "0", OtherBotID: "1", Round: 1}
	a, err := ai.SelectMove(turn)
	require.NoError(t, err)
	assert.Contains(t, []game.Action{game.Down, game.Right}, a)

	ai.SetLearning(false)
	_, err = ai.SelectMove(turn)
	assert.NoError(t, err)

	_, err = ai.SelectMove(game.Turn{FieldData: "0,x,1", FieldHeight: 1, FieldWidth: 3, MyBotID: "0", OtherBotID: "1"})
	assert.ErrorIs(t, err, game.ErrUndecided)
}

func TestTrain(t *testing.T) {
	rng := rand.New(rand.NewSource(5))
	cfg := DefaultConfig()
	cfg.Episodes = 2
	ai := NewAI(cfg, DefaultNetworkConfig(), rng)

	var out bytes.Buffer
	stats, err := Train(ai, TrainingConfig{
		Matches:        2,
		ReportInterval: 1,
		Rows:           6,
		Cols:           6,
		OpponentAI:     randomai.New(rng),
		Out:            &out,
	}, rng)
	require.NoError(t, err)
	assert.Equal(t, 2, stats.Wins+stats.Losses+stats.Draws)
	assert.Contains(t, out.String(), "[2/2]")

	_, err = Train(ai, TrainingConfig{Matches: 1, OpponentAI: randomai.New(rng)}, rng)
	assert.Error(t, err)
}
