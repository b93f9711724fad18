package deepq

import (
	"fmt"
	"io"

	"github.com/montplusa/light-riders-bot/pkg/game"
	"github.com/patrikeh/go-deep"
)

// 自機を中心に見る範囲（一辺）
const windowSize = 5

// FeatureSize は特徴量の次元。窓内のセル + 相手との相対位置 2 つ
const FeatureSize = windowSize*windowSize + 2

// NetworkConfig は Q ネットワークの構成
type NetworkConfig struct {
	Name         string
	HiddenLayers []int
	Weights      [][][]float64 // nil なら乱数で初期化
}

func DefaultNetworkConfig() NetworkConfig {
	return NetworkConfig{
		Name:         "default",
		HiddenLayers: []int{32},
	}
}

// newNetwork は FeatureSize 入力、行動ごとの Q 値を出力する回帰ネットワークを作る
func newNetwork(cfg NetworkConfig) *deep.Neural {
	layout := append([]int{}, cfg.HiddenLayers...)
	layout = append(layout, game.NumActions)

	network := deep.NewNeural(&deep.Config{
		Inputs:     FeatureSize,
		Layout:     layout,
		Activation: deep.ActivationReLU,
		Mode:       deep.ModeRegression,
		Weight:     deep.NewNormal(0.1, 0.0),
		Bias:       true,
	})
	if cfg.Weights != nil {
		network.ApplyWeights(cfg.Weights)
	}
	return network
}

// SaveNetwork は重みを JSON で書き出す
func SaveNetwork(w io.Writer, n *deep.Neural) error {
	data, err := n.Marshal()
	if err != nil {
		return fmt.Errorf("marshal network: %w", err)
	}
	_, err = w.Write(data)
	return err
}

// LoadNetwork は SaveNetwork の出力を読み込む
func LoadNetwork(r io.Reader) (*deep.Neural, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	n, err := deep.Unmarshal(data)
	if err != nil {
		return nil, fmt.Errorf("unmarshal network: %w", err)
	}
	if n.Config.Inputs != FeatureSize || len(n.Layers) == 0 ||
		len(n.Layers[len(n.Layers)-1].Neurons) != game.NumActions {
		return nil, fmt.Errorf("network shape does not match %d inputs / %d outputs", FeatureSize, game.NumActions)
	}
	return n, nil
}

// 特徴量を [-1, 1] に正規化
func normalizeFeature(value, min, max float64) float64 {
	if max == min {
		return 0.0
	}
	normalized := 2.0*(value-min)/(max-min) - 1.0
	if normalized < -1.0 {
		return -1.0
	}
	if normalized > 1.0 {
		return 1.0
	}
	return normalized
}

// Features は自機中心の 5x5 窓（空き 0、壁・盤外 1、相手 -1）に
// 相手との相対位置を加えた特徴量を返す
func Features(env *game.Versus) []float64 {
	f := env.Field()
	self := env.CurrentState()
	opp := env.OpponentState()
	features := make([]float64, FeatureSize)

	idx := 0
	half := windowSize / 2
	for dr := -half; dr <= half; dr++ {
		for dc := -half; dc <= half; dc++ {
			s := game.State{Row: self.Row + dr, Col: self.Col + dc}
			switch {
			case s == opp:
				features[idx] = -1
			case f.IsOutside(s) || f.At(s) != game.EmptyToken:
				features[idx] = 1
			}
			idx++
		}
	}
	// 自機のセルは自分のトークンなので空き扱いに戻す
	features[half*windowSize+half] = 0

	features[idx] = normalizeFeature(float64(opp.Row-self.Row), float64(-f.Rows+1), float64(f.Rows-1))
	idx++
	features[idx] = normalizeFeature(float64(opp.Col-self.Col), float64(-f.Cols+1), float64(f.Cols-1))
	return features
}
