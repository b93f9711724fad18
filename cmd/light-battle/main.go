//go:build js && wasm
// +build js,wasm

package main

import (
	"encoding/json"
	"math/rand"
	"syscall/js"
	"time"

	"github.com/montplusa/light-riders-bot/pkg/config"
	"github.com/montplusa/light-riders-bot/pkg/game"
)

// runBattle(p0, p1) はエンジン名 2 つで 1 試合を行い、結果を JSON で返す
func runBattle(this js.Value, args []js.Value) interface{} {
	engines := [2]string{config.EngineTerritory, config.EngineQLearning}
	for i := 0; i < len(args) && i < 2; i++ {
		if args[i].Type() == js.TypeString {
			engines[i] = args[i].String()
		}
	}

	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	cfg := config.Default()
	var agents [2]game.AI
	for p := range agents {
		ai, err := config.NewNamedAI(engines[p], cfg, rng, nil)
		if err != nil {
			return map[string]interface{}{"error": err.Error()}
		}
		agents[p] = ai
	}

	result := game.NewGameRunner(agents[0], agents[1], rng).Run()

	b, err := json.Marshal(result)
	if err != nil {
		return map[string]interface{}{"error": err.Error()}
	}
	return string(b)
}

func main() {
	js.Global().Set("runBattle", js.FuncOf(runBattle))
	select {} // ブロック
}
