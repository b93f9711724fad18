package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/montplusa/light-riders-bot/pkg/ai/deepq"
	"github.com/montplusa/light-riders-bot/pkg/config"
	"github.com/montplusa/light-riders-bot/pkg/game"
	"github.com/montplusa/light-riders-bot/pkg/game/debug"
)

func main() {
	matches := flag.Int("matches", 100, "Number of training matches")
	reportInterval := flag.Int("report", 10, "Report progress every N matches")
	opponent := flag.String("opponent", config.EngineRandom, "Opponent engine")
	boardSize := flag.Int("board", game.DefaultBoardSize, "Board size (smaller is faster)")
	episodes := flag.Int("episodes", 0, "Episodes per turn (0 keeps LR_DEEPQ_EPISODES)")
	learningRate := flag.Float64("lr", 0, "Learning rate (0 keeps LR_DEEPQ_LR)")
	hidden := flag.Int("hidden", 32, "Hidden layer width")
	weights := flag.String("weights", "", "Load initial weights from this file")
	out := flag.String("out", "", "Save trained weights to this file")
	verbose := flag.Bool("debug", false, "Debug output")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	debug.Enabled = cfg.Debug || *verbose
	if *episodes > 0 {
		cfg.DeepQ.Episodes = *episodes
	}
	if *learningRate > 0 {
		cfg.DeepQ.LearningRate = *learningRate
	}
	rng := cfg.Rand()

	var engine *deepq.Engine
	name := "trained"
	if *weights != "" {
		f, err := os.Open(*weights)
		if err != nil {
			log.Fatalf("Failed to open weights: %v", err)
		}
		network, err := deepq.LoadNetwork(f)
		f.Close()
		if err != nil {
			log.Fatalf("Failed to load weights: %v", err)
		}
		engine = deepq.NewWithNetwork(cfg.DeepQ, network, rng)
		name = *weights
	} else {
		nc := deepq.DefaultNetworkConfig()
		nc.Name = name
		nc.HiddenLayers = []int{*hidden}
		engine = deepq.New(cfg.DeepQ, nc, rng)
	}
	ai := deepq.NewAIWithEngine(engine, name, rng)

	op, err := config.NewNamedAI(*opponent, cfg, rng, nil)
	if err != nil {
		log.Fatalf("Failed to create opponent: %v", err)
	}

	fmt.Println("Starting training...")
	stats, err := deepq.Train(ai, deepq.TrainingConfig{
		Matches:        *matches,
		ReportInterval: *reportInterval,
		Rows:           *boardSize,
		Cols:           *boardSize,
		OpponentAI:     op,
		Out:            os.Stdout,
	}, rng)
	if err != nil {
		log.Fatalf("Training failed: %v", err)
	}
	fmt.Printf("Final win rate: %.1f%% (W:%d L:%d D:%d)\n", stats.WinRate(), stats.Wins, stats.Losses, stats.Draws)

	if *out != "" {
		f, err := os.Create(*out)
		if err != nil {
			log.Fatalf("Failed to create %s: %v", *out, err)
		}
		defer f.Close()
		if err := deepq.SaveNetwork(f, engine.Network()); err != nil {
			log.Fatalf("Failed to save weights: %v", err)
		}
		fmt.Println("Weights saved to:", *out)
	}
}
