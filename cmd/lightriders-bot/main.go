package main

import (
	"flag"
	"io"
	"log"
	"os"

	"github.com/montplusa/light-riders-bot/pkg/config"
	"github.com/montplusa/light-riders-bot/pkg/game/debug"
	"github.com/montplusa/light-riders-bot/pkg/harness"
)

func main() {
	envFile := flag.String("env", "", ".env ファイル（省略時はカレントの .env）")
	engine := flag.String("engine", "", "学習エンジン（LR_ENGINE を上書き）")
	verbose := flag.Bool("debug", false, "stderr にデバッグ出力")
	flag.Parse()

	var files []string
	if *envFile != "" {
		files = append(files, *envFile)
	}
	cfg, err := config.Load(files...)
	if err != nil {
		log.Fatalf("設定の読み込みに失敗: %v", err)
	}
	if *engine != "" {
		cfg.Engine = *engine
	}
	debug.Enabled = cfg.Debug || *verbose

	// 価値と方策の表示はデバッグ時だけ stderr に出す
	var trace io.Writer
	if debug.Enabled {
		trace = os.Stderr
	}
	ai, err := config.NewAI(cfg, cfg.Rand(), trace)
	if err != nil {
		log.Fatalf("AI の作成に失敗: %v", err)
	}
	debug.Log("engine: %s", ai.Name())

	// 学習ライブラリの表示が手の出力に混ざらないよう、stdout は手専用にする
	moves := os.Stdout
	os.Stdout = os.Stderr
	if err := harness.Run(os.Stdin, moves, ai); err != nil {
		log.Fatalf("対戦エンジンとの通信に失敗: %v", err)
	}
}
