package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"regexp"
	"runtime"
	"strconv"
	"sync"
	"time"

	"github.com/montplusa/light-riders-bot/pkg/config"
	"github.com/montplusa/light-riders-bot/pkg/game"
	"github.com/montplusa/light-riders-bot/pkg/game/debug"
	"github.com/montplusa/light-riders-bot/pkg/render"
)

// 指定されたディレクトリ内の同じプレフィックスを持つファイルの最大連番を取得する
func findMaxSequenceNumber(dir, prefix string) (int, error) {
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		return 0, nil
	}

	files, err := os.ReadDir(dir)
	if err != nil {
		return 0, err
	}

	// プレフィックス_NNNNN.json
	pattern := regexp.MustCompile(fmt.Sprintf(`^%s_(\d{5})\.json$`, regexp.QuoteMeta(prefix)))
	maxSeq := 0
	for _, file := range files {
		if file.IsDir() {
			continue
		}
		matches := pattern.FindStringSubmatch(file.Name())
		if len(matches) != 2 {
			continue
		}
		if seq, err := strconv.Atoi(matches[1]); err == nil && seq > maxSeq {
			maxSeq = seq
		}
	}
	return maxSeq, nil
}

type battleTask struct {
	gameIndex int
	seqNum    int
	seed      int64
}

type options struct {
	cfg          config.Config
	engines      [2]string
	rows, cols   int
	outputDir    string
	outputPrefix string
	noOutput     bool
}

// ワーカーごとに AI と乱数を作るので共有状態はない
func worker(id int, opts options, tasks <-chan battleTask, results chan<- game.BattleResult, wg *sync.WaitGroup) {
	defer wg.Done()

	for task := range tasks {
		rng := rand.New(rand.NewSource(task.seed))
		var agents [2]game.AI
		for p := range agents {
			ai, err := config.NewNamedAI(opts.engines[p], opts.cfg, rng, nil)
			if err != nil {
				fmt.Printf("エラー: AI の作成に失敗しました: %v\n", err)
				os.Exit(1)
			}
			agents[p] = ai
		}

		result := game.NewGameRunner(agents[0], agents[1], rng).WithBoard(opts.rows, opts.cols).Run()

		if !opts.noOutput {
			jsonData, err := json.Marshal(result)
			if err != nil {
				fmt.Printf("エラー: JSONの変換に失敗しました: %v\n", err)
			} else {
				filename := filepath.Join(opts.outputDir, fmt.Sprintf("%s_%05d.json", opts.outputPrefix, task.seqNum))
				if err := os.WriteFile(filename, jsonData, 0644); err != nil {
					fmt.Printf("エラー: ファイルの書き込みに失敗しました: %v\n", err)
				}
			}
		}

		results <- result
		fmt.Printf("対戦 %d が完了しました（ワーカー %d, %d 手, 勝者 %d）\n", task.gameIndex, id, len(result.Moves), result.Winner)
	}
}

func main() {
	outputDir := flag.String("output", "output", "出力ディレクトリ名")
	outputPrefix := flag.String("output-prefix", "", "出力ファイル名のプレフィックス")
	noOutput := flag.Bool("no-output", false, "出力しない")
	games := flag.Int("games", 1, "実行する試合数")
	numWorkers := flag.Int("workers", runtime.NumCPU(), "ワーカー数")
	p0 := flag.String("p0", config.EngineTerritory, "プレイヤー0 のエンジン")
	p1 := flag.String("p1", config.EngineRandom, "プレイヤー1 のエンジン")
	size := flag.Int("board", game.DefaultBoardSize, "盤面サイズ")
	seed := flag.Int64("seed", 0, "乱数シード（0 なら時刻）")
	chart := flag.String("chart", "", "勝率グラフの HTML 出力先")
	verbose := flag.Bool("debug", false, "デバッグ出力")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("エラー: 設定の読み込みに失敗しました: %v\n", err)
		os.Exit(1)
	}
	debug.Enabled = cfg.Debug || *verbose

	if !*noOutput && *outputPrefix == "" {
		fmt.Println("エラー: --output-prefix は必須です")
		flag.Usage()
		os.Exit(1)
	}
	for _, e := range []string{*p0, *p1} {
		if !config.IsEngine(e) {
			fmt.Printf("エラー: 不明なエンジン %q\n", e)
			os.Exit(1)
		}
	}

	if !*noOutput {
		if err := os.MkdirAll(*outputDir, 0755); err != nil {
			fmt.Printf("エラー: 出力ディレクトリの作成に失敗しました: %v\n", err)
			os.Exit(1)
		}
	}

	maxSeq, err := findMaxSequenceNumber(*outputDir, *outputPrefix)
	if err != nil {
		fmt.Printf("警告: 既存ファイルの確認中にエラーが発生しました: %v\n", err)
	}
	startSeq := maxSeq + 1
	fmt.Printf("連番 %05d から開始します\n", startSeq)
	fmt.Printf("%s vs %s を %d 回実行します（ワーカー数: %d）\n", *p0, *p1, *games, *numWorkers)

	base := *seed
	if base == 0 {
		base = time.Now().UnixNano()
	}
	opts := options{
		cfg:          cfg,
		engines:      [2]string{*p0, *p1},
		rows:         *size,
		cols:         *size,
		outputDir:    *outputDir,
		outputPrefix: *outputPrefix,
		noOutput:     *noOutput,
	}

	tasks := make(chan battleTask, *games)
	results := make(chan game.BattleResult, *games)

	var wg sync.WaitGroup
	for i := 0; i < *numWorkers; i++ {
		wg.Add(1)
		go worker(i, opts, tasks, results, &wg)
	}

	go func() {
		for i := 0; i < *games; i++ {
			tasks <- battleTask{gameIndex: i, seqNum: startSeq + i, seed: base + int64(i)}
		}
		close(tasks)
	}()

	wins := []int{0, 0}
	draws := 0
	all := make([]game.BattleResult, 0, *games)
	for i := 0; i < *games; i++ {
		result := <-results
		all = append(all, result)
		if result.Winner == -1 {
			draws++
			continue
		}
		wins[result.Winner]++
	}

	wg.Wait()

	fmt.Println("すべての対戦が完了しました")
	fmt.Printf("勝利数: P0: %d, P1: %d, 引き分け: %d\n", wins[0], wins[1], draws)

	if *chart != "" {
		f, err := os.Create(*chart)
		if err != nil {
			fmt.Printf("エラー: グラフファイルの作成に失敗しました: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
		title := fmt.Sprintf("%s vs %s", *p0, *p1)
		if err := render.WriteWinChart(f, title, all); err != nil {
			fmt.Printf("エラー: グラフの出力に失敗しました: %v\n", err)
			os.Exit(1)
		}
		fmt.Println("勝率グラフ:", *chart)
	}
}
