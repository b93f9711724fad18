package deepq

import (
	"fmt"
	"io"
	"math/rand"
	"time"

	"github.com/montplusa/light-riders-bot/pkg/game"
)

// TrainingConfig specifies a run of repeated matches against one opponent.
type TrainingConfig struct {
	Matches        int
	ReportInterval int // print progress every N matches
	Rows, Cols     int
	OpponentAI     game.AI
	Out            io.Writer // progress output
}

// TrainingStats tracks results during training.
type TrainingStats struct {
	Wins       int
	Losses     int
	Draws      int
	TotalTurns int
	StartTime  time.Time
}

func (s TrainingStats) WinRate() float64 {
	n := s.Wins + s.Losses + s.Draws
	if n == 0 {
		return 0
	}
	return float64(s.Wins) / float64(n) * 100
}

// Train plays cfg.Matches games of ai against cfg.OpponentAI. ai keeps
// learning on every turn, so its network improves across the run.
func Train(ai *DeepQAI, cfg TrainingConfig, rng *rand.Rand) (TrainingStats, error) {
	if cfg.ReportInterval <= 0 {
		return TrainingStats{}, fmt.Errorf("report interval must be greater than 0")
	}
	if cfg.OpponentAI == nil {
		return TrainingStats{}, fmt.Errorf("opponent AI is required")
	}
	out := cfg.Out
	if out == nil {
		out = io.Discard
	}

	fmt.Fprintln(out, "Opponent:", cfg.OpponentAI.Name())
	fmt.Fprintln(out, "- Matches:", cfg.Matches)
	fmt.Fprintf(out, "- Board: %dx%d\n\n", cfg.Rows, cfg.Cols)

	stats := TrainingStats{StartTime: time.Now()}
	lastReport := time.Now()
	for match := 0; match < cfg.Matches; match++ {
		// 先手後手を交互に入れ替える
		me := match % 2
		agents := [2]game.AI{ai, cfg.OpponentAI}
		if me == 1 {
			agents = [2]game.AI{cfg.OpponentAI, ai}
		}
		runner := game.NewGameRunner(agents[0], agents[1], rng)
		if cfg.Rows > 0 && cfg.Cols > 0 {
			runner.WithBoard(cfg.Rows, cfg.Cols)
		}
		result := runner.Run()

		switch result.Winner {
		case me:
			stats.Wins++
		case -1:
			stats.Draws++
		default:
			stats.Losses++
		}
		stats.TotalTurns += len(result.Moves)

		if (match+1)%cfg.ReportInterval == 0 || match == cfg.Matches-1 {
			now := time.Now()
			perSec := float64(cfg.ReportInterval) / now.Sub(lastReport).Seconds()
			fmt.Fprintf(out, "[%d/%d] Win: %.1f%% (W:%d L:%d D:%d) | Turns: %.1f | %.2f games/sec | Elapsed: %s\n",
				match+1, cfg.Matches, stats.WinRate(), stats.Wins, stats.Losses, stats.Draws,
				float64(stats.TotalTurns)/float64(match+1), perSec,
				formatDuration(now.Sub(stats.StartTime)))
			lastReport = now
		}
	}
	return stats, nil
}

// formatDuration returns a human-readable string for a duration
func formatDuration(d time.Duration) string {
	d = d.Round(time.Second)
	h := d / time.Hour
	d -= h * time.Hour
	m := d / time.Minute
	d -= m * time.Minute
	s := d / time.Second

	if h > 0 {
		return fmt.Sprintf("%dh%02dm%02ds", h, m, s)
	}
	if m > 0 {
		return fmt.Sprintf("%dm%02ds", m, s)
	}
	return fmt.Sprintf("%ds", s)
}
