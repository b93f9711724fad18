package render

import (
	"fmt"
	"io"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/montplusa/light-riders-bot/pkg/game"
)

// WinRates returns the running win rate of both players after each match.
func WinRates(results []game.BattleResult) [2][]float64 {
	var rates [2][]float64
	var wins [2]int
	for i, r := range results {
		if r.Winner >= 0 {
			wins[r.Winner]++
		}
		for p := 0; p < 2; p++ {
			rates[p] = append(rates[p], float64(wins[p])/float64(i+1))
		}
	}
	return rates
}

// WriteWinChart renders a line chart of the running win rates as HTML.
func WriteWinChart(w io.Writer, title string, results []game.BattleResult) error {
	if len(results) == 0 {
		return fmt.Errorf("no results to chart")
	}
	rates := WinRates(results)

	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: title}),
		charts.WithInitializationOpts(opts.Initialization{Theme: "shine"}),
	)

	var matches []string
	for i := range results {
		matches = append(matches, fmt.Sprintf("%d", i+1))
	}
	line = line.SetXAxis(matches)
	for p := 0; p < 2; p++ {
		items := make([]opts.LineData, 0, len(rates[p]))
		for _, v := range rates[p] {
			items = append(items, opts.LineData{Value: v})
		}
		line.AddSeries(fmt.Sprintf("P%d %s", p, results[0].Players[p]), items)
	}

	page := components.NewPage()
	page.AddCharts(line)
	return page.Render(w)
}
