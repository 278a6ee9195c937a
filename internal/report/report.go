package report

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/go-echarts/go-echarts/v2/types"
	"github.com/halverson/reddit-user-crawler/internal/domain"
)

// Write renders an HTML activity report next to the JSON output files and
// returns its path.
func Write(dir, username string, summary domain.ActivitySummary) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("creating output directory %s: %w", dir, err)
	}

	path := filepath.Join(dir, "activity_report_"+username+".html")
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("creating report file: %w", err)
	}
	defer f.Close()

	// 1. Subreddit Dominance
	pie := charts.NewPie()
	pie.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: "Activity by Subreddit (u/" + username + ")"}),
		charts.WithInitializationOpts(opts.Initialization{Theme: types.ThemeWesteros}),
	)

	var pieItems []opts.PieData
	for _, name := range summary.SubredditsList {
		a := summary.DetailedActivity[name]
		pieItems = append(pieItems, opts.PieData{Name: name, Value: a.Posts + a.Comments})
	}
	pie.AddSeries("Activity", pieItems)

	// 2. Posts vs Comments
	bar := charts.NewBar()
	bar.SetGlobalOptions(charts.WithTitleOpts(opts.Title{Title: "Posts vs Comments"}))

	var postBars []opts.BarData
	var commentBars []opts.BarData
	for _, name := range summary.SubredditsList {
		a := summary.DetailedActivity[name]
		postBars = append(postBars, opts.BarData{Value: a.Posts})
		commentBars = append(commentBars, opts.BarData{Value: a.Comments})
	}
	bar.SetXAxis(summary.SubredditsList).
		AddSeries("Posts", postBars).
		AddSeries("Comments", commentBars)

	if err := pie.Render(f); err != nil {
		return "", fmt.Errorf("rendering report: %w", err)
	}
	if err := bar.Render(f); err != nil {
		return "", fmt.Errorf("rendering report: %w", err)
	}
	return path, nil
}
