// Package stats contains statistics calculations and reporting.
package stats

import (
	"fmt"
	"io"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/verte-zerg/tuicard/internal/model"
	"github.com/verte-zerg/tuicard/internal/srs"
)

const sparkChars = " .:-=+*#%@"

// Accuracy returns the share of correct answers, or zero when there are none.
func Accuracy(correct, incorrect int) float64 {
	total := correct + incorrect
	if total == 0 {
		return 0
	}
	return float64(correct) / float64(total)
}

// MovingAverage computes a rolling mean over the provided window size.
func MovingAverage(values []float64, window int) []float64 {
	if window <= 1 || len(values) == 0 {
		out := make([]float64, len(values))
		copy(out, values)
		return out
	}
	out := make([]float64, len(values))
	var sum float64
	for i := 0; i < len(values); i++ {
		sum += values[i]
		if i >= window {
			sum -= values[i-window]
		}
		den := float64(i + 1)
		if i >= window {
			den = float64(window)
		}
		out[i] = sum / den
	}
	return out
}

// Sparkline renders a single-line ASCII sparkline for the values.
func Sparkline(values []float64) string {
	if len(values) == 0 {
		return ""
	}
	minVal := values[0]
	maxVal := values[0]
	for _, v := range values[1:] {
		if v < minVal {
			minVal = v
		}
		if v > maxVal {
			maxVal = v
		}
	}
	if math.Abs(maxVal-minVal) < 1e-9 {
		return strings.Repeat(string(sparkChars[len(sparkChars)/2]), len(values))
	}
	var b strings.Builder
	for _, v := range values {
		pos := (v - minVal) / (maxVal - minVal)
		idx := int(math.Round(pos * float64(len(sparkChars)-1)))
		if idx < 0 {
			idx = 0
		}
		if idx >= len(sparkChars) {
			idx = len(sparkChars) - 1
		}
		b.WriteByte(sparkChars[idx])
	}
	return b.String()
}

// LevelDistribution counts words at each mastery level.
func LevelDistribution(words []model.WordAggregate) [srs.MaxLevel + 1]int {
	var dist [srs.MaxLevel + 1]int
	for _, w := range words {
		level := w.Level
		if level < 0 {
			level = 0
		}
		if level > srs.MaxLevel {
			level = srs.MaxLevel
		}
		dist[level]++
	}
	return dist
}

// DueForecast counts how many words come due on each of the next days. Words
// already overdue land on day zero; words due past the horizon are dropped.
func DueForecast(words []model.WordAggregate, now time.Time, days int) []float64 {
	if days <= 0 {
		return nil
	}
	counts := make([]float64, days)
	for _, w := range words {
		day := int(w.Due.Sub(now).Hours() / 24)
		if day < 0 {
			day = 0
		}
		if day >= days {
			continue
		}
		counts[day]++
	}
	return counts
}

// RenderSummary prints collection totals.
func RenderSummary(w io.Writer, words []model.WordAggregate, now time.Time) error {
	if len(words) == 0 {
		_, err := fmt.Fprintln(w, "No words in the collection.")
		return err
	}
	due := 0
	mastered := 0
	reviews := 0
	correct := 0
	incorrect := 0
	for _, wa := range words {
		if !wa.Due.After(now) {
			due++
		}
		if wa.Level == srs.MaxLevel {
			mastered++
		}
		reviews += wa.Reviews
		correct += wa.Correct
		incorrect += wa.Incorrect
	}
	if _, err := fmt.Fprintln(w, "Summary"); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Words: %d\n", len(words)); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Due now: %d\n", due); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Mastered: %d\n", mastered); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Reviews: %d\n", reviews); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Accuracy: %.2f%%\n", Accuracy(correct, incorrect)*100); err != nil {
		return err
	}
	if _, err := fmt.Fprintln(w, ""); err != nil {
		return err
	}
	return nil
}

// RenderLevels prints the mastery level distribution.
func RenderLevels(w io.Writer, words []model.WordAggregate) error {
	if len(words) == 0 {
		return nil
	}
	dist := LevelDistribution(words)
	maxCount := 0
	for _, n := range dist {
		if n > maxCount {
			maxCount = n
		}
	}
	if _, err := fmt.Fprintln(w, "Levels"); err != nil {
		return err
	}
	headers := []string{"Level", "Words", ""}
	rows := make([][]string, 0, len(dist))
	for level, n := range dist {
		bar := ""
		if maxCount > 0 {
			bar = strings.Repeat("#", n*20/maxCount)
		}
		rows = append(rows, []string{fmt.Sprintf("%d", level), fmt.Sprintf("%d", n), bar})
	}
	rightAlign := map[int]bool{0: true, 1: true}
	for _, line := range formatTable(headers, rows, rightAlign) {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	if _, err := fmt.Fprintln(w, ""); err != nil {
		return err
	}
	return nil
}

// RenderCurves prints daily review curves for accuracy and volume.
func RenderCurves(w io.Writer, days []model.DayAggregate, window int) error {
	return RenderCurvesWithSize(w, days, window, 0, 10, false)
}

// RenderCurvesWithSize prints daily review curves sized to a given total width.
func RenderCurvesWithSize(w io.Writer, days []model.DayAggregate, window, totalWidth, height int, useColor bool) error {
	if len(days) == 0 {
		return nil
	}
	accs := make([]float64, len(days))
	counts := make([]float64, len(days))
	for i, d := range days {
		accs[i] = Accuracy(d.Correct, d.Incorrect) * 100
		counts[i] = float64(d.Correct + d.Incorrect)
	}
	accs = MovingAverage(accs, window)
	counts = MovingAverage(counts, window)

	width := 0
	if totalWidth > 0 {
		width = PlotWidthFor(totalWidth)
	}
	return PlotSeriesWithColor(w, "Review History", []Series{
		{Name: "Accuracy", Values: accs},
		{Name: "Reviews", Values: counts},
	}, width, height, useColor)
}

// RenderForecast plots how many words come due over the horizon.
func RenderForecast(w io.Writer, words []model.WordAggregate, now time.Time, horizon int) error {
	return RenderForecastWithSize(w, words, now, horizon, 0, 10, false)
}

// RenderForecastWithSize plots the due forecast sized to a given total width.
func RenderForecastWithSize(w io.Writer, words []model.WordAggregate, now time.Time, horizon, totalWidth, height int, useColor bool) error {
	counts := DueForecast(words, now, horizon)
	if len(counts) == 0 {
		return nil
	}
	width := 0
	if totalWidth > 0 {
		width = PlotWidthFor(totalWidth)
	}
	title := fmt.Sprintf("Due Forecast (%d days)", horizon)
	return PlotSeriesWithColor(w, title, []Series{
		{Name: "Due words", Values: counts},
	}, width, height, useColor)
}

// RenderWordTable prints per-word review stats, hardest first.
func RenderWordTable(w io.Writer, words []model.WordAggregate, now time.Time) error {
	if len(words) == 0 {
		_, err := fmt.Fprintln(w, "No word stats found.")
		return err
	}
	sorted := make([]model.WordAggregate, len(words))
	copy(sorted, words)
	// Sort by lowest accuracy.
	sort.Slice(sorted, func(i, j int) bool {
		ai := wordAccuracy(sorted[i])
		aj := wordAccuracy(sorted[j])
		if ai == aj {
			return sorted[i].Word < sorted[j].Word
		}
		return ai < aj
	})

	if _, err := fmt.Fprintln(w, "Per-Word"); err != nil {
		return err
	}

	headers := []string{"Word", "Level", "Accuracy", "Correct", "Incorrect", "Due"}
	rows := make([][]string, 0, len(sorted))
	for _, wa := range sorted {
		acc := "-"
		if wa.Correct+wa.Incorrect > 0 {
			acc = fmt.Sprintf("%.2f%%", wordAccuracy(wa)*100)
		}
		rows = append(rows, []string{
			wa.Word,
			fmt.Sprintf("%d", wa.Level),
			acc,
			fmt.Sprintf("%d", wa.Correct),
			fmt.Sprintf("%d", wa.Incorrect),
			FormatDue(wa.Due, now),
		})
	}
	rightAlign := map[int]bool{1: true, 2: true, 3: true, 4: true}
	for _, line := range formatTable(headers, rows, rightAlign) {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	if _, err := fmt.Fprintln(w, ""); err != nil {
		return err
	}
	return nil
}

// FormatDue renders a due instant relative to now, in whole days.
func FormatDue(due, now time.Time) string {
	if !due.After(now) {
		return "now"
	}
	days := int(due.Sub(now).Hours() / 24)
	if days == 0 {
		return "today"
	}
	return fmt.Sprintf("in %dd", days)
}

func wordAccuracy(wa model.WordAggregate) float64 {
	total := wa.Correct + wa.Incorrect
	if total == 0 {
		return 1.0
	}
	return float64(wa.Correct) / float64(total)
}
