package main

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	log "github.com/sirupsen/logrus"
)

// PrintSummary writes the console report: run totals, concentration metrics,
// most frequent opponents per pot, and the most likely complete groups.
func PrintSummary(a *Analysis, res *RunResult, out io.Writer) {
	total := res.Successes + res.Failures
	fmt.Fprintf(out, "Simulations: %d (%d successful, %d failed) in %v\n",
		total, res.Successes, res.Failures, res.Elapsed.Round(time.Millisecond))
	fmt.Fprintf(out, "Distinct combinations for %s: %d\n\n", a.Target, a.Metrics.TotalCombinations)

	m := a.Metrics
	w := tabwriter.NewWriter(out, 0, 0, 1, ' ', 0)
	fmt.Fprintln(w, "Metric\tValue")
	fmt.Fprintf(w, "Top 1 probability\t%.4f%%\n", m.Top1)
	fmt.Fprintf(w, "Top 10 cumulative\t%.2f%%\n", m.Top10)
	fmt.Fprintf(w, "Top 20 cumulative\t%.2f%%\n", m.Top20)
	fmt.Fprintf(w, "Top 50 cumulative\t%.2f%%\n", m.Top50)
	fmt.Fprintf(w, "Top 100 cumulative\t%.2f%%\n", m.Top100)
	fmt.Fprintf(w, "Uniform probability\t%.4f%%\n", m.Uniform)
	fmt.Fprintf(w, "Gini index\t%.4f\n", m.Gini)
	w.Flush()
	fmt.Fprintf(out, "\n%s\n\n", interpretConcentration(m.Top20))

	for _, pot := range a.OpponentPots {
		fmt.Fprintf(out, "Most frequent opponents from %s:\n", pot)
		pw := tabwriter.NewWriter(out, 0, 0, 1, ' ', 0)
		stats := a.ByPot[pot]
		for i := 0; i < 10 && i < len(stats); i++ {
			fmt.Fprintf(pw, "%2d.\t%s\t%.2f%%\n", i+1, stats[i].Team, stats[i].Probability)
		}
		pw.Flush()
		fmt.Fprintln(out)
	}

	fmt.Fprintf(out, "Most likely groups for %s:\n", a.Target)
	gw := tabwriter.NewWriter(out, 0, 0, 1, ' ', 0)
	fmt.Fprintf(gw, "#\t%s\t%s\tProbability\tFrequency\n",
		a.Target, strings.Join(a.OpponentPots, "\t"))
	for i := 0; i < 10 && i < len(a.Results); i++ {
		row := a.Results[i]
		fmt.Fprintf(gw, "%d\t%s\t%s\t%.4f%%\t%d\n",
			i+1, a.Target, strings.Join(row.Combo.Teams(), "\t"), row.Probability, row.Frequency)
	}
	gw.Flush()
	fmt.Fprintln(out)
}

// interpretConcentration applies the top-20 thresholds used throughout the
// reports: under 10% the space is wide open, under 20% moderately so.
func interpretConcentration(top20 float64) string {
	switch {
	case top20 < 10:
		return fmt.Sprintf("High randomness: top 20 combinations cover only %.2f%% of probability.", top20)
	case top20 < 20:
		return fmt.Sprintf("Moderate randomness: top 20 combinations cover %.2f%% of probability.", top20)
	default:
		return fmt.Sprintf("Low randomness: top 20 combinations cover %.2f%% of probability.", top20)
	}
}

func writeCSV(path string, header []string, rows [][]string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(header); err != nil {
		return err
	}
	if err := w.WriteAll(rows); err != nil {
		return err
	}
	w.Flush()
	return w.Error()
}

func comboRows(a *Analysis, limit int) [][]string {
	if limit <= 0 || limit > len(a.Results) {
		limit = len(a.Results)
	}
	rows := make([][]string, 0, limit)
	for _, r := range a.Results[:limit] {
		row := append([]string{a.Target}, r.Combo.Teams()...)
		row = append(row, strconv.Itoa(r.Frequency), fmt.Sprintf("%.4f", r.Probability))
		rows = append(rows, row)
	}
	return rows
}

// ExportCSV writes the full results, the top 100 combinations, the per-pot
// analysis, and a run summary under cfg.OutputDir. Filenames carry the run
// timestamp and id. Returns the written paths.
func ExportCSV(a *Analysis, res *RunResult, cfg *Config) ([]string, error) {
	if err := os.MkdirAll(cfg.OutputDir, 0o755); err != nil {
		return nil, fmt.Errorf("create output dir: %w", err)
	}
	stamp := fmt.Sprintf("%s_%s", time.Now().Format("20060102_150405"), res.ID.String()[:8])
	name := func(base string) string {
		return filepath.Join(cfg.OutputDir, fmt.Sprintf("%s_%s.csv", base, stamp))
	}

	comboHeader := append([]string{cfg.SeededPot}, a.OpponentPots...)
	comboHeader = append(comboHeader, "Frequency", "Probability (%)")

	var written []string
	write := func(path string, header []string, rows [][]string) error {
		if err := writeCSV(path, header, rows); err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}
		written = append(written, path)
		return nil
	}

	if err := write(name("results"), comboHeader, comboRows(a, 0)); err != nil {
		return written, err
	}
	if err := write(name("top_100_combinations"), comboHeader, comboRows(a, 100)); err != nil {
		return written, err
	}

	for _, pot := range a.OpponentPots {
		rows := make([][]string, 0, len(a.ByPot[pot]))
		for _, st := range a.ByPot[pot] {
			rows = append(rows, []string{st.Team, strconv.Itoa(st.Frequency), fmt.Sprintf("%.2f", st.Probability)})
		}
		base := "analysis_" + strings.ToLower(strings.ReplaceAll(pot, " ", "_"))
		if err := write(name(base), []string{"Team", "Frequency", "Probability (%)"}, rows); err != nil {
			return written, err
		}
	}

	total := res.Successes + res.Failures
	successRate := 0.0
	if total > 0 {
		successRate = float64(res.Successes) / float64(total) * 100
	}
	summary := [][]string{
		{"Run ID", res.ID.String()},
		{"Total Simulations", strconv.Itoa(total)},
		{"Successful Simulations", strconv.Itoa(res.Successes)},
		{"Failed Simulations", strconv.Itoa(res.Failures)},
		{"Success Rate (%)", fmt.Sprintf("%.2f", successRate)},
		{"Unique Combinations", strconv.Itoa(a.Metrics.TotalCombinations)},
		{"Total Time (seconds)", fmt.Sprintf("%.2f", res.Elapsed.Seconds())},
		{"Highest Probability (%)", fmt.Sprintf("%.4f", a.Metrics.Top1)},
		{"Top 10 Cumulative Probability (%)", fmt.Sprintf("%.2f", a.Metrics.Top10)},
		{"Top 20 Cumulative Probability (%)", fmt.Sprintf("%.2f", a.Metrics.Top20)},
		{"Top 50 Cumulative Probability (%)", fmt.Sprintf("%.2f", a.Metrics.Top50)},
		{"Top 100 Cumulative Probability (%)", fmt.Sprintf("%.2f", a.Metrics.Top100)},
		{"Gini Index", fmt.Sprintf("%.4f", a.Metrics.Gini)},
	}
	if err := write(name("summary"), []string{"Metric", "Value"}, summary); err != nil {
		return written, err
	}

	for _, path := range written {
		log.WithField("file", path).Info("results exported")
	}
	return written, nil
}
