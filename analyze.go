package main

import "sort"

// ComboStat is one row of the sorted results table.
type ComboStat struct {
	Combo       Combination
	Frequency   int
	Probability float64 // percent of successful draws
}

// PotStat is one opponent's aggregate within a single pot.
type PotStat struct {
	Team        string
	Frequency   int
	Probability float64
}

// Concentration summarizes how predictable the distribution is.
type Concentration struct {
	TotalCombinations int
	Top1              float64
	Top10             float64
	Top20             float64
	Top50             float64
	Top100            float64
	Uniform           float64 // percent under a uniform distribution
	Gini              float64 // 0=uniform, 1=concentrated
}

// Analysis is everything the reporting layer needs, derived purely from the
// raw counts a run produced.
type Analysis struct {
	Target       string
	OpponentPots []string
	Successes    int
	Results      []ComboStat
	ByPot        map[string][]PotStat
	Metrics      Concentration
	TopPatterns  map[string]map[string]int // pot -> team -> appearances in top 50
}

const topPatternN = 50

// Analyze turns a run's frequency table into sorted tables and metrics.
func Analyze(res *RunResult, cfg *Config) *Analysis {
	a := &Analysis{
		Target:       cfg.TargetTeam,
		OpponentPots: cfg.OpponentPots(),
		Successes:    res.Successes,
	}

	a.Results = make([]ComboStat, 0, len(res.Combos))
	for combo, freq := range res.Combos {
		prob := 0.0
		if res.Successes > 0 {
			prob = float64(freq) / float64(res.Successes) * 100
		}
		a.Results = append(a.Results, ComboStat{Combo: combo, Frequency: freq, Probability: prob})
	}
	sort.Slice(a.Results, func(i, j int) bool {
		if a.Results[i].Frequency != a.Results[j].Frequency {
			return a.Results[i].Frequency > a.Results[j].Frequency
		}
		return a.Results[i].Combo < a.Results[j].Combo
	})

	a.ByPot = analyzeByPot(a.Results, a.OpponentPots, res.Successes)
	a.Metrics = concentrationMetrics(a.Results)
	a.TopPatterns = topPatterns(a.Results, a.OpponentPots, topPatternN)
	return a
}

func analyzeByPot(results []ComboStat, pots []string, successes int) map[string][]PotStat {
	byPot := make(map[string][]PotStat, len(pots))
	for i, pot := range pots {
		counts := make(map[string]int)
		for _, row := range results {
			counts[row.Combo.Teams()[i]] += row.Frequency
		}
		stats := make([]PotStat, 0, len(counts))
		for team, freq := range counts {
			prob := 0.0
			if successes > 0 {
				prob = float64(freq) / float64(successes) * 100
			}
			stats = append(stats, PotStat{Team: team, Frequency: freq, Probability: prob})
		}
		sort.Slice(stats, func(i, j int) bool {
			if stats[i].Frequency != stats[j].Frequency {
				return stats[i].Frequency > stats[j].Frequency
			}
			return stats[i].Team < stats[j].Team
		})
		byPot[pot] = stats
	}
	return byPot
}

func cumulative(results []ComboStat, n int) float64 {
	if n > len(results) {
		n = len(results)
	}
	sum := 0.0
	for _, row := range results[:n] {
		sum += row.Probability
	}
	return sum
}

func concentrationMetrics(results []ComboStat) Concentration {
	m := Concentration{TotalCombinations: len(results)}
	if len(results) == 0 {
		return m
	}
	m.Top1 = results[0].Probability
	m.Top10 = cumulative(results, 10)
	m.Top20 = cumulative(results, 20)
	m.Top50 = cumulative(results, 50)
	m.Top100 = cumulative(results, 100)
	m.Uniform = 100 / float64(len(results))
	m.Gini = gini(results)
	return m
}

// gini computes the Gini index over the probability column.
func gini(results []ComboStat) float64 {
	probs := make([]float64, len(results))
	for i, row := range results {
		probs[i] = row.Probability
	}
	sort.Float64s(probs)

	n := float64(len(probs))
	var total, weighted float64
	for i, p := range probs {
		total += p
		weighted += float64(i+1) * p
	}
	if n == 0 || total == 0 {
		return 0
	}
	return 2*weighted/(n*total) - (n+1)/n
}

func topPatterns(results []ComboStat, pots []string, topN int) map[string]map[string]int {
	if topN > len(results) {
		topN = len(results)
	}
	patterns := make(map[string]map[string]int, len(pots))
	for i, pot := range pots {
		counts := make(map[string]int)
		for _, row := range results[:topN] {
			counts[row.Combo.Teams()[i]]++
		}
		patterns[pot] = counts
	}
	return patterns
}
