package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func handBuiltRun() *RunResult {
	return &RunResult{
		Successes: 10,
		Failures:  2,
		Combos: map[Combination]int{
			"Croatia|Norway|Ghana":    5,
			"Morocco|Panama|Jordan":   3,
			"Japan|Egypt|New Zealand": 2,
		},
	}
}

func TestAnalyzeProbabilitiesAndOrder(t *testing.T) {
	cfg := worldCupConfig(t)
	a := Analyze(handBuiltRun(), cfg)

	require.Len(t, a.Results, 3)
	assert.Equal(t, Combination("Croatia|Norway|Ghana"), a.Results[0].Combo)
	assert.InDelta(t, 50.0, a.Results[0].Probability, 1e-9)
	assert.InDelta(t, 30.0, a.Results[1].Probability, 1e-9)
	assert.InDelta(t, 20.0, a.Results[2].Probability, 1e-9)
	assert.Equal(t, 10, a.Successes)
}

func TestAnalyzeByPot(t *testing.T) {
	cfg := worldCupConfig(t)
	a := Analyze(handBuiltRun(), cfg)

	pot2 := a.ByPot["Pot 2"]
	require.Len(t, pot2, 3)
	assert.Equal(t, PotStat{Team: "Croatia", Frequency: 5, Probability: 50}, pot2[0])
	assert.Equal(t, PotStat{Team: "Morocco", Frequency: 3, Probability: 30}, pot2[1])

	pot4 := a.ByPot["Pot 4"]
	assert.Equal(t, "Ghana", pot4[0].Team)
}

func TestAnalyzeConcentrationMetrics(t *testing.T) {
	cfg := worldCupConfig(t)
	m := Analyze(handBuiltRun(), cfg).Metrics

	assert.Equal(t, 3, m.TotalCombinations)
	assert.InDelta(t, 50.0, m.Top1, 1e-9)
	assert.InDelta(t, 100.0, m.Top10, 1e-9)
	assert.InDelta(t, 100.0, m.Top100, 1e-9)
	assert.InDelta(t, 100.0/3, m.Uniform, 1e-9)
	// Ascending probabilities 20,30,50: 2*(1*20+2*30+3*50)/(3*100) - 4/3.
	assert.InDelta(t, 0.2, m.Gini, 1e-9)
}

func TestAnalyzeTopPatterns(t *testing.T) {
	cfg := worldCupConfig(t)
	a := Analyze(handBuiltRun(), cfg)

	assert.Equal(t, 1, a.TopPatterns["Pot 3"]["Norway"])
	assert.Equal(t, 1, a.TopPatterns["Pot 3"]["Panama"])
}

func TestAnalyzeEmptyRun(t *testing.T) {
	cfg := worldCupConfig(t)
	a := Analyze(&RunResult{Combos: map[Combination]int{}}, cfg)

	assert.Empty(t, a.Results)
	assert.Zero(t, a.Metrics.TotalCombinations)
	assert.Zero(t, a.Metrics.Gini)
}

func TestGiniUniformIsZero(t *testing.T) {
	results := []ComboStat{
		{Probability: 25}, {Probability: 25}, {Probability: 25}, {Probability: 25},
	}
	assert.InDelta(t, 0.0, gini(results), 1e-9)
}
