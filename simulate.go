package main

import (
	"fmt"
	"math/rand"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

// Combination identifies one set of opponents drawn alongside the target
// team, joined in opponent-pot order. Used as the frequency map key.
type Combination string

const comboSep = "|"

func makeCombination(opponents []string) Combination {
	return Combination(strings.Join(opponents, comboSep))
}

// Teams splits the key back into team names, one per opponent pot.
func (c Combination) Teams() []string {
	return strings.Split(string(c), comboSep)
}

// BatchResult is one batch's owned tally. Merged key-wise into the run total;
// merge order is irrelevant.
type BatchResult struct {
	Combos    map[Combination]int
	Successes int
	Failures  int
}

// RunResult is the aggregate over all simulations of a mass run. Raw counts
// only; probabilities are the analysis layer's job.
type RunResult struct {
	ID        uuid.UUID
	Combos    map[Combination]int
	Successes int
	Failures  int
	Elapsed   time.Duration
}

type Simulation struct {
	cfg    *Config
	roster *Roster
}

func NewSimulation(cfg *Config, roster *Roster) *Simulation {
	return &Simulation{cfg: cfg, roster: roster}
}

// combination extracts the target team's co-occupants from its group, in
// opponent-pot order.
func (s *Simulation) combination(group []string) Combination {
	pots := s.cfg.OpponentPots()
	opponents := make([]string, len(pots))
	for _, team := range group {
		pot := s.roster.PotOf[team]
		for i, p := range pots {
			if pot == p {
				opponents[i] = team
			}
		}
	}
	return makeCombination(opponents)
}

// progress is the shared run-wide counter the batches bump. Log-only; the
// tallies themselves stay batch-local.
type progress struct {
	every   int64
	total   int64
	done    atomic.Int64
	started time.Time
}

func (p *progress) bump() {
	n := p.done.Add(1)
	if p.every <= 0 || n%p.every != 0 {
		return
	}
	elapsed := time.Since(p.started).Seconds()
	rate := float64(n) / elapsed
	log.WithFields(log.Fields{
		"done":      n,
		"total":     p.total,
		"rate":      fmt.Sprintf("%.0f sim/sec", rate),
		"remaining": fmt.Sprintf("%.0fs", float64(p.total-n)/rate),
	}).Info("simulation progress")
}

// Batch runs n independent draws with the given source and returns the
// batch-owned tally.
func (s *Simulation) Batch(n int, rng Rand) *BatchResult {
	return s.batch(n, rng, nil)
}

func (s *Simulation) batch(n int, rng Rand, prog *progress) *BatchResult {
	res := &BatchResult{Combos: make(map[Combination]int)}
	engine := NewDrawEngine(s.cfg, s.roster, rng)

	for i := 0; i < n; i++ {
		asg, ok := engine.AttemptDraw()
		if !ok {
			res.Failures++
		} else {
			res.Successes++
			for _, group := range asg {
				if containsTeam(group, s.cfg.TargetTeam) {
					res.Combos[s.combination(group)]++
					break
				}
			}
		}
		if prog != nil {
			prog.bump()
		}
	}
	return res
}

func containsTeam(group []string, team string) bool {
	for _, t := range group {
		if t == team {
			return true
		}
	}
	return false
}

// mergeCombos adds src's counts into dst key-wise. Commutative and
// associative, so worker completion order does not matter.
func mergeCombos(dst, src map[Combination]int) {
	for k, v := range src {
		dst[k] += v
	}
}

func (s *Simulation) workerRand(worker int) *rand.Rand {
	if s.cfg.Seed != 0 {
		return rand.New(rand.NewSource(deriveSeed(s.cfg.Seed, uint64(worker))))
	}
	return newRand(time.Now().UnixNano() + int64(worker))
}

// Run splits n simulations across k workers, each with its own source and
// tally, and merges the tallies once all workers finish.
func (s *Simulation) Run(n, k int) *RunResult {
	if k < 1 {
		k = 1
	}
	batchSize := n / k
	remainder := n % k

	total := &RunResult{
		ID:     uuid.New(),
		Combos: make(map[Combination]int),
	}
	prog := &progress{
		every:   int64(s.cfg.ProgressEvery),
		total:   int64(n),
		started: time.Now(),
	}

	var wg sync.WaitGroup
	var mu sync.Mutex
	for i := 0; i < k; i++ {
		wg.Add(1)
		go func(worker int) {
			defer wg.Done()
			size := batchSize
			if worker < remainder {
				size++
			}
			res := s.batch(size, s.workerRand(worker), prog)
			mu.Lock()
			mergeCombos(total.Combos, res.Combos)
			total.Successes += res.Successes
			total.Failures += res.Failures
			mu.Unlock()
		}(i)
	}
	wg.Wait()

	total.Elapsed = time.Since(prog.started)
	log.WithFields(log.Fields{
		"run":          total.ID,
		"successes":    total.Successes,
		"failures":     total.Failures,
		"combinations": len(total.Combos),
		"elapsed":      total.Elapsed.Round(time.Millisecond),
	}).Info("mass simulation complete")
	return total
}
