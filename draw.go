package main

// Rand is the randomness a draw consumes: a permutation of a pot and a
// uniform pick among available groups. *math/rand.Rand satisfies it.
type Rand interface {
	Shuffle(n int, swap func(i, j int))
	Intn(n int) int
}

// Assignment maps group label to the teams placed in it, in placement order.
type Assignment map[string][]string

// drawState is the per-attempt working state. Never shared across attempts.
type drawState struct {
	groups map[string][]string
	filled map[string]map[string]bool // pot -> groups already holding a team from it
}

func newDrawState(groups []string) *drawState {
	st := &drawState{
		groups: make(map[string][]string, len(groups)),
		filled: make(map[string]map[string]bool),
	}
	for _, g := range groups {
		st.groups[g] = make([]string, 0, 4)
	}
	return st
}

func (st *drawState) place(team, pot, group string) {
	st.groups[group] = append(st.groups[group], team)
	if st.filled[pot] == nil {
		st.filled[pot] = make(map[string]bool)
	}
	st.filled[pot][group] = true
}

type DrawEngine struct {
	cfg    *Config
	roster *Roster
	rng    Rand

	seededRest []string // seeded pot minus fixed hosts
	scratch    []string // reused shuffle buffer
}

func NewDrawEngine(cfg *Config, roster *Roster, rng Rand) *DrawEngine {
	e := &DrawEngine{cfg: cfg, roster: roster, rng: rng}
	for _, team := range roster.Pots[cfg.SeededPot] {
		if _, fixed := cfg.FixedHosts[team]; !fixed {
			e.seededRest = append(e.seededRest, team)
		}
	}
	return e
}

// admissible reports whether team may join a group already holding occupants.
// A team missing from the confederation table is vacuously admissible.
func (e *DrawEngine) admissible(team string, occupants []string) bool {
	confs := e.roster.Confederations[team]
	if len(confs) == 0 {
		return true
	}

	counts := make(map[string]int, len(occupants))
	for _, occ := range occupants {
		for _, c := range e.roster.Confederations[occ] {
			counts[c]++
		}
	}

	for _, c := range confs {
		limit := e.cfg.MaxOtherPerGroup
		if c == e.cfg.LargeConfederation {
			limit = e.cfg.MaxLargePerGroup
		}
		if counts[c] >= limit {
			return false
		}
	}
	return true
}

// availableGroups returns the groups open to team for its pot, in group order.
// Empty result signals a dead end.
func (e *DrawEngine) availableGroups(team, pot string, st *drawState) []string {
	var available []string
	for _, g := range e.cfg.Groups {
		if st.filled[pot][g] {
			continue
		}
		if e.admissible(team, st.groups[g]) {
			available = append(available, g)
		}
	}
	return available
}

// placePot shuffles the given teams and commits each to a random available
// group. Returns false on the first dead end.
func (e *DrawEngine) placePot(teams []string, pot string, st *drawState) bool {
	buf := append(e.scratch[:0], teams...)
	e.scratch = buf
	e.rng.Shuffle(len(buf), func(i, j int) { buf[i], buf[j] = buf[j], buf[i] })

	for _, team := range buf {
		available := e.availableGroups(team, pot, st)
		if len(available) == 0 {
			return false
		}
		group := available[e.rng.Intn(len(available))]
		st.place(team, pot, group)
	}
	return true
}

// attempt runs one complete draw from a fresh state. A dead end anywhere
// abandons the whole attempt; there is no partial undo.
func (e *DrawEngine) attempt() (Assignment, bool) {
	st := newDrawState(e.cfg.Groups)

	// Fixed hosts go in unconditionally and consume no random choice.
	for _, host := range e.cfg.fixedHostOrder {
		st.place(host, e.cfg.SeededPot, e.cfg.FixedHosts[host])
	}

	if !e.placePot(e.seededRest, e.cfg.SeededPot, st) {
		return nil, false
	}
	for _, pot := range e.cfg.DrawOrder {
		if !e.placePot(e.roster.Pots[pot], pot, st) {
			return nil, false
		}
	}
	return st.groups, true
}

// AttemptDraw tries up to cfg.MaxAttempts full draws and returns the first
// complete assignment, or ok=false if the budget is exhausted.
func (e *DrawEngine) AttemptDraw() (Assignment, bool) {
	for i := 0; i < e.cfg.MaxAttempts; i++ {
		if asg, ok := e.attempt(); ok {
			return asg, true
		}
	}
	return nil, false
}
