package main

import (
	"encoding/csv"
	"fmt"
	"os"
	"strings"

	log "github.com/sirupsen/logrus"
)

// Roster is the validated team data the core draws from. Read-only once
// built; shared freely across workers.
type Roster struct {
	PotOf          map[string]string   // team -> pot label
	Pots           map[string][]string // pot label -> teams, file order
	Confederations map[string][]string // team -> confederation labels (2 for playoff slots)
}

// readPairs reads a two-column CSV with a header row, trimming whitespace.
func readPairs(path string, wantCols [2]string) ([][2]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("%s: empty file", path)
	}

	header := records[0]
	if len(header) < 2 || strings.TrimSpace(header[0]) != wantCols[0] || strings.TrimSpace(header[1]) != wantCols[1] {
		return nil, fmt.Errorf("%s: expected columns %q,%q", path, wantCols[0], wantCols[1])
	}

	pairs := make([][2]string, 0, len(records)-1)
	for _, rec := range records[1:] {
		if len(rec) < 2 {
			return nil, fmt.Errorf("%s: short row %v", path, rec)
		}
		pairs = append(pairs, [2]string{strings.TrimSpace(rec[0]), strings.TrimSpace(rec[1])})
	}
	return pairs, nil
}

// LoadRoster reads the pots and confederations CSVs named by cfg.
func LoadRoster(cfg *Config) (*Roster, error) {
	potPairs, err := readPairs(cfg.PotsFile, [2]string{"Team", "Pot"})
	if err != nil {
		return nil, fmt.Errorf("load pots: %w", err)
	}
	confPairs, err := readPairs(cfg.ConfederationsFile, [2]string{"Team", "Confederation"})
	if err != nil {
		return nil, fmt.Errorf("load confederations: %w", err)
	}

	r := &Roster{
		PotOf:          make(map[string]string),
		Pots:           make(map[string][]string),
		Confederations: make(map[string][]string),
	}
	for _, p := range potPairs {
		team, pot := p[0], p[1]
		if prev, dup := r.PotOf[team]; dup {
			return nil, fmt.Errorf("load pots: team %q listed in both %q and %q", team, prev, pot)
		}
		r.PotOf[team] = pot
		r.Pots[pot] = append(r.Pots[pot], team)
	}
	for _, p := range confPairs {
		r.Confederations[p[0]] = append(r.Confederations[p[0]], p[1])
	}

	log.WithFields(log.Fields{
		"teams":          len(r.PotOf),
		"pots":           len(r.Pots),
		"confederations": len(confPairs),
	}).Info("roster loaded")
	return r, nil
}

// Validate runs the integrity checks the core assumes have already passed:
// pot shapes, confederation coverage, and fixed host placement.
func (r *Roster) Validate(cfg *Config) error {
	pots := append([]string{cfg.SeededPot}, cfg.DrawOrder...)
	for _, pot := range pots {
		teams, ok := r.Pots[pot]
		if !ok {
			return fmt.Errorf("roster: pot %q missing from pots file", pot)
		}
		if len(teams) != len(cfg.Groups) {
			return fmt.Errorf("roster: pot %q has %d teams, want %d", pot, len(teams), len(cfg.Groups))
		}
	}
	for pot := range r.Pots {
		found := false
		for _, want := range pots {
			if pot == want {
				found = true
				break
			}
		}
		if !found {
			return fmt.Errorf("roster: unexpected pot %q in pots file", pot)
		}
	}

	var missing []string
	for team := range r.PotOf {
		if len(r.Confederations[team]) == 0 {
			missing = append(missing, team)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("roster: %d teams missing confederation data: %s",
			len(missing), strings.Join(missing, ", "))
	}

	playoff := 0
	for team, confs := range r.Confederations {
		if len(confs) > 1 {
			playoff++
			log.WithFields(log.Fields{
				"team":           team,
				"confederations": strings.Join(confs, " and "),
			}).Info("playoff slot with multiple confederations")
		}
	}
	if playoff == 0 {
		log.Info("no teams with multiple confederations")
	}

	if _, ok := r.PotOf[cfg.TargetTeam]; !ok {
		return fmt.Errorf("roster: target team %q not found in pots file", cfg.TargetTeam)
	}

	for host, group := range cfg.FixedHosts {
		pot, ok := r.PotOf[host]
		if !ok {
			return fmt.Errorf("roster: fixed host %q not found in pots file", host)
		}
		if pot != cfg.SeededPot {
			return fmt.Errorf("roster: fixed host %q is in %q, want seeded pot %q", host, pot, cfg.SeededPot)
		}
		log.WithFields(log.Fields{"host": host, "group": group}).Info("fixed host verified")
	}
	return nil
}
