package main

import (
	"flag"
	"fmt"
	"os"
	"runtime"
	"runtime/pprof"

	log "github.com/sirupsen/logrus"
)

func main() {
	var cfgPath, target, profilePath string
	var n, k int
	var seed int64
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [options]\n\nOptions:\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.StringVar(&cfgPath, "c", "", "path to config file (.json, .yaml); built-in defaults if empty")
	flag.IntVar(&n, "n", 0, "override number of simulations")
	flag.IntVar(&k, "k", 0, "override number of workers")
	flag.Int64Var(&seed, "s", 0, "random seed (0 = time-based)")
	flag.StringVar(&target, "t", "", "override target team")
	flag.StringVar(&profilePath, "profile", "", "write cpu profile to file")
	flag.Parse()

	log.SetFormatter(&log.TextFormatter{FullTimestamp: true})

	cfg := DefaultConfig()
	if cfgPath != "" {
		var err error
		if cfg, err = LoadConfig(cfgPath); err != nil {
			log.Fatal(err)
		}
	}
	if n > 0 {
		cfg.NumSimulations = n
	}
	if k > 0 {
		cfg.Workers = k
	}
	if seed != 0 {
		cfg.Seed = seed
	}
	if target != "" {
		cfg.TargetTeam = target
	}
	if err := cfg.Validate(); err != nil {
		log.Fatal(err)
	}
	workers := cfg.Workers
	if workers < 1 {
		workers = runtime.NumCPU()
	}

	// CPU profiling
	if profilePath != "" {
		f, err := os.Create(profilePath)
		if err != nil {
			log.Fatalf("could not create CPU profile: %v", err)
		}
		defer f.Close()
		if err := pprof.StartCPUProfile(f); err != nil {
			log.Fatalf("could not start CPU profile: %v", err)
		}
		defer pprof.StopCPUProfile()
	}

	roster, err := LoadRoster(cfg)
	if err != nil {
		log.Fatal(err)
	}
	if err := roster.Validate(cfg); err != nil {
		log.Fatal(err)
	}

	log.WithFields(log.Fields{
		"simulations": cfg.NumSimulations,
		"workers":     workers,
		"target":      cfg.TargetTeam,
		"seed":        cfg.Seed,
	}).Info("starting mass simulation")

	sim := NewSimulation(cfg, roster)
	result := sim.Run(cfg.NumSimulations, workers)

	analysis := Analyze(result, cfg)
	PrintSummary(analysis, result, os.Stdout)

	if _, err := ExportCSV(analysis, result, cfg); err != nil {
		log.Fatal(err)
	}
}
