package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rosterConfig(t *testing.T, pots, confs string) *Config {
	t.Helper()
	cfg := tinyConfig(t)
	cfg.PotsFile = writeTempFile(t, "pots.csv", pots)
	cfg.ConfederationsFile = writeTempFile(t, "confederations.csv", confs)
	return cfg
}

const tinyPotsCSV = `Team,Pot
Host,Pot 1
Alpha,Pot 1
Bravo,Pot 2
Charlie,Pot 2
`

const tinyConfsCSV = `Team,Confederation
Host,NorthConf
Alpha,SouthConf
Bravo,NorthConf
Charlie,SouthConf
`

func TestLoadRoster(t *testing.T) {
	cfg := rosterConfig(t, tinyPotsCSV, tinyConfsCSV)

	roster, err := LoadRoster(cfg)
	require.NoError(t, err)
	require.NoError(t, roster.Validate(cfg))

	assert.Equal(t, "Pot 1", roster.PotOf["Host"])
	assert.Equal(t, []string{"Bravo", "Charlie"}, roster.Pots["Pot 2"])
	assert.Equal(t, []string{"SouthConf"}, roster.Confederations["Alpha"])
}

func TestLoadRosterTrimsWhitespace(t *testing.T) {
	cfg := rosterConfig(t, "Team,Pot\n Host , Pot 1 \nAlpha,Pot 1\nBravo,Pot 2\nCharlie,Pot 2\n", tinyConfsCSV)

	roster, err := LoadRoster(cfg)
	require.NoError(t, err)
	assert.Equal(t, "Pot 1", roster.PotOf["Host"])
}

func TestLoadRosterPlayoffTeams(t *testing.T) {
	confs := tinyConfsCSV + "Charlie,EastConf\n"
	cfg := rosterConfig(t, tinyPotsCSV, confs)

	roster, err := LoadRoster(cfg)
	require.NoError(t, err)
	require.NoError(t, roster.Validate(cfg))
	assert.Equal(t, []string{"SouthConf", "EastConf"}, roster.Confederations["Charlie"])
}

func TestLoadRosterRejectsBadHeader(t *testing.T) {
	cfg := rosterConfig(t, "Name,Bucket\nHost,Pot 1\n", tinyConfsCSV)
	_, err := LoadRoster(cfg)
	assert.Error(t, err)
}

func TestLoadRosterRejectsDuplicatePotEntry(t *testing.T) {
	cfg := rosterConfig(t, tinyPotsCSV+"Host,Pot 2\n", tinyConfsCSV)
	_, err := LoadRoster(cfg)
	assert.Error(t, err)
}

func TestRosterValidateFailures(t *testing.T) {
	t.Run("missing confederation", func(t *testing.T) {
		cfg := rosterConfig(t, tinyPotsCSV, "Team,Confederation\nHost,NorthConf\n")
		roster, err := LoadRoster(cfg)
		require.NoError(t, err)
		assert.ErrorContains(t, roster.Validate(cfg), "missing confederation data")
	})

	t.Run("short pot", func(t *testing.T) {
		cfg := rosterConfig(t, "Team,Pot\nHost,Pot 1\nAlpha,Pot 1\nBravo,Pot 2\n", tinyConfsCSV)
		roster, err := LoadRoster(cfg)
		require.NoError(t, err)
		assert.Error(t, roster.Validate(cfg))
	})

	t.Run("unexpected pot", func(t *testing.T) {
		cfg := rosterConfig(t, tinyPotsCSV+"Delta,Pot 3\n", tinyConfsCSV+"Delta,WestConf\n")
		roster, err := LoadRoster(cfg)
		require.NoError(t, err)
		assert.Error(t, roster.Validate(cfg))
	})

	t.Run("host outside seeded pot", func(t *testing.T) {
		cfg := rosterConfig(t, tinyPotsCSV, tinyConfsCSV)
		cfg.FixedHosts = map[string]string{"Bravo": "A"}
		require.NoError(t, cfg.Validate())
		roster, err := LoadRoster(cfg)
		require.NoError(t, err)
		assert.Error(t, roster.Validate(cfg))
	})

	t.Run("unknown host", func(t *testing.T) {
		cfg := rosterConfig(t, tinyPotsCSV, tinyConfsCSV)
		cfg.FixedHosts = map[string]string{"Nobody": "A"}
		require.NoError(t, cfg.Validate())
		roster, err := LoadRoster(cfg)
		require.NoError(t, err)
		assert.Error(t, roster.Validate(cfg))
	})

	t.Run("unknown target team", func(t *testing.T) {
		cfg := rosterConfig(t, tinyPotsCSV, tinyConfsCSV)
		cfg.TargetTeam = "Nobody"
		roster, err := LoadRoster(cfg)
		require.NoError(t, err)
		assert.ErrorContains(t, roster.Validate(cfg), "target team")
	})
}

func TestWorldCupDataFiles(t *testing.T) {
	cfg := worldCupConfig(t)
	roster := worldCupRoster(t, cfg)

	assert.Len(t, roster.PotOf, 48)
	for _, pot := range append([]string{cfg.SeededPot}, cfg.DrawOrder...) {
		assert.Lenf(t, roster.Pots[pot], 12, "pot %s", pot)
	}

	playoff := 0
	for _, confs := range roster.Confederations {
		if len(confs) == 2 {
			playoff++
		}
	}
	assert.Equal(t, 2, playoff, "the two inter-confederation playoff slots carry two labels")
}
