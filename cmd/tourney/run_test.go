package main

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/pokertourney/internal/config"
)

func TestOverrideAppliesSetFlagsOnly(t *testing.T) {
	t.Parallel()
	cfg := config.Default()
	cfg.Match.Seed = 5

	(&RunCmd{Hands: 3, Timeout: 3 * time.Second, Serve: ":0"}).override(cfg)
	assert.Equal(t, 3, cfg.Match.Hands)
	assert.Equal(t, int64(5), cfg.Match.Seed)
	assert.Equal(t, "3s", cfg.Match.DecisionTimeout)
	assert.Equal(t, ":0", cfg.Match.Listen)
	assert.Empty(t, cfg.Match.HistoryOut)
}

func TestNewLogger(t *testing.T) {
	t.Parallel()
	l, err := newLogger("warn", false)
	require.NoError(t, err)
	assert.Equal(t, log.WarnLevel, l.GetLevel())

	l, err = newLogger("warn", true)
	require.NoError(t, err)
	assert.Equal(t, log.DebugLevel, l.GetLevel())

	_, err = newLogger("loud", false)
	require.Error(t, err)
}

func TestRunWritesHistory(t *testing.T) {
	t.Parallel()
	out := filepath.Join(t.TempDir(), "history.toml")
	cmd := &RunCmd{
		Config:     filepath.Join(t.TempDir(), "missing.hcl"),
		Hands:      2,
		Seed:       8,
		HistoryOut: out,
		NoColor:    true,
	}
	require.NoError(t, cmd.Run())
	assert.FileExists(t, out)
}

func TestEquityAndDescribeValidate(t *testing.T) {
	t.Parallel()
	require.Error(t, (&EquityCmd{Hole: "As", Players: 2, Samples: 10}).Run())
	require.Error(t, (&EquityCmd{Hole: "AsKs", Board: "Qs", Players: 2, Samples: 10}).Run())
	require.Error(t, (&EquityCmd{Hole: "AsKs", Board: "AsQdJh", Players: 2, Samples: 10}).Run())
	require.NoError(t, (&EquityCmd{Hole: "AsKs", Board: "QsJsTs", Players: 3, Samples: 10, Seed: 1, NoColor: true}).Run())

	require.Error(t, (&DescribeCmd{Cards: "AsKs"}).Run())
	require.NoError(t, (&DescribeCmd{Cards: "As Ks Qs Js Ts"}).Run())
}
