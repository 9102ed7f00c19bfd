package config_test

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vpgo/engine/config"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := config.Load(nil)
	require.NoError(t, err)
	assert.Equal(t, 9, cfg.BoardSize)
	assert.Equal(t, 500_000, cfg.Simulations)
}

func TestLoadOverridesDefaultsWithFlags(t *testing.T) {
	cfg, err := config.Load([]string{"-board-size", "13", "-simulations", "1000"})
	require.NoError(t, err)
	assert.Equal(t, 13, cfg.BoardSize)
	assert.Equal(t, 1000, cfg.Simulations)
}

func TestLoadRejectsNonPositiveBoardSize(t *testing.T) {
	_, err := config.Load([]string{"-board-size", "0"})
	assert.Error(t, err)
}

func TestLoadRejectsNonPositiveSimulations(t *testing.T) {
	_, err := config.Load([]string{"-simulations", "-1"})
	assert.Error(t, err)
}

func TestLoadFromYAMLFile(t *testing.T) {
	dir := t.TempDir()
	path := dir + "/vpgo.yaml"
	require.NoError(t, os.WriteFile(path, []byte("board_size: 19\nkomi: 6\n"), 0o644))

	cfg, err := config.Load([]string{"-config-file", path})
	require.NoError(t, err)
	assert.Equal(t, 19, cfg.BoardSize)
	assert.Equal(t, 6, cfg.Komi)
}

func TestFlagsOutrankYAMLFile(t *testing.T) {
	dir := t.TempDir()
	path := dir + "/vpgo.yaml"
	require.NoError(t, os.WriteFile(path, []byte("board_size: 19\n"), 0o644))

	cfg, err := config.Load([]string{"-config-file", path, "-board-size", "13"})
	require.NoError(t, err)
	assert.Equal(t, 13, cfg.BoardSize)
}
