package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mariselli/hoofprint/internal/config"
)

func TestLoadConfig_DefaultHostIsLocalhost(t *testing.T) {
	_ = os.Unsetenv("HOOFPRINT_HOST")
	cfg, err := config.LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "127.0.0.1", cfg.Server.Host,
		"Default host must be 127.0.0.1 for security")
}

func TestLoadConfig_CanOverridePort(t *testing.T) {
	t.Setenv("HOOFPRINT_PORT", "9090")
	cfg, err := config.LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, 9090, cfg.Server.Port)
}

func TestLoadConfig_InvalidIntFallsBack(t *testing.T) {
	t.Setenv("HOOFPRINT_PIPELINE_MAX_COMPANIES", "lots")
	cfg, err := config.LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, 3, cfg.Pipeline.MaxCompanies)
}

func TestLoadTargets(t *testing.T) {
	path := filepath.Join(t.TempDir(), "targets.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
targets:
  - keyword: "tack shop"
    location: "Aiken, South Carolina"
months: ["May", "June"]
countries: ["Ireland"]
`), 0o644))

	targets, err := config.LoadTargets(path)
	require.NoError(t, err)
	require.Len(t, targets.Targets, 1)
	assert.Equal(t, "tack shop", targets.Targets[0].Keyword)
	assert.Equal(t, []string{"May", "June"}, targets.Months)
}

func TestLoadTargets_EmptyPlanRejected(t *testing.T) {
	path := filepath.Join(t.TempDir(), "targets.yaml")
	require.NoError(t, os.WriteFile(path, []byte("months: [\"May\"]\n"), 0o644))

	_, err := config.LoadTargets(path)
	assert.Error(t, err)
}

func TestLoadTargets_MissingKeywordRejected(t *testing.T) {
	path := filepath.Join(t.TempDir(), "targets.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
targets:
  - location: "Ocala, Florida"
`), 0o644))

	_, err := config.LoadTargets(path)
	assert.Error(t, err)
}

func TestDefaultTargets_Valid(t *testing.T) {
	targets := config.DefaultTargets()
	require.NoError(t, targets.Validate())
	for _, target := range targets.Targets {
		assert.NoError(t, target.Validate())
	}
}
