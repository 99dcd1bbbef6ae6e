package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/khrees2412/talentmatch/internal/matcher"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0600))
	return path
}

func TestLoadDefaults(t *testing.T) {
	path := writeConfig(t, "log:\n  debug: true\n")

	cfg, err := Load(viper.New(), path)
	require.NoError(t, err)

	assert.True(t, cfg.Log.Debug)
	assert.Equal(t, ":8080", cfg.Server.Addr)
	assert.Equal(t, filepath.Join(filepath.Dir(path), "talentmatch.db"), cfg.Database.Path)
	assert.Equal(t, matcher.DefaultConfig(), cfg.Matching)
	assert.Equal(t, 50, cfg.Assessment.LengthTarget)
	assert.Len(t, cfg.Assessment.Vocabulary, 5)
}

func TestLoadOverridesMatching(t *testing.T) {
	path := writeConfig(t, `
matching:
  workers: 2
  jobs_for_candidate:
    top_k: 5
    weights: {skills: 0.5, location: 0.1, experience: 0.1, text: 0.1, job_type: 0.1, salary: 0.1}
    boosts: {recent_window: 72h}
`)

	cfg, err := Load(viper.New(), path)
	require.NoError(t, err)

	jobs := cfg.Matching.JobsForCandidate
	assert.Equal(t, 2, cfg.Matching.Workers)
	assert.Equal(t, 5, jobs.TopK)
	assert.Equal(t, 0.5, jobs.Weights.Skills)
	assert.Equal(t, 72*time.Hour, jobs.Boosts.RecentWindow)
	// untouched keys keep their defaults
	assert.Equal(t, 0.10, jobs.Boosts.Verified)
	assert.Equal(t, 0.8, jobs.Thresholds.Location)
	assert.Equal(t, matcher.DefaultConfig().CandidatesForJob, cfg.Matching.CandidatesForJob)
}

func TestLoadEnvOverride(t *testing.T) {
	t.Setenv("TALENTMATCH_SERVER_ADDR", "127.0.0.1:9090")
	path := writeConfig(t, "server:\n  addr: \":8080\"\n")

	cfg, err := Load(viper.New(), path)
	require.NoError(t, err)
	assert.Equal(t, "127.0.0.1:9090", cfg.Server.Addr)
}

func TestLoadRejectsInvalidWeights(t *testing.T) {
	path := writeConfig(t, `
matching:
  candidates_for_job:
    weights: {skills: 0.9}
`)

	_, err := Load(viper.New(), path)
	assert.ErrorIs(t, err, matcher.ErrInvalidConfig)
}

func TestInitializeCreatesDefaultFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	t.Cleanup(viper.Reset)

	require.NoError(t, Initialize(path))
	assert.FileExists(t, path)
	require.NotNil(t, AppConfig)
	assert.Equal(t, 10, AppConfig.Matching.JobsForCandidate.TopK)
	assert.Equal(t, path, GetConfigPath())
}
