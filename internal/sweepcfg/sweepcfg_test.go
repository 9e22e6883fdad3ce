package sweepcfg_test

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sarchlab/cachesim/internal/sweepcfg"
)

func TestDefaultSweepConfigIsValid(t *testing.T) {
	require.NoError(t, sweepcfg.DefaultSweepConfig().Validate())
}

func TestSaveThenLoadRoundTrips(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "sweep.json")

	original := sweepcfg.DefaultSweepConfig()
	original.Metric = sweepcfg.MetricElapsedTime
	require.NoError(t, original.SaveConfig(path))

	loaded, err := sweepcfg.LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, original.ByteSizeBuckets, loaded.ByteSizeBuckets)
	assert.Equal(t, sweepcfg.MetricElapsedTime, loaded.Metric)
}

func TestValidateRejectsUnknownMetric(t *testing.T) {
	cfg := sweepcfg.DefaultSweepConfig()
	cfg.Metric = "bogus"
	assert.Error(t, cfg.Validate())
}

func TestValidateRejectsEmptyBuckets(t *testing.T) {
	cfg := sweepcfg.DefaultSweepConfig()
	cfg.ByteSizeBuckets = nil
	assert.Error(t, cfg.Validate())
}

func TestCloneIsIndependent(t *testing.T) {
	original := sweepcfg.DefaultSweepConfig()
	clone := original.Clone()
	clone.ByteSizeBuckets[0] = 999

	assert.NotEqual(t, original.ByteSizeBuckets[0], clone.ByteSizeBuckets[0])
}
