// Package sweepcfg holds the JSON-backed configuration for the
// cachesim-sweep grid-search driver: which byte-size buckets to search,
// which metric ranks trials, and which mapping strategies to try.
package sweepcfg

import (
	"encoding/json"
	"fmt"
	"os"
)

// MetricMisses ranks sweep trials by total miss count (the default).
// MetricElapsedTime ranks them by modeled elapsed time instead.
const (
	MetricMisses      = "misses"
	MetricElapsedTime = "elapsed_time"
)

// SweepConfig parameterizes cachesim-sweep's grid search: which
// total-byte-size buckets to search, which metric picks the winner per
// bucket, and which mapping strategies to try.
type SweepConfig struct {
	ByteSizeBuckets []int    `json:"byte_size_buckets"`
	Metric          string   `json:"metric"`
	MapStrategies   []string `json:"map_strategies"`
}

// DefaultSweepConfig returns a standard byte-size ladder from 512 bytes
// to 64 KiB, the "misses" metric, and all three mapping strategies.
func DefaultSweepConfig() *SweepConfig {
	return &SweepConfig{
		ByteSizeBuckets: []int{512, 1024, 2048, 4096, 8192, 16384, 32768, 65536},
		Metric:          MetricMisses,
		MapStrategies:   []string{"direct", "fully_associative", "set_associative"},
	}
}

// LoadConfig loads a SweepConfig from a JSON file, starting from the
// defaults so a partial file only overrides what it mentions.
func LoadConfig(path string) (*SweepConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read sweep config file: %w", err)
	}

	config := DefaultSweepConfig()
	if err := json.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse sweep config: %w", err)
	}

	return config, nil
}

// SaveConfig writes c to path as indented JSON.
func (c *SweepConfig) SaveConfig(path string) error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize sweep config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write sweep config file: %w", err)
	}

	return nil
}

// Validate checks that the configuration describes a non-empty, sane
// sweep.
func (c *SweepConfig) Validate() error {
	if len(c.ByteSizeBuckets) == 0 {
		return fmt.Errorf("byte_size_buckets must not be empty")
	}
	for _, b := range c.ByteSizeBuckets {
		if b <= 0 {
			return fmt.Errorf("byte_size_buckets: %d must be > 0", b)
		}
	}
	if c.Metric != MetricMisses && c.Metric != MetricElapsedTime {
		return fmt.Errorf("metric %q: must be %q or %q", c.Metric, MetricMisses, MetricElapsedTime)
	}
	if len(c.MapStrategies) == 0 {
		return fmt.Errorf("map_strategies must not be empty")
	}
	return nil
}

// Clone returns a deep copy of c.
func (c *SweepConfig) Clone() *SweepConfig {
	buckets := make([]int, len(c.ByteSizeBuckets))
	copy(buckets, c.ByteSizeBuckets)
	strategies := make([]string, len(c.MapStrategies))
	copy(strategies, c.MapStrategies)

	return &SweepConfig{
		ByteSizeBuckets: buckets,
		Metric:          c.Metric,
		MapStrategies:   strategies,
	}
}
