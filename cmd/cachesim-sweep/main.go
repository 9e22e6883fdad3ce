// Command cachesim-sweep is the grid-search driver: for each byte-size
// bucket it tries every cache-size/block-size/policy/map-strategy
// combination the sweep configuration allows and reports the
// lowest-miss (or lowest-elapsed-time) configuration per bucket.
package main

import (
	"fmt"
	"os"
	"sync"

	"github.com/spf13/pflag"

	"github.com/sarchlab/cachesim/internal/cache"
	"github.com/sarchlab/cachesim/internal/config"
	"github.com/sarchlab/cachesim/internal/driver"
	"github.com/sarchlab/cachesim/internal/logx"
	"github.com/sarchlab/cachesim/internal/report"
	"github.com/sarchlab/cachesim/internal/sweepcfg"
	"github.com/sarchlab/cachesim/internal/trace"
)

var (
	sweepConfigPath = pflag.String("config", "", "path to a JSON sweep configuration file")
	verbose         = pflag.BoolP("verbose", "v", false, "verbose diagnostic logging")
)

func main() {
	pflag.Parse()

	if pflag.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "usage: cachesim-sweep [--config path.json] <trace-file>")
		os.Exit(1)
	}

	os.Exit(run(pflag.Arg(0)))
}

func run(tracePath string) int {
	log := logx.Default().Module("sweep")
	if *verbose {
		log.Info("verbose logging enabled")
	}

	sweep, err := loadSweepConfig()
	if err != nil {
		log.Error("invalid sweep configuration", "error", err)
		return 1
	}

	for _, bucketBytes := range sweep.ByteSizeBuckets {
		best, bestCfg, err := searchBucket(bucketBytes, sweep, tracePath)
		if err != nil {
			log.Error("sweep aborted", "error", err, "bucket_bytes", bucketBytes)
			return 1
		}
		if best == nil {
			log.Warn("no viable configuration in bucket", "bucket_bytes", bucketBytes)
			continue
		}

		fmt.Printf("Cache total size: %d bytes\n", bucketBytes)
		fmt.Printf("  block_size_words=%d cache_size_slots=%d map=%v write=%v write_miss=%v split_id=%v\n",
			bestCfg.BlockSizeWords, bestCfg.CacheSizeSlots, mapName(bestCfg), bestCfg.WritePolicy, bestCfg.WriteMissPolicy, bestCfg.SplitID)
		if err := report.WriteTable(os.Stdout, best); err != nil {
			log.Error("failed to render report", "error", err)
			return 1
		}
		fmt.Println()
	}

	return 0
}

func loadSweepConfig() (*sweepcfg.SweepConfig, error) {
	var sweep *sweepcfg.SweepConfig
	var err error
	if *sweepConfigPath != "" {
		sweep, err = sweepcfg.LoadConfig(*sweepConfigPath)
	} else {
		sweep = sweepcfg.DefaultSweepConfig()
	}
	if err != nil {
		return nil, err
	}
	if err := sweep.Validate(); err != nil {
		return nil, err
	}
	return sweep, nil
}

// trialResult holds one grid-search trial's outcome, filled in by its own
// goroutine and read back only after every trial in the bucket has
// finished.
type trialResult struct {
	cfg      config.Configuration
	counters *cache.Counters
	err      error
}

// searchBucket enumerates every combination for one byte-size bucket,
// runs them concurrently (one engine and counter sink per trial, per
// §5's isolation rule), and returns the counters and configuration of
// the best trial by the configured metric once every goroutine has
// returned. It returns (nil, zero, nil) if no combination in this bucket
// was viable (e.g. the bucket is too small for any power-of-two cache
// size once word size is accounted for). A trial that fails for any
// reason other than an invalid configuration (the trace cannot be opened
// or parsed) makes it return that error.
func searchBucket(bucketBytes int, sweep *sweepcfg.SweepConfig, tracePath string) (*cache.Counters, config.Configuration, error) {
	candidates := enumerateTrialConfigs(bucketBytes, sweep, tracePath)

	results := make([]trialResult, len(candidates))
	var wg sync.WaitGroup
	for i, cfg := range candidates {
		wg.Add(1)
		go func(i int, cfg config.Configuration) {
			defer wg.Done()
			counters, err := runTrial(cfg, tracePath)
			results[i] = trialResult{cfg: cfg, counters: counters, err: err}
		}(i, cfg)
	}
	wg.Wait()

	var best *cache.Counters
	var bestCfg config.Configuration
	for _, r := range results {
		if r.err != nil {
			if _, ok := r.err.(*config.ConfigurationError); ok {
				continue // an invalid combination (e.g. a non-power-of-two block size) is skipped, not fatal
			}
			return nil, config.Configuration{}, r.err
		}
		if best == nil || metric(sweep.Metric, r.counters) < metric(sweep.Metric, best) {
			best = r.counters
			bestCfg = r.cfg
		}
	}

	return best, bestCfg, nil
}

// enumerateTrialConfigs lists every viable (map strategy, block size,
// cache size, write policy, write-miss policy, split-I/D) combination
// for one byte-size bucket.
func enumerateTrialConfigs(bucketBytes int, sweep *sweepcfg.SweepConfig, tracePath string) []config.Configuration {
	var configs []config.Configuration

	for cacheSize := 1; cacheSize <= bucketBytes; cacheSize *= 2 {
		blockSizeWords := (bucketBytes / cacheSize) / cache.WordSize
		if blockSizeWords <= 0 {
			continue
		}

		for _, mapKind := range sweep.MapStrategies {
			for _, wmp := range []cache.WriteMissPolicy{cache.WriteAllocate, cache.NoWriteAllocate} {
				for _, wp := range []cache.WritePolicy{cache.WriteThrough, cache.WriteBack} {
					for _, splitID := range []bool{false, true} {
						if splitID && cacheSize < 2 {
							continue
						}

						cfg, ok := buildTrialConfig(mapKind, blockSizeWords, cacheSize, wp, wmp, splitID, tracePath)
						if !ok {
							continue
						}
						configs = append(configs, cfg)
					}
				}
			}
		}
	}

	return configs
}

func buildTrialConfig(
	mapKind string, blockSizeWords, cacheSize int, wp cache.WritePolicy, wmp cache.WriteMissPolicy, splitID bool, tracePath string,
) (config.Configuration, bool) {
	cfg := config.Configuration{
		BlockSizeWords:  blockSizeWords,
		CacheSizeSlots:  cacheSize,
		WritePolicy:     wp,
		WriteMissPolicy: wmp,
		SplitID:         splitID,
		TracePath:       tracePath,
	}

	switch mapKind {
	case "direct":
		cfg.Map = config.Direct
	case "fully_associative":
		cfg.Map = config.FullyAssociative
	case "set_associative":
		cfg.Map = config.SetAssociative
		cfg.Sets = largestDivisorPowerOfTwo(cacheSize, 4)
		if cfg.Sets == 0 {
			return cfg, false
		}
	default:
		return cfg, false
	}

	return cfg, true
}

// largestDivisorPowerOfTwo returns the largest power of two <= max that
// evenly divides n, or 0 if none qualifies (n < 1).
func largestDivisorPowerOfTwo(n, max int) int {
	for candidate := max; candidate >= 1; candidate /= 2 {
		if candidate <= n && n%candidate == 0 {
			return candidate
		}
	}
	return 0
}

func runTrial(cfg config.Configuration, tracePath string) (*cache.Counters, error) {
	d, err := driver.New(cfg)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(tracePath)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	if err := d.Run(trace.NewReader(f)); err != nil {
		return nil, err
	}

	return d.Counters(), nil
}

func metric(name string, c *cache.Counters) uint64 {
	if name == sweepcfg.MetricElapsedTime {
		return c.ElapsedTimeNanos
	}
	return c.TotalMisses()
}

func mapName(cfg config.Configuration) string {
	switch cfg.Map {
	case config.Direct:
		return "direct"
	case config.FullyAssociative:
		return "fully-associative"
	case config.SetAssociative:
		return fmt.Sprintf("set-associative(%d)", cfg.Sets)
	default:
		return "unknown"
	}
}
