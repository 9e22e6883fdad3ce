// Command cachesim replays a memory-reference trace against a configurable
// single-level cache and reports aggregate hit/miss/timing counters.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/sarchlab/cachesim/internal/cache"
	"github.com/sarchlab/cachesim/internal/config"
	"github.com/sarchlab/cachesim/internal/driver"
	"github.com/sarchlab/cachesim/internal/logx"
	"github.com/sarchlab/cachesim/internal/report"
	"github.com/sarchlab/cachesim/internal/trace"
)

var (
	blockSize    = flag.Int("bs", 64, "block size in words")
	cacheSize    = flag.Int("cs", 256, "cache size in slots")
	writeThrough = flag.Bool("wt", false, "write-through (default write-back)")
	noWriteAlloc = flag.Bool("wna", false, "no-write-allocate (default write-allocate)")
	split        = flag.Bool("split", false, "split instruction/data caches")
	fullyAssoc   = flag.Bool("fa", false, "fully associative (default direct-mapped)")
	sets         = flag.Int("sa", 0, "set-associative with this many sets")
	verbose      = flag.Bool("v", false, "verbose diagnostic logging")
	reportFormat = flag.String("report-format", "table", "report format: table or json")
)

func main() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: cachesim [options] <trace-file>\n")
		fmt.Fprintf(os.Stderr, "\nOptions:\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() < 1 {
		flag.Usage()
		os.Exit(1)
	}

	os.Exit(run(flag.Arg(0)))
}

func run(tracePath string) int {
	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	log := logx.New(level).Module("cli")

	cfg := resolveConfiguration(tracePath)
	log.Debug("resolved configuration", "block_size_words", cfg.BlockSizeWords,
		"cache_size_slots", cfg.CacheSizeSlots, "split_id", cfg.SplitID)

	d, err := driver.New(cfg)
	if err != nil {
		log.Error("invalid configuration", "error", err)
		return 1
	}

	f, err := os.Open(tracePath)
	if err != nil {
		log.Error("cannot open trace", "error", err)
		return 1
	}
	defer f.Close()

	r := trace.NewReader(f)
	if err := d.Run(r); err != nil {
		log.Error("trace aborted", "error", err)
		return 1
	}

	if err := writeReport(os.Stdout, d.Counters()); err != nil {
		log.Error("failed to render report", "error", err)
		return 1
	}

	return 0
}

func resolveConfiguration(tracePath string) config.Configuration {
	cfg := config.Default()
	cfg.BlockSizeWords = *blockSize
	cfg.CacheSizeSlots = *cacheSize
	cfg.TracePath = tracePath
	cfg.SplitID = *split

	if *writeThrough {
		cfg.WritePolicy = cache.WriteThrough
	} else {
		cfg.WritePolicy = cache.WriteBack
	}

	if *noWriteAlloc {
		cfg.WriteMissPolicy = cache.NoWriteAllocate
	} else {
		cfg.WriteMissPolicy = cache.WriteAllocate
	}

	switch {
	case *fullyAssoc:
		cfg.Map = config.FullyAssociative
	case *sets > 0:
		cfg.Map = config.SetAssociative
		cfg.Sets = *sets
	default:
		cfg.Map = config.Direct
	}

	return cfg
}

func writeReport(w *os.File, counters *cache.Counters) error {
	if *reportFormat == "json" {
		return report.WriteJSON(w, counters)
	}
	return report.WriteTable(w, counters)
}
