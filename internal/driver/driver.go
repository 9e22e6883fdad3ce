// Package driver is the trace-driven external collaborator: it owns one or
// two cache.Engine instances over a shared cache.Counters sink and routes
// each trace.Event to the right one.
package driver

import (
	"errors"
	"io"

	"github.com/sarchlab/cachesim/internal/cache"
	"github.com/sarchlab/cachesim/internal/config"
	"github.com/sarchlab/cachesim/internal/trace"
)

// Driver routes trace events to one (unified) or two (split I/D) cache
// engines sharing a single counter sink. In split mode the instruction
// engine only ever receives instruction-fetch reads; everything else
// (data reads and all writes) goes to the data engine. The two engines
// have independent block arrays and independent LRU state, but both feed
// the same Counters — driver -> engines -> sink is a tree, never shared
// mutably across goroutines (the parallel sweep builds one Driver, and so
// one sink, per trial).
type Driver struct {
	instr   *cache.Engine // nil unless SplitID
	data    *cache.Engine
	sink    *cache.Counters
	splitID bool
}

// New validates cfg and builds the engine(s) it describes.
func New(cfg config.Configuration) (*Driver, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	factory, err := cfg.Factory()
	if err != nil {
		return nil, err
	}

	sink := &cache.Counters{}

	dataEngine, err := cache.New(cfg.BlockSizeWords, cfg.CacheSizeSlots, factory, cfg.WritePolicy, cfg.WriteMissPolicy, sink)
	if err != nil {
		return nil, err
	}

	d := &Driver{data: dataEngine, sink: sink, splitID: cfg.SplitID}
	if !cfg.SplitID {
		return d, nil
	}

	instrEngine, err := cache.New(cfg.BlockSizeWords, cfg.CacheSizeSlots, factory, cfg.WritePolicy, cfg.WriteMissPolicy, sink)
	if err != nil {
		return nil, err
	}
	d.instr = instrEngine

	return d, nil
}

// Access routes a single trace event to the instruction engine (split mode,
// instruction-fetch reads only) or the data engine (everything else).
func (d *Driver) Access(ev trace.Event) {
	if d.splitID && ev.Kind.IsInstructionRead() {
		d.instr.Access(ev.Kind, ev.Addr)
		return
	}
	d.data.Access(ev.Kind, ev.Addr)
}

// Counters returns the shared counter sink accumulating across every
// engine this Driver owns.
func (d *Driver) Counters() *cache.Counters {
	return d.sink
}

// Run pulls events from r one at a time and synchronously drives them
// through Access until the trace is exhausted or a parse/IO error aborts
// it: the driver either processes the entire trace or fails fast.
func (d *Driver) Run(r *trace.Reader) error {
	for {
		ev, err := r.Next()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}
		d.Access(ev)
	}
}
