// Package report renders a cache.Counters snapshot for human consumption
// (a table) or for scripting (JSON).
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/sarchlab/cachesim/internal/cache"
)

// WriteTable renders counters as an aligned table.
func WriteTable(w io.Writer, counters *cache.Counters) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)

	rows := []struct {
		label string
		value string
	}{
		{"Instruction References", fmt.Sprintf("%d", counters.InstructionRefs)},
		{"Data References", fmt.Sprintf("%d", counters.DataRefs)},
		{"Instruction Misses", fmt.Sprintf("%d", counters.InstructionMisses)},
		{"Data Misses", fmt.Sprintf("%d", counters.DataMisses)},
		{"Memory Read Words", fmt.Sprintf("%d", counters.MemoryReadWords)},
		{"Memory Write Words", fmt.Sprintf("%d", counters.MemoryWriteWords)},
		{"Total References", fmt.Sprintf("%d", counters.TotalRefs())},
		{"Total Misses", fmt.Sprintf("%d", counters.TotalMisses())},
		{"Miss Ratio", fmt.Sprintf("%.4f", counters.MissRatio())},
		{"Elapsed Time", time.Duration(counters.ElapsedTimeNanos).String()},
	}

	fmt.Fprintln(tw, "Metric\tValue")
	for _, r := range rows {
		fmt.Fprintf(tw, "%s\t%s\n", r.label, r.value)
	}

	return tw.Flush()
}

// jsonCounters mirrors cache.Counters with json tags and a few derived
// fields, for the -report-format json CLI mode.
type jsonCounters struct {
	InstructionRefs   uint64  `json:"instruction_refs"`
	DataRefs          uint64  `json:"data_refs"`
	InstructionMisses uint64  `json:"instruction_misses"`
	DataMisses        uint64  `json:"data_misses"`
	MemoryReadWords   uint64  `json:"memory_read_words"`
	MemoryWriteWords  uint64  `json:"memory_write_words"`
	ElapsedTimeNanos  uint64  `json:"elapsed_time_nanos"`
	TotalRefs         uint64  `json:"total_refs"`
	TotalMisses       uint64  `json:"total_misses"`
	MissRatio         float64 `json:"miss_ratio"`
}

// WriteJSON renders counters as indented JSON.
func WriteJSON(w io.Writer, counters *cache.Counters) error {
	payload := jsonCounters{
		InstructionRefs:   counters.InstructionRefs,
		DataRefs:          counters.DataRefs,
		InstructionMisses: counters.InstructionMisses,
		DataMisses:        counters.DataMisses,
		MemoryReadWords:   counters.MemoryReadWords,
		MemoryWriteWords:  counters.MemoryWriteWords,
		ElapsedTimeNanos:  counters.ElapsedTimeNanos,
		TotalRefs:         counters.TotalRefs(),
		TotalMisses:       counters.TotalMisses(),
		MissRatio:         counters.MissRatio(),
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(payload)
}
