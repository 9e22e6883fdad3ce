package cache

// Timing constants shared by every Engine.
const (
	HitTimeNanos         uint64 = 5
	MissTimeNanosPerWord uint64 = 100
)

// Counters is the pure accumulator behind every Engine: it has no branching
// logic beyond what Engine.Access already decided. A single Counters may be
// shared by two engines (split I/D mode) or handed one-per-trial to a
// parallel sweep; Combine adds one Counters into another pointwise.
type Counters struct {
	InstructionRefs   uint64
	DataRefs          uint64
	InstructionMisses uint64
	DataMisses        uint64
	MemoryReadWords   uint64
	MemoryWriteWords  uint64
	ElapsedTimeNanos  uint64
}

// reference records one access of kind arriving, before hit/miss
// classification, and advances elapsed time by HitTimeNanos.
func (c *Counters) reference(kind AccessType) {
	if kind.IsInstructionRead() {
		c.InstructionRefs++
	} else {
		c.DataRefs++
	}
	c.ElapsedTimeNanos += HitTimeNanos
}

// miss records that the access just classified was a miss.
func (c *Counters) miss(kind AccessType) {
	if kind.IsInstructionRead() {
		c.InstructionMisses++
	} else {
		c.DataMisses++
	}
}

// memoryRead posts a read of words words to the backing store, advancing
// elapsed time by words * MissTimeNanosPerWord.
func (c *Counters) memoryRead(words int) {
	c.MemoryReadWords += uint64(words)
	c.ElapsedTimeNanos += uint64(words) * MissTimeNanosPerWord
}

// memoryWrite posts a write of words words to the backing store, advancing
// elapsed time by words * MissTimeNanosPerWord.
func (c *Counters) memoryWrite(words int) {
	c.MemoryWriteWords += uint64(words)
	c.ElapsedTimeNanos += uint64(words) * MissTimeNanosPerWord
}

// TotalRefs is InstructionRefs + DataRefs.
func (c *Counters) TotalRefs() uint64 {
	return c.InstructionRefs + c.DataRefs
}

// TotalMisses is InstructionMisses + DataMisses.
func (c *Counters) TotalMisses() uint64 {
	return c.InstructionMisses + c.DataMisses
}

// MissRatio is TotalMisses/TotalRefs, or 0 when there have been no
// references yet.
func (c *Counters) MissRatio() float64 {
	total := c.TotalRefs()
	if total == 0 {
		return 0
	}
	return float64(c.TotalMisses()) / float64(total)
}

// Combine adds other's counts into c, pointwise, so that the Counters of
// separate engines or separate sweep trials can be folded into one
// summary. Split-I/D engines need no Combine: they already share one sink.
func (c *Counters) Combine(other *Counters) {
	c.InstructionRefs += other.InstructionRefs
	c.DataRefs += other.DataRefs
	c.InstructionMisses += other.InstructionMisses
	c.DataMisses += other.DataMisses
	c.MemoryReadWords += other.MemoryReadWords
	c.MemoryWriteWords += other.MemoryWriteWords
	c.ElapsedTimeNanos += other.ElapsedTimeNanos
}
