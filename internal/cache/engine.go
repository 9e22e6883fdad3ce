package cache

// Engine owns one BlockArray, its mapping strategy, and the write policies
// that govern it. It is a pure function of its construction parameters and
// the event stream handed to Access: single-threaded, no locking, no
// retained I/O.
type Engine struct {
	blockSizeWords int
	blocks         BlockArray
	mapping        MapStrategy
	writePolicy    WritePolicy
	onWriteMiss    WriteMissPolicy
	sink           *Counters
}

// New constructs an Engine with a freshly allocated BlockArray and mapping
// strategy. sink may be shared with another Engine (split I/D mode); the
// model is single-threaded so no synchronization is required.
func New(
	blockSizeWords, cacheSizeSlots int,
	factory MapStrategyFactory,
	writePolicy WritePolicy,
	onWriteMiss WriteMissPolicy,
	sink *Counters,
) (*Engine, error) {
	mapping, err := factory.New(blockSizeWords, cacheSizeSlots)
	if err != nil {
		return nil, err
	}

	return &Engine{
		blockSizeWords: blockSizeWords,
		blocks:         newBlockArray(cacheSizeSlots),
		mapping:        mapping,
		writePolicy:    writePolicy,
		onWriteMiss:    onWriteMiss,
		sink:           sink,
	}, nil
}

// Access performs hit/miss classification for one (kind, addr) event and
// applies the write-policy/write-miss-policy side effects, mutating the
// shared counter sink. Step order: record the reference, compute tag and
// slot (which may perform LRU bookkeeping), then classify hit or miss.
func (e *Engine) Access(kind AccessType, addr MemoryAddress) {
	e.sink.reference(kind)

	tag := e.mapping.Tag(addr)
	slot := e.mapping.Map(addr, e.blocks)
	block := &e.blocks[slot]

	if block.Valid && block.Tag == tag {
		e.hit(kind, block)
		return
	}

	e.miss(kind, block, tag)
	e.sink.miss(kind)
}

// hit applies the write-policy side effect for a hit; reads need no
// further action beyond the reference already recorded.
func (e *Engine) hit(kind AccessType, block *Block) {
	if !kind.IsWrite() {
		return
	}

	if e.writePolicy == WriteThrough {
		e.sink.memoryWrite(1)
	} else {
		block.Dirty = true
	}
}

// miss applies the write-policy/write-miss-policy dispatch table.
func (e *Engine) miss(kind AccessType, block *Block, tag MemoryAddress) {
	if kind.IsWrite() && e.onWriteMiss == NoWriteAllocate {
		e.sink.memoryWrite(1)
		return
	}

	if kind.IsWrite() {
		e.installOnWrite(block, tag)
		return
	}

	e.installOnRead(block, tag)
}

// installOnRead handles a read miss: write-through installs the block
// without ever setting dirty; write-back writes back the outgoing block
// first if it was valid and dirty, then installs the new block clean.
func (e *Engine) installOnRead(block *Block, tag MemoryAddress) {
	if e.writePolicy == WriteThrough {
		block.Tag = tag
		block.Valid = true
		e.sink.memoryRead(e.blockSizeWords)
		return
	}

	if block.Valid && block.Dirty {
		e.sink.memoryWrite(e.blockSizeWords)
	}
	block.Tag = tag
	block.Valid = true
	block.Dirty = false
	e.sink.memoryRead(e.blockSizeWords)
}

// installOnWrite handles a write-allocate miss: write-through installs the
// block clean and writes the single word through; write-back writes back a
// dirty outgoing block first, then installs the new block dirty.
func (e *Engine) installOnWrite(block *Block, tag MemoryAddress) {
	if e.writePolicy == WriteThrough {
		block.Tag = tag
		block.Valid = true
		e.sink.memoryRead(e.blockSizeWords)
		e.sink.memoryWrite(1)
		return
	}

	if block.Valid && block.Dirty {
		e.sink.memoryWrite(e.blockSizeWords)
	}
	block.Tag = tag
	block.Valid = true
	block.Dirty = true
	e.sink.memoryRead(e.blockSizeWords)
}
