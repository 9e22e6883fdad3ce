package cache

// FullyAssociativeFactory builds fully associative caches: any address may
// occupy any slot; LRU selects the victim on a miss.
type FullyAssociativeFactory struct{}

// New implements MapStrategyFactory.
func (FullyAssociativeFactory) New(blockSizeWords, cacheSizeSlots int) (MapStrategy, error) {
	if err := checkSizes(blockSizeWords, cacheSizeSlots); err != nil {
		return nil, err
	}

	return &fullyAssociative{
		blockMaskBits: log2(blockSizeWords) + log2(WordSize),
		lru:           NewLRU(cacheSizeSlots),
	}, nil
}

type fullyAssociative struct {
	blockMaskBits int
	lru           *LRU
}

// Map implements MapStrategy. On hit it touches the matching slot; on miss
// it evicts the LRU victim and touches that slot in its place. The caller
// (Engine) is responsible for installing the new tag — Map only says which
// slot the access belongs in.
func (f *fullyAssociative) Map(addr MemoryAddress, blocks BlockArray) int {
	tag := f.Tag(addr)

	for idx, b := range blocks {
		if b.Valid && b.Tag == tag {
			f.lru.Touch(idx)
			return idx
		}
	}

	victim := f.lru.Victim()
	f.lru.Touch(victim)
	return victim
}

// Tag implements MapStrategy.
func (f *fullyAssociative) Tag(addr MemoryAddress) MemoryAddress {
	return addr >> f.blockMaskBits
}
