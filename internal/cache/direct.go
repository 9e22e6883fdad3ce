package cache

// DirectMapFactory builds direct-mapped caches: one slot per address class,
// no eviction policy.
type DirectMapFactory struct{}

// New implements MapStrategyFactory.
func (DirectMapFactory) New(blockSizeWords, cacheSizeSlots int) (MapStrategy, error) {
	if err := checkSizes(blockSizeWords, cacheSizeSlots); err != nil {
		return nil, err
	}

	return &directMap{
		blockMaskBits: log2(blockSizeWords) + log2(WordSize),
		indexMaskBits: log2(cacheSizeSlots),
		cacheSize:     cacheSizeSlots,
	}, nil
}

type directMap struct {
	blockMaskBits int
	indexMaskBits int
	cacheSize     int
}

// Map implements MapStrategy. Direct mapping has no replacement state to
// mutate: the address alone determines the slot.
func (d *directMap) Map(addr MemoryAddress, _ BlockArray) int {
	return int(addr>>d.blockMaskBits) % d.cacheSize
}

// Tag implements MapStrategy.
func (d *directMap) Tag(addr MemoryAddress) MemoryAddress {
	return addr >> (d.blockMaskBits + d.indexMaskBits)
}
