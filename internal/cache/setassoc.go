package cache

import "fmt"

// SetAssociativeFactory builds a set-associative cache with Sets disjoint
// groups of slots, each with its own LRU replacement state.
type SetAssociativeFactory struct {
	Sets int
}

// New implements MapStrategyFactory.
func (f SetAssociativeFactory) New(blockSizeWords, cacheSizeSlots int) (MapStrategy, error) {
	if err := checkSizes(blockSizeWords, cacheSizeSlots); err != nil {
		return nil, err
	}
	if !isPowerOfTwo(f.Sets) {
		return nil, fmt.Errorf("sets %d: %w", f.Sets, ErrNotPowerOfTwo)
	}
	if cacheSizeSlots%f.Sets != 0 {
		return nil, fmt.Errorf("cache size %d, sets %d: %w", cacheSizeSlots, f.Sets, ErrSetsDoNotDivide)
	}

	slotsPerSet := cacheSizeSlots / f.Sets
	lrus := make([]*LRU, f.Sets)
	for i := range lrus {
		lrus[i] = NewLRU(slotsPerSet)
	}

	return &setAssociative{
		blockMaskBits: log2(blockSizeWords) + log2(WordSize),
		sets:          f.Sets,
		slotsPerSet:   slotsPerSet,
		lru:           lrus,
	}, nil
}

type setAssociative struct {
	blockMaskBits int
	sets          int
	slotsPerSet   int
	lru           []*LRU
}

func (s *setAssociative) setIndex(addr MemoryAddress) int {
	return int(addr>>s.blockMaskBits) % s.sets
}

// Map implements MapStrategy, scoping the hit scan and victim selection to
// the address's set window [set*slotsPerSet, (set+1)*slotsPerSet).
func (s *setAssociative) Map(addr MemoryAddress, blocks BlockArray) int {
	set := s.setIndex(addr)
	start := set * s.slotsPerSet
	end := start + s.slotsPerSet
	tag := s.Tag(addr)

	for i := start; i < end; i++ {
		if blocks[i].Valid && blocks[i].Tag == tag {
			s.lru[set].Touch(i - start)
			return i
		}
	}

	victim := s.lru[set].Victim()
	s.lru[set].Touch(victim)
	return start + victim
}

// Tag implements MapStrategy.
func (s *setAssociative) Tag(addr MemoryAddress) MemoryAddress {
	return addr >> s.blockMaskBits
}
