package cache_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/cachesim/internal/cache"
)

var _ = Describe("mapping strategies", func() {
	Describe("DirectMapFactory", func() {
		It("computes slot and tag from the expected bit masks", func() {
			strategy, err := cache.DirectMapFactory{}.New(1, 4)
			Expect(err).NotTo(HaveOccurred())

			blocks := make(cache.BlockArray, 4)
			Expect(strategy.Map(0x00, blocks)).To(Equal(0))
			Expect(strategy.Map(0x04, blocks)).To(Equal(1))
			Expect(strategy.Map(0x08, blocks)).To(Equal(2))
			Expect(strategy.Tag(0x04)).To(Equal(cache.MemoryAddress(0)))
			Expect(strategy.Tag(0x40)).To(Equal(cache.MemoryAddress(4)))
		})
	})

	Describe("SetAssociativeFactory", func() {
		It("scopes hit search and eviction to the address's set", func() {
			strategy, err := cache.SetAssociativeFactory{Sets: 2}.New(1, 4)
			Expect(err).NotTo(HaveOccurred())

			blocks := make(cache.BlockArray, 4)
			// block_mask_bits = log2(1)+log2(4) = 2; set index = (addr>>2) mod 2.
			set0Slot := strategy.Map(0x00, blocks) // set 0 -> slots [0,1]
			Expect(set0Slot).To(BeNumerically("<", 2))

			blocks[set0Slot].Valid = true
			blocks[set0Slot].Tag = strategy.Tag(0x00)

			set1Slot := strategy.Map(0x04, blocks) // set 1 -> slots [2,3]
			Expect(set1Slot).To(BeNumerically(">=", 2))
		})
	})

	Describe("validation", func() {
		It("rejects a non-power-of-two sets value", func() {
			_, err := cache.SetAssociativeFactory{Sets: 3}.New(1, 4)
			Expect(err).To(MatchError(cache.ErrNotPowerOfTwo))
		})
	})
})
