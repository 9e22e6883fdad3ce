package cache_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/cachesim/internal/cache"
)

var _ = Describe("LRU", func() {
	It("starts ordered oldest-first 0..n-1", func() {
		l := cache.NewLRU(4)
		Expect(l.Victim()).To(Equal(0))
	})

	It("moves a touched slot to the back", func() {
		l := cache.NewLRU(4)
		l.Touch(0)
		Expect(l.Victim()).To(Equal(1))

		l.Touch(1)
		Expect(l.Victim()).To(Equal(2))
	})

	It("re-touching the same slot keeps it at the back without duplication", func() {
		l := cache.NewLRU(3)
		l.Touch(0)
		l.Touch(1)
		l.Touch(0)
		Expect(l.Victim()).To(Equal(2))
	})
})
