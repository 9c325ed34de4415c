package cache_test

import (
	"time"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"

	"github.com/gnames/ithtable/internal/ent/cache"
)

var _ = Describe("Key", func() {
	It("is stable for the same file", func() {
		t := time.Unix(1_530_000_000, 0)
		k1 := cache.Key("results/p/pyclone/d/tables/cluster.tsv", 10, t, 5)
		k2 := cache.Key("results/p/pyclone/d/tables/cluster.tsv", 10, t, 5)
		Expect(k1).To(Equal(k2))
		Expect(k1).To(HaveLen(36))
	})

	It("changes when the file changes", func() {
		t := time.Unix(1_530_000_000, 0)
		k1 := cache.Key("a", 10, t, 5)
		Expect(cache.Key("a", 11, t, 5)).ToNot(Equal(k1))
		Expect(cache.Key("a", 10, t.Add(time.Second), 5)).ToNot(Equal(k1))
		Expect(cache.Key("a", 10, t, 3)).ToNot(Equal(k1))
	})
})
