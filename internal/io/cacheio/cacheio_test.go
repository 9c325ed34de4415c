package cacheio_test

import (
	"math"
	"os"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"

	"github.com/gnames/ithtable/internal/ent/ith"
	"github.com/gnames/ithtable/internal/io/cacheio"
)

var _ = Describe("Cacheio", func() {
	var dir string

	BeforeEach(func() {
		var err error
		dir, err = os.MkdirTemp("", "cacheio")
		Expect(err).ToNot(HaveOccurred())
	})

	AfterEach(func() {
		os.RemoveAll(dir)
	})

	It("keeps summaries between sessions", func() {
		c, err := cacheio.New(dir, true)
		Expect(err).ToNot(HaveOccurred())
		Expect(c.Open()).To(Succeed())

		_, ok, err := c.Get("k1")
		Expect(err).ToNot(HaveOccurred())
		Expect(ok).To(BeFalse())

		s := ith.Summary{
			NbClones:              2,
			ClonalProp:            50,
			SmallestVAF:           0.3,
			ShannonIndex:          math.Ln2,
			MostPopulatedCloneVAF: 0.9,
		}
		Expect(c.Set("k1", s)).To(Succeed())
		Expect(c.Close()).To(Succeed())

		c, err = cacheio.New(dir, false)
		Expect(err).ToNot(HaveOccurred())
		Expect(c.Open()).To(Succeed())
		defer c.Close()
		res, ok, err := c.Get("k1")
		Expect(err).ToNot(HaveOccurred())
		Expect(ok).To(BeTrue())
		Expect(res).To(Equal(s))
	})

	It("stores missing summaries", func() {
		c, err := cacheio.New(dir, true)
		Expect(err).ToNot(HaveOccurred())
		Expect(c.Open()).To(Succeed())
		defer c.Close()
		Expect(c.Set("k2", ith.Missing())).To(Succeed())
		res, ok, err := c.Get("k2")
		Expect(err).ToNot(HaveOccurred())
		Expect(ok).To(BeTrue())
		Expect(res.IsMissing()).To(BeTrue())
	})

	It("refuses to work when closed", func() {
		c, err := cacheio.New(dir, true)
		Expect(err).ToNot(HaveOccurred())
		_, _, err = c.Get("k")
		Expect(err).To(HaveOccurred())
		Expect(c.Set("k", ith.Missing())).ToNot(Succeed())
	})
})
