package clinical_test

import (
	"math"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"

	"github.com/gnames/ithtable/internal/ent/clinical"
)

var _ = Describe("Clinical", func() {
	It("converts vital status", func() {
		Expect(clinical.VitalStatus("DECEASED")).To(Equal(1.0))
		Expect(clinical.VitalStatus("LIVING")).To(Equal(0.0))
		Expect(math.IsNaN(clinical.VitalStatus("[Not Available]"))).To(BeTrue())
	})

	It("converts survival months to days", func() {
		d, err := clinical.SurvivalDays("10")
		Expect(err).ToNot(HaveOccurred())
		Expect(d).To(Equal(305.0))

		_, err = clinical.SurvivalDays("[Not Available]")
		Expect(err).To(MatchError(clinical.ErrNotAvailable))

		d, err = clinical.SurvivalDays("")
		Expect(err).ToNot(HaveOccurred())
		Expect(math.IsNaN(d)).To(BeTrue())

		d, err = clinical.SurvivalDays("NA")
		Expect(err).ToNot(HaveOccurred())
		Expect(math.IsNaN(d)).To(BeTrue())

		_, err = clinical.SurvivalDays("ten")
		Expect(err).To(HaveOccurred())
	})

	It("converts days to birth to age", func() {
		age, err := clinical.AgeAtDiagnosis("-18250")
		Expect(err).ToNot(HaveOccurred())
		Expect(age).To(Equal(50))

		age, err = clinical.AgeAtDiagnosis("-18432.5")
		Expect(err).ToNot(HaveOccurred())
		Expect(age).To(Equal(50))

		_, err = clinical.AgeAtDiagnosis("[Not Available]")
		Expect(err).To(MatchError(clinical.ErrNotAvailable))
	})
})
