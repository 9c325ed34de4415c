package clinicalio_test

import (
	"math"
	"os"
	"path/filepath"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"

	"github.com/gnames/ithtable/internal/io/clinicalio"
)

const brca = `#Patient Identifier	Overall Survival Status	Overall Survival (Months)	Days to Birth
#Identifier	Status	Months	Days
#STRING	STRING	NUMBER	NUMBER
#1	1	1	1
PATIENT_ID	OS_STATUS	OS_MONTHS	DAYS_TO_BIRTH
TCGA-AA-0001	DECEASED	10	-18250
TCGA-AA-0002	LIVING	[Not Available]	-20000
TCGA-AA-0003	[Not Available]	2	[Not Available]
TCGA-AA-0004	LIVING	1	-3650
`

const blca = `#a
#b
#c
#d
PATIENT_ID	OS_STATUS	OS_MONTHS	DAYS_TO_BIRTH
TCGA-BB-0001	[Discrepancy]	4	-7300
`

func writeClinical(dir, loc, txt string) {
	path := clinicalio.Path(dir, loc)
	Expect(os.MkdirAll(filepath.Dir(path), 0755)).To(Succeed())
	Expect(os.WriteFile(path, []byte(txt), 0644)).To(Succeed())
}

var _ = Describe("Clinicalio", func() {
	var dir string

	BeforeEach(func() {
		var err error
		dir, err = os.MkdirTemp("", "clinicalio")
		Expect(err).ToNot(HaveOccurred())
		writeClinical(dir, "BRCA", brca)
		writeClinical(dir, "BLCA", blca)
	})

	AfterEach(func() {
		os.RemoveAll(dir)
	})

	It("loads and unions clinical tables", func() {
		l := clinicalio.New(dir)
		ps, err := l.Patients([]string{"BRCA", "BLCA"})
		Expect(err).ToNot(HaveOccurred())
		Expect(ps).To(HaveLen(3))

		Expect(ps[0].ID).To(Equal("TCGA-AA-0001"))
		Expect(ps[0].VitalStatus).To(Equal(1.0))
		Expect(ps[0].SurvivalDays).To(Equal(305.0))
		Expect(ps[0].AgeAtDiagnosis).To(Equal(50))
		Expect(ps[0].CancerLoc).To(Equal("BRCA"))

		Expect(ps[1].ID).To(Equal("TCGA-AA-0004"))
		Expect(ps[1].VitalStatus).To(Equal(0.0))

		Expect(ps[2].CancerLoc).To(Equal("BLCA"))
		Expect(math.IsNaN(ps[2].VitalStatus)).To(BeTrue())
		Expect(ps[2].AgeAtDiagnosis).To(Equal(20))
	})

	It("keeps patients with a blank survival", func() {
		writeClinical(dir, "HNSC", `#a
#b
#c
#d
PATIENT_ID	OS_STATUS	OS_MONTHS	DAYS_TO_BIRTH
TCGA-CC-0001	LIVING		-18250
TCGA-CC-0002	DECEASED	3	-7300
`)
		l := clinicalio.New(dir)
		ps, err := l.Patients([]string{"HNSC"})
		Expect(err).ToNot(HaveOccurred())
		Expect(ps).To(HaveLen(2))
		Expect(ps[0].ID).To(Equal("TCGA-CC-0001"))
		Expect(math.IsNaN(ps[0].SurvivalDays)).To(BeTrue())
		Expect(ps[0].AgeAtDiagnosis).To(Equal(50))
		Expect(ps[1].SurvivalDays).To(Equal(91.5))
	})

	It("fails on a missing cancer type", func() {
		l := clinicalio.New(dir)
		_, err := l.Patients([]string{"HNSC"})
		Expect(err).To(HaveOccurred())
	})
})
