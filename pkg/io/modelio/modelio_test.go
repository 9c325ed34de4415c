package modelio_test

import (
	"database/sql"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"

	"github.com/gnames/ithtable/pkg/ent/model"
	"github.com/gnames/ithtable/pkg/io/modelio"
	"github.com/jinzhu/gorm"
	_ "github.com/jinzhu/gorm/dialects/postgres"
)

// unreachable is a connection string to a port nothing listens on.
const unreachable = "host=127.0.0.1 port=1 user=nobody dbname=none " +
	"sslmode=disable connect_timeout=1"

var _ = Describe("Modelio", func() {
	var db *gorm.DB

	BeforeEach(func() {
		sqlDB, err := sql.Open("postgres", unreachable)
		Expect(err).ToNot(HaveOccurred())
		db, _ = gorm.Open("postgres", sqlDB)
		Expect(db).ToNot(BeNil())
	})

	AfterEach(func() {
		db.Close()
	})

	It("reports migration errors", func() {
		m := modelio.New(db)
		Expect(m.Migrate()).ToNot(Succeed())
	})

	It("reports errors of saving runs", func() {
		m := modelio.New(db)
		Expect(m.SaveRun(model.Run{FeatureTable: "ith_features"})).ToNot(Succeed())
	})
})
