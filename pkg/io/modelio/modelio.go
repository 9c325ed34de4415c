package modelio

import (
	"github.com/gnames/ithtable/pkg/ent/model"
	"github.com/jinzhu/gorm"
)

type modelio struct {
	db *gorm.DB
}

// New returns a new instance of Model
func New(db *gorm.DB) model.Model {
	res := modelio{db: db}
	return &res
}

// Migrate creates tables in the database.
func (m *modelio) Migrate() error {
	return m.db.AutoMigrate(&model.Run{}).Error
}

// SaveRun inserts a run record.
func (m *modelio) SaveRun(r model.Run) error {
	return m.db.Create(&r).Error
}
