package store

import (
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Persisted state lives under three independent keys.
const (
	CatalogKey = "catalog"
	HistoryKey = "paymentHistory"
	TaxRateKey = "taxRate"
)

// KV is a string key-value store surviving across restarts. Every catalog
// or history mutation overwrites the full serialized collection under its
// key; there are no transactions across keys.
type KV interface {
	Get(key string) (value string, ok bool, err error)
	Set(key, value string) error
}

// Entry is the database row backing one key.
type Entry struct {
	Key   string `gorm:"primaryKey;column:key"`
	Value string `gorm:"column:value;type:text"`
}

// TableName overrides the gorm table name
func (Entry) TableName() string {
	return "kv_entries"
}

// GormKV is the database-backed key-value store.
type GormKV struct {
	db *gorm.DB
}

// NewGormKV creates a key-value store on top of the given database.
func NewGormKV(db *gorm.DB) *GormKV {
	return &GormKV{db: db}
}

// Get returns the value stored under key, reporting whether it exists.
func (s *GormKV) Get(key string) (string, bool, error) {
	var entry Entry
	err := s.db.First(&entry, "key = ?", key).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return entry.Value, true, nil
}

// Set overwrites the value stored under key.
func (s *GormKV) Set(key, value string) error {
	entry := Entry{Key: key, Value: value}
	return s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value"}),
	}).Create(&entry).Error
}
