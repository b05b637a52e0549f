// File: internal/kvstore/gorm.go
package kvstore

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// kvRecord is the row shape backing the GORM store.
type kvRecord struct {
	Key   string `gorm:"primaryKey;type:varchar(512)"`
	Value []byte `gorm:"not null"`
}

func (kvRecord) TableName() string {
	return "kv_entries"
}

type gormStore struct {
	db *gorm.DB
}

// NewGORMStore creates a Store backed by a single-table GORM database.
// It migrates the backing table on construction.
func NewGORMStore(db *gorm.DB) (Store, error) {
	if err := db.AutoMigrate(&kvRecord{}); err != nil {
		return nil, err
	}
	return &gormStore{db: db}, nil
}

func (s *gormStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	var rec kvRecord
	err := s.db.WithContext(ctx).Where("key = ?", key).First(&rec).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, false, nil
		}
		return nil, false, err
	}
	return rec.Value, true, nil
}

// Set is an atomic per-key upsert: ON CONFLICT (key) DO UPDATE.
func (s *gormStore) Set(ctx context.Context, key string, value []byte) error {
	rec := kvRecord{Key: key, Value: value}
	return s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value"}),
	}).Create(&rec).Error
}

func (s *gormStore) Delete(ctx context.Context, key string) error {
	return s.db.WithContext(ctx).Where("key = ?", key).Delete(&kvRecord{}).Error
}

func (s *gormStore) ListByPrefix(ctx context.Context, prefix string) ([]Entry, error) {
	var recs []kvRecord
	// Escape LIKE metacharacters so the prefix is matched literally.
	escaped := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(prefix)
	err := s.db.WithContext(ctx).
		Where("key LIKE ?", escaped+"%").
		Order("key asc").
		Find(&recs).Error
	if err != nil {
		return nil, err
	}
	entries := make([]Entry, 0, len(recs))
	for _, rec := range recs {
		entries = append(entries, Entry{Key: rec.Key, Value: rec.Value})
	}
	return entries, nil
}
