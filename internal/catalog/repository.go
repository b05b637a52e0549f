// File: internal/catalog/repository.go
package catalog

import (
	"context"
	"sync"
	"time"

	"gorm.io/gorm"
)

// Repository is the read surface over the property catalog. FindAllActive
// returns one consistent snapshot per call: concurrent appends become
// visible on the next call, never mid-read.
type Repository interface {
	FindAllActive(ctx context.Context) ([]Listing, error)
	// ArchiveOlderThan flags listings listed before cutoff as archived and
	// returns how many rows changed. Used by the stale-listing job.
	ArchiveOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
}

type gormRepository struct {
	db *gorm.DB
}

// NewGORMRepository creates a GORM-backed catalog repository.
func NewGORMRepository(db *gorm.DB) Repository {
	return &gormRepository{db: db}
}

func (r *gormRepository) FindAllActive(ctx context.Context) ([]Listing, error) {
	var listings []Listing
	err := r.db.WithContext(ctx).
		Where("archived = ?", false).
		Order("id asc").
		Find(&listings).Error
	if err != nil {
		return nil, err
	}
	return listings, nil
}

func (r *gormRepository) ArchiveOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&Listing{}).
		Where("archived = ? AND listed_at < ?", false, cutoff).
		Update("archived", true)
	return result.RowsAffected, result.Error
}

// memoryRepository is an in-process catalog used in tests and local dev.
type memoryRepository struct {
	mu       sync.RWMutex
	listings []Listing
}

// NewMemoryRepository creates an in-memory catalog seeded with listings.
func NewMemoryRepository(listings ...Listing) *memoryRepository {
	r := &memoryRepository{}
	r.listings = append(r.listings, listings...)
	return r
}

// Add appends a listing, simulating an external writer.
func (r *memoryRepository) Add(l Listing) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.listings = append(r.listings, l)
}

func (r *memoryRepository) FindAllActive(ctx context.Context) ([]Listing, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Listing, 0, len(r.listings))
	for _, l := range r.listings {
		if !l.Archived {
			out = append(out, l)
		}
	}
	return out, nil
}

func (r *memoryRepository) ArchiveOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	var archived int64
	for i := range r.listings {
		if !r.listings[i].Archived && r.listings[i].ListedAt.Before(cutoff) {
			r.listings[i].Archived = true
			archived++
		}
	}
	return archived, nil
}
