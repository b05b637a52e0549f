// File: internal/search/engine.go
package search

import (
	"context"
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"

	"homequest_backend/internal/catalog"
	"homequest_backend/internal/common"
	"homequest_backend/internal/config"
)

// Result is the full matching, sorted set. Total always equals the match
// count before any pagination slicing.
type Result struct {
	Items []catalog.Listing `json:"items"`
	Total int               `json:"total"`
}

// Engine applies a Criteria against the property catalog: normalize, parse
// free text, filter, sort. It performs no mutation and is safe to share
// across concurrent requests.
type Engine struct {
	catalog catalog.Repository
	timeout time.Duration
	logger  *zap.Logger
}

// NewEngine creates a new listing query engine.
func NewEngine(repo catalog.Repository, cfg *config.Config, logger *zap.Logger) *Engine {
	return &Engine{
		catalog: repo,
		timeout: cfg.CatalogTimeout,
		logger:  logger,
	}
}

// Search runs the full query pipeline. Validation happens before the
// catalog read, so an invalid filter combination never touches the store.
// A zero-match result is not an error.
func (e *Engine) Search(ctx context.Context, c Criteria) (*Result, error) {
	if err := c.Normalize(); err != nil {
		return nil, err
	}
	if c.FreeText != "" {
		ParseQueryHints(c.FreeText).ApplyTo(&c)
	}

	ctx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	listings, err := e.catalog.FindAllActive(ctx)
	if err != nil {
		e.logger.Error("Catalog read failed", zap.Error(err))
		return nil, common.ErrStore.WithDetails("Could not read the property catalog.")
	}

	matched := make([]catalog.Listing, 0, len(listings))
	for _, l := range listings {
		if matches(&l, &c) {
			matched = append(matched, l)
		}
	}

	sortListings(matched, c.SortBy)

	return &Result{Items: matched, Total: len(matched)}, nil
}

// matches reports whether every present criterion holds for the listing.
func matches(l *catalog.Listing, c *Criteria) bool {
	if c.LocationText != "" &&
		!strings.Contains(strings.ToLower(l.Location), strings.ToLower(c.LocationText)) {
		return false
	}
	if c.PriceMin != nil && l.Price < *c.PriceMin {
		return false
	}
	if c.PriceMax != nil && l.Price > *c.PriceMax {
		return false
	}
	if c.Bedrooms != "" && !bedroomsMatch(c.Bedrooms, l.Bedrooms) {
		return false
	}
	if c.PropertyType != "" && l.PropertyType != c.PropertyType {
		return false
	}
	if c.NearPark && !l.HasParkNearby {
		return false
	}
	if c.NearSchool && !l.HasSchoolNearby {
		return false
	}
	if c.QuietArea && !l.IsQuietArea {
		return false
	}
	return true
}

// sortListings orders the matched set. Every order is total and stable:
// identical input always produces identical output.
func sortListings(listings []catalog.Listing, sortBy string) {
	var less func(a, b *catalog.Listing) bool
	switch sortBy {
	case SortPriceLow:
		less = func(a, b *catalog.Listing) bool {
			if a.Price != b.Price {
				return a.Price < b.Price
			}
			return a.ID < b.ID
		}
	case SortPriceHigh:
		less = func(a, b *catalog.Listing) bool {
			if a.Price != b.Price {
				return a.Price > b.Price
			}
			return a.ID < b.ID
		}
	case SortBedrooms:
		less = func(a, b *catalog.Listing) bool {
			if a.Bedrooms != b.Bedrooms {
				return a.Bedrooms > b.Bedrooms
			}
			if a.Price != b.Price {
				return a.Price < b.Price
			}
			return a.ID < b.ID
		}
	case SortNewest:
		less = func(a, b *catalog.Listing) bool {
			if !a.ListedAt.Equal(b.ListedAt) {
				return a.ListedAt.After(b.ListedAt)
			}
			return a.ID > b.ID
		}
	default: // SortRecommended
		less = func(a, b *catalog.Listing) bool {
			as, bs := amenityScore(a), amenityScore(b)
			if as != bs {
				return as > bs
			}
			if a.Price != b.Price {
				return a.Price < b.Price
			}
			return a.ID < b.ID
		}
	}
	sort.SliceStable(listings, func(i, j int) bool {
		return less(&listings[i], &listings[j])
	})
}

// amenityScore drives the recommended order: listings with more desirable
// surroundings rank first, cheaper and older ids break ties.
func amenityScore(l *catalog.Listing) int {
	score := 0
	if l.HasParkNearby {
		score++
	}
	if l.HasSchoolNearby {
		score++
	}
	if l.IsQuietArea {
		score++
	}
	return score
}
