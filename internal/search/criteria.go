// File: internal/search/criteria.go
package search

import (
	"fmt"
	"strings"

	"homequest_backend/internal/catalog"
	"homequest_backend/internal/common"
)

// Sort orders accepted by the query engine.
const (
	SortRecommended = "recommended"
	SortPriceLow    = "price_low"
	SortPriceHigh   = "price_high"
	SortBedrooms    = "bedrooms"
	SortNewest      = "newest"
)

// Bedroom filter tokens beyond the plain counts "1".."4".
const (
	BedroomsStudio   = "studio"
	BedroomsFivePlus = "5+"
)

// Criteria is the normalized, validated set of search constraints. A zero
// Criteria matches every listing, ordered by the recommended tie-break.
// Criteria is passed by value into the engine; there is no shared query
// state between requests.
type Criteria struct {
	LocationText string
	PriceMin     *int64
	PriceMax     *int64
	Bedrooms     string
	PropertyType string
	NearPark     bool
	NearSchool   bool
	QuietArea    bool
	SortBy       string
	FreeText     string
}

// Normalize canonicalizes enum casing, applies the default sort order and
// validates every present field. It runs before any catalog access, so an
// invalid combination never touches the store.
func (c *Criteria) Normalize() error {
	c.LocationText = strings.TrimSpace(c.LocationText)
	c.FreeText = strings.TrimSpace(c.FreeText)

	if c.PriceMin != nil && *c.PriceMin < 0 {
		return common.ErrBadRequest.WithDetails("priceMin must not be negative.")
	}
	if c.PriceMax != nil && *c.PriceMax < 0 {
		return common.ErrBadRequest.WithDetails("priceMax must not be negative.")
	}
	if c.PriceMin != nil && c.PriceMax != nil && *c.PriceMin > *c.PriceMax {
		return common.ErrBadRequest.WithDetails("priceMin must not exceed priceMax.")
	}

	c.Bedrooms = strings.ToLower(strings.TrimSpace(c.Bedrooms))
	switch c.Bedrooms {
	case "", BedroomsStudio, "1", "2", "3", "4", BedroomsFivePlus:
	default:
		return common.ErrBadRequest.WithDetails("bedrooms must be one of: studio, 1, 2, 3, 4, 5+.")
	}

	if c.PropertyType != "" {
		canonical, ok := canonicalPropertyType(c.PropertyType)
		if !ok {
			return common.ErrBadRequest.WithDetails(
				fmt.Sprintf("propertyType must be one of: %s.", strings.Join(catalog.PropertyTypes, ", ")))
		}
		c.PropertyType = canonical
	}

	c.SortBy = strings.ToLower(strings.TrimSpace(c.SortBy))
	switch c.SortBy {
	case "":
		c.SortBy = SortRecommended
	case SortRecommended, SortPriceLow, SortPriceHigh, SortBedrooms, SortNewest:
	default:
		return common.ErrBadRequest.WithDetails("sortBy must be one of: recommended, price_low, price_high, bedrooms, newest.")
	}

	return nil
}

func canonicalPropertyType(t string) (string, bool) {
	for _, pt := range catalog.PropertyTypes {
		if strings.EqualFold(pt, t) {
			return pt, true
		}
	}
	return "", false
}

// bedroomsMatch applies the bedroom filter token to a listing's bedroom
// count: studio means zero bedrooms, "5+" means five or more, plain counts
// match exactly.
func bedroomsMatch(filter string, bedrooms int) bool {
	switch filter {
	case BedroomsStudio:
		return bedrooms == 0
	case BedroomsFivePlus:
		return bedrooms >= 5
	default:
		return fmt.Sprintf("%d", bedrooms) == filter
	}
}
