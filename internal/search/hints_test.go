// File: internal/search/hints_test.go
package search

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"homequest_backend/internal/catalog"
)

func TestParseQueryHints(t *testing.T) {
	tests := []struct {
		name  string
		query string
		want  Hints
	}{
		{
			name:  "empty query yields no hints",
			query: "",
			want:  Hints{},
		},
		{
			name:  "bedroom count",
			query: "2 bedroom place",
			want:  Hints{Bedrooms: "2"},
		},
		{
			name:  "bedroom shorthand",
			query: "3br with garden",
			want:  Hints{Bedrooms: "3"},
		},
		{
			name:  "five or more bedrooms",
			query: "7 bedrooms",
			want:  Hints{Bedrooms: BedroomsFivePlus},
		},
		{
			name:  "plus sign means five plus",
			query: "5+ beds",
			want:  Hints{Bedrooms: BedroomsFivePlus},
		},
		{
			name:  "studio maps to zero bedrooms and studio type",
			query: "studio",
			want:  Hints{Bedrooms: BedroomsStudio, PropertyType: catalog.PropertyTypeStudio},
		},
		{
			name:  "townhouse wins over house",
			query: "townhouse downtown",
			want:  Hints{PropertyType: catalog.PropertyTypeTownhouse},
		},
		{
			name:  "flat is an apartment",
			query: "flat near school",
			want:  Hints{PropertyType: catalog.PropertyTypeApartment, NearSchool: true},
		},
		{
			name:  "price ceiling with k suffix",
			query: "house under 300k",
			want:  Hints{PropertyType: catalog.PropertyTypeHouse, PriceMax: int64Ptr(300000)},
		},
		{
			name:  "price floor with commas",
			query: "apartment over $150,000",
			want:  Hints{PropertyType: catalog.PropertyTypeApartment, PriceMin: int64Ptr(150000)},
		},
		{
			name:  "proximity flags",
			query: "quiet house near park",
			want:  Hints{PropertyType: catalog.PropertyTypeHouse, NearPark: true, QuietArea: true},
		},
		{
			name:  "location after in",
			query: "2 bed apartment in north ridge under 300k",
			want: Hints{
				Bedrooms:     "2",
				PropertyType: catalog.PropertyTypeApartment,
				Location:     "north ridge",
				PriceMax:     int64Ptr(300000),
			},
		},
		{
			name:  "location phrase stops at flag words",
			query: "bungalow in riverside quiet area",
			want: Hints{
				PropertyType: catalog.PropertyTypeBungalow,
				Location:     "riverside",
				QuietArea:    true,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseQueryHints(tt.query)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestHintsNeverOverrideExplicitFilters(t *testing.T) {
	hints := ParseQueryHints("3 bed house in oldtown under 100k")

	explicitMin := int64(200000)
	c := Criteria{
		Bedrooms:     "2",
		PropertyType: catalog.PropertyTypeApartment,
		LocationText: "Northside",
		PriceMax:     int64Ptr(500000),
		PriceMin:     &explicitMin,
	}
	hints.ApplyTo(&c)

	assert.Equal(t, "2", c.Bedrooms)
	assert.Equal(t, catalog.PropertyTypeApartment, c.PropertyType)
	assert.Equal(t, "Northside", c.LocationText)
	require.NotNil(t, c.PriceMax)
	assert.Equal(t, int64(500000), *c.PriceMax)
	assert.Equal(t, int64(200000), *c.PriceMin)
}

func TestHintsFillUnsetFields(t *testing.T) {
	hints := ParseQueryHints("3 bed house in oldtown under 100k")

	var c Criteria
	hints.ApplyTo(&c)

	assert.Equal(t, "3", c.Bedrooms)
	assert.Equal(t, catalog.PropertyTypeHouse, c.PropertyType)
	assert.Equal(t, "oldtown", c.LocationText)
	require.NotNil(t, c.PriceMax)
	assert.Equal(t, int64(100000), *c.PriceMax)
}

func int64Ptr(v int64) *int64 {
	return &v
}
