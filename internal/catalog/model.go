// File: internal/catalog/model.go
package catalog

import (
	"time"

	"github.com/gosimple/slug"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

// Property types a listing can carry.
const (
	PropertyTypeHouse     = "House"
	PropertyTypeApartment = "Apartment"
	PropertyTypeStudio    = "Studio"
	PropertyTypeTownhouse = "Townhouse"
	PropertyTypeBungalow  = "Bungalow"
)

// PropertyTypes enumerates all valid property types.
var PropertyTypes = []string{
	PropertyTypeHouse,
	PropertyTypeApartment,
	PropertyTypeStudio,
	PropertyTypeTownhouse,
	PropertyTypeBungalow,
}

// IsValidPropertyType reports whether t is an enumerated property type.
func IsValidPropertyType(t string) bool {
	for _, pt := range PropertyTypes {
		if pt == t {
			return true
		}
	}
	return false
}

// Listing is a property-catalog record. The catalog is owned by an external
// collaborator; this core only reads it (plus the archive job, which flags
// stale rows out of search visibility). A studio unit carries Bedrooms == 0.
type Listing struct {
	ID              int64          `gorm:"primaryKey;autoIncrement" json:"id"`
	Title           string         `gorm:"type:varchar(255);not null" json:"title"`
	Slug            string         `gorm:"type:varchar(255);index" json:"slug"`
	Location        string         `gorm:"type:varchar(255);not null" json:"location"`
	Price           int64          `gorm:"not null" json:"price"`
	Bedrooms        int            `gorm:"not null" json:"bedrooms"`
	PropertyType    string         `gorm:"type:varchar(50);not null" json:"propertyType"`
	HasParkNearby   bool           `gorm:"not null;default:false" json:"hasParkNearby"`
	HasSchoolNearby bool           `gorm:"not null;default:false" json:"hasSchoolNearby"`
	IsQuietArea     bool           `gorm:"not null;default:false" json:"isQuietArea"`
	Amenities       pq.StringArray `gorm:"type:text[]" json:"amenities,omitempty"`
	Archived        bool           `gorm:"not null;default:false;index" json:"-"`
	ListedAt        time.Time      `gorm:"not null" json:"listedAt"`
}

func (Listing) TableName() string {
	return "listings"
}

// BeforeSave derives the URL slug from the title when none was provided.
func (l *Listing) BeforeSave(tx *gorm.DB) error {
	if l.Slug == "" && l.Title != "" {
		l.Slug = slug.Make(l.Title)
	}
	return nil
}
