// File: internal/search/hints.go
package search

import (
	"regexp"
	"strconv"
	"strings"

	"homequest_backend/internal/catalog"
)

// Hints are structured values extracted from a free-text query. They only
// ever fill fields the caller left unset; an explicit structured filter
// always wins over a free-text-derived value for the same dimension.
type Hints struct {
	Location     string
	Bedrooms     string
	PropertyType string
	PriceMin     *int64
	PriceMax     *int64
	NearPark     bool
	NearSchool   bool
	QuietArea    bool
}

var (
	bedroomRe  = regexp.MustCompile(`\b(\d+)\s*(\+)?\s*(?:bed(?:room)?s?|br|bhk)\b`)
	priceMaxRe = regexp.MustCompile(`\b(?:under|below|max|up to)\s*\$?(\d[\d,]*)\s*(k)?\b`)
	priceMinRe = regexp.MustCompile(`\b(?:over|above|min|from)\s*\$?(\d[\d,]*)\s*(k)?\b`)
)

// Property type tokens in recognition order. "townhouse" must be checked
// before "house" so the longer token claims the match.
var propertyTypeTokens = []struct {
	token string
	value string
}{
	{"townhouse", catalog.PropertyTypeTownhouse},
	{"bungalow", catalog.PropertyTypeBungalow},
	{"apartment", catalog.PropertyTypeApartment},
	{"flat", catalog.PropertyTypeApartment},
	{"house", catalog.PropertyTypeHouse},
}

// Words that terminate a location phrase started by "in"/"around".
var locationStopWords = map[string]bool{
	"with": true, "under": true, "below": true, "over": true, "above": true,
	"near": true, "for": true, "and": true, "from": true, "max": true,
	"min": true, "up": true, "quiet": true, "peaceful": true,
}

// ParseQueryHints extracts structured filter hints from a natural-language
// query using deterministic rules. It is a pure function so it can be
// swapped or stubbed in tests; there is no model behind it.
func ParseQueryHints(query string) Hints {
	var h Hints
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return h
	}

	if m := bedroomRe.FindStringSubmatch(q); m != nil {
		n, err := strconv.Atoi(m[1])
		if err == nil {
			switch {
			case n == 0:
				h.Bedrooms = BedroomsStudio
			case n >= 5 || m[2] == "+":
				h.Bedrooms = BedroomsFivePlus
			default:
				h.Bedrooms = strconv.Itoa(n)
			}
		}
	}
	if h.Bedrooms == "" && containsWord(q, "studio") {
		h.Bedrooms = BedroomsStudio
	}

	for _, pt := range propertyTypeTokens {
		if containsWord(q, pt.token) {
			h.PropertyType = pt.value
			break
		}
	}
	// A bare "studio" query is a studio unit, which the catalog also models
	// as its own property type.
	if h.PropertyType == "" && containsWord(q, "studio") {
		h.PropertyType = catalog.PropertyTypeStudio
	}

	if m := priceMaxRe.FindStringSubmatch(q); m != nil {
		if v, ok := parseAmount(m[1], m[2]); ok {
			h.PriceMax = &v
		}
	}
	if m := priceMinRe.FindStringSubmatch(q); m != nil {
		if v, ok := parseAmount(m[1], m[2]); ok {
			h.PriceMin = &v
		}
	}

	if containsWord(q, "park") {
		h.NearPark = true
	}
	if containsWord(q, "school") || containsWord(q, "schools") {
		h.NearSchool = true
	}
	if containsWord(q, "quiet") || containsWord(q, "peaceful") {
		h.QuietArea = true
	}

	h.Location = extractLocation(q)

	return h
}

// ApplyTo fills unset fields of c from the hints. Explicitly set structured
// fields are never overridden.
func (h Hints) ApplyTo(c *Criteria) {
	if c.LocationText == "" && h.Location != "" {
		c.LocationText = h.Location
	}
	if c.Bedrooms == "" && h.Bedrooms != "" {
		c.Bedrooms = h.Bedrooms
	}
	if c.PropertyType == "" && h.PropertyType != "" {
		c.PropertyType = h.PropertyType
	}
	if c.PriceMin == nil && h.PriceMin != nil {
		c.PriceMin = h.PriceMin
	}
	if c.PriceMax == nil && h.PriceMax != nil {
		c.PriceMax = h.PriceMax
	}
	if h.NearPark {
		c.NearPark = true
	}
	if h.NearSchool {
		c.NearSchool = true
	}
	if h.QuietArea {
		c.QuietArea = true
	}
}

func containsWord(q, word string) bool {
	for _, tok := range strings.FieldsFunc(q, isSeparator) {
		if tok == word {
			return true
		}
	}
	return false
}

func isSeparator(r rune) bool {
	return r == ' ' || r == ',' || r == '.' || r == ';' || r == '!' || r == '?'
}

func parseAmount(digits, suffix string) (int64, bool) {
	v, err := strconv.ParseInt(strings.ReplaceAll(digits, ",", ""), 10, 64)
	if err != nil || v < 0 {
		return 0, false
	}
	if suffix == "k" {
		v *= 1000
	}
	return v, true
}

// extractLocation collects the word sequence following "in"/"around" up to
// a stop word or a numeric token.
func extractLocation(q string) string {
	tokens := strings.FieldsFunc(q, isSeparator)
	for i, tok := range tokens {
		if tok != "in" && tok != "around" {
			continue
		}
		var parts []string
		for _, next := range tokens[i+1:] {
			if locationStopWords[next] || startsWithDigit(next) {
				break
			}
			parts = append(parts, next)
		}
		if len(parts) > 0 {
			return strings.Join(parts, " ")
		}
	}
	return ""
}

func startsWithDigit(s string) bool {
	return len(s) > 0 && s[0] >= '0' && s[0] <= '9'
}
