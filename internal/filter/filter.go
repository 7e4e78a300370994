// Package filter implements the property search pipeline used by the public
// listing endpoint: free text, city, type, status, price range and code
// predicates combined over the in-memory catalog.
package filter

import (
	"strconv"
	"strings"

	"imovel-service/internal/model"
)

// All is the sentinel select value meaning the predicate is off.
const All = "todos"

// Criteria holds one filter state. Empty or sentinel values disable the
// corresponding predicate.
type Criteria struct {
	Code       string
	City       string
	Text       string
	Type       string
	Status     string
	PriceRange string
}

// Apply returns the ordered subsequence of properties satisfying every
// active predicate. Input order is preserved, the slice is never mutated.
func Apply(properties []model.Property, crit Criteria, ranges []model.PriceRange) []model.Property {
	code := digitsOnly(crit.Code)
	text := strings.ToLower(crit.Text)
	minPrice, maxPrice, priceActive := resolveRange(crit.PriceRange, ranges)

	result := make([]model.Property, 0, len(properties))
	for _, p := range properties {
		if code != "" && !strings.Contains(strconv.Itoa(p.Code), code) {
			continue
		}
		if active(crit.City) && p.City != crit.City {
			continue
		}
		if text != "" && !matchesText(&p, text) {
			continue
		}
		if active(crit.Type) && p.Type != crit.Type {
			continue
		}
		if active(crit.Status) && p.Status != crit.Status {
			continue
		}
		if priceActive && !matchesPrice(p.Price, minPrice, maxPrice) {
			continue
		}
		result = append(result, p)
	}
	return result
}

func active(value string) bool {
	return value != "" && value != All
}

// digitsOnly strips everything but digits, so inputs like "#123" still match
func digitsOnly(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func matchesText(p *model.Property, lowered string) bool {
	return strings.Contains(strings.ToLower(p.Title), lowered) ||
		strings.Contains(strings.ToLower(p.Address), lowered)
}

// resolveRange looks up the selected range's bounds. An unknown range value
// disables the predicate, matching a stale filter option gracefully.
func resolveRange(value string, ranges []model.PriceRange) (*float64, *float64, bool) {
	if !active(value) {
		return nil, nil, false
	}
	for i := range ranges {
		if ranges[i].Value == value {
			return ranges[i].MinPrice, ranges[i].MaxPrice, true
		}
	}
	return nil, nil, false
}

func matchesPrice(price float64, min, max *float64) bool {
	if min != nil && price < *min {
		return false
	}
	if max != nil && price > *max {
		return false
	}
	return true
}
