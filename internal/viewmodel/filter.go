// Package viewmodel derives what the property screens display from the raw
// listing data: the filtered subset, price buckets, status and type counts,
// and monthly histograms. Every function here is pure.
package viewmodel

import (
	"strconv"
	"strings"

	"estateadmin/internal/domain"
)

// All disables a filter dimension.
const All = "all"

const (
	SoldOnly      = "sold"
	AvailableOnly = "available"
)

// Filter is the admin's current selection on a property screen.
type Filter struct {
	Query       string
	Type        string // all | sale | rent
	PriceBucket string // all | Bucket.Key
	Bedrooms    string // all | exact count
	Category    string
	District    string
	Sold        string // all | sold | available
}

// DefaultFilter shows everything.
func DefaultFilter() Filter {
	return Filter{Type: All, PriceBucket: All, Bedrooms: All, Category: All, District: All, Sold: All}
}

// ParseFilter builds a Filter from raw form values, as returned by get.
// Values outside a selector's domain fall back to All.
func ParseFilter(get func(key string) string) Filter {
	f := DefaultFilter()
	f.Query = strings.TrimSpace(get("q"))

	switch t := strings.ToLower(strings.TrimSpace(get("type"))); t {
	case domain.TypeSale, domain.TypeRent:
		f.Type = t
	}
	if b := strings.TrimSpace(get("price")); b != "" {
		if _, ok := BucketByKey(b); ok {
			f.PriceBucket = b
		}
	}
	if n, err := strconv.Atoi(strings.TrimSpace(get("bedrooms"))); err == nil && n >= 0 {
		f.Bedrooms = strconv.Itoa(n)
	}
	if c := strings.ToLower(strings.TrimSpace(get("category"))); c != "" {
		f.Category = c
	}
	if d := strings.ToLower(strings.TrimSpace(get("district"))); d != "" {
		f.District = d
	}
	switch s := strings.ToLower(strings.TrimSpace(get("sold"))); s {
	case SoldOnly, AvailableOnly:
		f.Sold = s
	}
	return f
}

// Active reports whether any dimension narrows the result.
func (f Filter) Active() bool {
	return f != DefaultFilter()
}

// Match reports whether p satisfies every active dimension of f.
func (f Filter) Match(p domain.Property) bool {
	if q := strings.ToLower(f.Query); q != "" {
		if !strings.Contains(strings.ToLower(p.Title), q) && !strings.Contains(strings.ToLower(p.Location), q) {
			return false
		}
	}
	if !bypass(f.Type) && p.Type != f.Type {
		return false
	}
	if !bypass(f.PriceBucket) {
		b, ok := BucketOf(p.Price)
		if !ok || b.Key != f.PriceBucket {
			return false
		}
	}
	if !bypass(f.Bedrooms) && strconv.Itoa(p.Bedrooms) != f.Bedrooms {
		return false
	}
	if !bypass(f.Category) && !strings.EqualFold(p.Category, f.Category) {
		return false
	}
	if !bypass(f.District) && !strings.EqualFold(p.District, f.District) {
		return false
	}
	switch f.Sold {
	case SoldOnly:
		return p.IsSold
	case AvailableOnly:
		return !p.IsSold
	}
	return true
}

// bypass is true when v disables its dimension.
func bypass(v string) bool { return v == "" || v == All }

// Apply returns the properties matching f in their original order. The input
// is never modified.
func Apply(props []domain.Property, f Filter) []domain.Property {
	out := make([]domain.Property, 0, len(props))
	for _, p := range props {
		if f.Match(p) {
			out = append(out, p)
		}
	}
	return out
}
