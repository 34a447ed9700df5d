package repositories

import (
	"math"
	"sort"
	"strings"

	"storefront/internal/models"
)

const (
	DefaultPageSize = 10
	MaxPageSize     = 100

	// MaxPage keeps (page-1)*limit inside an int.
	MaxPage = math.MaxInt / MaxPageSize
)

// ProductFilter selects and orders a page of products.
type ProductFilter struct {
	Keyword  string // case-insensitive substring of the title
	Category string // exact match
	Featured *bool
	MinPrice *float64 // inclusive
	MaxPrice *float64 // inclusive
	Sort     string   // field name, leading "-" for descending
	Page     int
	Limit    int
}

// Normalize clamps page and limit into their valid ranges.
func (f ProductFilter) Normalize() ProductFilter {
	if f.Page < 1 {
		f.Page = 1
	}
	if f.Page > MaxPage {
		f.Page = MaxPage
	}
	if f.Limit <= 0 || f.Limit > MaxPageSize {
		f.Limit = DefaultPageSize
	}
	return f
}

func (f ProductFilter) Offset() int {
	n := f.Normalize()
	return (n.Page - 1) * n.Limit
}

// sortKey describes a sortable product field in every backend.
type sortKey struct {
	column string
	bson   string
	less   func(a, b *models.Product) bool
}

var sortKeys = map[string]sortKey{
	"createdAt":    {"created_at", "createdAt", func(a, b *models.Product) bool { return a.CreatedAt.Before(b.CreatedAt) }},
	"price":        {"price", "price", func(a, b *models.Product) bool { return a.Price < b.Price }},
	"rating":       {"rating", "rating", func(a, b *models.Product) bool { return a.Rating < b.Rating }},
	"title":        {"title", "title", func(a, b *models.Product) bool { return a.Title < b.Title }},
	"numReviews":   {"num_reviews", "numReviews", func(a, b *models.Product) bool { return a.NumReviews < b.NumReviews }},
	"countInStock": {"count_in_stock", "countInStock", func(a, b *models.Product) bool { return a.CountInStock < b.CountInStock }},
}

// sortSpec resolves the requested sort. Unknown fields fall back to newest first.
func (f ProductFilter) sortSpec() (sortKey, bool) {
	field, desc := f.Sort, false
	if strings.HasPrefix(field, "-") {
		field, desc = field[1:], true
	}
	if key, ok := sortKeys[field]; ok {
		return key, desc
	}
	return sortKeys["createdAt"], true
}

// Match reports whether p satisfies the filter's predicates.
func (f ProductFilter) Match(p *models.Product) bool {
	if f.Keyword != "" && !strings.Contains(strings.ToLower(p.Title), strings.ToLower(f.Keyword)) {
		return false
	}
	if f.Category != "" && p.Category != f.Category {
		return false
	}
	if f.Featured != nil && p.Featured != *f.Featured {
		return false
	}
	if f.MinPrice != nil && p.Price < *f.MinPrice {
		return false
	}
	if f.MaxPrice != nil && p.Price > *f.MaxPrice {
		return false
	}
	return true
}

// Apply filters, sorts and paginates an in-memory product slice.
func (f ProductFilter) Apply(all []models.Product) []models.Product {
	matched := make([]models.Product, 0, len(all))
	for i := range all {
		if f.Match(&all[i]) {
			matched = append(matched, all[i])
		}
	}
	key, desc := f.sortSpec()
	sort.SliceStable(matched, func(i, j int) bool {
		a, b := &matched[i], &matched[j]
		if desc {
			a, b = b, a
		}
		if key.less(a, b) {
			return true
		}
		if key.less(b, a) {
			return false
		}
		return matched[i].ID < matched[j].ID
	})
	n := f.Normalize()
	start := f.Offset()
	if start < 0 || start >= len(matched) {
		return []models.Product{}
	}
	end := start + n.Limit
	if end > len(matched) {
		end = len(matched)
	}
	return matched[start:end]
}
