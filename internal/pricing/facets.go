package pricing

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/angelmondragon/stonefront-backend/pkg/db/models"
	"github.com/angelmondragon/stonefront-backend/pkg/enums"
)

// PriceRange is an inclusive [Min, Max] filter on resolved unit price.
type PriceRange struct {
	Min decimal.Decimal
	Max decimal.Decimal
}

// ParsePriceRange parses "min-max".
func ParsePriceRange(raw string) (*PriceRange, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	lo, hi, ok := strings.Cut(raw, "-")
	if !ok {
		return nil, fmt.Errorf("price range %q must be min-max", raw)
	}
	lower, err := decimal.NewFromString(strings.TrimSpace(lo))
	if err != nil {
		return nil, fmt.Errorf("price range %q: invalid min: %w", raw, err)
	}
	upper, err := decimal.NewFromString(strings.TrimSpace(hi))
	if err != nil {
		return nil, fmt.Errorf("price range %q: invalid max: %w", raw, err)
	}
	if upper.LessThan(lower) {
		return nil, fmt.Errorf("price range %q: max below min", raw)
	}
	return &PriceRange{Min: lower, Max: upper}, nil
}

func (r *PriceRange) contains(price decimal.Decimal) bool {
	return !price.LessThan(r.Min) && !price.GreaterThan(r.Max)
}

// Filters are the active category-page constraints. Empty strings and a nil
// Price mean "unconstrained".
type Filters struct {
	Price     *PriceRange
	ColorTone string
	Finish    string
	Thickness string
	Size      string
}

type facet int

const (
	facetNone facet = iota
	facetPrice
	facetColorTone
	facetFinish
	facetThickness
	facetSize
)

func (f Filters) matches(v models.Variation, skip facet) bool {
	if f.Price != nil && skip != facetPrice && !f.Price.contains(ResolvePrice(v)) {
		return false
	}
	if f.ColorTone != "" && skip != facetColorTone && string(v.ColorTone) != f.ColorTone {
		return false
	}
	if f.Finish != "" && skip != facetFinish && string(v.Finish) != f.Finish {
		return false
	}
	if f.Thickness != "" && skip != facetThickness && string(v.Thickness) != f.Thickness {
		return false
	}
	if f.Size != "" && skip != facetSize && string(v.Size) != f.Size {
		return false
	}
	return true
}

// Matches reports whether v satisfies every active filter.
func (f Filters) Matches(v models.Variation) bool {
	return f.matches(v, facetNone)
}

// ApplyFilters keeps only matching variations and drops products left with
// none. Input order is preserved and the input is not modified.
func ApplyFilters(products []models.Product, f Filters) []models.Product {
	return filterProducts(products, f, facetNone)
}

func filterProducts(products []models.Product, f Filters, skip facet) []models.Product {
	out := make([]models.Product, 0, len(products))
	for _, p := range products {
		kept := make([]models.Variation, 0, len(p.Variations))
		for _, v := range p.Variations {
			if f.matches(v, skip) {
				kept = append(kept, v)
			}
		}
		if len(kept) == 0 {
			continue
		}
		p.Variations = kept
		out = append(out, p)
	}
	return out
}

// PriceBand is a half-open [Min, Max) bucket of resolved unit price.
type PriceBand struct {
	Label string
	Min   decimal.Decimal
	Max   decimal.Decimal
}

// PriceBands are the fixed listing buckets. Prices at or above 2000 fall in
// none of them.
var PriceBands = []PriceBand{
	band(0, 200),
	band(200, 300),
	band(300, 500),
	band(500, 1000),
	band(1000, 2000),
}

func band(lower, upper int64) PriceBand {
	return PriceBand{
		Label: fmt.Sprintf("%d-%d", lower, upper),
		Min:   decimal.NewFromInt(lower),
		Max:   decimal.NewFromInt(upper),
	}
}

// FacetCounts maps each facet option to the number of variations it would
// show. Every facet except pcs and packSize ignores its own filter.
type FacetCounts struct {
	Price     map[string]int `json:"price"`
	ColorTone map[string]int `json:"colorTone"`
	Finish    map[string]int `json:"finish"`
	Thickness map[string]int `json:"thickness"`
	Size      map[string]int `json:"size"`
	Pcs       map[string]int `json:"pcs"`
	PackSize  map[string]int `json:"packSize"`
}

func newFacetCounts() FacetCounts {
	counts := FacetCounts{
		Price:     make(map[string]int, len(PriceBands)),
		ColorTone: map[string]int{},
		Finish:    map[string]int{},
		Thickness: map[string]int{},
		Size:      map[string]int{},
		Pcs:       map[string]int{},
		PackSize:  map[string]int{},
	}
	for _, b := range PriceBands {
		counts.Price[b.Label] = 0
	}
	for _, c := range enums.ColorTones() {
		counts.ColorTone[c.String()] = 0
	}
	for _, t := range enums.Thicknesses() {
		counts.Thickness[t.String()] = 0
	}
	for _, s := range enums.Sizes() {
		counts.Size[s.String()] = 0
	}
	return counts
}

// CountFacets computes the filter panel counts for a category.
func CountFacets(products []models.Product, f Filters) FacetCounts {
	counts := newFacetCounts()

	eachVariation(products, f, facetPrice, func(v models.Variation) {
		price := ResolvePrice(v)
		for _, b := range PriceBands {
			if !price.LessThan(b.Min) && price.LessThan(b.Max) {
				counts.Price[b.Label]++
				return
			}
		}
	})

	eachVariation(products, f, facetColorTone, func(v models.Variation) {
		incrementSeeded(counts.ColorTone, string(v.ColorTone))
	})

	eachVariation(products, f, facetFinish, func(v models.Variation) {
		if v.Finish != "" {
			counts.Finish[string(v.Finish)]++
		}
	})

	eachVariation(products, f, facetThickness, func(v models.Variation) {
		incrementSeeded(counts.Thickness, string(v.Thickness))
	})

	eachVariation(products, f, facetSize, func(v models.Variation) {
		incrementSeeded(counts.Size, string(v.Size))
	})

	eachVariation(products, f, facetNone, func(v models.Variation) {
		if v.Pcs != 0 {
			counts.Pcs[strconv.Itoa(v.Pcs)]++
		}
		if !v.PackSize.IsZero() {
			counts.PackSize[v.PackSize.String()]++
		}
	})

	return counts
}

func eachVariation(products []models.Product, f Filters, skip facet, fn func(models.Variation)) {
	for _, p := range products {
		for _, v := range p.Variations {
			if f.matches(v, skip) {
				fn(v)
			}
		}
	}
}

func incrementSeeded(m map[string]int, key string) {
	if _, ok := m[key]; ok {
		m[key]++
	}
}
