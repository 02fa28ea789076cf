package pricing

import "github.com/angelmondragon/stonefront-backend/pkg/db/models"

// SelectVariation picks the variation that represents a product in listings:
// a lone variation is always chosen; otherwise the cheapest in-stock one by
// per-area rate, else the cheapest out-of-stock one. Ties keep the earlier
// entry. Callers pass resolved variations so derived rates compare correctly.
func SelectVariation(vs []models.Variation) (models.Variation, bool) {
	switch len(vs) {
	case 0:
		return models.Variation{}, false
	case 1:
		return vs[0], true
	}

	inStock, outOfStock := -1, -1
	for i, v := range vs {
		if v.Stock > 0 {
			if inStock < 0 || v.PerM2.LessThan(vs[inStock].PerM2) {
				inStock = i
			}
			continue
		}
		if outOfStock < 0 || v.PerM2.LessThan(vs[outOfStock].PerM2) {
			outOfStock = i
		}
	}

	switch {
	case inStock >= 0:
		return vs[inStock], true
	case outOfStock >= 0:
		return vs[outOfStock], true
	default:
		return vs[0], true
	}
}

// FindByUUID locates a variation by its external identifier.
func FindByUUID(vs []models.Variation, id int32) (models.Variation, bool) {
	for _, v := range vs {
		if v.UUID == id {
			return v, true
		}
	}
	return models.Variation{}, false
}
