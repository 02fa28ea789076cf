package pricing

import "github.com/shopspring/decimal"

var hundred = decimal.NewFromInt(100)

// EffectiveDiscount applies product-over-category precedence. Non-positive
// values count as absent.
func EffectiveDiscount(productDiscount, categoryDiscount decimal.Decimal) decimal.Decimal {
	if productDiscount.IsPositive() {
		return productDiscount
	}
	if categoryDiscount.IsPositive() {
		return categoryDiscount
	}
	return decimal.Zero
}

// PriceBlock is the struck-through reference price shown next to a
// discounted price.
type PriceBlock struct {
	PricePerArea decimal.Decimal
	Price        decimal.Decimal
}

// PriceBeforeDiscount marks both values up by the discount percentage. It
// returns nil when there is no discount.
func PriceBeforeDiscount(perArea, price, discount decimal.Decimal) *PriceBlock {
	if !discount.IsPositive() {
		return nil
	}
	mul := decimal.NewFromInt(1).Add(discount.Div(hundred))
	return &PriceBlock{
		PricePerArea: perArea.Mul(mul).Round(2),
		Price:        price.Mul(mul).Round(2),
	}
}
