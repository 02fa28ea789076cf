package helpers

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/shopspring/decimal"

	"github.com/angelmondragon/stonefront-backend/pkg/types"
)

// ComputeTotals sums line subtotals and adds shipping and tail lift. The
// client-sent totals are kept verbatim under Client.
func ComputeTotals(subtotals []decimal.Decimal, shippingCost, tailLift decimal.Decimal, client map[string]any) types.OrderTotals {
	cartSubtotal := decimal.Zero
	for _, s := range subtotals {
		cartSubtotal = cartSubtotal.Add(s)
	}
	cartSubtotal = cartSubtotal.Round(2)
	return types.OrderTotals{
		CartSubtotal: cartSubtotal,
		ShippingCost: shippingCost,
		TailLift:     tailLift,
		Total:        cartSubtotal.Add(shippingCost).Add(tailLift).Round(2),
		Client:       client,
	}
}

// OrderNumber formats ORD-<unix millis>-<1000..9999>. intn follows
// rand.Intn semantics; nil uses math/rand.
func OrderNumber(now time.Time, intn func(int) int) string {
	if intn == nil {
		intn = rand.Intn
	}
	return fmt.Sprintf("ORD-%d-%d", now.UnixMilli(), 1000+intn(9000))
}
