package orders

import (
	"time"

	"github.com/angelmondragon/stonefront-backend/pkg/db/models"
)

// OrderItemDTO is the frozen line snapshot returned to clients.
type OrderItemDTO struct {
	ID          uint    `json:"id"`
	Product     uint    `json:"product"`
	ProductName string  `json:"product_name"`
	VariationID string  `json:"variation_id"`
	SKU         string  `json:"sku"`
	Quantity    int     `json:"quantity"`
	UnitPrice   float64 `json:"unit_price"`
	Subtotal    float64 `json:"subtotal"`
}

// OrderDTO is the public order payload. Totals merges the client-sent
// totals with the server-computed ones, server values winning.
type OrderDTO struct {
	ID              uint           `json:"id"`
	OrderNumber     string         `json:"orderNumber"`
	User            *uint          `json:"user,omitempty"`
	Status          string         `json:"status"`
	Items           []OrderItemDTO `json:"items"`
	Shipping        map[string]any `json:"shipping"`
	Contact         map[string]any `json:"contact"`
	ShippingAddress map[string]any `json:"shipping_address"`
	Totals          map[string]any `json:"totals"`
	Metadata        map[string]any `json:"metadata"`
	StripeSessionID *string        `json:"stripeSessionId,omitempty"`
	PaidAt          *time.Time     `json:"paidAt,omitempty"`
	CreatedAt       time.Time      `json:"createdAt"`
	UpdatedAt       time.Time      `json:"updatedAt"`
}

// NewOrderDTO renders an order with its items.
func NewOrderDTO(order models.Order) OrderDTO {
	items := make([]OrderItemDTO, 0, len(order.Items))
	for _, item := range order.Items {
		items = append(items, OrderItemDTO{
			ID:          item.ID,
			Product:     item.ProductID,
			ProductName: item.ProductName,
			VariationID: item.VariationID,
			SKU:         item.SKU,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice.InexactFloat64(),
			Subtotal:    item.Subtotal.InexactFloat64(),
		})
	}

	totals := make(map[string]any, len(order.Totals.Client)+4)
	for k, v := range order.Totals.Client {
		totals[k] = v
	}
	totals["cartSubtotal"] = order.Totals.CartSubtotal.InexactFloat64()
	totals["shippingCost"] = order.Totals.ShippingCost.InexactFloat64()
	totals["tailLift"] = order.Totals.TailLift.InexactFloat64()
	totals["total"] = order.Totals.Total.InexactFloat64()

	return OrderDTO{
		ID:              order.ID,
		OrderNumber:     order.OrderNumber,
		User:            order.UserID,
		Status:          order.Status.String(),
		Items:           items,
		Shipping:        orEmpty(order.Shipping),
		Contact:         orEmpty(order.Contact),
		ShippingAddress: orEmpty(order.ShippingAddress),
		Totals:          totals,
		Metadata:        orEmpty(order.Metadata),
		StripeSessionID: order.StripeSessionID,
		PaidAt:          order.PaidAt,
		CreatedAt:       order.CreatedAt,
		UpdatedAt:       order.UpdatedAt,
	}
}

func orEmpty(m map[string]any) map[string]any {
	if m == nil {
		return map[string]any{}
	}
	return m
}
