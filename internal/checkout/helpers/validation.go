package helpers

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	pkgerrors "github.com/angelmondragon/stonefront-backend/pkg/errors"
)

// ProductID accepts a numeric id, a numeric string or an object carrying id.
func ProductID(raw any) (uint, bool) {
	switch v := raw.(type) {
	case map[string]any:
		return ProductID(v["id"])
	default:
		n, ok := toInt64(v)
		if !ok || n <= 0 {
			return 0, false
		}
		return uint(n), true
	}
}

// VariationID parses the external variation id. The second result is the
// raw value rendered for messages.
func VariationID(raw any) (int32, string, bool) {
	label := display(raw)
	n, ok := toInt64(raw)
	if !ok || n < math.MinInt32 || n > math.MaxInt32 {
		return 0, label, false
	}
	return int32(n), label, true
}

// Quantity defaults to 1 when absent. Non-numeric values parse as 0.
func Quantity(raw any) int {
	if raw == nil {
		return 1
	}
	n, ok := toInt64(raw)
	if !ok {
		return 0
	}
	return int(n)
}

// Money reads a client-sent amount, treating anything unparseable as zero.
func Money(raw any) decimal.Decimal {
	switch v := raw.(type) {
	case float64:
		return decimal.NewFromFloat(v)
	case json.Number:
		d, err := decimal.NewFromString(v.String())
		if err == nil {
			return d
		}
	case string:
		d, err := decimal.NewFromString(strings.TrimSpace(v))
		if err == nil {
			return d
		}
	case int:
		return decimal.NewFromInt(int64(v))
	}
	return decimal.Zero
}

// Fee reads a client-sent surcharge such as shippingCost. Unparseable values
// count as zero; negative ones are rejected.
func Fee(totals map[string]any, key string) (decimal.Decimal, error) {
	fee := Money(totals[key])
	if fee.IsNegative() {
		return decimal.Zero, pkgerrors.Newf(pkgerrors.CodeValidation, "%s must not be negative.", key)
	}
	return fee, nil
}

func toInt64(raw any) (int64, bool) {
	switch v := raw.(type) {
	case float64:
		if v != math.Trunc(v) {
			return 0, false
		}
		return int64(v), true
	case int:
		return int64(v), true
	case json.Number:
		n, err := v.Int64()
		return n, err == nil
	case string:
		n, err := strconv.ParseInt(strings.TrimSpace(v), 10, 64)
		return n, err == nil
	}
	return 0, false
}

func display(raw any) string {
	switch v := raw.(type) {
	case nil:
		return "null"
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case json.Number:
		return v.String()
	case int:
		return strconv.Itoa(v)
	}
	b, err := json.Marshal(raw)
	if err != nil {
		return ""
	}
	return string(b)
}
