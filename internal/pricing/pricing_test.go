package pricing

import (
	"testing"

	"github.com/shopspring/decimal"

	"github.com/angelmondragon/stonefront-backend/pkg/db/models"
)

func dec(t *testing.T, s string) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(s)
	if err != nil {
		t.Fatalf("parse decimal %q: %v", s, err)
	}
	return d
}

func TestResolvePrice(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		v    models.Variation
		want string
	}{
		{name: "stored price wins", v: models.Variation{Price: dec(t, "99.99"), PerM2: dec(t, "10"), PackSize: dec(t, "2")}, want: "99.99"},
		{name: "derived from area rate", v: models.Variation{PerM2: dec(t, "34.99"), PackSize: dec(t, "1.44")}, want: "50.39"},
		{name: "derived rounds half up", v: models.Variation{PerM2: dec(t, "10.005"), PackSize: dec(t, "1")}, want: "10.01"},
		{name: "missing pack size", v: models.Variation{PerM2: dec(t, "10")}, want: "0"},
		{name: "missing rate", v: models.Variation{PackSize: dec(t, "2")}, want: "0"},
		{name: "negative stored price falls back", v: models.Variation{Price: dec(t, "-5"), PerM2: dec(t, "5"), PackSize: dec(t, "2")}, want: "10"},
		{name: "nothing set", v: models.Variation{}, want: "0"},
	}

	for _, tc := range cases {
		got := ResolvePrice(tc.v)
		if !got.Equal(dec(t, tc.want)) {
			t.Fatalf("%s: expected %s, got %s", tc.name, tc.want, got)
		}
	}
}

func TestResolvePriceIsIdempotent(t *testing.T) {
	t.Parallel()

	v := models.Variation{PerM2: dec(t, "21.5"), PackSize: dec(t, "0.72")}
	once := Resolve(v)
	twice := Resolve(once)
	if !once.Price.Equal(twice.Price) {
		t.Fatalf("re-resolving changed price: %s vs %s", once.Price, twice.Price)
	}
	if !once.Price.Equal(dec(t, "15.48")) {
		t.Fatalf("unexpected derived price %s", once.Price)
	}

	// A stored price is never recomputed from rate and pack size.
	stored := models.Variation{Price: dec(t, "12"), PerM2: dec(t, "100"), PackSize: dec(t, "100")}
	if got := Resolve(stored).Price; !got.Equal(dec(t, "12")) {
		t.Fatalf("stored price was overwritten: %s", got)
	}
}

func TestResolvePerArea(t *testing.T) {
	t.Parallel()

	v := models.Variation{Price: dec(t, "100"), PackSize: dec(t, "3")}
	if got := ResolvePerArea(v); !got.Equal(dec(t, "33.33")) {
		t.Fatalf("expected derived rate 33.33, got %s", got)
	}
	v.PerM2 = dec(t, "40")
	if got := ResolvePerArea(v); !got.Equal(dec(t, "40")) {
		t.Fatalf("stored rate should win, got %s", got)
	}
}

func TestLineSubtotal(t *testing.T) {
	t.Parallel()

	if got := LineSubtotal(dec(t, "50.39"), 3); !got.Equal(dec(t, "151.17")) {
		t.Fatalf("unexpected subtotal %s", got)
	}
}

func TestEffectiveDiscount(t *testing.T) {
	t.Parallel()

	cases := []struct {
		product, category, want string
	}{
		{"5", "10", "5"},
		{"0", "10", "10"},
		{"0", "0", "0"},
		{"-3", "7", "7"},
		{"12.5", "0", "12.5"},
	}
	for _, tc := range cases {
		got := EffectiveDiscount(dec(t, tc.product), dec(t, tc.category))
		if !got.Equal(dec(t, tc.want)) {
			t.Fatalf("EffectiveDiscount(%s, %s) = %s, want %s", tc.product, tc.category, got, tc.want)
		}
	}
}

func TestPriceBeforeDiscount(t *testing.T) {
	t.Parallel()

	if block := PriceBeforeDiscount(dec(t, "30"), dec(t, "43.2"), decimal.Zero); block != nil {
		t.Fatalf("expected nil block without discount, got %+v", block)
	}

	block := PriceBeforeDiscount(dec(t, "30"), dec(t, "43.2"), dec(t, "10"))
	if block == nil {
		t.Fatal("expected a block for a positive discount")
	}
	if !block.PricePerArea.Equal(dec(t, "33")) {
		t.Fatalf("unexpected per-area reference %s", block.PricePerArea)
	}
	if !block.Price.Equal(dec(t, "47.52")) {
		t.Fatalf("unexpected price reference %s", block.Price)
	}
}

func TestSelectVariation(t *testing.T) {
	t.Parallel()

	vs := []models.Variation{
		{UUID: 1, Stock: 0, PerM2: dec(t, "10")},
		{UUID: 2, Stock: 5, PerM2: dec(t, "20")},
		{UUID: 3, Stock: 3, PerM2: dec(t, "15")},
	}
	got, ok := SelectVariation(vs)
	if !ok || got.UUID != 3 {
		t.Fatalf("expected cheapest in-stock variation 3, got %d", got.UUID)
	}

	for i := range vs {
		vs[i].Stock = 0
	}
	got, ok = SelectVariation(vs)
	if !ok || got.UUID != 1 {
		t.Fatalf("expected globally cheapest variation 1, got %d", got.UUID)
	}
}

func TestSelectVariationEdgeCases(t *testing.T) {
	t.Parallel()

	if _, ok := SelectVariation(nil); ok {
		t.Fatal("expected no selection for empty input")
	}

	single := []models.Variation{{UUID: 9, Stock: 0, PerM2: dec(t, "999")}}
	if got, _ := SelectVariation(single); got.UUID != 9 {
		t.Fatalf("single variation must be selected unconditionally, got %d", got.UUID)
	}

	ties := []models.Variation{
		{UUID: 4, Stock: 2, PerM2: dec(t, "12")},
		{UUID: 5, Stock: 7, PerM2: dec(t, "12")},
	}
	if got, _ := SelectVariation(ties); got.UUID != 4 {
		t.Fatalf("ties should keep the first encountered, got %d", got.UUID)
	}
}

func TestFindByUUID(t *testing.T) {
	t.Parallel()

	vs := []models.Variation{{UUID: 11}, {UUID: 12}}
	if v, ok := FindByUUID(vs, 12); !ok || v.UUID != 12 {
		t.Fatalf("expected to find 12")
	}
	if _, ok := FindByUUID(vs, 13); ok {
		t.Fatalf("did not expect to find 13")
	}
}
