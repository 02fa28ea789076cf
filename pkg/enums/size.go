package enums

import "fmt"

// Size is the tile format vocabulary used by variations.
type Size string

const (
	Size100x100  Size = "SIZE 100X100"
	Size100x200  Size = "SIZE 100X200"
	Size150x900  Size = "SIZE 150X900"
	Size200x600  Size = "SIZE 200X600"
	Size228x110  Size = "SIZE 228X110"
	Size600x1200 Size = "SIZE 600X1200"
	Size600x150  Size = "SIZE 600X150"
	Size600x600  Size = "SIZE 600X600"
	Size600x900  Size = "SIZE 600X900"
	SizeMixPack  Size = "Mix Pack"
	// SizeNA is stored for unsized items but never offered as a facet.
	SizeNA       Size = "NA"
)

var facetSizes = []Size{
	Size100x100,
	Size100x200,
	Size150x900,
	Size200x600,
	Size228x110,
	Size600x1200,
	Size600x150,
	Size600x600,
	Size600x900,
	SizeMixPack,
}

// Sizes returns the facet vocabulary in display order. SizeNA is excluded.
func Sizes() []Size {
	return append([]Size(nil), facetSizes...)
}

// String implements fmt.Stringer.
func (s Size) String() string {
	return string(s)
}

// IsValid reports whether the value is a known Size, including SizeNA.
func (s Size) IsValid() bool {
	if s == SizeNA {
		return true
	}
	for _, candidate := range facetSizes {
		if candidate == s {
			return true
		}
	}
	return false
}

// ParseSize converts raw input into a Size.
func ParseSize(value string) (Size, error) {
	if s := Size(value); s.IsValid() {
		return s, nil
	}
	return "", fmt.Errorf("invalid size %q", value)
}
