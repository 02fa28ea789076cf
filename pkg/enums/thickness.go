package enums

import "fmt"

// Thickness is the slab thickness vocabulary used by variations.
type Thickness string

const (
	Thickness12To20MM Thickness = "THICKNESS 12-20MM"
	Thickness15To25MM Thickness = "THICKNESS 15-25MM"
	Thickness18MM     Thickness = "THICKNESS 18MM"
	Thickness20MM     Thickness = "THICKNESS 20MM"
	Thickness22MM     Thickness = "THICKNESS 22MM"
	Thickness25To35MM Thickness = "THICKNESS 25-35MM"
	Thickness25To45MM Thickness = "THICKNESS 25-45MM"
	Thickness30To40MM Thickness = "THICKNESS 30-40MM"
	Thickness35To50MM Thickness = "THICKNESS 35-50MM"
	Thickness35To55MM Thickness = "THICKNESS 35-55MM"
	Thickness68MM     Thickness = "THICKNESS 68MM"
)

var validThicknesses = []Thickness{
	Thickness12To20MM,
	Thickness15To25MM,
	Thickness18MM,
	Thickness20MM,
	Thickness22MM,
	Thickness25To35MM,
	Thickness25To45MM,
	Thickness30To40MM,
	Thickness35To50MM,
	Thickness35To55MM,
	Thickness68MM,
}

// Thicknesses returns the vocabulary in display order.
func Thicknesses() []Thickness {
	return append([]Thickness(nil), validThicknesses...)
}

// String implements fmt.Stringer.
func (t Thickness) String() string {
	return string(t)
}

// IsValid reports whether the value is a known Thickness.
func (t Thickness) IsValid() bool {
	for _, candidate := range validThicknesses {
		if candidate == t {
			return true
		}
	}
	return false
}

// ParseThickness converts raw input into a Thickness.
func ParseThickness(value string) (Thickness, error) {
	for _, candidate := range validThicknesses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid thickness %q", value)
}
