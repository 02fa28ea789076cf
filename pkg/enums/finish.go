package enums

import "fmt"

// Finish is the surface treatment of a variation.
type Finish string

const (
	FinishAcid                   Finish = "Acid"
	FinishFlamed                 Finish = "Flamed"
	FinishHalfHonedTumbled       Finish = "Half honed and tumbled brushed"
	FinishHoned                  Finish = "Honed"
	FinishHonedTumbled           Finish = "Honed/tumbled"
	FinishNatural                Finish = "Natural"
	FinishNaturalHalfHonedTumble Finish = "Natural half honed And tumbled brushed"
	FinishR11                    Finish = "r11"
	FinishTumbled                Finish = "Tumbled"
)

var validFinishes = []Finish{
	FinishAcid,
	FinishFlamed,
	FinishHalfHonedTumbled,
	FinishHoned,
	FinishHonedTumbled,
	FinishNatural,
	FinishNaturalHalfHonedTumble,
	FinishR11,
	FinishTumbled,
}

// String implements fmt.Stringer.
func (f Finish) String() string {
	return string(f)
}

// IsValid reports whether the value is a known Finish.
func (f Finish) IsValid() bool {
	for _, candidate := range validFinishes {
		if candidate == f {
			return true
		}
	}
	return false
}

// ParseFinish converts raw input into a Finish.
func ParseFinish(value string) (Finish, error) {
	for _, candidate := range validFinishes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid finish %q", value)
}
