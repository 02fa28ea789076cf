package enums

import "fmt"

// ColorTone is the stone colour vocabulary used by variations.
type ColorTone string

const (
	ColorToneBeige  ColorTone = "Beige"
	ColorToneBlack  ColorTone = "Black"
	ColorToneBlue   ColorTone = "Blue"
	ColorToneBronze ColorTone = "Bronze"
	ColorToneBrown  ColorTone = "Brown"
	ColorToneCream  ColorTone = "Cream"
	ColorToneGolden ColorTone = "Golden"
	ColorToneGreen  ColorTone = "Green"
	ColorToneGrey   ColorTone = "Grey"
	ColorToneMint   ColorTone = "Mint"
	ColorToneMulti  ColorTone = "Multi"
	ColorToneRed    ColorTone = "Red"
	ColorToneSilver ColorTone = "Silver"
	ColorToneWhite  ColorTone = "White"
	ColorToneYellow ColorTone = "Yellow"
)

var validColorTones = []ColorTone{
	ColorToneBeige,
	ColorToneBlack,
	ColorToneBlue,
	ColorToneBronze,
	ColorToneBrown,
	ColorToneCream,
	ColorToneGolden,
	ColorToneGreen,
	ColorToneGrey,
	ColorToneMint,
	ColorToneMulti,
	ColorToneRed,
	ColorToneSilver,
	ColorToneWhite,
	ColorToneYellow,
}

// ColorTones returns the vocabulary in display order.
func ColorTones() []ColorTone {
	return append([]ColorTone(nil), validColorTones...)
}

// String implements fmt.Stringer.
func (c ColorTone) String() string {
	return string(c)
}

// IsValid reports whether the value is a known ColorTone.
func (c ColorTone) IsValid() bool {
	for _, candidate := range validColorTones {
		if candidate == c {
			return true
		}
	}
	return false
}

// ParseColorTone converts raw input into a ColorTone.
func ParseColorTone(value string) (ColorTone, error) {
	for _, candidate := range validColorTones {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid color tone %q", value)
}
