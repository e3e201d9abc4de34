package models

import (
	"regexp"

	"github.com/go-playground/validator"
)

type ColorStyle string

const (
	ColorStyleRelaxed      ColorStyle = "relaxed"
	ColorStyleConservative ColorStyle = "conservative"
	ColorStyleProfessional ColorStyle = "professional"
	ColorStyleBold         ColorStyle = "bold"
	ColorStyleHarmonious   ColorStyle = "harmonious"
	ColorStyleVibrant      ColorStyle = "vibrant"
)

type ColorScheme string

const (
	SchemeComplementary      ColorScheme = "complementary"
	SchemeTriadic            ColorScheme = "triadic"
	SchemeTetradic           ColorScheme = "tetradic"
	SchemeAnalogous          ColorScheme = "analogous"
	SchemeSplitComplementary ColorScheme = "split-complementary"
	SchemeMonochromatic      ColorScheme = "monochromatic"
	SchemeNeutral            ColorScheme = "neutral"
	SchemeCustom             ColorScheme = "custom"
)

// OccasionProfile describes the dressing rules for one occasion. Each pattern
// is a set of distinct categories forming one complete valid outfit shape.
type OccasionProfile struct {
	Name       string       `json:"name"`
	Formality  float64      `json:"formality"`
	ColorStyle ColorStyle   `json:"color_style"`
	Patterns   [][]Category `json:"patterns"`
}

func ValidateOccasion(fl validator.FieldLevel) bool {
	matched, _ := regexp.MatchString("^casual|formal|business|party|date|sports$", fl.Field().String())
	return matched
}

func ValidateCategory(fl validator.FieldLevel) bool {
	matched, _ := regexp.MatchString("^top|bottom|dress|shoes|blazer|other$", fl.Field().String())
	return matched
}
