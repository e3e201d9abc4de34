package services

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"clazzyapi/models"
)

// HexToRGB parses a #RRGGBB color.
func HexToRGB(hexColor string) (int, int, int, error) {
	h := strings.TrimPrefix(strings.TrimSpace(hexColor), "#")
	if len(h) != 6 {
		return 0, 0, 0, fmt.Errorf("invalid hex color %q", hexColor)
	}
	v, err := strconv.ParseUint(h, 16, 32)
	if err != nil {
		return 0, 0, 0, fmt.Errorf("invalid hex color %q: %v", hexColor, err)
	}
	return int(v >> 16 & 0xFF), int(v >> 8 & 0xFF), int(v & 0xFF), nil
}

func RGBToHex(r, g, b int) string {
	return fmt.Sprintf("#%02x%02x%02x", r, g, b)
}

// RGBToHSV converts 0-255 channels to H 0-360, S 0-100, V 0-100.
func RGBToHSV(r, g, b int) (float64, float64, float64) {
	rf, gf, bf := float64(r)/255.0, float64(g)/255.0, float64(b)/255.0
	max := math.Max(rf, math.Max(gf, bf))
	min := math.Min(rf, math.Min(gf, bf))
	d := max - min

	var h float64
	switch {
	case d == 0:
		h = 0
	case max == rf:
		h = 60 * math.Mod((gf-bf)/d, 6)
	case max == gf:
		h = 60 * ((bf-rf)/d + 2)
	default:
		h = 60 * ((rf-gf)/d + 4)
	}
	if h < 0 {
		h += 360
	}

	var s float64
	if max > 0 {
		s = d / max * 100
	}
	return h, s, max * 100
}

// HSVToRGB is the inverse of RGBToHSV.
func HSVToRGB(h, s, v float64) (int, int, int) {
	s /= 100
	v /= 100
	c := v * s
	x := c * (1 - math.Abs(math.Mod(h/60, 2)-1))
	m := v - c

	var rf, gf, bf float64
	switch {
	case h < 60:
		rf, gf, bf = c, x, 0
	case h < 120:
		rf, gf, bf = x, c, 0
	case h < 180:
		rf, gf, bf = 0, c, x
	case h < 240:
		rf, gf, bf = 0, x, c
	case h < 300:
		rf, gf, bf = x, 0, c
	default:
		rf, gf, bf = c, 0, x
	}
	return int(math.Round((rf + m) * 255)),
		int(math.Round((gf + m) * 255)),
		int(math.Round((bf + m) * 255))
}

// hueDifference is the circular hue distance, always in [0, 180].
func hueDifference(h1, h2 float64) float64 {
	d := math.Abs(h1 - h2)
	if d > 180 {
		d = 360 - d
	}
	return d
}

// neutralSaturation is the saturation below which a color pairs with anything.
const neutralSaturation = 20.0

// classifySchemeByHue maps a circular hue difference to a scheme. The bands
// are contiguous except for the 45-75 "custom" region between analogous and
// tetradic relationships.
func classifySchemeByHue(hueDiff float64) models.ColorScheme {
	switch {
	case hueDiff < 15:
		return models.SchemeMonochromatic
	case hueDiff <= 45:
		return models.SchemeAnalogous
	case hueDiff <= 75:
		return models.SchemeCustom
	case hueDiff <= 105:
		return models.SchemeTetradic
	case hueDiff <= 135:
		return models.SchemeTriadic
	case hueDiff < 160:
		return models.SchemeSplitComplementary
	default:
		return models.SchemeComplementary
	}
}

// IdentifyScheme returns the color-scheme label for a pair of hex colors.
func IdentifyScheme(hexA, hexB string) (models.ColorScheme, error) {
	r1, g1, b1, err := HexToRGB(hexA)
	if err != nil {
		return "", err
	}
	r2, g2, b2, err := HexToRGB(hexB)
	if err != nil {
		return "", err
	}
	h1, s1, _ := RGBToHSV(r1, g1, b1)
	h2, s2, _ := RGBToHSV(r2, g2, b2)
	if s1 < neutralSaturation || s2 < neutralSaturation {
		return models.SchemeNeutral, nil
	}
	return classifySchemeByHue(hueDifference(h1, h2)), nil
}

// Harmony scores the color-theory compatibility of two hex colors in [0,1]
// and returns the scheme label. It is symmetric in its arguments.
func Harmony(hexA, hexB string) (float64, models.ColorScheme, error) {
	r1, g1, b1, err := HexToRGB(hexA)
	if err != nil {
		return 0, "", err
	}
	r2, g2, b2, err := HexToRGB(hexB)
	if err != nil {
		return 0, "", err
	}
	h1, s1, v1 := RGBToHSV(r1, g1, b1)
	h2, s2, v2 := RGBToHSV(r2, g2, b2)

	// Neutrals work with everything.
	if s1 < neutralSaturation || s2 < neutralSaturation {
		return 0.85, models.SchemeNeutral, nil
	}

	hueDiff := hueDifference(h1, h2)
	scheme := classifySchemeByHue(hueDiff)
	valueDiff := math.Abs(v1 - v2)
	satDiff := math.Abs(s1 - s2)

	var score float64
	switch scheme {
	case models.SchemeMonochromatic:
		score = 0.75
		if valueDiff > 25 {
			score += 0.13
		}
		return clamp01(score), scheme, nil
	case models.SchemeComplementary:
		score = 0.95
	case models.SchemeTriadic, models.SchemeTetradic:
		score = 0.90
	case models.SchemeAnalogous:
		score = 0.87
	case models.SchemeSplitComplementary:
		score = 0.82
	default:
		// Graded by proximity to the nearest named band edge.
		dist := math.Min(hueDiff-45, 75-hueDiff)
		score = 0.78 - 0.23*dist/15
	}

	if valueDiff > 25 {
		score += 0.05
	}
	if satDiff > 60 {
		score -= 0.05
	}
	return clamp01(score), scheme, nil
}

// CompanionSchemes generates companion colors for a base color at the fixed
// hue offsets of each scheme, holding saturation and value constant. The
// monochromatic entry varies saturation/value instead of hue.
func CompanionSchemes(hexColor string) (map[string][]string, error) {
	r, g, b, err := HexToRGB(hexColor)
	if err != nil {
		return nil, err
	}
	h, s, v := RGBToHSV(r, g, b)

	rotate := func(offsets ...float64) []string {
		out := make([]string, 0, len(offsets))
		for _, offset := range offsets {
			rr, gg, bb := HSVToRGB(math.Mod(h+offset+360, 360), s, v)
			out = append(out, RGBToHex(rr, gg, bb))
		}
		return out
	}

	monochromatic := []string{}
	for _, variation := range [][3]float64{
		{h, math.Max(s-30, 20), math.Min(v+20, 100)}, // lighter
		{h, math.Min(s+10, 100), math.Max(v-30, 20)}, // darker
		{h, math.Min(s+30, 100), v},                  // saturated
		{h, math.Max(s-40, 10), math.Min(v+10, 95)},  // pastel
	} {
		rr, gg, bb := HSVToRGB(variation[0], variation[1], variation[2])
		monochromatic = append(monochromatic, RGBToHex(rr, gg, bb))
	}

	return map[string][]string{
		"complementary":       rotate(180),
		"analogous":           rotate(30, -30),
		"triadic":             rotate(120, 240),
		"split_complementary": rotate(150, 210),
		"tetradic":            rotate(90, 180, 270),
		"monochromatic":       monochromatic,
	}, nil
}
