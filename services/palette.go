package services

import "math"

type namedColor struct {
	rgb  [3]int
	name string
}

// palette holds the reference colors for nearest-match naming. Ordered by
// family so additions stay easy to review.
var palette = []namedColor{
	// Reds
	{[3]int{255, 0, 0}, "Red"}, {[3]int{220, 20, 60}, "Crimson"}, {[3]int{178, 34, 34}, "Firebrick"},
	{[3]int{255, 69, 0}, "Red Orange"}, {[3]int{255, 99, 71}, "Tomato"}, {[3]int{250, 128, 114}, "Salmon"},

	// Pinks
	{[3]int{255, 192, 203}, "Pink"}, {[3]int{255, 182, 193}, "Light Pink"}, {[3]int{219, 112, 147}, "Pale Violet Red"},
	{[3]int{255, 20, 147}, "Deep Pink"}, {[3]int{199, 21, 133}, "Medium Violet Red"}, {[3]int{255, 0, 255}, "Magenta"},
	{[3]int{255, 105, 180}, "Hot Pink"},

	// Oranges
	{[3]int{255, 165, 0}, "Orange"}, {[3]int{255, 140, 0}, "Dark Orange"}, {[3]int{255, 127, 80}, "Coral"},
	{[3]int{255, 160, 122}, "Light Salmon"}, {[3]int{255, 218, 185}, "Peach"},

	// Yellows
	{[3]int{255, 255, 0}, "Yellow"}, {[3]int{255, 215, 0}, "Gold"}, {[3]int{255, 255, 224}, "Light Yellow"},
	{[3]int{255, 250, 205}, "Lemon"}, {[3]int{240, 230, 140}, "Khaki"},

	// Greens
	{[3]int{0, 255, 0}, "Lime"}, {[3]int{0, 128, 0}, "Green"}, {[3]int{34, 139, 34}, "Forest Green"},
	{[3]int{144, 238, 144}, "Light Green"}, {[3]int{143, 188, 143}, "Dark Sea Green"},
	{[3]int{107, 142, 35}, "Olive"}, {[3]int{154, 205, 50}, "Yellow Green"},

	// Blues
	{[3]int{0, 0, 255}, "Blue"}, {[3]int{0, 0, 139}, "Dark Blue"}, {[3]int{0, 191, 255}, "Deep Sky Blue"},
	{[3]int{135, 206, 235}, "Sky Blue"}, {[3]int{173, 216, 230}, "Light Blue"},
	{[3]int{70, 130, 180}, "Steel Blue"}, {[3]int{100, 149, 237}, "Cornflower Blue"},
	{[3]int{0, 128, 128}, "Teal"}, {[3]int{64, 224, 208}, "Turquoise"}, {[3]int{0, 255, 255}, "Cyan"},

	// Purples
	{[3]int{128, 0, 128}, "Purple"}, {[3]int{138, 43, 226}, "Blue Violet"}, {[3]int{148, 0, 211}, "Dark Violet"},
	{[3]int{186, 85, 211}, "Medium Orchid"}, {[3]int{221, 160, 221}, "Plum"}, {[3]int{238, 130, 238}, "Violet"},
	{[3]int{75, 0, 130}, "Indigo"}, {[3]int{147, 112, 219}, "Medium Purple"},

	// Browns
	{[3]int{165, 42, 42}, "Brown"}, {[3]int{139, 69, 19}, "Saddle Brown"}, {[3]int{160, 82, 45}, "Sienna"},
	{[3]int{210, 105, 30}, "Chocolate"}, {[3]int{205, 133, 63}, "Peru"}, {[3]int{244, 164, 96}, "Sandy Brown"},
	{[3]int{222, 184, 135}, "Burlywood"}, {[3]int{210, 180, 140}, "Tan"},

	// Neutrals
	{[3]int{0, 0, 0}, "Black"}, {[3]int{255, 255, 255}, "White"}, {[3]int{128, 128, 128}, "Gray"},
	{[3]int{192, 192, 192}, "Silver"}, {[3]int{211, 211, 211}, "Light Gray"}, {[3]int{169, 169, 169}, "Dark Gray"},
	{[3]int{245, 245, 220}, "Beige"}, {[3]int{255, 248, 220}, "Cornsilk"}, {[3]int{250, 240, 230}, "Linen"},
	{[3]int{245, 222, 179}, "Wheat"}, {[3]int{255, 228, 196}, "Bisque"}, {[3]int{255, 235, 205}, "Blanched Almond"},

	// Navy and maroon
	{[3]int{0, 0, 128}, "Navy"}, {[3]int{25, 25, 112}, "Midnight Blue"}, {[3]int{128, 0, 0}, "Maroon"},
	{[3]int{139, 0, 0}, "Dark Red"}, {[3]int{85, 107, 47}, "Dark Olive Green"},
}

// ColorName returns a human-readable name for an RGB color. Low-saturation
// colors short-circuit to gray-scale names; otherwise the nearest palette
// entry wins, falling back to hue-based naming when nothing is close.
func ColorName(r, g, b int) string {
	h, s, v := RGBToHSV(r, g, b)

	if s < 15 {
		switch {
		case v < 20:
			return "Black"
		case v > 90:
			return "White"
		case v > 70:
			return "Light Gray"
		case v < 40:
			return "Dark Gray"
		default:
			return "Gray"
		}
	}

	minDistance := math.Inf(1)
	closest := "Unknown"
	for _, candidate := range palette {
		dr := float64(r - candidate.rgb[0])
		dg := float64(g - candidate.rgb[1])
		db := float64(b - candidate.rgb[2])
		distance := math.Sqrt(dr*dr + dg*dg + db*db)
		if distance < minDistance {
			minDistance = distance
			closest = candidate.name
		}
	}

	if minDistance > 100 {
		return hueBasedName(h, s, v)
	}
	return closest
}

func hueBasedName(h, s, v float64) string {
	prefix := ""
	if v < 30 {
		prefix = "Dark "
	} else if v > 80 && s < 50 {
		prefix = "Light "
	}

	var base string
	switch {
	case h < 15 || h >= 345:
		base = "Red"
	case h < 45:
		base = "Orange"
	case h < 75:
		base = "Yellow"
	case h < 150:
		base = "Green"
	case h < 210:
		base = "Cyan"
	case h < 270:
		base = "Blue"
	case h < 330:
		base = "Purple"
	default:
		base = "Pink"
	}
	return prefix + base
}
