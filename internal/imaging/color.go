package imaging

import (
	"image/color"

	"github.com/lucasb-eyer/go-colorful"
)

// RGBColor represents an RGB color with 8-bit components.
//
// Each component ranges from 0 to 255, where:
//   - 0 represents no intensity (black for all components)
//   - 255 represents full intensity (white for all components)
type RGBColor struct {
	R uint8 `json:"r"` // Red component (0-255)
	G uint8 `json:"g"` // Green component (0-255)
	B uint8 `json:"b"` // Blue component (0-255)
}

var (
	// Black is pure black (0,0,0).
	Black = RGBColor{0, 0, 0}
	// White is pure white (255,255,255).
	White = RGBColor{255, 255, 255}
)

// RGBColorOf converts any color.Color to 8-bit RGB, dropping alpha.
// For 16-bit sources, values are scaled down by right-shifting 8 bits.
func RGBColorOf(c color.Color) RGBColor {
	r, g, b, _ := c.RGBA()
	return RGBColor{R: uint8(r >> 8), G: uint8(g >> 8), B: uint8(b >> 8)}
}

// RGBA returns the color as an opaque color.RGBA.
func (c RGBColor) RGBA() color.RGBA {
	return color.RGBA{R: c.R, G: c.G, B: c.B, A: 255}
}

// Luminance returns the ITU-R BT.601 luma of the color on a 0-255 scale:
//
//	L = 0.299*R + 0.587*G + 0.114*B
func (c RGBColor) Luminance() float64 {
	return 0.299*float64(c.R) + 0.587*float64(c.G) + 0.114*float64(c.B)
}

// Hex returns the color in "#rrggbb" form.
func (c RGBColor) Hex() string {
	return c.colorful().Hex()
}

// Distance returns the euclidean distance between two colors in RGB space,
// normalized so that black to white is sqrt(3).
func (c RGBColor) Distance(other RGBColor) float64 {
	return c.colorful().DistanceRgb(other.colorful())
}

func (c RGBColor) colorful() colorful.Color {
	cf, _ := colorful.MakeColor(c.RGBA())
	return cf
}

// ParseHexColor parses "#RRGGBB" (or "RRGGBB") into an RGBColor.
func ParseHexColor(hex string) (RGBColor, error) {
	if len(hex) > 0 && hex[0] != '#' {
		hex = "#" + hex
	}
	cf, err := colorful.Hex(hex)
	if err != nil {
		return RGBColor{}, err
	}
	r, g, b := cf.RGB255()
	return RGBColor{R: r, G: g, B: b}, nil
}

// HSLColor represents a color in HSL (Hue, Saturation, Lightness) color space.
type HSLColor struct {
	H int `json:"h"` // Hue: 0-360 degrees (0=red, 120=green, 240=blue)
	S int `json:"s"` // Saturation: 0-100 percent (0=gray, 100=vivid)
	L int `json:"l"` // Lightness: 0-100 percent (0=black, 50=normal, 100=white)
}

// ColorResult contains a color value in multiple representations.
type ColorResult struct {
	Hex string   `json:"hex"` // Hex format "#rrggbb"
	RGB RGBColor `json:"rgb"` // RGB components
	HSL HSLColor `json:"hsl"` // HSL representation
}

// NewColorResult describes c as hex, RGB and HSL.
func NewColorResult(c RGBColor) ColorResult {
	h, s, l := c.colorful().Hsl()
	return ColorResult{
		Hex: c.Hex(),
		RGB: c,
		HSL: HSLColor{
			H: int(h),
			S: int(s * 100),
			L: int(l * 100),
		},
	}
}
