package overlay

import "github.com/ironsheep/image-translate-mcp/internal/imaging"

// HighContrast returns black for colors brighter than mid-gray and white
// otherwise.
func HighContrast(c imaging.RGBColor) imaging.RGBColor {
	if c.Luminance() > 128 {
		return imaging.Black
	}
	return imaging.White
}
