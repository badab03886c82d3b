package imaging

import (
	"image"
	"image/color"
	"math"

	"github.com/anthonynsimon/bild/adjust"
	"github.com/anthonynsimon/bild/clone"
)

// DetectionContrast is the linear contrast factor applied to the copy of an
// image that is handed to text detection and color segmentation.
const DetectionContrast = 0.5

// ScaleContrast returns a copy of img with every color channel mapped through
//
//	dst = saturate(round(|alpha*src + beta|))
//
// Rounding is half-to-even. Alpha is preserved. Bounds are preserved.
func ScaleContrast(img image.Image, alpha, beta float64) *image.RGBA {
	var lut [256]uint8
	for v := range lut {
		scaled := math.RoundToEven(math.Abs(alpha*float64(v) + beta))
		lut[v] = uint8(math.Min(scaled, 255))
	}

	return adjust.Apply(img, func(c color.RGBA) color.RGBA {
		return color.RGBA{R: lut[c.R], G: lut[c.G], B: lut[c.B], A: c.A}
	})
}

// PrepareForDetection returns the contrast-scaled copy used for OCR.
func PrepareForDetection(img image.Image) *image.RGBA {
	return ScaleContrast(img, DetectionContrast, 0)
}

// CloneRGBA returns an RGBA copy of img with the same bounds. The copy
// shares no pixel memory with img.
func CloneRGBA(img image.Image) *image.RGBA {
	return clone.AsRGBA(img)
}
