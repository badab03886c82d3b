package textcolor

import (
	"image"

	"github.com/anthonynsimon/bild/effect"

	"github.com/ironsheep/image-translate-mcp/internal/imaging"
)

// Analyzer estimates the text color of a cropped region.
type Analyzer struct {
	// ClipLimit is passed to Equalize. Zero means the package default.
	ClipLimit float64
}

// DominantColor returns the most common color in original among the pixels
// that segmentation of enhanced classifies as text.
//
// The two images must cover the same region; enhanced only drives the
// segmentation and original supplies the colors. Text is taken to be the
// minority class: when the dark class outnumbers the light one, the light
// class is used instead. Ties between equally frequent colors go to the
// smallest (R, G, B) triplet. An empty region or empty mask yields black.
func (a Analyzer) DominantColor(original, enhanced image.Image) imaging.RGBColor {
	ob, eb := original.Bounds(), enhanced.Bounds()
	w, h := min(ob.Dx(), eb.Dx()), min(ob.Dy(), eb.Dy())
	if w <= 0 || h <= 0 {
		return imaging.Black
	}

	clip := a.ClipLimit
	if clip == 0 {
		clip = ClipLimit
	}

	gray := Equalize(luminance(enhanced), clip)
	mask := Mask(gray, Threshold(gray))

	fg := 0
	for _, m := range mask {
		if m {
			fg++
		}
	}
	if fg > len(mask)-fg {
		for i := range mask {
			mask[i] = !mask[i]
		}
	}

	counts := make(map[imaging.RGBColor]int)
	gw := gray.Bounds().Dx()
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if !mask[y*gw+x] {
				continue
			}
			counts[imaging.RGBColorOf(original.At(ob.Min.X+x, ob.Min.Y+y))]++
		}
	}

	return mode(counts)
}

// DominantColor runs the default Analyzer.
func DominantColor(original, enhanced image.Image) imaging.RGBColor {
	return Analyzer{}.DominantColor(original, enhanced)
}

func mode(counts map[imaging.RGBColor]int) imaging.RGBColor {
	best := imaging.Black
	bestN := 0
	for c, n := range counts {
		if n > bestN || (n == bestN && less(c, best)) {
			best, bestN = c, n
		}
	}
	return best
}

func less(a, b imaging.RGBColor) bool {
	if a.R != b.R {
		return a.R < b.R
	}
	if a.G != b.G {
		return a.G < b.G
	}
	return a.B < b.B
}

// luminance converts img to 8-bit gray with BT.601 weights, origin at (0,0).
func luminance(img image.Image) *image.Gray {
	rgba := effect.GrayscaleWithWeights(img, 0.299, 0.587, 0.114)
	b := rgba.Bounds()
	gray := image.NewGray(image.Rect(0, 0, b.Dx(), b.Dy()))
	for y := 0; y < b.Dy(); y++ {
		for x := 0; x < b.Dx(); x++ {
			gray.Pix[y*gray.Stride+x] = rgba.Pix[rgba.PixOffset(b.Min.X+x, b.Min.Y+y)]
		}
	}
	return gray
}
