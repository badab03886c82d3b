package textcolor

import (
	"image"

	"github.com/anthonynsimon/bild/histogram"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// flt32Epsilon is the float32 machine epsilon. Class weights closer than
// this to 0 or 1 are treated as empty classes.
const flt32Epsilon = 1.1920929e-07

// levels holds the gray values 0..255, used as the sample for weighted means.
var levels = func() []float64 {
	v := make([]float64, histSize)
	for i := range v {
		v[i] = float64(i)
	}
	return v
}()

// Threshold returns Otsu's threshold for gray: the level t that maximizes
// the between-class variance of {v <= t} and {v > t}. The lowest such level
// wins ties. An image with a single gray level yields 0.
func Threshold(gray *image.Gray) uint8 {
	if gray.Bounds().Empty() {
		return 0
	}

	bins := histogram.NewRGBAHistogram(gray).R.Bins
	h := make([]float64, histSize)
	for i, n := range bins {
		h[i] = float64(n)
	}

	total := floats.Sum(h)
	if total == 0 {
		return 0
	}
	mu := stat.Mean(levels, h)
	scale := 1 / total

	var mu1, q1, maxSigma float64
	maxVal := 0
	for i := 0; i < histSize; i++ {
		p := h[i] * scale
		mu1 *= q1
		q1 += p
		q2 := 1 - q1

		if min(q1, q2) < flt32Epsilon || max(q1, q2) > 1-flt32Epsilon {
			continue
		}

		mu1 = (mu1 + float64(i)*p) / q1
		mu2 := (mu - q1*mu1) / q2
		sigma := q1 * q2 * (mu1 - mu2) * (mu1 - mu2)
		if sigma > maxSigma {
			maxSigma = sigma
			maxVal = i
		}
	}
	return uint8(maxVal)
}

// Mask marks the pixels of gray at or below t. The result is indexed like
// gray.Pix with the stride equal to the width.
func Mask(gray *image.Gray, t uint8) []bool {
	b := gray.Bounds()
	mask := make([]bool, b.Dx()*b.Dy())
	for y := 0; y < b.Dy(); y++ {
		for x := 0; x < b.Dx(); x++ {
			mask[y*b.Dx()+x] = gray.Pix[gray.PixOffset(b.Min.X+x, b.Min.Y+y)] <= t
		}
	}
	return mask
}
