package imaging

import (
	"fmt"
	"image"
	"math"
)

// DiffResult summarizes how two equally sized images differ.
type DiffResult struct {
	// PixelsChanged counts pixels whose RGB differs in any channel.
	PixelsChanged int `json:"pixels_changed"`

	// TotalPixels is width * height.
	TotalPixels int `json:"total_pixels"`

	// ChangedBounds is the smallest rectangle containing every changed pixel,
	// relative to the first image's bounds. Empty when nothing changed.
	ChangedBounds image.Rectangle `json:"-"`

	// AverageColorDiff is the mean absolute channel difference over all pixels.
	AverageColorDiff float64 `json:"average_color_diff"`
}

// Unchanged reports whether the images were pixel-identical in RGB.
func (d *DiffResult) Unchanged() bool {
	return d.PixelsChanged == 0
}

// CompareImages compares a and b pixel by pixel. Alpha is ignored.
// Both images must have the same dimensions; their origins may differ.
func CompareImages(a, b image.Image) (*DiffResult, error) {
	ab, bb := a.Bounds(), b.Bounds()
	if ab.Dx() != bb.Dx() || ab.Dy() != bb.Dy() {
		return nil, fmt.Errorf("image sizes differ: %dx%d vs %dx%d", ab.Dx(), ab.Dy(), bb.Dx(), bb.Dy())
	}

	total := ab.Dx() * ab.Dy()
	changed := 0
	var totalColorDiff float64
	var box image.Rectangle

	for dy := 0; dy < ab.Dy(); dy++ {
		for dx := 0; dx < ab.Dx(); dx++ {
			c1 := RGBColorOf(a.At(ab.Min.X+dx, ab.Min.Y+dy))
			c2 := RGBColorOf(b.At(bb.Min.X+dx, bb.Min.Y+dy))

			diff := absDiff(c1.R, c2.R) + absDiff(c1.G, c2.G) + absDiff(c1.B, c2.B)
			totalColorDiff += float64(diff) / 3.0

			if diff > 0 {
				changed++
				box = box.Union(image.Rect(dx, dy, dx+1, dy+1))
			}
		}
	}

	result := &DiffResult{
		PixelsChanged: changed,
		TotalPixels:   total,
		ChangedBounds: box,
	}
	if total > 0 {
		result.AverageColorDiff = math.Round(totalColorDiff/float64(total)*100) / 100
	}
	return result, nil
}

func absDiff(a, b uint8) int {
	if a > b {
		return int(a - b)
	}
	return int(b - a)
}
