package overlay

// MinFontSize is the smallest size FitFontSize returns.
const MinFontSize = 4

// Measurer reports the ink bounding box of text rendered at a font size.
type Measurer interface {
	Measure(text string, size int) (w, h int)
}

// FitFontSize returns the largest size, at most min(width, height), at
// which text fits inside width x height. It never returns less than
// MinFontSize, even when nothing fits.
//
// The ink box is assumed to grow with size, so the sizes are binary
// searched. MinFontSize itself is never measured.
func FitFontSize(width, height int, text string, m Measurer) int {
	lo, hi := MinFontSize, min(width, height)
	for lo < hi {
		mid := lo + (hi-lo+1)/2
		if w, h := m.Measure(text, mid); w <= width && h <= height {
			lo = mid
		} else {
			hi = mid - 1
		}
	}
	return lo
}
