package overlay

import (
	"sort"
	"unicode"
)

// ConfidenceThreshold is the lowest detection confidence that is drawn.
const ConfidenceThreshold = 0.9

// hanRange is the CJK Unified Ideographs block, U+4E00 to U+9FFF.
var hanRange = &unicode.RangeTable{
	R16: []unicode.Range16{{Lo: 0x4E00, Hi: 0x9FFF, Stride: 1}},
}

// ContainsHan reports whether text has at least one rune in U+4E00..U+9FFF.
func ContainsHan(text string) bool {
	for _, r := range text {
		if unicode.Is(hanRange, r) {
			return true
		}
	}
	return false
}

// Reject explains why a detection would not be drawn, or returns "".
// A NaN confidence counts as low.
func Reject(d Detection) string {
	switch {
	case !(d.Confidence >= ConfidenceThreshold):
		return "low confidence"
	case !ContainsHan(d.Text):
		return "no Han characters"
	}
	return ""
}

// Filter returns the detections that are confident enough and contain Han
// text, in their original order.
func Filter(dets []Detection) []Detection {
	var out []Detection
	for _, d := range dets {
		if Reject(d) == "" {
			out = append(out, d)
		}
	}
	return out
}

// SortByPosition returns a copy of dets ordered by top-left corner, top to
// bottom then left to right. Equal positions keep their order.
func SortByPosition(dets []Detection) []Detection {
	out := make([]Detection, len(dets))
	copy(out, dets)
	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i].Quad[0], out[j].Quad[0]
		if a.Y != b.Y {
			return a.Y < b.Y
		}
		return a.X < b.X
	})
	return out
}
