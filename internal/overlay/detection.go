package overlay

import (
	"fmt"
	"image"
)

// Point is a position in image coordinates.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Detection is one text region reported by a Detector.
type Detection struct {
	// Quad holds the region corners clockwise from the top-left.
	Quad [4]Point `json:"quad"`

	Text string `json:"text"`

	// Confidence is in [0, 1].
	Confidence float64 `json:"confidence"`
}

// Geometry classifies the shape of a detection's quad.
type Geometry int

const (
	// AxisAligned quads have horizontal top and bottom edges and vertical sides.
	AxisAligned Geometry = iota
	// RotatedQuad is any other quadrilateral. It is drawn using the
	// rectangle spanned by its top-left and bottom-right corners.
	RotatedQuad
)

func (g Geometry) String() string {
	if g == RotatedQuad {
		return "rotated"
	}
	return "axis-aligned"
}

// Geometry reports whether the quad is an axis-aligned rectangle.
func (d Detection) Geometry() Geometry {
	q := d.Quad
	if q[0].Y == q[1].Y && q[2].Y == q[3].Y && q[0].X == q[3].X && q[1].X == q[2].X {
		return AxisAligned
	}
	return RotatedQuad
}

// RegionBox is the axis-aligned rectangle a detection is drawn into.
type RegionBox struct {
	Min    image.Point `json:"min"`
	Width  int         `json:"width"`
	Height int         `json:"height"`
}

// BoxOf derives the region box from the detection's top-left and
// bottom-right corners. Coordinates are truncated toward zero.
func BoxOf(d Detection) RegionBox {
	x0, y0 := int(d.Quad[0].X), int(d.Quad[0].Y)
	x1, y1 := int(d.Quad[2].X), int(d.Quad[2].Y)
	return RegionBox{
		Min:    image.Point{X: x0, Y: y0},
		Width:  x1 - x0,
		Height: y1 - y0,
	}
}

// Rect returns the box as an image.Rectangle.
func (b RegionBox) Rect() image.Rectangle {
	return image.Rectangle{Min: b.Min, Max: b.Min.Add(image.Point{X: b.Width, Y: b.Height})}
}

// Empty reports whether the box has no area.
func (b RegionBox) Empty() bool {
	return b.Width <= 0 || b.Height <= 0
}

func (b RegionBox) String() string {
	return fmt.Sprintf("%dx%d@(%d,%d)", b.Width, b.Height, b.Min.X, b.Min.Y)
}

// Rect builds an axis-aligned detection quad from two corners.
func Rect(x0, y0, x1, y1 float64) [4]Point {
	return [4]Point{{x0, y0}, {x1, y0}, {x1, y1}, {x0, y1}}
}
