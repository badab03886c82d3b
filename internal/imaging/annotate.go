package imaging

import (
	"image"
	"image/color"
	"image/draw"
	"strconv"
)

// Box is a rectangle to outline on an annotated image.
type Box struct {
	Rect  image.Rectangle
	Color RGBColor
}

// AnnotateBoxes returns a copy of img with every box outlined and numbered
// in input order, starting at 1. The source image is not modified.
func AnnotateBoxes(img image.Image, boxes []Box, thickness int) *image.RGBA {
	bounds := img.Bounds()
	result := image.NewRGBA(bounds)
	draw.Draw(result, bounds, img, bounds.Min, draw.Src)

	if thickness < 1 {
		thickness = 1
	}

	for i, b := range boxes {
		c := b.Color.RGBA()
		r := b.Rect.Canon()
		for t := 0; t < thickness; t++ {
			drawHLine(result, r.Min.X-t, r.Max.X+t, r.Min.Y-t, c)
			drawHLine(result, r.Min.X-t, r.Max.X+t, r.Max.Y-1+t, c)
			drawVLine(result, r.Min.X-t, r.Min.Y-t, r.Max.Y+t, c)
			drawVLine(result, r.Max.X-1+t, r.Min.Y-t, r.Max.Y+t, c)
		}
		drawLabel(result, r.Min.X+2, r.Min.Y+2, strconv.Itoa(i+1), color.RGBA{255, 255, 255, 255}, c)
	}

	return result
}

func drawHLine(img *image.RGBA, x1, x2, y int, c color.RGBA) {
	for x := x1; x < x2; x++ {
		setIn(img, x, y, c)
	}
}

func drawVLine(img *image.RGBA, x, y1, y2 int, c color.RGBA) {
	for y := y1; y < y2; y++ {
		setIn(img, x, y, c)
	}
}

func setIn(img *image.RGBA, x, y int, c color.RGBA) {
	if (image.Point{X: x, Y: y}).In(img.Bounds()) {
		img.SetRGBA(x, y, c)
	}
}

// drawLabel draws a small numeric label at the given position using a 3x5
// pixel font.
func drawLabel(img *image.RGBA, x, y int, text string, fg, bg color.RGBA) {
	glyphs := map[rune][]string{
		'0': {"111", "101", "101", "101", "111"},
		'1': {"010", "110", "010", "010", "111"},
		'2': {"111", "001", "111", "100", "111"},
		'3': {"111", "001", "111", "001", "111"},
		'4': {"101", "101", "111", "001", "001"},
		'5': {"111", "100", "111", "001", "111"},
		'6': {"111", "100", "111", "101", "111"},
		'7': {"111", "001", "001", "001", "001"},
		'8': {"111", "101", "111", "101", "111"},
		'9': {"111", "101", "111", "001", "111"},
	}

	charWidth := 4
	labelWidth := len(text) * charWidth
	labelHeight := 7

	for dy := -1; dy < labelHeight; dy++ {
		for dx := -1; dx < labelWidth; dx++ {
			setIn(img, x+dx, y+dy, bg)
		}
	}

	cx := x
	for _, ch := range text {
		glyph, ok := glyphs[ch]
		if !ok {
			cx += charWidth
			continue
		}
		for row, line := range glyph {
			for col, pixel := range line {
				if pixel == '1' {
					setIn(img, cx+col, y+row, fg)
				}
			}
		}
		cx += charWidth
	}
}
