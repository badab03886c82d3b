package typeset

import (
	"image"
	"image/color"
	"strings"
	"testing"

	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/ironsheep/image-translate-mcp/internal/imaging"
	"github.com/ironsheep/image-translate-mcp/internal/overlay"
)

func testFont(t *testing.T) *Font {
	t.Helper()
	f, err := ParseFont(gobold.TTF)
	if err != nil {
		t.Fatalf("ParseFont failed: %v", err)
	}
	t.Cleanup(func() { f.Close() })
	return f
}

func TestParseFont_Invalid(t *testing.T) {
	if _, err := ParseFont([]byte("not a font")); err == nil {
		t.Error("expected error for invalid font data")
	}
}

func TestLoadFont_Missing(t *testing.T) {
	if _, err := LoadFont("/nonexistent/font.ttf"); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestMeasure_GrowsWithSize(t *testing.T) {
	f := testFont(t)

	prevW, prevH := 0, 0
	for size := 5; size <= 60; size += 5 {
		w, h := f.Measure("Hello", size)
		if w <= 0 || h <= 0 {
			t.Fatalf("size %d: empty box %dx%d", size, w, h)
		}
		if w < prevW || h < prevH {
			t.Errorf("size %d: box %dx%d shrank from %dx%d", size, w, h, prevW, prevH)
		}
		prevW, prevH = w, h
	}
}

func TestMeasure_BoldIsWider(t *testing.T) {
	bold := testFont(t)
	regular, err := ParseFont(goregular.TTF)
	if err != nil {
		t.Fatal(err)
	}

	bw, _ := bold.Measure("mmmmmm", 40)
	rw, _ := regular.Measure("mmmmmm", 40)
	if bw <= rw {
		t.Errorf("bold width %d not wider than regular %d", bw, rw)
	}
}

func TestMeasure_MissingGlyphsStillMeasured(t *testing.T) {
	f := testFont(t)

	// The Go fonts have no Han glyphs; the fallback glyph is measured instead.
	w, h := f.Measure("你好", 30)
	if w <= 0 || h <= 0 {
		t.Errorf("got %dx%d, want a non-empty box", w, h)
	}
}

func TestMetrics(t *testing.T) {
	f := testFont(t)

	a, d := f.Metrics(40)
	if a <= 0 || d <= 0 {
		t.Fatalf("ascent %.2f descent %.2f, want both positive", a, d)
	}
	if a+d < 30 || a+d > 60 {
		t.Errorf("line height %.2f implausible for size 40", a+d)
	}

	a2, _ := f.Metrics(80)
	if a2 < 1.9*a || a2 > 2.1*a {
		t.Errorf("ascent at 80 = %.2f, want about twice %.2f", a2, a)
	}
}

func TestFace_Cached(t *testing.T) {
	f := testFont(t)

	f1, err := f.Face(20)
	if err != nil {
		t.Fatal(err)
	}
	f2, _ := f.Face(20)
	if f1 != f2 {
		t.Error("face for the same size was not reused")
	}
}

func TestMeasure_DoesNotGrowFaceCache(t *testing.T) {
	f := testFont(t)

	text := strings.Repeat("W", 400)
	size := overlay.FitFontSize(4000, 4000, text, f)
	if size < overlay.MinFontSize {
		t.Fatalf("size %d below floor", size)
	}
	if n := len(f.faces); n != 0 {
		t.Errorf("fitting cached %d faces, want 0", n)
	}

	// Rendering many sizes keeps the cache bounded.
	for s := 10; s < 10+3*maxCachedFaces; s++ {
		if _, err := f.Face(s); err != nil {
			t.Fatal(err)
		}
	}
	if n := len(f.faces); n > maxCachedFaces {
		t.Errorf("face cache holds %d entries, want at most %d", n, maxCachedFaces)
	}
}

func TestMeasure_UsesCachedFace(t *testing.T) {
	f := testFont(t)
	if _, err := f.Face(32); err != nil {
		t.Fatal(err)
	}
	w1, h1 := f.Measure("HI", 32)
	w2, h2 := f.Measure("HI", 32)
	if w1 != w2 || h1 != h2 || w1 <= 0 || h1 <= 0 {
		t.Errorf("Measure: got %dx%d then %dx%d", w1, h1, w2, h2)
	}
	if len(f.faces) != 1 {
		t.Errorf("cache size %d, want 1", len(f.faces))
	}
}

func fill(w, h int, c color.RGBA) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for i := 0; i < len(img.Pix); i += 4 {
		img.Pix[i], img.Pix[i+1], img.Pix[i+2], img.Pix[i+3] = c.R, c.G, c.B, c.A
	}
	return img
}

func TestDraw_FillAndStroke(t *testing.T) {
	f := testFont(t)
	canvas := fill(200, 100, color.RGBA{128, 128, 128, 255})
	before := imaging.CloneRGBA(canvas)

	box := overlay.RegionBox{Min: image.Point{X: 20, Y: 20}, Width: 160, Height: 60}
	a, d := f.Metrics(40)
	spec := overlay.RenderSpec{
		Text:        "HI",
		FontSize:    40,
		Fill:        imaging.White,
		Stroke:      imaging.Black,
		StrokeWidth: 3,
		Anchor:      overlay.Point{X: 100, Y: 50 - (a-d)/2},
		Box:         box,
	}

	if err := f.Draw(canvas, spec); err != nil {
		t.Fatalf("Draw failed: %v", err)
	}

	diff, err := imaging.CompareImages(before, canvas)
	if err != nil {
		t.Fatal(err)
	}
	if diff.Unchanged() {
		t.Fatal("Draw changed nothing")
	}
	if !diff.ChangedBounds.In(box.Rect()) {
		t.Errorf("changed bounds %v escape box %v", diff.ChangedBounds, box.Rect())
	}

	var white, black int
	for y := 0; y < 100; y++ {
		for x := 0; x < 200; x++ {
			switch imaging.RGBColorOf(canvas.At(x, y)) {
			case imaging.White:
				white++
			case imaging.Black:
				black++
			}
		}
	}
	if white == 0 || black == 0 {
		t.Errorf("expected both fill and stroke pixels, got white=%d black=%d", white, black)
	}

	// The text is centered on the anchor.
	cx := (diff.ChangedBounds.Min.X + diff.ChangedBounds.Max.X) / 2
	if cx < 95 || cx > 105 {
		t.Errorf("ink center x = %d, want about 100", cx)
	}
}

func TestDraw_ClipsToBox(t *testing.T) {
	f := testFont(t)
	canvas := fill(100, 100, color.RGBA{0, 0, 0, 255})
	before := imaging.CloneRGBA(canvas)

	// Far too large for the box on purpose.
	box := overlay.RegionBox{Min: image.Point{X: 40, Y: 40}, Width: 20, Height: 20}
	spec := overlay.RenderSpec{
		Text:        "WWW",
		FontSize:    60,
		Fill:        imaging.White,
		Stroke:      imaging.Black,
		StrokeWidth: 3,
		Anchor:      overlay.Point{X: 50, Y: 30},
		Box:         box,
	}
	if err := f.Draw(canvas, spec); err != nil {
		t.Fatal(err)
	}

	diff, err := imaging.CompareImages(before, canvas)
	if err != nil {
		t.Fatal(err)
	}
	if !diff.ChangedBounds.In(box.Rect()) {
		t.Errorf("changed bounds %v escape box %v", diff.ChangedBounds, box.Rect())
	}
}

func TestDraw_NonRGBATarget(t *testing.T) {
	f := testFont(t)
	canvas := image.NewNRGBA(image.Rect(0, 0, 80, 40))
	box := overlay.RegionBox{Min: image.Point{X: 0, Y: 0}, Width: 80, Height: 40}
	spec := overlay.RenderSpec{
		Text:     "ok",
		FontSize: 24,
		Fill:     imaging.RGBColor{R: 255},
		Anchor:   overlay.Point{X: 40, Y: 5},
		Box:      box,
	}
	if err := f.Draw(canvas, spec); err != nil {
		t.Fatal(err)
	}

	found := false
	for i := 0; i < len(canvas.Pix); i += 4 {
		if canvas.Pix[i] == 255 && canvas.Pix[i+3] == 255 {
			found = true
			break
		}
	}
	if !found {
		t.Error("no fill pixels drawn on NRGBA target")
	}
}

// setOnly hides the SubImage method of the wrapped image.
type setOnly struct {
	img *image.RGBA
}

func (s setOnly) ColorModel() color.Model     { return s.img.ColorModel() }
func (s setOnly) Bounds() image.Rectangle     { return s.img.Bounds() }
func (s setOnly) At(x, y int) color.Color     { return s.img.At(x, y) }
func (s setOnly) Set(x, y int, c color.Color) { s.img.Set(x, y, c) }

func TestClipTo_Wrapper(t *testing.T) {
	base := image.NewRGBA(image.Rect(0, 0, 10, 10))
	c := clipTo(setOnly{base}, image.Rect(2, 2, 5, 5))

	if _, ok := c.(*clipped); !ok {
		t.Fatalf("got %T, want *clipped", c)
	}
	if c.Bounds() != image.Rect(2, 2, 5, 5) {
		t.Errorf("bounds: got %v", c.Bounds())
	}
	c.Set(0, 0, color.White)
	c.Set(3, 3, color.White)
	if base.RGBAAt(0, 0).A != 0 {
		t.Error("write outside the clip reached the image")
	}
	if base.RGBAAt(3, 3) != (color.RGBA{255, 255, 255, 255}) {
		t.Error("write inside the clip was lost")
	}
}
