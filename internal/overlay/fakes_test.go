package overlay

import (
	"errors"
	"image"
	"image/color"
	"image/draw"
	"unicode/utf8"

	"github.com/ironsheep/image-translate-mcp/internal/imaging"
)

// fakeDetector returns a fixed result.
type fakeDetector struct {
	dets  []Detection
	err   error
	calls int
	seen  image.Image
}

func (f *fakeDetector) Detect(img image.Image) ([]Detection, error) {
	f.calls++
	f.seen = img
	return f.dets, f.err
}

// fakeConverter maps known strings and passes everything else through.
type fakeConverter struct {
	table map[string]string
	fail  string
}

var errConvert = errors.New("converter exploded")

func (f fakeConverter) Convert(text string) (string, error) {
	if f.fail != "" && text == f.fail {
		return "", errConvert
	}
	if out, ok := f.table[text]; ok {
		return out, nil
	}
	return text, nil
}

// boxRasterizer models glyphs as size x size squares, one per rune, with
// ascent 0.8*size and descent 0.2*size. Draw paints the ink rectangle in
// the fill color, clipped to the region box.
type boxRasterizer struct {
	drawn []RenderSpec
}

func (r *boxRasterizer) Measure(text string, size int) (int, int) {
	return utf8.RuneCountInString(text) * size, size
}

func (r *boxRasterizer) Metrics(size int) (float64, float64) {
	return 0.8 * float64(size), 0.2 * float64(size)
}

func (r *boxRasterizer) Draw(dst draw.Image, spec RenderSpec) error {
	r.drawn = append(r.drawn, spec)
	w, h := r.Measure(spec.Text, spec.FontSize)
	x0 := int(spec.Anchor.X) - w/2
	y0 := int(spec.Anchor.Y)
	ink := image.Rect(x0, y0, x0+w, y0+h).Intersect(spec.Box.Rect())
	draw.Draw(dst, ink, image.NewUniform(spec.Fill.RGBA()), image.Point{}, draw.Src)
	return nil
}

// fixedAnalyzer always reports the same color.
type fixedAnalyzer struct {
	c     imaging.RGBColor
	calls int
}

func (a *fixedAnalyzer) DominantColor(original, enhanced image.Image) imaging.RGBColor {
	a.calls++
	return a.c
}

func solid(w, h int, c color.RGBA) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), image.NewUniform(c), image.Point{}, draw.Src)
	return img
}

func det(x0, y0, x1, y1 float64, text string, conf float64) Detection {
	return Detection{Quad: Rect(x0, y0, x1, y1), Text: text, Confidence: conf}
}
