package overlay

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"testing"

	"github.com/ironsheep/image-translate-mcp/internal/imaging"
)

func newTestPipeline(dets []Detection, opts Options) (*Pipeline, *fakeDetector, *boxRasterizer) {
	d := &fakeDetector{dets: dets}
	c, r := newTestCompositor(fakeConverter{})
	return NewPipeline(d, c, opts), d, r
}

func mustDiff(t *testing.T, a, b image.Image) *imaging.DiffResult {
	t.Helper()
	diff, err := imaging.CompareImages(a, b)
	if err != nil {
		t.Fatal(err)
	}
	return diff
}

func TestTranslate_NoDetections(t *testing.T) {
	p, d, _ := newTestPipeline(nil, Options{})
	src := solid(64, 48, color.RGBA{12, 34, 56, 255})

	res, err := p.Translate(src, White)
	if err != nil {
		t.Fatalf("Translate failed: %v", err)
	}
	if d.calls != 1 {
		t.Errorf("detector called %d times", d.calls)
	}
	if diff := mustDiff(t, src, res.Image); !diff.Unchanged() {
		t.Errorf("output differs in %d pixels", diff.PixelsChanged)
	}
	if len(res.Regions) != 0 {
		t.Errorf("got %d regions", len(res.Regions))
	}
}

func TestTranslate_DetectorSeesPreparedImage(t *testing.T) {
	p, d, _ := newTestPipeline(nil, Options{})
	src := solid(8, 8, color.RGBA{200, 100, 51, 255})

	if _, err := p.Translate(src, White); err != nil {
		t.Fatal(err)
	}
	got := imaging.RGBColorOf(d.seen.At(3, 3))
	if got != (imaging.RGBColor{R: 100, G: 50, B: 26}) {
		t.Errorf("detector input pixel: got %v, want (100,50,26)", got)
	}
}

func TestTranslate_DrawsOnlyInsideBox(t *testing.T) {
	p, _, _ := newTestPipeline([]Detection{det(20, 30, 120, 80, "你好", 0.95)}, Options{})
	src := solid(200, 150, color.RGBA{90, 90, 90, 255})

	res, err := p.Translate(src, White)
	if err != nil {
		t.Fatal(err)
	}

	diff := mustDiff(t, src, res.Image)
	if diff.Unchanged() {
		t.Fatal("nothing was drawn")
	}
	box := image.Rect(20, 30, 120, 80)
	if !diff.ChangedBounds.In(box) {
		t.Errorf("changes %v escape box %v", diff.ChangedBounds, box)
	}

	if got := imaging.RGBColorOf(src.At(70, 55)); got != (imaging.RGBColor{R: 90, G: 90, B: 90}) {
		t.Errorf("input image was modified: %v", got)
	}
}

func TestTranslate_LowConfidenceNeverDrawn(t *testing.T) {
	dets := []Detection{
		det(0, 0, 100, 50, "你好", 0.80),
		det(0, 50, 100, 100, "世界", 0.5),
	}
	p, _, r := newTestPipeline(dets, Options{})
	src := solid(100, 100, color.RGBA{1, 2, 3, 255})

	res, err := p.Translate(src, Black)
	if err != nil {
		t.Fatal(err)
	}
	if len(r.drawn) != 0 {
		t.Errorf("rasterizer drew %d regions", len(r.drawn))
	}
	if diff := mustDiff(t, src, res.Image); !diff.Unchanged() {
		t.Errorf("output differs in %d pixels", diff.PixelsChanged)
	}
	if len(res.Detected) != 2 || len(res.Accepted) != 0 {
		t.Errorf("detected %d accepted %d", len(res.Detected), len(res.Accepted))
	}
}

func TestTranslate_NonHanLeftUntouched(t *testing.T) {
	dets := []Detection{
		det(0, 0, 50, 50, "hello", 0.99),
		det(50, 50, 100, 100, "中文", 0.99),
	}
	p, _, _ := newTestPipeline(dets, Options{})
	src := solid(100, 100, color.RGBA{40, 40, 40, 255})

	res, err := p.Translate(src, White)
	if err != nil {
		t.Fatal(err)
	}

	left := mustDiff(t, src.SubImage(image.Rect(0, 0, 50, 50)), res.Image.SubImage(image.Rect(0, 0, 50, 50)))
	if !left.Unchanged() {
		t.Errorf("non-Han region changed in %d pixels", left.PixelsChanged)
	}
	right := mustDiff(t, src.SubImage(image.Rect(50, 50, 100, 100)), res.Image.SubImage(image.Rect(50, 50, 100, 100)))
	if right.Unchanged() {
		t.Error("Han region was not drawn")
	}
}

func TestTranslate_DetectionError(t *testing.T) {
	d := &fakeDetector{err: errors.New("engine down")}
	c, r := newTestCompositor(fakeConverter{})
	p := NewPipeline(d, c, Options{})

	res, err := p.Translate(solid(10, 10, color.RGBA{}), White)
	if !errors.Is(err, ErrDetection) {
		t.Fatalf("got %v, want ErrDetection", err)
	}
	if res != nil || len(r.drawn) != 0 {
		t.Error("detection failure produced output")
	}
}

func TestTranslate_ConversionError(t *testing.T) {
	d := &fakeDetector{dets: []Detection{det(0, 0, 10, 10, "坏", 1)}}
	c, _ := newTestCompositor(fakeConverter{fail: "坏"})
	p := NewPipeline(d, c, Options{})

	res, err := p.Translate(solid(10, 10, color.RGBA{}), White)
	if !errors.Is(err, ErrConversion) {
		t.Fatalf("got %v, want ErrConversion", err)
	}
	if res != nil {
		t.Error("conversion failure returned a partial result")
	}
}

func TestTranslate_SortRegions(t *testing.T) {
	dets := []Detection{
		det(0, 50, 100, 100, "下", 1),
		det(0, 0, 100, 50, "上", 1),
	}

	p, _, r := newTestPipeline(dets, Options{SortRegions: true})
	if _, err := p.Translate(solid(100, 100, color.RGBA{}), White); err != nil {
		t.Fatal(err)
	}
	if r.drawn[0].Text != "上" {
		t.Errorf("first drawn: %q, want 上", r.drawn[0].Text)
	}

	p, _, r = newTestPipeline(dets, Options{})
	if _, err := p.Translate(solid(100, 100, color.RGBA{}), White); err != nil {
		t.Fatal(err)
	}
	if r.drawn[0].Text != "下" {
		t.Errorf("first drawn: %q, want 下", r.drawn[0].Text)
	}
}

func TestTranslateReader_Malformed(t *testing.T) {
	p, d, _ := newTestPipeline(nil, Options{})

	_, err := p.TranslateReader(bytes.NewReader([]byte("definitely not a png")), White)
	if !errors.Is(err, ErrDecode) {
		t.Fatalf("got %v, want ErrDecode", err)
	}
	if d.calls != 0 {
		t.Error("detector ran on undecodable input")
	}
}

func TestTranslateReader_PNG(t *testing.T) {
	p, _, _ := newTestPipeline([]Detection{det(0, 0, 20, 20, "中", 1)}, Options{})

	format, err := imaging.FormatFromName("png")
	if err != nil {
		t.Fatal(err)
	}
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, solid(20, 20, color.RGBA{0, 0, 0, 255}), format); err != nil {
		t.Fatal(err)
	}
	res, err := p.TranslateReader(&buf, White)
	if err != nil {
		t.Fatalf("TranslateReader failed: %v", err)
	}
	if len(res.Regions) != 1 {
		t.Errorf("got %d regions, want 1", len(res.Regions))
	}
}

func TestPipelineDetect(t *testing.T) {
	dets := []Detection{det(0, 0, 5, 5, "x", 0.1)}
	p, _, _ := newTestPipeline(dets, Options{})

	got, err := p.Detect(solid(10, 10, color.RGBA{}))
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 {
		t.Errorf("Detect filtered its output: %v", got)
	}
}
