package overlay

import (
	"fmt"
	"image"
	"image/draw"
	"io"

	"github.com/sirupsen/logrus"

	"github.com/ironsheep/image-translate-mcp/internal/imaging"
	"github.com/ironsheep/image-translate-mcp/internal/textcolor"
)

const (
	// FontWeight is the face weight every region is drawn with.
	FontWeight = "Bold"

	// StrokeWidth is the outline width in pixels.
	StrokeWidth = 3
)

// Converter maps text from the source script to the target script.
type Converter interface {
	Convert(text string) (string, error)
}

// Rasterizer measures and draws text in a single font.
type Rasterizer interface {
	Measurer

	// Metrics returns the font ascent and descent at size, both positive.
	Metrics(size int) (ascent, descent float64)

	// Draw renders spec.Text onto dst. The text is centered horizontally
	// on spec.Anchor.X and its ascender line sits at spec.Anchor.Y.
	// Pixels outside spec.Box are left untouched.
	Draw(dst draw.Image, spec RenderSpec) error
}

// ColorAnalyzer picks the text color of a region. Both images cover the
// same region: original supplies colors, enhanced drives segmentation.
type ColorAnalyzer interface {
	DominantColor(original, enhanced image.Image) imaging.RGBColor
}

// RenderSpec fully describes how one region is drawn.
type RenderSpec struct {
	Text        string           `json:"text"`
	SourceText  string           `json:"source_text"`
	FontSize    int              `json:"font_size"`
	FontWeight  string           `json:"font_weight"`
	Fill        imaging.RGBColor `json:"fill"`
	Stroke      imaging.RGBColor `json:"stroke"`
	StrokeWidth int              `json:"stroke_width"`
	Anchor      Point            `json:"anchor"`
	Box         RegionBox        `json:"box"`
}

// Compositor draws converted text over detected regions.
//
// A Compositor holds no per-image state, but its Rasterizer usually caches
// font faces, so one Compositor should not render two images at once.
type Compositor struct {
	Converter  Converter
	Rasterizer Rasterizer
	Analyzer   ColorAnalyzer
	Log        logrus.FieldLogger
}

// NewCompositor returns a Compositor using the textcolor analyzer.
// A nil logger discards output.
func NewCompositor(conv Converter, r Rasterizer, log logrus.FieldLogger) *Compositor {
	if log == nil {
		l := logrus.New()
		l.Out = io.Discard
		log = l
	}
	return &Compositor{
		Converter:  conv,
		Rasterizer: r,
		Analyzer:   textcolor.Analyzer{},
		Log:        log,
	}
}

// Render draws every detection onto canvas in order and returns the specs
// it drew. prepared is the contrast-scaled copy used for detection; it must
// have the same bounds as canvas.
//
// Detections are not filtered here. Regions with an empty box are skipped.
// A conversion or draw failure stops rendering and is returned together
// with the specs drawn so far.
func (c *Compositor) Render(canvas *image.RGBA, prepared image.Image, dets []Detection, mode FontColorMode) ([]RenderSpec, error) {
	// Auto colors are sampled from the pixels as they were before any
	// region was drawn.
	var original image.Image = canvas
	if _, fixed := mode.Fixed(); !fixed && len(dets) > 0 {
		original = imaging.CloneRGBA(canvas)
	}

	specs := make([]RenderSpec, 0, len(dets))
	for i, det := range dets {
		box := BoxOf(det)
		log := c.Log.WithFields(logrus.Fields{
			"region": i,
			"box":    box.String(),
		})

		if det.Geometry() == RotatedQuad {
			log.Debug("rotated region approximated by its corner rectangle")
		}
		if box.Empty() {
			log.Warn("skipping region with empty box")
			continue
		}

		fill := c.fillColor(original, prepared, box, mode)

		text, err := c.Converter.Convert(det.Text)
		if err != nil {
			return specs, fmt.Errorf("%w: region %d %q: %v", ErrConversion, i, det.Text, err)
		}

		size := FitFontSize(box.Width, box.Height, text, c.Rasterizer)
		ascent, descent := c.Rasterizer.Metrics(size)

		spec := RenderSpec{
			Text:        text,
			SourceText:  det.Text,
			FontSize:    size,
			FontWeight:  FontWeight,
			Fill:        fill,
			Stroke:      HighContrast(fill),
			StrokeWidth: StrokeWidth,
			Anchor: Point{
				X: float64(box.Min.X + box.Width/2),
				Y: float64(box.Min.Y+box.Height/2) - (ascent-descent)/2,
			},
			Box: box,
		}

		if err := c.Rasterizer.Draw(canvas, spec); err != nil {
			return specs, fmt.Errorf("failed to draw region %d: %w", i, err)
		}
		specs = append(specs, spec)

		log.WithFields(logrus.Fields{
			"text":      text,
			"font_size": size,
			"fill":      fill.Hex(),
		}).Debug("region drawn")
	}

	return specs, nil
}

func (c *Compositor) fillColor(original, prepared image.Image, box RegionBox, mode FontColorMode) imaging.RGBColor {
	if fill, ok := mode.Fixed(); ok {
		return fill
	}
	r := box.Rect()
	return c.Analyzer.DominantColor(imaging.CropRegion(original, r), imaging.CropRegion(prepared, r))
}
