package typeset

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"math"
	"os"

	"golang.org/x/image/font"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"

	"github.com/ironsheep/image-translate-mcp/internal/overlay"
)

// maxCachedFaces bounds the face cache. Sizes outside it are built on
// demand.
const maxCachedFaces = 8

// Font is a parsed font with a small face cache keyed by pixel size.
//
// Font is not safe for concurrent use.
type Font struct {
	font  *opentype.Font
	faces map[int]font.Face
}

// LoadFont reads a .ttf, .otf or .ttc file. For collections the first font
// is used.
func LoadFont(path string) (*Font, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read font: %w", err)
	}
	f, err := ParseFont(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return f, nil
}

// ParseFont parses font data in any format opentype.Parse or
// opentype.ParseCollection accepts.
func ParseFont(data []byte) (*Font, error) {
	otf, err := opentype.Parse(data)
	if err != nil {
		coll, cerr := opentype.ParseCollection(data)
		if cerr != nil {
			return nil, fmt.Errorf("failed to parse font: %w", err)
		}
		if coll.NumFonts() == 0 {
			return nil, fmt.Errorf("font collection is empty")
		}
		if otf, err = coll.Font(0); err != nil {
			return nil, fmt.Errorf("failed to parse font: %w", err)
		}
	}
	return &Font{font: otf, faces: make(map[int]font.Face)}, nil
}

// Face returns the face for a pixel size, creating it on first use. When
// the cache is full an arbitrary entry is closed to make room.
func (f *Font) Face(size int) (font.Face, error) {
	if face, ok := f.faces[size]; ok {
		return face, nil
	}
	face, err := f.newFace(size)
	if err != nil {
		return nil, err
	}
	if len(f.faces) >= maxCachedFaces {
		for old, of := range f.faces {
			of.Close()
			delete(f.faces, old)
			break
		}
	}
	f.faces[size] = face
	return face, nil
}

func (f *Font) newFace(size int) (font.Face, error) {
	face, err := opentype.NewFace(f.font, &opentype.FaceOptions{
		Size:    float64(size),
		DPI:     72,
		Hinting: font.HintingNone,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create face at size %d: %w", size, err)
	}
	return face, nil
}

// Measure returns the ink bounding box of text at size in whole pixels.
// Runes missing from the font are measured as the font's fallback glyph.
// Measuring does not populate the face cache.
func (f *Font) Measure(text string, size int) (w, h int) {
	face, ok := f.faces[size]
	if !ok {
		var err error
		if face, err = f.newFace(size); err != nil {
			return math.MaxInt32, math.MaxInt32
		}
		defer face.Close()
	}
	b, _ := font.BoundString(face, text)
	return (b.Max.X.Ceil() - b.Min.X.Floor()), (b.Max.Y.Ceil() - b.Min.Y.Floor())
}

// Metrics returns the ascent and descent at size in pixels.
func (f *Font) Metrics(size int) (ascent, descent float64) {
	face, err := f.Face(size)
	if err != nil {
		return 0, 0
	}
	m := face.Metrics()
	return fromFixed(m.Ascent), fromFixed(m.Descent)
}

// Draw renders spec.Text centered on spec.Anchor.X with the ascender line
// at spec.Anchor.Y. The stroke is drawn first, spec.StrokeWidth pixels
// wide, and the fill on top. Only pixels inside spec.Box change.
func (f *Font) Draw(dst draw.Image, spec overlay.RenderSpec) error {
	face, err := f.Face(spec.FontSize)
	if err != nil {
		return err
	}

	clip := dst.Bounds().Intersect(spec.Box.Rect())
	if clip.Empty() || spec.Text == "" {
		return nil
	}
	target := clipTo(dst, clip)

	advance := font.MeasureString(face, spec.Text)
	origin := fixed.Point26_6{
		X: toFixed(spec.Anchor.X) - advance/2,
		Y: toFixed(spec.Anchor.Y) + face.Metrics().Ascent,
	}

	d := &font.Drawer{Dst: target, Face: face}

	if r := spec.StrokeWidth; r > 0 {
		d.Src = image.NewUniform(spec.Stroke.RGBA())
		for dy := -r; dy <= r; dy++ {
			for dx := -r; dx <= r; dx++ {
				if dx == 0 && dy == 0 || dx*dx+dy*dy > r*r {
					continue
				}
				d.Dot = origin.Add(fixed.P(dx, dy))
				d.DrawString(spec.Text)
			}
		}
	}

	d.Src = image.NewUniform(spec.Fill.RGBA())
	d.Dot = origin
	d.DrawString(spec.Text)
	return nil
}

// Close releases the cached faces.
func (f *Font) Close() error {
	for size, face := range f.faces {
		face.Close()
		delete(f.faces, size)
	}
	return nil
}

func toFixed(v float64) fixed.Int26_6 {
	return fixed.Int26_6(math.Round(v * 64))
}

func fromFixed(v fixed.Int26_6) float64 {
	return float64(v) / 64
}

// clipTo restricts drawing on dst to r.
func clipTo(dst draw.Image, r image.Rectangle) draw.Image {
	type subImager interface {
		SubImage(image.Rectangle) image.Image
	}
	if s, ok := dst.(subImager); ok {
		if sub, ok := s.SubImage(r).(draw.Image); ok {
			return sub
		}
	}
	return &clipped{Image: dst, r: r}
}

type clipped struct {
	draw.Image
	r image.Rectangle
}

func (c *clipped) Bounds() image.Rectangle { return c.r }

func (c *clipped) Set(x, y int, col color.Color) {
	if (image.Point{X: x, Y: y}).In(c.r) {
		c.Image.Set(x, y, col)
	}
}
