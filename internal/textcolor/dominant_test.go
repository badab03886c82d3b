package textcolor

import (
	"image"
	"image/color"
	"testing"

	"github.com/ironsheep/image-translate-mcp/internal/imaging"
)

// textImage paints bg everywhere and fg on a horizontal bar through the
// middle third, giving text-like minority coverage.
func textImage(w, h int, bg, fg color.RGBA) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			c := bg
			if y >= h/3 && y < h/3+h/5 && x >= w/10 && x < w-w/10 {
				c = fg
			}
			img.SetRGBA(x, y, c)
		}
	}
	return img
}

func TestDominantColor(t *testing.T) {
	tests := []struct {
		name   string
		w, h   int
		bg, fg color.RGBA
		want   imaging.RGBColor
	}{
		{
			name: "dark text on light background",
			w:    120, h: 40,
			bg:   color.RGBA{200, 200, 200, 255},
			fg:   color.RGBA{10, 10, 10, 255},
			want: imaging.RGBColor{R: 10, G: 10, B: 10},
		},
		{
			name: "light text on dark background",
			w:    120, h: 40,
			bg:   color.RGBA{20, 20, 20, 255},
			fg:   color.RGBA{240, 240, 240, 255},
			want: imaging.RGBColor{R: 240, G: 240, B: 240},
		},
		{
			name: "colored text",
			w:    96, h: 48,
			bg:   color.RGBA{250, 250, 240, 255},
			fg:   color.RGBA{180, 20, 20, 255},
			want: imaging.RGBColor{R: 180, G: 20, B: 20},
		},
		{
			name: "size not a multiple of the grid",
			w:    37, h: 19,
			bg:   color.RGBA{200, 200, 200, 255},
			fg:   color.RGBA{10, 10, 10, 255},
			want: imaging.RGBColor{R: 10, G: 10, B: 10},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			original := textImage(tt.w, tt.h, tt.bg, tt.fg)
			enhanced := imaging.PrepareForDetection(original)

			got := DominantColor(original, enhanced)
			if got != tt.want {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDominantColor_Degenerate(t *testing.T) {
	tests := []struct {
		name string
		img  image.Image
	}{
		{"uniform", textImage(50, 20, color.RGBA{90, 120, 200, 255}, color.RGBA{90, 120, 200, 255})},
		{"uniform black", textImage(16, 16, color.RGBA{0, 0, 0, 255}, color.RGBA{0, 0, 0, 255})},
		{"empty", image.NewRGBA(image.Rectangle{})},
		{"single pixel", textImage(1, 1, color.RGBA{255, 255, 255, 255}, color.RGBA{255, 255, 255, 255})},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DominantColor(tt.img, tt.img); got != imaging.Black {
				t.Errorf("got %v, want black", got)
			}
		})
	}
}

func TestDominantColor_OffsetBounds(t *testing.T) {
	full := textImage(200, 100, color.RGBA{200, 200, 200, 255}, color.RGBA{10, 10, 10, 255})
	sub := full.SubImage(image.Rect(10, 20, 190, 80))

	got := DominantColor(sub, imaging.PrepareForDetection(sub))
	if got != (imaging.RGBColor{R: 10, G: 10, B: 10}) {
		t.Errorf("got %v, want (10,10,10)", got)
	}
}

func TestMode_TieBreak(t *testing.T) {
	counts := map[imaging.RGBColor]int{
		{R: 9, G: 0, B: 0}: 3,
		{R: 1, G: 5, B: 0}: 3,
		{R: 1, G: 4, B: 9}: 3,
		{R: 0, G: 0, B: 1}: 2,
	}
	if got := mode(counts); got != (imaging.RGBColor{R: 1, G: 4, B: 9}) {
		t.Errorf("got %v, want (1,4,9)", got)
	}
	if got := mode(nil); got != imaging.Black {
		t.Errorf("empty counts: got %v, want black", got)
	}
}
