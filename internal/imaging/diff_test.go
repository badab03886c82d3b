package imaging

import (
	"image"
	"image/color"
	"testing"
)

func TestCompareImages(t *testing.T) {
	a := image.NewRGBA(image.Rect(0, 0, 10, 10))
	b := image.NewRGBA(image.Rect(0, 0, 10, 10))

	diff, err := CompareImages(a, b)
	if err != nil {
		t.Fatalf("CompareImages failed: %v", err)
	}
	if !diff.Unchanged() || !diff.ChangedBounds.Empty() {
		t.Errorf("identical images reported %d changes", diff.PixelsChanged)
	}
	if diff.TotalPixels != 100 {
		t.Errorf("TotalPixels: got %d, want 100", diff.TotalPixels)
	}

	b.SetRGBA(2, 3, color.RGBA{30, 0, 0, 255})
	b.SetRGBA(6, 8, color.RGBA{0, 0, 30, 255})

	diff, err = CompareImages(a, b)
	if err != nil {
		t.Fatal(err)
	}
	if diff.PixelsChanged != 2 {
		t.Errorf("PixelsChanged: got %d, want 2", diff.PixelsChanged)
	}
	if want := image.Rect(2, 3, 7, 9); diff.ChangedBounds != want {
		t.Errorf("ChangedBounds: got %v, want %v", diff.ChangedBounds, want)
	}
	if diff.AverageColorDiff != 0.2 {
		t.Errorf("AverageColorDiff: got %v, want 0.2", diff.AverageColorDiff)
	}
}

func TestCompareImages_OffsetOrigins(t *testing.T) {
	a := createPatternImage(20, 20)
	b := image.NewRGBA(image.Rect(100, 100, 120, 120))
	for y := 0; y < 20; y++ {
		for x := 0; x < 20; x++ {
			b.Set(100+x, 100+y, a.At(x, y))
		}
	}

	diff, err := CompareImages(a, b)
	if err != nil {
		t.Fatal(err)
	}
	if !diff.Unchanged() {
		t.Errorf("shifted copy reported %d changes", diff.PixelsChanged)
	}
}

func TestCompareImages_SizeMismatch(t *testing.T) {
	a := image.NewRGBA(image.Rect(0, 0, 10, 10))
	b := image.NewRGBA(image.Rect(0, 0, 10, 11))
	if _, err := CompareImages(a, b); err == nil {
		t.Error("expected error for mismatched sizes")
	}
}
