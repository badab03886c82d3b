package textcolor

import (
	"image"
	"math"
)

const (
	// ClipLimit is the contrast limit relative to a uniform tile histogram.
	ClipLimit = 2.0

	// TileGrid is the number of tiles along each axis.
	TileGrid = 8

	histSize = 256
)

// Equalize applies contrast limited adaptive histogram equalization to gray
// using a TileGrid x TileGrid grid and the given clip limit. The result has
// the same bounds as gray.
//
// When the image size is not a multiple of the grid, the tile histograms are
// computed over a copy extended at the bottom and right by mirror reflection
// (edge pixel not repeated). Output pixels are bilinear blends of the four
// nearest tile lookup tables.
func Equalize(gray *image.Gray, clipLimit float64) *image.Gray {
	b := gray.Bounds()
	dst := image.NewGray(b)
	if b.Empty() {
		return dst
	}

	src := gray
	if b.Dx()%TileGrid != 0 || b.Dy()%TileGrid != 0 {
		src = reflectPad(gray, TileGrid-b.Dx()%TileGrid, TileGrid-b.Dy()%TileGrid)
	}
	sb := src.Bounds()

	tileW := sb.Dx() / TileGrid
	tileH := sb.Dy() / TileGrid
	tileArea := tileW * tileH

	limit := 0
	if clipLimit > 0 {
		limit = int(clipLimit * float64(tileArea) / histSize)
		if limit < 1 {
			limit = 1
		}
	}
	lutScale := float32(histSize-1) / float32(tileArea)

	luts := make([][histSize]uint8, TileGrid*TileGrid)
	for ty := 0; ty < TileGrid; ty++ {
		for tx := 0; tx < TileGrid; tx++ {
			tile := image.Rect(tx*tileW, ty*tileH, (tx+1)*tileW, (ty+1)*tileH).Add(sb.Min)
			luts[ty*TileGrid+tx] = tileLUT(src, tile, limit, lutScale)
		}
	}

	invTW := 1 / float32(tileW)
	invTH := 1 / float32(tileH)

	for y := 0; y < b.Dy(); y++ {
		ty1, ty2, ya := tileCoord(y, invTH)
		for x := 0; x < b.Dx(); x++ {
			tx1, tx2, xa := tileCoord(x, invTW)

			v := gray.Pix[gray.PixOffset(b.Min.X+x, b.Min.Y+y)]
			l11 := float32(luts[ty1*TileGrid+tx1][v])
			l12 := float32(luts[ty1*TileGrid+tx2][v])
			l21 := float32(luts[ty2*TileGrid+tx1][v])
			l22 := float32(luts[ty2*TileGrid+tx2][v])

			res := (l11*(1-xa)+l12*xa)*(1-ya) + (l21*(1-xa)+l22*xa)*ya
			dst.Pix[dst.PixOffset(b.Min.X+x, b.Min.Y+y)] = saturate(float64(res))
		}
	}

	return dst
}

// tileCoord returns the two tile indices surrounding pixel p and the weight
// of the second one.
func tileCoord(p int, inv float32) (int, int, float32) {
	f := float32(p)*inv - 0.5
	t1 := int(math.Floor(float64(f)))
	t2 := t1 + 1
	a := f - float32(t1)
	if t1 < 0 {
		t1 = 0
	}
	if t2 > TileGrid-1 {
		t2 = TileGrid - 1
	}
	return t1, t2, a
}

func tileLUT(src *image.Gray, tile image.Rectangle, limit int, scale float32) [histSize]uint8 {
	var hist [histSize]int
	for y := tile.Min.Y; y < tile.Max.Y; y++ {
		row := src.Pix[src.PixOffset(tile.Min.X, y):]
		for x := 0; x < tile.Dx(); x++ {
			hist[row[x]]++
		}
	}

	if limit > 0 {
		clipped := 0
		for i := range hist {
			if hist[i] > limit {
				clipped += hist[i] - limit
				hist[i] = limit
			}
		}

		batch := clipped / histSize
		residual := clipped - batch*histSize
		for i := range hist {
			hist[i] += batch
		}
		if residual != 0 {
			step := histSize / residual
			if step < 1 {
				step = 1
			}
			for i := 0; i < histSize && residual > 0; i, residual = i+step, residual-1 {
				hist[i]++
			}
		}
	}

	var lut [histSize]uint8
	sum := 0
	for i := range hist {
		sum += hist[i]
		lut[i] = saturate(float64(float32(sum) * scale))
	}
	return lut
}

// reflectPad extends gray by padX columns on the right and padY rows at the
// bottom, mirroring about the last column and row.
func reflectPad(gray *image.Gray, padX, padY int) *image.Gray {
	b := gray.Bounds()
	w, h := b.Dx(), b.Dy()
	out := image.NewGray(image.Rect(0, 0, w+padX, h+padY))
	for y := 0; y < h+padY; y++ {
		sy := reflect101(y, h)
		for x := 0; x < w+padX; x++ {
			sx := reflect101(x, w)
			out.Pix[y*out.Stride+x] = gray.Pix[gray.PixOffset(b.Min.X+sx, b.Min.Y+sy)]
		}
	}
	return out
}

func reflect101(p, n int) int {
	if n == 1 {
		return 0
	}
	for p < 0 || p >= n {
		if p < 0 {
			p = -p
		} else {
			p = 2*(n-1) - p
		}
	}
	return p
}

func saturate(v float64) uint8 {
	r := math.RoundToEven(v)
	if r < 0 {
		return 0
	}
	if r > 255 {
		return 255
	}
	return uint8(r)
}
