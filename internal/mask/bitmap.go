package mask

import "cropaway/internal/geometry"

// Bitmap is a binary mask. Pix holds one byte per pixel in row-major order;
// any value above 127 counts as inside the mask.
type Bitmap struct {
	Width  int
	Height int
	Pix    []byte
}

// NewBitmap allocates an all-zero bitmap.
func NewBitmap(width, height int) Bitmap {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	return Bitmap{Width: width, Height: height, Pix: make([]byte, width*height)}
}

// Set marks the pixel at (x, y) as inside the mask.
func (b Bitmap) Set(x, y int) {
	if x < 0 || y < 0 || x >= b.Width || y >= b.Height {
		return
	}
	b.Pix[y*b.Width+x] = 255
}

// At reports whether the pixel at (x, y) is inside the mask.
func (b Bitmap) At(x, y int) bool {
	if x < 0 || y < 0 || x >= b.Width || y >= b.Height {
		return false
	}
	return b.Pix[y*b.Width+x] > 127
}

// Empty reports whether no pixel is inside the mask.
func (b Bitmap) Empty() bool {
	for _, v := range b.Pix {
		if v > 127 {
			return false
		}
	}
	return true
}

// BoundingBox returns the normalized bounding rectangle of the mask's
// interior. An empty mask yields the full frame, matching the behaviour of
// the segmentation service when no pixels are selected.
func (b Bitmap) BoundingBox() geometry.Rect {
	if b.Width == 0 || b.Height == 0 {
		return geometry.UnitRect
	}
	minX, minY := b.Width, b.Height
	maxX, maxY := -1, -1
	for y := 0; y < b.Height; y++ {
		row := b.Pix[y*b.Width : (y+1)*b.Width]
		for x, v := range row {
			if v <= 127 {
				continue
			}
			if x < minX {
				minX = x
			}
			if x > maxX {
				maxX = x
			}
			if y < minY {
				minY = y
			}
			if y > maxY {
				maxY = y
			}
		}
	}
	if maxX < 0 {
		return geometry.UnitRect
	}
	return geometry.Rect{
		X:      float64(minX) / float64(b.Width),
		Y:      float64(minY) / float64(b.Height),
		Width:  float64(maxX-minX+1) / float64(b.Width),
		Height: float64(maxY-minY+1) / float64(b.Height),
	}
}
