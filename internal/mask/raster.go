package mask

import (
	"fmt"
	"image"

	"golang.org/x/image/vector"

	"cropaway/internal/crop"
	"cropaway/internal/geometry"
)

// kappa is the cubic bezier control distance that approximates a quarter
// circle.
const kappa = 0.5522847498

// Rasterize renders the active region of a crop state as a binary alpha mask
// of the given pixel dimensions. Coordinates in the state are normalized and
// are scaled by the target size. For the assisted mode an embedded mask blob
// is decoded when its dimensions match the target; otherwise the bounding box
// is filled.
func Rasterize(state crop.State, mode crop.Mode, width, height int) (Bitmap, error) {
	if width <= 0 || height <= 0 {
		return Bitmap{}, fmt.Errorf("invalid mask dimensions %dx%d", width, height)
	}

	switch mode {
	case crop.ModeRectangle:
		return rasterRect(state.Rect, width, height), nil
	case crop.ModeCircle:
		return rasterCircle(state.CircleCenter, state.CircleRadius, width, height), nil
	case crop.ModeFreehand:
		return rasterFreehand(state, width, height), nil
	case crop.ModeAI:
		if len(state.AIMask) > 0 {
			decoded, err := Decode(state.AIMask)
			if err == nil && decoded.Width == width && decoded.Height == height {
				return decoded, nil
			}
		}
		return rasterRect(state.AIBox, width, height), nil
	default:
		return Bitmap{}, fmt.Errorf("unknown crop mode %q", mode)
	}
}

func rasterRect(rect geometry.Rect, width, height int) Bitmap {
	r := vector.NewRasterizer(width, height)
	w := float32(width)
	h := float32(height)
	x0 := float32(rect.X) * w
	y0 := float32(rect.Y) * h
	x1 := float32(rect.X+rect.Width) * w
	y1 := float32(rect.Y+rect.Height) * h
	r.MoveTo(x0, y0)
	r.LineTo(x1, y0)
	r.LineTo(x1, y1)
	r.LineTo(x0, y1)
	r.ClosePath()
	return fill(r, width, height)
}

func rasterCircle(center geometry.Point, radius float64, width, height int) Bitmap {
	r := vector.NewRasterizer(width, height)
	cx := float32(center.X) * float32(width)
	cy := float32(center.Y) * float32(height)
	// Radius is normalized against the shorter side so circles stay round on
	// non-square targets.
	side := width
	if height < side {
		side = height
	}
	rad := float32(radius) * float32(side)
	k := float32(kappa) * rad

	r.MoveTo(cx+rad, cy)
	r.CubeTo(cx+rad, cy+k, cx+k, cy+rad, cx, cy+rad)
	r.CubeTo(cx-k, cy+rad, cx-rad, cy+k, cx-rad, cy)
	r.CubeTo(cx-rad, cy-k, cx-k, cy-rad, cx, cy-rad)
	r.CubeTo(cx+k, cy-rad, cx+rad, cy-k, cx+rad, cy)
	r.ClosePath()
	return fill(r, width, height)
}

func rasterFreehand(state crop.State, width, height int) Bitmap {
	w := float32(width)
	h := float32(height)
	px := func(p geometry.Point) (float32, float32) {
		return float32(p.X) * w, float32(p.Y) * h
	}

	r := vector.NewRasterizer(width, height)
	if state.HasFreehandPath() {
		path := state.FreehandPath
		x, y := px(path[0].Position)
		r.MoveTo(x, y)
		for i := range path {
			from := path[i]
			to := path[(i+1)%len(path)]
			x0, y0 := px(from.Position)
			x1, y1 := px(to.Position)
			if !from.HasControlOut && !to.HasControlIn {
				r.LineTo(x1, y1)
				continue
			}
			cx0, cy0 := x0, y0
			if from.HasControlOut {
				cx0, cy0 = px(from.Position.Add(from.ControlOut))
			}
			cx1, cy1 := x1, y1
			if to.HasControlIn {
				cx1, cy1 = px(to.Position.Add(to.ControlIn))
			}
			r.CubeTo(cx0, cy0, cx1, cy1, x1, y1)
		}
		r.ClosePath()
		return fill(r, width, height)
	}

	if len(state.FreehandPoints) >= 3 {
		x, y := px(state.FreehandPoints[0])
		r.MoveTo(x, y)
		for _, p := range state.FreehandPoints[1:] {
			x, y = px(p)
			r.LineTo(x, y)
		}
		r.ClosePath()
		return fill(r, width, height)
	}
	return NewBitmap(width, height)
}

func fill(r *vector.Rasterizer, width, height int) Bitmap {
	dst := image.NewAlpha(image.Rect(0, 0, width, height))
	r.Draw(dst, dst.Bounds(), image.Opaque, image.Point{})

	bitmap := NewBitmap(width, height)
	for i, a := range dst.Pix {
		if a > 127 {
			bitmap.Pix[i] = 255
		}
	}
	return bitmap
}
