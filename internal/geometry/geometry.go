package geometry

import "math"

// Lerp returns the linear blend of a and b at parameter t.
func Lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

// Clamp constrains v to the inclusive range [lo, hi].
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Clamp01 constrains v to the unit interval.
func Clamp01(v float64) float64 {
	return Clamp(v, 0, 1)
}

// IsFinite reports whether v is neither NaN nor infinite.
func IsFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// Point is a normalized 2D coordinate.
type Point struct {
	X float64
	Y float64
}

// Add returns the component-wise sum of p and q.
func (p Point) Add(q Point) Point {
	return Point{X: p.X + q.X, Y: p.Y + q.Y}
}

// Lerp blends p toward q at parameter t, component-wise.
func (p Point) Lerp(q Point, t float64) Point {
	return Point{X: Lerp(p.X, q.X, t), Y: Lerp(p.Y, q.Y, t)}
}

// Clamp constrains both components to the unit interval.
func (p Point) Clamp() Point {
	return Point{X: Clamp01(p.X), Y: Clamp01(p.Y)}
}

// Denormalize converts p from unit coordinates to pixel coordinates in s.
func (p Point) Denormalize(s Size) Point {
	return Point{X: p.X * s.Width, Y: p.Y * s.Height}
}

// Normalize converts p from pixel coordinates in s to unit coordinates.
// When s has a non-positive dimension the point is returned unchanged.
func (p Point) Normalize(s Size) Point {
	if !s.IsPositive() {
		return p
	}
	return Point{X: p.X / s.Width, Y: p.Y / s.Height}
}

// Size is a width/height pair.
type Size struct {
	Width  float64
	Height float64
}

// IsPositive reports whether both dimensions are greater than zero.
func (s Size) IsPositive() bool {
	return s.Width > 0 && s.Height > 0
}

// Lerp blends s toward o at parameter t, component-wise.
func (s Size) Lerp(o Size, t float64) Size {
	return Size{Width: Lerp(s.Width, o.Width, t), Height: Lerp(s.Height, o.Height, t)}
}

// Fit returns the largest size that fits inside container while preserving
// the aspect ratio of s. Degenerate inputs are returned unchanged.
func (s Size) Fit(container Size) Size {
	if !s.IsPositive() || !container.IsPositive() {
		return s
	}
	scale := math.Min(container.Width/s.Width, container.Height/s.Height)
	return Size{Width: s.Width * scale, Height: s.Height * scale}
}

// Rect is an axis-aligned rectangle described by its origin and size.
type Rect struct {
	X      float64
	Y      float64
	Width  float64
	Height float64
}

// UnitRect covers the full normalized frame.
var UnitRect = Rect{X: 0, Y: 0, Width: 1, Height: 1}

// Origin returns the top-left corner.
func (r Rect) Origin() Point {
	return Point{X: r.X, Y: r.Y}
}

// Size returns the rectangle dimensions.
func (r Rect) Size() Size {
	return Size{Width: r.Width, Height: r.Height}
}

// Center returns the midpoint of the rectangle.
func (r Rect) Center() Point {
	return Point{X: r.X + r.Width/2, Y: r.Y + r.Height/2}
}

// IsEmpty reports whether the rectangle has zero or negative area.
func (r Rect) IsEmpty() bool {
	return r.Width <= 0 || r.Height <= 0
}

// Contains reports whether p lies inside the rectangle, edges included.
func (r Rect) Contains(p Point) bool {
	return p.X >= r.X && p.X <= r.X+r.Width && p.Y >= r.Y && p.Y <= r.Y+r.Height
}

// Lerp blends r toward o at parameter t, component-wise across origin and size.
func (r Rect) Lerp(o Rect, t float64) Rect {
	return Rect{
		X:      Lerp(r.X, o.X, t),
		Y:      Lerp(r.Y, o.Y, t),
		Width:  Lerp(r.Width, o.Width, t),
		Height: Lerp(r.Height, o.Height, t),
	}
}

// Clamp constrains the rectangle to the unit square. The size is clamped
// first, then the origin is shifted so the rectangle stays fully inside.
func (r Rect) Clamp() Rect {
	w := Clamp01(r.Width)
	h := Clamp01(r.Height)
	return Rect{
		X:      Clamp(r.X, 0, 1-w),
		Y:      Clamp(r.Y, 0, 1-h),
		Width:  w,
		Height: h,
	}
}

// Denormalize converts r from unit coordinates to pixel coordinates in s.
func (r Rect) Denormalize(s Size) Rect {
	return Rect{
		X:      r.X * s.Width,
		Y:      r.Y * s.Height,
		Width:  r.Width * s.Width,
		Height: r.Height * s.Height,
	}
}

// Normalize converts r from pixel coordinates in s to unit coordinates.
// When s has a non-positive dimension the rectangle is returned unchanged.
func (r Rect) Normalize(s Size) Rect {
	if !s.IsPositive() {
		return r
	}
	return Rect{
		X:      r.X / s.Width,
		Y:      r.Y / s.Height,
		Width:  r.Width / s.Width,
		Height: r.Height / s.Height,
	}
}
