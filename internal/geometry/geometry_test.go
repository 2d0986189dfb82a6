package geometry_test

import (
	"math"
	"testing"

	"cropaway/internal/geometry"
)

func TestLerpEndpointsAndMidpoint(t *testing.T) {
	if got := geometry.Lerp(2, 6, 0); got != 2 {
		t.Fatalf("Lerp at t=0 = %v, want 2", got)
	}
	if got := geometry.Lerp(2, 6, 1); got != 6 {
		t.Fatalf("Lerp at t=1 = %v, want 6", got)
	}
	if got := geometry.Lerp(2, 6, 0.5); got != 4 {
		t.Fatalf("Lerp at t=0.5 = %v, want 4", got)
	}
}

func TestRectLerpComponentWise(t *testing.T) {
	a := geometry.Rect{X: 0, Y: 0, Width: 0.5, Height: 0.5}
	b := geometry.Rect{X: 0.5, Y: 0.5, Width: 0.5, Height: 0.5}
	got := a.Lerp(b, 0.5)
	want := geometry.Rect{X: 0.25, Y: 0.25, Width: 0.5, Height: 0.5}
	if got != want {
		t.Fatalf("Lerp = %+v, want %+v", got, want)
	}
}

func TestRectClampKeepsRectInsideUnitSquare(t *testing.T) {
	cases := []struct {
		name string
		in   geometry.Rect
		want geometry.Rect
	}{
		{
			name: "overhanging origin",
			in:   geometry.Rect{X: 0.8, Y: 0.9, Width: 0.5, Height: 0.5},
			want: geometry.Rect{X: 0.5, Y: 0.5, Width: 0.5, Height: 0.5},
		},
		{
			name: "negative origin",
			in:   geometry.Rect{X: -0.2, Y: -0.1, Width: 0.4, Height: 0.4},
			want: geometry.Rect{X: 0, Y: 0, Width: 0.4, Height: 0.4},
		},
		{
			name: "oversized",
			in:   geometry.Rect{X: 0, Y: 0, Width: 2, Height: 3},
			want: geometry.UnitRect,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.in.Clamp(); got != tc.want {
				t.Fatalf("Clamp = %+v, want %+v", got, tc.want)
			}
		})
	}
}

func TestSizeFitPreservesAspectRatio(t *testing.T) {
	src := geometry.Size{Width: 1920, Height: 1080}
	container := geometry.Size{Width: 960, Height: 960}
	got := src.Fit(container)
	if got.Width != 960 {
		t.Fatalf("Fit width = %v, want 960", got.Width)
	}
	if got.Height != 540 {
		t.Fatalf("Fit height = %v, want 540", got.Height)
	}
	ratioBefore := src.Width / src.Height
	ratioAfter := got.Width / got.Height
	if math.Abs(ratioBefore-ratioAfter) > 1e-12 {
		t.Fatalf("aspect ratio changed: %v -> %v", ratioBefore, ratioAfter)
	}
}

func TestNormalizeNonPositiveDivisorIsIdentity(t *testing.T) {
	r := geometry.Rect{X: 10, Y: 20, Width: 30, Height: 40}
	if got := r.Normalize(geometry.Size{Width: 0, Height: 100}); got != r {
		t.Fatalf("Normalize with zero width divisor = %+v, want identity %+v", got, r)
	}
	p := geometry.Point{X: 5, Y: 6}
	if got := p.Normalize(geometry.Size{Width: -1, Height: -1}); got != p {
		t.Fatalf("Normalize with negative divisor = %+v, want identity %+v", got, p)
	}
}

func TestNormalizeDenormalizeRoundTrip(t *testing.T) {
	frame := geometry.Size{Width: 1280, Height: 720}
	r := geometry.Rect{X: 0.25, Y: 0.1, Width: 0.5, Height: 0.6}
	pixels := r.Denormalize(frame)
	back := pixels.Normalize(frame)
	const eps = 1e-12
	if math.Abs(back.X-r.X) > eps || math.Abs(back.Y-r.Y) > eps ||
		math.Abs(back.Width-r.Width) > eps || math.Abs(back.Height-r.Height) > eps {
		t.Fatalf("round trip = %+v, want %+v", back, r)
	}
}

func TestIsFinite(t *testing.T) {
	if geometry.IsFinite(math.NaN()) {
		t.Fatal("NaN reported finite")
	}
	if geometry.IsFinite(math.Inf(1)) {
		t.Fatal("+Inf reported finite")
	}
	if !geometry.IsFinite(0) {
		t.Fatal("0 reported non-finite")
	}
}
