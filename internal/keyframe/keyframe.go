package keyframe

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	"cropaway/internal/crop"
)

// Curve selects the easing applied across the segment that starts at a
// keyframe. The segment between two keyframes is shaped entirely by the
// earlier keyframe's curve.
type Curve string

const (
	CurveLinear    Curve = "linear"
	CurveEaseIn    Curve = "ease_in"
	CurveEaseOut   Curve = "ease_out"
	CurveEaseInOut Curve = "ease_in_out"
	CurveHold      Curve = "hold"
)

var allCurves = []Curve{CurveLinear, CurveEaseIn, CurveEaseOut, CurveEaseInOut, CurveHold}

var curveSet = func() map[Curve]struct{} {
	set := make(map[Curve]struct{}, len(allCurves))
	for _, curve := range allCurves {
		set[curve] = struct{}{}
	}
	return set
}()

// Curves returns every supported curve tag in declaration order.
func Curves() []Curve {
	out := make([]Curve, len(allCurves))
	copy(out, allCurves)
	return out
}

// Valid reports whether the curve is a member of the closed enumeration.
func (c Curve) Valid() bool {
	_, ok := curveSet[c]
	return ok
}

// String returns the canonical lowercase name.
func (c Curve) String() string {
	return string(c)
}

// ParseCurve resolves the user-facing name of an interpolation curve.
func ParseCurve(raw string) (Curve, error) {
	name := strings.ToLower(strings.TrimSpace(raw))
	name = strings.ReplaceAll(name, "-", "_")
	curve := Curve(name)
	if !curve.Valid() {
		return "", fmt.Errorf("unknown interpolation curve %q", raw)
	}
	return curve, nil
}

// Keyframe is a crop-state snapshot anchored at a timestamp. The embedded
// state carries fields for every crop mode, but only the fields matching the
// clip's mode at authoring time are meaningful.
type Keyframe struct {
	ID        string
	Timestamp float64
	Curve     Curve
	State     crop.State
}

// New creates a keyframe with a fresh identity. The state is deep-copied so
// later edits to the caller's live state do not retroactively change the
// snapshot.
func New(timestamp float64, state crop.State, curve Curve) Keyframe {
	if !curve.Valid() {
		curve = CurveLinear
	}
	return Keyframe{
		ID:        uuid.NewString(),
		Timestamp: timestamp,
		Curve:     curve,
		State:     state.Clone(),
	}
}
