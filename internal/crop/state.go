package crop

import "cropaway/internal/geometry"

// PathVertex is one vertex of a freehand bezier mask. Control offsets are
// expressed relative to Position; a vertex without control points degrades
// to a polygon corner.
type PathVertex struct {
	Position      geometry.Point
	ControlIn     geometry.Point
	ControlOut    geometry.Point
	HasControlIn  bool
	HasControlOut bool
}

// Lerp blends the vertex toward o at parameter t. Control offsets blend only
// when both vertices carry them; otherwise the receiver's controls are kept.
func (v PathVertex) Lerp(o PathVertex, t float64) PathVertex {
	out := v
	out.Position = v.Position.Lerp(o.Position, t)
	if v.HasControlIn && o.HasControlIn {
		out.ControlIn = v.ControlIn.Lerp(o.ControlIn, t)
	}
	if v.HasControlOut && o.HasControlOut {
		out.ControlOut = v.ControlOut.Lerp(o.ControlOut, t)
	}
	return out
}

// State is a crop snapshot at a single point in time. All coordinates are
// normalized to [0,1] relative to the source video dimensions. Fields for
// every mode are present; only the active mode's fields are interpreted.
type State struct {
	// Rect is the crop rectangle, active in ModeRectangle.
	Rect geometry.Rect

	// CircleCenter and CircleRadius describe the circular crop, active in
	// ModeCircle. The radius is normalized to the shorter frame dimension
	// and stays within (0, 0.5].
	CircleCenter geometry.Point
	CircleRadius float64

	// FreehandPoints is the polygon fallback for ModeFreehand; empty or at
	// least three points. FreehandPath, when it has three or more vertices,
	// takes precedence over the polygon.
	FreehandPoints []geometry.Point
	FreehandPath   []PathVertex

	// AIBox is the bounding box of the AI segmentation, active in ModeAI.
	// AIMask is the encoded mask blob produced by the segmentation service;
	// it is carried verbatim and never interpolated. AIPrompt records the
	// text prompt the mask was generated from.
	AIBox    geometry.Rect
	AIMask   []byte
	AIPrompt string
}

// Default returns the state a freshly bound clip starts from: a full-frame
// rectangle and a centered circle at a quarter-frame radius.
func Default() State {
	return State{
		Rect:         geometry.UnitRect,
		CircleCenter: geometry.Point{X: 0.5, Y: 0.5},
		CircleRadius: 0.25,
		AIBox:        geometry.UnitRect,
	}
}

// HasFreehandPath reports whether the bezier path is usable, i.e. present
// with at least three vertices.
func (s State) HasFreehandPath() bool {
	return len(s.FreehandPath) >= 3
}

// Active reports whether the state describes a usable crop for the given
// mode. Inactive or degenerate geometry (an empty rectangle, a non-positive
// radius, too few freehand points) is not considered an active crop.
func (s State) Active(mode Mode) bool {
	switch mode {
	case ModeRectangle:
		return !s.Rect.IsEmpty()
	case ModeCircle:
		return s.CircleRadius > 0 && s.CircleRadius <= 0.5
	case ModeFreehand:
		return s.HasFreehandPath() || len(s.FreehandPoints) >= 3
	case ModeAI:
		return !s.AIBox.IsEmpty()
	default:
		return false
	}
}

// Clone returns a deep copy; the freehand slices and mask blob are duplicated
// so mutating the copy never aliases the original.
func (s State) Clone() State {
	out := s
	if s.FreehandPoints != nil {
		out.FreehandPoints = make([]geometry.Point, len(s.FreehandPoints))
		copy(out.FreehandPoints, s.FreehandPoints)
	}
	if s.FreehandPath != nil {
		out.FreehandPath = make([]PathVertex, len(s.FreehandPath))
		copy(out.FreehandPath, s.FreehandPath)
	}
	if s.AIMask != nil {
		out.AIMask = make([]byte, len(s.AIMask))
		copy(out.AIMask, s.AIMask)
	}
	return out
}

// Clamp constrains the mode-relevant geometry to the unit frame. Only the
// active mode's fields are touched so latent fields survive untouched.
func (s State) Clamp(mode Mode) State {
	out := s
	switch mode {
	case ModeRectangle:
		out.Rect = s.Rect.Clamp()
	case ModeCircle:
		out.CircleCenter = s.CircleCenter.Clamp()
		out.CircleRadius = geometry.Clamp(s.CircleRadius, 0, 0.5)
	case ModeFreehand:
		if s.FreehandPoints != nil {
			out.FreehandPoints = make([]geometry.Point, len(s.FreehandPoints))
			for i, p := range s.FreehandPoints {
				out.FreehandPoints[i] = p.Clamp()
			}
		}
	case ModeAI:
		out.AIBox = s.AIBox.Clamp()
	}
	return out
}
