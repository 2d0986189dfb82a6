package keyframe

import (
	"math"
	"sort"

	"cropaway/internal/crop"
	"cropaway/internal/geometry"
)

// DefaultTolerance is the window, in seconds, within which two timestamps
// are considered the same keyframe slot.
const DefaultTolerance = 0.05

// InsertPolicy decides what happens when an inserted timestamp collides with
// an existing keyframe.
type InsertPolicy int

const (
	// Overwrite replaces the colliding keyframe's state in place, keeping
	// its identity, timestamp, and curve. This is the auto-keyframe path.
	Overwrite InsertPolicy = iota
	// Reject leaves the track unchanged when a collision occurs. This is
	// the explicit-placement path where a duplicate would be a user error.
	Reject
)

// Track is an ordered collection of keyframes for one clip, always sorted
// ascending by timestamp. The zero value is not usable; construct with
// NewTrack or FromKeyframes.
type Track struct {
	keyframes []Keyframe
	tolerance float64
}

// NewTrack returns an empty track with the default collision tolerance.
func NewTrack() *Track {
	return NewTrackWithTolerance(DefaultTolerance)
}

// NewTrackWithTolerance returns an empty track using the provided collision
// tolerance. Non-positive tolerances fall back to the default.
func NewTrackWithTolerance(tolerance float64) *Track {
	if !(tolerance > 0) {
		tolerance = DefaultTolerance
	}
	return &Track{tolerance: tolerance}
}

// FromKeyframes builds a track from existing keyframes, e.g. reloaded from
// persistence. The input is copied and sorted; ordering of the caller's
// slice does not matter.
func FromKeyframes(keyframes []Keyframe, tolerance float64) *Track {
	track := NewTrackWithTolerance(tolerance)
	track.keyframes = make([]Keyframe, len(keyframes))
	copy(track.keyframes, keyframes)
	track.sortByTimestamp()
	return track
}

// Tolerance returns the collision tolerance in seconds.
func (t *Track) Tolerance() float64 {
	return t.tolerance
}

// Len returns the number of keyframes.
func (t *Track) Len() int {
	return len(t.keyframes)
}

// Keyframes returns a copy of the keyframes in ascending timestamp order.
func (t *Track) Keyframes() []Keyframe {
	out := make([]Keyframe, len(t.keyframes))
	copy(out, t.keyframes)
	return out
}

// At returns the keyframe at position i in timestamp order.
func (t *Track) At(i int) Keyframe {
	return t.keyframes[i]
}

// First returns the earliest keyframe; ok is false for an empty track.
func (t *Track) First() (Keyframe, bool) {
	if len(t.keyframes) == 0 {
		return Keyframe{}, false
	}
	return t.keyframes[0], true
}

// Last returns the latest keyframe; ok is false for an empty track.
func (t *Track) Last() (Keyframe, bool) {
	if len(t.keyframes) == 0 {
		return Keyframe{}, false
	}
	return t.keyframes[len(t.keyframes)-1], true
}

// ByID looks up a keyframe by identity.
func (t *Track) ByID(id string) (Keyframe, bool) {
	for _, kf := range t.keyframes {
		if kf.ID == id {
			return kf, true
		}
	}
	return Keyframe{}, false
}

// FindNear returns the keyframe whose timestamp lies within the collision
// tolerance of ts, if any. With sorted keyframes at least tolerance apart
// there can be at most one such keyframe.
func (t *Track) FindNear(ts float64) (Keyframe, bool) {
	if !geometry.IsFinite(ts) {
		return Keyframe{}, false
	}
	for _, kf := range t.keyframes {
		if math.Abs(kf.Timestamp-ts) <= t.tolerance {
			return kf, true
		}
		if kf.Timestamp > ts+t.tolerance {
			break
		}
	}
	return Keyframe{}, false
}

// Insert adds a keyframe at the given timestamp, maintaining sort order.
// Non-finite or negative timestamps are rejected. When an existing keyframe
// lies within the collision tolerance, the policy decides: Overwrite updates
// that keyframe's state in place, Reject leaves the track unchanged. The
// resulting keyframe and whether the track changed are returned.
func (t *Track) Insert(ts float64, state crop.State, curve Curve, policy InsertPolicy) (Keyframe, bool) {
	if !geometry.IsFinite(ts) || ts < 0 {
		return Keyframe{}, false
	}
	if existing, ok := t.FindNear(ts); ok {
		if policy == Reject {
			return Keyframe{}, false
		}
		for i := range t.keyframes {
			if t.keyframes[i].ID == existing.ID {
				t.keyframes[i].State = state.Clone()
				return t.keyframes[i], true
			}
		}
		return Keyframe{}, false
	}
	kf := New(ts, state, curve)
	t.keyframes = append(t.keyframes, kf)
	t.sortByTimestamp()
	return kf, true
}

// Remove deletes the keyframe with the given identity; no-op when absent.
func (t *Track) Remove(id string) bool {
	for i := range t.keyframes {
		if t.keyframes[i].ID == id {
			t.keyframes = append(t.keyframes[:i], t.keyframes[i+1:]...)
			return true
		}
	}
	return false
}

// Move shifts a keyframe to a new timestamp and re-sorts. The move is
// rejected when the target timestamp is non-finite, negative, or collides
// with any keyframe other than the one being moved.
func (t *Track) Move(id string, newTimestamp float64) bool {
	if !geometry.IsFinite(newTimestamp) || newTimestamp < 0 {
		return false
	}
	index := -1
	for i := range t.keyframes {
		if t.keyframes[i].ID == id {
			index = i
			continue
		}
		if math.Abs(t.keyframes[i].Timestamp-newTimestamp) <= t.tolerance {
			return false
		}
	}
	if index < 0 {
		return false
	}
	t.keyframes[index].Timestamp = newTimestamp
	t.sortByTimestamp()
	return true
}

// SetCurve replaces the interpolation curve of a keyframe; no-op when the
// keyframe is absent or the curve is invalid.
func (t *Track) SetCurve(id string, curve Curve) bool {
	if !curve.Valid() {
		return false
	}
	for i := range t.keyframes {
		if t.keyframes[i].ID == id {
			t.keyframes[i].Curve = curve
			return true
		}
	}
	return false
}

// SetState replaces the crop snapshot of a keyframe; no-op when absent.
func (t *Track) SetState(id string, state crop.State) bool {
	for i := range t.keyframes {
		if t.keyframes[i].ID == id {
			t.keyframes[i].State = state.Clone()
			return true
		}
	}
	return false
}

// Clear removes every keyframe.
func (t *Track) Clear() {
	t.keyframes = nil
}

// Query returns the keyframes bracketing ts. Before the first keyframe the
// result is (nil, first); after the last it is (last, nil). When ts matches
// a keyframe within the collision tolerance both results are that keyframe,
// yielding a zero-length segment. Non-finite timestamps are treated as lying
// before the first keyframe so NaN never propagates into interpolation. The
// returned pointers reference copies, never internal storage.
func (t *Track) Query(ts float64) (before, after *Keyframe) {
	if len(t.keyframes) == 0 {
		return nil, nil
	}
	if !geometry.IsFinite(ts) {
		first := t.keyframes[0]
		return nil, &first
	}
	if match, ok := t.FindNear(ts); ok {
		b, a := match, match
		return &b, &a
	}
	// First keyframe strictly after ts.
	idx := sort.Search(len(t.keyframes), func(i int) bool {
		return t.keyframes[i].Timestamp > ts
	})
	if idx == 0 {
		first := t.keyframes[0]
		return nil, &first
	}
	if idx == len(t.keyframes) {
		last := t.keyframes[len(t.keyframes)-1]
		return &last, nil
	}
	b, a := t.keyframes[idx-1], t.keyframes[idx]
	return &b, &a
}

func (t *Track) sortByTimestamp() {
	sort.SliceStable(t.keyframes, func(i, j int) bool {
		return t.keyframes[i].Timestamp < t.keyframes[j].Timestamp
	})
}
