package session

import (
	"log/slog"

	"cropaway/internal/crop"
	"cropaway/internal/geometry"
	"cropaway/internal/interpolate"
	"cropaway/internal/keyframe"
)

// Phase is the session's position in the editing state machine.
type Phase string

const (
	// PhaseIdle means no drag is in progress and playback is not driving.
	PhaseIdle Phase = "idle"
	// PhaseLiveEditing means the user is dragging a handle or drawing.
	PhaseLiveEditing Phase = "live_editing"
	// PhasePlaybackDriven means the playhead is driving the live state
	// through interpolation.
	PhasePlaybackDriven Phase = "playback_driven"
)

// Change tags what a state transition touched so subscribers can react
// narrowly instead of diffing the whole session.
type Change string

const (
	ChangeLiveState Change = "live_state"
	ChangeKeyframes Change = "keyframes"
	ChangePhase     Change = "phase"
	ChangeMode      Change = "mode"
	ChangePlayhead  Change = "playhead"
	ChangeClip      Change = "clip"
)

// Listener receives the change tags produced by one state transition.
type Listener func(changes []Change)

// Session is the mutable editing context for one clip. Not thread-safe;
// confine to a single owner.
type Session struct {
	clipID       int64
	mode         crop.Mode
	track        *keyframe.Track
	live         crop.State
	defaults     crop.State
	playhead     float64
	phase        Phase
	keyframing   bool
	defaultCurve keyframe.Curve

	// updating guards against reentrant mutation from listener callbacks;
	// one state transition at a time.
	updating  bool
	listeners []Listener

	logger *slog.Logger
}

// Option configures session construction.
type Option func(*Session)

// WithLogger attaches a structured logger; transitions log at debug level.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Session) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithDefaultCurve sets the curve assigned to auto-created keyframes.
func WithDefaultCurve(curve keyframe.Curve) Option {
	return func(s *Session) {
		if curve.Valid() {
			s.defaultCurve = curve
		}
	}
}

// New returns an unbound session in the idle phase.
func New(opts ...Option) *Session {
	s := &Session{
		mode:         crop.ModeRectangle,
		track:        keyframe.NewTrack(),
		live:         crop.Default(),
		defaults:     crop.Default(),
		phase:        PhaseIdle,
		defaultCurve: keyframe.CurveLinear,
		logger:       slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Subscribe registers a listener for change notifications. Listeners run
// synchronously on the owning goroutine after each transition completes.
func (s *Session) Subscribe(l Listener) {
	if l != nil {
		s.listeners = append(s.listeners, l)
	}
}

// Bind loads a clip's keyframe track and crop mode. The live state resets to
// the first keyframe's snapshot when one exists, otherwise to the provided
// defaults, and the session returns to the idle phase.
func (s *Session) Bind(clipID int64, mode crop.Mode, track *keyframe.Track, defaults crop.State) {
	if !s.begin() {
		return
	}
	defer s.end()

	if !mode.Valid() {
		mode = crop.ModeRectangle
	}
	if track == nil {
		track = keyframe.NewTrack()
	}
	s.clipID = clipID
	s.mode = mode
	s.track = track
	s.defaults = defaults.Clone()
	s.playhead = 0
	s.phase = PhaseIdle
	if first, ok := track.First(); ok {
		s.live = first.State.Clone()
	} else {
		s.live = defaults.Clone()
	}
	s.logger.Debug("session bound", "clip_id", clipID, "mode", mode.String(), "keyframes", track.Len())
	s.notify(ChangeClip, ChangeMode, ChangeLiveState, ChangePhase)
}

// ClipID returns the bound clip identity.
func (s *Session) ClipID() int64 { return s.clipID }

// Phase returns the current state-machine phase.
func (s *Session) Phase() Phase { return s.phase }

// Mode returns the active crop mode.
func (s *Session) Mode() crop.Mode { return s.mode }

// Playhead returns the last playhead time the session saw.
func (s *Session) Playhead() float64 { return s.playhead }

// Keyframing reports whether keyframe authoring and playback interpolation
// are enabled.
func (s *Session) Keyframing() bool { return s.keyframing }

// Track exposes the bound keyframe track.
func (s *Session) Track() *keyframe.Track { return s.track }

// Live returns a copy of the current live crop state.
func (s *Session) Live() crop.State { return s.live.Clone() }

// SetKeyframing toggles keyframe authoring. Disabling it leaves the track
// intact; playback simply stops driving the live state.
func (s *Session) SetKeyframing(enabled bool) {
	if !s.begin() {
		return
	}
	defer s.end()
	s.keyframing = enabled
}

// BeginEdit marks the start of a handle drag or drawing gesture. While the
// session is in the live-editing phase, playhead changes never touch the
// live state.
func (s *Session) BeginEdit() {
	if !s.begin() {
		return
	}
	defer s.end()
	if s.phase == PhaseLiveEditing {
		return
	}
	s.phase = PhaseLiveEditing
	s.notify(ChangePhase)
}

// SetRect updates the live rectangle immediately, without interpolation.
func (s *Session) SetRect(r geometry.Rect) {
	s.mutateLive(func(state *crop.State) {
		state.Rect = r.Clamp()
	})
}

// SetCircle updates the live circle center and radius.
func (s *Session) SetCircle(center geometry.Point, radius float64) {
	s.mutateLive(func(state *crop.State) {
		state.CircleCenter = center.Clamp()
		state.CircleRadius = geometry.Clamp(radius, 0, 0.5)
	})
}

// SetFreehandPoints replaces the live freehand polygon.
func (s *Session) SetFreehandPoints(points []geometry.Point) {
	s.mutateLive(func(state *crop.State) {
		state.FreehandPoints = append([]geometry.Point(nil), points...)
	})
}

// SetFreehandPath replaces the live freehand bezier path.
func (s *Session) SetFreehandPath(path []crop.PathVertex) {
	s.mutateLive(func(state *crop.State) {
		state.FreehandPath = append([]crop.PathVertex(nil), path...)
	})
}

// SetAIResult installs a segmentation result: bounding box, mask blob, and
// the prompt that produced them.
func (s *Session) SetAIResult(box geometry.Rect, mask []byte, prompt string) {
	s.mutateLive(func(state *crop.State) {
		state.AIBox = box.Clamp()
		state.AIMask = append([]byte(nil), mask...)
		state.AIPrompt = prompt
	})
}

// EndEdit closes a drag gesture. When keyframing is enabled the live state
// is upserted at the current playhead: an existing keyframe within the
// collision tolerance is overwritten, otherwise a new keyframe is created
// with the default curve. Exactly one keyframe results, never a duplicate.
func (s *Session) EndEdit() {
	if !s.begin() {
		return
	}
	defer s.end()
	if s.phase != PhaseLiveEditing {
		return
	}
	changes := []Change{ChangePhase}
	if s.keyframing {
		if _, ok := s.track.Insert(s.playhead, s.live, s.defaultCurve, keyframe.Overwrite); ok {
			changes = append(changes, ChangeKeyframes)
			s.logger.Debug("keyframe upserted", "clip_id", s.clipID, "timestamp", s.playhead)
		}
	}
	s.phase = PhaseIdle
	s.notify(changes...)
}

// SetPlayhead records a new playhead time. When keyframing is enabled and
// the track has at least two keyframes, the live state is overwritten
// wholesale with the interpolated state; otherwise a manually set static
// crop survives playback untouched. A drag in progress always suppresses
// the overwrite.
func (s *Session) SetPlayhead(t float64) {
	if !s.begin() {
		return
	}
	defer s.end()
	if !geometry.IsFinite(t) || t < 0 {
		t = 0
	}
	s.playhead = t
	changes := []Change{ChangePlayhead}
	if s.phase != PhaseLiveEditing && s.keyframing && s.track.Len() >= 2 {
		s.live = interpolate.Sample(s.track, s.mode, t, s.live)
		if s.phase != PhasePlaybackDriven {
			s.phase = PhasePlaybackDriven
			changes = append(changes, ChangePhase)
		}
		changes = append(changes, ChangeLiveState)
	}
	s.notify(changes...)
}

// SetMode switches the active crop mode. Switching is a discrete event: no
// cross-mode interpolation is attempted, and the live state resets to the
// bound defaults for the new mode's fields. Existing keyframes keep their
// authored fields and are neither migrated nor reinterpreted.
func (s *Session) SetMode(mode crop.Mode) {
	if !s.begin() {
		return
	}
	defer s.end()
	if !mode.Valid() || mode == s.mode {
		return
	}
	s.mode = mode
	s.live = s.defaults.Clone()
	s.phase = PhaseIdle
	s.logger.Debug("crop mode switched", "clip_id", s.clipID, "mode", mode.String())
	s.notify(ChangeMode, ChangeLiveState, ChangePhase)
}

// AddKeyframe snapshots the live state into the track at the given time with
// an explicit placement: a collision rejects rather than overwrites.
func (s *Session) AddKeyframe(ts float64, curve keyframe.Curve) (keyframe.Keyframe, bool) {
	if !s.begin() {
		return keyframe.Keyframe{}, false
	}
	defer s.end()
	if !curve.Valid() {
		curve = s.defaultCurve
	}
	kf, ok := s.track.Insert(ts, s.live, curve, keyframe.Reject)
	if ok {
		s.notify(ChangeKeyframes)
	}
	return kf, ok
}

// RemoveKeyframe deletes a keyframe by identity.
func (s *Session) RemoveKeyframe(id string) bool {
	if !s.begin() {
		return false
	}
	defer s.end()
	ok := s.track.Remove(id)
	if ok {
		s.notify(ChangeKeyframes)
	}
	return ok
}

// MoveKeyframe shifts a keyframe to a new timestamp, respecting collision
// rejection semantics.
func (s *Session) MoveKeyframe(id string, ts float64) bool {
	if !s.begin() {
		return false
	}
	defer s.end()
	ok := s.track.Move(id, ts)
	if ok {
		s.notify(ChangeKeyframes)
	}
	return ok
}

// SetKeyframeCurve replaces a keyframe's interpolation curve.
func (s *Session) SetKeyframeCurve(id string, curve keyframe.Curve) bool {
	if !s.begin() {
		return false
	}
	defer s.end()
	ok := s.track.SetCurve(id, curve)
	if ok {
		s.notify(ChangeKeyframes)
	}
	return ok
}

// ClearKeyframes removes every keyframe and resets the live state to the
// bound defaults.
func (s *Session) ClearKeyframes() {
	if !s.begin() {
		return
	}
	defer s.end()
	s.track.Clear()
	s.live = s.defaults.Clone()
	s.phase = PhaseIdle
	s.notify(ChangeKeyframes, ChangeLiveState, ChangePhase)
}

// begin acquires the reentrancy guard. A false return means a mutation is
// already in flight (a listener re-entered the session) and the caller must
// drop its transition.
func (s *Session) begin() bool {
	if s.updating {
		return false
	}
	s.updating = true
	return true
}

func (s *Session) end() {
	s.updating = false
}

func (s *Session) mutateLive(mutate func(*crop.State)) {
	if !s.begin() {
		return
	}
	defer s.end()
	mutate(&s.live)
	s.notify(ChangeLiveState)
}

func (s *Session) notify(changes ...Change) {
	if len(changes) == 0 {
		return
	}
	for _, l := range s.listeners {
		l(changes)
	}
}
