// Package session bridges live editing, keyframe authoring, and
// playback-driven interpolation for the clip currently being edited.
//
// The session owns the single mutable "live" crop state the UI renders. Two
// external drivers feed it: user handle drags mutate the live state directly
// and snapshot it into a keyframe on drag end, while playhead movement
// overwrites the live state with interpolated output when keyframing is on
// and at least two keyframes exist. A drag in progress always wins over a
// concurrent playback tick so an in-flight edit is never clobbered.
//
// The session is deliberately not thread-safe: it is confined to one owning
// goroutine (the editing loop), and the only guard it carries is a
// reentrancy flag so a listener callback can never re-enter a mutation.
// Subscribers receive explicit change tags instead of observing properties,
// which keeps the state machine testable without any UI attached.
package session
