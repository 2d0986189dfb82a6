// Package keyframe stores timestamped crop-state snapshots for a single clip.
//
// A Track keeps its keyframes sorted ascending by timestamp at all times.
// Collisions between keyframes are governed by a configurable tolerance
// (0.05s by default): Insert lets the caller choose between overwriting the
// colliding keyframe and rejecting the insert, while Move always rejects a
// collision with any keyframe other than the one being moved. None of the
// track operations panic or return errors for in-domain input; every edge
// has a defined no-op or overwrite outcome.
//
// Treat this package as the single source of truth for ordering and
// collision semantics; the interpolator and the persistence layer both rely
// on Query's bracketing contract.
package keyframe
