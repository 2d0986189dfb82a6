// Package export samples crop states for every frame of an export run. A
// sampler owns a deep copy of the keyframe track so live edits cannot race
// the render, and frame sampling is pure and parallelizable.
package export
