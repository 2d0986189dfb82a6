// Package crop defines the crop mode enumeration and the per-timestamp crop
// state snapshot shared by the keyframe store, the interpolator, and the
// editing session.
//
// A State carries the fields for every mode simultaneously; only the fields
// matching the active Mode are meaningful to renderers and to interpolation.
// Querying inactive fields is harmless: they are present but ignored. This
// mirrors how authoring works in the editor, where switching modes is a
// discrete event that never reinterprets previously authored keyframes.
package crop
