// Package geometry provides the normalized-coordinate value types the crop
// engine is built on.
//
// Points, sizes, and rectangles are expressed in unit coordinates relative to
// the source video frame: (0,0) is the top-left corner and (1,1) the bottom
// right. Every operation is pure; Normalize falls back to the identity when
// the divisor has a non-positive dimension so callers never divide by zero.
//
// Lerp is defined component-wise for every type so interpolation of composite
// crop states stays a field-by-field concern for the caller.
package geometry
