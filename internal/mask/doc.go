// Package mask rasterizes crop states into binary masks and encodes them in
// the compact run-length format the segmentation service exchanges.
//
// The wire format is a zlib-compressed payload: a 9-byte header holding the
// starting pixel value, the mask height and width as 16-bit little-endian
// integers, and the run count as a 32-bit little-endian integer, followed by
// the run lengths as 16-bit little-endian values. Runs alternate between the
// starting value and its complement; a run longer than 65535 pixels is split
// with a zero-length run of the opposite value in between.
package mask
