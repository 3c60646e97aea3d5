// Package cvdsim simulates how an image appears to viewers with color vision deficiency.
//
// Each supported [Variant] maps to a fixed 3x3 linear [Matrix] over the R, G and B channels.
// [Apply] runs one matrix over an RGB buffer, [Build] composes the labelled frames of every
// variant into a timed [Sequence], and [Play] shows a sequence on a [Display].
//
// The order of a sequence is fixed:
//
//	Normal Vision, Protanopia, Deuteranopia, Tritanopia
//
// Frames repeated within a run share one read-only buffer.
package cvdsim
