// Package pixel implements the pixel buffers used by the simulator and its display sinks.
//
// This module provides additional color models, compatible with Go's native [color.Color] and
// [image.Image] / [draw.Image] interfaces. [RGBImage] is the working buffer of the color
// transform pipeline; the packed 16- and 32-bit images match common framebuffer layouts.
package pixel
