// Package chart generates the color checker test image.
package chart

import (
	"image"

	"github.com/BeatGlow/cvdsim/draw"
	"github.com/BeatGlow/cvdsim/pixel"
)

// Layout of the chart.
const (
	Rows      = 4
	Cols      = 6
	PatchSize = 100
)

// Patches are the chart colors in row-major order: 18 natural colors followed by a
// six step gray ramp from white to black.
var Patches = [Rows * Cols]pixel.RGB{
	{R: 115, G: 82, B: 68},   // dark skin
	{R: 194, G: 150, B: 130}, // light skin
	{R: 98, G: 122, B: 157},  // blue sky
	{R: 87, G: 108, B: 67},   // foliage
	{R: 133, G: 128, B: 177}, // blue flower
	{R: 103, G: 189, B: 170}, // bluish green
	{R: 214, G: 126, B: 44},  // orange
	{R: 80, G: 91, B: 166},   // purplish blue
	{R: 193, G: 90, B: 99},   // moderate red
	{R: 94, G: 60, B: 108},   // purple
	{R: 157, G: 188, B: 64},  // yellow green
	{R: 224, G: 163, B: 46},  // orange yellow
	{R: 56, G: 61, B: 150},   // blue
	{R: 70, G: 148, B: 73},   // green
	{R: 175, G: 54, B: 60},   // red
	{R: 231, G: 199, B: 31},  // yellow
	{R: 187, G: 86, B: 149},  // magenta
	{R: 8, G: 133, B: 161},   // cyan
	{R: 243, G: 243, B: 242}, // white
	{R: 200, G: 200, B: 200}, // neutral 8
	{R: 160, G: 160, B: 160}, // neutral 6.5
	{R: 122, G: 122, B: 121}, // neutral 5
	{R: 85, G: 85, B: 85},    // neutral 3.5
	{R: 52, G: 52, B: 52},    // black
}

// Patch returns the color at row, col.
func Patch(row, col int) pixel.RGB {
	return Patches[row*Cols+col]
}

// ColorChecker returns a new 600x400 image of the chart.
func ColorChecker() *pixel.RGBImage {
	img := pixel.NewRGBImage(Cols*PatchSize, Rows*PatchSize)
	for row := 0; row < Rows; row++ {
		for col := 0; col < Cols; col++ {
			p := image.Pt(col*PatchSize, row*PatchSize)
			draw.Box(img, image.Rectangle{Min: p, Max: p.Add(image.Pt(PatchSize, PatchSize))}, Patch(row, col))
		}
	}
	return img
}
