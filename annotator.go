package cvdsim

import (
	"image"
	"image/color"

	"github.com/BeatGlow/cvdsim/pixel"
)

// Annotator burns a text label into a frame.
type Annotator interface {
	// Annotate draws text with its baseline origin at the given point. The returned image
	// may be img itself, modified in place; callers must not reuse img afterwards.
	Annotate(img *pixel.RGBImage, text string, at image.Point, style TextStyle) (*pixel.RGBImage, error)
}

// TextStyle describes an outlined label. The outline is drawn first, the main text on top of
// it at the same position.
type TextStyle struct {
	// FontScale multiplies the base glyph size of the annotator.
	FontScale float64

	// Color of the main text.
	Color color.Color

	// OutlineColor is the color of the outline behind the main text.
	OutlineColor color.Color

	// Thickness is the stroke width of the main text in pixels.
	Thickness int

	// OutlineThickness is the stroke width of the outline in pixels.
	OutlineThickness int
}

// DefaultTextStyle is white text with a thick black outline.
var DefaultTextStyle = TextStyle{
	FontScale:        3,
	Color:            pixel.White,
	OutlineColor:     pixel.Black,
	Thickness:        5,
	OutlineThickness: 10,
}

// Label anchor offsets, in pixels from the left and bottom edges.
const (
	labelLeft   = 50
	labelBottom = 150
)

// TextAnchor returns the label baseline origin for an output of the given size. The label
// sits a fixed distance above the bottom edge; small outputs clamp it into the image.
func TextAnchor(width, height int) image.Point {
	p := image.Pt(labelLeft, height-labelBottom)
	if p.X >= width {
		p.X = width / 10
	}
	if p.Y < 0 {
		p.Y = height - height/10
	}
	if p.Y >= height {
		p.Y = height - 1
	}
	return p
}
