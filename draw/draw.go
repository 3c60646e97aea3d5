package draw

import (
	"image"
	"image/draw"

	xdraw "golang.org/x/image/draw"

	"github.com/BeatGlow/cvdsim/pixel"
)

// Drawer is an alias for [image/draw.Drawer].
type Drawer = draw.Drawer

// Image is an alias for [image/draw.Image].
type Image = draw.Image

// Op is an alias for image/draw.Op
type Op = draw.Op

const (
	// Over specifies ``(src in mask) over dst''.
	Over Op = iota

	// Src specifies ``src in mask''.
	Src
)

// Draw calls [DrawMask] with a nil mask.
func Draw(dst Image, r image.Rectangle, src image.Image, sp image.Point, op Op) {
	DrawMask(dst, r, src, sp, nil, image.Point{}, op)
}

// DrawMask aligns r.Min in dst with sp in src and mp in mask and then replaces the rectangle r
// in dst with the result of a Porter-Duff composition. A nil mask is treated as opaque.
func DrawMask(dst Image, r image.Rectangle, src image.Image, sp image.Point, mask image.Image, mp image.Point, op Op) {
	draw.DrawMask(dst, r, src, sp, mask, mp, op)
}

// Resize scales src to a new w x h RGB image using bilinear interpolation.
//
// Scaling goes through an intermediate [image.RGBA], which hits the fast paths of
// [golang.org/x/image/draw] for the common decoded image types.
func Resize(src image.Image, w, h int) *pixel.RGBImage {
	if w <= 0 || h <= 0 {
		return pixel.NewRGBImage(w, h)
	}
	if r := src.Bounds(); r.Dx() == w && r.Dy() == h {
		return pixel.FromImage(src)
	}
	tmp := image.NewRGBA(image.Rect(0, 0, w, h))
	xdraw.BiLinear.Scale(tmp, tmp.Rect, src, src.Bounds(), xdraw.Src, nil)
	return pixel.FromImage(tmp)
}
