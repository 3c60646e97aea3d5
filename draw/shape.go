package draw

import (
	"image"
	"image/color"
)

// HorizontalLine draws a line between (x,y) and (x+w,y).
func HorizontalLine(dst Image, x, y, w int, c color.Color) {
	for ; w > 0; w-- {
		dst.Set(x, y, c)
		x++
	}
}

// Box draws a filled rectangle.
func Box(dst Image, rect image.Rectangle, c color.Color) {
	var (
		x = rect.Min.X
		w = rect.Dx()
	)
	for y := rect.Min.Y; y < rect.Max.Y; y++ {
		HorizontalLine(dst, x, y, w, c)
	}
}
