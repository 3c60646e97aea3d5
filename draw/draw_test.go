package draw

import (
	"image"
	"image/color"
	"testing"

	"github.com/BeatGlow/cvdsim/pixel"
)

func TestBox(t *testing.T) {
	i := pixel.NewRGBImage(8, 6)
	c := pixel.RGB{R: 1, G: 2, B: 3}
	Box(i, image.Rect(2, 1, 5, 4), c)
	for y := 0; y < 6; y++ {
		for x := 0; x < 8; x++ {
			want := pixel.Black
			if image.Pt(x, y).In(image.Rect(2, 1, 5, 4)) {
				want = c
			}
			if v := i.RGBAt(x, y); v != want {
				t.Fatalf("pixel (%d,%d) is %v, expected %v", x, y, v, want)
			}
		}
	}
}

func TestResize(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 4, 4))
	fill := func(r image.Rectangle, c color.RGBA) {
		for y := r.Min.Y; y < r.Max.Y; y++ {
			for x := r.Min.X; x < r.Max.X; x++ {
				src.SetRGBA(x, y, c)
			}
		}
	}
	fill(src.Rect, color.RGBA{R: 0x40, G: 0x80, B: 0xc0, A: 0xff})

	testCases := []image.Point{
		image.Pt(4, 4),
		image.Pt(8, 2),
		image.Pt(19, 11),
		image.Pt(1, 1),
	}
	for _, test := range testCases {
		t.Run(test.String(), func(it *testing.T) {
			dst := Resize(src, test.X, test.Y)
			if v := dst.Bounds().Size(); !v.Eq(test) {
				it.Fatalf("expected size %s, got %s", test, v)
			}
			// A uniform source stays uniform at any scale.
			want := pixel.RGB{R: 0x40, G: 0x80, B: 0xc0}
			for y := 0; y < test.Y; y++ {
				for x := 0; x < test.X; x++ {
					if v := dst.RGBAt(x, y); v != want {
						it.Fatalf("pixel (%d,%d) is %v, expected %v", x, y, v, want)
					}
				}
			}
		})
	}

	if v := Resize(src, 0, 10).Bounds(); !v.Empty() {
		t.Errorf("expected empty image, got %s", v)
	}
}
