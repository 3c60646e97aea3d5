package pixel

import (
	"encoding/binary"
	"image"
	"image/color"
	"math/rand"
	"testing"
)

func TestRGBImage(t *testing.T) {
	testImage(t, func(size image.Point) Image {
		return NewRGBImage(size.X, size.Y)
	}, RGBModel)
}

func TestCRGB16Image(t *testing.T) {
	testImage(t, func(size image.Point) Image {
		return NewCRGB16Image(size.X, size.Y)
	}, CRGB16Model)
}

func TestCRGB16ImageLittleEndian(t *testing.T) {
	testImage(t, func(size image.Point) Image {
		i := NewCRGB16Image(size.X, size.Y)
		i.Order = binary.LittleEndian
		return i
	}, CRGB16Model)
}

func TestCBGR16Image(t *testing.T) {
	testImage(t, func(size image.Point) Image {
		return NewCBGR16Image(size.X, size.Y)
	}, CBGR16Model)
}

func TestBGRAImage(t *testing.T) {
	testImage(t, func(size image.Point) Image {
		return NewBGRAImage(size.X, size.Y)
	}, color.RGBAModel)
}

func TestRGBImageLayout(t *testing.T) {
	i := NewRGBImage(2, 2)
	i.Set(1, 1, color.RGBA{R: 1, G: 2, B: 3, A: 0xff})
	if want := []byte{0, 0, 0, 0, 0, 0, 0, 0, 0, 1, 2, 3}; string(i.Pix) != string(want) {
		t.Fatalf("expected pixels %v, got %v", want, i.Pix)
	}
	if i.Stride != 6 {
		t.Fatalf("expected stride 6, got %d", i.Stride)
	}
}

func TestRGBImageClone(t *testing.T) {
	i := NewRGBImage(3, 2)
	i.Fill(RGB{R: 10, G: 20, B: 30})
	c := i.Clone()
	c.SetRGB(0, 0, White)
	if v := i.RGBAt(0, 0); v != (RGB{R: 10, G: 20, B: 30}) {
		t.Fatalf("clone shares pixels with source, source is now %v", v)
	}
	if v := c.RGBAt(2, 1); v != (RGB{R: 10, G: 20, B: 30}) {
		t.Fatalf("expected cloned pixel, got %v", v)
	}
}

func TestFromImage(t *testing.T) {
	r := image.Rect(3, 4, 8, 7)
	sources := map[string]func() settable{
		"rgba": func() settable { return image.NewRGBA(r) },
		"nrgba": func() settable { return image.NewNRGBA(r) },
		"rgb": func() settable {
			i := NewRGBImage(r.Max.X, r.Max.Y)
			return i
		},
	}
	for name, f := range sources {
		t.Run(name, func(it *testing.T) {
			src := f()
			want := make(map[image.Point]RGB)
			for y := r.Min.Y; y < r.Max.Y; y++ {
				for x := r.Min.X; x < r.Max.X; x++ {
					c := testRandomColor().(color.RGBA)
					src.Set(x, y, c)
					want[image.Pt(x, y)] = RGB{R: c.R, G: c.G, B: c.B}
				}
			}

			var in image.Image = src
			if s, ok := src.(*RGBImage); ok {
				in = &RGBImage{Buffer: Buffer{Rect: r, Pix: s.Pix[s.PixOffset(r.Min.X, r.Min.Y):], Stride: s.Stride}}
			}

			dst := FromImage(in)
			if v := dst.Bounds(); v != image.Rect(0, 0, r.Dx(), r.Dy()) {
				it.Fatalf("expected bounds %s, got %s", image.Rect(0, 0, r.Dx(), r.Dy()), v)
			}
			for p, c := range want {
				if v := dst.RGBAt(p.X-r.Min.X, p.Y-r.Min.Y); v != c {
					it.Fatalf("pixel %s is %v, expected %v", p, v, c)
				}
			}
		})
	}
}

type settable interface {
	image.Image
	Set(x, y int, c color.Color)
}

func testImage(t *testing.T, f func(image.Point) Image, model color.Model) {
	t.Helper()
	testCases := []image.Point{
		{},
		image.Pt(1, 1),
		image.Pt(2, 2),
		image.Pt(256, 32),
		image.Pt(256, 64),
	}
	for _, test := range testCases {
		t.Run(test.String(), func(it *testing.T) {
			i := f(test)

			if v := i.Bounds().Size(); !v.Eq(test) {
				it.Errorf("expected image size %s, got %s", test, v)
			}

			if v := i.ColorModel(); v != model {
				it.Errorf("expected color model %T, got %T", model, v)
			}

			it.Run("in-bounds", func(itt *testing.T) {
				for y := 0; y < test.Y; y++ {
					for x := 0; x < test.X; x++ {
						c := testRandomColor()
						i.Set(x, y, c)
						if v := i.ColorModel().Convert(c); i.At(x, y) != v {
							itt.Fatalf("pixel (%d,%d) is %#+v, expected %#+v (%v)", x, y, i.At(x, y), v, c)
							return
						}
					}
				}
			})

			it.Run("in-bounds-matching-model", func(itt *testing.T) {
				for y := 0; y < test.Y; y++ {
					for x := 0; x < test.X; x++ {
						c := model.Convert(testRandomColor())
						i.Set(x, y, c)
						if i.At(x, y) != c {
							itt.Fatalf("pixel (%d,%d) is %#+v, expected %#+v", x, y, i.At(x, y), c)
							return
						}
					}
				}
			})

			it.Run("out-bounds", func(itt *testing.T) {
				for y := -test.Y; y < test.Y*2; y++ {
					for x := -test.X; x < test.X*2; x++ {
						i.Set(x, y, testRandomColor())
						if x < 0 || y < 0 {
							if v := i.At(x, y); v != color.Transparent {
								itt.Fatalf("pixel (%d,%d) is %#+v, expected transparent", x, y, v)
								return
							}
						}
					}
				}
			})

			it.Run("fill", func(itt *testing.T) {
				c := testRandomColor()
				i.Fill(c)
				if test.X > 0 && test.Y > 0 {
					x := rand.Intn(test.X)
					y := rand.Intn(test.Y)
					if v := i.ColorModel().Convert(c); i.At(x, y) != v {
						itt.Fatalf("pixel (%d,%d) is %#+v, expected %#+v (%v)", x, y, i.At(x, y), v, c)
						return
					}
				}
			})

			it.Run("clear", func(itt *testing.T) {
				i.Clear()
				if test.X > 0 && test.Y > 0 {
					x := rand.Intn(test.X)
					y := rand.Intn(test.Y)
					if v := RGBModel.Convert(i.At(x, y)); v != Black {
						itt.Fatalf("pixel (%d,%d) is not black", x, y)
					}
				}
			})
		})
	}
}

func testRandomColor() color.Color {
	return color.RGBA{
		R: uint8(rand.Intn(256)),
		G: uint8(rand.Intn(256)),
		B: uint8(rand.Intn(256)),
		A: 0xFF,
	}
}
