package label

import (
	"bytes"
	"errors"
	"image"
	"sync"
	"testing"

	"github.com/BeatGlow/cvdsim"
	"github.com/BeatGlow/cvdsim/pixel"
)

var gray = pixel.RGB{R: 128, G: 128, B: 128}

func testCanvas() *pixel.RGBImage {
	img := pixel.NewRGBImage(400, 200)
	img.Fill(gray)
	return img
}

func TestAnnotate(t *testing.T) {
	r, err := New(nil)
	if err != nil {
		t.Fatal(err)
	}

	style := cvdsim.DefaultTextStyle
	style.FontScale = 1
	img := testCanvas()
	out, err := r.Annotate(img, "Protanopia", image.Pt(10, 150), style)
	if err != nil {
		t.Fatal(err)
	}
	if out != img {
		t.Fatal("expected the label to be drawn in place")
	}

	var white, black int
	for y := 0; y < 200; y++ {
		for x := 0; x < 400; x++ {
			switch out.RGBAt(x, y) {
			case pixel.White:
				white++
			case pixel.Black:
				black++
			}
		}
	}
	if white == 0 {
		t.Error("expected main text pixels")
	}
	if black == 0 {
		t.Error("expected outline pixels")
	}

	box := r.Measure("Protanopia", style).Add(image.Pt(10, 150))
	for _, p := range []image.Point{{0, 0}, {399, 199}, {box.Max.X + 1, 150}, {10, box.Min.Y - 1}} {
		if v := out.RGBAt(p.X, p.Y); v != gray {
			t.Errorf("pixel %s outside the label changed to %v", p, v)
		}
	}
}

func TestAnnotateOutlineBehindText(t *testing.T) {
	r, err := New(nil)
	if err != nil {
		t.Fatal(err)
	}

	// Without an outline the text covers fewer pixels than with one.
	count := func(style cvdsim.TextStyle) (changed int) {
		img, err := r.Annotate(testCanvas(), "Tritanopia", image.Pt(20, 120), style)
		if err != nil {
			t.Fatal(err)
		}
		for y := 0; y < 200; y++ {
			for x := 0; x < 400; x++ {
				if img.RGBAt(x, y) != gray {
					changed++
				}
			}
		}
		return
	}
	plain := cvdsim.TextStyle{FontScale: 1, Color: pixel.White, Thickness: 1}
	outlined := plain
	outlined.OutlineColor = pixel.Black
	outlined.OutlineThickness = 10
	if a, b := count(plain), count(outlined); a >= b {
		t.Errorf("expected outline to cover more pixels: %d without, %d with", a, b)
	}
}

func TestAnnotateErrors(t *testing.T) {
	r, err := New(nil)
	if err != nil {
		t.Fatal(err)
	}
	style := cvdsim.DefaultTextStyle
	if _, err = r.Annotate(nil, "x", image.Point{}, style); !errors.Is(err, ErrNoImage) {
		t.Errorf("expected ErrNoImage, got %v", err)
	}
	if _, err = r.Annotate(testCanvas(), " ", image.Pt(1, 1), style); !errors.Is(err, ErrEmptyLabel) {
		t.Errorf("expected ErrEmptyLabel, got %v", err)
	}
	if _, err = r.Annotate(testCanvas(), "x", image.Pt(400, 10), style); !errors.Is(err, ErrAnchor) {
		t.Errorf("expected ErrAnchor, got %v", err)
	}
	if _, err = New(&Options{Font: []byte("not a font")}); err == nil {
		t.Error("expected font parse error")
	}
}

func TestAnnotateConcurrent(t *testing.T) {
	r, err := New(&Options{Size: 20})
	if err != nil {
		t.Fatal(err)
	}
	want, err := r.Annotate(testCanvas(), "Deuteranopia", image.Pt(5, 100), cvdsim.DefaultTextStyle)
	if err != nil {
		t.Fatal(err)
	}

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			got, err := r.Annotate(testCanvas(), "Deuteranopia", image.Pt(5, 100), cvdsim.DefaultTextStyle)
			if err != nil {
				t.Error(err)
				return
			}
			if !bytes.Equal(got.Pix, want.Pix) {
				t.Error("concurrent label differs")
			}
		}()
	}
	wg.Wait()
}

func TestDilate(t *testing.T) {
	mask := image.NewAlpha(image.Rect(0, 0, 1, 1))
	mask.Pix[0] = 0xff
	out := dilate(mask, 2)
	if v := out.Bounds(); v != image.Rect(-2, -2, 3, 3) {
		t.Fatalf("expected grown bounds, got %s", v)
	}
	tests := []struct {
		p    image.Point
		want uint8
	}{
		{image.Pt(0, 0), 0xff},
		{image.Pt(2, 0), 0xff},
		{image.Pt(0, -2), 0xff},
		{image.Pt(1, 1), 0xff},
		{image.Pt(2, 2), 0},
		{image.Pt(-2, 1), 0},
	}
	for _, test := range tests {
		if v := out.AlphaAt(test.p.X, test.p.Y).A; v != test.want {
			t.Errorf("pixel %s is %#02x, expected %#02x", test.p, v, test.want)
		}
	}
	if dilate(mask, 0) != mask {
		t.Error("expected radius 0 to return the mask")
	}
}
