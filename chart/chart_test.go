package chart

import (
	"bytes"
	"image"
	"testing"

	"github.com/BeatGlow/cvdsim/pixel"
)

func TestColorChecker(t *testing.T) {
	a, b := ColorChecker(), ColorChecker()
	if !bytes.Equal(a.Pix, b.Pix) {
		t.Fatal("expected identical charts")
	}
	if v := a.Bounds(); v != image.Rect(0, 0, 600, 400) {
		t.Fatalf("expected 600x400 chart, got %s", v.Size())
	}
	if len(a.Pix) != 600*400*3 {
		t.Fatalf("expected %d bytes, got %d", 600*400*3, len(a.Pix))
	}

	tests := []struct {
		row, col int
		want     pixel.RGB
	}{
		{0, 0, pixel.RGB{R: 115, G: 82, B: 68}},
		{0, 5, pixel.RGB{R: 103, G: 189, B: 170}},
		{2, 3, pixel.RGB{R: 231, G: 199, B: 31}},
		{3, 0, pixel.RGB{R: 243, G: 243, B: 242}},
		{3, 5, pixel.RGB{R: 52, G: 52, B: 52}},
	}
	for _, test := range tests {
		if v := Patch(test.row, test.col); v != test.want {
			t.Errorf("patch [%d][%d] is %v, expected %v", test.row, test.col, v, test.want)
		}
		// Every pixel of the patch, corners included.
		x0, y0 := test.col*PatchSize, test.row*PatchSize
		for _, p := range []image.Point{{x0, y0}, {x0 + PatchSize - 1, y0}, {x0, y0 + PatchSize - 1}, {x0 + PatchSize - 1, y0 + PatchSize - 1}, {x0 + 50, y0 + 50}} {
			if v := a.RGBAt(p.X, p.Y); v != test.want {
				t.Errorf("pixel %s is %v, expected %v", p, v, test.want)
			}
		}
	}
}

func TestGrayRamp(t *testing.T) {
	for i := 18; i < len(Patches)-1; i++ {
		if Patches[i].G <= Patches[i+1].G {
			t.Errorf("gray %d (%v) is not lighter than gray %d (%v)", i, Patches[i], i+1, Patches[i+1])
		}
	}
}
