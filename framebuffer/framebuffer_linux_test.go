package framebuffer

import (
	"errors"
	"image"
	"image/color"
	"testing"

	"github.com/BeatGlow/cvdsim/pixel"
)

func field(offset, length uint32) linuxBitField {
	return linuxBitField{Offset: offset, Length: length}
}

func TestParseColorModel(t *testing.T) {
	tests := []struct {
		Name string
		Info linuxVarScreenInfo
		Want color.Model
	}{
		{"rgb565", linuxVarScreenInfo{BitsPerPixel: 16, Red: field(11, 5), Green: field(5, 6), Blue: field(0, 5)}, pixel.CRGB16Model},
		{"bgr565", linuxVarScreenInfo{BitsPerPixel: 16, Red: field(0, 5), Green: field(5, 6), Blue: field(11, 5)}, pixel.CBGR16Model},
		{"rgba", linuxVarScreenInfo{BitsPerPixel: 32, Red: field(0, 8), Green: field(8, 8), Blue: field(16, 8)}, color.RGBAModel},
	}
	for _, test := range tests {
		t.Run(test.Name, func(t *testing.T) {
			model, err := linuxParseColorModel(&test.Info)
			if err != nil {
				t.Fatal(err)
			}
			if model != test.Want {
				t.Errorf("expected model %v, got %v", test.Want, model)
			}
		})
	}

	t.Run("bgra", func(t *testing.T) {
		info := linuxVarScreenInfo{BitsPerPixel: 32, Red: field(16, 8), Green: field(8, 8), Blue: field(0, 8)}
		img, err := linuxImage(&info, 4*4, make([]byte, 4*4*2))
		if err != nil {
			t.Fatal(err)
		}
		if _, ok := img.(*pixel.BGRAImage); !ok {
			t.Errorf("expected *pixel.BGRAImage, got %T", img)
		}
	})

	t.Run("unsupported", func(t *testing.T) {
		info := linuxVarScreenInfo{BitsPerPixel: 24, Red: field(16, 8), Green: field(8, 8), Blue: field(0, 8)}
		if _, err := linuxParseColorModel(&info); !errors.Is(err, ErrColorModel) {
			t.Errorf("expected ErrColorModel, got %v", err)
		}
	})
}

func TestLinuxImage(t *testing.T) {
	info := linuxVarScreenInfo{Xres: 4, Yres: 2, BitsPerPixel: 16, Red: field(11, 5), Green: field(5, 6), Blue: field(0, 5)}

	t.Run("short", func(t *testing.T) {
		if _, err := linuxImage(&info, 8, make([]byte, 10)); err == nil {
			t.Error("expected error for short mapping")
		}
	})

	t.Run("padded", func(t *testing.T) {
		pix := make([]byte, 16*2)
		img, err := linuxImage(&info, 16, pix)
		if err != nil {
			t.Fatal(err)
		}
		if want := image.Rect(0, 0, 4, 2); img.Bounds() != want {
			t.Errorf("expected bounds %s, got %s", want, img.Bounds())
		}
		img.Set(0, 1, color.White)
		if pix[16] != 0xff || pix[17] != 0xff {
			t.Errorf("expected second line to start at stride, got % x", pix[16:18])
		}
	})
}
