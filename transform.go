package cvdsim

import (
	"image"

	"github.com/BeatGlow/cvdsim/pixel"
)

// Apply returns a new image with the color transform of v applied to every pixel of img.
//
// The output has the same bounds as the input. For [Normal] the output is an exact copy.
func Apply(img *pixel.RGBImage, v Variant) (*pixel.RGBImage, error) {
	m, err := v.Matrix()
	if err != nil {
		return nil, err
	}
	if err = checkDimensions(img); err != nil {
		return nil, err
	}

	var (
		w   = img.Rect.Dx()
		h   = img.Rect.Dy()
		out = &pixel.RGBImage{
			Buffer: pixel.Buffer{
				Rect:   img.Rect,
				Pix:    make([]byte, w*h*3),
				Stride: w * 3,
			},
		}
	)
	for y := 0; y < h; y++ {
		var (
			src = img.Pix[y*img.Stride : y*img.Stride+w*3]
			dst = out.Pix[y*out.Stride : (y+1)*out.Stride]
		)
		if v == Normal {
			copy(dst, src)
			continue
		}
		for i := 0; i < len(src); i += 3 {
			dst[i+0], dst[i+1], dst[i+2] = m.Transform(src[i+0], src[i+1], src[i+2])
		}
	}
	return out, nil
}

// ApplyImage converts img to RGB and applies the color transform of v.
func ApplyImage(img image.Image, v Variant) (*pixel.RGBImage, error) {
	if img == nil {
		return nil, ErrNoSource
	}
	return Apply(pixel.FromImage(img), v)
}

func checkDimensions(img *pixel.RGBImage) error {
	if img == nil {
		return &DimensionError{}
	}
	var (
		w = img.Rect.Dx()
		h = img.Rect.Dy()
	)
	switch {
	case w < 0 || h < 0,
		img.Stride < w*3,
		h > 0 && len(img.Pix) < (h-1)*img.Stride+w*3:
		return &DimensionError{
			Rect:   img.Rect,
			Stride: img.Stride,
			Len:    len(img.Pix),
		}
	}
	return nil
}
