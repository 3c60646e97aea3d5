// Package label renders outlined text labels onto frames using TrueType fonts.
package label

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"strings"

	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"

	"github.com/BeatGlow/cvdsim"
	"github.com/BeatGlow/cvdsim/draw"
	"github.com/BeatGlow/cvdsim/pixel"
)

// DefaultSize is the em size in pixels at font scale 1.
const DefaultSize = 30

// Errors
var (
	ErrNoImage    = errors.New("label: no image")
	ErrEmptyLabel = errors.New("label: empty text")
	ErrAnchor     = errors.New("label: anchor outside of image")
)

// Options for a Renderer.
type Options struct {
	// Font is TrueType font data, the Go Bold font is used if empty.
	Font []byte

	// Size is the em size in pixels at font scale 1, DefaultSize if zero.
	Size float64
}

// Renderer draws labels with one font. It is safe for concurrent use.
type Renderer struct {
	font *truetype.Font
	size float64
}

// New parses the font and returns a Renderer.
func New(opts *Options) (*Renderer, error) {
	if opts == nil {
		opts = new(Options)
	}
	data := opts.Font
	if len(data) == 0 {
		data = gobold.TTF
	}
	f, err := truetype.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("label: parse font: %w", err)
	}
	size := opts.Size
	if size <= 0 {
		size = DefaultSize
	}
	return &Renderer{
		font: f,
		size: size,
	}, nil
}

// Annotate draws text with its baseline starting at at: first the outline, then the main
// text on top. The label is drawn into img, which is returned.
func (r *Renderer) Annotate(img *pixel.RGBImage, text string, at image.Point, style cvdsim.TextStyle) (*pixel.RGBImage, error) {
	switch {
	case img == nil:
		return nil, ErrNoImage
	case strings.TrimSpace(text) == "":
		return nil, ErrEmptyLabel
	case !at.In(img.Bounds()):
		return nil, fmt.Errorf("%w: %s not in %s", ErrAnchor, at, img.Bounds())
	}

	scale := style.FontScale
	if scale <= 0 {
		scale = 1
	}
	face := r.face(scale)
	defer face.Close()

	glyphs := coverage(face, text)
	fill(img, dilate(glyphs, style.OutlineThickness/2), at, colorOr(style.OutlineColor, pixel.Black))
	fill(img, dilate(glyphs, style.Thickness/2), at, colorOr(style.Color, pixel.White))
	return img, nil
}

// Measure returns the bounds of text relative to its baseline origin, outline included.
func (r *Renderer) Measure(text string, style cvdsim.TextStyle) image.Rectangle {
	scale := style.FontScale
	if scale <= 0 {
		scale = 1
	}
	face := r.face(scale)
	defer face.Close()
	outline := style.OutlineThickness / 2
	if style.Thickness/2 > outline {
		outline = style.Thickness / 2
	}
	return coverage(face, text).Rect.Inset(-outline)
}

func (r *Renderer) face(scale float64) font.Face {
	return truetype.NewFace(r.font, &truetype.Options{
		Size:    r.size * scale,
		DPI:     72,
		Hinting: font.HintingFull,
	})
}

// coverage renders the glyph coverage of text with the baseline origin at (0, 0).
func coverage(face font.Face, text string) *image.Alpha {
	d := &font.Drawer{
		Src:  image.Opaque,
		Face: face,
	}
	bounds, _ := d.BoundString(text)
	mask := image.NewAlpha(image.Rect(
		bounds.Min.X.Floor(), bounds.Min.Y.Floor(),
		bounds.Max.X.Ceil(), bounds.Max.Y.Ceil(),
	))
	d.Dst = mask
	d.DrawString(text)
	return mask
}

// dilate grows the coverage by a disk of the given radius, approximating a stroke of
// twice that width.
func dilate(mask *image.Alpha, radius int) *image.Alpha {
	if radius <= 0 {
		return mask
	}
	var offsets []image.Point
	for dy := -radius; dy <= radius; dy++ {
		for dx := -radius; dx <= radius; dx++ {
			if dx*dx+dy*dy <= radius*radius {
				offsets = append(offsets, image.Pt(dx, dy))
			}
		}
	}

	out := image.NewAlpha(mask.Rect.Inset(-radius))
	for y := mask.Rect.Min.Y; y < mask.Rect.Max.Y; y++ {
		for x := mask.Rect.Min.X; x < mask.Rect.Max.X; x++ {
			a := mask.Pix[mask.PixOffset(x, y)]
			if a == 0 {
				continue
			}
			for _, o := range offsets {
				i := out.PixOffset(x+o.X, y+o.Y)
				if out.Pix[i] < a {
					out.Pix[i] = a
				}
			}
		}
	}
	return out
}

func fill(dst draw.Image, mask *image.Alpha, at image.Point, c color.Color) {
	r := mask.Rect.Add(at)
	draw.DrawMask(dst, r, image.NewUniform(c), image.Point{}, mask, mask.Rect.Min, draw.Over)
}

func colorOr(c, fallback color.Color) color.Color {
	if c == nil {
		return fallback
	}
	return c
}

var _ cvdsim.Annotator = (*Renderer)(nil)
