package pixel

import (
	"encoding/binary"
	"image"
	"image/color"
	"image/draw"
)

type Image interface {
	draw.Image

	// Clear the image.
	Clear()

	// Fill the image with a single color.
	Fill(color.Color)
}

// Buffer holds the pixel values and is a container that is used by most image formats in this package.
type Buffer struct {
	// Rect is the image bounding box.
	Rect image.Rectangle

	// Pix are the image pixels.
	Pix []byte

	// Stride is the Pix stride (in bytes) between vertically adjacent pixels.
	Stride int
}

func (p *Buffer) Bounds() image.Rectangle {
	return p.Rect
}

func (p *Buffer) Clear() {
	for i := range p.Pix {
		p.Pix[i] = 0x00
	}
}

func makeBuffer(w, h, stride, size int) Buffer {
	return Buffer{
		Rect:   image.Rect(0, 0, w, h),
		Pix:    make([]byte, size),
		Stride: stride,
	}
}

// RGBImage is a 24-bits per pixel image with 8-bit R, G and B channels, in that order.
type RGBImage struct {
	Buffer
}

func NewRGBImage(w, h int) *RGBImage {
	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}
	return &RGBImage{
		Buffer: makeBuffer(w, h, w*3, w*3*h),
	}
}

// FromImage converts any image to a new RGBImage with its origin at (0, 0).
func FromImage(src image.Image) *RGBImage {
	r := src.Bounds()
	dst := NewRGBImage(r.Dx(), r.Dy())
	switch s := src.(type) {
	case *RGBImage:
		for y := 0; y < r.Dy(); y++ {
			i := s.PixOffset(r.Min.X, r.Min.Y+y)
			copy(dst.Pix[y*dst.Stride:(y+1)*dst.Stride], s.Pix[i:i+dst.Stride])
		}
	case *image.RGBA:
		for y := 0; y < r.Dy(); y++ {
			in := s.Pix[s.PixOffset(r.Min.X, r.Min.Y+y):]
			out := dst.Pix[y*dst.Stride : (y+1)*dst.Stride]
			for x, j := 0, 0; j < len(out); x, j = x+4, j+3 {
				out[j+0] = in[x+0]
				out[j+1] = in[x+1]
				out[j+2] = in[x+2]
			}
		}
	default:
		draw.Draw(dst, dst.Rect, src, r.Min, draw.Src)
	}
	return dst
}

func (p *RGBImage) ColorModel() color.Model {
	return RGBModel
}

func (p *RGBImage) PixOffset(x, y int) int {
	return (y-p.Rect.Min.Y)*p.Stride + (x-p.Rect.Min.X)*3
}

func (p *RGBImage) At(x, y int) color.Color {
	if !(image.Point{X: x, Y: y}).In(p.Rect) {
		return color.Transparent
	}
	return p.RGBAt(x, y)
}

// RGBAt returns the color at (x, y), or black when out of bounds.
func (p *RGBImage) RGBAt(x, y int) RGB {
	if !(image.Point{X: x, Y: y}).In(p.Rect) {
		return RGB{}
	}
	i := p.PixOffset(x, y)
	s := p.Pix[i : i+3 : i+3]
	return RGB{R: s[0], G: s[1], B: s[2]}
}

func (p *RGBImage) Set(x, y int, c color.Color) {
	if !(image.Point{X: x, Y: y}).In(p.Rect) {
		return
	}
	p.SetRGB(x, y, rgbModel(c).(RGB))
}

func (p *RGBImage) SetRGB(x, y int, c RGB) {
	if !(image.Point{X: x, Y: y}).In(p.Rect) {
		return
	}
	i := p.PixOffset(x, y)
	s := p.Pix[i : i+3 : i+3]
	s[0], s[1], s[2] = c.R, c.G, c.B
}

func (p *RGBImage) Fill(c color.Color) {
	v := rgbModel(c).(RGB)
	for i, l := 0, len(p.Pix)-2; i < l; i += 3 {
		p.Pix[i+0] = v.R
		p.Pix[i+1] = v.G
		p.Pix[i+2] = v.B
	}
}

// Clone returns a deep copy of the image.
func (p *RGBImage) Clone() *RGBImage {
	c := &RGBImage{
		Buffer: Buffer{
			Rect:   p.Rect,
			Pix:    make([]byte, len(p.Pix)),
			Stride: p.Stride,
		},
	}
	copy(c.Pix, p.Pix)
	return c
}

// CRGB16Image is a 16-bits per pixel 5-6-5-bit RGB image.
type CRGB16Image struct {
	Buffer
	Order binary.ByteOrder
}

func NewCRGB16Image(w, h int) *CRGB16Image {
	return &CRGB16Image{
		Buffer: makeBuffer(w, h, w*2, w*2*h),
		Order:  binary.BigEndian,
	}
}

func (p *CRGB16Image) ColorModel() color.Model {
	return CRGB16Model
}

func (p *CRGB16Image) At(x, y int) color.Color {
	if !(image.Point{X: x, Y: y}).In(p.Rect) {
		return color.Transparent
	}

	v := p.Order.Uint16(p.Pix[x*2+y*p.Stride:])
	return CRGB16{v}
}

func (p *CRGB16Image) Set(x, y int, c color.Color) {
	if !(image.Point{X: x, Y: y}).In(p.Rect) {
		return
	}

	v := crgb16Model(c).(CRGB16).V
	p.Order.PutUint16(p.Pix[x*2+y*p.Stride:], v)
}

func (p *CRGB16Image) Fill(c color.Color) {
	fill16(p.Pix, p.Order, crgb16Model(c).(CRGB16).V)
}

// CBGR16Image is a 16-bits per pixel 5-6-5-bit BGR image.
type CBGR16Image struct {
	Buffer
	Order binary.ByteOrder
}

func NewCBGR16Image(w, h int) *CBGR16Image {
	return &CBGR16Image{
		Buffer: makeBuffer(w, h, w*2, w*2*h),
		Order:  binary.BigEndian,
	}
}

func (p *CBGR16Image) ColorModel() color.Model {
	return CBGR16Model
}

func (p *CBGR16Image) At(x, y int) color.Color {
	if !(image.Point{X: x, Y: y}).In(p.Rect) {
		return color.Transparent
	}

	v := p.Order.Uint16(p.Pix[x*2+y*p.Stride:])
	return CBGR16{v}
}

func (p *CBGR16Image) Set(x, y int, c color.Color) {
	if !(image.Point{X: x, Y: y}).In(p.Rect) {
		return
	}

	v := cbgr16Model(c).(CBGR16).V
	p.Order.PutUint16(p.Pix[x*2+y*p.Stride:], v)
}

func (p *CBGR16Image) Fill(c color.Color) {
	fill16(p.Pix, p.Order, cbgr16Model(c).(CBGR16).V)
}

func fill16(pix []byte, order binary.ByteOrder, value uint16) {
	bytes := make([]byte, 2)
	order.PutUint16(bytes, value)
	for i, l := 0, len(pix); i < l; i += 2 {
		copy(pix[i:], bytes)
	}
}

// BGRAImage is a 32-bits per pixel image with bytes in B, G, R, A order.
//
// This is the usual layout of 32 bpp Linux framebuffers.
type BGRAImage struct {
	Buffer
}

func NewBGRAImage(w, h int) *BGRAImage {
	return &BGRAImage{
		Buffer: makeBuffer(w, h, w*4, w*4*h),
	}
}

func (p *BGRAImage) ColorModel() color.Model {
	return color.RGBAModel
}

func (p *BGRAImage) At(x, y int) color.Color {
	if !(image.Point{X: x, Y: y}).In(p.Rect) {
		return color.Transparent
	}

	i := x*4 + y*p.Stride
	return color.RGBA{R: p.Pix[i+2], G: p.Pix[i+1], B: p.Pix[i+0], A: p.Pix[i+3]}
}

func (p *BGRAImage) Set(x, y int, c color.Color) {
	if !(image.Point{X: x, Y: y}).In(p.Rect) {
		return
	}

	v := color.RGBAModel.Convert(c).(color.RGBA)
	i := x*4 + y*p.Stride
	p.Pix[i+0], p.Pix[i+1], p.Pix[i+2], p.Pix[i+3] = v.B, v.G, v.R, v.A
}

func (p *BGRAImage) Fill(c color.Color) {
	v := color.RGBAModel.Convert(c).(color.RGBA)
	pix := []byte{v.B, v.G, v.R, v.A}
	for i, l := 0, len(p.Pix); i < l; i += 4 {
		copy(p.Pix[i:], pix)
	}
}

// Interface checks.
var (
	_ Image = (*RGBImage)(nil)
	_ Image = (*CRGB16Image)(nil)
	_ Image = (*CBGR16Image)(nil)
	_ Image = (*BGRAImage)(nil)
)
