package framebuffer

import (
	"encoding/binary"
	"errors"
	"fmt"
	"image"
	"image/color"
	"log"
	"os"
	"syscall"

	"github.com/BeatGlow/cvdsim"
	"github.com/BeatGlow/cvdsim/draw"
	"github.com/BeatGlow/cvdsim/internal/ioctl"
	"github.com/BeatGlow/cvdsim/pixel"
)

const (
	// From <linux/fb.h>
	fbioGetVScreenInfo ioctl.Command = 0x4600
	fbioGetFScreenInfo ioctl.Command = 0x4602
	fbioPanDisplay     ioctl.Command = 0x4606
)

var ErrColorModel = errors.New("framebuffer: unsupported color model")

type linuxFrameBuffer struct {
	draw.Image
	name       string
	f          *os.File
	fd         uintptr
	pix        []byte
	info       linuxFrameBufferInfo
	screenInfo linuxVarScreenInfo
	canPan     bool
}

// Open a Linux FrameBuffer device (fbdev) by name, typically /dev/fb[0..x].
func Open(name string) (cvdsim.Display, error) {
	f, err := os.OpenFile(name, os.O_RDWR, os.ModeDevice)
	if err != nil {
		return nil, err
	}

	fb := &linuxFrameBuffer{
		name:   name,
		f:      f,
		fd:     f.Fd(),
		canPan: true,
	}
	if err = ioctl.Do(fb.fd, fbioGetFScreenInfo, &fb.info); err != nil {
		_ = f.Close()
		return nil, err
	}

	// Request virtual screen info.
	if err = ioctl.Do(fb.fd, fbioGetVScreenInfo, &fb.screenInfo); err != nil {
		_ = f.Close()
		return nil, err
	}

	// Map pixel buffer.
	if fb.pix, err = syscall.Mmap(int(fb.fd), 0, int(fb.info.SmemLen), syscall.PROT_READ|syscall.PROT_WRITE, syscall.MAP_SHARED); err != nil {
		_ = f.Close()
		return nil, err
	}

	if fb.Image, err = linuxImage(&fb.screenInfo, fb.info.LineLength, fb.pix); err != nil {
		_ = fb.Close()
		return nil, err
	}
	log.Printf("framebuffer: %s is %dx%d, %d bpp", name, fb.screenInfo.Xres, fb.screenInfo.Yres, fb.screenInfo.BitsPerPixel)
	return fb, nil
}

func (fb *linuxFrameBuffer) String() string {
	return fmt.Sprintf("framebuffer %s", fb.name)
}

// Close the framebuffer device
func (fb *linuxFrameBuffer) Close() error {
	if err := syscall.Munmap(fb.pix); err != nil {
		return err
	}
	return fb.f.Close()
}

// Refresh pans to the visible area, which flushes the buffer on drivers that need it.
func (fb *linuxFrameBuffer) Refresh() error {
	if !fb.canPan {
		return nil
	}
	if err := ioctl.Do(fb.fd, fbioPanDisplay, &fb.screenInfo); err != nil {
		// Panning is optional; a mmap'd buffer is shown as is.
		fb.canPan = false
	}
	return nil
}

// linuxImage wraps the mapped pixels in an image matching the screen layout.
func linuxImage(info *linuxVarScreenInfo, lineLength uint32, pix []byte) (draw.Image, error) {
	model, err := linuxParseColorModel(info)
	if err != nil {
		return nil, err
	}

	buffer := pixel.Buffer{
		Rect:   image.Rect(0, 0, int(info.Xres), int(info.Yres)),
		Pix:    pix[int(info.Yoffset)*int(lineLength):],
		Stride: int(lineLength),
	}
	if need := (buffer.Rect.Dy()-1)*buffer.Stride + buffer.Rect.Dx()*int(info.BitsPerPixel/8); buffer.Rect.Dy() > 0 && len(buffer.Pix) < need {
		return nil, fmt.Errorf("framebuffer: mapped %d bytes, need %d", len(buffer.Pix), need)
	}

	switch model {
	case pixel.CRGB16Model:
		return &pixel.CRGB16Image{Buffer: buffer, Order: binary.NativeEndian}, nil
	case pixel.CBGR16Model:
		return &pixel.CBGR16Image{Buffer: buffer, Order: binary.NativeEndian}, nil
	case bgraModel:
		return &pixel.BGRAImage{Buffer: buffer}, nil
	default:
		return &image.RGBA{Pix: buffer.Pix, Stride: buffer.Stride, Rect: buffer.Rect}, nil
	}
}

type linuxFrameBufferInfo struct {
	ID         [16]byte  // Identification string eg "TT Builtin"
	SmemStart  uintptr   // Start of frame buffer mem
	SmemLen    uint32    // Length of frame buffer mem
	Type       uint32    // FB_TYPE_
	TypeAux    uint32    // Interleave for interleaved Planes
	Visual     uint32    // FB_VISUAL_
	Xpanstep   uint16    // Zero if no hardware panning
	Ypanstep   uint16    // Zero if no hardware panning
	Ywrapstep  uint16    // Zero if no hardware ywrap
	LineLength uint32    // Length of a line in bytes
	MmioStart  uintptr   // Start of Memory Mapped I/O (physical address)
	MmioLen    uint32    // Length of Memory Mapped I/O
	Accel      uint32    // Type of acceleration available
	Reserved   [3]uint16 // Reserved for future compatibility
}

// linuxBitField for the color
type linuxBitField struct {
	Offset   uint32 // Beginning of bitfield
	Length   uint32 // Length of bitfield
	MsbRight uint32 // != 0 : Most significant bit is right
}

// linuxVarScreenInfo contains device independent changeable information about a frame buffer device and a specific video mode.
type linuxVarScreenInfo struct {
	Xres                    uint32
	Yres                    uint32
	XresVirtual             uint32
	YresVirtual             uint32
	Xoffset                 uint32
	Yoffset                 uint32
	BitsPerPixel            uint32
	Grayscale               uint32
	Red, Green, Blue, Alpha linuxBitField
	Nonstd                  uint32
	Activate                uint32
	Height                  uint32
	Width                   uint32
	AccelFlags              uint32
	Pixclock                uint32
	LeftMargin              uint32
	RightMargin             uint32
	UpperMargin             uint32
	LowerMargin             uint32
	HsyncLen                uint32
	VsyncLen                uint32
	Sync                    uint32
	Vmode                   uint32
	Rotate                  uint32
	Colorspace              uint32
	Reserved                [4]uint32
}

// bgraModel marks the 32 bpp layout with blue in the lowest byte.
var bgraModel = color.ModelFunc(func(c color.Color) color.Color { return color.RGBAModel.Convert(c) })

func linuxParseColorModel(info *linuxVarScreenInfo) (color.Model, error) {
	if info == nil {
		return nil, errors.New("framebuffer: invalid VarScreenInfo")
	}

	switch info.BitsPerPixel {
	case 16:
		switch {
		case info.Blue.Offset == 0 &&
			info.Blue.Length == 5 &&
			info.Green.Offset == 5 &&
			info.Green.Length == 6 &&
			info.Red.Offset == 11 &&
			info.Red.Length == 5:
			return pixel.CRGB16Model, nil

		case info.Red.Offset == 0 &&
			info.Red.Length == 5 &&
			info.Green.Offset == 5 &&
			info.Green.Length == 6 &&
			info.Blue.Offset == 11 &&
			info.Blue.Length == 5:
			return pixel.CBGR16Model, nil
		}

	case 32:
		switch {
		case info.Blue.Offset == 0 &&
			info.Green.Offset == 8 &&
			info.Red.Offset == 16 &&
			info.Red.Length == 8:
			return bgraModel, nil

		case info.Red.Offset == 0 &&
			info.Green.Offset == 8 &&
			info.Blue.Offset == 16 &&
			info.Red.Length == 8:
			return color.RGBAModel, nil
		}
	}

	return nil, fmt.Errorf("%w: %d bpp, red %d+%d, green %d+%d, blue %d+%d", ErrColorModel,
		info.BitsPerPixel,
		info.Red.Offset, info.Red.Length,
		info.Green.Offset, info.Green.Length,
		info.Blue.Offset, info.Blue.Length)
}
