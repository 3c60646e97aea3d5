package panel

import (
	"encoding/binary"
	"fmt"
	"time"

	"periph.io/x/conn/v3/gpio"

	"github.com/BeatGlow/cvdsim"
	"github.com/BeatGlow/cvdsim/pixel"
)

const (
	st7789DefaultWidth  = 240
	st7789DefaultHeight = 240
	st7789BatchSize     = 4096
)

// Registers (from st7789.pdf).
const (
	st7789SLPOUT    = 0x11 // Sleep Out
	st7789INVON     = 0x21 // Display Inversion On
	st7789DISPOFF   = 0x28 // Display Off
	st7789DISPON    = 0x29 // Display On
	st7789CASET     = 0x2A // Column Address Set
	st7789RASET     = 0x2B // Row Address Set
	st7789RAMWR     = 0x2C // Memory Write
	st7789MADCTL    = 0x36 // Memory Data Access Control
	st7789COLMOD    = 0x3A // Interface Pixel Format
	st7789PORCTRL   = 0xB2 // Porch Setting
	st7789GCTRL     = 0xB7 // Gate Control
	st7789VCOMS     = 0xBB // VCOM Setting
	st7789LCMCTRL   = 0xC0 // LCM Control
	st7789VDVVRHEN  = 0xC2 // VDV and VRH Command Enable
	st7789VRHS      = 0xC3 // VRH Set
	st7789VDVSET    = 0xC4 // VDV Set
	st7789VCMOFSET  = 0xC5 // VCOM Offset Set
	st7789FRCTR2    = 0xC6 // Frame Rate Control in Normal Mode
	st7789PWCTRL1   = 0xD0 // Power Control 1
	st7789PVGAMCTRL = 0xE0 // Positive Voltage Gamma Control
	st7789NVGAMCTRL = 0xE1 // Negative Voltage Gamma Control
)

// Memory Data Access Control (MADCTL) bit fields.
const (
	_                           byte = 1 << iota // D0: reserved
	_                                            // D1: reserved
	st7789DisplayDataLatchOrder                  // D2: MH
	st7789RGBOrder                               // D3: RGB
	st7789LineAddressOrder                       // D4: ML
	st7789PageColumnOrder                        // D5: MV
	st7789ColumnAddressOrder                     // D6: MX
	st7789PageAddressOrder                       // D7: MY
)

// ST7789 is a 16-bit color TFT panel. Its frame buffer is big endian RGB 5-6-5, the
// controller's native pixel format.
type ST7789 struct {
	*pixel.CRGB16Image
	c         Conn
	backlight gpio.PinOut
	rotation  Rotation
}

// NewST7789 resets and initializes the controller on c.
func NewST7789(c Conn, config *Config) (*ST7789, error) {
	if config == nil {
		config = new(Config)
	}
	width, height := config.Width, config.Height
	if width == 0 {
		width = st7789DefaultWidth
	}
	if height == 0 {
		height = st7789DefaultHeight
	}

	rotation := config.Rotation & 3
	maxWidth, maxHeight := 240, 320
	if rotation == Rotate90 || rotation == Rotate270 {
		maxWidth, maxHeight = maxHeight, maxWidth
	}
	if width < 0 || height < 0 || width > maxWidth || height > maxHeight {
		return nil, fmt.Errorf("st7789: invalid size %dx%d, maximum size is %dx%d at %s rotation", width, height, maxWidth, maxHeight, rotation)
	}

	d := &ST7789{
		CRGB16Image: pixel.NewCRGB16Image(width, height),
		c:           c,
		backlight:   config.Backlight,
	}
	d.Order = binary.BigEndian

	if err := d.init(rotation); err != nil {
		return nil, err
	}
	if d.backlight != nil {
		if err := d.backlight.Out(gpio.High); err != nil {
			return nil, err
		}
	}
	return d, nil
}

func (d *ST7789) String() string {
	bounds := d.Bounds()
	return fmt.Sprintf("ST7789 %dx%d", bounds.Dx(), bounds.Dy())
}

// Close switches the panel off and closes the connection.
func (d *ST7789) Close() error {
	if d.backlight != nil {
		_ = d.backlight.Out(gpio.Low)
	}
	if err := d.Show(false); err != nil {
		_ = d.c.Close()
		return err
	}
	return d.c.Close()
}

func (d *ST7789) commands(commands [][]byte) (err error) {
	for _, command := range commands {
		if err = d.c.Command(command[0], command[1:]...); err != nil {
			return
		}
	}
	return
}

func (d *ST7789) init(rotation Rotation) (err error) {
	// reset the device.
	for _, level := range []gpio.Level{gpio.High, gpio.Low, gpio.High} {
		if err = d.c.Reset(level); err != nil {
			return
		}
		time.Sleep(100 * time.Millisecond)
	}

	if err = d.c.Command(st7789SLPOUT); err != nil { // Sleep Out
		return
	}
	time.Sleep(150 * time.Millisecond)

	if err = d.commands([][]byte{
		{st7789COLMOD, 0x05},        // Interface Pixel Format: 16-bit/pixel (RGB 5-6-5-bit input)
		{st7789PORCTRL, 0x0C, 0x0C}, // Porch Setting: default
		{st7789GCTRL, 0x35},         // Gate Control: 13.26V / -10.43V (default)
		{st7789VCOMS, 0x1A},         // VCOM Setting: 0.75V
		{st7789LCMCTRL, 0x2C},       // LCM Control: default
		{st7789VDVVRHEN, 0x01},      // VDV and VRH Command Enable: default
		{st7789VRHS, 0x0B},          // VRH Set
		{st7789VDVSET, 0x20},        // VDV Set: default (0V)
		{st7789VCMOFSET, 0x20},      // VCOM Offset Set: default (0V)
		{st7789FRCTR2, 0x0F},        // Frame Rate Control in Normal Mode: 60Hz (default)
		{st7789PWCTRL1, 0xA4, 0xA1}, // Power Control 1: default
		{st7789INVON},               // Display Inversion On
		{st7789PVGAMCTRL, 0x00, 0x19, 0x1E, 0x0A, 0x09, 0x15, 0x3D, 0x44, 0x51, 0x12, 0x03, 0x00, 0x3F, 0x3F},
		{st7789NVGAMCTRL, 0x00, 0x18, 0x1E, 0x0A, 0x09, 0x25, 0x3F, 0x43, 0x52, 0x33, 0x03, 0x00, 0x3F, 0x3F},
		{st7789DISPON}, // Display On
	}); err != nil {
		return
	}
	time.Sleep(100 * time.Millisecond)

	return d.SetRotation(rotation)
}

// Show toggles the panel on or off.
func (d *ST7789) Show(show bool) error {
	var command = byte(st7789DISPOFF)
	if show {
		command = byte(st7789DISPON)
	}
	return d.c.Command(command)
}

// SetRotation sets the memory scan direction. The frame buffer size is not changed.
func (d *ST7789) SetRotation(rotation Rotation) error {
	rotation &= 3

	var madctl byte
	switch rotation {
	case Rotate90:
		madctl = st7789ColumnAddressOrder | st7789PageColumnOrder
	case Rotate180:
		madctl = st7789ColumnAddressOrder | st7789PageAddressOrder
	case Rotate270:
		madctl = st7789PageAddressOrder | st7789PageColumnOrder
	}

	d.rotation = rotation
	return d.c.Command(st7789MADCTL, madctl)
}

func (d *ST7789) setWindow(x0, y0, x1, y1 int) error {
	return d.commands([][]byte{
		{st7789CASET, byte(x0 >> 8), byte(x0), byte(x1 >> 8), byte(x1)}, // Column address
		{st7789RASET, byte(y0 >> 8), byte(y0), byte(y1 >> 8), byte(y1)}, // Row address
		{st7789RAMWR}, // Write to RAM
	})
}

// Refresh sets the window to full screen and writes the frame buffer to the panel RAM.
func (d *ST7789) Refresh() error {
	bounds := d.Bounds()
	if err := d.setWindow(0, 0, bounds.Dx()-1, bounds.Dy()-1); err != nil {
		return err
	}

	pix := d.Pix
	for i := 0; i < len(pix); i += st7789BatchSize {
		if err := d.c.Data(pix[i:min(i+st7789BatchSize, len(pix))]...); err != nil {
			return err
		}
	}
	return nil
}

var _ cvdsim.Display = (*ST7789)(nil)
