// Package panel contains drivers for SPI connected color display panels.
//
// A panel keeps a frame buffer in its native pixel format, [Refresh] pushes the whole
// buffer to the controller's RAM.
package panel

import (
	"errors"
	"os"

	"periph.io/x/conn/v3/gpio"
)

var debug bool

func init() {
	debug = os.Getenv("CVDSIM_DEBUG") != ""
}

// Errors
var (
	ErrNotSupported = errors.New("panel: not supported")
	ErrResetPin     = errors.New("panel: reset GPIO pin is invalid")
	ErrDCPin        = errors.New("panel: data/command (DC) GPIO pin is invalid")
)

// Rotation defines pixel rotation.
type Rotation uint8

// Supported rotations.
const (
	NoRotation Rotation = iota
	Rotate90            // Rotate 90° clock wise
	Rotate180           // Rotate 180°
	Rotate270           // Rotate 270° clock wise
)

// ParseRotation accepts the degrees or a direction name.
func ParseRotation(s string) (Rotation, error) {
	switch s {
	case "", "no", "0":
		return NoRotation, nil
	case "90", "right", "cw":
		return Rotate90, nil
	case "180", "flip":
		return Rotate180, nil
	case "270", "left", "ccw":
		return Rotate270, nil
	default:
		return NoRotation, errors.New("panel: invalid rotation " + s)
	}
}

func (r Rotation) String() string {
	switch r % 4 {
	case Rotate90:
		return "90°"
	case Rotate180:
		return "180°"
	case Rotate270:
		return "270°"
	default:
		return "0°"
	}
}

// Config is the panel configuration.
type Config struct {
	// Width of the panel in pixels, after rotation.
	Width int

	// Height of the panel in pixels, after rotation.
	Height int

	// Rotation of the panel.
	Rotation Rotation

	// Backlight pin, switched on while the panel is open. Optional.
	Backlight gpio.PinOut
}
