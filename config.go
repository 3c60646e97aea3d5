package cvdsim

import "fmt"

// Config is the output configuration of a sequence.
type Config struct {
	// Width of the output frames in pixels.
	Width int

	// Height of the output frames in pixels.
	Height int

	// FrameRate in frames per second.
	FrameRate int

	// Seconds each variant is shown.
	Seconds int

	// Style of the variant labels; the zero value selects DefaultTextStyle.
	Style TextStyle
}

// MaxFrameRate is the highest supported frame rate.
const MaxFrameRate = 1000

// DefaultConfig is a full HD sequence at 30 frames per second, 8 seconds per variant.
var DefaultConfig = Config{
	Width:     1920,
	Height:    1080,
	FrameRate: 30,
	Seconds:   8,
	Style:     DefaultTextStyle,
}

// Validate checks the configuration. Zero frame rate or duration is valid and yields an
// empty sequence.
func (c Config) Validate() error {
	switch {
	case c.Width <= 0 || c.Height <= 0:
		return fmt.Errorf("%w: output size %dx%d", ErrConfig, c.Width, c.Height)
	case c.FrameRate < 0 || c.FrameRate > MaxFrameRate:
		return fmt.Errorf("%w: frame rate %d", ErrConfig, c.FrameRate)
	case c.Seconds < 0:
		return fmt.Errorf("%w: duration %ds", ErrConfig, c.Seconds)
	}
	return nil
}

// FramesPerVariant is the run length of each variant.
func (c Config) FramesPerVariant() int {
	return c.FrameRate * c.Seconds
}

func (c Config) style() TextStyle {
	if c.Style == (TextStyle{}) {
		return DefaultTextStyle
	}
	return c.Style
}
