package cvdsim

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/BeatGlow/cvdsim/draw"
	"github.com/BeatGlow/cvdsim/pixel"
)

// Play shows the frames of seq on d in order, frameRate frames per second.
//
// Consecutive frames sharing one image are drawn once and then held on screen. Cancelling ctx
// interrupts playback after the current frame; Play then returns ctx.Err().
func Play(ctx context.Context, seq *Sequence, frameRate int, d Display) error {
	if frameRate <= 0 || frameRate > MaxFrameRate {
		return fmt.Errorf("%w: frame rate %d", ErrConfig, frameRate)
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	var (
		ticker = time.NewTicker(time.Second / time.Duration(frameRate))
		shown  *pixel.RGBImage
		bounds = d.Bounds()
	)
	defer ticker.Stop()

	for i, frame := range seq.All() {
		if frame.Image != shown {
			if debug {
				log.Printf("cvdsim: frame %d/%d: %s", i+1, seq.Len(), frame.Label)
			}
			r := frame.Image.Bounds()
			draw.Draw(d, bounds.Intersect(r.Sub(r.Min).Add(bounds.Min)), frame.Image, r.Min, draw.Src)
			if err := d.Refresh(); err != nil {
				return err
			}
			shown = frame.Image
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
	return nil
}
