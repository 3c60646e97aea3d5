package cvdsim

import (
	"context"
	"errors"
	"image"
	"log"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/BeatGlow/cvdsim/draw"
	"github.com/BeatGlow/cvdsim/pixel"
)

// Build composes the sequence for src: the source is resized to the configured output size
// once, then every variant is transformed, labelled and repeated for its run.
//
// Variants are built concurrently, so ann must be safe for concurrent use. The first error
// aborts the build and no sequence is returned.
func Build(ctx context.Context, src image.Image, ann Annotator, cfg Config) (*Sequence, error) {
	if src == nil {
		return nil, ErrNoSource
	}
	if ann == nil {
		return nil, ErrAnnotator
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	start := time.Now()
	base := draw.Resize(src, cfg.Width, cfg.Height)

	var (
		variants = Variants()
		runs     = make([]Run, len(variants))
		anchor   = TextAnchor(cfg.Width, cfg.Height)
		style    = cfg.style()
		count    = cfg.FramesPerVariant()
	)
	g, ctx := errgroup.WithContext(ctx)
	for i, v := range variants {
		g.Go(func() error {
			frame, err := buildFrame(ctx, base, v, ann, anchor, style)
			if err != nil {
				return err
			}
			runs[i] = Run{Frame: frame, Count: count}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	seq := NewSequence(runs...)
	if debug {
		log.Printf("cvdsim: built %d frames (%d variants x %d) at %dx%d in %s",
			seq.Len(), len(runs), count, cfg.Width, cfg.Height, time.Since(start))
	}
	return seq, nil
}

func buildFrame(ctx context.Context, base *pixel.RGBImage, v Variant, ann Annotator, at image.Point, style TextStyle) (Frame, error) {
	if err := ctx.Err(); err != nil {
		return Frame{}, err
	}
	img, err := Apply(base, v)
	if err != nil {
		return Frame{}, err
	}

	if err = ctx.Err(); err != nil {
		return Frame{}, err
	}
	label := v.Label()
	if img, err = ann.Annotate(img, label, at, style); err != nil {
		var annErr *AnnotationError
		if errors.As(err, &annErr) {
			return Frame{}, err
		}
		return Frame{}, &AnnotationError{Label: label, Err: err}
	}
	if img == nil {
		return Frame{}, &AnnotationError{Label: label, Err: errors.New("no image returned")}
	}
	return Frame{
		Variant: v,
		Label:   label,
		Image:   img,
	}, nil
}
