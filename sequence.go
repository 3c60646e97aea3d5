package cvdsim

import (
	"iter"

	"github.com/BeatGlow/cvdsim/pixel"
)

// Frame is one labelled image ready for display. Frames are read-only once built.
type Frame struct {
	Variant Variant
	Label   string
	Image   *pixel.RGBImage
}

// Run is a frame repeated Count times.
type Run struct {
	Frame
	Count int
}

// Sequence is the ordered list of frames of one playback session. Repeated frames are not
// copied; every frame of a run refers to the same image.
type Sequence struct {
	runs []Run
	size int
}

// NewSequence returns a sequence made of the given runs, in order.
func NewSequence(runs ...Run) *Sequence {
	s := &Sequence{runs: make([]Run, 0, len(runs))}
	for _, r := range runs {
		if r.Count < 0 {
			r.Count = 0
		}
		s.runs = append(s.runs, r)
		s.size += r.Count
	}
	return s
}

// Len is the total number of frames.
func (s *Sequence) Len() int {
	if s == nil {
		return 0
	}
	return s.size
}

// Runs returns a copy of the runs of the sequence.
func (s *Sequence) Runs() []Run {
	if s == nil {
		return nil
	}
	return append([]Run(nil), s.runs...)
}

// At returns frame i. It panics if i is out of range.
func (s *Sequence) At(i int) Frame {
	if i >= 0 {
		for _, r := range s.runs {
			if i < r.Count {
				return r.Frame
			}
			i -= r.Count
		}
	}
	panic("cvdsim: sequence index out of range")
}

// All yields the frames in order with their index. Stopping early is allowed.
func (s *Sequence) All() iter.Seq2[int, Frame] {
	return func(yield func(int, Frame) bool) {
		if s == nil {
			return
		}
		var i int
		for _, r := range s.runs {
			for n := 0; n < r.Count; n++ {
				if !yield(i, r.Frame) {
					return
				}
				i++
			}
		}
	}
}
