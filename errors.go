package cvdsim

import (
	"errors"
	"fmt"
	"image"
)

// Errors
var (
	ErrConfig    = errors.New("cvdsim: invalid configuration")
	ErrNoSource  = errors.New("cvdsim: no source image")
	ErrAnnotator = errors.New("cvdsim: no annotator")
)

// DimensionError is returned for an image buffer that is not a well-formed rectangular
// 3-channel grid.
type DimensionError struct {
	Rect   image.Rectangle
	Stride int
	Len    int
}

func (err *DimensionError) Error() string {
	return fmt.Sprintf("cvdsim: malformed %s RGB buffer (stride %d, %d bytes)", err.Rect.Size(), err.Stride, err.Len)
}

// UnknownVariantError is returned for a variant outside the supported set.
type UnknownVariantError struct {
	Name string
}

func (err *UnknownVariantError) Error() string {
	return fmt.Sprintf("cvdsim: unknown variant %q", err.Name)
}

// AnnotationError wraps a failure of the frame annotator.
type AnnotationError struct {
	Label string
	Err   error
}

func (err *AnnotationError) Error() string {
	return fmt.Sprintf("cvdsim: annotate %q: %v", err.Label, err.Err)
}

func (err *AnnotationError) Unwrap() error {
	return err.Err
}
