//go:build !linux

package framebuffer

import (
	"errors"

	"github.com/BeatGlow/cvdsim"
)

var ErrNotSupported = errors.New("framebuffer: not supported")

func Open(_ string) (cvdsim.Display, error) {
	return nil, ErrNotSupported
}
