package cvdsim

import (
	"os"

	"github.com/BeatGlow/cvdsim/draw"
)

var debug bool

func init() {
	debug = os.Getenv("CVDSIM_DEBUG") != ""
}

// Display is an output that frames are drawn onto.
type Display interface {
	draw.Image

	// Close the display.
	Close() error

	// Refresh shows the current contents of the display.
	Refresh() error
}
