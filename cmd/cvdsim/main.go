package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"os/signal"
	"syscall"
	"time"

	"periph.io/x/conn/v3/gpio/gpioreg"
	"periph.io/x/host/v3"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"github.com/BeatGlow/cvdsim"
	"github.com/BeatGlow/cvdsim/chart"
	"github.com/BeatGlow/cvdsim/framebuffer"
	"github.com/BeatGlow/cvdsim/label"
	"github.com/BeatGlow/cvdsim/panel"
	"github.com/BeatGlow/cvdsim/stream"
)

func main() {
	imageFlag := flag.String("image", "", "Source image (default: color checker chart)")
	widthFlag := flag.Int("width", 0, "Output width (default: display width, or 1920)")
	heightFlag := flag.Int("height", 0, "Output height (default: display height, or 1080)")
	fpsFlag := flag.Int("fps", cvdsim.DefaultConfig.FrameRate, "Frames per second")
	durationFlag := flag.Int("duration", cvdsim.DefaultConfig.Seconds, "Seconds per variant")
	fontFlag := flag.String("font", "", "TrueType font for the labels (default: Go Bold)")
	sinkFlag := flag.String("sink", "fb", "Output sink (fb, spi or ws)")
	fbFlag := flag.String("fb", "/dev/fb0", "Framebuffer device")
	addrFlag := flag.String("addr", ":8888", "Websocket listen address")
	spiBusFlag := flag.Int("spi-bus", panel.DefaultSPIConfig.Bus, "SPI bus")
	spiDeviceFlag := flag.Int("spi-dev", panel.DefaultSPIConfig.Device, "SPI device")
	spiSpeedFlag := flag.Uint("spi-speed", uint(panel.DefaultSPIConfig.SpeedHz), "SPI bus speed in Hz")
	resetPinFlag := flag.String("reset", "GPIO25", "Reset GPIO pin")
	dcPinFlag := flag.String("dc", "GPIO24", "Data/Command GPIO pin (DC)")
	cePinFlag := flag.String("ce", "", "Chip enable GPIO pin (default: driven by spidev)")
	blPinFlag := flag.String("bl", "GPIO19", "Backlight GPIO pin")
	rotateFlag := flag.String("rotate", "", "Panel rotation")
	flag.Parse()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	src, err := loadImage(*imageFlag)
	if err != nil {
		fatal(err)
	}
	fmt.Printf("using source: %s\n", src.Bounds().Size())

	var opts label.Options
	if *fontFlag != "" {
		if opts.Font, err = os.ReadFile(*fontFlag); err != nil {
			fatal(err)
		}
	}
	renderer, err := label.New(&opts)
	if err != nil {
		fatal(err)
	}

	config, err := playbackConfig(*fpsFlag, *durationFlag)
	if err != nil {
		fatal(err)
	}

	var output cvdsim.Display
	switch *sinkFlag {
	case "fb":
		if output, err = framebuffer.Open(*fbFlag); err != nil {
			fatal(err)
		}
		bounds := output.Bounds()
		config.Width, config.Height = bounds.Dx(), bounds.Dy()
		size(&config, *widthFlag, *heightFlag)

	case "spi":
		rotation, err := panel.ParseRotation(*rotateFlag)
		if err != nil {
			fatal(err)
		}
		fmt.Printf("using rotation: %s\n", rotation)
		if _, err = host.Init(); err != nil {
			fatal(err)
		}
		c, err := panel.OpenSPI(&panel.SPIConfig{
			Bus:       *spiBusFlag,
			Device:    *spiDeviceFlag,
			Mode:      panel.DefaultSPIConfig.Mode,
			SpeedHz:   uint32(*spiSpeedFlag),
			BatchSize: panel.DefaultSPIConfig.BatchSize,
			Reset:     gpioreg.ByName(*resetPinFlag),
			DC:        gpioreg.ByName(*dcPinFlag),
			CE:        gpioreg.ByName(*cePinFlag),
		})
		if err != nil {
			fatal(err)
		}
		fmt.Printf("using connection: %s\n", c)
		d, err := panel.NewST7789(c, &panel.Config{
			Width:     *widthFlag,
			Height:    *heightFlag,
			Rotation:  rotation,
			Backlight: gpioreg.ByName(*blPinFlag),
		})
		if err != nil {
			_ = c.Close()
			fatal(err)
		}
		bounds := d.Bounds()
		config.Width, config.Height = bounds.Dx(), bounds.Dy()
		fmt.Printf("using driver: %s\n", d)
		output = d

	case "ws":
		size(&config, *widthFlag, *heightFlag)
		srv := stream.New(config.Width, config.Height, nil)
		go func() {
			if err := srv.ListenAndServe(ctx, *addrFlag); err != nil {
				fatal(err)
			}
		}()
		go func() {
			select {
			case <-srv.Stopped():
				fmt.Println("stop requested by client")
				cancel()
			case <-ctx.Done():
			}
		}()
		fmt.Printf("streaming on ws://%s/ws\n", *addrFlag)
		output = srv

	default:
		fatal(fmt.Errorf("unsupported sink %q", *sinkFlag))
	}
	defer output.Close()
	fmt.Printf("using output: %s\n", output.Bounds().Size())

	start := time.Now()
	seq, err := cvdsim.Build(ctx, src, renderer, config)
	if err != nil {
		fatal(err)
	}
	fmt.Printf("built %d frames (%d per variant) in %s\n", seq.Len(), config.FramesPerVariant(), time.Since(start).Round(time.Millisecond))

	fmt.Println("hit control-c to stop...")
	if err = cvdsim.Play(ctx, seq, config.FrameRate, output); err != nil && !errors.Is(err, context.Canceled) {
		fatal(err)
	}
}

// playbackConfig is the default configuration at the given rate and duration. It is checked
// before any sink is opened.
func playbackConfig(fps, seconds int) (cvdsim.Config, error) {
	config := cvdsim.DefaultConfig
	config.FrameRate = fps
	config.Seconds = seconds
	if err := config.Validate(); err != nil {
		return config, err
	}
	if config.FrameRate == 0 {
		return config, fmt.Errorf("%w: frame rate must be positive for playback", cvdsim.ErrConfig)
	}
	return config, nil
}

// size overrides the configured output size with the non-zero flag values.
func size(config *cvdsim.Config, width, height int) {
	if width > 0 {
		config.Width = width
	}
	if height > 0 {
		config.Height = height
	}
}

func loadImage(name string) (image.Image, error) {
	if name == "" {
		return chart.ColorChecker(), nil
	}
	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	img, format, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", name, err)
	}
	fmt.Printf("decoded %s image %s\n", format, name)
	return img, nil
}

func fatal(err error) {
	fmt.Fprintln(os.Stderr, "fatal: "+err.Error())
	os.Exit(1)
}
