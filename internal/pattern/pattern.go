package pattern

import (
	"bytes"
	"fmt"

	"github.com/fogleman/ease"
	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/ledgrid/go-ledanim/internal/colormap"
	"github.com/ledgrid/go-ledanim/internal/container"
	"github.com/ledgrid/go-ledanim/internal/frame"
	"github.com/ledgrid/go-ledanim/internal/traversal"
)

// Options describes a generated test animation. Patterns go through
// the same codec as real exports so a scrambled wiring config shows up
// immediately on the device.
type Options struct {
	Width  int
	Height int
	Frames int
	Format colormap.Format
	Corner traversal.Corner
	Order  traversal.Order
}

// Gradient builds a container with a hue sweep scrolling across the
// matrix, one full rotation per loop.
func Gradient(opts Options) ([]byte, error) {
	return generate(opts, func(t, fx, fy float64) colorful.Color {
		h := 360 * frac(fx+t)
		return colorful.Hsv(h, 1, 1)
	})
}

// Pulse builds a container that breathes the given color in and out.
func Pulse(opts Options, hex string) ([]byte, error) {
	c, err := colorful.Hex(hex)
	if err != nil {
		return nil, fmt.Errorf("Error parsing pulse color: %w", err)
	}
	black := colorful.Color{}
	return generate(opts, func(t, fx, fy float64) colorful.Color {
		// ease in and out over one loop
		level := t * 2
		if level > 1 {
			level = 2 - level
		}
		return black.BlendHcl(c, ease.InOutSine(level)).Clamped()
	})
}

func generate(opts Options, pixel func(t, fx, fy float64) colorful.Color) ([]byte, error) {
	plan, err := traversal.Plan(opts.Width, opts.Height, opts.Corner, opts.Order)
	if err != nil {
		return nil, err
	}
	header, err := container.WriteHeader(opts.Frames, opts.Width, opts.Height, opts.Format)
	if err != nil {
		return nil, err
	}
	codec := frame.NewCodec(opts.Width, opts.Height, opts.Format)

	buf := bytes.NewBuffer(header)
	pix := make([]byte, opts.Width*opts.Height*3)
	for f := 0; f < opts.Frames; f++ {
		t := float64(f) / float64(opts.Frames)
		for y := 0; y < opts.Height; y++ {
			for x := 0; x < opts.Width; x++ {
				fx := float64(x) / float64(opts.Width)
				fy := float64(y) / float64(opts.Height)
				r, g, b := pixel(t, fx, fy).Clamped().RGB255()
				off := (y*opts.Width + x) * 3
				pix[off], pix[off+1], pix[off+2] = r, g, b
			}
		}
		data, err := codec.Encode(pix, 3, frame.FlipOptions{}, plan)
		if err != nil {
			return nil, err
		}
		buf.Write(data)
	}
	return buf.Bytes(), nil
}

func frac(f float64) float64 {
	return f - float64(int(f))
}
