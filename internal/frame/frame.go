package frame

import (
	"errors"
	"fmt"

	"github.com/ledgrid/go-ledanim/internal/colormap"
	"github.com/ledgrid/go-ledanim/internal/traversal"
)

var (
	ErrDimensionMismatch = errors.New("source buffer smaller than frame dimensions")
	ErrTruncatedFrame    = errors.New("truncated frame")
)

// FlipOptions mirrors the source image before traversal. Both axes are
// independent and compose with the wiring transform.
type FlipOptions struct {
	Horizontal bool
	Vertical   bool
}

// Codec turns decoded pixel buffers into device byte order and back.
// One codec serves every frame of a container, all frames share its
// dimensions and color format.
type Codec struct {
	width  int
	height int
	format colormap.Format
}

func NewCodec(width, height int, format colormap.Format) *Codec {
	return &Codec{width: width, height: height, format: format}
}

// Size is the exact encoded length of one frame.
func (c *Codec) Size() int {
	return c.width * c.height * 3
}

// Encode walks the traversal plan over the source buffer and emits one
// wire triple per pixel. The buffer is row-major canonical RGB with
// channels bytes per pixel; a 4th alpha channel is dropped.
func (c *Codec) Encode(pix []byte, channels int, flip FlipOptions, plan []traversal.Point) ([]byte, error) {
	if channels < 3 {
		return nil, fmt.Errorf("%w: %d channels per pixel", ErrDimensionMismatch, channels)
	}
	need := c.width * c.height * channels
	if len(pix) < need {
		return nil, fmt.Errorf("%w: have %d bytes, need %d", ErrDimensionMismatch, len(pix), need)
	}

	out := make([]byte, 0, c.Size())
	for _, p := range plan {
		row, col := p.Row, p.Col
		if flip.Horizontal {
			col = c.width - 1 - col
		}
		if flip.Vertical {
			row = c.height - 1 - row
		}
		off := (row*c.width + col) * channels
		b0, b1, b2 := colormap.FromCanonical(c.format, pix[off], pix[off+1], pix[off+2])
		out = append(out, b0, b1, b2)
	}
	return out, nil
}

// Decode re-expands one stored frame into a canonical RGB buffer for
// display. Storage order is already the physical order the device
// shows, so pixels are written out sequentially, no traversal
// inversion happens here.
func (c *Codec) Decode(frameBytes []byte) ([]byte, error) {
	size := c.Size()
	if len(frameBytes) < size {
		return nil, fmt.Errorf("%w: have %d bytes, need %d", ErrTruncatedFrame, len(frameBytes), size)
	}

	out := make([]byte, size)
	for i := 0; i < c.width*c.height; i++ {
		r, g, b := colormap.ToCanonical(c.format, frameBytes[i*3], frameBytes[i*3+1], frameBytes[i*3+2])
		out[i*3] = r
		out[i*3+1] = g
		out[i*3+2] = b
	}
	return out, nil
}
