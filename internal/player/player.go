package player

import (
	"fmt"
	"os"

	"github.com/ledgrid/go-ledanim/internal/container"
	"github.com/ledgrid/go-ledanim/internal/frame"
)

// Container is a read-only view over one fully loaded animation file.
// Frames decode lazily and out of order, nothing mutates after Load.
type Container struct {
	Header container.Header

	data  []byte
	codec *frame.Codec
}

// Load parses the header and keeps the raw buffer by reference. No
// per-frame work happens here.
func Load(b []byte) (*Container, error) {
	h, err := container.ReadHeader(b)
	if err != nil {
		return nil, err
	}
	return &Container{
		Header: h,
		data:   b,
		codec:  frame.NewCodec(int(h.Width), int(h.Height), h.Format),
	}, nil
}

// LoadFile reads a container file into memory and parses it.
func LoadFile(path string) (*Container, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("Error reading container %q: %w", path, err)
	}
	return Load(b)
}

// Frame decodes frame i into a canonical RGB buffer for display,
// pixels in storage order.
func (c *Container) Frame(i int) ([]byte, error) {
	raw, err := c.Raw(i)
	if err != nil {
		return nil, err
	}
	return c.codec.Decode(raw)
}

// Raw returns frame i exactly as stored, device byte order.
func (c *Container) Raw(i int) ([]byte, error) {
	off, err := c.Header.FrameOffset(i)
	if err != nil {
		return nil, err
	}
	size := int64(c.Header.FrameSize())
	if int64(len(c.data)) < off+size {
		return nil, fmt.Errorf("%w: frame %d ends at %d, container is %d bytes",
			frame.ErrTruncatedFrame, i, off+size, len(c.data))
	}
	return c.data[off : off+size], nil
}

// FrameCount is the number of frames the header declares.
func (c *Container) FrameCount() int {
	return int(c.Header.FrameCount)
}
