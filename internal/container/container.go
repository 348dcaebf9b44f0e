package container

import (
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/ledgrid/go-ledanim/internal/colormap"
	"github.com/ledgrid/go-ledanim/internal/config"
)

var (
	ErrOutOfRange      = errors.New("header field out of range")
	ErrTruncatedHeader = errors.New("truncated header")
	ErrIndexOutOfRange = errors.New("frame index out of range")
)

// Header is the fixed 9 byte container prefix. Numeric fields are
// big-endian on the wire, the color format is its 3 ASCII letter code.
type Header struct {
	FrameCount uint16
	Width      uint16
	Height     uint16
	Format     colormap.Format
}

// FrameSize is the byte length of every frame block.
func (h Header) FrameSize() int {
	return int(h.Width) * int(h.Height) * config.SizePixel
}

// TotalSize is the exact container length in bytes.
func (h Header) TotalSize() int64 {
	return int64(config.SizeHeader) + int64(h.FrameCount)*int64(h.FrameSize())
}

// FrameOffset is the absolute byte offset of frame i.
func (h Header) FrameOffset(i int) (int64, error) {
	if i < 0 || i >= int(h.FrameCount) {
		return 0, fmt.Errorf("%w: frame %d of %d", ErrIndexOutOfRange, i, h.FrameCount)
	}
	return int64(config.SizeHeader) + int64(i)*int64(h.FrameSize()), nil
}

// WriteHeader packs a validated header into its 9 byte wire form.
func WriteHeader(frameCount, width, height int, format colormap.Format) ([]byte, error) {
	if frameCount < 1 || frameCount > config.MaxFrameCount {
		return nil, fmt.Errorf("%w: frame count %d", ErrOutOfRange, frameCount)
	}
	if width < 1 || width > config.MaxFrameWidth {
		return nil, fmt.Errorf("%w: width %d", ErrOutOfRange, width)
	}
	if height < 1 || height > config.MaxFrameHeight {
		return nil, fmt.Errorf("%w: height %d", ErrOutOfRange, height)
	}

	buf := make([]byte, config.SizeHeader)
	binary.BigEndian.PutUint16(buf[0:2], uint16(frameCount))
	binary.BigEndian.PutUint16(buf[2:4], uint16(width))
	binary.BigEndian.PutUint16(buf[4:6], uint16(height))
	code := format.Code()
	copy(buf[6:9], code[:])
	return buf, nil
}

// ReadHeader parses the container prefix. Unknown color format codes
// are rejected, never defaulted to rgb.
func ReadHeader(b []byte) (Header, error) {
	if len(b) < config.SizeHeader {
		return Header{}, fmt.Errorf("%w: have %d bytes, need %d", ErrTruncatedHeader, len(b), config.SizeHeader)
	}
	format, err := colormap.Parse(string(b[6:9]))
	if err != nil {
		return Header{}, err
	}
	h := Header{
		FrameCount: binary.BigEndian.Uint16(b[0:2]),
		Width:      binary.BigEndian.Uint16(b[2:4]),
		Height:     binary.BigEndian.Uint16(b[4:6]),
		Format:     format,
	}
	if h.FrameCount == 0 {
		return Header{}, fmt.Errorf("%w: frame count 0", ErrOutOfRange)
	}
	return h, nil
}
