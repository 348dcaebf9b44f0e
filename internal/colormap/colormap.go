package colormap

import (
	"errors"
	"fmt"
)

// Format is the channel order the device expects on the wire.
// Each value is one of the 6 permutations of an RGB triple.
type Format int

const (
	RGB Format = iota
	RBG
	BGR
	BRG
	GRB
	GBR
)

var ErrUnknownFormat = errors.New("unknown color format")

// perms[f][i] holds which canonical channel (0=R 1=G 2=B) lands in wire byte i.
// This is a fixed table, not a computed transform.
var perms = [6][3]int{
	RGB: {0, 1, 2},
	RBG: {0, 2, 1},
	BGR: {2, 1, 0},
	BRG: {2, 0, 1},
	GRB: {1, 0, 2},
	GBR: {1, 2, 0},
}

var codes = [6]string{
	RGB: "rgb",
	RBG: "rbg",
	BGR: "bgr",
	BRG: "brg",
	GRB: "grb",
	GBR: "gbr",
}

func (f Format) String() string {
	if f < RGB || f > GBR {
		return ""
	}
	return codes[f]
}

// Code returns the 3 ASCII bytes written into the container header.
func (f Format) Code() [3]byte {
	var c [3]byte
	copy(c[:], codes[f])
	return c
}

// Parse maps a 3-letter code like "grb" to its Format.
func Parse(code string) (Format, error) {
	for f, c := range codes {
		if c == code {
			return Format(f), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownFormat, code)
}

// FromCanonical reorders a canonical (r,g,b) triple into wire byte order.
func FromCanonical(f Format, r, g, b byte) (byte, byte, byte) {
	c := [3]byte{r, g, b}
	p := perms[f]
	return c[p[0]], c[p[1]], c[p[2]]
}

// ToCanonical reorders a wire triple back into canonical (r,g,b).
func ToCanonical(f Format, b0, b1, b2 byte) (byte, byte, byte) {
	var c [3]byte
	p := perms[f]
	c[p[0]] = b0
	c[p[1]] = b1
	c[p[2]] = b2
	return c[0], c[1], c[2]
}

// Formats lists all supported values, wire-code order is not significant.
func Formats() []Format {
	return []Format{RGB, RBG, BGR, BRG, GRB, GBR}
}
