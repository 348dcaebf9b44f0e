package colormap

import (
	"errors"
	"testing"
)

func TestFromCanonical(t *testing.T) {
	testCases := []struct {
		format Format
		want   [3]byte
	}{
		{RGB, [3]byte{10, 20, 30}},
		{RBG, [3]byte{10, 30, 20}},
		{BGR, [3]byte{30, 20, 10}},
		{BRG, [3]byte{30, 10, 20}},
		{GRB, [3]byte{20, 10, 30}},
		{GBR, [3]byte{20, 30, 10}},
	}

	for _, tc := range testCases {
		t.Run(tc.format.String(), func(t *testing.T) {
			b0, b1, b2 := FromCanonical(tc.format, 10, 20, 30)
			got := [3]byte{b0, b1, b2}
			if got != tc.want {
				t.Errorf("got %v, want %v", got, tc.want)
			}
		})
	}
}

func TestInvolution(t *testing.T) {
	triples := [][3]byte{
		{0, 0, 0},
		{255, 255, 255},
		{10, 20, 30},
		{1, 128, 254},
	}
	for _, f := range Formats() {
		for _, tr := range triples {
			b0, b1, b2 := ToCanonical(f, tr[0], tr[1], tr[2])
			r0, r1, r2 := FromCanonical(f, b0, b1, b2)
			if r0 != tr[0] || r1 != tr[1] || r2 != tr[2] {
				t.Errorf("%s: round trip of %v gave %v", f, tr, [3]byte{r0, r1, r2})
			}
		}
	}
}

func TestParse(t *testing.T) {
	for _, f := range Formats() {
		got, err := Parse(f.String())
		if err != nil {
			t.Fatalf("Parse(%q): %v", f, err)
		}
		if got != f {
			t.Errorf("Parse(%q) = %v", f, got)
		}
	}

	_, err := Parse("xyz")
	if !errors.Is(err, ErrUnknownFormat) {
		t.Errorf("Parse(xyz) = %v, want ErrUnknownFormat", err)
	}
	_, err = Parse("rgba")
	if !errors.Is(err, ErrUnknownFormat) {
		t.Errorf("Parse(rgba) = %v, want ErrUnknownFormat", err)
	}
}

func TestCode(t *testing.T) {
	c := GRB.Code()
	if string(c[:]) != "grb" {
		t.Errorf("got %q", c)
	}
}
