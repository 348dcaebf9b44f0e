package traversal

import (
	"fmt"
)

// Corner is the physical matrix corner where the data line comes in,
// pixel index 0 starts there.
type Corner int

const (
	TopLeft Corner = iota
	TopRight
	BottomLeft
	BottomRight
)

var cornerNames = [4]string{
	TopLeft:     "topLeft",
	TopRight:    "topRight",
	BottomLeft:  "bottomLeft",
	BottomRight: "bottomRight",
}

func (c Corner) String() string {
	if c < TopLeft || c > BottomRight {
		return ""
	}
	return cornerNames[c]
}

func ParseCorner(s string) (Corner, error) {
	for c, name := range cornerNames {
		if name == s {
			return Corner(c), nil
		}
	}
	return 0, fmt.Errorf("unknown start corner %q", s)
}

// Order is the electrical wiring continuity of the matrix: straight
// rows/columns or alternating (snake) chains.
type Order int

const (
	Horizontal Order = iota
	Vertical
	HorizontalAlternate
	VerticalAlternate
)

var orderNames = [4]string{
	Horizontal:          "horizontal",
	Vertical:            "vertical",
	HorizontalAlternate: "horizontalAlternate",
	VerticalAlternate:   "verticalAlternate",
}

func (o Order) String() string {
	if o < Horizontal || o > VerticalAlternate {
		return ""
	}
	return orderNames[o]
}

func ParseOrder(s string) (Order, error) {
	for o, name := range orderNames {
		if name == s {
			return Order(o), nil
		}
	}
	return 0, fmt.Errorf("unknown pixel order %q", s)
}

// Point is a source grid position, row 0 is the top of the decoded
// image and col 0 is the left.
type Point struct {
	Row int
	Col int
}

// ConfigurationError reports a corner+order pair that does not map to
// any supported wiring. The caller picked it, we never substitute.
type ConfigurationError struct {
	Corner Corner
	Order  Order
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("unsupported wiring combination: start corner %s with pixel order %s", e.Corner, e.Order)
}

type combo struct {
	corner Corner
	order  Order
}

// Only the wirings that exist on real matrices are supported. The
// table is intentionally not the full 16 combinations.
var planners = map[combo]func(w, h int) []Point{
	{TopLeft, Horizontal}:            planTopLeftHorizontal,
	{TopLeft, Vertical}:              planTopLeftVertical,
	{TopLeft, HorizontalAlternate}:   planTopLeftHorizontalAlt,
	{TopLeft, VerticalAlternate}:     planTopLeftVerticalAlt,
	{TopRight, Horizontal}:           planTopRightHorizontal,
	{TopRight, HorizontalAlternate}:  planTopRightHorizontalAlt,
	{BottomLeft, Horizontal}:         planBottomLeftHorizontal,
	{BottomLeft, VerticalAlternate}:  planBottomLeftVerticalAlt,
	{BottomRight, Vertical}:          planBottomRightVertical,
	{BottomRight, VerticalAlternate}: planBottomRightVerticalAlt,
}

// Legal reports whether the corner+order pair has a defined traversal.
func Legal(c Corner, o Order) bool {
	_, ok := planners[combo{c, o}]
	return ok
}

// Plan returns the pixel visitation order for a w x h grid: the source
// pixel at Plan(...)[i] is written to linear output position i.
func Plan(width, height int, c Corner, o Order) ([]Point, error) {
	fn, ok := planners[combo{c, o}]
	if !ok {
		return nil, &ConfigurationError{Corner: c, Order: o}
	}
	return fn(width, height), nil
}

func planTopLeftHorizontal(w, h int) []Point {
	pts := make([]Point, 0, w*h)
	for row := 0; row < h; row++ {
		for col := 0; col < w; col++ {
			pts = append(pts, Point{row, col})
		}
	}
	return pts
}

func planTopLeftVertical(w, h int) []Point {
	pts := make([]Point, 0, w*h)
	for col := 0; col < w; col++ {
		for row := 0; row < h; row++ {
			pts = append(pts, Point{row, col})
		}
	}
	return pts
}

// snake rows: even rows run left to right, odd rows run back
func planTopLeftHorizontalAlt(w, h int) []Point {
	pts := make([]Point, 0, w*h)
	for row := 0; row < h; row++ {
		if row%2 == 0 {
			for col := 0; col < w; col++ {
				pts = append(pts, Point{row, col})
			}
		} else {
			for col := w - 1; col >= 0; col-- {
				pts = append(pts, Point{row, col})
			}
		}
	}
	return pts
}

// snake columns: even columns run top to bottom, odd columns run back
func planTopLeftVerticalAlt(w, h int) []Point {
	pts := make([]Point, 0, w*h)
	for col := 0; col < w; col++ {
		if col%2 == 0 {
			for row := 0; row < h; row++ {
				pts = append(pts, Point{row, col})
			}
		} else {
			for row := h - 1; row >= 0; row-- {
				pts = append(pts, Point{row, col})
			}
		}
	}
	return pts
}

func planTopRightHorizontal(w, h int) []Point {
	pts := make([]Point, 0, w*h)
	for row := 0; row < h; row++ {
		for col := w - 1; col >= 0; col-- {
			pts = append(pts, Point{row, col})
		}
	}
	return pts
}

func planTopRightHorizontalAlt(w, h int) []Point {
	pts := make([]Point, 0, w*h)
	for row := 0; row < h; row++ {
		if row%2 == 0 {
			for col := w - 1; col >= 0; col-- {
				pts = append(pts, Point{row, col})
			}
		} else {
			for col := 0; col < w; col++ {
				pts = append(pts, Point{row, col})
			}
		}
	}
	return pts
}

func planBottomLeftHorizontal(w, h int) []Point {
	pts := make([]Point, 0, w*h)
	for row := h - 1; row >= 0; row-- {
		for col := 0; col < w; col++ {
			pts = append(pts, Point{row, col})
		}
	}
	return pts
}

// even columns run bottom to top, odd columns top to bottom
func planBottomLeftVerticalAlt(w, h int) []Point {
	pts := make([]Point, 0, w*h)
	for col := 0; col < w; col++ {
		if col%2 == 0 {
			for row := h - 1; row >= 0; row-- {
				pts = append(pts, Point{row, col})
			}
		} else {
			for row := 0; row < h; row++ {
				pts = append(pts, Point{row, col})
			}
		}
	}
	return pts
}

func planBottomRightVertical(w, h int) []Point {
	pts := make([]Point, 0, w*h)
	for col := w - 1; col >= 0; col-- {
		for row := h - 1; row >= 0; row-- {
			pts = append(pts, Point{row, col})
		}
	}
	return pts
}

// parity is by absolute column index, not visit order: odd columns run
// top to bottom, even columns bottom to top
func planBottomRightVerticalAlt(w, h int) []Point {
	pts := make([]Point, 0, w*h)
	for col := w - 1; col >= 0; col-- {
		if col%2 == 0 {
			for row := h - 1; row >= 0; row-- {
				pts = append(pts, Point{row, col})
			}
		} else {
			for row := 0; row < h; row++ {
				pts = append(pts, Point{row, col})
			}
		}
	}
	return pts
}
