package grid

import (
	"image"
	"math"
)

const (
	// BoxSize is the edge length of one cell in pixels.
	BoxSize = 10
	// InnerSize is the edge length of a cell's colored interior.
	InnerSize = BoxSize - 2
)

// Layout describes how n cells are placed on the square grid.
type Layout struct {
	Cells int // number of painted cells
	Side  int // cells per row and per column
}

// NewLayout returns the layout for a ternary string of length n.
func NewLayout(n int) Layout {
	return Layout{Cells: n, Side: ceilSqrt(n)}
}

// Size is the edge length of the grid canvas in pixels.
func (l Layout) Size() int { return l.Side * BoxSize }

// Empty is the number of trailing cells that stay unpainted.
func (l Layout) Empty() int { return l.Side*l.Side - l.Cells }

// Cell returns the full box of cell i, border included.
func (l Layout) Cell(i int) image.Rectangle {
	row, col := i/l.Side, i%l.Side
	x, y := col*BoxSize, row*BoxSize
	return image.Rect(x, y, x+BoxSize, y+BoxSize)
}

// Interior returns the colored interior of cell i.
func (l Layout) Interior(i int) image.Rectangle {
	return l.Cell(i).Inset(1)
}

func ceilSqrt(n int) int {
	if n <= 0 {
		return 0
	}
	s := int(math.Sqrt(float64(n)))
	for s*s < n {
		s++
	}
	for s > 1 && (s-1)*(s-1) >= n {
		s--
	}
	return s
}
