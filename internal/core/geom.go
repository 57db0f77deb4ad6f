// Package core provides fundamental types and utilities shared by the game
// and the platform shells. It has no UI dependencies so game logic stays pure
// and testable.
package core

import "math"

// Rect represents an axis-aligned rectangle in screen cells.
type Rect struct {
	X, Y int // Top-left corner position
	W, H int // Width and height
}

// NewRect creates a new rectangle with the given position and dimensions.
func NewRect(x, y, w, h int) Rect {
	return Rect{X: x, Y: y, W: w, H: h}
}

// Right returns the x-coordinate of the right edge.
func (r Rect) Right() int {
	return r.X + r.W
}

// Bottom returns the y-coordinate of the bottom edge.
func (r Rect) Bottom() int {
	return r.Y + r.H
}

// Around returns the smallest rectangle of whole cells covering the span
// [x, x+w) by [y, y+h). It is at least one cell in each direction.
func Around(x, y, w, h float64) Rect {
	x0, x1 := cellSpan(x, w)
	y0, y1 := cellSpan(y, h)
	return Rect{X: x0, Y: y0, W: x1 - x0, H: y1 - y0}
}

func cellSpan(pos, size float64) (lo, hi int) {
	lo = int(math.Floor(pos))
	hi = int(math.Ceil(pos + size))
	if hi <= lo {
		hi = lo + 1
	}
	return lo, hi
}

// Offset returns r moved by (dx, dy).
func (r Rect) Offset(dx, dy int) Rect {
	r.X += dx
	r.Y += dy
	return r
}

// ClampF restricts a float64 value to be within [lo, hi].
func ClampF(val, lo, hi float64) float64 {
	if val < lo {
		return lo
	}
	if val > hi {
		return hi
	}
	return val
}
