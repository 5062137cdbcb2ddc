// Copyright 2015 the GoSpatial Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// licence that can be found in the LICENCE.txt file.

// Package grid provides the rectangular raster container shared by the
// depression filler and the drainage accumulators: row-major storage, a
// no-data sentinel, xy/linear index conversion, and the periodic-x,
// non-periodic-y 8-neighborhood used throughout this module.
package grid

import "errors"

// ErrNaNElevation is returned when a caller-supplied elevation is NaN.
// The algorithms in this module sort cells by elevation (see package
// flow) and have no agreed total ordering for NaN, so it is rejected
// rather than silently placed at an unspecified extreme.
var ErrNaNElevation = errors.New("grid: NaN elevation is not supported")

// Numeric is the set of scalar types a Grid may hold. The depression
// filler (package fill) further restricts itself to the floating-point
// members of this set; accumulation (package flow) is defined for any
// of them.
type Numeric interface {
	~float32 | ~float64 | ~int | ~int32 | ~int64
}

// Grid is a W by H raster of row-major cells, (x, y) at index y*W+x.
// It carries a single no-data sentinel value and is the sole owner of
// its backing storage, allocated as one contiguous slice so that
// neighboring rows stay close in memory.
type Grid[T Numeric] struct {
	w, h   int
	data   []T
	noData T
}

// New allocates a W by H grid with every cell set to init.
func New[T Numeric](w, h int, init T) *Grid[T] {
	g := &Grid[T]{w: w, h: h, data: make([]T, w*h)}
	if init != 0 {
		for i := range g.data {
			g.data[i] = init
		}
	}
	return g
}

// Width returns W.
func (g *Grid[T]) Width() int { return g.w }

// Height returns H.
func (g *Grid[T]) Height() int { return g.h }

// Size returns W*H.
func (g *Grid[T]) Size() int { return g.w * g.h }

// NoData returns the current no-data sentinel.
func (g *Grid[T]) NoData() T { return g.noData }

// SetNoData changes the no-data sentinel. It does not rewrite existing
// cells; callers that need that must do it themselves.
func (g *Grid[T]) SetNoData(v T) { g.noData = v }

// InGrid reports whether (x, y) is within [0, W) x [0, H).
func (g *Grid[T]) InGrid(x, y int) bool {
	return x >= 0 && x < g.w && y >= 0 && y < g.h
}

// XYToI converts (x, y) to a linear index. The caller is responsible
// for ensuring (x, y) is in range; out-of-range access is a programmer
// error, as in the teacher's raster package.
func (g *Grid[T]) XYToI(x, y int) int { return y*g.w + x }

// IToXY converts a linear index back to (x, y).
func (g *Grid[T]) IToXY(i int) (x, y int) { return i % g.w, i / g.w }

// Get returns the value at linear index i.
func (g *Grid[T]) Get(i int) T { return g.data[i] }

// Set writes the value at linear index i.
func (g *Grid[T]) Set(i int, v T) { g.data[i] = v }

// At returns the value at (x, y).
func (g *Grid[T]) At(x, y int) T { return g.data[g.XYToI(x, y)] }

// SetAt writes the value at (x, y).
func (g *Grid[T]) SetAt(x, y int, v T) { g.data[g.XYToI(x, y)] = v }

// Data exposes the backing slice directly, for algorithms (package
// flow) that want to build and sort an index vector over raw values
// without going through At/Get per lookup.
func (g *Grid[T]) Data() []T { return g.data }

// dx/dy enumerate the fixed 8-neighborhood in a closed ring, indexed
// 0..7, starting due north and proceeding clockwise (y grows southward).
// The exact numbering is immaterial to output correctness. Package flow
// does not use this table; its accumulators walk their own neighbor
// offsets and facet sequence.
var dx = [8]int{0, 1, 1, 1, 0, -1, -1, -1}
var dy = [8]int{-1, -1, 0, 1, 1, 1, 0, -1}

// Neighbor returns the (nx, ny) coordinates of neighbor n (0..7) of
// (x, y), wrapping nx periodically modulo W and leaving ny unwrapped.
// The second return value is false when ny falls outside [0, H) — the
// y-axis is not periodic, so there is no neighbor in that case.
func Neighbor(x, y, n, w, h int) (nx, ny int, ok bool) {
	nx = x + dx[n]
	if nx < 0 {
		nx += w
	} else if nx >= w {
		nx -= w
	}
	ny = y + dy[n]
	if ny < 0 || ny >= h {
		return 0, 0, false
	}
	return nx, ny, true
}

// IsDiagonal reports whether neighbor n of the fixed 8-neighborhood is
// a diagonal (as opposed to cardinal) direction.
func IsDiagonal(n int) bool {
	return dx[n] != 0 && dy[n] != 0
}
