// Copyright 2015 the GoSpatial Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// licence that can be found in the LICENCE.txt file.

// This file adapts the teacher's priority-queue-driven depression
// filler (tools/fillDepressions.go) to the Priority-Flood+Epsilon
// construction of Barnes, Lehman & Mulla (2014), following the
// reference implementation in original_source/pylem_copy/priority_flood.hpp
// verbatim for the queue-handoff and epsilon-raise logic.

// Package fill implements Priority-Flood+Epsilon depression filling:
// it mutates a floating-point elevation Grid in place so that every
// non-boundary cell drains, by a strictly descending path of
// neighbors, to the top or bottom row.
package fill

import (
	"errors"
	"math"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/jblindsay/go-pylem/grid"
	"github.com/jblindsay/go-pylem/pqueue"
)

// ErrUnsupportedType is returned when Fill is asked to operate on a
// grid whose elevation type is not a supported floating-point type.
// Priority-Flood+Epsilon is only defined for floating-point elevations
// because it raises flooded cells by the smallest representable
// increment, which has no meaning for integer storage.
var ErrUnsupportedType = errors.New("fill: Priority-Flood+Epsilon is only defined for floating-point elevation grids")

// Float is the set of elevation types the depression filler accepts.
type Float interface {
	~float32 | ~float64
}

// Stats reports diagnostics from a completed Fill call.
type Stats struct {
	CellsProcessed int
	FalsePitCells  int
	Elapsed        time.Duration
}

// nextUp returns the smallest representable value of T strictly
// greater than z.
func nextUp[T Float](z T) T {
	switch v := any(z).(type) {
	case float32:
		return T(math.Nextafter32(v, math.MaxFloat32))
	case float64:
		return T(math.Nextafter(v, math.Inf(1)))
	default:
		panic("fill: unreachable elevation type")
	}
}

// Fill mutates g in place per the Priority-Flood+Epsilon algorithm
// contract:
//
//  1. seed the priority queue with the top and bottom rows (not the
//     left/right columns, reflecting the periodic-x boundary);
//  2. drain the open priority queue and pit FIFO in lockstep, taking
//     from the pit queue while it is actively flooding a basin and
//     handing control back to the open queue the instant the open
//     queue's minimum reaches the pit front's elevation;
//  3. raise any neighbor at or below nextafter(z, +Inf) to that value
//     and push it onto the pit queue; push any neighbor above
//     nextafter(z, +Inf) onto the open queue unchanged;
//  4. preserve no-data cells, routing them to the pit queue without
//     ever raising their value.
func Fill[T Float](g *grid.Grid[T]) (Stats, error) {
	start := time.Now()
	w, h := g.Width(), g.Height()

	open := pqueue.New(2 * (w + h))
	pit := pqueue.NewPit()
	closed := pqueue.NewClosedMask(w, h)

	noData := float64(g.NoData())
	pitTop := noData
	falsePitCells := 0
	cellsProcessed := 0

	for x := 0; x < w; x++ {
		open.Push(pqueue.Cell{X: x, Y: 0, Z: float64(g.At(x, 0))})
		closed.Close(x, 0)
		if h > 1 {
			open.Push(pqueue.Cell{X: x, Y: h - 1, Z: float64(g.At(x, h-1))})
			closed.Close(x, h-1)
		}
	}

	for open.Len() > 0 || pit.Len() > 0 {
		var c pqueue.Cell
		switch {
		case pit.Len() > 0 && open.Len() > 0 && open.Top().Z == pit.Front().Z:
			c = open.Pop()
			pitTop = noData
		case pit.Len() > 0:
			c = pit.Pop()
			if pitTop == noData {
				pitTop = float64(g.At(c.X, c.Y))
			}
		default:
			c = open.Pop()
			pitTop = noData
		}
		cellsProcessed++

		for n := 0; n < 8; n++ {
			nx, ny, ok := grid.Neighbor(c.X, c.Y, n, w, h)
			if !ok || closed.IsClosed(nx, ny) {
				continue
			}
			closed.Close(nx, ny)

			zN := float64(g.At(nx, ny))
			if zN == noData {
				pit.Push(pqueue.Cell{X: nx, Y: ny, Z: noData})
				continue
			}

			raisedT := nextUp(T(c.Z))
			raised := float64(raisedT)
			if zN <= raised {
				if pitTop != noData && pitTop < zN && raised >= zN {
					falsePitCells++
				}
				g.SetAt(nx, ny, raisedT)
				pit.Push(pqueue.Cell{X: nx, Y: ny, Z: raised})
			} else {
				open.Push(pqueue.Cell{X: nx, Y: ny, Z: zN})
			}
		}
	}

	stats := Stats{CellsProcessed: cellsProcessed, FalsePitCells: falsePitCells, Elapsed: time.Since(start)}
	logrus.WithFields(logrus.Fields{
		"cells_processed": stats.CellsProcessed,
		"false_pit_cells": stats.FalsePitCells,
		"elapsed":         stats.Elapsed,
	}).Debug("fill: Priority-Flood+Epsilon complete")

	return stats, nil
}

// FillDynamic dispatches to Fill for the grid types Priority-Flood+Epsilon
// supports and returns ErrUnsupportedType for anything else (in
// particular, integer-typed grids). Fill's own type parameter is
// already restricted to Float at compile time; FillDynamic exists for
// callers that only know their grid's element type at runtime, such as
// a future format-agnostic loader that can hand back a Grid[int].
func FillDynamic(g any) (Stats, error) {
	switch v := g.(type) {
	case *grid.Grid[float32]:
		return Fill(v)
	case *grid.Grid[float64]:
		return Fill(v)
	default:
		return Stats{}, ErrUnsupportedType
	}
}
