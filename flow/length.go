package flow

import (
	"github.com/jblindsay/go-pylem/grid"
)

// d8LengthDiagFactor is the diagonal step-length constant for
// flow-path length. It is written as 1.414 in
// original_source/pylem_copy/area_slope.hpp's length_, textually
// distinct from D8AreaSlope's 1.41 (see d8DiagFactor) — spec.md §4.6
// calls this out explicitly and asks that both literals be preserved
// rather than unified.
const d8LengthDiagFactor = 1.414

// Length accumulates the maximum-length upstream D8 flow path
// terminating at each cell, per spec.md §4.6. It selects the steepest
// descent neighbor exactly as D8AreaSlope does, but classifies the
// outgoing step as cardinal or diagonal using the LAST of the 8
// neighbors enumerated in the inner loop rather than the one actually
// selected as steepest descent. This reproduces a source-observable
// quirk of original_source/pylem_copy/area_slope.hpp's length_
// (its per-facet `update` helper captures next_x/next_y by value from
// whichever call happens to run last, not the call that updated
// maxSlope) — spec.md §9 directs implementers not to silently correct
// it, so it is preserved here rather than reclassified off
// (max_x, max_y).
//
// Boundary rows are likewise skipped only as sources, not as
// recipients: a steepest-descent target on a boundary row still gets
// its length updated, per the same original_source-over-spec.md
// divergence documented in d8.go.
func Length(elevations *grid.Grid[float64], dx float64, length *grid.Grid[float64]) {
	w, h := elevations.Width(), elevations.Height()
	order := DescendingOrder(elevations)

	for _, i := range order {
		x, y := elevations.IToXY(i)
		if y == 0 || y == h-1 {
			continue
		}

		z := elevations.At(x, y)
		maxSlope := 0.0
		maxX, maxY := x, y
		var lastNX, lastNY int
		drains := false

		for _, off := range eightOffsets {
			nx := wrap(x+off.dx, w)
			ny := y + off.dy
			lastNX, lastNY = nx, ny

			dist := dx
			if nx != x && ny != y {
				dist = d8DiagFactor * dx
			}
			s := (z - elevations.At(nx, ny)) / dist
			if s > maxSlope {
				maxSlope = s
				maxX, maxY = nx, ny
				drains = true
			}
		}

		if !drains {
			continue
		}

		step := dx
		if x != lastNX && y != lastNY {
			step = d8LengthDiagFactor * dx
		}

		candidate := length.At(x, y) + step
		if length.At(maxX, maxY) < candidate {
			length.SetAt(maxX, maxY, candidate)
		}
	}
}
