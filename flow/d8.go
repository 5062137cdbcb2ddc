package flow

import (
	"github.com/jblindsay/go-pylem/grid"
)

// d8DiagFactor is the fixed planar approximation of sqrt(2) used by
// the D8 area/slope accumulator's distance calculation. This exact
// constant (not math.Sqrt2) must be preserved: original_source's
// area_slope.hpp hard-codes 1.41 here, and tests pin the resulting
// slope values to it.
const d8DiagFactor = 1.41

// eightOffset is one of the 8 (dx, dy) displacements walked by both
// D8AreaSlope and Length, in the same order as the 8 `update()` calls
// of original_source/pylem_copy/area_slope.hpp: SW, S, SE, E, NE, N,
// NW, W relative to the cell (y grows southward, as in grid.Neighbor).
type eightOffset struct{ dx, dy int }

var eightOffsets = [8]eightOffset{
	{-1, 1}, {0, 1}, {1, 1}, {1, 0}, {1, -1}, {0, -1}, {-1, -1}, {-1, 0},
}

// D8AreaSlope accumulates contributing area along steepest descent and
// emits per-cell slope as a side product, per spec.md §4.4. elevations
// must already be depression-filled (package fill). area must be
// pre-initialized by the caller (conventionally to dx*dx per cell,
// per spec.md §3); slope must be pre-initialized to 0.
//
// Boundary rows (y == 0, y == h-1) are skipped as sources, matching
// spec.md §4.4 step 1, but are not guarded against as recipients: a
// steepest-descent target that lands on a boundary row still receives
// the forwarded area, following original_source/pylem_copy/area_slope.hpp's
// unconditional accumulation rather than spec.md's "neither receive nor
// forward" wording for boundary rows.
func D8AreaSlope(elevations *grid.Grid[float64], dx float64, area, slope *grid.Grid[float64]) {
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
		drains := false

		for _, off := range eightOffsets {
			nx := wrap(x+off.dx, w)
			ny := y + off.dy
			if ny < 0 || ny >= h {
				continue
			}
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

		if drains {
			area.SetAt(maxX, maxY, area.At(maxX, maxY)+area.At(x, y))
			slope.SetAt(x, y, maxSlope)
		}
	}
}
