package flow

import (
	"math"

	"github.com/jblindsay/go-pylem/grid"
)

// quarterPi is atan2(1, 1), the facet-angle clamp used below. Computed
// once rather than re-deriving math.Atan2(1, 1) at every facet.
var quarterPi = math.Atan2(1, 1)

func wrap(v, n int) int {
	if v < 0 {
		return n - 1
	}
	if v >= n {
		return 0
	}
	return v
}

// dinfFacet evaluates one of the 8 triangular facets around (x, y),
// updating (maxSlope, maxX1, maxY1, maxX2, maxY2, w1, w2) if this
// facet is steeper than any seen so far. n1 is cardinal iff it is not
// diagonal to (x, y); exactly one of n1, n2 is cardinal in every facet.
// This mirrors update_dinf in original_source/pylem_copy/area_slope.hpp.
func dinfFacet(
	elevations *grid.Grid[float64], dx float64,
	x, y, x1, y1, x2, y2 int,
	maxSlope *float64, maxX1, maxY1, maxX2, maxY2 *int, w1, w2 *float64,
) {
	n1IsDiagonal := x1 != x && y1 != y

	var s1, s2 float64
	if !n1IsDiagonal {
		s1 = (elevations.At(x, y) - elevations.At(x1, y1)) / dx
		s2 = (elevations.At(x1, y1) - elevations.At(x2, y2)) / dx
	} else {
		s1 = (elevations.At(x, y) - elevations.At(x2, y2)) / dx
		s2 = (elevations.At(x2, y2) - elevations.At(x1, y1)) / dx
	}

	r := math.Atan2(s2, s1)
	var thisSlope float64
	if r < 0 {
		r = 0
		thisSlope = s1
	} else if r > quarterPi {
		r = quarterPi
		if n1IsDiagonal {
			thisSlope = (elevations.At(x, y) - elevations.At(x1, y1)) / (math.Sqrt2 * dx)
		} else {
			thisSlope = (elevations.At(x, y) - elevations.At(x2, y2)) / (math.Sqrt2 * dx)
		}
	} else {
		thisSlope = math.Sqrt(s1*s1 + s2*s2)
	}

	if thisSlope > *maxSlope {
		*maxSlope = thisSlope
		if !n1IsDiagonal {
			*w1 = 1 - math.Tan(r)
			*w2 = math.Tan(r)
		} else {
			*w2 = 1 - math.Tan(r)
			*w1 = math.Tan(r)
		}
		*maxX1, *maxY1 = x1, y1
		*maxX2, *maxY2 = x2, y2
	}
}

// DinfAreaSlope accumulates contributing area proportionally across
// the two downslope neighbors bounding the steepest triangular facet
// (Tarboton's D-infinity model), per spec.md §4.5. elevations must
// already be depression-filled; area must be pre-initialized by the
// caller, slope to 0.
//
// Facets are walked in the fixed order 6, 7, 8, 1, 2, 3, 4, 5, each
// sharing an edge with the previous one, exactly as in
// original_source/pylem_copy/area_slope.hpp's area_slope_dinf.
//
// As in D8AreaSlope, boundary rows are skipped as sources but not
// guarded against as recipients: a facet whose n1/n2 lands on a
// boundary row still gets its share of area, per original_source over
// spec.md's "neither receive nor forward" wording (see d8.go).
func DinfAreaSlope(elevations *grid.Grid[float64], dx float64, area, slope *grid.Grid[float64]) {
	w, h := elevations.Width(), elevations.Height()
	order := DescendingOrder(elevations)

	for _, i := range order {
		x, y := elevations.IToXY(i)
		if y == 0 || y == h-1 {
			continue
		}

		maxSlope := -1.0
		var w1, w2 float64
		var maxX1, maxY1, maxX2, maxY2 int

		// Facet 6
		x1, y1 := wrap(x-1, w), y+1
		x2, y2 := x, y+1
		dinfFacet(elevations, dx, x, y, x1, y1, x2, y2, &maxSlope, &maxX1, &maxY1, &maxX2, &maxY2, &w1, &w2)

		// Facet 7
		x1, y1 = x2, y2
		x2, y2 = wrap(x+1, w), y+1
		dinfFacet(elevations, dx, x, y, x1, y1, x2, y2, &maxSlope, &maxX1, &maxY1, &maxX2, &maxY2, &w1, &w2)

		// Facet 8
		x1, y1 = x2, y2
		x2, y2 = wrap(x+1, w), y
		dinfFacet(elevations, dx, x, y, x1, y1, x2, y2, &maxSlope, &maxX1, &maxY1, &maxX2, &maxY2, &w1, &w2)

		// Facet 1
		x1, y1 = x2, y2
		x2, y2 = wrap(x+1, w), y-1
		dinfFacet(elevations, dx, x, y, x1, y1, x2, y2, &maxSlope, &maxX1, &maxY1, &maxX2, &maxY2, &w1, &w2)

		// Facet 2
		x1, y1 = x2, y2
		x2, y2 = x, y-1
		dinfFacet(elevations, dx, x, y, x1, y1, x2, y2, &maxSlope, &maxX1, &maxY1, &maxX2, &maxY2, &w1, &w2)

		// Facet 3
		x1, y1 = x2, y2
		x2, y2 = wrap(x-1, w), y-1
		dinfFacet(elevations, dx, x, y, x1, y1, x2, y2, &maxSlope, &maxX1, &maxY1, &maxX2, &maxY2, &w1, &w2)

		// Facet 4
		x1, y1 = x2, y2
		x2, y2 = wrap(x-1, w), y
		dinfFacet(elevations, dx, x, y, x1, y1, x2, y2, &maxSlope, &maxX1, &maxY1, &maxX2, &maxY2, &w1, &w2)

		// Facet 5
		x1, y1 = x2, y2
		x2, y2 = wrap(x-1, w), y+1
		dinfFacet(elevations, dx, x, y, x1, y1, x2, y2, &maxSlope, &maxX1, &maxY1, &maxX2, &maxY2, &w1, &w2)

		if maxSlope > 0 {
			area.SetAt(maxX1, maxY1, area.At(maxX1, maxY1)+area.At(x, y)*w1)
			area.SetAt(maxX2, maxY2, area.At(maxX2, maxY2)+area.At(x, y)*w2)
			slope.SetAt(x, y, maxSlope)
		}
	}
}
