// Copyright 2015 the GoSpatial Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// licence that can be found in the LICENCE.txt file.

// Package flow implements the three drainage accumulators that consume
// a filled elevation Grid in descending-elevation order: D8 area/slope,
// D-infinity area/slope, and D8 flow-path length. All three are
// grounded in the teacher's tools/d8FlowAccumulation.go and
// tools/fd8FlowAccum.go (for the neighbor/weight bookkeeping) and in
// original_source/pylem_copy/area_slope.hpp (for the exact facet and
// slope arithmetic, which this package follows verbatim).
package flow

import (
	"sort"

	"github.com/jblindsay/go-pylem/grid"
)

// DescendingOrder returns the indices [0, W*H) of elevations sorted so
// that the highest elevation comes first. The sort is stable so that
// ties resolve in index order, which is deterministic even though
// spec.md leaves the tie-break unspecified.
func DescendingOrder[T grid.Numeric](g *grid.Grid[T]) []int {
	data := g.Data()
	idx := make([]int, len(data))
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(a, b int) bool {
		return data[idx[a]] > data[idx[b]]
	})
	return idx
}
