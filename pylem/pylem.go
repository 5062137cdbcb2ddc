// Copyright 2015 the GoSpatial Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// licence that can be found in the LICENCE.txt file.

// Package pylem implements the four boundary entry points described in
// spec.md §6 and named for original_source's PyLEM project, whose
// pyasc.cpp/pypfc.cpp define exactly this boundary: row-major
// double-precision buffers in, row-major buffers out, no file I/O, no
// CLI, no persisted state.
package pylem

import (
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/jblindsay/go-pylem/fill"
	"github.com/jblindsay/go-pylem/flow"
	"github.com/jblindsay/go-pylem/grid"
)

// NoDataDefault preserves the teacher's (and original_source's)
// original default no-data sentinel for callers that want parity with
// the unparameterized behavior. New callers should pass the no-data
// value their DEM actually uses — see spec.md §9's open question on
// default no-data.
const NoDataDefault = 0.0

// ErrDimension is returned when M or N is negative. M <= 2 is
// tolerated but degenerate: there are no interior rows, so every
// accumulator returns its initial values unchanged. A small N is
// accepted as well; when M > 2 its interior rows are still processed.
var ErrDimension = errors.New("pylem: M and N must be non-negative")

// ErrNaNElevation is returned when the input DEM contains a NaN
// elevation. The accumulators sort by elevation and have no agreed
// total order for NaN (spec.md §7 NumericError), so it is rejected at
// the boundary rather than silently given an unspecified position.
var ErrNaNElevation = errors.New("pylem: NaN elevation is not supported")

func buildGrid(dem []float64, noData float64, m, n int) (*grid.Grid[float64], error) {
	if m < 0 || n < 0 {
		return nil, fmt.Errorf("%w: m=%d n=%d", ErrDimension, m, n)
	}
	if len(dem) != m*n {
		return nil, fmt.Errorf("pylem: dem has %d elements, want m*n=%d", len(dem), m*n)
	}
	g := grid.New[float64](n, m, 0)
	g.SetNoData(noData)
	for i, v := range dem {
		if v != v { // NaN check without importing math for a single comparison
			return nil, fmt.Errorf("%w: %w at flat index %d", ErrNaNElevation, grid.ErrNaNElevation, i)
		}
		g.Set(i, v)
	}
	return g, nil
}

func logFillResult(op string, stats fill.Stats) {
	logrus.WithFields(logrus.Fields{
		"op":              op,
		"cells_processed": stats.CellsProcessed,
		"false_pit_cells": stats.FalsePitCells,
		"elapsed":         stats.Elapsed,
	}).Debug("pylem: fill-and-accumulate complete")
}

// FillAndD8 fills depressions in dem and computes D8 contributing area
// and slope. dem, M, N are row-major with dem[i*N+j] at caller row i,
// column j (internally grid cell x=j, y=i).
func FillAndD8(dem []float64, dx, noData float64, m, n int) (area, slope []float64, stats fill.Stats, err error) {
	start := time.Now()
	elevations, err := buildGrid(dem, noData, m, n)
	if err != nil {
		return nil, nil, fill.Stats{}, err
	}

	stats, err = fill.Fill(elevations)
	if err != nil {
		return nil, nil, fill.Stats{}, err
	}

	areaGrid := grid.New[float64](n, m, dx*dx)
	slopeGrid := grid.New[float64](n, m, 0)
	flow.D8AreaSlope(elevations, dx, areaGrid, slopeGrid)

	stats.Elapsed = time.Since(start)
	logFillResult("FillAndD8", stats)
	return areaGrid.Data(), slopeGrid.Data(), stats, nil
}

// FillAndDinf fills depressions in dem and computes D-infinity
// contributing area and slope. See FillAndD8 for the buffer layout.
func FillAndDinf(dem []float64, dx, noData float64, m, n int) (area, slope []float64, stats fill.Stats, err error) {
	start := time.Now()
	elevations, err := buildGrid(dem, noData, m, n)
	if err != nil {
		return nil, nil, fill.Stats{}, err
	}

	stats, err = fill.Fill(elevations)
	if err != nil {
		return nil, nil, fill.Stats{}, err
	}

	areaGrid := grid.New[float64](n, m, dx*dx)
	slopeGrid := grid.New[float64](n, m, 0)
	flow.DinfAreaSlope(elevations, dx, areaGrid, slopeGrid)

	stats.Elapsed = time.Since(start)
	logFillResult("FillAndDinf", stats)
	return areaGrid.Data(), slopeGrid.Data(), stats, nil
}

// FillAndLength fills depressions in dem and computes the maximum
// upstream D8 flow-path length at each cell. See FillAndD8 for the
// buffer layout.
func FillAndLength(dem []float64, dx, noData float64, m, n int) (length []float64, stats fill.Stats, err error) {
	start := time.Now()
	elevations, err := buildGrid(dem, noData, m, n)
	if err != nil {
		return nil, fill.Stats{}, err
	}

	stats, err = fill.Fill(elevations)
	if err != nil {
		return nil, fill.Stats{}, err
	}

	lengthGrid := grid.New[float64](n, m, 0)
	flow.Length(elevations, dx, lengthGrid)

	stats.Elapsed = time.Since(start)
	logFillResult("FillAndLength", stats)
	return lengthGrid.Data(), stats, nil
}

// FillOnly mutates dem in place to its depression-filled surface,
// matching original_source's pypfc.
func FillOnly(dem []float64, noData float64, m, n int) (stats fill.Stats, err error) {
	elevations, err := buildGrid(dem, noData, m, n)
	if err != nil {
		return fill.Stats{}, err
	}

	stats, err = fill.Fill(elevations)
	if err != nil {
		return fill.Stats{}, err
	}

	copy(dem, elevations.Data())
	logFillResult("FillOnly", stats)
	return stats, nil
}
