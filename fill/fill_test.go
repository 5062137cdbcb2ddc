package fill

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/floats"

	"github.com/jblindsay/go-pylem/grid"
)

// build3x3Cone reproduces spec.md §8 scenario 1: a 3x3 cone with a
// deep pit at the center.
func build3x3Cone() *grid.Grid[float64] {
	g := grid.New[float64](3, 3, 9)
	g.SetAt(1, 1, 1)
	return g
}

func TestFillRaisesCenterPitByOneULP(t *testing.T) {
	g := build3x3Cone()
	stats, err := Fill(g)
	require.NoError(t, err)
	assert.Greater(t, stats.CellsProcessed, 0)

	want := math.Nextafter(9, math.Inf(1))
	assert.True(t, floats.EqualWithinULP(g.At(1, 1), want, 1))
}

func TestFillBoundaryRowsUnchanged(t *testing.T) {
	g := build3x3Cone()
	_, err := Fill(g)
	require.NoError(t, err)
	for x := 0; x < 3; x++ {
		assert.Equal(t, 9.0, g.At(x, 0))
		assert.Equal(t, 9.0, g.At(x, 2))
	}
}

func TestFillPlanarSurfaceIsNoOp(t *testing.T) {
	// scenario 3: elev(x, y) = H - y, strictly descending toward y=H-1.
	h := 4
	g := grid.New[float64](4, h, 0)
	for y := 0; y < h; y++ {
		for x := 0; x < 4; x++ {
			g.SetAt(x, y, float64(h-y))
		}
	}
	before := append([]float64(nil), g.Data()...)

	_, err := Fill(g)
	require.NoError(t, err)

	assert.Equal(t, before, g.Data())
}

func TestFillIdempotent(t *testing.T) {
	// P6: filling an already-filled grid is a no-op.
	g := build3x3Cone()
	_, err := Fill(g)
	require.NoError(t, err)
	before := append([]float64(nil), g.Data()...)

	_, err = Fill(g)
	require.NoError(t, err)
	assert.Equal(t, before, g.Data())
}

func TestFillSinglePitULP(t *testing.T) {
	// scenario 2: 5x5 grid of elevation 10 with (2,2) set to 0.
	g := grid.New[float64](5, 5, 10)
	// the default no-data sentinel is 0, so move it off the pit's value.
	g.SetNoData(-9999)
	g.SetAt(2, 2, 0)

	_, err := Fill(g)
	require.NoError(t, err)

	// (2,2) is reached only after every cell between it and the
	// boundary has already been raised by one ULP, so it ends up
	// raised by several ULPs above 10, not exactly nextafter(10, +Inf).
	assert.Greater(t, g.At(2, 2), 10.0)
	assert.True(t, floats.EqualWithinAbs(g.At(2, 2), 10.0, 1e-6))
}

func TestFillPeriodicXWrap(t *testing.T) {
	// scenario 4: a low value at x=0 in the middle row is reachable via
	// the periodic wrap to x=W-1.
	g := grid.New[float64](4, 3, 10)
	g.SetAt(0, 1, 1)

	before := g.At(3, 1)
	_, err := Fill(g)
	require.NoError(t, err)

	assert.Greater(t, g.At(0, 1), 1.0)
	assert.Equal(t, 10.0, before)
}

func TestFillPreservesNoData(t *testing.T) {
	// scenario 6: a no-data island is preserved in value, never raised,
	// and routed through the pit queue.
	g := grid.New[float64](5, 5, 10)
	g.SetNoData(-9999)
	for y := 1; y <= 3; y++ {
		for x := 1; x <= 3; x++ {
			g.SetAt(x, y, -9999)
		}
	}

	_, err := Fill(g)
	require.NoError(t, err)

	for y := 1; y <= 3; y++ {
		for x := 1; x <= 3; x++ {
			assert.Equal(t, -9999.0, g.At(x, y))
		}
	}
}

func TestFillMonotoneDescentToBoundary(t *testing.T) {
	// P1: every interior cell has a neighbor strictly lower than it,
	// and following that relation reaches a boundary cell.
	g := grid.New[float64](6, 6, 0)
	for y := 0; y < 6; y++ {
		for x := 0; x < 6; x++ {
			g.SetAt(x, y, float64((x+1)*(y+1)%13))
		}
	}
	_, err := Fill(g)
	require.NoError(t, err)

	for y := 1; y < 5; y++ {
		for x := 0; x < 6; x++ {
			steps := 0
			cx, cy := x, y
			for cy != 0 && cy != 5 && steps < 1000 {
				found := false
				for n := 0; n < 8; n++ {
					nx, ny, ok := grid.Neighbor(cx, cy, n, 6, 6)
					if ok && g.At(nx, ny) < g.At(cx, cy) {
						cx, cy = nx, ny
						found = true
						break
					}
				}
				require.True(t, found, "cell (%d,%d) has no lower neighbor", cx, cy)
				steps++
			}
			assert.Less(t, steps, 1000)
		}
	}
}

func TestFillDynamicRejectsIntegerGrid(t *testing.T) {
	g := grid.New[int](3, 3, 1)
	_, err := FillDynamic(g)
	assert.ErrorIs(t, err, ErrUnsupportedType)
}

func TestFillDynamicAcceptsFloat32AndFloat64(t *testing.T) {
	g64 := build3x3Cone()
	_, err := FillDynamic(g64)
	assert.NoError(t, err)

	g32 := grid.New[float32](3, 3, 9)
	g32.SetAt(1, 1, 1)
	_, err = FillDynamic(g32)
	assert.NoError(t, err)
}
