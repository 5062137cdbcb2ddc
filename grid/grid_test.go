package grid

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewFillsInit(t *testing.T) {
	g := New[float64](3, 2, 7.5)
	require.Equal(t, 6, g.Size())
	for i := 0; i < g.Size(); i++ {
		assert.Equal(t, 7.5, g.Get(i))
	}
}

func TestXYIndexRoundTrip(t *testing.T) {
	g := New[float64](4, 3, 0)
	for y := 0; y < g.Height(); y++ {
		for x := 0; x < g.Width(); x++ {
			i := g.XYToI(x, y)
			gotX, gotY := g.IToXY(i)
			assert.Equal(t, x, gotX)
			assert.Equal(t, y, gotY)
		}
	}
}

func TestInGrid(t *testing.T) {
	g := New[float64](4, 3, 0)
	assert.True(t, g.InGrid(0, 0))
	assert.True(t, g.InGrid(3, 2))
	assert.False(t, g.InGrid(-1, 0))
	assert.False(t, g.InGrid(4, 0))
	assert.False(t, g.InGrid(0, 3))
}

func TestAtSetAt(t *testing.T) {
	g := New[float64](2, 2, 0)
	g.SetAt(1, 1, 9)
	assert.Equal(t, 9.0, g.At(1, 1))
	assert.Equal(t, 0.0, g.At(0, 0))
}

func TestNeighborPeriodicX(t *testing.T) {
	// x wraps modulo W ...
	nx, ny, ok := Neighbor(0, 1, 6, 4, 3) // neighbor 6 is due west (dx=-1, dy=0)
	require.True(t, ok)
	assert.Equal(t, 3, nx)
	assert.Equal(t, 1, ny)
}

func TestNeighborNonPeriodicY(t *testing.T) {
	// the row above the top row has no neighbor
	_, _, ok := Neighbor(1, 0, 0, 4, 3) // neighbor 0 is due north (dx=0, dy=-1)
	assert.False(t, ok)
}

func TestNeighborEnumeratesAllEight(t *testing.T) {
	seen := make(map[[2]int]bool)
	for n := 0; n < 8; n++ {
		nx, ny, ok := Neighbor(2, 1, n, 5, 3)
		require.True(t, ok)
		seen[[2]int{nx, ny}] = true
	}
	assert.Len(t, seen, 8)
}

func TestIsDiagonal(t *testing.T) {
	diagonals := 0
	for n := 0; n < 8; n++ {
		if IsDiagonal(n) {
			diagonals++
		}
	}
	assert.Equal(t, 4, diagonals)
}
