package flow

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jblindsay/go-pylem/grid"
)

func TestDescendingOrderSortsHighFirst(t *testing.T) {
	g := grid.New[float64](3, 1, 0)
	g.SetAt(0, 0, 5)
	g.SetAt(1, 0, 9)
	g.SetAt(2, 0, 1)

	order := DescendingOrder(g)
	data := g.Data()
	assert.Equal(t, []float64{9, 5, 1}, []float64{data[order[0]], data[order[1]], data[order[2]]})
}

func TestDescendingOrderStableOnTies(t *testing.T) {
	g := grid.New[float64](4, 1, 7)
	order := DescendingOrder(g)
	assert.Equal(t, []int{0, 1, 2, 3}, order)
}
