package layout_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/nextcore/tuicore/pkg/layout"
)

// Flex grow with remainder distributes leftover cells deterministically.
func TestDistribute_FlexGrowRemainder(t *testing.T) {
	shares := layout.Distribute(100, []int{1, 1, 1})
	assert.Equal(t, []int{34, 33, 33}, shares)
}

func TestDistribute_ZeroTotal(t *testing.T) {
	shares := layout.Distribute(0, []int{1, 1})
	assert.Equal(t, []int{0, 0}, shares)
}

func TestDistribute_Deterministic(t *testing.T) {
	a := layout.Distribute(100, []int{1, 1, 1})
	b := layout.Distribute(100, []int{1, 1, 1})
	assert.Equal(t, a, b)
}

// Flex shrink with floor: widths [60,60] with
// shrink capacity [10,60] (min 50 on the first) over a 30-cell excess.
func TestDistributeClamped_FlexShrinkFloor(t *testing.T) {
	shrinkAmounts := layout.DistributeClamped(30, []int{1, 1}, []int{10, 60})
	widths := []int{60 - shrinkAmounts[0], 60 - shrinkAmounts[1]}
	assert.Equal(t, []int{50, 40}, widths)
}

func TestDistributeClamped_NoCapReducesToPlainDistribute(t *testing.T) {
	a := layout.DistributeClamped(100, []int{1, 1, 1}, []int{0, 0, 0})
	b := layout.Distribute(100, []int{1, 1, 1})
	assert.Equal(t, b, a)
}
