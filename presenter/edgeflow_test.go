package presenter

import (
	"image"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/theoremus-urban-solutions/telltale/arrivals"
	"github.com/theoremus-urban-solutions/telltale/display"
)

func TestBuildBorderPath(t *testing.T) {
	path := BuildBorderPath(240, 135, EdgeMargin, EdgeSpacing)
	require.NotEmpty(t, path)
	assert.Equal(t, image.Pt(2, 2), path[0])

	seen := map[image.Point]bool{}
	for _, p := range path {
		assert.False(t, seen[p], "duplicate point %v", p)
		seen[p] = true
		assert.True(t, p.X >= 2 && p.X <= 237 && p.Y >= 2 && p.Y <= 132, "point %v outside inset", p)
	}
	// clockwise: the right side follows the top side
	assert.Equal(t, image.Pt(237, 8), path[40])

	t.Run("degenerate", func(t *testing.T) {
		assert.Equal(t, BorderPath{{X: 2, Y: 2}}, BuildBorderPath(3, 3, 2, 6))
		assert.Len(t, BuildBorderPath(5, 5, 2, 6), 1)
	})
	t.Run("single row", func(t *testing.T) {
		path := BuildBorderPath(20, 5, 2, 6)
		assert.Equal(t, BorderPath{{X: 2, Y: 2}, {X: 8, Y: 2}, {X: 14, Y: 2}}, path)
	})
}

func TestIntervalFor(t *testing.T) {
	assert.Equal(t, time.Second/35, IntervalFor(arrivals.Arrival, nil))
	assert.Equal(t, time.Second/15, IntervalFor(arrivals.Go, nil))
	assert.Equal(t, time.Second/5, IntervalFor(arrivals.Wait, nil))
	assert.Equal(t, time.Second/5, IntervalFor(arrivals.NoData, nil))

	m := func(v int) *int { return &v }
	t.Run("wait at fifteen minutes", func(t *testing.T) {
		d := IntervalFor(arrivals.Wait, m(15))
		assert.GreaterOrEqual(t, d, time.Second/24)
		assert.LessOrEqual(t, d, time.Second/4)
		assert.InDelta(t, float64(250*time.Millisecond), float64(d), float64(time.Microsecond))
	})
	t.Run("arrival clamps to max rate", func(t *testing.T) {
		assert.InDelta(t, float64(time.Second/24), float64(IntervalFor(arrivals.Arrival, m(0))), float64(time.Microsecond))
	})
	t.Run("minutes beyond cap", func(t *testing.T) {
		assert.Equal(t, IntervalFor(arrivals.Go, m(15)), IntervalFor(arrivals.Go, m(40)))
	})
	t.Run("larger waits are not faster", func(t *testing.T) {
		for i := 0; i < 15; i++ {
			assert.LessOrEqual(t, IntervalFor(arrivals.Go, m(i)), IntervalFor(arrivals.Go, m(i+1)))
		}
	})
}

func TestSizeFor(t *testing.T) {
	assert.Equal(t, EdgeMaxSize, SizeFor(0))
	assert.Equal(t, EdgeMinSize, SizeFor(EdgeBlocks-1))
	for i := 1; i < EdgeBlocks; i++ {
		assert.LessOrEqual(t, SizeFor(i), SizeFor(i-1))
		assert.GreaterOrEqual(t, SizeFor(i), EdgeMinSize)
	}
}

func TestEdgeFlow_AdvanceAndRender(t *testing.T) {
	scene := display.NewScene(240, 135)
	path := BuildBorderPath(240, 135, EdgeMargin, EdgeSpacing)
	flow := NewEdgeFlow(scene, path)
	base := time.Unix(10, 0)

	require.True(t, flow.Advance(arrivals.Go, nil, base))
	assert.Equal(t, 1, flow.Head())
	assert.False(t, flow.Advance(arrivals.Go, nil, base.Add(10*time.Millisecond)))
	require.True(t, flow.Advance(arrivals.Go, nil, base.Add(time.Second/15)))
	assert.Equal(t, 2, flow.Head())
	require.NoError(t, scene.Flush())

	slots := flow.Slots()
	assert.Equal(t, 2, slots[0].Position)
	assert.Equal(t, len(path)-12, slots[14].Position, "tail wraps behind the start")

	for i := 0; i < EdgeBlocks; i++ {
		visible := 0
		for s := 0; s < EdgeMaxSize; s++ {
			e, ok := scene.Element(flow.arena[i][s])
			require.True(t, ok)
			if !e.Hidden {
				visible++
				assert.Equal(t, SizeFor(i), e.W)
				assert.Equal(t, path[slots[i].Position], image.Pt(e.X, e.Y))
				assert.Equal(t, ColorGo, e.Color)
			}
		}
		assert.Equal(t, 1, visible, "slot %d", i)
	}
}
