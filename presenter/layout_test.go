package presenter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/theoremus-urban-solutions/telltale/config"
	"github.com/theoremus-urban-solutions/telltale/display"
)

func TestNewLayout(t *testing.T) {
	l := NewLayout(240, 135)
	assert.Equal(t, 163, l.AnimX)
	assert.Equal(t, 41, l.AnimY)
	assert.Equal(t, 115, l.StatusY)
	assert.Equal(t, 206, l.IconX)
	assert.Equal(t, 5, l.IconY)

	// "GO NOW!" is 98px wide at scale 2
	assert.Equal(t, 163+(64-98)/2-12, l.StatusX("GO NOW!"))
}

func TestLayout_BuildOrder(t *testing.T) {
	scene := display.NewScene(240, 135)
	edge := NewLayout(240, 135).Build(scene, "Roosevelt Island", config.AssetsConfig{SheetGo: "walk.bmp"})
	require.NotNil(t, edge)

	elems := scene.Elements()
	require.Len(t, elems, EdgeBlocks*EdgeMaxSize+len(clipIDs)+7+len(iconIDs))
	for _, e := range elems[:EdgeBlocks*EdgeMaxSize] {
		assert.Equal(t, display.KindRect, e.Kind, "border is the bottom layer")
		assert.True(t, e.Hidden)
	}

	clip, ok := scene.Element(clipIDs[ClipGo])
	require.True(t, ok)
	assert.Equal(t, "walk.bmp", clip.Asset)
	assert.True(t, clip.Hidden)
	assert.Equal(t, 2, clip.Scale)

	title, _ := scene.Element(IDTitle)
	assert.Equal(t, "Roosevelt Island", title.Text)

	dot, _ := scene.Element(IDDotQueens)
	assert.Equal(t, 14, dot.X)
	assert.Equal(t, 115, dot.Y)
}
